package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jacketapp/jacketapp/internal/repository"
	"github.com/jacketapp/jacketapp/internal/service"
	"github.com/jacketapp/jacketapp/internal/ui"
	"github.com/jacketapp/jacketapp/internal/validation"
)

type authHandler struct {
	authService *service.AuthService
	userService *service.UserService
	lockout     *service.LockoutGuard
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, lockout *service.LockoutGuard) *authHandler {
	return &authHandler{
		authService: authService,
		userService: userService,
		lockout:     lockout,
	}
}

func (h *authHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, "login", ui.PageData{Title: "Sign In"})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(strings.ToLower(r.FormValue("username")))
	password := r.FormValue("password")
	ip := clientIP(r)

	if h.lockout.Locked(r.Context(), username, ip) {
		ui.Render(w, r, "login", ui.PageData{
			Title: "Sign In",
			Error: "Too many failed attempts. Please try again later.",
			Form:  map[string]string{"username": username},
		})
		return
	}

	user, err := h.authService.Login(username, password)
	if err != nil {
		// Same message for unknown user and wrong password
		h.lockout.RecordFailure(r.Context(), username, ip)
		slog.Warn("login failed", "username", username, "ip", ip)
		ui.Render(w, r, "login", ui.PageData{
			Title: "Sign In",
			Error: "Invalid username or password",
			Form:  map[string]string{"username": username},
		})
		return
	}

	h.lockout.ClearFailures(r.Context(), username, ip)

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		ui.Render(w, r, "login", ui.PageData{
			Title: "Sign In",
			Error: "An error occurred. Please try again.",
		})
		return
	}

	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.Expiry()))
	h.userService.InstallJob(user)

	slog.Info("user logged in", "user_id", user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := currentUser(r); user != nil {
		h.userService.RemoveJob(user.ID)
		slog.Info("user logged out", "user_id", user.ID)
	}
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *authHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, "register", ui.PageData{Title: "Create Account"})
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Username:      r.FormValue("username"),
		Password:      r.FormValue("password"),
		Phone:         r.FormValue("phone"),
		Zipcode:       r.FormValue("zipcode"),
		PreferredTime: r.FormValue("preferred_time"),
	}

	user, err := h.userService.Register(in)
	if err != nil {
		ui.Render(w, r, "register", ui.PageData{
			Title: "Create Account",
			Error: registerErrorMessage(err),
			Form: map[string]string{
				"username":       in.Username,
				"phone":          in.Phone,
				"zipcode":        in.Zipcode,
				"preferred_time": in.PreferredTime,
			},
		})
		return
	}

	slog.Info("registration complete", "user_id", user.ID)
	// No auto-login; the new user signs in with their credentials
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUsernameRequired):
		return "Username is required"
	case errors.Is(err, repository.ErrDuplicateUsername):
		return "That username is already taken"
	case errors.Is(err, repository.ErrDuplicatePhone):
		return "That phone number is already registered"
	case errors.Is(err, validation.ErrInvalidPhone):
		return "Please provide a valid US phone number"
	case errors.Is(err, validation.ErrInvalidZipcode):
		return "Please provide a valid US zipcode"
	case errors.Is(err, validation.ErrInvalidTimeOfDay):
		return "Please provide a valid notification time"
	case validation.IsPasswordError(err):
		return err.Error()
	default:
		slog.Error("registration failed", "error", err)
		return "Registration failed. Please try again."
	}
}
