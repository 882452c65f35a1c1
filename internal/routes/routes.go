package routes

import (
	"io/fs"
	"net/http"

	"github.com/jacketapp/jacketapp/assets"
	"github.com/jacketapp/jacketapp/internal/app"
	"github.com/jacketapp/jacketapp/internal/handler"
	"github.com/jacketapp/jacketapp/internal/metrics"
	"github.com/jacketapp/jacketapp/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.Lockout)
	profile := handler.NewProfileHandler(app.UserService)
	dashboard := handler.NewDashboardHandler(app.UserService, app.Weather, app.Recommender)
	weather := handler.NewWeatherHandler(app.Weather, app.Recommender)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Operational endpoints
	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth flow (rate limited per endpoint)
	loginLimiter := middleware.RateLimitLogin(app.Redis)
	registerLimiter := middleware.RateLimitRegister(app.Redis)

	mux.HandleFunc("GET /{$}", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /login", loginLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /register", registerLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("GET /logout", auth.Logout)

	// Authenticated pages
	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboard.DashboardPage))
	mux.HandleFunc("GET /profile", middleware.RequireAuth(profile.ProfilePage))
	mux.HandleFunc("POST /profile", middleware.RequireAuth(profile.UpdateProfile))

	// JSON API for the dashboard's client-side refresh
	mux.HandleFunc("GET /weather", middleware.RequireAuth(weather.CurrentWeather))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
