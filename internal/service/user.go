package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jacketapp/jacketapp/internal/model"
	"github.com/jacketapp/jacketapp/internal/repository"
	"github.com/jacketapp/jacketapp/internal/validation"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidSensitivity = errors.New("temperature sensitivity must be Cold, Normal or Warm")
	ErrInvalidThreshold   = errors.New("notification threshold must be a whole number")
)

// JobScheduler is the slice of the scheduler the user service needs to
// keep jobs in sync with profile changes.
type JobScheduler interface {
	ScheduleDaily(userID int64, hour, minute int) error
	Remove(userID int64)
	NextRun(userID int64) (time.Time, bool)
}

type RegisterInput struct {
	Username      string
	Password      string
	Phone         string
	Zipcode       string
	PreferredTime string
	Sensitivity   string
}

type ProfileInput struct {
	Phone            string
	Zipcode          string
	Latitude         *float64
	Longitude        *float64
	PreferredTime    string
	Sensitivity      string
	Threshold        string // empty = no threshold
	TriggerCondition string
}

type UserService struct {
	userRepository repository.UserRepository
	authService    *AuthService
	jobs           JobScheduler
}

func NewUserService(userRepository repository.UserRepository, authService *AuthService, jobs JobScheduler) *UserService {
	return &UserService{
		userRepository: userRepository,
		authService:    authService,
		jobs:           jobs,
	}
}

func (s *UserService) ByID(id int64) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// Register validates and creates a new user, then installs the daily
// notification job. The caller is not logged in automatically.
func (s *UserService) Register(in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" {
		return nil, ErrUsernameRequired
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	phone, err := validation.NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateZipcode(in.Zipcode); err != nil {
		return nil, err
	}

	preferredTime, err := validation.CanonicalTimeOfDay(in.PreferredTime)
	if err != nil {
		return nil, err
	}

	sensitivity := in.Sensitivity
	if sensitivity == "" {
		sensitivity = model.SensitivityNormal
	}
	if !model.ValidSensitivity(sensitivity) {
		return nil, ErrInvalidSensitivity
	}

	hash, err := s.authService.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:               username,
		PasswordHash:           hash,
		PhoneNumber:            phone,
		Zipcode:                in.Zipcode,
		PreferredTime:          preferredTime,
		TemperatureSensitivity: sensitivity,
		CreatedAt:              time.Now(),
	}

	if err := s.userRepository.Create(user); err != nil {
		return nil, err
	}

	s.scheduleFor(user)
	slog.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// UpdateProfile mutates contact, location and preference fields and
// reschedules the user's job to match the (possibly new) preferred time.
func (s *UserService) UpdateProfile(userID int64, in ProfileInput) (*model.User, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	phone, err := validation.NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateZipcode(in.Zipcode); err != nil {
		return nil, err
	}

	preferredTime, err := validation.CanonicalTimeOfDay(in.PreferredTime)
	if err != nil {
		return nil, err
	}

	if !model.ValidSensitivity(in.Sensitivity) {
		return nil, ErrInvalidSensitivity
	}

	var threshold *int
	if strings.TrimSpace(in.Threshold) != "" {
		v, err := strconv.Atoi(strings.TrimSpace(in.Threshold))
		if err != nil {
			return nil, ErrInvalidThreshold
		}
		threshold = &v
	}

	user.PhoneNumber = phone
	user.Zipcode = in.Zipcode
	user.Latitude = in.Latitude
	user.Longitude = in.Longitude
	user.PreferredTime = preferredTime
	user.TemperatureSensitivity = in.Sensitivity
	user.NotificationThreshold = threshold
	user.TriggerCondition = strings.TrimSpace(in.TriggerCondition)

	if err := s.userRepository.Update(user); err != nil {
		return nil, err
	}

	s.scheduleFor(user)
	slog.Info("profile updated", "user_id", userID, "preferred_time", preferredTime)
	return user, nil
}

// InstallJob (re)installs the user's daily job; used on login so sessions
// started after a restart still have their schedule in place.
func (s *UserService) InstallJob(user *model.User) {
	s.scheduleFor(user)
}

// RemoveJob drops the user's daily job; used on logout.
func (s *UserService) RemoveJob(userID int64) {
	s.jobs.Remove(userID)
}

// NextRun reports the user's next scheduled notification time.
func (s *UserService) NextRun(userID int64) (time.Time, bool) {
	return s.jobs.NextRun(userID)
}

// ScheduleAll installs jobs for every registered user. Called once at
// startup so schedules survive process restarts.
func (s *UserService) ScheduleAll() error {
	users, err := s.userRepository.All()
	if err != nil {
		return fmt.Errorf("failed to load users for scheduling: %w", err)
	}

	for i := range users {
		s.scheduleFor(&users[i])
	}

	slog.Info("boot-time schedules installed", "users", len(users))
	return nil
}

func (s *UserService) scheduleFor(user *model.User) {
	hour, minute, err := validation.ParseTimeOfDay(user.PreferredTime)
	if err != nil {
		// Stored times are canonicalized on the way in; an unparseable one
		// is a data problem worth surfacing, not a reason to crash
		slog.Error("stored preferred time unparseable, job not scheduled",
			"user_id", user.ID, "preferred_time", user.PreferredTime, "error", err)
		return
	}

	if err := s.jobs.ScheduleDaily(user.ID, hour, minute); err != nil {
		slog.Error("failed to schedule notification job", "user_id", user.ID, "error", err)
	}
}
