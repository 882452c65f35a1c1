package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jacketapp/jacketapp/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicatePhone    = errors.New("phone number already registered")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id int64) (*model.User, error)
	ByUsername(username string) (*model.User, error)
	Update(user *model.User) error
	All() ([]model.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users
		(username, password_hash, phone_number, zipcode, latitude, longitude,
		 preferred_time, temperature_sensitivity, notification_threshold_temp,
		 notification_trigger_condition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	result, err := r.db.Exec(query,
		user.Username, user.PasswordHash, user.PhoneNumber, user.Zipcode,
		user.Latitude, user.Longitude, user.PreferredTime,
		user.TemperatureSensitivity, user.NotificationThreshold,
		user.TriggerCondition, user.CreatedAt)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			if strings.Contains(errStr, "phone_number") {
				return ErrDuplicatePhone
			}
			return ErrDuplicateUsername
		}
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		user.ID = id
	}

	return nil
}

func (r *userRepository) ByID(id int64) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByUsername(username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.Get(user, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET
		phone_number = $1, zipcode = $2, latitude = $3, longitude = $4,
		preferred_time = $5, temperature_sensitivity = $6,
		notification_threshold_temp = $7, notification_trigger_condition = $8
		WHERE id = $9`

	result, err := r.db.Exec(query,
		user.PhoneNumber, user.Zipcode, user.Latitude, user.Longitude,
		user.PreferredTime, user.TemperatureSensitivity,
		user.NotificationThreshold, user.TriggerCondition, user.ID)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicatePhone
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// All returns every registered user, for boot-time job installation.
func (r *userRepository) All() ([]model.User, error) {
	users := []model.User{}
	err := r.db.Select(&users, `SELECT * FROM users ORDER BY id`)
	return users, err
}
