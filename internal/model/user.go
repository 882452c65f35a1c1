package model

import (
	"time"
)

// Temperature sensitivity tags. Cold-sensitive users get warmer
// recommendations at the same temperature, warm-runners the opposite.
const (
	SensitivityCold   = "Cold"
	SensitivityNormal = "Normal"
	SensitivityWarm   = "Warm"
)

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`

	// PhoneNumber is stored normalized (+1 followed by 10 US digits).
	PhoneNumber string `db:"phone_number"`

	Zipcode   string   `db:"zipcode"`
	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`

	// PreferredTime is the daily notification time as 24-hour "HH:MM".
	PreferredTime          string  `db:"preferred_time"`
	TemperatureSensitivity string  `db:"temperature_sensitivity"`
	NotificationThreshold  *int    `db:"notification_threshold_temp"`
	TriggerCondition       string  `db:"notification_trigger_condition"`

	CreatedAt time.Time `db:"created_at"`
}

// HasCoordinates reports whether the user has explicit lat/lon set.
// Location resolution prefers coordinates over zipcode.
func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}

func ValidSensitivity(s string) bool {
	switch s {
	case SensitivityCold, SensitivityNormal, SensitivityWarm:
		return true
	}
	return false
}
