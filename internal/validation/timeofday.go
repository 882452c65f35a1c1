package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTimeOfDay = errors.New("preferred time must be HH:MM or hh:MM AM/PM")

// ParseTimeOfDay parses a preferred notification time. Accepts 24-hour
// "HH:MM" and 12-hour "hh:MM AM"/"hh:MM PM". Returns hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)

	meridiem := ""
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		meridiem = upper[len(upper)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTimeOfDay
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidTimeOfDay
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidTimeOfDay
	}

	if minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTimeOfDay
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, 0, ErrInvalidTimeOfDay
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, ErrInvalidTimeOfDay
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, 0, ErrInvalidTimeOfDay
		}
	}

	return hour, minute, nil
}

// CanonicalTimeOfDay normalizes any accepted input to 24-hour "HH:MM",
// the storage format.
func CanonicalTimeOfDay(s string) (string, error) {
	hour, minute, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// DisplayTimeOfDay renders a stored "HH:MM" as 12-hour with AM/PM.
func DisplayTimeOfDay(stored string) string {
	hour, minute, err := ParseTimeOfDay(stored)
	if err != nil {
		return stored
	}

	meridiem := "AM"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		h = hour - 12
		meridiem = "PM"
	}

	return fmt.Sprintf("%02d:%02d %s", h, minute, meridiem)
}
