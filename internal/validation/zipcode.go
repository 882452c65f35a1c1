package validation

import (
	"errors"
	"regexp"
)

var ErrInvalidZipcode = errors.New("invalid zipcode format")

var zipcodePattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)

// ValidateZipcode validates US zipcode format (5 digits, optional +4)
func ValidateZipcode(zipcode string) error {
	if !zipcodePattern.MatchString(zipcode) {
		return ErrInvalidZipcode
	}
	return nil
}
