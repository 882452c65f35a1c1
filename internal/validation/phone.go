package validation

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("phone number must contain exactly 10 US digits")

// NormalizePhone reduces a US phone number to E.164 form: "+1" followed by
// exactly 10 digits. Punctuation and whitespace are stripped; an optional
// leading country digit ("1" or "+1") is accepted. Anything that does not
// reduce to exactly 10 digits fails.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return "", ErrInvalidPhone
	}

	return "+1" + d, nil
}
