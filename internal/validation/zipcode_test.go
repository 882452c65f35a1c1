package validation

import "testing"

func TestValidateZipcode(t *testing.T) {
	tests := []struct {
		zipcode string
		valid   bool
	}{
		{"53717", true},
		{"53717-1234", true},
		{"00501", true},
		{"5371", false},
		{"537171", false},
		{"53717-12", false},
		{"ABCDE", false},
		{"", false},
		{"53717 ", false},
	}

	for _, tt := range tests {
		err := ValidateZipcode(tt.zipcode)
		if tt.valid && err != nil {
			t.Errorf("ValidateZipcode(%q) = %v, want nil", tt.zipcode, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ValidateZipcode(%q) = nil, want error", tt.zipcode)
		}
	}
}
