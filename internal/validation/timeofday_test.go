package validation

import "testing"

func TestCanonicalTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07:30", "07:30"},
		{"7:30", "07:30"},
		{"07:30 AM", "07:30"},
		{"12:00 AM", "00:00"},
		{"12:15 PM", "12:15"},
		{"07:30 PM", "19:30"},
		{"7:30pm", "19:30"},
		{"23:59", "23:59"},
		{"0:00", "00:00"},
	}

	for _, tt := range tests {
		got, err := CanonicalTimeOfDay(tt.in)
		if err != nil {
			t.Errorf("CanonicalTimeOfDay(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CanonicalTimeOfDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalTimeOfDayRejectsInvalid(t *testing.T) {
	bad := []string{"", "25:00", "12:60", "noonish", "13:00 PM", "0:00 AM", "7", "07-30"}

	for _, in := range bad {
		if _, err := CanonicalTimeOfDay(in); err == nil {
			t.Errorf("CanonicalTimeOfDay(%q) expected error, got none", in)
		}
	}
}

func TestDisplayTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07:30", "07:30 AM"},
		{"00:05", "12:05 AM"},
		{"12:00", "12:00 PM"},
		{"19:30", "07:30 PM"},
		{"23:59", "11:59 PM"},
	}

	for _, tt := range tests {
		if got := DisplayTimeOfDay(tt.in); got != tt.want {
			t.Errorf("DisplayTimeOfDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
