package inputval

import "testing"

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"000000000000000000000000", true},
		{"ffffffffffffffffffffffff", true},
		{"  507f1f77bcf86cd799439011  ", true}, // trimmed

		{"", false},
		{"   ", false},
		{"507f1f77bcf86cd79943901", false},   // 23 chars
		{"507f1f77bcf86cd7994390111", false}, // 25 chars
		{"507f1f77bcf86cd79943901g", false},  // non-hex
		{"not-an-object-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := IsValidObjectID(tt.id)
			if got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestInSubmissionRange(t *testing.T) {
	tests := []struct {
		score float64
		want  bool
	}{
		{0, true},
		{50, true},
		{100, true},
		{-0.1, false},
		{100.1, false},
	}

	for _, tt := range tests {
		got := InSubmissionRange(tt.score)
		if got != tt.want {
			t.Errorf("InSubmissionRange(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestInCriterionRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		score *float64
		want  bool
	}{
		{"nil means unscored", nil, true},
		{"zero", f(0), true},
		{"max", f(10), true},
		{"mid", f(7.5), true},
		{"negative", f(-1), false},
		{"above max", f(10.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InCriterionRange(tt.score)
			if got != tt.want {
				t.Errorf("InCriterionRange = %v, want %v", got, tt.want)
			}
		})
	}
}
