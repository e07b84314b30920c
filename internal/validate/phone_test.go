package validate_test

import (
	"testing"

	"github.com/samandarerkinov/torthouse/internal/validate"
)

func TestPhoneValidator_Valid(t *testing.T) {
	v := validate.NewPhoneValidator()

	cases := []struct {
		name  string
		phone string
		want  bool
	}{
		{"uzbek mobile with plus", "+998901234567", true},
		{"contact without plus", "998901234567", true},
		{"with spaces", " +998901234567 ", true},
		{"russian mobile", "+79161234567", true},
		{"letters", "abc", false},
		{"empty", "", false},
		{"too short", "+99890", false},
		{"garbage digits", "+1234", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.Valid(tc.phone); got != tc.want {
				t.Fatalf("Valid(%q) = %v, want %v", tc.phone, got, tc.want)
			}
		})
	}
}
