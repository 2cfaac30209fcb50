package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	validate := validator.New()
	_ = validate.RegisterValidation("hasupper", HasUpper)
	_ = validate.RegisterValidation("haslower", HasLower)
	_ = validate.RegisterValidation("hasdigit", HasDigit)
	_ = validate.RegisterValidation("hasspecial", HasSpecial)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("isodate", IsISODate)
	_ = validate.RegisterValidation("clocktime", IsClockTime)
	return validate
}

func TestCharacterClassValidators(t *testing.T) {
	validate := newValidate(t)

	cases := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"hasupper", "Abc", true},
		{"hasupper", "abc", false},
		{"haslower", "aBC", true},
		{"haslower", "ABC", false},
		{"hasdigit", "a1", true},
		{"hasdigit", "abc", false},
		{"hasspecial", "a!", true},
		{"hasspecial", "a$", true},
		{"hasspecial", "abc1", false},
		{"nospaces", "abc", true},
		{"nospaces", "a b", false},
		{"nospaces", "a\tb", false},
	}

	for _, tc := range cases {
		err := validate.Var(tc.value, tc.tag)
		if (err == nil) != tc.ok {
			t.Errorf("%s(%q): got err=%v, want ok=%v", tc.tag, tc.value, err, tc.ok)
		}
	}
}

func TestIsISODate(t *testing.T) {
	validate := newValidate(t)

	valid := []string{"2024-01-10", "2000-12-31"}
	invalid := []string{"2024-1-10", "10-01-2024", "2024-13-01", "2024-01-32", "yesterday", ""}

	for _, v := range valid {
		if err := validate.Var(v, "isodate"); err != nil {
			t.Errorf("isodate(%q): unexpected error %v", v, err)
		}
	}
	for _, v := range invalid {
		if err := validate.Var(v, "isodate"); err == nil {
			t.Errorf("isodate(%q): expected error", v)
		}
	}
}

func TestIsClockTime(t *testing.T) {
	validate := newValidate(t)

	valid := []string{"11:00 AM", "02:30 PM", "12:00 PM"}
	invalid := []string{"14:30", "2:30 PM", "11:00", "11:00 am PM", ""}

	for _, v := range valid {
		if err := validate.Var(v, "clocktime"); err != nil {
			t.Errorf("clocktime(%q): unexpected error %v", v, err)
		}
	}
	for _, v := range invalid {
		if err := validate.Var(v, "clocktime"); err == nil {
			t.Errorf("clocktime(%q): expected error", v)
		}
	}
}
