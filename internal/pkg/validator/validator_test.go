package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := map[string]time.Time{
		"2023-01-01":                time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		"2000-12-31":                time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC),
		"2018-12-07 14:30:00":       time.Date(2018, 12, 7, 0, 0, 0, 0, time.UTC),
		"2018-12-07T23:59:00+07:00": time.Date(2018, 12, 7, 0, 0, 0, 0, time.UTC),
	}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "", "   "}

	for s, want := range valid {
		got, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
			continue
		}
		assert.True(t, want.Equal(got), "IsValidDate(%q) = %v, want %v", s, got, want)
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"email", "phone"}, errs.Fields())
}

func TestValidationErrors_UnwrapRules(t *testing.T) {
	errRequired := errors.New("required")
	errOrder := errors.New("order")

	var err error = ValidationErrors{
		{Field: "a", Message: "a is required", Rule: errRequired},
		{Field: "b", Message: "b has no rule"},
	}

	assert.ErrorIs(t, err, errRequired)
	assert.NotErrorIs(t, err, errOrder)

	var verrs ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}
