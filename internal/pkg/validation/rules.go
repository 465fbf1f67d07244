package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns and limits
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Phone numbers: 8 to 15 digits
	PhonePattern = `^[0-9]{8,15}$`

	// Academic session, e.g. "2020-2021"
	SessionPattern = `^\d{4}-\d{4}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Notice title min/max length
	NoticeTitleMinLength = 3
	NoticeTitleMaxLength = 150

	// Extension request reason min length
	ExtensionReasonMinLength = 10

	// Rejection reason min length
	RejectionReasonMinLength = 5
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email   *regexp.Regexp
	Phone   *regexp.Regexp
	Session *regexp.Regexp
}{
	Email:   regexp.MustCompile(EmailPattern),
	Phone:   regexp.MustCompile(PhonePattern),
	Session: regexp.MustCompile(SessionPattern),
}

// IsValidEmail reports whether email matches the email pattern
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidSession reports whether session looks like an academic session
func IsValidSession(session string) bool {
	return CompiledPatterns.Session.MatchString(strings.TrimSpace(session))
}

// MeetsMinLength reports whether the trimmed value is at least min runes long
func MeetsMinLength(value string, min int) bool {
	return len([]rune(strings.TrimSpace(value))) >= min
}

// StringValidation chains length and pattern checks for a single value.
// Values are trimmed before checking, matching MeetsMinLength.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation starts a validation chain for a required value
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets the minimum rune length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets the maximum rune length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern adds a regex the value must match
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired marks the value as optional when false; an empty optional
// value passes without further checks
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate runs the accumulated checks
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := len([]rune(v.Value))
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}
	return v.Pattern == nil || v.Pattern.MatchString(v.Value)
}
