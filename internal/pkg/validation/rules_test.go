package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"rahim@university.edu", "a.b+c@example.com", " spaced@example.com "}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{"", "not-an-email", "missing@tld", "@example.com"}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidSession(t *testing.T) {
	assert.True(t, IsValidSession("2020-2021"))
	assert.True(t, IsValidSession(" 2024-2025 "))

	invalid := []string{"", "2020", "2020/2021", "20-21", "2020-21"}
	for _, s := range invalid {
		assert.False(t, IsValidSession(s), s)
	}
}

func TestMeetsMinLength(t *testing.T) {
	assert.True(t, MeetsMinLength("long enough reason", 10))
	assert.False(t, MeetsMinLength("short", 10))
	// Surrounding whitespace does not count toward the length.
	assert.False(t, MeetsMinLength("   short   ", 10))
	// Rune length, not byte length.
	assert.True(t, MeetsMinLength("পাঁচটিশব্দ", 10))
}

func TestStringValidation(t *testing.T) {
	name := func(v string) bool {
		return NewStringValidation(v).
			WithMinLength(NameMinLength).
			WithMaxLength(NameMaxLength).
			Validate()
	}

	assert.True(t, name("Rahim Uddin"))
	assert.False(t, name(""))
	assert.False(t, name("R"))
	// Trimmed before checking, like MeetsMinLength.
	assert.False(t, name("  R  "))
	assert.False(t, name(strings.Repeat("x", NameMaxLength+1)))

	t.Run("optional values", func(t *testing.T) {
		phone := func(v string) bool {
			return NewStringValidation(v).
				WithRequired(false).
				WithPattern(CompiledPatterns.Phone).
				Validate()
		}

		assert.True(t, phone(""))
		assert.True(t, phone("01712345678"))
		assert.False(t, phone("not-digits"))
	})

	t.Run("pattern on required value", func(t *testing.T) {
		session := func(v string) bool {
			return NewStringValidation(v).
				WithPattern(CompiledPatterns.Session).
				Validate()
		}

		assert.True(t, session("2020-2021"))
		assert.False(t, session(""))
		assert.False(t, session("2020/2021"))
	})
}
