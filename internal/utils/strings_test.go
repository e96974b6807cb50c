package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected bool
	}{
		{"Simple valid email", "alice@example.com", true},
		{"Email with subdomain", "user@mail.example.com", true},
		{"Email with dots in local part", "user.name@example.com", true},
		{"Email with plus", "user+tag@example.com", true},
		{"Email with dash in domain", "user@ex-ample.com", true},
		{"Two letter TLD", "user@example.co", true},

		{"Missing @", "userexample.com", false},
		{"Missing domain", "user@", false},
		{"Missing local part", "@example.com", false},
		{"Missing TLD", "user@example", false},
		{"Double @", "user@@example.com", false},
		{"Space in email", "user @example.com", false},
		{"Consecutive dots in domain", "user@example..com", false},
		{"Starts with dot", ".user@example.com", false},
		{"Empty string", "", false},
		{"TLD too short", "user@example.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidEmail(tt.email))
		})
	}
}

func TestHasMinLength(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		n        int
		expected bool
	}{
		{"Exact length", "SFO", 3, true},
		{"Longer", "San Francisco", 3, true},
		{"Too short", "LA", 3, false},
		{"Whitespace does not count", "  a  ", 2, false},
		{"Multibyte runes", "Zü", 2, true},
		{"Empty", "", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasMinLength(tt.s, tt.n))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "al***@example.com", MaskEmail("alice@example.com"))
	assert.Equal(t, "ab@example.com", MaskEmail("ab@example.com"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}
