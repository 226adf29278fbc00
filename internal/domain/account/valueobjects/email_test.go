package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "user@example.com", "user@example.com"},
		{"uppercase is normalized", "User@Example.COM", "user@example.com"},
		{"surrounding whitespace is trimmed", "  user@example.com  ", "user@example.com"},
		{"plus addressing", "user+tag@example.com", "user+tag@example.com"},
		{"subdomain", "user@mail.example.edu", "user@mail.example.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, email.String())
		})
	}
}

func TestNewEmail_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing at", "userexample.com"},
		{"missing domain", "user@"},
		{"missing local part", "@example.com"},
		{"missing tld", "user@example"},
		{"spaces inside", "us er@example.com"},
		{"too long", strings.Repeat("a", 250) + "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			assert.Error(t, err)
			assert.Nil(t, email)
		})
	}
}

func TestEmail_Equals(t *testing.T) {
	a, err := NewEmail("user@example.com")
	require.NoError(t, err)
	b, err := NewEmail("USER@example.com")
	require.NoError(t, err)
	c, err := NewEmail("other@example.com")
	require.NoError(t, err)

	assert.True(t, a.Equals(b), "comparison is on the normalized value")
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestEmail_Parts(t *testing.T) {
	email, err := NewEmail("student@campus.example.edu")
	require.NoError(t, err)

	assert.Equal(t, "student", email.LocalPart())
	assert.Equal(t, "campus.example.edu", email.Domain())
}
