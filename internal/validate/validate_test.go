package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"student@example.com", true},
		{"  student@example.com  ", true},
		{"first.last@music.example.co", true},
		{"", false},
		{"no-at-sign.example.com", false},
		{"two@@example.com", false},
		{"a@b@c.com", false},
		{"@example.com", false},
		{"student@", false},
		{"student@nodot", false},
		{"student@.example.com", false},
		{"student@example.com.", false},
		{".student@example.com", false},
		{"student.@example.com", false},
		{"stu..dent@example.com", false},
		{"student@exa mple.com", false},
		{"stu dent@example.com", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, Email(tc.in), "input %q", tc.in)
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0412 345 678", true},
		{"+61 412 345 678", true},
		{"(02) 9876 5432", true},
		{"1234567", true},
		{"123456789012345", true},
		{"123456", false},
		{"1234567890123456", false},
		{"", false},
		{"call me maybe", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, Phone(tc.in), "input %q", tc.in)
	}
}

func TestRequired(t *testing.T) {
	require.True(t, Required("x"))
	require.False(t, Required(""))
	require.False(t, Required("   \t  "))
}

func TestMinLength_TrimsBeforeMeasuring(t *testing.T) {
	require.True(t, MinLength("  abcde  ", 5))
	require.False(t, MinLength("  abcd  ", 5))
	require.False(t, MinLength("", 1))
}

func TestMaxLength_EmptyIsValid(t *testing.T) {
	require.True(t, MaxLength("", 5))
	require.True(t, MaxLength("    ", 5))
	require.True(t, MaxLength("abcde", 5))
	require.False(t, MaxLength("abcdef", 5))
}

func TestLength_CountsRunesNotBytes(t *testing.T) {
	// Six characters, seven bytes.
	require.True(t, MinLength("Müller", 6))
	require.True(t, MaxLength("Müller", 6))
	require.False(t, MaxLength("Müllers", 6))
	require.False(t, MinLength("日本語", 4))
	require.True(t, MaxLength("日本語", 3))
}
