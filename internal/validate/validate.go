// Package validate holds the shared form-field predicates used by the inquiry
// services. Every function accepts raw caller input and reports a boolean;
// none of them panic.
package validate

import (
	"strings"
	"unicode/utf8"
)

// Email checks the minimal shape the inquiry forms require: exactly one "@",
// a non-empty local part, and a dotted domain. Neither side may start or end
// with a dot, and doubled dots fail anywhere. Embedded whitespace fails.
func Email(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
			return false
		}
	}
	if strings.Contains(s, "..") {
		return false
	}
	return true
}

// Phone strips every non-digit and accepts 7 to 15 remaining digits, which
// covers local numbers through full E.164.
func Phone(raw string) bool {
	digits := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// Required reports whether the value contains any non-whitespace content.
func Required(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

// MinLength reports whether the trimmed value has at least n characters.
// Characters are runes, not bytes, so accented names measure as typed.
func MinLength(raw string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(raw)) >= n
}

// MaxLength reports whether the trimmed value has at most n characters.
// Empty input passes: optional fields are valid when absent.
func MaxLength(raw string, n int) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	return utf8.RuneCountInString(s) <= n
}
