package utils

import (
	"unicode"
	"unicode/utf8"
)

// IsSeparator reports whether r may appear between word parts.
func IsSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '\''
}

// IsOnlyNumbers reports whether s is non-empty and made only of digits.
func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars reports runes that are neither letters, digits nor separators.
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsRepetitive reports strings of three or more copies of one rune, like "zzz".
func IsRepetitive(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}

// IsValidInput filters queries that cannot match a dictionary word.
func IsValidInput(s string) bool {
	if s == "" {
		return false
	}
	if IsOnlyNumbers(s) || ContainsSpecialChars(s) {
		return false
	}
	return !IsRepetitive(s)
}

// LengthWithin reports whether the rune length of s lies in [minLen, maxLen].
// A non-positive maxLen disables the upper bound.
func LengthWithin(s string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(s)
	if n < minLen {
		return false
	}
	return maxLen <= 0 || n <= maxLen
}
