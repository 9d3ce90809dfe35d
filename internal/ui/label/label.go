// Package label formats the Turkish character names and banners shown on screen.
// Casing follows Turkish rules, so "Işıl" upper-cases to "IŞIL" and "Meri" to "MERİ".
package label

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper returns s in Turkish upper case.
func Upper(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// Lower returns s in Turkish lower case.
func Lower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// Key folds a name for lookups that should ignore case and surrounding space.
func Key(s string) string {
	return Lower(strings.TrimSpace(s))
}

// Initial returns the upper-cased first letter of a name, or '?' for an empty name.
func Initial(s string) rune {
	s = strings.TrimSpace(s)
	if s == "" {
		return '?'
	}
	r, _ := utf8.DecodeRuneInString(Upper(s))
	if !unicode.IsPrint(r) {
		return '?'
	}
	return r
}

// Fit shortens s to at most n runes, marking a cut with a trailing '.'.
func Fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "."
}

// Difficulty returns the display name of a difficulty tier. Custom tiers are shown
// as written.
func Difficulty(name string) string {
	switch name {
	case "easy":
		return "Kolay"
	case "normal":
		return "Normal"
	case "hard":
		return "Zor"
	default:
		return name
	}
}
