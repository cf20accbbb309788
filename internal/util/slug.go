package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// SlugMaxLen leaves room for a numeric suffix inside varchar(255)
	SlugMaxLen   = 240
	slugFallback = "post"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphens  = regexp.MustCompile(`-+`)
)

// Slugify turns free text into [a-z0-9-], stripping diacritics and
// collapsing separators. maxLen <= 0 means SlugMaxLen.
func Slugify(s string, maxLen int) string {
	return SlugifyOr(s, maxLen, slugFallback)
}

// SlugifyOr is Slugify with the value returned when nothing slug-safe remains
func SlugifyOr(s string, maxLen int, fallback string) string {
	if maxLen <= 0 {
		maxLen = SlugMaxLen
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = reNonAlnum.ReplaceAllString(b.String(), "-")
	s = reHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	if s == "" {
		s = fallback
	}
	return s
}

// SlugWithSuffix returns base for n < 2 and base-n otherwise
func SlugWithSuffix(base string, n int) string {
	if n < 2 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
