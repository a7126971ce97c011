package deptscrape

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText normalizes raw extracted text: zero-width spaces are removed,
// non-breaking spaces become regular spaces, and all whitespace runs
// (including newlines) collapse to single spaces. The result is trimmed.
// CleanText is idempotent.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var unsafeFilenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename converts a page title to a safe filename component.
// Unsafe characters are stripped, spaces become underscores, and the result
// is capped at 100 characters. Returns "page" when nothing survives.
func SanitizeFilename(title string) string {
	s := unsafeFilenameRe.ReplaceAllString(title, "")
	s = strings.Trim(s, ". ")
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return "page"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// WordCount returns the number of whitespace-separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
