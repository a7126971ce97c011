package deptscrape

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const maxSlugLength = 90

var (
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a title to a URL-safe slug: lowercase, punctuation
// stripped, whitespace runs collapsed to single hyphens, capped at 90
// characters. An empty result falls back to a timestamped placeholder so
// the slug is never empty.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fmt.Sprintf("service-%d", time.Now().Unix())
	}
	if len(s) > maxSlugLength {
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	return s
}

// SlugCandidates returns up to n slugs to try in order when creating a
// remote entry: the base slug first, then random-suffixed alternates, with
// a timestamp-suffixed slug last. Consumers try each until one succeeds or
// the list is exhausted.
func SlugCandidates(title string, n int) []string {
	if n <= 0 {
		return nil
	}
	base := Slugify(title)
	candidates := make([]string, 0, n)
	candidates = append(candidates, base)
	for len(candidates) < n-1 {
		candidates = append(candidates, fmt.Sprintf("%s-%04d", base, rand.Intn(10000)))
	}
	if len(candidates) < n {
		candidates = append(candidates, fmt.Sprintf("%s-%d", base, time.Now().Unix()))
	}
	return candidates
}
