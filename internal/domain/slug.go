package domain

import (
	"regexp"
	"strings"
)

const maxSlugLen = 100

var (
	slugStripRe  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL identifier from a title: lowercase, special characters
// stripped, whitespace runs collapsed to single hyphens, capped at 100 chars.
// Computed once at submission time; uniqueness is not checked here.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}
