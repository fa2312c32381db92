package service

import (
	"regexp"
	"strings"
)

const (
	// wordsPerMinute assumed reading speed for read time derivation
	wordsPerMinute = 200
	// excerptRunes number of content runes kept in a derived excerpt
	excerptRunes = 150
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	hyphenRuns       = regexp.MustCompile(`-+`)
	htmlTags         = regexp.MustCompile(`<[^>]*>`)
)

// Slugify derives a url-safe name from a title.
//
// lowercase -> drop chars outside [a-z0-9\s-] -> whitespace runs to one
// hyphen -> hyphen runs to one -> trim. Idempotent.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "- \t\n")
}

// ComputeReadTime estimates reading minutes as ceil(words/200), at least 1.
func ComputeReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return minutes
}

// DeriveExcerpt builds an excerpt from the first 150 runes of the
// tag-stripped content, with a "..." suffix.
func DeriveExcerpt(content string) string {
	plain := strings.TrimSpace(htmlTags.ReplaceAllString(content, ""))
	runes := []rune(plain)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}

	return string(runes) + "..."
}
