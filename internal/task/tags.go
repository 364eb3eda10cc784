package task

import (
	"regexp"
	"strings"
)

var tagExpr = regexp.MustCompile(`#\w+`)

// ExtractTags returns every #word token in text, lowercased and without
// the leading '#', in order of appearance. Duplicates are kept.
func ExtractTags(text string) []string {
	matches := tagExpr.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1:]))
	}
	return tags
}

// StripTags removes every #word token and trims the ends. Internal
// whitespace is left as-is.
func StripTags(text string) string {
	return strings.TrimSpace(tagExpr.ReplaceAllString(text, ""))
}
