package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make converts free text into a URL-safe identifier: lowercase, with every
// run of non-alphanumeric characters collapsed into a single hyphen.
// Whitespace-only or punctuation-only input yields an empty string.
func Make(text string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// WithSuffix appends a numeric disambiguation suffix. Suffixes start at 2;
// anything below that returns the slug unchanged.
func WithSuffix(s string, n int) string {
	if n < 2 {
		return s
	}
	return s + "-" + strconv.Itoa(n)
}
