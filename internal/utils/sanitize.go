package utils

import (
	"regexp"
	"strings"
)

// Model replies sometimes arrive with markdown even when the prompt asks
// for plain text. The chat reply is rendered verbatim in a plain-text
// bubble, so residual markers are stripped before returning.

var headingRe = regexp.MustCompile(`(?m)^\s*#{1,6}\s+`)

var markupReplacer = strings.NewReplacer(
	"```", "",
	"**", "",
	"__", "",
	"*", "",
	"_", "",
	"`", "",
)

// StripMarkup removes bold/italic/code-fence/code-span/heading markers
// from s by fixed textual substitution.
func StripMarkup(s string) string {
	s = headingRe.ReplaceAllString(s, "")
	return markupReplacer.Replace(s)
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
