package marker

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ordinalPrefix matches list numbering authors put in front of names:
// "1. ", "2) ", "3rd ".
var ordinalPrefix = regexp.MustCompile(`^\s*(?:\d+(?:st|nd|rd|th)\b|\d+[.)])\s*`)

// Normalize returns the canonical identity key for a display string. Two
// spellings of the same horse under the map's authoring conventions
// normalize identically; unrelated horses occasionally collide too.
func (c *Classifier) Normalize(text string) string {
	s := fold(text)
	for _, d := range c.decorations {
		s = strings.ReplaceAll(s, d, " ")
	}
	s = ordinalPrefix.ReplaceAllString(s, "")
	// Everything from the first parenthesis on is performance annotation.
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// fold maps compatibility characters (full-width "＠", "（") to their
// canonical forms.
func fold(s string) string {
	return norm.NFKC.String(s)
}
