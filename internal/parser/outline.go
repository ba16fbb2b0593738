package parser

import (
	"regexp"
	"strings"
)

// Plain-text and Markdown outlines carry identifiers and cross-links inline:
//
//	Mare A@ 1995 {#mare-a} [[son-x]] [[daughter-y]]
//
// "{#id}" names the topic and each "[[id]]" links to another topic.
var (
	anchorPattern = regexp.MustCompile(`\{#([^{}\s]+)\}`)
	wikiPattern   = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)
)

// splitAnchors strips anchor and link markup from an outline line and
// returns the remaining text, the topic ID and the link targets.
func splitAnchors(line string) (text, id string, links []string) {
	if m := anchorPattern.FindStringSubmatch(line); m != nil {
		id = m[1]
	}
	line = anchorPattern.ReplaceAllString(line, "")
	for _, m := range wikiPattern.FindAllStringSubmatch(line, -1) {
		if target := strings.TrimSpace(m[1]); target != "" {
			links = append(links, target)
		}
	}
	line = wikiPattern.ReplaceAllString(line, "")
	return strings.Join(strings.Fields(line), " "), id, links
}
