// Package marker classifies the free-text decorations hand-authored pedigree
// maps use: elite markers, sex tags and grade-1 win counts. The vocabulary is
// data, so traversal and scoring code never hard-code a marker character.
package marker

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Vocabulary is the configurable marker set.
type Vocabulary struct {
	// Elite markers flag a merit individual, e.g. "@" or "＠".
	Elite []string `yaml:"elite"`

	// Daughter is the literal sex tag that marks a filly/mare offspring.
	Daughter string `yaml:"daughter"`

	// G1Prefix precedes the grade-1 win count, e.g. "G1-" in "G1-8".
	G1Prefix string `yaml:"g1_prefix"`

	// G1Threshold is the minimum win count for a high-grade offspring.
	G1Threshold int `yaml:"g1_threshold"`

	// Decorations are extra literals stripped during normalization
	// (sex symbols and the like). Elite markers are always stripped.
	Decorations []string `yaml:"decorations"`
}

// DefaultVocabulary returns the marker set used by the reference maps.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Elite:       []string{"@", "＠"},
		Daughter:    "(F)",
		G1Prefix:    "G1-",
		G1Threshold: 7,
		Decorations: []string{"♀", "♂", "★", "☆", "(F)", "(M)", "(암)", "(수)"},
	}
}

// Validate reports vocabulary settings no classifier can work with.
func (v Vocabulary) Validate() error {
	if len(nonEmpty(v.Elite)) == 0 {
		return fmt.Errorf("at least one elite marker is required")
	}
	if strings.TrimSpace(v.Daughter) == "" {
		return fmt.Errorf("daughter marker is required")
	}
	if strings.TrimSpace(v.G1Prefix) == "" {
		return fmt.Errorf("g1 prefix is required")
	}
	if v.G1Threshold <= 0 {
		return fmt.Errorf("g1 threshold must be positive, got %d", v.G1Threshold)
	}
	return nil
}

// Classifier evaluates marker predicates over raw node text.
// It is immutable and safe for concurrent use.
type Classifier struct {
	vocab       Vocabulary
	elite       []string
	decorations []string
	g1          *regexp.Regexp
}

// New builds a Classifier. Empty vocabulary fields fall back to defaults.
func New(v Vocabulary) *Classifier {
	def := DefaultVocabulary()
	if len(nonEmpty(v.Elite)) == 0 {
		v.Elite = def.Elite
	}
	if v.Daughter == "" {
		v.Daughter = def.Daughter
	}
	if v.G1Prefix == "" {
		v.G1Prefix = def.G1Prefix
	}
	if v.G1Threshold <= 0 {
		v.G1Threshold = def.G1Threshold
	}

	c := &Classifier{
		vocab: v,
		elite: nonEmpty(v.Elite),
		g1:    regexp.MustCompile(regexp.QuoteMeta(v.G1Prefix) + `\s*(\d+)`),
	}
	// Decorations are matched against folded text, so fold them too.
	seen := make(map[string]bool)
	for _, d := range append(append([]string{}, c.elite...), nonEmpty(v.Decorations)...) {
		d = fold(d)
		if d != "" && !seen[d] {
			seen[d] = true
			c.decorations = append(c.decorations, d)
		}
	}
	// Longest literals first so overlapping decorations are removed whole.
	sort.SliceStable(c.decorations, func(i, j int) bool {
		return len(c.decorations[i]) > len(c.decorations[j])
	})
	return c
}

// Vocabulary returns the effective marker set.
func (c *Classifier) Vocabulary() Vocabulary {
	return c.vocab
}

// IsElite reports whether raw text carries any elite marker.
func (c *Classifier) IsElite(text string) bool {
	return c.firstElite(text) >= 0
}

// IsDaughter reports whether raw text carries the daughter tag.
func (c *Classifier) IsDaughter(text string) bool {
	return strings.Contains(text, c.vocab.Daughter)
}

// EliteBeforeDaughter reports whether an elite marker occurs strictly before
// the first daughter tag.
func (c *Classifier) EliteBeforeDaughter(text string) bool {
	d := strings.Index(text, c.vocab.Daughter)
	if d < 0 {
		return false
	}
	e := c.firstElite(text)
	return e >= 0 && e < d
}

// G1Wins returns the largest grade-1 win count annotated in text and
// whether any annotation was found.
func (c *Classifier) G1Wins(text string) (int, bool) {
	best, found := 0, false
	for _, m := range c.g1.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !found || n > best {
			best, found = n, true
		}
	}
	return best, found
}

// IsHighGrade reports a grade-1 win count at or above the threshold.
func (c *Classifier) IsHighGrade(text string) bool {
	n, ok := c.G1Wins(text)
	return ok && n >= c.vocab.G1Threshold
}

func (c *Classifier) firstElite(text string) int {
	first := -1
	for _, m := range c.elite {
		if i := strings.Index(text, m); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	return first
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
