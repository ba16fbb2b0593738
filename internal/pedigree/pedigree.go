// Package pedigree extracts breeding relationships from a mind-map tree.
//
// Tree edges are ownership: a topic nested under a stallion is that
// stallion's daughter. Cross-links are weak references recording a mare's
// foals wherever they live in the document; they are resolved only through
// the ID tables built in the first pass and never walked.
//
// Sires are identified by display text, not by ID. Two mares nested under
// identically spelled stallion topics land in the same group even when the
// topics are different nodes, and spelling variants split one stallion into
// several groups. Reports depend on this grouping, so it is kept as is.
package pedigree

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/broodsire/internal/doctree"
	"github.com/dgallion1/broodsire/internal/marker"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// EliteDam is one elite-marked topic and what the map records about it.
type EliteDam struct {
	Name         string   `json:"name"`
	ID           string   `json:"id,omitempty"`
	BirthYear    int      `json:"birth_year"` // 0 when the text has no year
	Sire         string   `json:"sire"`
	OffspringIDs []string `json:"offspring_ids"`
}

// Index is the extraction result. It is never mutated after Extract returns
// and may be shared between goroutines.
type Index struct {
	// SireDams groups elite dams by the text of their tree-parent, in
	// document order within each group.
	SireDams map[string][]EliteDam

	// Sires lists SireDams keys in first-seen document order.
	Sires []string

	// Text maps node ID to trimmed display text.
	Text map[string]string

	// ParentText maps node ID to the trimmed text of its tree-parent.
	ParentText map[string]string

	Nodes int
	Links int
}

// Extract indexes every identified topic, then walks the ownership tree
// collecting elite dams under their sires. Missing attributes degrade to
// empty values; extraction never fails.
func Extract(tree *doctree.DocTree, c *marker.Classifier) *Index {
	ix := &Index{
		SireDams:   make(map[string][]EliteDam),
		Text:       make(map[string]string),
		ParentText: make(map[string]string),
	}

	// Pass 1: ID tables over the whole document, so links may point forward.
	tree.Walk(func(node, parent *doctree.DocNode) {
		ix.Nodes++
		ix.Links += len(node.Links)
		text := strings.TrimSpace(node.Text)
		if text == "" || node.ID == "" {
			return
		}
		if _, dup := ix.Text[node.ID]; dup {
			return
		}
		ix.Text[node.ID] = text
		if pt := parentText(parent); pt != "" {
			ix.ParentText[node.ID] = pt
		}
	})

	// Pass 2: ownership walk.
	tree.Walk(func(node, parent *doctree.DocNode) {
		text := strings.TrimSpace(node.Text)
		if text == "" || !c.IsElite(node.Text) {
			return
		}
		sire := parentText(parent)
		if sire == "" {
			return
		}
		if _, ok := ix.SireDams[sire]; !ok {
			ix.Sires = append(ix.Sires, sire)
		}
		ix.SireDams[sire] = append(ix.SireDams[sire], EliteDam{
			Name:         text,
			ID:           node.ID,
			BirthYear:    ParseYear(node.Text),
			Sire:         sire,
			OffspringIDs: ix.offspring(node, c.Normalize(text), c),
		})
	})

	return ix
}

// offspring resolves a dam's cross-links, dropping dangling targets,
// duplicates and anything that names the dam herself.
func (ix *Index) offspring(node *doctree.DocNode, self string, c *marker.Classifier) []string {
	ids := []string{}
	seen := make(map[string]bool, len(node.Links))
	for _, target := range node.Links {
		if target == "" || seen[target] || (node.ID != "" && target == node.ID) {
			continue
		}
		seen[target] = true
		text, ok := ix.Text[target]
		if !ok {
			continue
		}
		if c.Normalize(text) == self {
			continue
		}
		ids = append(ids, target)
	}
	return ids
}

// ParseYear returns the first run of four digits anywhere in text, or 0.
func ParseYear(text string) int {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return y
}

// Dams returns the elite dams grouped under sire.
func (ix *Index) Dams(sire string) []EliteDam {
	return ix.SireDams[sire]
}

// TextOf returns the display text for a node ID.
func (ix *Index) TextOf(id string) (string, bool) {
	t, ok := ix.Text[id]
	return t, ok
}

// SireOf returns the tree-parent text of a node ID, i.e. the stallion the
// map files that horse under.
func (ix *Index) SireOf(id string) (string, bool) {
	t, ok := ix.ParentText[id]
	return t, ok
}

// DamCount is the number of elite dams across all sires.
func (ix *Index) DamCount() int {
	n := 0
	for _, dams := range ix.SireDams {
		n += len(dams)
	}
	return n
}

func parentText(parent *doctree.DocNode) string {
	if parent == nil {
		return ""
	}
	return strings.TrimSpace(parent.Text)
}
