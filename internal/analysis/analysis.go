// Package analysis scores a broodmare sire from the elite daughters filed
// under him and the foals they produced.
package analysis

import (
	"sort"

	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/pedigree"
)

// Score weights. Published reports were computed with these values; changing
// them changes every ranking.
const (
	WeightDams           = 1.0
	WeightHighGradeSons  = 1.5
	WeightEliteDaughters = 2.0
	WeightProductiveDams = 1.0
)

// Unknown stands in for text that cannot be resolved. It matches no marker
// and is never reported as a nick.
const Unknown = "unknown"

// Lookup resolves offspring IDs. *pedigree.Index implements it.
type Lookup interface {
	TextOf(id string) (string, bool)
	SireOf(id string) (string, bool)
}

// Grade classifies one offspring.
type Grade string

const (
	GradeNone          Grade = ""
	GradeHighGradeSon  Grade = "s2"
	GradeEliteDaughter Grade = "n2"
)

// Breakdown holds the score inputs.
type Breakdown struct {
	N1 int `json:"n1"` // elite dams
	S2 int `json:"s2"` // high-grade sons
	N2 int `json:"n2"` // elite daughters
	K  int `json:"k"`  // distinct dams with at least one s2 or n2 foal
}

// Offspring is one resolved foal of an elite dam.
type Offspring struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Sire  string `json:"sire"`
	Grade Grade  `json:"grade,omitempty"`
	Nick  bool   `json:"nick"`
}

// DamReport is an elite dam with her annotated foals.
type DamReport struct {
	pedigree.EliteDam
	Offspring  []Offspring `json:"offspring"`
	Productive bool        `json:"productive"`
}

// Result is the analysis of one sire group.
type Result struct {
	NickSires []string    `json:"nick_sires"`
	Score     float64     `json:"score"`
	Breakdown Breakdown   `json:"breakdown"`
	Dams      []DamReport `json:"dams"`
}

// Score applies the fixed weights to a breakdown.
func Score(b Breakdown) float64 {
	return WeightDams*float64(b.N1) +
		WeightHighGradeSons*float64(b.S2) +
		WeightEliteDaughters*float64(b.N2) +
		WeightProductiveDams*float64(b.K)
}

// Analyze computes nicks and the merit score for one sire's elite dams
// (already filtered by the caller). It is a pure function of its inputs.
func Analyze(dams []pedigree.EliteDam, lookup Lookup, c *marker.Classifier) Result {
	res := Result{
		NickSires: []string{},
		Dams:      make([]DamReport, 0, len(dams)),
	}
	res.Breakdown.N1 = len(dams)

	productive := make(map[string]bool)
	// offspring sire -> distinct dam names that produced by him
	pairings := make(map[string]map[string]bool)

	for _, dam := range dams {
		report := DamReport{EliteDam: dam, Offspring: make([]Offspring, 0, len(dam.OffspringIDs))}
		for _, id := range dam.OffspringIDs {
			off := Offspring{ID: id, Text: Unknown, Sire: Unknown}
			if t, ok := lookup.TextOf(id); ok && t != "" {
				off.Text = t
			}
			if s, ok := lookup.SireOf(id); ok && s != "" {
				off.Sire = s
			}

			off.Grade = grade(off.Text, c)
			switch off.Grade {
			case GradeHighGradeSon:
				res.Breakdown.S2++
			case GradeEliteDaughter:
				res.Breakdown.N2++
			}
			if off.Grade != GradeNone {
				report.Productive = true
				productive[dam.Name] = true
			}

			if off.Sire != Unknown {
				if pairings[off.Sire] == nil {
					pairings[off.Sire] = make(map[string]bool)
				}
				pairings[off.Sire][dam.Name] = true
			}
			report.Offspring = append(report.Offspring, off)
		}
		res.Dams = append(res.Dams, report)
	}

	res.Breakdown.K = len(productive)
	res.Score = Score(res.Breakdown)

	for sire, damNames := range pairings {
		if len(damNames) >= 2 {
			res.NickSires = append(res.NickSires, sire)
		}
	}
	sort.Strings(res.NickSires)

	for i := range res.Dams {
		for j := range res.Dams[i].Offspring {
			off := &res.Dams[i].Offspring[j]
			off.Nick = res.IsNick(off.Sire)
		}
	}
	return res
}

// IsNick reports whether sire is one of the result's nick sires.
func (r Result) IsNick(sire string) bool {
	i := sort.SearchStrings(r.NickSires, sire)
	return i < len(r.NickSires) && r.NickSires[i] == sire
}

func grade(text string, c *marker.Classifier) Grade {
	if text == Unknown {
		return GradeNone
	}
	daughter := c.IsDaughter(text)
	switch {
	case !daughter && c.IsHighGrade(text):
		return GradeHighGradeSon
	case daughter && c.EliteBeforeDaughter(text):
		return GradeEliteDaughter
	}
	return GradeNone
}
