// Package report assembles what the presentation layer renders: ranked
// sires, each with its elite daughters, each with annotated offspring.
package report

import (
	"sort"
	"strings"

	"github.com/dgallion1/broodsire/internal/analysis"
	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/pedigree"
	"github.com/dgallion1/broodsire/internal/ranking"
)

// SireReport is one row of the ranking with its analysis attached.
type SireReport struct {
	Rank      int                  `json:"rank"`
	Sire      string               `json:"sire"`
	InRange   int                  `json:"in_range"`
	TotalDams int                  `json:"total_dams"`
	Score     float64              `json:"score"`
	Breakdown analysis.Breakdown   `json:"breakdown"`
	NickSires []string             `json:"nick_sires"`
	Dams      []analysis.DamReport `json:"dams"`
}

// Report is a complete ranking answer.
type Report struct {
	From   int           `json:"from"`
	To     int           `json:"to"`
	Order  ranking.Order `json:"order"`
	Search string        `json:"search,omitempty"`
	Sires  []SireReport  `json:"sires"`
}

// Build ranks sires for q and analyses each returned group.
func Build(ix *pedigree.Index, c *marker.Classifier, q ranking.Query) Report {
	if q.Order == "" {
		q.Order = ranking.OrderCount
	}
	rep := Report{From: q.From, To: q.To, Order: q.Order, Search: q.Search, Sires: []SireReport{}}
	for i, e := range ranking.Rank(ix, q, c) {
		res := e.Analysis
		if res == nil {
			r := analysis.Analyze(e.Dams, ix, c)
			res = &r
		}
		rep.Sires = append(rep.Sires, newSireReport(i+1, e, *res))
	}
	return rep
}

// Sire returns the report row for one sire by exact name, ignoring the
// query's limit. ok is false when the sire has no dams matching q.
func Sire(ix *pedigree.Index, c *marker.Classifier, name string, q ranking.Query) (SireReport, bool) {
	q.Limit = 0
	for i, e := range ranking.Rank(ix, q, c) {
		if e.Sire != name {
			continue
		}
		res := e.Analysis
		if res == nil {
			r := analysis.Analyze(e.Dams, ix, c)
			res = &r
		}
		return newSireReport(i+1, e, *res), true
	}
	return SireReport{}, false
}

func newSireReport(rank int, e ranking.Entry, res analysis.Result) SireReport {
	return SireReport{
		Rank:      rank,
		Sire:      e.Sire,
		InRange:   len(e.Dams),
		TotalDams: e.TotalDams,
		Score:     res.Score,
		Breakdown: res.Breakdown,
		NickSires: res.NickSires,
		Dams:      res.Dams,
	}
}

// DamGroup lists matching elite daughters of one sire, oldest first, each
// with her resolved offspring.
type DamGroup struct {
	Sire string               `json:"sire"`
	Dams []analysis.DamReport `json:"dams"`
}

// SearchDams finds elite dams by name. A keyword found in a sire's name
// selects all of his elite daughters; otherwise a dam is listed when her own
// name contains it. Matching is case-insensitive and also compares
// normalized names. Groups keep document order.
func SearchDams(ix *pedigree.Index, c *marker.Classifier, keyword string) []DamGroup {
	groups := []DamGroup{}
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return groups
	}
	normNeedle := c.Normalize(keyword)
	matches := func(name string) bool {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
		return normNeedle != "" && strings.Contains(c.Normalize(name), normNeedle)
	}

	for _, sire := range ix.Sires {
		res := analysis.Analyze(ix.Dams(sire), ix, c)
		whole := matches(sire)
		dams := []analysis.DamReport{}
		for _, d := range res.Dams {
			if whole || matches(d.Name) {
				dams = append(dams, d)
			}
		}
		if len(dams) == 0 {
			continue
		}
		sort.SliceStable(dams, func(i, j int) bool { return dams[i].BirthYear < dams[j].BirthYear })
		groups = append(groups, DamGroup{Sire: sire, Dams: dams})
	}
	return groups
}
