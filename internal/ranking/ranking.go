// Package ranking orders broodmare sires by their in-range elite daughters.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/broodsire/internal/analysis"
	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/pedigree"
)

// Order selects the ranking key.
type Order string

const (
	OrderCount Order = "count"
	OrderScore Order = "score"
)

// ParseOrder accepts "count", "score" or "" (count).
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderCount:
		return OrderCount, nil
	case OrderScore:
		return OrderScore, nil
	}
	return "", fmt.Errorf("unknown order %q (want count or score)", s)
}

// Query is the caller-facing filter set.
type Query struct {
	From   int    // inclusive birth-year lower bound
	To     int    // inclusive birth-year upper bound
	Limit  int    // <= 0 means no limit
	Order  Order  // OrderCount or OrderScore
	Search string // case-insensitive match on sire, dam or offspring text
}

// Validate rejects ranges that can match nothing by construction.
func (q Query) Validate() error {
	if q.From > q.To {
		return fmt.Errorf("year range %d-%d is inverted", q.From, q.To)
	}
	if q.Order != "" && q.Order != OrderCount && q.Order != OrderScore {
		return fmt.Errorf("unknown order %q", q.Order)
	}
	return nil
}

// Entry is one ranked sire.
type Entry struct {
	Sire      string              `json:"sire"`
	Dams      []pedigree.EliteDam `json:"dams"`       // in range, document order
	TotalDams int                 `json:"total_dams"` // regardless of range or search
	Score     float64             `json:"score"`
	Analysis  *analysis.Result    `json:"-"`
}

// FilterYears keeps dams born within [from, to]. Year 0 (unknown) passes
// only when the range includes 0.
func FilterYears(dams []pedigree.EliteDam, from, to int) []pedigree.EliteDam {
	out := make([]pedigree.EliteDam, 0, len(dams))
	for _, d := range dams {
		if d.BirthYear >= from && d.BirthYear <= to {
			out = append(out, d)
		}
	}
	return out
}

// Matches reports whether the needle occurs, case-insensitively, in the
// sire name, the dam name or the text of any of her offspring.
func Matches(dam pedigree.EliteDam, lookup analysis.Lookup, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(dam.Sire), needle) || strings.Contains(strings.ToLower(dam.Name), needle) {
		return true
	}
	for _, id := range dam.OffspringIDs {
		if t, ok := lookup.TextOf(id); ok && strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// Rank filters every sire's dams by year range and search, drops sires left
// with none, and sorts the rest by dam count or score, descending. Ties keep
// document order. Score ordering analyses each surviving group.
func Rank(ix *pedigree.Index, q Query, c *marker.Classifier) []Entry {
	entries := make([]Entry, 0, len(ix.Sires))
	for _, sire := range ix.Sires {
		all := ix.Dams(sire)
		dams := FilterYears(all, q.From, q.To)
		if q.Search != "" {
			kept := dams[:0]
			for _, d := range dams {
				if Matches(d, ix, q.Search) {
					kept = append(kept, d)
				}
			}
			dams = kept
		}
		if len(dams) == 0 {
			continue
		}
		e := Entry{Sire: sire, Dams: dams, TotalDams: len(all)}
		if q.Order == OrderScore {
			res := analysis.Analyze(dams, ix, c)
			e.Analysis = &res
			e.Score = res.Score
		}
		entries = append(entries, e)
	}

	if q.Order == OrderScore {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	} else {
		sort.SliceStable(entries, func(i, j int) bool { return len(entries[i].Dams) > len(entries[j].Dams) })
	}

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}
	return entries
}
