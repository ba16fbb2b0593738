package report

import (
	"encoding/json"
	"testing"

	"github.com/dgallion1/broodsire/internal/analysis"
	"github.com/dgallion1/broodsire/internal/doctree"
	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/pedigree"
	pt "github.com/dgallion1/broodsire/internal/pedigree/pedigreetest"
	"github.com/dgallion1/broodsire/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stormCat() (*pedigree.Index, *marker.Classifier) {
	c := marker.New(marker.DefaultVocabulary())
	return pedigree.Extract(pt.StormCat(), c), c
}

func TestBuild_AnnotatesEveryRow(t *testing.T) {
	ix, c := stormCat()
	rep := Build(ix, c, ranking.Query{From: 1900, To: 2030})

	assert.Equal(t, ranking.OrderCount, rep.Order)
	require.Len(t, rep.Sires, 1)
	row := rep.Sires[0]
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, "Storm Cat", row.Sire)
	assert.Equal(t, 2, row.InRange)
	assert.Equal(t, 2, row.TotalDams)
	assert.Equal(t, 7.0, row.Score)
	assert.Equal(t, []string{"Sire Q"}, row.NickSires)
	require.Len(t, row.Dams, 2)
	require.Len(t, row.Dams[1].Offspring, 1)
	assert.Equal(t, "Son Y (G1-9)", row.Dams[1].Offspring[0].Text)
	assert.True(t, row.Dams[1].Offspring[0].Nick)
}

func TestBuild_ScoreMatchesBetweenOrders(t *testing.T) {
	ix, c := stormCat()
	byCount := Build(ix, c, ranking.Query{From: 1900, To: 2030, Order: ranking.OrderCount})
	byScore := Build(ix, c, ranking.Query{From: 1900, To: 2030, Order: ranking.OrderScore})
	require.Len(t, byScore.Sires, 1)
	assert.Equal(t, byCount.Sires[0].Score, byScore.Sires[0].Score)
	assert.Equal(t, byCount.Sires[0].Breakdown, byScore.Sires[0].Breakdown)
}

func TestBuild_RangeNarrowsAnalysis(t *testing.T) {
	ix, c := stormCat()
	rep := Build(ix, c, ranking.Query{From: 1995, To: 1995})
	require.Len(t, rep.Sires, 1)
	row := rep.Sires[0]
	assert.Equal(t, 1, row.InRange)
	assert.Equal(t, 2, row.TotalDams)
	assert.Empty(t, row.NickSires, "one dam cannot make a nick")
	assert.Equal(t, 1.0+1.5+1.0, row.Score)
}

func TestBuild_EmptyIsNotNil(t *testing.T) {
	ix, c := stormCat()
	rep := Build(ix, c, ranking.Query{From: 2020, To: 2030})
	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sires":[]`)
}

func TestSire(t *testing.T) {
	ix, c := stormCat()
	row, ok := Sire(ix, c, "Storm Cat", ranking.Query{From: 1900, To: 2030, Limit: 1})
	require.True(t, ok)
	assert.Equal(t, "Storm Cat", row.Sire)

	_, ok = Sire(ix, c, "Sire Q", ranking.Query{From: 1900, To: 2030})
	assert.False(t, ok, "Sire Q has no elite daughters")
}

func TestSearchDams_BySireName(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "", nil,
		pt.N("Mariah's Storm", "", nil,
			pt.N("Later@ 2004", "l", nil),
			pt.N("Earlier@ 1999", "e", nil),
			pt.N("Unknown@", "u", nil),
		),
		pt.N("Storm Bird", "", nil, pt.N("Other@ 1990", "o", nil)),
	)}
	c := marker.New(marker.DefaultVocabulary())
	ix := pedigree.Extract(tree, c)

	groups := SearchDams(ix, c, "  STORM ")
	require.Len(t, groups, 2)
	assert.Equal(t, "Mariah's Storm", groups[0].Sire)
	names := []string{}
	for _, d := range groups[0].Dams {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Unknown@", "Earlier@ 1999", "Later@ 2004"}, names)

	// The index itself keeps document order.
	assert.Equal(t, "Later@ 2004", ix.Dams("Mariah's Storm")[0].Name)

	assert.Empty(t, SearchDams(ix, c, "secretariat"))
	assert.Empty(t, SearchDams(ix, c, ""))
}

func TestSearchDams_ByDamNameListsOffspring(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "", nil,
		pt.N("Storm Bird", "", nil,
			pt.N("Mariah's Storm@ 1991", "ms", []string{"gs"}),
			pt.N("Other Mare@ 1985", "om", nil),
		),
		pt.N("Sire Q", "", nil, pt.N("Giant's Causeway (G1-9)", "gs", nil)),
	)}
	c := marker.New(marker.DefaultVocabulary())
	ix := pedigree.Extract(tree, c)

	groups := SearchDams(ix, c, "mariah")
	require.Len(t, groups, 1)
	assert.Equal(t, "Storm Bird", groups[0].Sire)
	require.Len(t, groups[0].Dams, 1, "only the named dam is listed")

	dam := groups[0].Dams[0]
	assert.Equal(t, "Mariah's Storm@ 1991", dam.Name)
	assert.Equal(t, 1991, dam.BirthYear)
	assert.True(t, dam.Productive)
	require.Len(t, dam.Offspring, 1)
	assert.Equal(t, "Giant's Causeway (G1-9)", dam.Offspring[0].Text)
	assert.Equal(t, "Sire Q", dam.Offspring[0].Sire)
	assert.Equal(t, analysis.GradeHighGradeSon, dam.Offspring[0].Grade)

	// Full-width input folds to the same name.
	assert.Len(t, SearchDams(ix, c, "ＭＡＲＩＡＨ"), 1)
}
