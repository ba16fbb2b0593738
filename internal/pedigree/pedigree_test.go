package pedigree

import (
	"testing"

	"github.com/dgallion1/broodsire/internal/doctree"
	"github.com/dgallion1/broodsire/internal/marker"
	pt "github.com/dgallion1/broodsire/internal/pedigree/pedigreetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifier() *marker.Classifier {
	return marker.New(marker.DefaultVocabulary())
}

func TestExtract_StormCat(t *testing.T) {
	ix := Extract(pt.StormCat(), classifier())

	require.Equal(t, []string{"Storm Cat"}, ix.Sires)
	dams := ix.Dams("Storm Cat")
	require.Len(t, dams, 2)

	a, b := dams[0], dams[1]
	assert.Equal(t, "Mare A@ (1995)", a.Name)
	assert.Equal(t, 1995, a.BirthYear)
	assert.Equal(t, "Storm Cat", a.Sire)
	assert.Equal(t, []string{"sx"}, a.OffspringIDs, "self, dangling, namesake and duplicate links are dropped")

	assert.Equal(t, "Mare B@ (1998)", b.Name)
	assert.Equal(t, 1998, b.BirthYear)
	assert.Equal(t, []string{"sy"}, b.OffspringIDs)

	sire, ok := ix.SireOf("sx")
	require.True(t, ok)
	assert.Equal(t, "Sire Q", sire)
	text, ok := ix.TextOf("sy")
	require.True(t, ok)
	assert.Equal(t, "Son Y (G1-9)", text)

	_, ok = ix.SireOf("root")
	assert.False(t, ok, "the root topic has no sire")
	assert.Equal(t, 8, ix.Nodes)
	assert.Equal(t, 2, ix.DamCount())
}

func TestExtract_Invariants(t *testing.T) {
	c := classifier()
	ix := Extract(pt.StormCat(), c)
	for sire, dams := range ix.SireDams {
		for _, d := range dams {
			assert.NotEmpty(t, d.Name)
			assert.True(t, c.IsElite(d.Name), "%s under %s is not elite", d.Name, sire)
			for _, id := range d.OffspringIDs {
				assert.NotEqual(t, d.ID, id)
				text, ok := ix.Text[id]
				require.True(t, ok, "offspring %s must resolve", id)
				assert.NotEqual(t, c.Normalize(d.Name), c.Normalize(text))
			}
		}
	}
}

func TestExtract_MissingYearIsZero(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "", nil,
		pt.N("Sire", "", nil, pt.N("Nameless Mare@", "m", nil)),
	)}
	ix := Extract(tree, classifier())
	require.Len(t, ix.Dams("Sire"), 1)
	assert.Equal(t, 0, ix.Dams("Sire")[0].BirthYear)
	assert.Equal(t, []string{}, ix.Dams("Sire")[0].OffspringIDs)
}

func TestExtract_YearSearchesWholeText(t *testing.T) {
	assert.Equal(t, 2003, ParseYear("Mare@ (b. 2003, 1st foal 2007)"))
	assert.Equal(t, 1234, ParseYear("123456"))
	assert.Equal(t, 0, ParseYear("Mare@ 99"))
}

func TestExtract_RootChildrenHaveNoSire(t *testing.T) {
	// An elite topic directly under an empty synthetic root has no sire.
	tree := &doctree.DocTree{Root: pt.N("", "", nil,
		pt.N("Top Mare@ 2001", "t", nil, pt.N("Daughter@ 2010", "d", nil)),
	)}
	ix := Extract(tree, classifier())
	assert.Equal(t, []string{"Top Mare@ 2001"}, ix.Sires)
	assert.Len(t, ix.Dams("Top Mare@ 2001"), 1)
}

func TestExtract_SkipsEmptyText(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "", nil,
		pt.N("Sire", "", nil,
			pt.N("Mare@ 2000", "m", []string{"blank"}),
			pt.N("   ", "blank", nil, pt.N("Orphan@ 2005", "o", nil)),
		),
	)}
	ix := Extract(tree, classifier())
	assert.Equal(t, []string{"Sire"}, ix.Sires, "children of blank topics have no sire")
	assert.Empty(t, ix.Dams("Sire")[0].OffspringIDs, "blank topics do not resolve")
	_, ok := ix.TextOf("blank")
	assert.False(t, ok)
}

func TestExtract_MergesSiresByName(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "", nil,
		pt.N("Storm Cat", "sc1", nil, pt.N("Mare A@ 1995", "a", nil)),
		pt.N("Other branch", "", nil,
			pt.N("Storm Cat ", "sc2", nil, pt.N("Mare C@ 2001", "c", nil)),
		),
	)}
	ix := Extract(tree, classifier())
	require.Equal(t, []string{"Storm Cat"}, ix.Sires)
	dams := ix.Dams("Storm Cat")
	require.Len(t, dams, 2)
	assert.Equal(t, "Mare A@ 1995", dams[0].Name)
	assert.Equal(t, "Mare C@ 2001", dams[1].Name)
}

func TestExtract_CyclicLinksTerminate(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "r", nil,
		pt.N("Sire", "s", []string{"m"},
			pt.N("Mare@ 2000", "m", []string{"s", "r", "m"}),
		),
	)}
	ix := Extract(tree, classifier())
	require.Len(t, ix.Dams("Sire"), 1)
	assert.Equal(t, []string{"s", "r"}, ix.Dams("Sire")[0].OffspringIDs)
}

func TestExtract_EliteBeyondFirstDepth(t *testing.T) {
	tree := &doctree.DocTree{Root: pt.N("root", "", nil,
		pt.N("Sire", "", nil,
			pt.N("Mare@ 1990", "m1", nil,
				pt.N("Granddaughter@ 2005", "g", nil),
			),
		),
	)}
	ix := Extract(tree, classifier())
	assert.Equal(t, []string{"Sire", "Mare@ 1990"}, ix.Sires)
}
