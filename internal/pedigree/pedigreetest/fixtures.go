// Package pedigreetest provides shared mind-map fixtures for tests.
package pedigreetest

import "github.com/dgallion1/broodsire/internal/doctree"

// N builds a topic.
func N(text, id string, links []string, children ...*doctree.DocNode) *doctree.DocNode {
	return &doctree.DocNode{Text: text, ID: id, Links: links, Children: children}
}

// StormCat returns the reference map:
//
//	Stallions
//	├── Storm Cat
//	│   ├── Mare A@ (1995) → Son X, itself, a dangling id, a namesake, Son X again
//	│   └── Mare B@ (1998) → Son Y
//	├── Sire Q
//	│   ├── Son X (G1-8)
//	│   └── Son Y (G1-9)
//	└── Mare A (dam line)
func StormCat() *doctree.DocTree {
	root := N("Stallions", "root", nil,
		N("Storm Cat", "sc", nil,
			N("Mare A@ (1995)", "ma", []string{"sx", "ma", "ghost", "ma-alias", "sx"}),
			N("Mare B@ (1998)", "mb", []string{"sy"}),
		),
		N("Sire Q", "q", nil,
			N("Son X (G1-8)", "sx", nil),
			N("Son Y (G1-9)", "sy", nil),
		),
		N("Mare A (dam line)", "ma-alias", nil),
	)
	return &doctree.DocTree{Title: "Stallions", Root: root}
}
