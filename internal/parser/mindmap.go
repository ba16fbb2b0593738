package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/dgallion1/broodsire/internal/doctree"
	"golang.org/x/net/html"
)

// MindMapParser handles Freeplane / FreeMind .mm files.
type MindMapParser struct{}

type mmMap struct {
	XMLName xml.Name `xml:"map"`
	Nodes   []mmNode `xml:"node"`
}

type mmNode struct {
	Text     string          `xml:"TEXT,attr"`
	ID       string          `xml:"ID,attr"`
	Arrows   []mmArrow       `xml:"arrowlink"`
	Rich     []mmRichContent `xml:"richcontent"`
	Children []mmNode        `xml:"node"`
}

type mmArrow struct {
	Destination string `xml:"DESTINATION,attr"`
}

type mmRichContent struct {
	Type  string `xml:"TYPE,attr"`
	Inner string `xml:",innerxml"`
}

func (p *MindMapParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	var m mmMap
	dec := xml.NewDecoder(r)
	dec.Strict = true
	if err := dec.Decode(&m); err != nil {
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			return nil, newParseError(syn.Line, "parse mind map", err)
		}
		return nil, newParseError(0, "parse mind map", err)
	}
	if len(m.Nodes) == 0 {
		return nil, newParseError(0, "mind map has no root node", nil)
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(filename, ".mm"),
	}

	if len(m.Nodes) == 1 {
		tree.Root = convertMMNode(&m.Nodes[0])
	} else {
		// Several top-level topics: hang them off an empty synthetic root.
		root := &doctree.DocNode{}
		for i := range m.Nodes {
			root.Children = append(root.Children, convertMMNode(&m.Nodes[i]))
		}
		tree.Root = root
	}

	if t := strings.TrimSpace(tree.Root.Text); t != "" {
		tree.Title = t
	}
	return tree, nil
}

func convertMMNode(n *mmNode) *doctree.DocNode {
	node := &doctree.DocNode{
		Text: n.Text,
		ID:   strings.TrimSpace(n.ID),
	}
	if node.Text == "" {
		node.Text = richNodeText(n.Rich)
	}
	for _, a := range n.Arrows {
		if dest := strings.TrimSpace(a.Destination); dest != "" {
			node.Links = append(node.Links, dest)
		}
	}
	for i := range n.Children {
		node.Children = append(node.Children, convertMMNode(&n.Children[i]))
	}
	return node
}

// richNodeText extracts the visible text of a NODE-type rich content block.
// Notes and details blocks are ignored.
func richNodeText(rich []mmRichContent) string {
	for _, rc := range rich {
		if rc.Type != "" && !strings.EqualFold(rc.Type, "NODE") {
			continue
		}
		doc, err := html.Parse(strings.NewReader(rc.Inner))
		if err != nil {
			continue
		}
		root := doc
		if body := findBody(doc); body != nil {
			root = body
		}
		if t := strings.Join(strings.Fields(textContent(root)), " "); t != "" {
			return t
		}
	}
	return ""
}
