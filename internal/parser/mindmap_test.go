package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/broodsire/internal/doctree"
)

const sampleMap = `<map version="freeplane 1.9.13">
<node TEXT="Stallions" ID="ID_root">
<node TEXT="Storm Cat" ID="ID_sc">
<node TEXT="Mare A@ 1995" ID="ID_ma">
<arrowlink DESTINATION="ID_sx"/>
<arrowlink DESTINATION="ID_missing"/>
</node>
</node>
<node TEXT="Sire Q" ID="ID_q">
<node TEXT="Son X (G1-8)" ID="ID_sx"/>
<node ID="ID_rich">
<richcontent TYPE="NODE"><html><head></head><body><p>Rich   Mare@</p></body></html></richcontent>
<richcontent TYPE="NOTE"><html><body><p>ignored note</p></body></html></richcontent>
</node>
</node>
</node>
</map>`

func TestMindMapParser_TreeAndLinks(t *testing.T) {
	p := &MindMapParser{}
	tree, err := p.Parse(strings.NewReader(sampleMap), "horses.mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Stallions" {
		t.Errorf("expected title %q, got %q", "Stallions", tree.Title)
	}
	if tree.Root.ID != "ID_root" {
		t.Errorf("expected root id %q, got %q", "ID_root", tree.Root.ID)
	}
	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected 2 sires under root, got %d", len(tree.Root.Children))
	}

	mare := tree.Root.Children[0].Children[0]
	if mare.Text != "Mare A@ 1995" {
		t.Errorf("expected mare text, got %q", mare.Text)
	}
	// The parser does not resolve links; dangling targets are kept.
	if len(mare.Links) != 2 || mare.Links[0] != "ID_sx" || mare.Links[1] != "ID_missing" {
		t.Errorf("unexpected links: %v", mare.Links)
	}

	rich := tree.Root.Children[1].Children[1]
	if rich.Text != "Rich Mare@" {
		t.Errorf("expected rich content text %q, got %q", "Rich Mare@", rich.Text)
	}
	n := 0
	tree.Walk(func(_, _ *doctree.DocNode) { n++ })
	if n != 6 {
		t.Errorf("expected 6 nodes, got %d", n)
	}
}

func TestMindMapParser_MultipleTopLevelNodes(t *testing.T) {
	input := `<map><node TEXT="A"/><node TEXT="B"/></map>`
	tree, err := (&MindMapParser{}).Parse(strings.NewReader(input), "two.mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Root.Text != "" {
		t.Errorf("expected synthetic root with empty text, got %q", tree.Root.Text)
	}
	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Root.Children))
	}
	if tree.Title != "two" {
		t.Errorf("expected filename title, got %q", tree.Title)
	}
}

func TestMindMapParser_Malformed(t *testing.T) {
	input := "<map>\n<node TEXT=\"A\">\n</map>"
	_, err := (&MindMapParser{}).Parse(strings.NewReader(input), "bad.mm")
	if err == nil {
		t.Fatal("expected error for malformed markup")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line == 0 {
		t.Errorf("expected a line number on syntax errors")
	}
}

func TestMindMapParser_NoNodes(t *testing.T) {
	_, err := (&MindMapParser{}).Parse(strings.NewReader(`<map version="1.0"></map>`), "none.mm")
	if err == nil {
		t.Fatal("expected error for a map without nodes")
	}
}
