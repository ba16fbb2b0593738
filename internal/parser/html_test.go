package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_NestedLists(t *testing.T) {
	input := `<html><head><title>Export</title></head><body>
<h1>Stallions</h1>
<ul>
  <li id="sc">Storm Cat
    <ul>
      <li id="ma">Mare A@ <b>1995</b> <a href="#sx">foal</a> <a href="https://example.com">ext</a></li>
    </ul>
  </li>
  <li id="q">Sire Q<ol><li id="sx">Son X (G1-8)</li></ol></li>
</ul>
</body></html>`

	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "horses.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Root.Text != "Stallions" {
		t.Errorf("expected h1 as root, got %q", tree.Root.Text)
	}
	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(tree.Root.Children))
	}
	sc := tree.Root.Children[0]
	if sc.Text != "Storm Cat" || sc.ID != "sc" {
		t.Errorf("unexpected sire: text=%q id=%q", sc.Text, sc.ID)
	}
	if len(sc.Children) != 1 {
		t.Fatalf("expected 1 mare, got %d", len(sc.Children))
	}
	mare := sc.Children[0]
	if mare.Text != "Mare A@ 1995 ext" {
		t.Errorf("unexpected mare text %q", mare.Text)
	}
	if len(mare.Links) != 1 || mare.Links[0] != "sx" {
		t.Errorf("expected only the in-document link, got %v", mare.Links)
	}
	if got := tree.Root.Children[1].Children[0].ID; got != "sx" {
		t.Errorf("expected ordered list child id %q, got %q", "sx", got)
	}
}

func TestHTMLParser_TitleFallback(t *testing.T) {
	tree, err := (&HTMLParser{}).Parse(strings.NewReader(`<ul><li>A</li></ul>`), "plain.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "plain" {
		t.Errorf("expected filename title, got %q", tree.Title)
	}
	if tree.Root.Text != "" {
		t.Errorf("expected textless synthetic root, got %q", tree.Root.Text)
	}
}

func TestHTMLParser_PageTitleIsNotARootTopic(t *testing.T) {
	input := `<html><head><title>My Horses</title></head><body><ul><li>Mare Z@ 1990</li></ul></body></html>`
	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "horses.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "My Horses" {
		t.Errorf("expected page title %q, got %q", "My Horses", tree.Title)
	}
	if tree.Root.Text != "" {
		t.Errorf("expected textless synthetic root, got %q", tree.Root.Text)
	}
}
