package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/broodsire/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles mind maps written as nested bullet lists using
// goldmark. The first level-1 heading is the root topic; every list item is
// a topic. Links to "#id" and "[[id]]" are cross-links, "{#id}" names the item.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, newParseError(0, "read markdown", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
	}
	// Without an H1 the root stays textless so top-level topics have no sire.
	root := &doctree.DocNode{}
	titled := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && !titled {
				t, id, _ := inlineTopic(node, src)
				if t != "" {
					root.Text, root.ID = t, id
					tree.Title = t
					titled = true
				}
			}
		case *ast.List:
			appendListItems(node, root, src)
		}
	}

	tree.Root = root
	return tree, nil
}

func appendListItems(list *ast.List, parent *doctree.DocNode, src []byte) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		t, id, links := inlineTopic(li, src)
		node := &doctree.DocNode{Text: t, ID: id, Links: links}
		parent.Children = append(parent.Children, node)
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				appendListItems(sub, node, src)
			}
		}
	}
}

// inlineTopic gathers the text of a block, excluding nested lists, and
// splits off its anchor and cross-links.
func inlineTopic(n ast.Node, src []byte) (string, string, []string) {
	var buf strings.Builder
	var links []string
	collectInline(n, src, &buf, &links)
	t, id, wiki := splitAnchors(buf.String())
	return t, id, append(links, wiki...)
}

func collectInline(n ast.Node, src []byte, buf *strings.Builder, links *[]string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.List:
			continue
		case *ast.Text:
			buf.Write(node.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.Link:
			dest := string(node.Destination)
			if strings.HasPrefix(dest, "#") && len(dest) > 1 {
				*links = append(*links, dest[1:])
				continue
			}
			collectInline(node, src, buf, links)
		default:
			collectInline(node, src, buf, links)
		}
		if c.Type() == ast.TypeBlock {
			buf.WriteByte(' ')
		}
	}
}
