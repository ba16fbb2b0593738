package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/broodsire/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles mind maps exported as nested HTML lists:
//
//	<h1>Root topic</h1>
//	<ul><li id="n1">Storm Cat<ul><li id="n2">Mare A@ 1995 <a href="#n7">foal</a></li></ul></li></ul>
//
// Each <li> is a topic, its id attribute the stable identifier, and every
// in-document anchor (href="#...") a cross-link.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, newParseError(0, "parse html", err)
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
	}
	if title := findTitle(doc); title != "" {
		tree.Title = title
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}

	root := &doctree.DocNode{}
	if h1 := findElement(body, "h1"); h1 != nil {
		if t := textContent(h1); t != "" {
			root.Text = t
			tree.Title = t
		}
	}

	var walk func(n *html.Node, parent *doctree.DocNode)
	walk = func(n *html.Node, parent *doctree.DocNode) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "li":
				node := listItemNode(n)
				parent.Children = append(parent.Children, node)
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if isList(c) {
						walk(c, node)
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, parent)
		}
	}
	walk(body, root)

	tree.Root = root
	return tree, nil
}

// listItemNode builds a topic from an <li>, ignoring nested lists.
func listItemNode(li *html.Node) *doctree.DocNode {
	node := &doctree.DocNode{ID: attr(li, "id")}
	var buf strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if isList(n) {
			return
		}
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "a":
			if href := attr(n, "href"); strings.HasPrefix(href, "#") && len(href) > 1 {
				node.Links = append(node.Links, href[1:])
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	node.Text = strings.Join(strings.Fields(buf.String()), " ")
	return node
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if t := findElement(n, "title"); t != nil {
		return textContent(t)
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	return findElement(n, "body")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
