package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/broodsire/internal/doctree"
)

// TextParser handles indented plain-text outlines, the "export as text"
// form most mind-map tools offer. Depth is the leading indent measured in
// tabs or pairs of spaces; the first unindented line is the root topic.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	type stackEntry struct {
		node  *doctree.DocNode
		level int
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(filename, ".txt"),
	}
	// Level -1 holds top-level topics until we know whether there is one root.
	top := &doctree.DocNode{}
	stack := []stackEntry{{node: top, level: -1}}

	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		level := indentLevel(raw)
		line := strings.TrimSpace(raw)
		line = strings.TrimLeft(line, "-*• ")

		text, id, links := splitAnchors(line)
		node := &doctree.DocNode{Text: text, ID: id, Links: links}

		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: level})
	}
	if err := scanner.Err(); err != nil {
		return nil, newParseError(0, "read outline", err)
	}

	if len(top.Children) == 0 {
		return nil, newParseError(0, "outline has no topics", nil)
	}
	if len(top.Children) == 1 {
		tree.Root = top.Children[0]
		if tree.Root.Text != "" {
			tree.Title = tree.Root.Text
		}
	} else {
		tree.Root = top
	}
	return tree, nil
}

func indentLevel(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case '\t':
			width += 2
		case ' ':
			width++
		default:
			return width / 2
		}
	}
	return width / 2
}
