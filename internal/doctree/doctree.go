package doctree

// DocTree is the root of a parsed mind-map document.
type DocTree struct {
	Title string   // Document title (root topic or filename)
	Root  *DocNode // Root topic; its own parent is the root sentinel
}

// DocNode is one topic in the mind map. Children are owned by the node;
// Links are non-owning references by ID into the same document.
type DocNode struct {
	Text     string     // Display text (may be empty)
	ID       string     // Stable identifier (empty if the source has none)
	Links    []string   // Cross-link target IDs, in document order
	Children []*DocNode // Subtopics
}

// Walk visits every node in depth-first pre-order, passing each node's
// tree-parent (nil for the root). It uses an explicit stack so arbitrarily
// deep documents do not grow the goroutine stack.
func (t *DocTree) Walk(fn func(node, parent *DocNode)) {
	if t == nil || t.Root == nil {
		return
	}
	type frame struct {
		node   *DocNode
		parent *DocNode
	}
	stack := []frame{{node: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.node, f.parent)
		// Push in reverse so children are visited in document order.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			if c := f.node.Children[i]; c != nil {
				stack = append(stack, frame{node: c, parent: f.node})
			}
		}
	}
}
