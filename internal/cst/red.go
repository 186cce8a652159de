package cst

import "dirpx.dev/chlog/internal/token"

// Node is the red-tree overlay over a Green value: a value type carrying an
// absolute byte offset and an optional parent, both computed on demand
// rather than stored in the (offset-free, parent-free) green tree. Node
// values are cheap and disposable — callers are expected to request a
// fresh Children() slice each time they descend, not to cache Node values
// across tree shapes.
type Node struct {
	green  Green
	offset int
	parent *Node
}

// NewRoot wraps green as the root of a red tree at offset 0.
func NewRoot(green Green) Node {
	return Node{green: green}
}

// Kind returns the wrapped green value's kind.
func (n Node) Kind() token.Kind { return n.green.Kind() }

// Text returns the wrapped green value's text (a leaf's own text, or the
// concatenation of a branch's descendant leaf text).
func (n Node) Text() string { return n.green.Text() }

// Width returns the byte length of Text().
func (n Node) Width() int { return n.green.Width() }

// Offset returns n's absolute byte offset from the start of the document.
func (n Node) Offset() int { return n.offset }

// Span returns n's absolute [start, end) byte range.
func (n Node) Span() (start, end int) { return n.offset, n.offset + n.green.Width() }

// Parent returns n's parent node and true, or the zero Node and false at
// the root.
func (n Node) Parent() (Node, bool) {
	if n.parent == nil {
		return Node{}, false
	}
	return *n.parent, true
}

// Children returns n's immediate children, each carrying its own absolute
// offset. A leaf node has no children and returns nil.
func (n Node) Children() []Node {
	branch, ok := n.green.(*GreenBranch)
	if !ok {
		return nil
	}

	parent := n
	children := make([]Node, len(branch.children))
	offset := n.offset
	for i, c := range branch.children {
		children[i] = Node{green: c, offset: offset, parent: &parent}
		offset += c.Width()
	}
	return children
}

// ChildrenOfKind returns n's immediate children whose Kind equals kind, in
// document order.
func (n Node) ChildrenOfKind(kind token.Kind) []Node {
	var result []Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			result = append(result, c)
		}
	}
	return result
}

// FirstChildOfKind returns n's first immediate child whose Kind equals
// kind, or the zero Node and false if there is none.
func (n Node) FirstChildOfKind(kind token.Kind) (Node, bool) {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c, true
		}
	}
	return Node{}, false
}
