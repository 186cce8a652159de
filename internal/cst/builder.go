package cst

import (
	"fmt"
	"strings"

	"dirpx.dev/chlog/internal/token"
)

// Builder accumulates a green tree incrementally: StartNode/Token/
// FinishNode mirror a recursive-descent parser's own call stack, and
// Finish returns the single root branch once every StartNode has a
// matching FinishNode.
//
// Builder performs structural-sharing as a pure memory optimization: two
// leaves with identical (kind, text) and two branches with identical
// (kind, child-identity-sequence) are interned to the same pointer. This is
// never observable through the public API — callers compare trees by their
// logical shape, never by green-node identity.
type Builder struct {
	stack       []branchInProgress
	leafCache   map[leafKey]*GreenLeaf
	branchCache map[string]*GreenBranch
	result      *GreenBranch
}

type branchInProgress struct {
	kind     token.Kind
	children []Green
}

type leafKey struct {
	kind token.Kind
	text string
}

// NewBuilder returns an empty Builder ready for a fresh StartNode call.
func NewBuilder() *Builder {
	return &Builder{
		leafCache:   make(map[leafKey]*GreenLeaf),
		branchCache: make(map[string]*GreenBranch),
	}
}

// StartNode opens a new branch of the given kind. It must be matched by a
// later FinishNode call; calls may nest arbitrarily deep.
func (b *Builder) StartNode(kind token.Kind) {
	if !kind.IsBranch() {
		panic(fmt.Sprintf("cst: StartNode called with non-branch kind %s", kind))
	}
	b.stack = append(b.stack, branchInProgress{kind: kind})
}

// Token appends a leaf of the given kind and exact source text as the next
// child of the currently open branch. It panics if no branch is open,
// which indicates a bug in the caller (the parser), not malformed input.
func (b *Builder) Token(kind token.Kind, text string) {
	if !kind.IsLeaf() {
		panic(fmt.Sprintf("cst: Token called with non-leaf kind %s", kind))
	}
	b.appendChild(b.internLeaf(kind, text))
}

// FinishNode closes the most recently opened branch and appends it as a
// child of its parent, or, if it was the outermost node, records it as the
// tree's root for a later Finish call.
func (b *Builder) FinishNode() {
	if len(b.stack) == 0 {
		panic("cst: FinishNode called with no open node")
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	branch := b.internBranch(top.kind, top.children)

	if len(b.stack) == 0 {
		b.result = branch
		return
	}
	b.appendChild(branch)
}

// Finish returns the completed tree's root. It panics if any StartNode call
// is still unmatched, or if no node was ever started — both indicate a
// caller bug, never malformed input (malformed input is represented by
// ERROR_NODE branches inside an otherwise complete tree).
func (b *Builder) Finish() Green {
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("cst: Finish called with %d node(s) still open", len(b.stack)))
	}
	if b.result == nil {
		panic("cst: Finish called before any node was started")
	}
	return b.result
}

func (b *Builder) appendChild(g Green) {
	if len(b.stack) == 0 {
		panic("cst: Token/FinishNode called with no open node")
	}
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, g)
}

func (b *Builder) internLeaf(kind token.Kind, text string) *GreenLeaf {
	key := leafKey{kind, text}
	if leaf, ok := b.leafCache[key]; ok {
		return leaf
	}
	leaf := &GreenLeaf{kind: kind, text: text}
	b.leafCache[key] = leaf
	return leaf
}

func (b *Builder) internBranch(kind token.Kind, children []Green) *GreenBranch {
	key := branchKey(kind, children)
	if branch, ok := b.branchCache[key]; ok {
		return branch
	}

	width := 0
	var text strings.Builder
	for _, c := range children {
		width += c.Width()
		text.WriteString(c.Text())
	}

	branch := &GreenBranch{kind: kind, children: children, width: width, text: text.String()}
	b.branchCache[key] = branch
	return branch
}

// branchKey builds a cache key from the branch's kind and its children's
// identities (pointer addresses). Leaves and branches are always interned
// first, so identical children always share a pointer, making this a valid
// structural-equality key without ever comparing child contents directly.
func branchKey(kind token.Kind, children []Green) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", kind)
	for _, c := range children {
		fmt.Fprintf(&sb, "|%p", c)
	}
	return sb.String()
}
