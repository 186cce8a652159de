// Package cst implements chlog's concrete syntax tree: an immutable,
// offset-free "green" tree with structural sharing, overlaid by a "red"
// tree that adds parent pointers and absolute byte offsets computed on
// demand. The split mirrors the rowan/rust-analyzer design: green nodes are
// cheap to share and reuse across edits (chlog never edits a tree in place,
// but keeps the split because it is what the builder API naturally
// produces), red nodes are cheap, throwaway values computed while walking.
package cst

import "dirpx.dev/chlog/internal/token"

// Green is either a GreenLeaf (a token) or a GreenBranch (a syntax node). It
// carries no position information; Width is the only size chlog tracks at
// this layer, and offsets are reconstructed by the red tree by summing
// preceding sibling widths.
type Green interface {
	Kind() token.Kind
	Width() int
	Text() string
}

// GreenLeaf is a single lexed token: its kind and its exact source text.
// Two leaves with the same kind and text are interned to the same pointer
// by Builder, so identity comparison is a valid (if optional) fast path for
// equality.
type GreenLeaf struct {
	kind token.Kind
	text string
}

func (l *GreenLeaf) Kind() token.Kind { return l.kind }
func (l *GreenLeaf) Width() int       { return len(l.text) }
func (l *GreenLeaf) Text() string     { return l.text }

// GreenBranch is a syntax node: a kind plus an ordered list of children,
// each either a GreenLeaf or another GreenBranch. Width and Text are
// computed once, at construction, from the children and then cached —
// children are immutable, so nothing ever invalidates the cache.
type GreenBranch struct {
	kind     token.Kind
	children []Green
	width    int
	text     string
}

func (b *GreenBranch) Kind() token.Kind  { return b.kind }
func (b *GreenBranch) Width() int        { return b.width }
func (b *GreenBranch) Text() string      { return b.text }
func (b *GreenBranch) Children() []Green { return b.children }
