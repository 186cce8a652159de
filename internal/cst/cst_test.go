package cst

import (
	"testing"

	"dirpx.dev/chlog/internal/token"
)

func buildSimpleTree(b *Builder) {
	b.StartNode(token.ROOT)
	b.StartNode(token.ENTRY)
	b.Token(token.IDENTIFIER, "breezy")
	b.Token(token.WHITESPACE, " ")
	b.Token(token.VERSION, "(3.3.4-1)")
	b.FinishNode() // ENTRY
	b.FinishNode() // ROOT
}

func TestBuilderRoundTrip(t *testing.T) {
	const src = "breezy (3.3.4-1)"
	b := NewBuilder()
	buildSimpleTree(b)

	green := b.Finish()
	if green.Text() != src {
		t.Fatalf("green.Text() = %q, want %q", green.Text(), src)
	}
	if green.Width() != len(src) {
		t.Fatalf("green.Width() = %d, want %d", green.Width(), len(src))
	}
}

func TestRedTreeOffsets(t *testing.T) {
	b := NewBuilder()
	buildSimpleTree(b)
	root := NewRoot(b.Finish())

	entry, ok := root.FirstChildOfKind(token.ENTRY)
	if !ok {
		t.Fatal("expected ENTRY child")
	}

	leaves := entry.Children()
	if len(leaves) != 3 {
		t.Fatalf("len(leaves) = %d, want 3", len(leaves))
	}

	wantOffsets := []int{0, len("breezy"), len("breezy ")}
	for i, leaf := range leaves {
		if leaf.Offset() != wantOffsets[i] {
			t.Errorf("leaves[%d].Offset() = %d, want %d", i, leaf.Offset(), wantOffsets[i])
		}
	}

	start, end := leaves[2].Span()
	if start != len("breezy ") || end != len("breezy (3.3.4-1)") {
		t.Errorf("leaves[2].Span() = (%d, %d), want (%d, %d)", start, end, len("breezy "), len("breezy (3.3.4-1)"))
	}

	parent, ok := leaves[0].Parent()
	if !ok || parent.Kind() != token.ENTRY {
		t.Errorf("leaves[0].Parent() kind = %v, ok=%v, want ENTRY", parent.Kind(), ok)
	}
}

func TestBuilderPanicsOnUnbalancedFinish(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Finish with an open node")
		}
	}()
	b := NewBuilder()
	b.StartNode(token.ROOT)
	b.Finish()
}

func TestStructuralSharing(t *testing.T) {
	b := NewBuilder()
	b.StartNode(token.ROOT)
	b.StartNode(token.EMPTY_LINE)
	b.Token(token.NEWLINE, "\n")
	b.FinishNode()
	b.StartNode(token.EMPTY_LINE)
	b.Token(token.NEWLINE, "\n")
	b.FinishNode()
	b.FinishNode()

	root := NewRoot(b.Finish())
	lines := root.ChildrenOfKind(token.EMPTY_LINE)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	// Two structurally identical EMPTY_LINE branches intern to the same
	// green node; this is a memory optimization, asserted here only to
	// pin down the behavior, not because callers should ever rely on it.
	if lines[0].green != lines[1].green {
		t.Error("expected identical EMPTY_LINE branches to share a green node")
	}
}
