package chlog

import (
	"testing"

	"dirpx.dev/chlog/internal/cst"
	"dirpx.dev/chlog/internal/parser"
	"dirpx.dev/chlog/internal/token"
)

const viewTestChangelog = `breezy (3.3.4-1) unstable; urgency=low

  * New upstream release.
  * Drop vendored dependency.

 -- Jelmer Vernooĳ <jelmer@debian.org>  Wed, 06 Sep 2023 14:02:00 +0000
`

func TestChangeLogView(t *testing.T) {
	green, _ := parser.Parse([]byte(viewTestChangelog))
	cl := NewChangeLog(cst.NewRoot(green))

	entries := cl.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]

	if got := e.Package(); got != "breezy" {
		t.Errorf("Package() = %q, want breezy", got)
	}
	if got := e.Version(); got.Raw != "3.3.4-1" {
		t.Errorf("Version().Raw = %q, want 3.3.4-1", got.Raw)
	}
	if got := e.Distributions(); len(got) != 1 || got[0] != "unstable" {
		t.Errorf("Distributions() = %v, want [unstable]", got)
	}
	urgency, err := e.Urgency()
	if err != nil {
		t.Fatalf("Urgency(): %v", err)
	}
	if urgency != UrgencyLow {
		t.Errorf("Urgency() = %v, want low", urgency)
	}
	if got := e.Maintainer(); got != "Jelmer Vernooĳ" {
		t.Errorf("Maintainer() = %q, want %q", got, "Jelmer Vernooĳ")
	}
	if got := e.Email(); got != "jelmer@debian.org" {
		t.Errorf("Email() = %q, want jelmer@debian.org", got)
	}
	ts, err := e.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp(): %v", err)
	}
	if ts.Year() != 2023 {
		t.Errorf("Timestamp().Year() = %d, want 2023", ts.Year())
	}
	lines := e.ChangeLines()
	want := []string{"", "* New upstream release.", "* Drop vendored dependency.", ""}
	if len(lines) != len(want) {
		t.Fatalf("ChangeLines() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("ChangeLines()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}

	if got := cl.String(); got != viewTestChangelog {
		t.Errorf("ChangeLog.String() = %q, want %q", got, viewTestChangelog)
	}

	meta := func() []MetadataEntry {
		h, ok := e.Header()
		if !ok {
			t.Fatal("Header() ok = false")
		}
		return h.Metadata()
	}()
	if len(meta) != 1 || meta[0].Key != "urgency" || meta[0].Value != "low" {
		t.Errorf("Metadata() = %+v, want [{urgency low}]", meta)
	}
}

func TestEntryHeaderMalformedVersionDoesNotPanic(t *testing.T) {
	h := EntryHeader{}
	if v := h.Version(); !v.IsZero() {
		t.Errorf("Version() of empty header = %+v, want zero value", v)
	}

	b := cst.NewBuilder()
	b.StartNode(token.ENTRY_HEADER)
	b.Token(token.VERSION, "(")
	b.FinishNode()
	short := EntryHeader{node: cst.NewRoot(b.Finish())}
	if v := short.Version(); !v.IsZero() {
		t.Errorf("Version() of a 1-byte VERSION token = %+v, want zero value", v)
	}
}
