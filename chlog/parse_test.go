package chlog

import (
	"strings"
	"testing"
)

const sampleChangelog = `breezy (3.3.4-1) unstable; urgency=low

  * New upstream release.
  * Drop vendored dependency.

 -- Jelmer Vernooĳ <jelmer@debian.org>  Wed, 06 Sep 2023 14:02:00 +0000
`

func TestParseNeverFails(t *testing.T) {
	cl, diags := Parse("@@@ garbage\n")
	if len(diags) == 0 {
		t.Error("expected at least one diagnostic for garbage input")
	}
	if cl.Entries() != nil && len(cl.Entries()) != 0 {
		t.Errorf("Entries() = %v, want none", cl.Entries())
	}
}

func TestParseStrictClean(t *testing.T) {
	cl, err := ParseStrict(sampleChangelog)
	if err != nil {
		t.Fatalf("ParseStrict: unexpected error: %v", err)
	}
	if len(cl.Entries()) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(cl.Entries()))
	}
}

func TestParseStrictMalformed(t *testing.T) {
	_, err := ParseStrict("@@@ garbage\n")
	if err == nil {
		t.Fatal("ParseStrict: expected an error for malformed input")
	}
	var perr *ParseError
	if !asParseError(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if len(perr.Diagnostics) == 0 {
		t.Error("expected at least one diagnostic in ParseError")
	}
	if !strings.Contains(perr.Error(), "chlog: parse error") {
		t.Errorf("Error() = %q, missing expected prefix", perr.Error())
	}
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}

func TestReadPathMissingFile(t *testing.T) {
	_, _, err := ReadPath("/nonexistent/path/to/changelog")
	if err == nil {
		t.Fatal("ReadPath: expected an error for a missing file")
	}
}

func TestParseStrictBadUrgencyValue(t *testing.T) {
	const src = "breezy (3.3.4-1) unstable; urgency=superfast\n\n" +
		"  * New upstream release.\n\n" +
		" -- Jelmer Vernooĳ <jelmer@debian.org>  Wed, 06 Sep 2023 14:02:00 +0000\n"
	_, err := ParseStrict(src)
	if err == nil {
		t.Fatal("ParseStrict: expected an error for an unrecognized urgency value")
	}
	var perr *ParseError
	if !asParseError(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	found := false
	for _, d := range perr.Diagnostics {
		if strings.Contains(d.Message, "urgency") {
			found = true
		}
	}
	if !found {
		t.Errorf("Diagnostics = %+v, want one mentioning urgency", perr.Diagnostics)
	}
}

func TestParseStrictMissingUrgencyIsNotAnError(t *testing.T) {
	const src = "breezy (3.3.4-1) unstable;\n\n" +
		"  * New upstream release.\n\n" +
		" -- Jelmer Vernooĳ <jelmer@debian.org>  Wed, 06 Sep 2023 14:02:00 +0000\n"
	_, err := ParseStrict(src)
	if err != nil {
		t.Errorf("ParseStrict: unexpected error for a header with no urgency key: %v", err)
	}
}

func TestParseEmptyInputRoundTrips(t *testing.T) {
	cl, diags := Parse("")
	if len(diags) != 0 {
		t.Errorf("diags = %v, want none", diags)
	}
	if len(cl.Entries()) != 0 {
		t.Errorf("Entries() = %v, want none", cl.Entries())
	}
	if got := cl.String(); got != "" {
		t.Errorf("String() = %q, want \"\"", got)
	}
}

func TestReadReader(t *testing.T) {
	cl, diags, err := Read(strings.NewReader(sampleChangelog))
	if err != nil {
		t.Fatalf("Read: unexpected error: %v", err)
	}
	for _, d := range diags {
		if d.Severity == SeverityError {
			t.Errorf("unexpected error diagnostic: %+v", d)
		}
	}
	if len(cl.Entries()) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(cl.Entries()))
	}
}
