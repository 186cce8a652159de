package lexer

import (
	"testing"

	"dirpx.dev/chlog/internal/token"
)

func kinds(result Result) []token.Kind {
	out := make([]token.Kind, len(result.Tokens))
	for i, tok := range result.Tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexEmpty(t *testing.T) {
	result := Lex(nil)
	if len(result.Tokens) != 1 || result.Tokens[0].Kind != token.EOF {
		t.Fatalf("Lex(nil).Tokens = %v, want [EOF]", result.Tokens)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("Lex(nil).Diagnostics = %v, want none", result.Diagnostics)
	}
}

func TestLexHeaderLine(t *testing.T) {
	const src = "breezy (3.3.4-1) unstable; urgency=low\n"
	result := Lex([]byte(src))

	want := []struct {
		kind token.Kind
		text string
	}{
		{token.IDENTIFIER, "breezy"},
		{token.WHITESPACE, " "},
		{token.VERSION, "(3.3.4-1)"},
		{token.WHITESPACE, " "},
		{token.IDENTIFIER, "unstable"},
		{token.SEMICOLON, ";"},
		{token.WHITESPACE, " "},
		{token.IDENTIFIER, "urgency"},
		{token.EQUALS, "="},
		{token.IDENTIFIER, "low"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	if len(result.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(result.Tokens), len(want), result.Tokens)
	}
	for i, w := range want {
		if result.Tokens[i].Kind != w.kind || result.Tokens[i].Text != w.text {
			t.Errorf("token[%d] = %v %q, want %v %q", i, result.Tokens[i].Kind, result.Tokens[i].Text, w.kind, w.text)
		}
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", result.Diagnostics)
	}
}

func TestLexBodyLine(t *testing.T) {
	const src = "  * New upstream release.\n"
	result := Lex([]byte(src))
	want := []token.Kind{token.INDENT, token.DETAIL, token.NEWLINE, token.EOF}
	if got := kinds(result); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if result.Tokens[1].Text != "* New upstream release." {
		t.Errorf("DETAIL text = %q", result.Tokens[1].Text)
	}
}

func TestLexBodyLineTabIndent(t *testing.T) {
	const src = "\t\t* New upstream release.\n"
	result := Lex([]byte(src))
	want := []token.Kind{token.INDENT, token.DETAIL, token.NEWLINE, token.EOF}
	if got := kinds(result); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if result.Tokens[0].Text != "\t\t" {
		t.Errorf("INDENT text = %q, want two tabs", result.Tokens[0].Text)
	}
}

func TestLexFooterLineFoldsIndent(t *testing.T) {
	const src = " -- Jelmer Vernooĳ <jelmer@debian.org>  Wed, 06 Sep 2023 14:02:00 +0000\n"
	result := Lex([]byte(src))

	if result.Tokens[0].Kind != token.INDENT || result.Tokens[0].Text != " -- " {
		t.Fatalf("first token = %v %q, want INDENT \" -- \"", result.Tokens[0].Kind, result.Tokens[0].Text)
	}

	var sawEmail bool
	for _, tok := range result.Tokens {
		if tok.Kind == token.EMAIL {
			sawEmail = true
			if tok.Text != "<jelmer@debian.org>" {
				t.Errorf("EMAIL text = %q, want %q", tok.Text, "<jelmer@debian.org>")
			}
		}
	}
	if !sawEmail {
		t.Fatal("expected an EMAIL token")
	}

	var sawInfo bool
	for _, d := range result.Diagnostics {
		if d.Severity.String() == "info" {
			sawInfo = true
		}
	}
	if !sawInfo {
		t.Error("expected an info-severity diagnostic for the folded indent")
	}
}

func TestLexUnfoldedFooterIndentIsNotFolded(t *testing.T) {
	const src = " --- Jelmer Vernooĳ <jelmer@debian.org>\n"
	result := Lex([]byte(src))
	if result.Tokens[0].Kind != token.INDENT || result.Tokens[0].Text != " " {
		t.Fatalf("first token = %v %q, want INDENT \" \"", result.Tokens[0].Kind, result.Tokens[0].Text)
	}
	if result.Tokens[1].Kind != token.DASHES || result.Tokens[1].Text != "---" {
		t.Fatalf("second token = %v %q, want DASHES \"---\"", result.Tokens[1].Kind, result.Tokens[1].Text)
	}
}

func TestLexComment(t *testing.T) {
	const src = "# a comment\n"
	result := Lex([]byte(src))
	if result.Tokens[0].Kind != token.COMMENT || result.Tokens[0].Text != "# a comment" {
		t.Fatalf("first token = %v %q", result.Tokens[0].Kind, result.Tokens[0].Text)
	}
}

func TestLexUnterminatedVersionAndEmail(t *testing.T) {
	result := Lex([]byte("pkg (1.0 unstable\n"))
	if !hasErrorKind(result) {
		t.Fatal("expected an ERROR token for an unterminated version")
	}

	result = Lex([]byte(" -- Name <broken\n"))
	if !hasErrorKind(result) {
		t.Fatal("expected an ERROR token for an unterminated email")
	}
}

func hasErrorKind(result Result) bool {
	for _, tok := range result.Tokens {
		if tok.Kind == token.ERROR {
			return true
		}
	}
	return false
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
