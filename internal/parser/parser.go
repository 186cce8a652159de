// Package parser builds a lossless concrete syntax tree from a package
// changelog's token stream. It is a recursive-descent parser with one
// token of lookahead (two when disambiguating a separator from the token
// that follows it, such as the whitespace immediately before an email).
// Parsing never aborts. A line that fits no rule at the top level or in an
// entry body is wrapped, up to and including its newline, in an ERROR_NODE
// branch and a diagnostic is recorded. A token missing inside a header,
// metadata list or footer is recorded as a diagnostic only; no ERROR_NODE
// marks that site.
package parser

import (
	"fmt"

	"dirpx.dev/chlog/internal/cst"
	"dirpx.dev/chlog/internal/diag"
	"dirpx.dev/chlog/internal/lexer"
	"dirpx.dev/chlog/internal/token"
)

// Parse lexes and parses src, returning the completed green tree plus every
// diagnostic raised by either stage, lexer diagnostics first.
func Parse(src []byte) (cst.Green, []diag.Diagnostic) {
	lexed := lexer.Lex(src)

	p := &parser{
		tokens:  lexed.Tokens,
		builder: cst.NewBuilder(),
		diags:   append([]diag.Diagnostic(nil), lexed.Diagnostics...),
	}
	p.parseRoot()
	return p.builder.Finish(), p.diags
}

type parser struct {
	tokens  []lexer.Token
	pos     int
	offset  int
	builder *cst.Builder
	diags   []diag.Diagnostic
}

func (p *parser) currentKind() token.Kind { return p.tokens[p.pos].Kind }
func (p *parser) currentText() string     { return p.tokens[p.pos].Text }
func (p *parser) at(kind token.Kind) bool { return p.currentKind() == kind }
func (p *parser) atEOF() bool             { return p.at(token.EOF) }

func (p *parser) peekKind(offset int) token.Kind {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[idx].Kind
}

// bump consumes the current token into the currently open node and returns
// its text. It must not be called at EOF.
func (p *parser) bump() string {
	tok := p.tokens[p.pos]
	p.builder.Token(tok.Kind, tok.Text)
	p.offset += len(tok.Text)
	p.pos++
	return tok.Text
}

func (p *parser) skipWS() {
	for p.at(token.WHITESPACE) {
		p.bump()
	}
}

func (p *parser) errorf(format string, args ...any) {
	p.diags = append(p.diags, diag.Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Offset:   p.offset,
		Len:      len(p.currentText()),
		Severity: diag.SeverityError,
	})
}

// parseRoot implements ChangeLog := (EMPTY_LINE | COMMENT | Entry)*.
func (p *parser) parseRoot() {
	p.builder.StartNode(token.ROOT)
	for !p.atEOF() {
		switch {
		case p.at(token.NEWLINE):
			p.builder.StartNode(token.EMPTY_LINE)
			p.bump()
			p.builder.FinishNode()
		case p.at(token.COMMENT):
			p.bump()
			if p.at(token.NEWLINE) {
				p.bump()
			}
		case p.at(token.IDENTIFIER):
			p.parseEntry()
		default:
			p.recover("unexpected token %s at top level")
		}
	}
	p.builder.FinishNode()
}

// recover wraps everything up to (and including) the next newline in an
// ERROR_NODE and records a diagnostic, so malformed input never stalls the
// parser and is never silently dropped from the tree.
func (p *parser) recover(format string) {
	p.builder.StartNode(token.ERROR_NODE)
	p.errorf(format, p.currentKind())
	for !p.atEOF() && !p.at(token.NEWLINE) {
		p.bump()
	}
	if p.at(token.NEWLINE) {
		p.bump()
	}
	p.builder.FinishNode()
}

// parseEntry implements:
//
//	Entry := ENTRY_HEADER NEWLINE (EMPTY_LINE | ENTRY_BODY-line)* ENTRY_FOOTER NEWLINE
func (p *parser) parseEntry() {
	p.builder.StartNode(token.ENTRY)

	p.parseEntryHeader()
	if p.at(token.NEWLINE) {
		p.bump()
	} else {
		p.errorf("expected newline after entry header, found %s", p.currentKind())
	}

	for !p.atEOF() {
		switch {
		case p.at(token.NEWLINE):
			p.builder.StartNode(token.EMPTY_LINE)
			p.bump()
			p.builder.FinishNode()
		case p.at(token.INDENT) && p.currentText() == "  ":
			p.parseEntryBodyLine()
		case p.at(token.IDENTIFIER):
			// A header line starts the next entry; this one has no footer.
			p.errorf("entry is missing its footer")
			p.builder.FinishNode() // ENTRY
			return
		case p.at(token.INDENT):
			p.parseEntryFooter()
			if p.at(token.NEWLINE) {
				p.bump()
			}
			p.builder.FinishNode() // ENTRY
			return
		default:
			p.recover("unexpected token %s in entry body")
		}
	}

	p.errorf("entry is missing its footer")
	p.builder.FinishNode() // ENTRY
}

// parseEntryHeader implements:
//
//	ENTRY_HEADER := IDENTIFIER WHITESPACE? VERSION WHITESPACE? Distributions SEMICOLON WHITESPACE? Metadata
//	Distributions := IDENTIFIER (WHITESPACE IDENTIFIER)*
func (p *parser) parseEntryHeader() {
	p.builder.StartNode(token.ENTRY_HEADER)

	if p.at(token.IDENTIFIER) {
		p.bump()
	} else {
		p.errorf("expected package name, found %s", p.currentKind())
	}
	p.skipWS()

	if p.at(token.VERSION) || p.at(token.ERROR) {
		p.bump()
	} else {
		p.errorf("expected version, found %s", p.currentKind())
	}
	p.skipWS()

	for p.at(token.IDENTIFIER) {
		p.bump()
		if p.at(token.WHITESPACE) && p.peekKind(1) == token.IDENTIFIER {
			p.bump()
			continue
		}
		break
	}
	p.skipWS()

	if p.at(token.SEMICOLON) {
		p.bump()
		p.skipWS()
		p.parseMetadata()
	}

	p.builder.FinishNode() // ENTRY_HEADER
}

// parseMetadata implements:
//
//	Metadata := (METADATA_ENTRY (WHITESPACE? METADATA_ENTRY)*)?
//	METADATA_ENTRY := METADATA_KEY EQUALS METADATA_VALUE
func (p *parser) parseMetadata() {
	p.builder.StartNode(token.METADATA)

	for p.at(token.IDENTIFIER) {
		p.builder.StartNode(token.METADATA_ENTRY)

		p.builder.StartNode(token.METADATA_KEY)
		p.bump()
		p.builder.FinishNode()

		if p.at(token.EQUALS) {
			p.bump()
		} else {
			p.errorf("expected '=' in metadata entry, found %s", p.currentKind())
		}

		p.builder.StartNode(token.METADATA_VALUE)
		if p.at(token.IDENTIFIER) {
			p.bump()
		} else {
			p.errorf("expected metadata value, found %s", p.currentKind())
		}
		p.builder.FinishNode()

		p.builder.FinishNode() // METADATA_ENTRY

		p.skipWS()
		if !p.at(token.IDENTIFIER) {
			break
		}
	}

	p.builder.FinishNode() // METADATA
}

// parseEntryBodyLine implements ENTRY_BODY-line := INDENT("  ") DETAIL NEWLINE.
func (p *parser) parseEntryBodyLine() {
	p.builder.StartNode(token.ENTRY_BODY)
	p.bump() // INDENT
	if p.at(token.DETAIL) {
		p.bump()
	}
	if p.at(token.NEWLINE) {
		p.bump()
	}
	p.builder.FinishNode()
}

// parseEntryFooter implements:
//
//	ENTRY_FOOTER := INDENT(" -- ") MAINTAINER WHITESPACE EMAIL WHITESPACE TIMESTAMP
//
// The INDENT token is expected to read exactly " -- "; a footer whose
// marker doesn't match (wrong dash count, no trailing space) still parses —
// the parser records a diagnostic rather than treating it as fatal.
func (p *parser) parseEntryFooter() {
	p.builder.StartNode(token.ENTRY_FOOTER)

	indentText := p.currentText()
	p.bump() // INDENT
	if indentText != " -- " {
		p.errorf("malformed footer indent %q, expected \" -- \"", indentText)
	}

	p.builder.StartNode(token.MAINTAINER)
	for !p.atEOF() && !p.at(token.NEWLINE) && !p.at(token.EMAIL) {
		if p.at(token.WHITESPACE) && p.peekKind(1) == token.EMAIL {
			break
		}
		p.bump()
	}
	p.builder.FinishNode() // MAINTAINER

	p.skipWS()

	if p.at(token.EMAIL) {
		p.bump()
	} else {
		p.errorf("expected maintainer email, found %s", p.currentKind())
	}

	p.skipWS()

	p.builder.StartNode(token.TIMESTAMP)
	for !p.atEOF() && !p.at(token.NEWLINE) {
		p.bump()
	}
	p.builder.FinishNode() // TIMESTAMP

	p.builder.FinishNode() // ENTRY_FOOTER
}
