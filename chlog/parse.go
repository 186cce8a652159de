/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package chlog parses Debian-style package changelogs into a lossless
// concrete syntax tree with a typed view overlay on top.
package chlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dirpx.dev/chlog/internal/cst"
	"dirpx.dev/chlog/internal/diag"
	"dirpx.dev/chlog/internal/parser"
)

// Severity classifies a Diagnostic. SeverityError marks malformed input
// that the parser recovered from; SeverityInfo marks a benign
// normalization the lexer silently performed (for example, folding a
// footer's canonical " -- " marker into a single INDENT token).
type Severity = diag.Severity

const (
	SeverityError = diag.SeverityError
	SeverityInfo  = diag.SeverityInfo
)

// Diagnostic reports a single parse-time anomaly: a human-readable
// message plus the byte offset and length of the span it concerns.
type Diagnostic = diag.Diagnostic

// ParseError is returned by ParseStrict when parsing recorded at least one
// SeverityError diagnostic.
type ParseError struct {
	Diagnostics []Diagnostic
}

// Error renders a stable, single-line summary of the first error
// diagnostic, plus a count of any additional ones.
func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "chlog: parse error"
	}
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("chlog: parse error: %s", e.Diagnostics[0].Message)
	}
	return fmt.Sprintf("chlog: parse error: %s (+%d more)", e.Diagnostics[0].Message, len(e.Diagnostics)-1)
}

// Parse parses text into a ChangeLog. It never returns an error: malformed
// input is recovered into ERROR_NODEs within the tree, and every anomaly
// encountered along the way is reported in the returned diagnostics
// instead.
func Parse(text string) (ChangeLog, []Diagnostic) {
	green, diags := parser.Parse([]byte(text))
	return NewChangeLog(cst.NewRoot(green)), diags
}

// ParseStrict parses text and converts every SeverityError diagnostic, plus
// any entry header carrying a present-but-unrecognized urgency value, into
// a *ParseError carrying the full list. A missing urgency key is not an
// error (Entry.Urgency() simply reports it as absent); only a key that is
// present with a value ParseUrgency rejects is surfaced here, per the
// urgency-parse-failure-timing decision.
func ParseStrict(text string) (ChangeLog, error) {
	cl, diags := Parse(text)

	var errs []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}

	for _, e := range cl.Entries() {
		h, ok := e.Header()
		if !ok {
			continue
		}
		for _, m := range h.Metadata() {
			if !strings.EqualFold(m.Key, "urgency") {
				continue
			}
			if _, err := ParseUrgency(m.Value); err != nil {
				start, end := h.node.Span()
				errs = append(errs, Diagnostic{
					Message:  fmt.Sprintf("invalid urgency value %q: %v", m.Value, err),
					Offset:   start,
					Len:      end - start,
					Severity: SeverityError,
				})
			}
		}
	}

	if len(errs) > 0 {
		return cl, &ParseError{Diagnostics: errs}
	}
	return cl, nil
}

// Read reads r to completion and parses the result. I/O errors are
// returned wrapped with a "chlog: read:" prefix (the original error stays
// reachable through errors.Is/As); they are distinct from, and checked
// before, any parse diagnostics.
func Read(r io.Reader) (ChangeLog, []Diagnostic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ChangeLog{}, nil, fmt.Errorf("chlog: read: %w", err)
	}
	cl, diags := Parse(string(data))
	return cl, diags, nil
}

// ReadPath opens path, reads it to completion, and parses the result.
func ReadPath(path string) (ChangeLog, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return ChangeLog{}, nil, fmt.Errorf("chlog: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
