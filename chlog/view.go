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

package chlog

import (
	"strings"
	"time"

	"dirpx.dev/chlog/internal/cst"
	dxerrors "dirpx.dev/chlog/internal/model/errors"
	"dirpx.dev/chlog/internal/token"
)

// timestampLayout is Go's reference-time spelling of "%a, %d %b %Y %H:%M:%S
// %z", the layout every footer TIMESTAMP is expected to follow.
const timestampLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// ChangeLog is the typed view over a parsed changelog's root node. It is a
// thin, zero-overhead wrapper: every accessor re-walks the underlying CST
// on demand rather than caching a separate copy of the data.
type ChangeLog struct {
	node cst.Node
}

// NewChangeLog wraps a root CST node (as returned by the parser) as a
// typed ChangeLog view.
func NewChangeLog(root cst.Node) ChangeLog { return ChangeLog{node: root} }

// String returns the full, lossless source text the ChangeLog was parsed
// from, reconstructed by concatenating every token in the underlying tree.
func (c ChangeLog) String() string { return c.node.Text() }

// Entries returns every entry in document order.
func (c ChangeLog) Entries() []Entry {
	nodes := c.node.ChildrenOfKind(token.ENTRY)
	entries := make([]Entry, len(nodes))
	for i, n := range nodes {
		entries[i] = Entry{node: n}
	}
	return entries
}

// Entry is the typed view over a single ENTRY node: one header, a run of
// body lines, and a footer.
type Entry struct {
	node cst.Node
}

// Header returns the entry's header view.
func (e Entry) Header() (EntryHeader, bool) {
	n, ok := e.node.FirstChildOfKind(token.ENTRY_HEADER)
	return EntryHeader{node: n}, ok
}

// Body returns the entry's body view.
func (e Entry) Body() EntryBody { return EntryBody{node: e.node} }

// Footer returns the entry's footer view.
func (e Entry) Footer() (EntryFooter, bool) {
	n, ok := e.node.FirstChildOfKind(token.ENTRY_FOOTER)
	return EntryFooter{node: n}, ok
}

// Package is a convenience passthrough for Header().Package().
func (e Entry) Package() string {
	h, ok := e.Header()
	if !ok {
		return ""
	}
	return h.Package()
}

// Version is a convenience passthrough for Header().Version().
func (e Entry) Version() Version {
	h, ok := e.Header()
	if !ok {
		return Version{}
	}
	return h.Version()
}

// Distributions is a convenience passthrough for Header().Distributions().
func (e Entry) Distributions() []string {
	h, ok := e.Header()
	if !ok {
		return nil
	}
	return h.Distributions()
}

// Urgency is a convenience passthrough for Header().Urgency().
func (e Entry) Urgency() (Urgency, error) {
	h, ok := e.Header()
	if !ok {
		return 0, &dxerrors.ParseError{Type: "Entry", Value: "missing header"}
	}
	return h.Urgency()
}

// Maintainer is a convenience passthrough for Footer().Maintainer().
func (e Entry) Maintainer() string {
	f, ok := e.Footer()
	if !ok {
		return ""
	}
	return f.Maintainer()
}

// Email is a convenience passthrough for Footer().Email().
func (e Entry) Email() string {
	f, ok := e.Footer()
	if !ok {
		return ""
	}
	return f.Email()
}

// Timestamp is a convenience passthrough for Footer().Timestamp().
func (e Entry) Timestamp() (time.Time, error) {
	f, ok := e.Footer()
	if !ok {
		return time.Time{}, &dxerrors.ParseError{Type: "Entry", Value: "missing footer"}
	}
	return f.Timestamp()
}

// ChangeLines is a convenience passthrough for Body().Lines().
func (e Entry) ChangeLines() []string { return e.Body().Lines() }

// EntryHeader is the typed view over an ENTRY_HEADER node.
type EntryHeader struct {
	node cst.Node
}

// Package returns the package name from the header's leading IDENTIFIER.
func (h EntryHeader) Package() string {
	n, ok := h.node.FirstChildOfKind(token.IDENTIFIER)
	if !ok {
		return ""
	}
	return n.Text()
}

// Version unwraps the header's VERSION token, stripping the surrounding
// parentheses, and parses the result as a Version. A VERSION token shorter
// than 2 bytes (malformed input) is returned as an empty, zero Version
// rather than panicking on the slice.
func (h EntryHeader) Version() Version {
	n, ok := h.node.FirstChildOfKind(token.VERSION)
	if !ok {
		return Version{}
	}
	text := n.Text()
	if len(text) < 2 {
		return Version{}
	}
	return ParseVersion(text[1 : len(text)-1])
}

// Distributions returns every distribution name between the version and
// the metadata separator.
func (h EntryHeader) Distributions() []string {
	var dists []string
	for _, c := range h.node.Children() {
		if c.Kind() == token.IDENTIFIER {
			dists = append(dists, c.Text())
		}
	}
	// The package name is itself an IDENTIFIER child; drop it.
	if len(dists) > 0 {
		dists = dists[1:]
	}
	return dists
}

// Urgency looks up the "urgency" metadata key and parses its value. It
// returns an error, never a panic, when the key is absent or its value
// doesn't parse — a malformed or missing urgency is bad input, not a
// programming error.
func (h EntryHeader) Urgency() (Urgency, error) {
	meta, ok := h.node.FirstChildOfKind(token.METADATA)
	if !ok {
		return 0, &dxerrors.ParseError{Type: "Urgency", Value: "missing metadata"}
	}
	for _, entry := range meta.ChildrenOfKind(token.METADATA_ENTRY) {
		key, ok := entry.FirstChildOfKind(token.METADATA_KEY)
		if !ok || !strings.EqualFold(strings.TrimSpace(key.Text()), "urgency") {
			continue
		}
		val, ok := entry.FirstChildOfKind(token.METADATA_VALUE)
		if !ok {
			return 0, &dxerrors.ParseError{Type: "Urgency", Value: ""}
		}
		return ParseUrgency(val.Text())
	}
	return 0, &dxerrors.ParseError{Type: "Urgency", Value: "missing urgency metadata key"}
}

// MetadataEntry is a single key=value pair from a header's metadata list,
// e.g. "urgency=low".
type MetadataEntry struct {
	Key   string
	Value string
}

// Metadata returns every key=value pair from the header's metadata list, in
// insertion order, regardless of key. Urgency is the one key this package
// resolves to a typed value on the caller's behalf (see Urgency); any other
// key, including vendor-specific ones, is only reachable through Metadata.
func (h EntryHeader) Metadata() []MetadataEntry {
	meta, ok := h.node.FirstChildOfKind(token.METADATA)
	if !ok {
		return nil
	}
	entries := meta.ChildrenOfKind(token.METADATA_ENTRY)
	out := make([]MetadataEntry, 0, len(entries))
	for _, entry := range entries {
		var me MetadataEntry
		if key, ok := entry.FirstChildOfKind(token.METADATA_KEY); ok {
			me.Key = strings.TrimSpace(key.Text())
		}
		if val, ok := entry.FirstChildOfKind(token.METADATA_VALUE); ok {
			me.Value = strings.TrimSpace(val.Text())
		}
		out = append(out, me)
	}
	return out
}

// EntryBody is the typed view over an entry's run of body change lines.
type EntryBody struct {
	node cst.Node
}

// Lines returns one entry per body line, in document order: the raw DETAIL
// text for an ENTRY_BODY line, and "" for an EMPTY_LINE.
func (b EntryBody) Lines() []string {
	var lines []string
	for _, n := range b.node.Children() {
		switch n.Kind() {
		case token.ENTRY_BODY:
			text := ""
			if detail, ok := n.FirstChildOfKind(token.DETAIL); ok {
				text = detail.Text()
			}
			lines = append(lines, text)
		case token.EMPTY_LINE:
			lines = append(lines, "")
		}
	}
	return lines
}

// EntryFooter is the typed view over an ENTRY_FOOTER node.
type EntryFooter struct {
	node cst.Node
}

// Maintainer returns the maintainer's display name, trimmed.
func (f EntryFooter) Maintainer() string {
	n, ok := f.node.FirstChildOfKind(token.MAINTAINER)
	if !ok {
		return ""
	}
	return strings.TrimSpace(n.Text())
}

// Email unwraps the footer's EMAIL token, stripping the surrounding angle
// brackets. A token shorter than 2 bytes (malformed input) yields "".
func (f EntryFooter) Email() string {
	n, ok := f.node.FirstChildOfKind(token.EMAIL)
	if !ok {
		return ""
	}
	text := n.Text()
	if len(text) < 2 {
		return ""
	}
	return text[1 : len(text)-1]
}

// Timestamp parses the footer's TIMESTAMP node text with timestampLayout.
func (f EntryFooter) Timestamp() (time.Time, error) {
	n, ok := f.node.FirstChildOfKind(token.TIMESTAMP)
	if !ok {
		return time.Time{}, &dxerrors.ParseError{Type: "Timestamp", Value: "missing timestamp"}
	}
	t, err := time.Parse(timestampLayout, strings.TrimSpace(n.Text()))
	if err != nil {
		return time.Time{}, &dxerrors.ParseError{Type: "Timestamp", Value: n.Text()}
	}
	return t, nil
}
