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
	"encoding/json"
	"strconv"
	"strings"

	bsemver "github.com/blang/semver/v4"
	xsemver "golang.org/x/mod/semver"

	"dirpx.dev/chlog/internal/model"
	dxerrors "dirpx.dev/chlog/internal/model/errors"
	"gopkg.in/yaml.v3"
)

// Version wraps a package version string as found in a changelog entry
// header's parenthesized VERSION token (parens already stripped).
//
// Package versions follow Debian's [epoch:]upstream[-revision] shape, which
// SemVer has no concept of (an epoch, or a revision with its own dots and
// hyphens, doesn't fit major.minor.patch). So Version always keeps the
// original text verbatim in Raw, and opportunistically parses the
// upstream portion as SemVer into Upstream when it happens to look like
// one — most upstream versions do. Comparison falls back to a simpler
// ordering when Upstream isn't available on either side; see Compare.
type Version struct {
	// Raw is the exact, verbatim version text (for example "2:3.3.4-1").
	Raw string

	// Upstream is the best-effort SemVer parse of the upstream portion of
	// Raw (epoch and Debian revision stripped), or nil if that portion
	// isn't valid SemVer or the shorthand golang.org/x/mod/semver accepts
	// (such as "1.0", which is read as 1.0.0).
	Upstream *bsemver.Version

	epoch    int
	revision string
}

// ParseVersion parses s into a Version. Unlike most ParseX functions in
// this module, ParseVersion never fails: any string is a valid (if
// possibly un-comparable) Version, because the raw changelog text must
// always be preserved even when it isn't well-formed.
func ParseVersion(s string) Version {
	epoch, upstreamText, revision := splitDebianVersion(s)

	v := Version{Raw: s, epoch: epoch, revision: revision}

	// x/mod/semver accepts the two-component shorthand many upstream
	// versions use (e.g. "1.0") and canonicalizes it to "v1.0.0"; blang's
	// stricter Parse rejects the shorthand outright, so run the canonical
	// (zero-padded) form through it instead of the raw upstream text.
	if candidate := "v" + upstreamText; xsemver.IsValid(candidate) {
		canonical := strings.TrimPrefix(xsemver.Canonical(candidate), "v")
		if parsed, err := bsemver.Parse(canonical); err == nil {
			v.Upstream = &parsed
		}
	}

	return v
}

// splitDebianVersion splits a Debian-style version string into its epoch
// (0 if absent or non-numeric), upstream portion, and revision (empty if
// there is no trailing "-revision").
func splitDebianVersion(s string) (epoch int, upstream string, revision string) {
	rest := s
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		if n, err := strconv.Atoi(rest[:idx]); err == nil {
			epoch = n
			rest = rest[idx+1:]
		}
	}
	if idx := strings.LastIndexByte(rest, '-'); idx >= 0 {
		return epoch, rest[:idx], rest[idx+1:]
	}
	return epoch, rest, ""
}

// String returns the verbatim version text.
func (v Version) String() string { return v.Raw }

// Redacted is identical to String: version strings carry no sensitive data.
func (v Version) Redacted() string { return v.Raw }

// TypeName returns "Version".
func (v Version) TypeName() string { return "Version" }

// IsZero reports whether v holds no version text at all.
func (v Version) IsZero() bool { return v.Raw == "" }

// Validate reports whether v has any text to compare or display.
func (v Version) Validate() error {
	if v.Raw == "" {
		return &dxerrors.ValidationError{Type: "Version", Field: "Raw", Reason: "must not be empty"}
	}
	return nil
}

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than
// other.
//
// The epoch, when either side has one, always dominates. When both sides
// parsed an Upstream SemVer, comparison delegates to it and breaks SemVer
// ties using the Debian revision as a plain lexical tiebreaker. When either
// side failed to parse as SemVer, Compare falls back to a lexical
// comparison of the full raw text — this is not Debian's dpkg
// --compare-versions algorithm (out of scope), only a best-effort total
// order sufficient for sorting and equality checks.
func (v Version) Compare(other Version) int {
	if v.epoch != other.epoch {
		if v.epoch < other.epoch {
			return -1
		}
		return 1
	}

	if v.Upstream != nil && other.Upstream != nil {
		if c := v.Upstream.Compare(*other.Upstream); c != 0 {
			return c
		}
		return strings.Compare(v.revision, other.revision)
	}

	return strings.Compare(v.Raw, other.Raw)
}

func (v Version) Less(other Version) bool    { return v.Compare(other) < 0 }
func (v Version) Equal(other Version) bool   { return v.Compare(other) == 0 }
func (v Version) Greater(other Version) bool { return v.Compare(other) > 0 }

func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.Raw)
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	*v = ParseVersion(s)
	return v.Validate()
}

func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.Raw, nil
}

func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Reason: err.Error()}
	}
	*v = ParseVersion(s)
	return v.Validate()
}

var _ model.Model = (*Version)(nil)
