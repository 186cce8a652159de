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

	"dirpx.dev/chlog/internal/model"
	dxerrors "dirpx.dev/chlog/internal/model/errors"
	"gopkg.in/yaml.v3"
)

// Urgency is the closed set of values a changelog entry's "urgency"
// metadata key may carry. Parsing is case-insensitive; String always
// returns the lowercase canonical spelling.
type Urgency uint8

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyEmergency
	UrgencyCritical

	maxUrgency
)

const (
	urgencyLowStr       = "low"
	urgencyMediumStr    = "medium"
	urgencyHighStr      = "high"
	urgencyEmergencyStr = "emergency"
	urgencyCriticalStr  = "critical"
)

// ParseUrgency parses s, case-insensitively, into an Urgency. An
// unrecognized value is a *dxerrors.ParseError, never a panic: a bad
// urgency string in a changelog is malformed input, not a programming
// error.
func ParseUrgency(s string) (Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case urgencyLowStr:
		return UrgencyLow, nil
	case urgencyMediumStr:
		return UrgencyMedium, nil
	case urgencyHighStr:
		return UrgencyHigh, nil
	case urgencyEmergencyStr:
		return UrgencyEmergency, nil
	case urgencyCriticalStr:
		return UrgencyCritical, nil
	default:
		return 0, &dxerrors.ParseError{Type: "Urgency", Value: s}
	}
}

// String returns the lowercase canonical spelling of u.
func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return urgencyLowStr
	case UrgencyMedium:
		return urgencyMediumStr
	case UrgencyHigh:
		return urgencyHighStr
	case UrgencyEmergency:
		return urgencyEmergencyStr
	case UrgencyCritical:
		return urgencyCriticalStr
	default:
		return "invalid"
	}
}

// Redacted is identical to String: urgency values carry no sensitive data.
func (u Urgency) Redacted() string { return u.String() }

// TypeName returns "Urgency".
func (u Urgency) TypeName() string { return "Urgency" }

// IsZero always returns false: UrgencyLow (the zero value) is itself a
// meaningful, valid urgency, not an absence of one.
func (u Urgency) IsZero() bool { return false }

// Validate reports whether u is one of the known Urgency constants.
func (u Urgency) Validate() error {
	if u >= maxUrgency {
		return &dxerrors.ValidationError{Type: "Urgency", Reason: "out of range", Value: u}
	}
	return nil
}

// Equal reports whether u and other are the same urgency.
func (u Urgency) Equal(other Urgency) bool { return u == other }

func (u Urgency) MarshalJSON() ([]byte, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + u.String() + `"`), nil
}

func (u *Urgency) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseUrgency(s)
	if err != nil {
		return &dxerrors.UnmarshalError{Type: "Urgency", Data: data, Reason: err.Error()}
	}
	*u = parsed
	return nil
}

func (u Urgency) MarshalYAML() (any, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u.String(), nil
}

func (u *Urgency) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Urgency", Reason: err.Error()}
	}
	parsed, err := ParseUrgency(s)
	if err != nil {
		return &dxerrors.UnmarshalError{Type: "Urgency", Reason: err.Error()}
	}
	*u = parsed
	return nil
}

var _ model.Model = (*Urgency)(nil)
