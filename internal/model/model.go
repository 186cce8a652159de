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

// Package model defines the contracts chlog's domain value types (Urgency,
// Version) implement so they can be validated, serialized, logged and
// identified uniformly, and so the generic helpers in this package can
// operate over them without type-specific glue.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the contract every chlog domain value type implements.
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable checks that an instance satisfies its invariants. Validate
// must be fast, deterministic, and must not mutate the receiver.
type Validatable interface {
	Validate() error
}

// Serializable gives a model round-trip JSON and YAML encoding. Marshal
// implementations should validate before encoding; unmarshal
// implementations should validate after decoding.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable distinguishes a safe-for-logs representation from a full one.
// None of chlog's current value types carry sensitive data, so Redacted and
// String are typically identical, but the distinction is kept so future
// fields (for example a maintainer email) have a place to be masked without
// changing the interface.
type Loggable interface {
	Redacted() string
	String() string
}

// Identifiable returns a stable, package-prefix-free type name used in
// error messages and structured log fields.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable reports whether an instance carries no meaningful data.
type ZeroCheckable interface {
	IsZero() bool
}

// Comparable is implemented by value types with a non-trivial notion of
// equality (semantic equality rather than Go's built-in ==).
type Comparable[T any] interface {
	Equal(other T) bool
}
