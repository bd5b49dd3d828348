// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package matching implements Matching, the ordered key→value map over
// Segments that records how a rule's variables bind to concrete fact
// content. Matching is an association list rather than a hash map: order
// of insertion is preserved (tests in this engine inspect it), and keys
// are always unique.
package matching

import (
	"errors"

	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// ErrMergeConflict is returned by Merge when the two matchings disagree on
// the value bound to some shared key.
var ErrMergeConflict = errors.New("matching: merge conflict")

// pair is one binding in a Matching.
type pair struct {
	Key, Value segment.Segment
}

// Matching is an immutable, ordered association list of Segment bindings,
// plus an optional origin: the fact that produced this matching, stored
// as an opaque value (typically *fact.Fact) to avoid a package cycle
// between matching and fact.
type Matching struct {
	pairs  []pair
	Origin any
}

// Empty is the matching with no bindings and no origin.
var Empty = Matching{}

// New builds a Matching from an origin value; it has no bindings until
// Set is called.
func New(origin any) Matching {
	return Matching{Origin: origin}
}

// Len reports the number of bindings in m.
func (m Matching) Len() int { return len(m.pairs) }

// Keys returns the bound keys, in insertion order.
func (m Matching) Keys() []segment.Segment {
	out := make([]segment.Segment, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.Key
	}
	return out
}

// Pairs returns the bindings, in insertion order.
func (m Matching) Pairs() []struct{ Key, Value segment.Segment } {
	out := make([]struct{ Key, Value segment.Segment }, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = struct{ Key, Value segment.Segment }{p.Key, p.Value}
	}
	return out
}

// Get returns the value bound to key, and whether it is bound at all.
func (m Matching) Get(key segment.Segment) (segment.Segment, bool) {
	for _, p := range m.pairs {
		if p.Key.Equal(key) {
			return p.Value, true
		}
	}
	return segment.Segment{}, false
}

// GetKey performs the reverse lookup: the key bound to value, if any.
func (m Matching) GetKey(value segment.Segment) (segment.Segment, bool) {
	for _, p := range m.pairs {
		if p.Value.Equal(value) {
			return p.Key, true
		}
	}
	return segment.Segment{}, false
}

// Contains reports whether key is bound in m.
func (m Matching) Contains(key segment.Segment) bool {
	_, ok := m.Get(key)
	return ok
}

// Set returns a new Matching with key bound to value. If key is already
// bound to a different value, Set panics: callers that are not certain a
// key is fresh should check Contains first (mirroring the "keys are
// unique" invariant on Matching).
func (m Matching) Set(key, value segment.Segment) Matching {
	if existing, ok := m.Get(key); ok {
		if existing.Equal(value) {
			return m
		}
		panic("matching: key already bound to a different value")
	}
	pairs := make([]pair, len(m.pairs)+1)
	copy(pairs, m.pairs)
	pairs[len(m.pairs)] = pair{Key: key, Value: value}
	return Matching{pairs: pairs, Origin: m.Origin}
}

// Invert returns a new Matching with every key and value swapped, in the
// same relative order.
func (m Matching) Invert() Matching {
	pairs := make([]pair, len(m.pairs))
	for i, p := range m.pairs {
		pairs[i] = pair{Key: p.Value, Value: p.Key}
	}
	return Matching{pairs: pairs, Origin: m.Origin}
}

// Merge combines m and o into a new Matching containing every binding from
// both. Where both bind the same key, the bound values must agree, else
// ErrMergeConflict is returned. The origin of the result is m's origin.
func (m Matching) Merge(o Matching) (Matching, error) {
	out := m
	for _, p := range o.pairs {
		if existing, ok := out.Get(p.Key); ok {
			if !existing.Equal(p.Value) {
				return Matching{}, ErrMergeConflict
			}
			continue
		}
		pairs := make([]pair, len(out.pairs)+1)
		copy(pairs, out.pairs)
		pairs[len(out.pairs)] = p
		out = Matching{pairs: pairs, Origin: out.Origin}
	}
	return out, nil
}

// GetRealMatching rewrites m's keys through varmap: each key k in m is
// replaced by varmap.Get(k) when bound, and left as k otherwise. This is
// used to translate a matching expressed in a rule's normalized variables
// back into the rule author's original variable names (or vice versa).
func (m Matching) GetRealMatching(varmap Matching) Matching {
	out := Matching{Origin: m.Origin}
	for _, p := range m.pairs {
		key := p.Key
		if real, ok := varmap.Get(p.Key); ok {
			key = real
		}
		out = out.Set(key, p.Value)
	}
	return out
}
