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

// Package pathops implements the path algebra of spec.md §4.1: operations
// on segment.Path that require matching.Matching. It is a separate package
// from segment and matching (rather than methods on Path) so that segment
// stays a dependency-free leaf package and matching only depends on
// segment, avoiding an import cycle.
//
// Every Segment's Start/End is an offset into its fact's root text (not
// its immediate parent's), matching how parser.Node is documented and how
// every grammar in this repo populates them. That convention is what lets
// SubstituteText below splice several bindings into one text in a single
// pass, instead of needing to rewrite each ancestor in turn.
package pathops

import (
	"sort"

	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// Substitute replaces p's value with its binding in m, if any. It returns
// the new path and whether a substitution happened (callers needing the fact's whole rewritten text use SubstituteText
// instead, which handles several paths' bindings landing in one text).
func Substitute(p segment.Path, m matching.Matching) (segment.Path, bool) {
	if p.Len() == 0 {
		return p, false
	}
	if val, ok := m.Get(p.Value()); ok {
		return p.WithValue(val), true
	}
	return p, false
}

// span is one bound replacement located in the fact's root text.
type span struct {
	start, end int
	text       string
}

// SubstituteText splices every path in ps that is bound in m into text, at
// the absolute [Start:End) span each path's value segment records, and
// returns the result. Unbound paths leave text untouched at their span.
// Overlapping bound spans (e.g. a variable-range path and a leaf nested
// inside it both bound) are resolved by keeping the outermost (widest)
// span and discarding spans it contains.
func SubstituteText(text string, ps []segment.Path, m matching.Matching) string {
	var spans []span
	for _, p := range ps {
		if p.Len() == 0 {
			continue
		}
		v := p.Value()
		val, ok := m.Get(v)
		if !ok {
			continue
		}
		if v.Start < 0 || v.End > len(text) || v.Start > v.End {
			continue
		}
		spans = append(spans, span{start: v.Start, end: v.End, text: val.Text})
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var kept []span
	for _, s := range spans {
		if len(kept) > 0 && s.start < kept[len(kept)-1].end {
			// Nested inside the previous (wider) span: skip it.
			continue
		}
		kept = append(kept, s)
	}

	var b []byte
	pos := 0
	for _, s := range kept {
		if s.start < pos {
			continue
		}
		b = append(b, text[pos:s.start]...)
		b = append(b, s.text...)
		pos = s.end
	}
	b = append(b, text[pos:]...)
	return string(b)
}
