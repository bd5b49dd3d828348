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

package segment

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Path is an immutable ordered tuple of Segments: the route from a fact's
// root to some node. Paths are derived (by appending a Segment, or via
// substitution) and never mutated in place.
type Path struct {
	segs []Segment
}

// NewPath builds a Path from a sequence of segments, root first.
func NewPath(segs ...Segment) Path {
	cp := make([]Segment, len(segs))
	copy(cp, segs)
	return Path{segs: cp}
}

// Append returns a new Path with seg appended as the new final segment.
func (p Path) Append(seg Segment) Path {
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = seg
	return Path{segs: segs}
}

// Parent returns p with its final segment dropped. Parent of a root-only
// path is the empty path.
func (p Path) Parent() Path {
	if len(p.segs) == 0 {
		return Path{}
	}
	return Path{segs: p.segs[:len(p.segs)-1]}
}

// Len returns the number of segments in p.
func (p Path) Len() int { return len(p.segs) }

// Empty reports whether p has no segments (the tree root).
func (p Path) Empty() bool { return len(p.segs) == 0 }

// At returns the i'th segment of p, root first.
func (p Path) At(i int) Segment { return p.segs[i] }

// Segments returns a defensive copy of p's segments.
func (p Path) Segments() []Segment {
	cp := make([]Segment, len(p.segs))
	copy(cp, p.segs)
	return cp
}

// Value returns p's last segment: the node p identifies.
func (p Path) Value() Segment {
	if len(p.segs) == 0 {
		return Segment{}
	}
	return p.segs[len(p.segs)-1]
}

// IsLeaf reports whether p's last segment is a leaf.
func (p Path) IsLeaf() bool { return p.Value().Leaf }

// IsVar reports whether p's last segment is a variable.
func (p Path) IsVar() bool { return p.Value().IsVar() }

// CanBeVar reports whether p's last segment is a variable or
// variable-range.
func (p Path) CanBeVar() bool { return p.Value().CanBeVar() }

// WithValue returns a copy of p whose last segment is replaced by v; it is
// the structural shorthand spec.md calls change_value. It only rewrites
// p's own final segment — it does not touch any text, so callers that
// need a fact's whole text kept consistent after a substitution use
// pathops.SubstituteText instead.
func (p Path) WithValue(v Segment) Path {
	if len(p.segs) == 0 {
		return p.Append(v)
	}
	segs := make([]Segment, len(p.segs))
	copy(segs, p.segs)
	segs[len(segs)-1] = v
	return Path{segs: segs}
}

// Key is the identity used for hashing and map lookups: the sequence of
// expr names plus the final segment's text. Two paths with the same Key
// represent the same node reached the same way.
func (p Path) Key() string {
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteString(s.Expr)
		b.WriteByte(0)
	}
	if len(p.segs) > 0 {
		b.WriteString(p.segs[len(p.segs)-1].Text)
	}
	return b.String()
}

// ShapeKey is the identity used to share a discrimination-tree node across
// every variable or variable-range occurrence at the same structural
// position: the sequence of expr names, ignoring the final segment's
// bound text entirely.
func (p Path) ShapeKey() string {
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteString(s.Expr)
		b.WriteByte(0)
	}
	return b.String()
}

// deepKey returns the sequence of expr-name hashes, used to test
// subpath/prefix relations independent of bound values.
func (p Path) deepKey() []uint32 {
	out := make([]uint32, len(p.segs))
	for i, s := range p.segs {
		h := fnv.New32a()
		h.Write([]byte(s.Expr))
		out[i] = h.Sum32()
	}
	return out
}

// StartsWith reports whether prefix is a (possibly equal, possibly proper)
// prefix of p, compared on deep identity (expr-name sequence), ignoring
// bound text.
func (p Path) StartsWith(prefix Path) bool {
	if prefix.Len() > p.Len() {
		return false
	}
	pd, qd := p.deepKey(), prefix.deepKey()
	for i := range qd {
		if pd[i] != qd[i] {
			return false
		}
	}
	return true
}

// String renders p for diagnostics: dotted expr names with the final text
// in parens.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Expr)
	}
	b.WriteByte('(')
	b.WriteString(strconv.Quote(p.Value().Text))
	b.WriteByte(')')
	return b.String()
}

// PathsAfter returns those paths in ps that come strictly after the first
// path prefixed by self, and that are not themselves prefixed by self. It
// is used to skip into a sub-tree when self is an interior
// variable-range path that already shares structure with an existing
// index node.
func PathsAfter(self Path, ps []Path) []Path {
	start := -1
	for i, p := range ps {
		if p.StartsWith(self) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	var out []Path
	for _, p := range ps[start:] {
		if !p.StartsWith(self) {
			out = append(out, p)
		}
	}
	return out
}
