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

// Package segment holds the smallest value types in the engine: Segment, the
// decomposed, interned piece of a parsed fact, and Path, the ordered route
// from a fact's root to one of its nodes. Both are immutable; every
// operation returns a new value rather than mutating its receiver.
package segment

// Kind distinguishes the two flavors of placeholder segment from an
// ordinary, concrete one.
type Kind uint8

const (
	// Concrete is a segment with a fixed value: neither a variable nor a
	// variable-range.
	Concrete Kind = iota
	// Var marks a leaf placeholder: it binds to a single leaf segment.
	Var
	// VarRange marks an interior placeholder: it binds to a whole sub-tree.
	VarRange
)

// Segment is an immutable record describing one node of a parsed fact:
// which grammar rule produced it (Expr), the source text it covers, that
// text's offsets within the fact's root text (not its immediate parent's),
// and whether it is a terminal (Leaf). Two segments are equal, and hash
// identically, iff their (Expr, Text) pairs match — Start, End and Leaf
// never distinguish them, since the same textual fact parses to the same
// segments regardless of where it is embedded.
type Segment struct {
	Expr       string
	Text       string
	Start, End int
	Leaf       bool
	Kind       Kind
}

// New builds a concrete, non-leaf segment.
func New(expr, text string, start, end int) Segment {
	return Segment{Expr: expr, Text: text, Start: start, End: end}
}

// NewLeaf builds a concrete leaf segment.
func NewLeaf(expr, text string, start, end int) Segment {
	return Segment{Expr: expr, Text: text, Start: start, End: end, Leaf: true}
}

// NewVar builds a variable (leaf placeholder) segment.
func NewVar(expr, text string, start, end int) Segment {
	return Segment{Expr: expr, Text: text, Start: start, End: end, Leaf: true, Kind: Var}
}

// NewVarRange builds a variable-range (interior placeholder) segment. A
// variable-range segment is not itself a leaf: it stands for the whole
// sub-tree rooted at it.
func NewVarRange(expr, text string, start, end int) Segment {
	return Segment{Expr: expr, Text: text, Start: start, End: end, Kind: VarRange}
}

// Equal reports whether two segments are value-equal: same Expr, same Text.
func (s Segment) Equal(o Segment) bool {
	return s.Expr == o.Expr && s.Text == o.Text
}

// IsVar reports whether s is a variable (leaf placeholder).
func (s Segment) IsVar() bool { return s.Kind == Var }

// IsVarRange reports whether s is a variable-range (interior placeholder).
func (s Segment) IsVarRange() bool { return s.Kind == VarRange }

// CanBeVar reports whether s is either kind of placeholder.
func (s Segment) CanBeVar() bool { return s.Kind != Concrete }

