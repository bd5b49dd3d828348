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

// Package fact implements Fact, a parsed sentence in the user's grammar
// decomposed into the ordered Paths the discrimination trees index on.
package fact

import (
	"fmt"

	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/pathops"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// Fact is an immutable parsed sentence: its source text, the tuple of
// paths whose final segment is a leaf or a variable-range node (in
// left-to-right, depth-first order), and the parse tree it came from.
// Tree is retained so FactSet can fall back to direct tree unification
// when a query contains a variable-range path, which the flat
// leaf-sequence index cannot resolve on its own.
type Fact struct {
	Text  string
	Paths []segment.Path
	Tree  *parser.Node
}

// FromParseTree builds a Fact from a parser.Node by depth-first visiting
// every node, classifying it as concrete, variable, or variable-range
// using p's VarPattern and VarRangePattern, and recording a Path for each
// node whose classification is a leaf or a variable-range.
func FromParseTree(tree *parser.Node, p parser.Parser) Fact {
	var paths []segment.Path
	var walk func(n *parser.Node, prefix segment.Path)
	walk = func(n *parser.Node, prefix segment.Path) {
		seg := Classify(n, p)
		path := prefix.Append(seg)
		if seg.Leaf || seg.Kind == segment.VarRange {
			paths = append(paths, path)
		}
		if seg.Kind == segment.VarRange {
			// The whole sub-tree is elided: nothing beneath it is
			// individually addressable once it may be bound as a unit.
			return
		}
		for _, c := range n.Children {
			walk(c, path)
		}
	}
	walk(tree, segment.Path{})
	return Fact{Text: tree.FullText, Paths: paths, Tree: tree}
}

// Classify turns a parser.Node into the Segment it contributes to a Fact,
// using p to recognize variable and variable-range nodes. Unify applies
// the same classification when it unifies two parse trees directly.
func Classify(n *parser.Node, p parser.Parser) segment.Segment {
	switch {
	case n.Expr == parser.VarExpr && p.VarPattern() != nil && p.VarPattern().MatchString(n.FullText):
		return segment.NewVar(n.Expr, n.FullText, n.Start, n.End)
	case p.VarRangePattern() != nil && p.VarRangePattern().MatchString(n.Expr):
		return segment.NewVarRange(n.Expr, n.FullText, n.Start, n.End)
	case n.Leaf():
		return segment.NewLeaf(n.Expr, n.FullText, n.Start, n.End)
	default:
		return segment.New(n.Expr, n.FullText, n.Start, n.End)
	}
}

// LeafPaths returns f's paths whose final segment is a leaf — the paths a
// freshly asserted fact uses to drive CondSet.Propagate.
func (f Fact) LeafPaths() []segment.Path {
	out := make([]segment.Path, 0, len(f.Paths))
	for _, p := range f.Paths {
		if p.IsLeaf() {
			out = append(out, p)
		}
	}
	return out
}

// HasVarRange reports whether any of f's paths is a variable-range: a
// placeholder that binds to a whole sub-tree rather than a single leaf.
// FactSet, CondSet and ConsSet all fall back from their flat leaf-path
// index to direct tree unification (Unify) whenever this holds, since the
// index has no node for "the next several leaves as one bound unit".
func (f Fact) HasVarRange() bool {
	for _, p := range f.Paths {
		if p.Value().IsVarRange() {
			return true
		}
	}
	return false
}

// Unify attempts to unify query's parse tree qn against a stored fact's
// tree fn, under parser p's variable/variable-range classification,
// extending m with every binding discovered along the way. It is the
// shared tree-walking fallback FactSet.askByUnify, CondSet.Propagate and
// ConsSet.Query all use once a variable-range path makes the flat
// leaf-path index unable to answer on its own.
func Unify(qn, fn *parser.Node, p parser.Parser, m matching.Matching) (matching.Matching, bool) {
	qseg := Classify(qn, p)

	if qseg.IsVar() || qseg.IsVarRange() {
		fseg := Classify(fn, p)
		if bound, ok := m.Get(qseg); ok {
			if bound.Equal(fseg) {
				return m, true
			}
			return m, false
		}
		return m.Set(qseg, fseg), true
	}

	if qn.Expr != fn.Expr || qn.Leaf() != fn.Leaf() {
		return m, false
	}
	if qn.Leaf() {
		if qn.FullText != fn.FullText {
			return m, false
		}
		return m, true
	}
	if len(qn.Children) != len(fn.Children) {
		return m, false
	}
	for i := range qn.Children {
		nm, ok := Unify(qn.Children[i], fn.Children[i], p, m)
		if !ok {
			return m, false
		}
		m = nm
	}
	return m, true
}

// Substitute applies m across f's paths by splicing every bound
// replacement into f's source text at the span it came from, then
// re-parses the result via p.ParseFact. If no path of f is bound in m,
// the spliced text is f.Text unchanged.
func (f Fact) Substitute(m matching.Matching, p parser.Parser) (Fact, error) {
	text := pathops.SubstituteText(f.Text, f.Paths, m)
	tree, err := p.ParseFact(text)
	if err != nil {
		return Fact{}, err
	}
	return FromParseTree(tree, p), nil
}

// Normalize renames each variable in f, in left-to-right order of first
// occurrence, to a fresh "__Xn" variable segment. It returns the
// normalized Fact together with the inverse mapping (normalized variable
// -> the user's original variable segment).
func (f Fact) Normalize(p parser.Parser) (Fact, matching.Matching, error) {
	m := matching.Empty
	n := 0
	for _, path := range f.Paths {
		if !path.IsVar() {
			continue
		}

		v := path.Value()
		if m.Contains(v) {
			continue
		}
		n++
		fresh := segment.NewVar(parser.VarExpr, fmt.Sprintf("__X%d", n), v.Start, v.End)
		m = m.Set(v, fresh)
	}
	normalized, err := f.Substitute(m, p)
	if err != nil {
		return Fact{}, matching.Matching{}, err
	}
	return normalized, m.Invert(), nil
}

// String renders f's text, matching the style the rest of this engine uses
// for diagnostics and for the dedup keys computed over facts and rules.
func (f Fact) String() string { return f.Text }
