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

// Package factset implements FactSet, the discrimination tree that indexes
// every fact asserted into an engine, and answers unification queries
// against them.
package factset

import (
	"github.com/enriquepablo/syntreenet/pkg/discrim"
	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// FactSet indexes ground facts on their leaf paths, branching on unbound
// leaf variables during a query. A query whose paths include a
// variable-range (one that binds a whole sub-tree, not a single leaf)
// cannot be resolved by walking the flat leaf index alone, since the
// index has no node for "the next N leaves as one unit"; FactSet instead
// falls back to direct parse-tree unification against every stored fact
// for that case. See DESIGN.md for why this split is the pragmatic
// choice rather than a purely tree-walked variable-range algorithm.
type FactSet struct {
	root   *discrim.Node[fact.Fact]
	facts  []fact.Fact
	seen   map[string]bool
	parser parser.Parser
}

// New builds an empty FactSet for the grammar p parses.
func New(p parser.Parser) *FactSet {
	return &FactSet{
		root:   discrim.New[fact.Fact](segment.Path{}),
		seen:   make(map[string]bool),
		parser: p,
	}
}

// Add inserts f into the index. Re-adding a fact whose text is already
// present is a no-op: Add is idempotent.
func (fs *FactSet) Add(f fact.Fact) {
	if fs.seen[f.Text] {
		return
	}
	fs.seen[f.Text] = true
	fs.facts = append(fs.facts, f)
	fs.insert(fs.root, f.LeafPaths(), &f)
}

// Contains reports whether f's exact text has already been asserted.
func (fs *FactSet) Contains(f fact.Fact) bool { return fs.seen[f.Text] }

// Ask returns one Matching per stored fact that unifies with query. A
// query with no variables at all yields either a single empty Matching
// (the fact is present) or none (it is not); a query whose paths are
// entirely variables or concrete yields one Matching per unifying fact.
func (fs *FactSet) Ask(query fact.Fact) []matching.Matching {
	if query.HasVarRange() {
		return fs.askByUnify(query)
	}
	var out []matching.Matching
	fs.query(fs.root, query.LeafPaths(), matching.Empty, &out)
	return out
}

func (fs *FactSet) insert(n *discrim.Node[fact.Fact], ps []segment.Path, f *fact.Fact) {
	if len(ps) == 0 {
		if n.End == nil {
			n.End = f
		}
		return
	}
	p := ps[0]
	var child *discrim.Node[fact.Fact]
	if p.CanBeVar() {
		child = n.EnsureLogicChild(p)
	} else {
		child = n.EnsureChild(p)
	}
	fs.insert(child, ps[1:], f)
}

func (fs *FactSet) query(n *discrim.Node[fact.Fact], ps []segment.Path, m matching.Matching, out *[]matching.Matching) {
	if len(ps) == 0 {
		if n.End != nil {
			mm := m
			mm.Origin = n.End
			*out = append(*out, mm)
		}
		return
	}
	p := ps[0]
	rest := ps[1:]

	if p.IsVar() {
		if bound, ok := m.Get(p.Value()); ok {
			fs.matchConcrete(n, p.WithValue(bound), rest, m, out)
			return
		}
		for _, child := range n.Children {
			fs.query(child, rest, m.Set(p.Value(), child.Path.Value()), out)
		}
		for _, child := range n.LogicChildren {
			fs.query(child, rest, m.Set(p.Value(), child.Path.Value()), out)
		}
		return
	}

	fs.matchConcrete(n, p, rest, m, out)
}

func (fs *FactSet) matchConcrete(n *discrim.Node[fact.Fact], p segment.Path, rest []segment.Path, m matching.Matching, out *[]matching.Matching) {
	if child, ok := n.Child(p); ok {
		fs.query(child, rest, m, out)
	}
	if child, ok := n.LogicChild(p); ok {
		fs.query(child, rest, m, out)
	}
}

// askByUnify resolves a query containing a variable-range path by
// unifying its parse tree directly against every stored fact's tree.
func (fs *FactSet) askByUnify(query fact.Fact) []matching.Matching {
	var out []matching.Matching
	if query.Tree == nil {
		return out
	}
	for i := range fs.facts {
		f := fs.facts[i]
		if f.Tree == nil {
			continue
		}
		if m, ok := fact.Unify(query.Tree, f.Tree, fs.parser, matching.New(&f)); ok {
			out = append(out, m)
		}
	}
	return out
}
