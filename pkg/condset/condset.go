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

// Package condset implements CondSet, the discrimination tree indexing
// every live rule on its current first condition. A freshly asserted
// fact is propagated through this tree; wherever it reaches a rule's
// indexed condition, that rule may specialize.
package condset

import (
	"github.com/enriquepablo/syntreenet/pkg/discrim"
	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/rule"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// end is one rule indexed at a CondSet leaf: the rule whose current first
// condition led here, and that condition's normalized Fact.
type end struct {
	Rule      *rule.Rule
	Condition fact.Fact
}

// CondSet indexes each live rule's current first condition. Unlike
// FactSet, a rule-local variable in a condition is a true wildcard: any
// concrete value a future fact presents at that position must match it,
// so each tree node has at most one VarChild rather than a map of
// variable-shaped children.
//
// A condition containing a variable-range path (one that binds a whole
// sub-tree rather than a single leaf) is not flattened into the trie at
// all: the trie's leaf-path index has no node for "the next several
// leaves as one bound unit", the same limitation FactSet.Ask documents
// for queries. Such conditions are instead kept in varRange and matched
// by direct tree unification (fact.Unify) against every freshly asserted
// fact, mirroring FactSet.askByUnify.
type CondSet struct {
	root     *discrim.Node[[]end]
	ordering segment.Ordering
	parser   parser.Parser
	varRange []end
}

// New builds an empty CondSet over the grammar p parses. ordering prunes
// branches Propagate would otherwise walk into that the grammar's own
// structure rules out; pass segment.AlwaysOrdering{} for a grammar with
// no such constraints.
func New(ordering segment.Ordering, p parser.Parser) *CondSet {
	if ordering == nil {
		ordering = segment.AlwaysOrdering{}
	}
	return &CondSet{root: discrim.New[[]end](segment.Path{}), ordering: ordering, parser: p}
}

// AddRule indexes r on condition, r's current first condition. Engine
// calls this once when a rule is first told, and again each time
// Rule.Specialize leaves a new first condition to index.
func (cs *CondSet) AddRule(r *rule.Rule, condition fact.Fact) {
	e := end{Rule: r, Condition: condition}
	if condition.HasVarRange() {
		cs.varRange = append(cs.varRange, e)
		return
	}
	cs.insert(cs.root, condition.LeafPaths(), e)
}

func (cs *CondSet) insert(n *discrim.Node[[]end], ps []segment.Path, e end) {
	if len(ps) == 0 {
		if n.End == nil {
			n.End = &[]end{}
		}
		*n.End = append(*n.End, e)
		return
	}
	p := ps[0]
	var child *discrim.Node[[]end]
	if p.IsVar() {
		child = n.EnsureVarChild(p)
	} else {
		child = n.EnsureChild(p)
	}
	cs.insert(child, ps[1:], e)
}

// Propagate walks f's leaf paths through the trie, then unifies f's tree
// directly against every condition kept aside for containing a
// variable-range path, and returns one Activation per rule whose indexed
// condition unifies with f either way.
func (cs *CondSet) Propagate(f fact.Fact) []rule.Activation {
	var acts []rule.Activation
	cs.walk(cs.root, f.LeafPaths(), matching.Empty, segment.Path{}, &acts)
	for _, e := range cs.varRange {
		if e.Condition.Tree == nil || f.Tree == nil {
			continue
		}
		if m, ok := fact.Unify(e.Condition.Tree, f.Tree, cs.parser, matching.Empty); ok {
			acts = append(acts, rule.Activation{
				Kind:      rule.RuleKind,
				Precedent: e.Rule,
				Matching:  m,
				Condition: e.Condition,
			})
		}
	}
	return acts
}

func (cs *CondSet) walk(n *discrim.Node[[]end], ps []segment.Path, m matching.Matching, at segment.Path, acts *[]rule.Activation) {
	if len(ps) == 0 {
		if n.End != nil {
			for _, e := range *n.End {
				*acts = append(*acts, rule.Activation{
					Kind:      rule.RuleKind,
					Precedent: e.Rule,
					Matching:  m,
					Condition: e.Condition,
				})
			}
		}
		return
	}
	p := ps[0]
	rest := ps[1:]
	if !cs.ordering.CanFollow(p, at) {
		return
	}

	if child, ok := n.Child(p); ok {
		cs.walk(child, rest, m, p, acts)
	}
	if n.VarChild != nil {
		varSeg := n.VarChild.Path.Value()
		if bound, ok := m.Get(varSeg); ok {
			if bound.Equal(p.Value()) {
				cs.walk(n.VarChild, rest, m, p, acts)
			}
		} else {
			cs.walk(n.VarChild, rest, m.Set(varSeg, p.Value()), p, acts)
		}
	}
}
