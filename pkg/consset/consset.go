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

// Package consset implements ConsSet, the discrimination tree indexing
// every live rule on its consequences. It is structurally identical to
// CondSet — same wildcard-per-node treatment of rule-local variables —
// but answers the opposite question: given a goal fact, which rules
// could produce something unifying with it, and under what matching.
package consset

import (
	"github.com/enriquepablo/syntreenet/pkg/discrim"
	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/rule"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// end is one rule indexed at a ConsSet leaf: the rule whose consequence
// led here, and that consequence's normalized Fact.
type end struct {
	Rule        *rule.Rule
	Consequence fact.Fact
}

// ConsSet indexes every live rule on each of its consequences. Like
// CondSet, a consequence containing a variable-range path is kept aside
// in varRange and matched by direct tree unification instead of being
// flattened into the trie — see CondSet's doc comment for why.
type ConsSet struct {
	root     *discrim.Node[[]end]
	ordering segment.Ordering
	parser   parser.Parser
	varRange []end
}

// New builds an empty ConsSet over the grammar p parses.
func New(ordering segment.Ordering, p parser.Parser) *ConsSet {
	if ordering == nil {
		ordering = segment.AlwaysOrdering{}
	}
	return &ConsSet{root: discrim.New[[]end](segment.Path{}), ordering: ordering, parser: p}
}

// AddRule indexes r under each of its consequences, so a later goal query
// unifying with any of them finds r.
func (cs *ConsSet) AddRule(r *rule.Rule) {
	for _, c := range r.Consequences {
		e := end{Rule: r, Consequence: c}
		if c.HasVarRange() {
			cs.varRange = append(cs.varRange, e)
			continue
		}
		cs.insert(cs.root, c.LeafPaths(), e)
	}
}

func (cs *ConsSet) insert(n *discrim.Node[[]end], ps []segment.Path, e end) {
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

// Query walks goal's leaf paths through the tree, then unifies goal's
// tree directly against every consequence kept aside for containing a
// variable-range path, and returns one Activation per rule whose
// consequence unifies with goal either way — candidates Engine.Goal
// should chase backward through their conditions.
func (cs *ConsSet) Query(goal fact.Fact) []rule.Activation {
	var acts []rule.Activation
	cs.walk(cs.root, goal.LeafPaths(), matching.Empty, segment.Path{}, &acts)
	for _, e := range cs.varRange {
		if e.Consequence.Tree == nil || goal.Tree == nil {
			continue
		}
		if m, ok := fact.Unify(e.Consequence.Tree, goal.Tree, cs.parser, matching.Empty); ok {
			acts = append(acts, rule.Activation{
				Kind:       rule.RuleKind,
				Precedent:  e.Rule,
				Matching:   m,
				Condition:  e.Consequence,
				QueryRules: true,
			})
		}
	}
	return acts
}

func (cs *ConsSet) walk(n *discrim.Node[[]end], ps []segment.Path, m matching.Matching, at segment.Path, acts *[]rule.Activation) {
	if len(ps) == 0 {
		if n.End != nil {
			for _, e := range *n.End {
				*acts = append(*acts, rule.Activation{
					Kind:       rule.RuleKind,
					Precedent:  e.Rule,
					Matching:   m,
					Condition:  e.Consequence,
					QueryRules: true,
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
