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

// Package rule holds the shared vocabulary the engine's saturation loop
// runs on: Rule, the normalized-variable form an engine actually indexes,
// and Activation, the unit of work its queue processes.
package rule

import (
	"strings"

	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/guard"
	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
)

// Rule is conditions implying consequences: once every condition has a
// fact it unifies with, under one consistent matching, every consequence
// (substituted through that matching) may be asserted. Varmap recovers
// the rule author's original variable names from the normalized ones
// Conditions and Consequences are expressed in; it is the inverse
// Fact.Normalize hands back. Bound accumulates, one Specialize call at a
// time, the normalized variable -> concrete value bindings discovered so
// far; once Satisfied, translating Bound's keys through Varmap gives the
// original-variable-name matching a Guard checks.
type Rule struct {
	Conditions   []fact.Fact
	Consequences []fact.Fact
	Varmap       matching.Matching
	Bound        matching.Matching
	Guards       []guard.Guard
}

// String renders r's conditions and consequences for dedup keys and
// diagnostics, joined the way its surface syntax would read.
func (r Rule) String() string {
	var b strings.Builder
	for i, c := range r.Conditions {
		if i > 0 {
			b.WriteString(" ; ")
		}
		b.WriteString(c.Text)
	}
	b.WriteString(" -> ")
	for i, c := range r.Consequences {
		if i > 0 {
			b.WriteString(" ; ")
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

// Specialize returns a copy of r with its first condition replaced by the
// remaining conditions alone — the partially-specialized rule
// CondSet.Propagate produces once one condition is satisfied — plus the
// consequences renamed through m so far.
func (r Rule) Specialize(m matching.Matching, p parser.Parser) (Rule, error) {
	rest := make([]fact.Fact, len(r.Conditions)-1)
	copy(rest, r.Conditions[1:])

	conss := make([]fact.Fact, len(r.Consequences))
	for i, c := range r.Consequences {
		nc, err := c.Substitute(m, p)
		if err != nil {
			return Rule{}, err
		}
		conss[i] = nc
	}
	conds := make([]fact.Fact, len(rest))
	for i, c := range rest {
		nc, err := c.Substitute(m, p)
		if err != nil {
			return Rule{}, err
		}
		conds[i] = nc
	}
	bound, err := r.Bound.Merge(m)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Conditions: conds, Consequences: conss, Varmap: r.Varmap, Bound: bound, Guards: r.Guards}, nil
}

// Satisfied reports whether r has no conditions left to match: every
// condition has been specialized away, so its consequences fire.
func (r Rule) Satisfied() bool { return len(r.Conditions) == 0 }

// OriginalBindings translates Bound's normalized-variable keys back to the
// rule author's original variable names via Varmap, for a Guard to
// evaluate against the surface syntax it was written in.
func (r Rule) OriginalBindings() matching.Matching {
	out := matching.Empty
	for _, p := range r.Bound.Pairs() {
		orig, ok := r.Varmap.Get(p.Key)
		if !ok {
			continue
		}
		if out.Contains(orig) {
			continue
		}
		out = out.Set(orig, p.Value)
	}
	return out
}

// Kind distinguishes what an Activation carries.
type Kind uint8

const (
	// FactKind is a freshly asserted ground fact.
	FactKind Kind = iota
	// RuleKind is a rule: either freshly asserted, with no Matching and no
	// Condition, not yet backfilled against the existing fact store; or one
	// whose Condition just unified with a fact under Matching.
	RuleKind
	// RemoveKind is a retraction; the engine logs it and leaves the fact
	// in the store.
	RemoveKind
)

// Activation is one unit of work the engine's saturation loop processes.
// Precedent is the fact or rule this activation concerns. Matching and
// Condition are set when an activation represents a rule whose Condition
// just unified with some existing fact under Matching — the case
// CondSet.Propagate produces. QueryRules is set on the candidates
// ConsSet.Query returns while answering a goal; the saturation loop does
// not read it.
type Activation struct {
	Kind       Kind
	Precedent  any
	Matching   matching.Matching
	Condition  fact.Fact
	QueryRules bool
}
