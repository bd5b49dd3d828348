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

// Package engine implements Engine, the forward-chaining production-rule
// engine tying FactSet, CondSet and ConsSet together behind Tell, Ask and
// Goal.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/enriquepablo/syntreenet/internal/synlog"
	"github.com/enriquepablo/syntreenet/pkg/condset"
	"github.com/enriquepablo/syntreenet/pkg/consset"
	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/factset"
	"github.com/enriquepablo/syntreenet/pkg/guard"
	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/rule"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

// ErrGrammarMisconfig is returned by New when p cannot possibly parse a
// well-formed fact or rule (its FactRule or FactSep is empty).
var ErrGrammarMisconfig = errors.New("engine: grammar misconfigured")

// maxGoalDepth bounds Engine.Goal's backward-chaining recursion so a
// cyclic rule set fails a query instead of looping forever.
const maxGoalDepth = 64

// Engine is a forward-chaining production-rule store: Tell asserts facts
// and rules, Ask unifies a query against everything asserted so far, and
// Goal chases a query backward through rule consequences when no
// matching fact exists yet.
type Engine struct {
	parser parser.Parser
	facts  *factset.FactSet
	conds  *condset.CondSet
	conss  *consset.ConsSet

	queue      []rule.Activation
	processing bool
	counter    int
	seenRules  map[string]bool

	log *zap.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithOrdering supplies the segment.Ordering CondSet and ConsSet use to
// prune branches the grammar rules out structurally.
func WithOrdering(o segment.Ordering) Option {
	return func(e *Engine) {
		e.conds = condset.New(o, e.parser)
		e.conss = consset.New(o, e.parser)
	}
}

// New builds an Engine over the grammar p parses.
func New(p parser.Parser, opts ...Option) (*Engine, error) {
	if p.FactRule() == "" || p.FactSep() == "" {
		return nil, ErrGrammarMisconfig
	}
	e := &Engine{
		parser:    p,
		facts:     factset.New(p),
		conds:     condset.New(segment.AlwaysOrdering{}, p),
		conss:     consset.New(segment.AlwaysOrdering{}, p),
		seenRules: make(map[string]bool),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Counter returns the number of activations e has processed so far, for a
// front end to report as a throughput metric.
func (e *Engine) Counter() int { return e.counter }

// Tell parses text as either a fact or a rule (whichever the grammar's
// top-level alternatives select) and asserts it, running the saturation
// loop to completion before returning.
func (e *Engine) Tell(text string) error {
	tree, err := e.parser.Parse(text)
	if err != nil {
		return err
	}
	if tree.Expr == parser.Rule {
		r, err := e.buildRule(tree)
		if err != nil {
			return err
		}
		e.enqueue(rule.Activation{Kind: rule.RuleKind, Precedent: r})
	} else {
		f := fact.FromParseTree(tree, e.parser)
		e.enqueue(rule.Activation{Kind: rule.FactKind, Precedent: &f})
	}
	e.process()
	return nil
}

// Ask parses text as a fact (possibly containing variables) and unifies
// it against everything asserted so far.
func (e *Engine) Ask(text string) ([]matching.Matching, error) {
	tree, err := e.parser.ParseFact(text)
	if err != nil {
		return nil, err
	}
	q := fact.FromParseTree(tree, e.parser)
	return e.facts.Ask(q), nil
}

// AskBool collapses Ask's result the way a query with no free variables
// is meant to read: true iff at least one matching was found.
func (e *Engine) AskBool(text string) (bool, error) {
	ms, err := e.Ask(text)
	if err != nil {
		return false, err
	}
	return len(ms) > 0, nil
}

// Goal answers text the way Ask does, but when no asserted fact unifies
// with it directly, chases ConsSet backward through rule consequences,
// attempting to satisfy each candidate rule's conditions in turn.
func (e *Engine) Goal(text string) ([]matching.Matching, error) {
	tree, err := e.parser.ParseFact(text)
	if err != nil {
		return nil, err
	}
	q := fact.FromParseTree(tree, e.parser)
	if ms := e.facts.Ask(q); len(ms) > 0 {
		return ms, nil
	}
	return e.goal(q, maxGoalDepth), nil
}

func (e *Engine) goal(q fact.Fact, depth int) []matching.Matching {
	if depth <= 0 {
		return nil
	}
	var out []matching.Matching
	for _, act := range e.conss.Query(q) {
		r, ok := act.Precedent.(*rule.Rule)
		if !ok {
			continue
		}
		if e.satisfyConditions(r.Conditions, act.Matching, depth-1) != nil {
			out = append(out, act.Matching)
		}
	}
	return out
}

// satisfyConditions tries to confirm every condition in conds, substituted
// through m, either against the fact store directly or recursively via
// Goal. It returns m, unchanged, on success, nil on failure.
func (e *Engine) satisfyConditions(conds []fact.Fact, m matching.Matching, depth int) *matching.Matching {
	for _, c := range conds {
		sub, err := c.Substitute(m, e.parser)
		if err != nil {
			return nil
		}
		if ms := e.facts.Ask(sub); len(ms) > 0 {
			continue
		}
		sub2 := e.goal(sub, depth)
		if len(sub2) == 0 {
			return nil
		}
	}
	return &m
}

func (e *Engine) enqueue(a rule.Activation) {
	e.queue = append(e.queue, a)
}

// process drains the activation queue to a fixed point. It is re-entrant
// only in the sense that a nested Tell during processing simply grows the
// same queue; the outer call is the one that actually walks it.
func (e *Engine) process() {
	if e.processing {
		return
	}
	e.processing = true
	defer func() { e.processing = false }()

	for len(e.queue) > 0 {
		a := e.queue[0]
		e.queue = e.queue[1:]
		e.counter++
		switch a.Kind {
		case rule.FactKind:
			e.processFact(a)
		case rule.RuleKind:
			e.processRule(a)
		case rule.RemoveKind:
			e.processRemove(a)
		}
	}
}

func (e *Engine) processFact(a rule.Activation) {
	f, ok := a.Precedent.(*fact.Fact)
	if !ok {
		return
	}
	if e.facts.Contains(*f) {
		return
	}
	e.log.Debug("assert fact", synlog.Fact(f), synlog.Counter(e.counter))
	e.facts.Add(*f)
	for _, act := range e.conds.Propagate(*f) {
		e.enqueue(act)
	}
}

func (e *Engine) processRule(a rule.Activation) {
	r, ok := a.Precedent.(*rule.Rule)
	if !ok {
		return
	}

	if a.Matching.Len() == 0 && a.Condition.Text == "" {
		// A brand new rule: index it, then backfill against every fact
		// already in the store.
		e.conss.AddRule(r)
		e.indexAndBackfill(r)
		return
	}

	key := r.String() + "\x00" + a.Condition.Text + "\x00" + matchingKey(a.Matching)
	if e.seenRules[key] {
		return
	}
	e.seenRules[key] = true

	specialized, err := r.Specialize(a.Matching, e.parser)
	if err != nil {
		e.log.Error("specialize failed", zap.Error(err))
		return
	}
	e.fire(&specialized)
}

// fire indexes a (possibly partially specialized) rule's new first
// condition and backfills it, or — once satisfied — checks its guards and
// asserts its consequences.
func (e *Engine) fire(r *rule.Rule) {
	if r.Satisfied() {
		ok, err := e.checkGuards(r)
		if err != nil {
			e.log.Error("guard check failed", zap.Error(err))
			return
		}
		if !ok {
			e.log.Debug("guard rejected rule", synlog.Rule(r))
			return
		}
		for _, c := range r.Consequences {
			cc := c
			e.enqueue(rule.Activation{Kind: rule.FactKind, Precedent: &cc})
		}
		return
	}
	e.indexAndBackfill(r)
}

// checkGuards reports whether every guard attached to r accepts r's
// (fully specialized) Varmap — the binding of the rule author's original
// variable names to the concrete segments that satisfied r's conditions.
func (e *Engine) checkGuards(r *rule.Rule) (bool, error) {
	if len(r.Guards) == 0 {
		return true, nil
	}
	m := r.OriginalBindings()
	for _, g := range r.Guards {
		ok, err := g.Check(m)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) indexAndBackfill(r *rule.Rule) {
	first := r.Conditions[0]
	e.conds.AddRule(r, first)
	for _, m := range e.facts.Ask(first) {
		key := r.String() + "\x00" + first.Text + "\x00" + matchingKey(m)
		if e.seenRules[key] {
			continue
		}
		e.seenRules[key] = true
		specialized, err := r.Specialize(m, e.parser)
		if err != nil {
			e.log.Error("backfill specialize failed", zap.Error(err))
			continue
		}
		e.fire(&specialized)
	}
}

func (e *Engine) processRemove(a rule.Activation) {
	// A RemoveKind activation is only logged: the fact stays in the
	// FactSet that Ask/Goal consult, and consequences already derived from
	// it are not retracted. Tell never enqueues a RemoveKind activation.
	f, ok := a.Precedent.(*fact.Fact)
	if !ok {
		return
	}
	e.log.Debug("retract fact", synlog.Fact(f))
}

func matchingKey(m matching.Matching) string {
	var b strings.Builder
	for _, p := range m.Pairs() {
		b.WriteString(p.Key.Expr)
		b.WriteByte(0)
		b.WriteString(p.Key.Text)
		b.WriteByte(0)
		b.WriteString(p.Value.Expr)
		b.WriteByte(0)
		b.WriteString(p.Value.Text)
		b.WriteByte(1)
	}
	return b.String()
}

// buildRule parses a rule's conditions and consequences node, normalizes
// every variable across the whole rule consistently, and returns the
// resulting Rule.
func (e *Engine) buildRule(tree *parser.Node) (*rule.Rule, error) {
	var condsNode, conssNode, guardNode *parser.Node
	for _, c := range tree.Children {
		switch c.Expr {
		case parser.Conds:
			condsNode = c
		case parser.Conss:
			conssNode = c
		case parser.Guard:
			guardNode = c
		}
	}
	if condsNode == nil || conssNode == nil {
		return nil, fmt.Errorf("engine: rule %q missing conditions or consequences", tree.FullText)
	}

	conds := make([]fact.Fact, 0, len(condsNode.Children))
	for _, c := range condsNode.Children {
		conds = append(conds, fact.FromParseTree(c, e.parser))
	}
	conss := make([]fact.Fact, 0, len(conssNode.Children))
	for _, c := range conssNode.Children {
		conss = append(conss, fact.FromParseTree(c, e.parser))
	}

	varmap := matching.Empty
	n := 0
	rename := func(f fact.Fact) (fact.Fact, error) {
		m := matching.Empty
		for _, p := range f.Paths {
			if !p.CanBeVar() {
				continue
			}
			v := p.Value()
			if existing, ok := varmap.Get(v); ok {
				m = m.Set(v, existing)
				continue
			}
			n++
			fresh := segment.NewVar(parser.VarExpr, fmt.Sprintf("__X%d", n), v.Start, v.End)
			varmap = varmap.Set(v, fresh)
			m = m.Set(v, fresh)
		}
		return f.Substitute(m, e.parser)
	}

	for i, c := range conds {
		nc, err := rename(c)
		if err != nil {
			return nil, err
		}
		conds[i] = nc
	}
	for i, c := range conss {
		nc, err := rename(c)
		if err != nil {
			return nil, err
		}
		conss[i] = nc
	}

	var guards []guard.Guard
	if guardNode != nil {
		expr := strings.TrimSuffix(strings.TrimPrefix(guardNode.FullText, "["), "]")
		if len(guardNode.Children) > 0 {
			expr = guardNode.Children[0].FullText
		}
		g, err := guard.NewExprGuard(expr)
		if err != nil {
			return nil, fmt.Errorf("engine: rule %q: %w", tree.FullText, err)
		}
		guards = append(guards, g)
	}

	return &rule.Rule{Conditions: conds, Consequences: conss, Varmap: varmap.Invert(), Guards: guards}, nil
}
