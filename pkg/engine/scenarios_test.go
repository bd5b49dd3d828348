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

package engine

import (
	"testing"

	"github.com/enriquepablo/syntreenet/pkg/grammar"
)

// relGrammar parses flat space-separated relations such as "socrates is
// human" or a rule joining two of them, through pkg/grammar's own
// reference compiler rather than the hand-built toyGrammar above — it
// exercises the real parse path the rest of the repository ships.
const relGrammar = `
fact = word (__ws__ word)*
word = __var__ / ~"[a-zA-Z0-9_]+"
`

func mustCompile(t *testing.T, src string, opts ...grammar.Option) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Compile(src, opts...)
	if err != nil {
		t.Fatalf("grammar.Compile: %v", err)
	}
	return g
}

func mustEngine(t *testing.T, g *grammar.Grammar) *Engine {
	t.Helper()
	e, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func tellAll(t *testing.T, e *Engine, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if err := e.Tell(text); err != nil {
			t.Fatalf("Tell(%q): %v", text, err)
		}
	}
}

// TestTransitiveClassRelationsDistinguishIsFromIsa tells two distinct
// transitivity rules over "is" and "isa", each closing only over its own
// relation, and confirms they never cross-pollinate: susan is isa-related
// to human, which is is-related up to thing, so susan is isa thing, but
// nothing ever asserts that human itself stands in an isa relation to
// anything, so that query must fail, including through Goal's backward
// chase.
func TestTransitiveClassRelationsDistinguishIsFromIsa(t *testing.T) {
	g := mustCompile(t, relGrammar)
	e := mustEngine(t, g)

	tellAll(t, e,
		"X1 is X2 ; X2 is X3 -> X1 is X3",
		"X1 isa X2 ; X2 is X3 -> X1 isa X3",
		"animal is thing",
		"human is animal",
		"susan isa human",
	)

	if ok, err := e.AskBool("human is thing"); err != nil || !ok {
		t.Fatalf("human is thing: ok=%v err=%v", ok, err)
	}
	if ok, err := e.AskBool("susan isa thing"); err != nil || !ok {
		t.Fatalf("susan isa thing: ok=%v err=%v", ok, err)
	}

	ms, err := e.Goal("human isa thing")
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if len(ms) != 0 {
		t.Fatalf("expected no fulfillment for %q, got %d", "human isa thing", len(ms))
	}
}

// TestGoalConfirmsTransitiveIsaThroughRules exercises Goal's API surface
// over the same class-hierarchy rules, the way TestGoalAnswersDerivedFact
// does for toyGrammar above: Tell already forward-chains susan's isa
// relation to thing eagerly, so this confirms Goal's fast path agrees.
func TestGoalConfirmsTransitiveIsaThroughRules(t *testing.T) {
	g := mustCompile(t, relGrammar)
	e := mustEngine(t, g)

	tellAll(t, e,
		"X1 is X2 ; X2 is X3 -> X1 is X3",
		"X1 isa X2 ; X2 is X3 -> X1 isa X3",
		"animal is thing",
		"human is animal",
		"susan isa human",
	)

	ms, err := e.Goal("susan isa thing")
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if len(ms) == 0 {
		t.Fatal("expected Goal to confirm susan isa thing")
	}
}

// nestedGrammar parses parenthesized and quoted runs of words, nested
// arbitrarily deep: "((ho ho))" and "''ho ho''" are distinct shapes that
// never unify with one another even when they wrap identical words, and a
// bare variable occupying an entire parenthesized or quoted position binds
// to that whole sub-tree rather than to a single word.
const nestedGrammar = `
fact = tag / quote
tag = "(" __ws__ body __ws__ ")"
body = tag / v_var / plain_words
quote = "''" __ws__ qbody __ws__ "''"
qbody = quote / v_var / plain_words
v_var = __var__
plain_words = word (__ws__ word)*
word = ~"[a-zA-Z0-9_]+"
`

func TestNestedParensAndQuotesDoNotUnify(t *testing.T) {
	g := mustCompile(t, nestedGrammar)
	e := mustEngine(t, g)

	tellAll(t, e, "((ho ho))")

	if ok, err := e.AskBool("((ho ho))"); err != nil || !ok {
		t.Fatalf("((ho ho)): ok=%v err=%v", ok, err)
	}
	if ok, err := e.AskBool("((hi hi))"); err != nil || ok {
		t.Fatalf("((hi hi)) should be absent: ok=%v err=%v", ok, err)
	}
	if ok, err := e.AskBool("''ho ho''"); err != nil || ok {
		t.Fatalf("''ho ho'' should never unify with a parenthesized fact: ok=%v err=%v", ok, err)
	}
}

func TestNestedVariableBindsWholeInteriorSubtree(t *testing.T) {
	g := mustCompile(t, nestedGrammar)
	e := mustEngine(t, g)

	tellAll(t, e, "((ho ho))")

	ms, err := e.Ask("((X1))")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("got %d matchings, want 1", len(ms))
	}
	var found bool
	for _, p := range ms[0].Pairs() {
		if p.Key.Text == "X1" && p.Value.Text == "ho ho" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected X1 bound to %q, got %+v", "ho ho", ms[0].Pairs())
	}
}

// pairGrammar parses comma-separated "key : value" lists, parenthesized,
// where a value is itself either a nested list, a bare variable spanning
// the whole nested value, or a single word.
const pairGrammar = `
fact = list
list = "(" __ws__ pair (__ws__ "," __ws__ pair)* __ws__ ")"
pair = word __ws__ ":" __ws__ value
value = list / v_var / word
v_var = __var__
word = __var__ / ~"[a-zA-Z0-9_]+"
`

func TestKeyValuePairsBindInteriorVariables(t *testing.T) {
	g := mustCompile(t, pairGrammar)
	e := mustEngine(t, g)

	tellAll(t, e, "(es : (hola : adios), en : (hello : bye))")

	ms, err := e.Ask("(es : X1, en : X2)")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("got %d matchings, want 1", len(ms))
	}
	var gotX1, gotX2 string
	for _, p := range ms[0].Pairs() {
		switch p.Key.Text {
		case "X1":
			gotX1 = p.Value.Text
		case "X2":
			gotX2 = p.Value.Text
		}
	}
	if gotX1 != "(hola : adios)" || gotX2 != "(hello : bye)" {
		t.Fatalf("got X1=%q X2=%q, want %q and %q", gotX1, gotX2, "(hola : adios)", "(hello : bye)")
	}
}

func TestKeyValuePairsRequireConsistentRepeatedVariable(t *testing.T) {
	g := mustCompile(t, pairGrammar)
	e := mustEngine(t, g)

	tellAll(t, e,
		"(es : (hola : adios), en : (hello : bye))",
		"(es : (hola : mismo), en : (hello : mismo))",
	)

	ms, err := e.Ask("(es : (hola : X1), en : (hello : X1))")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("got %d matchings, want exactly 1 (only the matching-both-sides fact)", len(ms))
	}
	var gotX1 string
	for _, p := range ms[0].Pairs() {
		if p.Key.Text == "X1" {
			gotX1 = p.Value.Text
		}
	}
	if gotX1 != "mismo" {
		t.Fatalf("got X1=%q, want %q", gotX1, "mismo")
	}
}

// TestRuleOverVariableRangeConditionFires tells a rule whose single
// condition and consequence share an interior (variable-range) variable
// before the triggering fact exists, then asserts the fact, confirming the
// condition's variable-range position binds against the fact's own
// variable-range-shaped alternative (plain_words, not v_var — nestedGrammar
// routes concrete content there) via CondSet's direct-unification fallback
// rather than the flat leaf-path trie.
func TestRuleOverVariableRangeConditionFires(t *testing.T) {
	g := mustCompile(t, nestedGrammar)
	e := mustEngine(t, g)

	tellAll(t, e, "((X1)) -> ''X1''")
	tellAll(t, e, "((ho ho))")

	if ok, err := e.AskBool("''ho ho''"); err != nil || !ok {
		t.Fatalf("''ho ho'': ok=%v err=%v", ok, err)
	}
}

// TestTwoVariableRangeConditionRuleFiresEitherOrder mirrors
// TestTwoConditionRuleFiresEitherOrder but over variable-range conditions: a
// rule's first condition is indexed in CondSet, specializes to its
// remaining condition once matched, and that remaining condition is
// re-indexed and must still resolve through the same fallback regardless of
// which of the two triggering facts arrives first.
func TestTwoVariableRangeConditionRuleFiresEitherOrder(t *testing.T) {
	for _, order := range [][2]string{
		{"((ho ho))", "''hi hi''"},
		{"''hi hi''", "((ho ho))"},
	} {
		g := mustCompile(t, nestedGrammar)
		e := mustEngine(t, g)

		tellAll(t, e, "((X1)) ; ''X2'' -> ''X1'' ; ((X2))")
		tellAll(t, e, order[0], order[1])

		if ok, err := e.AskBool("((hi hi))"); err != nil || !ok {
			t.Fatalf("order %v: ((hi hi)): ok=%v err=%v", order, ok, err)
		}
	}
}
