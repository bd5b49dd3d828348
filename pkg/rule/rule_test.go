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

package rule

import (
	"regexp"
	"strings"
	"testing"

	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/guard"
	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

type wordsParser struct{}

var wordsVarPat = regexp.MustCompile(`^__X[0-9]+$`)

func (wordsParser) FactRule() string               { return "sentence" }
func (wordsParser) VarPattern() *regexp.Regexp      { return wordsVarPat }
func (wordsParser) VarRangePattern() *regexp.Regexp { return nil }
func (wordsParser) FactSep() string                 { return ";" }

func (p wordsParser) parseInto(text string) *parser.Node {
	words := strings.Fields(text)
	root := &parser.Node{Expr: "sentence", FullText: text, Start: 0, End: len(text)}
	pos := 0
	for _, w := range words {
		start := strings.Index(text[pos:], w) + pos
		end := start + len(w)
		expr := "word"
		if p.VarPattern().MatchString(w) {
			expr = parser.VarExpr
		}
		root.Children = append(root.Children, &parser.Node{
			Expr: expr, FullText: w, Start: start, End: end,
		})
		pos = end
	}
	return root
}

func (p wordsParser) Parse(text string) (*parser.Node, error)     { return p.parseInto(text), nil }
func (p wordsParser) ParseFact(text string) (*parser.Node, error) { return p.parseInto(text), nil }

func sentence(p wordsParser, text string) fact.Fact {
	return fact.FromParseTree(p.parseInto(text), p)
}

func TestSpecializeSubstitutesAndDropsFirstCondition(t *testing.T) {
	p := wordsParser{}
	r := Rule{
		Conditions:   []fact.Fact{sentence(p, "__X1 parent __X2"), sentence(p, "__X2 parent __X3")},
		Consequences: []fact.Fact{sentence(p, "__X1 grandparent __X3")},
	}

	m := matching.Empty.
		Set(segment.NewVar(parser.VarExpr, "__X1", 0, 4), segment.NewLeaf("word", "a", 0, 1)).
		Set(segment.NewVar(parser.VarExpr, "__X2", 11, 15), segment.NewLeaf("word", "b", 0, 1))

	specialized, err := r.Specialize(m, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(specialized.Conditions) != 1 {
		t.Fatalf("expected one remaining condition, got %d", len(specialized.Conditions))
	}
	if specialized.Conditions[0].Text != "b parent __X3" {
		t.Fatalf("remaining condition not substituted: %q", specialized.Conditions[0].Text)
	}
	if specialized.Consequences[0].Text != "a grandparent __X3" {
		t.Fatalf("consequence partially substituted wrong: %q", specialized.Consequences[0].Text)
	}
	if specialized.Satisfied() {
		t.Fatal("rule should not be satisfied with a condition remaining")
	}
}

func TestSpecializeAccumulatesBoundAcrossCalls(t *testing.T) {
	p := wordsParser{}
	varmap := matching.Empty.Set(
		segment.NewVar(parser.VarExpr, "__X1", 0, 4),
		segment.NewVar(parser.VarExpr, "X1", 0, 2),
	)
	r := Rule{
		Conditions:   []fact.Fact{sentence(p, "__X1 parent __X2"), sentence(p, "__X2 parent __X3")},
		Consequences: []fact.Fact{sentence(p, "__X1 grandparent __X3")},
		Varmap:       varmap,
	}

	m1 := matching.Empty.Set(
		segment.NewVar(parser.VarExpr, "__X1", 0, 4),
		segment.NewLeaf("word", "abraham", 0, 1),
	)
	r1, err := r.Specialize(m1, p)
	if err != nil {
		t.Fatal(err)
	}

	m2 := matching.Empty.Set(
		segment.NewVar(parser.VarExpr, "__X3", 11, 15),
		segment.NewLeaf("word", "isaac", 0, 1),
	)
	r2, err := r1.Specialize(m2, p)
	if err != nil {
		t.Fatal(err)
	}
	if !r2.Satisfied() {
		t.Fatal("rule should be satisfied after both conditions specialize")
	}
	if r2.Consequences[0].Text != "abraham grandparent isaac" {
		t.Fatalf("consequence not fully substituted: %q", r2.Consequences[0].Text)
	}

	bindings := r2.OriginalBindings()
	bound, ok := bindings.Get(segment.NewVar(parser.VarExpr, "X1", 0, 2))
	if !ok || bound.Text != "abraham" {
		t.Fatalf("expected OriginalBindings to translate __X1 -> X1 -> abraham, got %v ok=%v", bound, ok)
	}
}

// fixedGuard is a trivial guard.Guard stand-in, avoiding a
// dependency on govaluate's expression syntax just to exercise wiring.
type fixedGuard bool

func (g fixedGuard) Check(matching.Matching) (bool, error) { return bool(g), nil }

func TestGuardsAreNotConsultedByRuleItself(t *testing.T) {
	// Rule.Satisfied and Rule.Specialize never consult Guards themselves —
	// that is Engine's job, once a rule's conditions are all matched. This
	// just confirms Guards survives Specialize unchanged.
	p := wordsParser{}
	g := guard.Guard(fixedGuard(true))
	r := Rule{
		Conditions:   []fact.Fact{sentence(p, "__X1 is human")},
		Consequences: []fact.Fact{sentence(p, "__X1 is mortal")},
		Guards:       []guard.Guard{g},
	}
	m := matching.Empty.Set(
		segment.NewVar(parser.VarExpr, "__X1", 0, 4),
		segment.NewLeaf("word", "socrates", 0, 1),
	)
	specialized, err := r.Specialize(m, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(specialized.Guards) != 1 {
		t.Fatal("expected Guards to survive Specialize")
	}
}
