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

package condset

import (
	"regexp"
	"testing"

	"github.com/enriquepablo/syntreenet/pkg/fact"
	"github.com/enriquepablo/syntreenet/pkg/parser"
	"github.com/enriquepablo/syntreenet/pkg/rule"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

type wordsParser struct{}

func (wordsParser) FactRule() string                         { return "sentence" }
func (wordsParser) VarPattern() *regexp.Regexp                { return regexp.MustCompile(`^__X[0-9]+$`) }
func (wordsParser) VarRangePattern() *regexp.Regexp           { return nil }
func (wordsParser) FactSep() string                           { return ";" }
func (wordsParser) Parse(text string) (*parser.Node, error)     { return nil, nil }
func (wordsParser) ParseFact(text string) (*parser.Node, error) { return nil, nil }

func sentence(words ...string) fact.Fact {
	root := &parser.Node{Expr: "sentence"}
	pos := 0
	var full []string
	for _, w := range words {
		expr := "word"
		if (wordsParser{}).VarPattern().MatchString(w) {
			expr = parser.VarExpr
		}
		root.Children = append(root.Children, &parser.Node{
			Expr: expr, FullText: w, Start: pos, End: pos + len(w),
		})
		pos += len(w) + 1
		full = append(full, w)
	}
	root.FullText = joinWords(full)
	return fact.FromParseTree(root, wordsParser{})
}

func joinWords(ws []string) string {
	out := ""
	for i, w := range ws {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func TestPropagateBindsRuleVariables(t *testing.T) {
	cs := New(nil, wordsParser{})
	condition := sentence("__X1", "likes", "__X2")
	r := &rule.Rule{Conditions: []fact.Fact{condition}}
	cs.AddRule(r, condition)

	fresh := sentence("alice", "likes", "bob")
	acts := cs.Propagate(fresh)
	if len(acts) != 1 {
		t.Fatalf("expected one activation, got %d", len(acts))
	}
	a := acts[0]
	if a.Precedent.(*rule.Rule) != r {
		t.Fatal("activation does not reference the indexed rule")
	}
	x1, ok := a.Matching.Get(segment.NewVar(parser.VarExpr, "__X1", 0, 0))
	if !ok || x1.Text != "alice" {
		t.Fatalf("__X1 bound wrong: %+v ok=%v", x1, ok)
	}
	x2, ok := a.Matching.Get(segment.NewVar(parser.VarExpr, "__X2", 0, 0))
	if !ok || x2.Text != "bob" {
		t.Fatalf("__X2 bound wrong: %+v ok=%v", x2, ok)
	}
}

func TestPropagateRejectsRepeatedVariableMismatch(t *testing.T) {
	cs := New(nil, wordsParser{})
	condition := sentence("__X1", "likes", "__X1")
	r := &rule.Rule{Conditions: []fact.Fact{condition}}
	cs.AddRule(r, condition)

	mismatch := sentence("alice", "likes", "bob")
	if acts := cs.Propagate(mismatch); len(acts) != 0 {
		t.Fatalf("expected no activations for a non-reflexive fact, got %d", len(acts))
	}

	match := sentence("alice", "likes", "alice")
	if acts := cs.Propagate(match); len(acts) != 1 {
		t.Fatalf("expected one activation for a reflexive fact, got %d", len(acts))
	}
}

func TestPropagateNoMatchForDifferentShape(t *testing.T) {
	cs := New(nil, wordsParser{})
	condition := sentence("__X1", "likes", "__X2")
	r := &rule.Rule{Conditions: []fact.Fact{condition}}
	cs.AddRule(r, condition)

	other := sentence("alice", "hates", "bob")
	if acts := cs.Propagate(other); len(acts) != 0 {
		t.Fatalf("expected no activations, got %d", len(acts))
	}
}
