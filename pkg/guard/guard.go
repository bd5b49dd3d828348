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

// Package guard defines the Guard boundary: a rule-attached predicate
// consulted once all of a rule's conditions have matched, before its
// consequences fire. ExprGuard is one concrete Guard backed by an
// embedded expression evaluator, for grammars that want to write guards
// as a plain boolean expression over a rule's bound variables rather
// than Go code.
package guard

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/enriquepablo/syntreenet/pkg/matching"
)

// Guard is consulted with the Matching a rule's conditions just produced.
// It reports whether the rule may fire, and may return an error if the
// matching is missing something the guard needs.
type Guard interface {
	Check(m matching.Matching) (bool, error)
}

// ExprGuard is a Guard evaluated via a govaluate expression over a rule's
// bound variable names. Parameters are resolved from the Matching by
// looking up a Segment whose Text equals the expression identifier,
// among the keys of whichever kind (Var or VarRange) the rule normalized
// its variables to.
type ExprGuard struct {
	expr *govaluate.EvaluableExpression
}

// NewExprGuard parses expr once, at rule-load time, so a malformed guard
// expression fails fast rather than at first activation.
func NewExprGuard(expr string) (*ExprGuard, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("guard: %w", err)
	}
	return &ExprGuard{expr: e}, nil
}

// Check evaluates the guard expression with each variable in m.Keys()
// bound to its matched Segment's text, and requires the expression to
// evaluate to a bool.
func (g *ExprGuard) Check(m matching.Matching) (bool, error) {
	params := make(map[string]interface{}, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		params[k.Text] = v.Text
	}
	result, err := g.expr.Evaluate(params)
	if err != nil {
		return false, fmt.Errorf("guard: %w", err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("guard: expression did not evaluate to a bool, got %T", result)
	}
	return ok, nil
}
