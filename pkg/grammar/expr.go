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

// Package grammar is the one reference pkg/parser.Parser implementation in
// this repository: a small PEG-like grammar DSL compiled into a table of
// named productions, matched against input text by a packrat
// recursive-descent matcher. It always prefixes a user's grammar with the
// built-in preamble spec.md §6 names, so any grammar written against this
// compiler automatically gets rule syntax, variables and whitespace
// handling without the user writing them by hand.
package grammar

import "regexp"

// exprKind distinguishes the PEG combinators an expr node can be.
type exprKind int

const (
	litKind exprKind = iota
	regexKind
	refKind
	seqKind
	choiceKind
	starKind
	plusKind
	optKind
)

// expr is one node of a compiled production's body. Only the fields
// relevant to its kind are set.
type expr struct {
	kind exprKind

	lit string         // litKind
	re  *regexp.Regexp // regexKind (always anchored at the match position)
	ref string         // refKind: the production name referenced

	subs []*expr // seqKind, choiceKind
	sub  *expr   // starKind, plusKind, optKind
}

// production is one named rule: its compiled body, and the Expr name its
// matched Node carries. outputExpr defaults to the production's own name;
// the preamble overrides it for __var__, whose matches must carry
// parser.VarExpr ("var") so pkg/fact.Classify recognizes them.
type production struct {
	name       string
	body       *expr
	outputExpr string
}
