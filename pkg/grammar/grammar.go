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

package grammar

import (
	"regexp"

	"github.com/enriquepablo/syntreenet/pkg/parser"
)

// Parse matches text against the preamble's __sentence__ production, which
// tries __rule__ before fact_rule. The returned Node's Expr names whichever
// alternative actually matched; the __sentence__ wrapper itself is always
// transparent and never appears.
func (g *Grammar) Parse(text string) (*parser.Node, error) { return g.parseProd("__sentence__", text) }

// ParseFact matches text strictly against fact_rule, so a reconstructed
// fact's text can never accidentally parse as a rule.
func (g *Grammar) ParseFact(text string) (*parser.Node, error) { return g.parseProd(g.factRule, text) }

// FactRule returns the user grammar's top-level fact production name.
func (g *Grammar) FactRule() string { return g.factRule }

// VarPattern returns the regexp a var-expr leaf's text must match.
func (g *Grammar) VarPattern() *regexp.Regexp { return g.varPat }

// VarRangePattern returns the regexp a production's name must match to be
// treated as a variable-range node.
func (g *Grammar) VarRangePattern() *regexp.Regexp { return g.varRange }

// FactSep returns the textual separator between facts in a rule's
// condition or consequence list.
func (g *Grammar) FactSep() string { return g.factSep }
