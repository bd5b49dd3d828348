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
	"fmt"
	"regexp"
	"strings"

	"github.com/enriquepablo/syntreenet/pkg/parser"
)

// Grammar is a compiled set of named productions, ready to parse text via
// Parse or ParseFact.
type Grammar struct {
	prods   map[string]*production
	factRule string
	varPat   *regexp.Regexp
	varRange *regexp.Regexp
	factSep  string
}

// Option configures Compile.
type Option func(*config)

type config struct {
	factRule string
	varPat   *regexp.Regexp
	varRange *regexp.Regexp
	factSep  string
}

// WithFactRule names the user grammar's top-level fact production
// (spec.md's fact_rule). Default "fact".
func WithFactRule(name string) Option { return func(c *config) { c.factRule = name } }

// WithVarPattern overrides the regexp a __var__ leaf's text must match.
// Default matches "X" and digits after any number of leading underscores.
func WithVarPattern(re *regexp.Regexp) Option { return func(c *config) { c.varPat = re } }

// WithVarRangePattern overrides the regexp a production's own name must
// match to be treated as a variable-range (whole-subtree) node. Default
// matches names starting with "v_".
func WithVarRangePattern(re *regexp.Regexp) Option { return func(c *config) { c.varRange = re } }

// WithFactSep overrides the textual separator between facts in a rule's
// condition or consequence list. Default ";".
func WithFactSep(sep string) Option { return func(c *config) { c.factSep = sep } }

var defaultVarPat = regexp.MustCompile(`^_*X[0-9]+$`)
var defaultVarRange = regexp.MustCompile(`^v_`)

// Compile parses src as a sequence of "name = expr" production
// definitions (blank lines and "#"-prefixed comments ignored), prefixes
// the built-in preamble, and returns the resulting Grammar.
func Compile(src string, opts ...Option) (*Grammar, error) {
	c := &config{factRule: "fact", varPat: defaultVarPat, varRange: defaultVarRange, factSep: ";"}
	for _, o := range opts {
		o(c)
	}

	g := &Grammar{
		prods:    make(map[string]*production),
		factRule: c.factRule,
		varPat:   c.varPat,
		varRange: c.varRange,
		factSep:  c.factSep,
	}

	if err := g.compileSource(preamble(c.factRule, c.factSep)); err != nil {
		return nil, fmt.Errorf("grammar: compiling built-in preamble: %w", err)
	}
	if err := g.compileSource(src); err != nil {
		return nil, err
	}
	if _, ok := g.prods[c.factRule]; !ok {
		return nil, fmt.Errorf("grammar: fact_rule production %q is not defined", c.factRule)
	}
	return g, nil
}

// preamble is the built-in production set spec.md §6 requires every
// grammar to have, textually instantiated with the configured fact_rule
// and fact_sep names so it can be compiled through the same DSL path as
// user productions.
func preamble(factRule, factSep string) string {
	return fmt.Sprintf(`
__sentence__ = __rule__ / %s
__rule__ = __conds__ __ws__ __arrow__ __ws__ __conss__ (__ws__ __guard__)?
__conds__ = %s (__ws__ __sc__ __ws__ %s)*
__conss__ = %s (__ws__ __sc__ __ws__ %s)*
__arrow__ = "->"
__guard__ = "[" ~"[^\]]*" "]"
__var__ = ~"_*X[0-9]+"
__ws__ = ~"[ \t\n\r]*"
__sc__ = %q
`, factRule, factRule, factRule, factRule, factRule, factSep)
}

func (g *Grammar) compileSource(src string) error {
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 0 {
			return fmt.Errorf("grammar: line %d: missing '=' in %q", i+1, line)
		}
		name := strings.TrimSpace(line[:eq])
		rhs := strings.TrimSpace(line[eq+1:])
		if name == "" {
			return fmt.Errorf("grammar: line %d: empty production name", i+1)
		}
		body, err := parseExpr(rhs)
		if err != nil {
			return fmt.Errorf("grammar: production %q: %w", name, err)
		}
		output := name
		if name == parser.VarExpr || name == "__var__" {
			output = parser.VarExpr
		}
		g.prods[name] = &production{name: name, body: body, outputExpr: output}
	}
	return nil
}
