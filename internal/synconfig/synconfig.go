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

// Package synconfig holds the engine's construction-time options — which
// grammar to compile, what its fact_rule/var_range_expr/fact_sep are, and
// how verbosely to log — as a plain struct built through functional
// options, mirroring pkg/engine.Option. cmd/synshell loads a Config from a
// YAML file and layers CLI flags on top of it.
package synconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of knobs needed to stand up an Engine over a
// pkg/grammar.Grammar. Zero Config is not usable directly; Load or New
// always apply Defaults first.
type Config struct {
	Grammar      string `yaml:"grammar"`
	FactRule     string `yaml:"fact_rule"`
	FactSep      string `yaml:"fact_sep"`
	VarPattern   string `yaml:"var_pattern"`
	VarRangeExpr string `yaml:"var_range_expr"`
	LogLevel     string `yaml:"log_level"`
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithGrammar sets the grammar DSL source text to compile.
func WithGrammar(src string) Option { return func(c *Config) { c.Grammar = src } }

// WithFactRule names the grammar's top-level fact production.
func WithFactRule(name string) Option { return func(c *Config) { c.FactRule = name } }

// WithFactSep sets the textual separator between facts in a rule's
// condition or consequence list.
func WithFactSep(sep string) Option { return func(c *Config) { c.FactSep = sep } }

// WithVarPattern overrides the regexp a variable leaf's text must match.
func WithVarPattern(pat string) Option { return func(c *Config) { c.VarPattern = pat } }

// WithVarRangeExpr overrides the regexp a production's name must match to
// be treated as a variable-range node.
func WithVarRangeExpr(expr string) Option { return func(c *Config) { c.VarRangeExpr = expr } }

// WithLogLevel sets the zap level name New's logger is built at.
func WithLogLevel(level string) Option { return func(c *Config) { c.LogLevel = level } }

// Defaults returns the baseline Config every grammar needs a value for,
// before grammar-specific overrides are layered on.
func Defaults() Config {
	return Config{
		FactRule: "fact",
		FactSep:  ";",
		LogLevel: "info",
	}
}

// New builds a Config from Defaults with opts applied in order.
func New(opts ...Option) Config {
	c := Defaults()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Load reads a YAML file at path into a Config seeded with Defaults, so a
// file that only overrides a couple of fields still produces a usable
// Config.
func Load(path string) (Config, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("synconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("synconfig: parsing %s: %w", path, err)
	}
	return c, nil
}

// Merge layers opts on top of c, returning the result; a zero-value string
// field in opts' effect leaves c's existing value untouched only where the
// option itself chooses not to set it — callers apply only the options
// that correspond to flags the user actually passed.
func (c Config) Merge(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
