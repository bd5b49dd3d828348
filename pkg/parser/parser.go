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

// Package parser is the thin boundary between grammar text and the
// engine's core: it names the node shape a parser must produce (Node) and
// the capability a parser must expose (Parser) for the engine to tell a
// rule from a fact and to classify variable and variable-range segments.
// The engine never parses; it only walks the Node tree a Parser hands
// back. pkg/grammar ships one concrete Parser; any other implementation
// that satisfies this interface is equally acceptable.
package parser

import (
	"fmt"
	"regexp"
)

// Distinguished production names the built-in preamble defines, per
// spec.md §6. A Parser's grammar must provide fact_rule plus these.
const (
	Sentence = "__sentence__"
	Rule     = "__rule__"
	Conds    = "__conds__"
	Conss    = "__conss__"
	Arrow    = "__arrow__"
	VarExpr  = "var"
	WS       = "__ws__"
	SC       = "__sc__"
	// Guard names the optional bracketed guard clause a rule may carry
	// after its consequences: "[expr]". Engine.buildRule looks for a
	// child with this Expr among a rule node's children and, if present,
	// compiles its inner expression into a guard.Guard.
	Guard = "__guard__"
)

// Node is one node of a parse tree: which production matched (Expr), the
// full source slice it covers (FullText), that slice's offsets within the
// root node's FullText — not its immediate parent's — (Start, End), and
// its ordered children. A Node with no children is a leaf.
type Node struct {
	Expr     string
	FullText string
	Start    int
	End      int
	Children []*Node
}

// Leaf reports whether n is a terminal node.
func (n *Node) Leaf() bool { return len(n.Children) == 0 }

// Text is an alias for FullText, matching the field name spec.md uses when
// describing the Parser contract.
func (n *Node) Text() string { return n.FullText }

// Parser is the capability the engine requires of any grammar front end.
type Parser interface {
	// Parse produces a node tree for text matched against Sentence
	// (fact_rule or Rule, whichever the text's shape selects); the
	// returned Node's Expr names whichever alternative matched, with the
	// Sentence wrapper elided.
	Parse(text string) (*Node, error)
	// ParseFact parses text strictly as fact_rule, never as a rule. It is
	// used to re-parse a fact's reconstructed text after substitution,
	// where a rule can never legally appear.
	ParseFact(text string) (*Node, error)
	// FactRule is the user grammar's top-level fact production name.
	FactRule() string
	// VarPattern matches a leaf node's text when that node's Expr is
	// VarExpr; it identifies a variable segment.
	VarPattern() *regexp.Regexp
	// VarRangePattern matches a node's Expr name to identify a
	// variable-range segment (an interior node whose whole sub-tree may
	// be bound to a variable).
	VarRangePattern() *regexp.Regexp
	// FactSep is the textual separator between facts in a rule's
	// conditions or consequences list (spec.md's fact_sep).
	FactSep() string
}

// ParseError is returned by a Parser's Parse method on malformed input. It
// is surfaced verbatim by Engine.Tell, Engine.Ask and Engine.Goal; no
// partial state is ever committed when a ParseError occurs.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}
