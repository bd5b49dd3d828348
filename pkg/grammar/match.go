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
	"strings"

	"github.com/enriquepablo/syntreenet/pkg/parser"
)

// contribKind classifies how a matched sub-expression's node feeds into
// its enclosing sequence or repetition's children list: a named
// production or a bare content token is kept as one opaque child; an
// anonymous grouping construct (sequence, choice, repetition) is
// transparent and has its own children spliced in instead; a literal
// token is pure punctuation and contributes nothing.
type contribKind int

const (
	elide contribKind = iota
	keep
	splice
)

// matcher runs one Grammar against one input text, memoizing production
// matches by (name, position) — the standard packrat guarantee that every
// named rule is tried at most once per input offset, however many
// alternatives reference it.
type matcher struct {
	g    *Grammar
	text string
	memo map[refKey]refResult
}

type refKey struct {
	name string
	pos  int
}

type refResult struct {
	node *parser.Node
	next int
	ok   bool
}

func (g *Grammar) parseProd(name, text string) (*parser.Node, error) {
	m := &matcher{g: g, text: text, memo: make(map[refKey]refResult)}
	node, next, ok := m.matchRef(name, 0)
	if !ok {
		return nil, &parser.ParseError{Pos: 0, Msg: fmt.Sprintf("input does not match %q", name)}
	}
	if next != len(text) {
		return nil, &parser.ParseError{Pos: next, Msg: fmt.Sprintf("unconsumed input after matching %q", name)}
	}
	return node, nil
}

func (m *matcher) matchRef(name string, pos int) (*parser.Node, int, bool) {
	key := refKey{name, pos}
	if r, ok := m.memo[key]; ok {
		return r.node, r.next, r.ok
	}
	prod, ok := m.g.prods[name]
	if !ok {
		m.memo[key] = refResult{ok: false}
		return nil, pos, false
	}
	node, next, kind, ok := m.matchExpr(prod.body, pos)
	if !ok {
		m.memo[key] = refResult{ok: false}
		return nil, pos, false
	}
	// A production whose whole body is a bare reference to another
	// production (e.g. "fact = tag") must still stamp its own name at the
	// root: otherwise it would vanish, leaving the referenced production's
	// identity in its place instead of wrapping it as a child. A choice or
	// any other shape is left alone — a choice's result keeps whichever
	// alternative actually matched (e.g. "word = __var__ / ~regex" keeping
	// "var" rather than becoming "word" when the variable branch fires).
	if prod.body.kind == refKind {
		node = &parser.Node{
			Expr:     prod.outputExpr,
			FullText: node.FullText,
			Start:    node.Start,
			End:      node.End,
			Children: filterStructural(contribute(node, kind)),
		}
	} else if node.Expr == "" {
		node.Expr = prod.outputExpr
	}
	m.memo[key] = refResult{node: node, next: next, ok: true}
	return node, next, true
}

// matchExpr matches e at pos, returning the node it produces, the
// position just past the match, how that node should contribute to its
// parent's children, and whether it matched at all.
func (m *matcher) matchExpr(e *expr, pos int) (*parser.Node, int, contribKind, bool) {
	switch e.kind {
	case litKind:
		if strings.HasPrefix(m.text[pos:], e.lit) {
			end := pos + len(e.lit)
			return &parser.Node{FullText: e.lit, Start: pos, End: end}, end, elide, true
		}
		return nil, pos, elide, false

	case regexKind:
		loc := e.re.FindStringIndex(m.text[pos:])
		if loc == nil || loc[0] != 0 {
			return nil, pos, keep, false
		}
		end := pos + loc[1]
		return &parser.Node{FullText: m.text[pos:end], Start: pos, End: end}, end, keep, true

	case refKind:
		node, next, ok := m.matchRef(e.ref, pos)
		return node, next, keep, ok

	case seqKind:
		var children []*parser.Node
		cur := pos
		for _, sub := range e.subs {
			node, next, kind, ok := m.matchExpr(sub, cur)
			if !ok {
				return nil, pos, splice, false
			}
			children = append(children, filterStructural(contribute(node, kind))...)
			cur = next
		}
		return &parser.Node{FullText: m.text[pos:cur], Start: pos, End: cur, Children: children}, cur, splice, true

	case choiceKind:
		for _, sub := range e.subs {
			if node, next, kind, ok := m.matchExpr(sub, pos); ok {
				return node, next, kind, true
			}
		}
		return nil, pos, splice, false

	case starKind, plusKind:
		var children []*parser.Node
		cur := pos
		count := 0
		for {
			node, next, kind, ok := m.matchExpr(e.sub, cur)
			if !ok || next == cur {
				break
			}
			children = append(children, filterStructural(contribute(node, kind))...)
			cur = next
			count++
		}
		if e.kind == plusKind && count == 0 {
			return nil, pos, splice, false
		}
		return &parser.Node{FullText: m.text[pos:cur], Start: pos, End: cur, Children: children}, cur, splice, true

	case optKind:
		if node, next, kind, ok := m.matchExpr(e.sub, pos); ok {
			return &parser.Node{FullText: m.text[pos:next], Start: pos, End: next, Children: filterStructural(contribute(node, kind))}, next, splice, true
		}
		return &parser.Node{FullText: "", Start: pos, End: pos}, pos, splice, true
	}
	return nil, pos, splice, false
}

func contribute(node *parser.Node, kind contribKind) []*parser.Node {
	switch kind {
	case elide:
		return nil
	case keep:
		return []*parser.Node{node}
	case splice:
		return node.Children
	}
	return nil
}

// filterStructural drops whitespace, fact-separator and arrow nodes from a
// sequence's assembled children: they are the preamble's own punctuation,
// never meaningful content for a user grammar's tree.
func filterStructural(nodes []*parser.Node) []*parser.Node {
	var out []*parser.Node
	for _, n := range nodes {
		switch n.Expr {
		case parser.WS, parser.SC, parser.Arrow:
			continue
		}
		out = append(out, n)
	}
	return out
}
