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

// Package discrim implements the shared node shape spec.md §3 describes
// for FactSet, CondSet and ConsSet: a discrimination-tree node with
// exact-match children, variable-bearing "logic" children, a single
// fresh-variable child, and an optional terminal payload. FactSet,
// CondSet and ConsSet each build their own tree of Node, parameterized on
// whatever they need to store at a terminal.
package discrim

import "github.com/enriquepablo/syntreenet/pkg/segment"

// Node is one node of a discrimination tree. Path is the path this node
// represents (the empty Path for the root). Children indexes exact,
// concrete continuations keyed by segment.Path.Key() (expr chain plus
// bound text). LogicChildren indexes variable-bearing continuations keyed
// by segment.Path.ShapeKey() (expr chain only): every variable or
// variable-range occurrence at the same structural position shares one
// child, regardless of which variable name produced it. VarChild is the
// single child, if any, that introduces a brand new rule-local variable at
// this level (used by CondSet and ConsSet). End holds this node's terminal
// payload once some path list finishes here.
type Node[E any] struct {
	Path          segment.Path
	Children      map[string]*Node[E]
	LogicChildren map[string]*Node[E]
	VarChild      *Node[E]
	End           *E
}

// New builds an empty Node for path.
func New[E any](path segment.Path) *Node[E] {
	return &Node[E]{
		Path:          path,
		Children:      make(map[string]*Node[E]),
		LogicChildren: make(map[string]*Node[E]),
	}
}

// Child looks up the exact-match child for path, without creating it.
func (n *Node[E]) Child(path segment.Path) (*Node[E], bool) {
	c, ok := n.Children[path.Key()]
	return c, ok
}

// EnsureChild looks up, or creates and stores, the exact-match child for
// path.
func (n *Node[E]) EnsureChild(path segment.Path) *Node[E] {
	key := path.Key()
	if c, ok := n.Children[key]; ok {
		return c
	}
	c := New[E](path)
	n.Children[key] = c
	return c
}

// LogicChild looks up the variable-bearing child sharing path's shape.
func (n *Node[E]) LogicChild(path segment.Path) (*Node[E], bool) {
	c, ok := n.LogicChildren[path.ShapeKey()]
	return c, ok
}

// EnsureLogicChild looks up, or creates and stores, the variable-bearing
// child sharing path's shape.
func (n *Node[E]) EnsureLogicChild(path segment.Path) *Node[E] {
	key := path.ShapeKey()
	if c, ok := n.LogicChildren[key]; ok {
		return c
	}
	c := New[E](path)
	n.LogicChildren[key] = c
	return c
}

// EnsureVarChild looks up, or creates, the single fresh-variable child at
// this level.
func (n *Node[E]) EnsureVarChild(path segment.Path) *Node[E] {
	if n.VarChild == nil {
		n.VarChild = New[E](path)
	}
	return n.VarChild
}
