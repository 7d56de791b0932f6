package ir

import (
	"maps"
	"slices"

	"github.com/signadot/babylon/token"
)

// RootTag is the tag of the synthesized root of every Document.
const RootTag = "root"

type Node struct {
	Kind Kind

	File string
	Line int
	Col  int

	Text string

	// Attrs and Children are non-nil exactly when Kind is TreeKind.
	Attrs    map[string]string
	Children []*Node
}

// NewTree returns a Tree node tagged tag at pos with no attributes or
// children.
func NewTree(tag string, pos token.Pos) *Node {
	return &Node{
		Kind:     TreeKind,
		File:     pos.File,
		Line:     pos.Line,
		Col:      pos.Col,
		Text:     tag,
		Attrs:    map[string]string{},
		Children: []*Node{},
	}
}

// NewValue returns a Value node holding text at pos.
func NewValue(text string, pos token.Pos) *Node {
	return &Node{
		Kind: ValueKind,
		File: pos.File,
		Line: pos.Line,
		Col:  pos.Col,
		Text: text,
	}
}

func (n *Node) Pos() token.Pos {
	return token.Pos{File: n.File, Line: n.Line, Col: n.Col}
}

func (n *Node) IsTree() bool  { return n.Kind == TreeKind }
func (n *Node) IsValue() bool { return n.Kind == ValueKind }

// Append adds children in order. It panics if n is not a Tree.
func (n *Node) Append(cs ...*Node) *Node {
	if n.Kind != TreeKind {
		panic("ir: append to value node")
	}
	n.Children = append(n.Children, cs...)
	return n
}

// WithAttr sets an attribute and returns n, for building trees in code.
func (n *Node) WithAttr(name, value string) *Node {
	if n.Kind != TreeKind {
		panic("ir: attribute on value node")
	}
	n.Attrs[name] = value
	return n
}

// AttrNames returns the attribute names sorted.
func (n *Node) AttrNames() []string {
	return slices.Sorted(maps.Keys(n.Attrs))
}

// Clone returns a deep copy of n sharing nothing with it.
func (n *Node) Clone() *Node {
	res := &Node{}
	*res = *n
	if n.Kind != TreeKind {
		res.Attrs = nil
		res.Children = nil
		return res
	}
	res.Attrs = maps.Clone(n.Attrs)
	if res.Attrs == nil {
		res.Attrs = map[string]string{}
	}
	res.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		res.Children[i] = c.Clone()
	}
	return res
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Walk visits n and its descendants depth first in source order. If f
// returns false the children of that node are skipped.
func (n *Node) Walk(f func(n *Node, depth int) bool) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int) bool, depth int) {
	if !f(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(f, depth+1)
	}
}

// Equal reports whether n and o have the same structure, text and
// attributes. Positions are not compared.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Text != o.Text {
		return false
	}
	if !maps.Equal(n.Attrs, o.Attrs) || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
