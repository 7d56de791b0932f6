package macro

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/babylon/debug"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/parse"
	"github.com/signadot/babylon/token"
)

type expandOpts struct {
	maxNodes  int
	parseOpts []parse.ParseOption
	ctx       context.Context
}

type ExpandOption func(*expandOpts)

// ExpandMaxNodes bounds the size of the expanded document. Zero or less
// means no bound.
func ExpandMaxNodes(n int) ExpandOption {
	return func(o *expandOpts) { o.maxNodes = n }
}

// ExpandParseOptions are applied when parsing macro bodies.
func ExpandParseOptions(opts ...parse.ParseOption) ExpandOption {
	return func(o *expandOpts) { o.parseOpts = append(o.parseOpts, opts...) }
}

func ExpandContext(ctx context.Context) ExpandOption {
	return func(o *expandOpts) { o.ctx = ctx }
}

// Expand returns a new document in which every value naming a macro of t
// is replaced by the elements of that macro's body. Bodies are expanded
// in turn; a macro reached again while it is being expanded is a
// MacroCycle error. Tags and attributes are copied unchanged.
//
// Neither doc nor t is modified and the result shares no node with doc.
func Expand(doc *ir.Document, t *Table, opts ...ExpandOption) (*ir.Document, error) {
	if doc == nil || doc.Root == nil {
		return nil, ir.Errorf(ir.InvalidArgument, token.Pos{}, "nil document")
	}
	if t == nil {
		return nil, ir.Errorf(ir.InvalidArgument, token.Pos{}, "nil macro table")
	}
	o := &expandOpts{
		maxNodes: parse.DefaultMaxNodes,
		ctx:      context.Background(),
	}
	for _, f := range opts {
		f(o)
	}
	e := &expander{
		tbl:    t,
		opts:   o,
		bodies: map[string][]*ir.Node{},
	}
	root, err := e.tree(doc.Root)
	if err != nil {
		return nil, err
	}
	return &ir.Document{
		Root:     root,
		Includes: slices.Clone(doc.Includes),
		Dropped:  slices.Clone(doc.Dropped),
	}, nil
}

type expander struct {
	tbl    *Table
	opts   *expandOpts
	bodies map[string][]*ir.Node
	active []string
	nodes  int
}

func (e *expander) tree(n *ir.Node) (*ir.Node, error) {
	if len(e.active) != 0 && slices.Contains(e.active, n.Text) {
		return nil, e.cycle(n)
	}
	if err := e.count(n.Pos()); err != nil {
		return nil, err
	}
	res := ir.NewTree(n.Text, n.Pos())
	res.Attrs = maps.Clone(n.Attrs)
	if res.Attrs == nil {
		res.Attrs = map[string]string{}
	}
	cs, err := e.elements(n.Children)
	if err != nil {
		return nil, err
	}
	res.Children = cs
	return res, nil
}

func (e *expander) elements(ns []*ir.Node) ([]*ir.Node, error) {
	res := make([]*ir.Node, 0, len(ns))
	for _, n := range ns {
		if err := e.opts.ctx.Err(); err != nil {
			return nil, ir.Errorf(ir.Limit, n.Pos(), "expansion stopped").WithCause(err)
		}
		if n.IsTree() {
			c, err := e.tree(n)
			if err != nil {
				return nil, err
			}
			res = append(res, c)
			continue
		}
		def, ok := e.tbl.Get(n.Text)
		if !ok {
			if err := e.count(n.Pos()); err != nil {
				return nil, err
			}
			res = append(res, ir.NewValue(n.Text, n.Pos()))
			continue
		}
		if slices.Contains(e.active, def.Name) {
			return nil, e.cycle(n)
		}
		cs, err := e.macro(def, n)
		if err != nil {
			return nil, err
		}
		res = append(res, cs...)
	}
	return res, nil
}

// macro expands one reference to def found at site.
func (e *expander) macro(def *Definition, site *ir.Node) ([]*ir.Node, error) {
	body, err := e.body(def)
	if err != nil {
		return nil, err
	}
	if debug.Expand() {
		debug.Logf("expand %q at %s\n", def.Name, site.Pos())
	}
	e.active = append(e.active, def.Name)
	defer func() { e.active = e.active[:len(e.active)-1] }()
	return e.elements(body)
}

// body returns the parsed elements of def. They are parsed once and
// copied into the result by elements at each use.
func (e *expander) body(def *Definition) ([]*ir.Node, error) {
	if ns, ok := e.bodies[def.Name]; ok {
		return ns, nil
	}
	popts := append(slices.Clone(e.opts.parseOpts),
		parse.ParseAt(def.File, def.Line+1),
		parse.ParseContext(e.opts.ctx))
	doc, err := parse.ParseString(def.Body, popts...)
	if err != nil {
		return nil, err
	}
	e.bodies[def.Name] = doc.Root.Children
	return doc.Root.Children, nil
}

func (e *expander) cycle(n *ir.Node) error {
	i := slices.Index(e.active, n.Text)
	chain := append(slices.Clone(e.active[i:]), n.Text)
	return ir.Errorf(ir.MacroCycle, n.Pos(), "%s", strings.Join(chain, " -> "))
}

func (e *expander) count(pos token.Pos) error {
	e.nodes++
	if e.opts.maxNodes > 0 && e.nodes > e.opts.maxNodes {
		return ir.Errorf(ir.Limit, pos, "expansion exceeds %d nodes", e.opts.maxNodes)
	}
	return nil
}
