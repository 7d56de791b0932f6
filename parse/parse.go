package parse

import (
	"errors"
	"io"
	"os"

	"github.com/signadot/babylon/debug"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/token"
)

// ParseFile parses the document at path, following includes.
func ParseFile(path string, opts ...ParseOption) (*ir.Document, error) {
	if path == "" {
		return nil, ir.Errorf(ir.InvalidArgument, token.Pos{}, "empty document path")
	}
	p, err := newParser(opts)
	if err != nil {
		return nil, err
	}
	d, err := p.read(path)
	if err != nil {
		return nil, ir.Errorf(ir.FileRead, token.Pos{}, "cannot read document").
			WithPath(path).WithCause(err)
	}
	return p.document(path, d, 1)
}

// Parse parses in-memory babylon text. Use WithFilename or ParseAt to
// name it; relative includes then resolve against its directory.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	p, err := newParser(opts)
	if err != nil {
		return nil, err
	}
	return p.document(p.opts.file, d, p.opts.line)
}

func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	return Parse([]byte(s), opts...)
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Document, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, ir.Errorf(ir.FileRead, token.Pos{}, "cannot read input").WithCause(err)
	}
	return Parse(d, opts...)
}

// parser holds the state of one top level parse. Each file parsed gets its
// own token.Stream; the parser only carries the include stack and budgets.
type parser struct {
	opts  *parseOpts
	stack []string
	depth int
	nodes int

	includes []string
	dropped  []string
}

func newParser(opts []ParseOption) (*parser, error) {
	pOpts := defaultOpts()
	for _, f := range opts {
		f(pOpts)
	}
	p := &parser{opts: pOpts}
	if err := p.checkIncludeDirs(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) document(name string, d []byte, line int) (*ir.Document, error) {
	doc := ir.NewDocument(name)
	children, err := p.source(name, d, line)
	if err != nil {
		return nil, err
	}
	doc.Root.Append(children...)
	doc.Includes = p.includes
	doc.Dropped = p.dropped
	return doc, nil
}

// source parses one file with a fresh stream and returns its top level
// elements.
func (p *parser) source(name string, d []byte, line int) ([]*ir.Node, error) {
	if name != "" {
		p.stack = append(p.stack, p.identity(name))
		defer func() { p.stack = p.stack[:len(p.stack)-1] }()
	}
	s := token.NewStreamAt(name, d, line)
	top := ir.NewTree(ir.RootTag, s.Pos())
	if err := p.elements(s, top, true); err != nil {
		return nil, err
	}
	return top.Children, nil
}

// elements parses elements into parent until the end of input, for the
// top level, or until the ']' closing parent.
func (p *parser) elements(s *token.Stream, parent *ir.Node, top bool) error {
	for {
		if err := p.opts.ctx.Err(); err != nil {
			return ir.Errorf(ir.Limit, s.Pos(), "parse stopped").WithCause(err)
		}
		r, err := s.SkipSpace()
		if err == io.EOF {
			if top {
				return nil
			}
			return ir.Errorf(ir.UnterminatedTree, parent.Pos(), "'[%s' not closed", parent.Text)
		}
		switch r {
		case '[':
			n, err := p.tree(s)
			if err != nil {
				return err
			}
			parent.Append(n)
		case ']':
			pos := s.Pos()
			s.Next()
			if top {
				return ir.Errorf(ir.Syntax, pos, "unexpected ']'")
			}
			return nil
		case '#':
			ns, err := p.directive(s)
			if err != nil {
				return err
			}
			parent.Append(ns...)
		default:
			n, err := p.value(s)
			if err != nil {
				return err
			}
			if n != nil {
				parent.Append(n)
			}
		}
	}
}

func (p *parser) tree(s *token.Stream) (*ir.Node, error) {
	pos := s.Pos()
	s.Next()
	if err := p.enter(pos); err != nil {
		return nil, err
	}
	defer p.leave()

	if _, err := s.SkipSpace(); err == io.EOF {
		return nil, ir.Errorf(ir.UnterminatedTree, pos, "'[' not closed")
	}
	tagPos := s.Pos()
	w, err := token.ScanWord(s, token.StructDelims)
	if err != nil {
		return nil, ir.Errorf(ir.Syntax, tagPos, "expected tag name").WithCause(err)
	}
	pushStructural(s, w)
	n := ir.NewTree(w.Text, pos)
	if err := p.count(pos); err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("tree %q at %s\n", w.Text, pos)
	}
	for {
		name, value, ok := tryAttr(s)
		if !ok {
			break
		}
		n.Attrs[name] = value
	}
	if err := p.elements(s, n, false); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) value(s *token.Stream) (*ir.Node, error) {
	w, err := token.ScanWord(s, token.StructDelims)
	if errors.Is(err, token.ErrNoWord) {
		// only a dangling escape at the end of input scans no word here
		return nil, nil
	}
	pushStructural(s, w)
	if err := p.count(w.Pos); err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("value %q at %s\n", w.Text, w.Pos)
	}
	return ir.NewValue(w.Text, w.Pos), nil
}

func (p *parser) directive(s *token.Stream) ([]*ir.Node, error) {
	pos := s.Pos()
	s.Next()
	s.SkipSpace()
	w, err := token.ScanWord(s, token.StructDelims)
	if err != nil {
		return nil, ir.Errorf(ir.Syntax, pos, "expected directive name").WithCause(err)
	}
	pushStructural(s, w)
	d, ok := lookupDirective(w.Text)
	if !ok {
		switch p.opts.unknown {
		case WarnUnknown:
			p.opts.log.Warn("dropping unknown directive", "directive", w.Text, "pos", pos.String())
			p.dropped = append(p.dropped, w.Text)
			return nil, nil
		case DropUnknown:
			p.dropped = append(p.dropped, w.Text)
			return nil, nil
		default:
			return nil, ir.Errorf(ir.UnknownDirective, pos, "#%s", w.Text)
		}
	}
	switch d {
	case DirInclude:
		return p.include(s, pos)
	}
	return nil, ir.Errorf(ir.UnknownDirective, pos, "#%s", w.Text)
}

// pushStructural returns a structural terminator to the stream so that
// the element loop dispatches on it.
func pushStructural(s *token.Stream, w token.Word) {
	if token.IsStructural(w.Delim) {
		s.PushBack(w.Delim)
	}
}

func (p *parser) enter(pos token.Pos) error {
	p.depth++
	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		return ir.Errorf(ir.Limit, pos, "nesting deeper than %d", p.opts.maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) count(pos token.Pos) error {
	p.nodes++
	if p.opts.maxNodes > 0 && p.nodes > p.opts.maxNodes {
		return ir.Errorf(ir.Limit, pos, "more than %d nodes", p.opts.maxNodes)
	}
	return nil
}

func (p *parser) read(name string) ([]byte, error) {
	if p.opts.fsys != nil {
		return readFS(p.opts.fsys, name)
	}
	return os.ReadFile(name)
}
