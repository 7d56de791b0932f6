package macro

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nickwells/location.mod/location"
	"github.com/signadot/babylon/debug"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/token"
)

// Definition is one named block of a macro file.
type Definition struct {
	Name string
	// Body holds the raw lines following the name, terminators included.
	Body string
	File string
	Line int
	Col  int
}

func (d *Definition) Pos() token.Pos {
	return token.Pos{File: d.File, Line: d.Line, Col: d.Col}
}

// Table maps macro names to their definitions. It is not modified once
// Read returns it.
type Table struct {
	defs map[string]*Definition
}

func NewTable() *Table {
	return &Table{defs: map[string]*Definition{}}
}

func (t *Table) Get(name string) (*Definition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Set adds d, replacing any definition of the same name.
func (t *Table) Set(d *Definition) {
	t.defs[d.Name] = d
}

func (t *Table) Len() int { return len(t.defs) }

// Names returns the defined names sorted.
func (t *Table) Names() []string {
	res := make([]string, 0, len(t.defs))
	for k := range t.defs {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

type readOpts struct {
	fsys      fs.FS
	rejectDup bool
}

type ReadOption func(*readOpts)

// ReadFS reads macro files from fsys.
func ReadFS(fsys fs.FS) ReadOption {
	return func(o *readOpts) { o.fsys = fsys }
}

// RejectDuplicates makes a repeated name a DuplicateMacro error instead
// of replacing the earlier definition.
func RejectDuplicates() ReadOption {
	return func(o *readOpts) { o.rejectDup = true }
}

// Read reads the macro file at path.
func Read(path string, opts ...ReadOption) (*Table, error) {
	if path == "" {
		return nil, ir.Errorf(ir.InvalidArgument, token.Pos{}, "empty macro file path")
	}
	o := &readOpts{}
	for _, f := range opts {
		f(o)
	}
	var (
		f   io.ReadCloser
		err error
	)
	if o.fsys != nil {
		f, err = o.fsys.Open(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, ir.Errorf(ir.FileRead, token.Pos{}, "cannot open macro file").
			WithPath(path).WithCause(err)
	}
	defer f.Close()
	return read(path, f, o)
}

// ReadReader reads macro definitions from r, naming them as coming from
// name.
func ReadReader(name string, r io.Reader, opts ...ReadOption) (*Table, error) {
	o := &readOpts{}
	for _, f := range opts {
		f(o)
	}
	return read(name, r, o)
}

func read(name string, r io.Reader, o *readOpts) (*Table, error) {
	t := NewTable()
	br := bufio.NewReader(r)
	loc := location.New(name)
	var def *Definition
	body := &strings.Builder{}
	done := func() error {
		if def == nil {
			return nil
		}
		def.Body = body.String()
		body.Reset()
		if prev, ok := t.Get(def.Name); ok && o.rejectDup {
			return ir.Errorf(ir.DuplicateMacro, def.Pos(), "%q already defined at %s",
				def.Name, prev.Pos())
		}
		if debug.Macro() {
			debug.Logf("macro %q at %s, %d bytes\n", def.Name, def.Pos(), len(def.Body))
		}
		t.Set(def)
		def = nil
		return nil
	}
	for {
		ln, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, ir.Errorf(ir.FileRead, token.Pos{File: name, Line: int(loc.Idx())},
				"cannot read macro file").WithPath(name).WithCause(err)
		}
		if ln == "" {
			break
		}
		loc.Incr()
		trimmed := strings.TrimSpace(ln)
		switch {
		case trimmed == "":
			if err := done(); err != nil {
				return nil, err
			}
		case def == nil:
			def = &Definition{
				Name: trimmed,
				File: name,
				Line: int(loc.Idx()),
				Col:  nameCol(ln),
			}
		default:
			body.WriteString(ln)
		}
		if err != nil {
			break
		}
	}
	if err := done(); err != nil {
		return nil, err
	}
	return t, nil
}

// nameCol is the 1-based column of the first non-blank character of ln.
func nameCol(ln string) int {
	i := strings.IndexFunc(ln, func(r rune) bool { return !unicode.IsSpace(r) })
	return utf8.RuneCountInString(ln[:i]) + 1
}
