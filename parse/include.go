package parse

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nickwells/filecheck.mod/filecheck"
	"github.com/signadot/babylon/debug"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/token"
)

// include handles '#include <file>': the target is parsed with its own
// stream and its top level elements are returned for splicing into the
// including tree.
func (p *parser) include(s *token.Stream, pos token.Pos) ([]*ir.Node, error) {
	s.SkipSpace()
	w, err := token.ScanWord(s, token.StructDelims)
	if err != nil {
		return nil, ir.Errorf(ir.Syntax, pos, "#include requires a file name").WithCause(err)
	}
	pushStructural(s, w)
	if w.Text == "" {
		return nil, ir.Errorf(ir.InvalidArgument, pos, "empty #include target")
	}
	name, d, err := p.resolve(s.Name(), w.Text)
	if err != nil {
		return nil, ir.Errorf(ir.FileRead, pos, "cannot include").WithPath(w.Text).WithCause(err)
	}
	id := p.identity(name)
	if i := slices.Index(p.stack, id); i != -1 {
		chain := append(slices.Clone(p.stack[i:]), id)
		return nil, ir.Errorf(ir.IncludeCycle, pos, "%s", strings.Join(chain, " -> ")).WithPath(name)
	}
	if err := p.enter(pos); err != nil {
		return nil, err
	}
	defer p.leave()
	p.includes = append(p.includes, name)
	if debug.Include() {
		debug.Logf("include %s from %s\n", name, pos)
	}
	return p.source(name, d, 1)
}

// resolve finds an include target: next to the including file, then in
// each include directory, then as given.
func (p *parser) resolve(from, target string) (string, []byte, error) {
	var cands []string
	if p.isAbs(target) {
		cands = append(cands, target)
	} else {
		if from != "" {
			cands = append(cands, p.join(p.dir(from), target))
		}
		for _, dir := range p.opts.includeDirs {
			cands = append(cands, p.join(dir, target))
		}
		cands = append(cands, p.clean(target))
	}
	cands = uniq(cands)
	for _, c := range cands {
		d, err := p.read(c)
		if err == nil {
			return c, d, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("%w: tried %s", fs.ErrNotExist, strings.Join(cands, ", "))
}

func uniq(vs []string) []string {
	res := make([]string, 0, len(vs))
	for _, v := range vs {
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

// identity is the key of a file on the include stack.
func (p *parser) identity(name string) string {
	if p.opts.fsys != nil {
		return path.Clean(name)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return filepath.Clean(name)
	}
	return abs
}

func (p *parser) isAbs(name string) bool {
	if p.opts.fsys != nil {
		return false
	}
	return filepath.IsAbs(name)
}

func (p *parser) dir(name string) string {
	if p.opts.fsys != nil {
		return path.Dir(name)
	}
	return filepath.Dir(name)
}

func (p *parser) join(dir, name string) string {
	if p.opts.fsys != nil {
		return path.Join(dir, name)
	}
	return filepath.Join(dir, name)
}

func (p *parser) clean(name string) string {
	if p.opts.fsys != nil {
		return path.Clean(name)
	}
	return filepath.Clean(name)
}

func readFS(fsys fs.FS, name string) ([]byte, error) {
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(fsys, name)
}

func (p *parser) checkIncludeDirs() error {
	for _, dir := range p.opts.includeDirs {
		var err error
		if p.opts.fsys == nil {
			err = filecheck.DirExists().StatusCheck(dir)
		} else {
			var fi fs.FileInfo
			fi, err = fs.Stat(p.opts.fsys, path.Clean(dir))
			if err == nil && !fi.IsDir() {
				err = fmt.Errorf("%s is not a directory", dir)
			}
		}
		if err != nil {
			return ir.Errorf(ir.InvalidArgument, token.Pos{}, "bad include directory").
				WithPath(dir).WithCause(err)
		}
	}
	return nil
}
