package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/ir"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type writeOpts struct {
	color bool
}

type WriteOption func(*writeOpts)

// WriteColor colors insertions green, deletions red and changes yellow.
// Coloring also follows color.NoColor.
func WriteColor(v bool) WriteOption {
	return func(o *writeOpts) { o.color = v }
}

type painter struct {
	add, del, mod, path func(a ...any) string
}

func newPainter(on bool) *painter {
	if !on {
		plain := fmt.Sprint
		return &painter{add: plain, del: plain, mod: plain, path: plain}
	}
	return &painter{
		add:  color.New(color.FgGreen).SprintFunc(),
		del:  color.New(color.FgRed).SprintFunc(),
		mod:  color.New(color.FgYellow).SprintFunc(),
		path: color.New(color.FgCyan).SprintFunc(),
	}
}

// Write renders changes one per line:
//
//	+ /0:page/1: [nav]
//	- /0:page/2: old
//	~ /0:page/3: "colour" -> "color"
//	~ /0:page @title: Home -> Start
func Write(w io.Writer, changes []Change, opts ...WriteOption) error {
	o := &writeOpts{}
	for _, f := range opts {
		f(o)
	}
	p := newPainter(o.color)
	for i := range changes {
		if _, err := io.WriteString(w, p.line(&changes[i])+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// String returns the uncolored rendering of c.
func (c Change) String() string {
	return newPainter(false).line(&c)
}

func (p *painter) line(c *Change) string {
	path := p.path(c.Path)
	switch c.Op {
	case Insert:
		return p.add("+ ") + path + ": " + p.add(encode.MustString(c.To))
	case Delete:
		return p.del("- ") + path + ": " + p.del(encode.MustString(c.From))
	case Replace:
		return p.mod("~ ") + path + ": " + p.del(encode.MustString(c.From)) + " -> " + p.add(encode.MustString(c.To))
	case Retag:
		return p.mod("~ ") + path + ": [" + p.del(encode.Quote(c.From.Text)) + " -> [" + p.add(encode.Quote(c.To.Text))
	case Retext:
		return p.mod("~ ") + path + ": " + p.textDiff(c.From.Text, c.To.Text)
	case AttrAdd:
		return p.add("+ ") + path + " @" + p.add(encode.Quote(c.Attr)+"="+encode.Quote(c.New))
	case AttrDelete:
		return p.del("- ") + path + " @" + p.del(encode.Quote(c.Attr)+"="+encode.Quote(c.Old))
	case AttrSet:
		return p.mod("~ ") + path + " @" + encode.Quote(c.Attr) + ": " + p.textDiff(c.Old, c.New)
	}
	return fmt.Sprintf("? %s %s", path, c.Op)
}

// textDiff renders "from" -> "to", marking the changed characters of each
// side.
func (p *painter) textDiff(from, to string) string {
	diffs := diffpatch.New().DiffMain(from, to, false)
	fb, tb := &strings.Builder{}, &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			fb.WriteString(d.Text)
			tb.WriteString(d.Text)
		case diffpatch.DiffDelete:
			fb.WriteString(p.del(d.Text))
		case diffpatch.DiffInsert:
			tb.WriteString(p.add(d.Text))
		}
	}
	return `"` + fb.String() + `" -> "` + tb.String() + `"`
}

// Reverse returns the changes turning the new document of changes back
// into the old one.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		r := c
		r.From, r.To = c.To, c.From
		r.Old, r.New = c.New, c.Old
		switch c.Op {
		case Insert:
			r.Op = Delete
		case Delete:
			r.Op = Insert
		case AttrAdd:
			r.Op = AttrDelete
		case AttrDelete:
			r.Op = AttrAdd
		}
		res[i] = r
	}
	return res
}

// Count returns the number of nodes inserted and deleted by changes;
// replaced nodes count on both sides.
func Count(changes []Change) (ins, del int) {
	nodes := func(n *ir.Node) int {
		if n == nil {
			return 0
		}
		return n.Count()
	}
	for _, c := range changes {
		switch c.Op {
		case Insert:
			ins += nodes(c.To)
		case Delete:
			del += nodes(c.From)
		case Replace:
			ins += nodes(c.To)
			del += nodes(c.From)
		}
	}
	return ins, del
}
