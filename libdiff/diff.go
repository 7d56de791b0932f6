package libdiff

import (
	"github.com/signadot/babylon/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one difference between two documents.
type Change struct {
	Op   Op
	Path string
	// From and To are the old and new nodes. From is nil for Insert and To
	// is nil for Delete. For Retag only the tags are meaningful.
	From *ir.Node
	To   *ir.Node
	// Attr, Old and New describe attribute changes.
	Attr string
	Old  string
	New  string
}

// Diff returns the changes turning from into to, or nil if their trees
// are equal. Positions are not compared.
func Diff(from, to *ir.Document) []Change {
	return DiffNode(from.Root, to.Root)
}

func DiffNode(from, to *ir.Node) []Change {
	var res []Change
	diffNode(&res, "/", from, to)
	return res
}

func diffNode(res *[]Change, path string, from, to *ir.Node) {
	switch {
	case from.Kind != to.Kind:
		*res = append(*res, Change{Op: Replace, Path: path, From: from, To: to})
		return
	case from.IsValue():
		if from.Text != to.Text {
			*res = append(*res, Change{Op: Retext, Path: path, From: from, To: to})
		}
		return
	}
	if from.Text != to.Text {
		*res = append(*res, Change{Op: Retag, Path: path, From: from, To: to})
	}
	diffAttrs(res, path, from, to)
	diffChildren(res, path, from, to)
}

func diffAttrs(res *[]Change, path string, from, to *ir.Node) {
	for _, name := range from.AttrNames() {
		ov := from.Attrs[name]
		nv, ok := to.Attrs[name]
		switch {
		case !ok:
			*res = append(*res, Change{Op: AttrDelete, Path: path, Attr: name, Old: ov})
		case nv != ov:
			*res = append(*res, Change{Op: AttrSet, Path: path, Attr: name, Old: ov, New: nv})
		}
	}
	for _, name := range to.AttrNames() {
		if _, ok := from.Attrs[name]; !ok {
			*res = append(*res, Change{Op: AttrAdd, Path: path, Attr: name, New: to.Attrs[name]})
		}
	}
}

// diffChildren aligns the children of from and to by signature and
// recurses on aligned pairs. A run of deletions directly followed by a
// run of insertions is paired up element by element.
func diffChildren(res *[]Change, path string, from, to *ir.Node) {
	sigMap := map[string]rune{}
	fromRunes := mapChildrenTo(sigMap, from)
	toRunes := mapChildrenTo(sigMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	var dels []int
	flush := func() {
		for _, i := range dels {
			*res = append(*res, Change{Op: Delete, Path: ir.ChildPath(path, i, from.Children[i]), From: from.Children[i]})
		}
		dels = dels[:0]
	}
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range []rune(diff.Text) {
				dels = append(dels, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range []rune(diff.Text) {
				if len(dels) != 0 {
					di := dels[0]
					dels = dels[1:]
					f := from.Children[di]
					diffNode(res, ir.ChildPath(path, di, f), f, to.Children[ti])
				} else {
					t := to.Children[ti]
					*res = append(*res, Change{Op: Insert, Path: ir.ChildPath(path, ti, t), To: t})
				}
				ti++
			}
			flush()
		case diffpatch.DiffEqual:
			flush()
			for range []rune(diff.Text) {
				f := from.Children[fi]
				diffNode(res, ir.ChildPath(path, fi, f), f, to.Children[ti])
				fi++
				ti++
			}
		}
	}
	flush()
}

func mapChildrenTo(m map[string]rune, n *ir.Node) []rune {
	rs := make([]rune, len(n.Children))
	for i, c := range n.Children {
		sig := c.Kind.String() + ":" + c.Text
		r, ok := m[sig]
		if !ok {
			r = sigRune(len(m))
			m[sig] = r
		}
		rs[i] = r
	}
	return rs
}

// sigRune maps i to a rune outside the surrogate range, which does not
// survive conversion to a string.
func sigRune(i int) rune {
	r := rune(i)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}
