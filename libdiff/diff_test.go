package libdiff_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/libdiff"
	"github.com/signadot/babylon/parse"
)

func mustParse(t *testing.T, s string) *ir.Document {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func lines(cs []libdiff.Change) []string {
	var res []string
	for _, c := range cs {
		res = append(res, c.String())
	}
	return res
}

func TestDiff(t *testing.T) {
	tests := []struct {
		from, to string
		exp      []string
	}{
		{
			from: `[a x=1 [b c]] d`,
			to:   `[a x=1 [b c]] d`,
		},
		{
			from: `[a x=1 b c]`,
			to:   `[a x=2 y=3 b d c]`,
			exp: []string{
				`~ /0:a @x: "1" -> "2"`,
				`+ /0:a @y=3`,
				`+ /0:a/1: d`,
			},
		},
		{
			from: `a b c`,
			to:   `a x c`,
			exp:  []string{`~ /1: "b" -> "x"`},
		},
		{
			from: `[a v]`,
			to:   `[b v]`,
			exp:  []string{`~ /0:a: [a -> [b`},
		},
		{
			from: `a b`,
			to:   `a`,
			exp:  []string{`- /1: b`},
		},
		{
			from: `a`,
			to:   `[a]`,
			exp:  []string{`~ /0: a -> [a]`},
		},
		{
			from: `[a k=v]`,
			to:   `[a]`,
			exp:  []string{`- /0:a @k=v`},
		},
	}
	for _, tc := range tests {
		got := lines(libdiff.Diff(mustParse(t, tc.from), mustParse(t, tc.to)))
		if diff := cmp.Diff(tc.exp, got); diff != "" {
			t.Errorf("%s => %s (-want +got):\n%s", tc.from, tc.to, diff)
		}
	}
}

func TestDiffIgnoresPositions(t *testing.T) {
	a := mustParse(t, "[a b]")
	b := mustParse(t, "\n\n   [a\n b\n]")
	if cs := libdiff.Diff(a, b); len(cs) != 0 {
		t.Errorf("got %v", lines(cs))
	}
}

func TestReverse(t *testing.T) {
	from, to := mustParse(t, `a b c`), mustParse(t, `a x c d`)
	got := lines(libdiff.Reverse(libdiff.Diff(from, to)))
	exp := []string{`~ /1: "x" -> "b"`, `- /3: d`}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCount(t *testing.T) {
	cs := libdiff.Diff(mustParse(t, `[a [b c]] d`), mustParse(t, `d e`))
	ins, del := libdiff.Count(cs)
	if ins != 1 || del != 3 {
		t.Errorf("got +%d -%d", ins, del)
	}
}

func TestWrite(t *testing.T) {
	cs := libdiff.Diff(mustParse(t, `a`), mustParse(t, `a [b]`))
	buf := bytes.NewBuffer(nil)
	if err := libdiff.Write(buf, cs); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "+ /1:b: [b]\n" {
		t.Errorf("got %q", got)
	}
}

func TestPathsResolve(t *testing.T) {
	from := mustParse(t, `[page [nav a b] [body x y]] foot`)
	to := mustParse(t, `[page [nav a] [body x z w]] [foot]`)
	for _, c := range libdiff.Diff(from, to) {
		doc, want := from, c.From
		if c.Op == libdiff.Insert {
			doc, want = to, c.To
		}
		if want == nil {
			continue
		}
		got, err := doc.Root.GetPath(c.Path)
		if err != nil {
			t.Fatalf("%s: %v", c.Path, err)
		}
		if got != want {
			t.Errorf("%s resolves to %v, want %v", c.Path, got, want)
		}
	}
}
