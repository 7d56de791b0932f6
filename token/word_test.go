package token

import (
	"errors"
	"testing"
)

type wordTest struct {
	in     string
	delims string
	out    string
	delim  rune
}

func TestScanWord(t *testing.T) {
	var wts = []wordTest{
		{in: `abc`, delims: StructDelims, out: `abc`, delim: EOF},
		{in: `abc def`, delims: StructDelims, out: `abc`, delim: ' '},
		{in: `abc]`, delims: StructDelims, out: `abc`, delim: ']'},
		{in: `a\]b]`, delims: StructDelims, out: `a]b`, delim: ']'},
		{in: `"[not a tag]"`, delims: StructDelims, out: `[not a tag]`, delim: EOF},
		{in: `"a b"c d`, delims: StructDelims, out: `a bc`, delim: ' '},
		{in: `x=1`, delims: NameDelims, out: `x`, delim: '='},
		{in: `a\ b`, delims: StructDelims, out: `a b`, delim: EOF},
		{in: `a\"b`, delims: StructDelims, out: `a"b`, delim: EOF},
		{in: `"a\"b"`, delims: StructDelims, out: `a"b`, delim: EOF},
		{in: `ab\`, delims: StructDelims, out: `ab`, delim: EOF},
		{in: "ab\ncd", delims: StructDelims, out: `ab`, delim: '\n'},
		{in: `"unterminated [x`, delims: StructDelims, out: `unterminated [x`, delim: EOF},
		{in: `""`, delims: StructDelims, out: ``, delim: EOF},
		{in: `héllo#`, delims: StructDelims, out: `héllo`, delim: '#'},
	}
	for _, wt := range wts {
		w, err := ScanWord(NewStream("t", []byte(wt.in)), wt.delims)
		if err != nil {
			t.Errorf("%q: %v", wt.in, err)
			continue
		}
		if w.Text != wt.out {
			t.Errorf("%q: got %q want %q", wt.in, w.Text, wt.out)
		}
		if w.Delim != wt.delim {
			t.Errorf("%q: got delim %q want %q", wt.in, w.Delim, wt.delim)
		}
	}
}

func TestScanWordNone(t *testing.T) {
	for _, in := range []string{``, ` abc`, `]`, `#x`, `\`} {
		_, err := ScanWord(NewStream("t", []byte(in)), StructDelims)
		if !errors.Is(err, ErrNoWord) {
			t.Errorf("%q: expected ErrNoWord, got %v", in, err)
		}
	}
}

func TestScanWordEmptyQuoted(t *testing.T) {
	w, err := ScanWord(NewStream("t", []byte(`"" rest`)), StructDelims)
	if err != nil {
		t.Fatal(err)
	}
	if w.Text != "" || !w.Quoted {
		t.Errorf("got %+v", w)
	}
}

func TestScanWordPos(t *testing.T) {
	s := NewStream("f.bab", []byte("\n  abc"))
	if _, err := s.SkipSpace(); err != nil {
		t.Fatal(err)
	}
	w, err := ScanWord(s, StructDelims)
	if err != nil {
		t.Fatal(err)
	}
	if w.Pos.Line != 2 || w.Pos.Col != 3 {
		t.Errorf("got %s", w.Pos)
	}
	if w.Pos.String() != "f.bab:2:3" {
		t.Errorf("got %q", w.Pos.String())
	}
}
