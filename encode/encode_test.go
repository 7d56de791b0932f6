package encode_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/parse"
	"github.com/signadot/babylon/token"
)

func TestDebugDump(t *testing.T) {
	doc, err := parse.ParseString("[a x=1 y=2 b c]\nd", parse.WithFilename("a.bab"))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.WriteDebugDump(doc, buf); err != nil {
		t.Fatal(err)
	}
	exp := `tree "root" @a.bab:1:1
  tree "a" @a.bab:1:1 {x="1" y="2"}
    value "b" @a.bab:1:12
    value "c" @a.bab:1:14
  value "d" @a.bab:2:1
`
	if diff := cmp.Diff(exp, buf.String()); diff != "" {
		t.Errorf("dump (-want +got):\n%s", diff)
	}
}

func TestDebugDumpVisitsAll(t *testing.T) {
	doc, err := parse.ParseString(`[a [b [c d] e] f [g]] h`)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodePositions(false)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != doc.Root.Count() {
		t.Fatalf("got %d lines for %d nodes", len(lines), doc.Root.Count())
	}
	var texts []string
	for _, ln := range lines {
		f := strings.Fields(ln)
		texts = append(texts, strings.Trim(f[1], `"`))
	}
	exp := []string{"root", "a", "b", "c", "d", "e", "f", "g", "h"}
	if diff := cmp.Diff(exp, texts); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestCanonicalReparse(t *testing.T) {
	ins := []string{
		`[a x=1 y=2 b c]`,
		`"[not a tag]" "" "a\"b" "back\\slash"`,
		`[a\]b "x y"="p q" z=""]`,
		`[a [b [c]] d] e f`,
		`"x=1" [t "k=v"]`,
		`[a "#include"]`,
		``,
	}
	for _, in := range ins {
		doc, err := parse.ParseString(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		for _, wire := range []bool{false, true} {
			buf := bytes.NewBuffer(nil)
			err := encode.Encode(doc, buf, encode.EncodeFormat(format.BabylonFormat), encode.EncodeWire(wire))
			if err != nil {
				t.Fatalf("%q: %v", in, err)
			}
			again, err := parse.Parse(buf.Bytes())
			if err != nil {
				t.Fatalf("%q encoded as %q: %v", in, buf.String(), err)
			}
			if !doc.Equal(again) {
				t.Errorf("%q encoded as %q does not reparse to the same tree", in, buf.String())
			}
		}
	}
}

func TestCanonicalLayout(t *testing.T) {
	doc, err := parse.ParseString(`[a   y=2 x=1 [b c]   d]  e`)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeFormat(format.BabylonFormat)); err != nil {
		t.Fatal(err)
	}
	exp := "[a x=1 y=2\n  [b c]\n  d]\ne\n"
	if diff := cmp.Diff(exp, buf.String()); diff != "" {
		t.Errorf("layout (-want +got):\n%s", diff)
	}
	if got := encode.MustString(doc.Root); got != "[a x=1 y=2 [b c] d] e" {
		t.Errorf("wire: got %q", got)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"abc":   "abc",
		"":      `""`,
		"a b":   `"a b"`,
		"a]":    `"a]"`,
		`a"b`:   `"a\"b"`,
		`a\b`:   `"a\\b"`,
		"k=v":   `"k=v"`,
		"#x":    `"#x"`,
		"héllo": "héllo",
	}
	for in, exp := range tests {
		if got := encode.Quote(in); got != exp {
			t.Errorf("Quote(%q) = %q, want %q", in, got, exp)
		}
	}
}

func TestJSON(t *testing.T) {
	doc, err := parse.ParseString(`[a x=1 b]`, parse.WithFilename("j.bab"))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true)); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	exp := map[string]any{
		"kind": "tree",
		"text": "root",
		"pos":  "j.bab:1:1",
		"children": []any{
			map[string]any{
				"kind":  "tree",
				"text":  "a",
				"pos":   "j.bab:1:1",
				"attrs": map[string]any{"x": "1"},
				"children": []any{
					map[string]any{"kind": "value", "text": "b", "pos": "j.bab:1:8"},
				},
			},
		},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	doc := ir.NewDocument("")
	doc.Root.Append(ir.NewTree("a", token.Pos{}).WithAttr("x", "1"))
	buf := bytes.NewBuffer(nil)
	err := encode.Encode(doc, buf, encode.EncodeFormat(format.YAMLFormat), encode.EncodePositions(false))
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"kind: tree", "text: root", "text: a", "x:"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pos:") {
		t.Errorf("positions not suppressed:\n%s", out)
	}
}

func TestColorsPlainFallback(t *testing.T) {
	c := encode.NewColors()
	c.Map = nil
	if got := c.Color(ir.TreeKind, encode.TagColor, "a%b"); got != "a%b" {
		t.Errorf("got %q", got)
	}
}

func TestNilDocument(t *testing.T) {
	if err := encode.Encode(nil, bytes.NewBuffer(nil)); err == nil {
		t.Error("expected error")
	}
}
