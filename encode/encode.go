package encode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/ir"

	"github.com/goccy/go-yaml"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	positions     bool

	format format.Format
	wire   bool

	Color func(ir.Kind, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent:    2,
		positions: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes doc to w in the configured format, DebugFormat by default.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: nil document", ErrEncoding)
	}
	es := newEncState(opts)
	if es.format.IsBabylon() {
		return encodeSource(doc.Root.Children, w, es)
	}
	return encode(doc.Root, w, es)
}

// EncodeNode writes the subtree at n. In BabylonFormat a root tree is
// written as its children, as it would appear in a file.
func EncodeNode(n *ir.Node, w io.Writer, opts ...EncodeOption) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	es := newEncState(opts)
	if es.format.IsBabylon() && n.IsTree() && n.Text == ir.RootTag {
		return encodeSource(n.Children, w, es)
	}
	return encode(n, w, es)
}

// WriteDebugDump writes the human readable dump of doc: one line per node
// giving its kind, text, location and attributes, children indented
// beneath their tree in source order.
func WriteDebugDump(doc *ir.Document, w io.Writer) error {
	return Encode(doc, w, EncodeFormat(format.DebugFormat))
}

func encode(n *ir.Node, w io.Writer, es *EncState) error {
	switch es.format {
	case format.DebugFormat:
		return encodeDebug(n, w, es)
	case format.BabylonFormat:
		if err := encodeSourceNode(n, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		d, err := yaml.MarshalWithOptions(yamlNode(n, es), yaml.Indent(es.indent))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		_, err = w.Write(d)
		return err
	case format.JSONFormat:
		enc := json.NewEncoder(w)
		if !es.wire {
			enc.SetIndent("", strings.Repeat(" ", es.indent))
		}
		if err := enc.Encode(jsonNode(n, es)); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported format %s", ErrEncoding, es.format)
	}
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return writeString(w, " ")
	}
	ind := strings.Repeat(" ", es.indent*es.depth)
	return writeString(w, "\n"+ind)
}

// debug dump

func encodeDebug(n *ir.Node, w io.Writer, es *EncState) error {
	sb := &strings.Builder{}
	sb.WriteString(strings.Repeat(" ", es.indent*es.depth))
	sb.WriteString(es.color(n.Kind, KindColor, n.Kind.String()))
	sb.WriteByte(' ')
	attr := ValueColor
	if n.IsTree() {
		attr = TagColor
	}
	sb.WriteString(es.color(n.Kind, attr, strconv.Quote(n.Text)))
	if es.positions {
		sb.WriteByte(' ')
		sb.WriteString(es.color(n.Kind, PosColor, "@"+n.Pos().String()))
	}
	if len(n.Attrs) != 0 {
		sb.WriteString(" {")
		for i, name := range n.AttrNames() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(es.color(n.Kind, AttrNameColor, name))
			sb.WriteString(es.color(n.Kind, SepColor, "="))
			sb.WriteString(es.color(n.Kind, AttrValueColor, strconv.Quote(n.Attrs[name])))
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	if err := writeString(w, sb.String()); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	for _, c := range n.Children {
		if err := encodeDebug(c, w, es); err != nil {
			return err
		}
	}
	return nil
}

// babylon source

func encodeSource(ns []*ir.Node, w io.Writer, es *EncState) error {
	for i, n := range ns {
		if i > 0 {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		if err := encodeSourceNode(n, w, es); err != nil {
			return err
		}
	}
	if len(ns) == 0 {
		return nil
	}
	return writeString(w, "\n")
}

func encodeSourceNode(n *ir.Node, w io.Writer, es *EncState) error {
	if n.IsValue() {
		return writeString(w, es.color(ir.ValueKind, ValueColor, Quote(n.Text)))
	}
	sep := func(s string) error {
		return writeString(w, es.color(ir.TreeKind, SepColor, s))
	}
	if err := sep("["); err != nil {
		return err
	}
	if err := writeString(w, es.color(ir.TreeKind, TagColor, Quote(n.Text))); err != nil {
		return err
	}
	for _, name := range n.AttrNames() {
		if err := writeString(w, " "+es.color(ir.TreeKind, AttrNameColor, Quote(name))); err != nil {
			return err
		}
		if err := sep("="); err != nil {
			return err
		}
		if err := writeString(w, es.color(ir.TreeKind, AttrValueColor, Quote(n.Attrs[name]))); err != nil {
			return err
		}
	}
	nested := false
	for _, c := range n.Children {
		if c.IsTree() {
			nested = true
			break
		}
	}
	es.depth++
	for _, c := range n.Children {
		var err error
		if nested {
			err = writeNL(w, es)
		} else {
			err = writeString(w, " ")
		}
		if err != nil {
			es.depth--
			return err
		}
		if err := encodeSourceNode(c, w, es); err != nil {
			es.depth--
			return err
		}
	}
	es.depth--
	return sep("]")
}

// Quote returns s as a single word of babylon source, quoting and escaping
// as needed so that it scans back to s.
func Quote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) == -1 {
		return s
	}
	sb := &strings.Builder{}
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsQuote(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(`[]#"\=`, r)
}

// yaml and json

func yamlNode(n *ir.Node, es *EncState) yaml.MapSlice {
	res := yaml.MapSlice{
		{Key: "kind", Value: n.Kind.String()},
		{Key: "text", Value: n.Text},
	}
	if es.positions {
		res = append(res, yaml.MapItem{Key: "pos", Value: n.Pos().String()})
	}
	if !n.IsTree() {
		return res
	}
	if len(n.Attrs) != 0 {
		attrs := make(yaml.MapSlice, 0, len(n.Attrs))
		for _, name := range n.AttrNames() {
			attrs = append(attrs, yaml.MapItem{Key: name, Value: n.Attrs[name]})
		}
		res = append(res, yaml.MapItem{Key: "attrs", Value: attrs})
	}
	if len(n.Children) != 0 {
		cs := make([]yaml.MapSlice, len(n.Children))
		for i, c := range n.Children {
			cs[i] = yamlNode(c, es)
		}
		res = append(res, yaml.MapItem{Key: "children", Value: cs})
	}
	return res
}

type jsonTree struct {
	Kind     ir.Kind           `json:"kind"`
	Text     string            `json:"text"`
	Pos      string            `json:"pos,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*jsonTree       `json:"children,omitempty"`
}

func jsonNode(n *ir.Node, es *EncState) *jsonTree {
	res := &jsonTree{Kind: n.Kind, Text: n.Text}
	if es.positions {
		res.Pos = n.Pos().String()
	}
	if len(n.Attrs) != 0 {
		res.Attrs = n.Attrs
	}
	for _, c := range n.Children {
		res.Children = append(res.Children, jsonNode(c, es))
	}
	return res
}
