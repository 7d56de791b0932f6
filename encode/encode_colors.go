package encode

import (
	"strings"

	"github.com/signadot/babylon/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	AttrNameColor
	AttrValueColor
	ValueColor
	SepColor
	PosColor
	KindColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ir.Kinds() {
		able := Colorable{Kind: k, Attr: SepColor}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = PosColor
		colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
		able.Attr = KindColor
		colors.Map[able] = color.BlueString
	}
	able := Colorable{Kind: ir.TreeKind}
	able.Attr = TagColor
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Attr = AttrNameColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = AttrValueColor
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able = Colorable{Kind: ir.ValueKind, Attr: ValueColor}
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ir.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ir.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
