package parse

import (
	"fmt"
	"strings"
)

// Directive is the closed set of '#' directives.
type Directive int

const (
	DirInclude Directive = iota
)

var directiveNames = map[string]Directive{
	"include": DirInclude,
}

func lookupDirective(name string) (Directive, bool) {
	d, ok := directiveNames[name]
	return d, ok
}

func (d Directive) String() string {
	for k, v := range directiveNames {
		if v == d {
			return k
		}
	}
	return fmt.Sprintf("directive(%d)", int(d))
}

// Directives returns the names of the known directives.
func Directives() []string {
	return []string{DirInclude.String()}
}

// UnknownPolicy decides what happens to a directive name which is not
// known.
type UnknownPolicy int

const (
	// RejectUnknown fails the parse with an ir.UnknownDirective error.
	RejectUnknown UnknownPolicy = iota
	// WarnUnknown logs a warning and drops the directive name.
	WarnUnknown
	// DropUnknown drops the directive name silently.
	DropUnknown
)

func (p UnknownPolicy) String() string {
	d, err := p.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (p UnknownPolicy) MarshalText() ([]byte, error) {
	switch p {
	case RejectUnknown:
		return []byte("reject"), nil
	case WarnUnknown:
		return []byte("warn"), nil
	case DropUnknown:
		return []byte("drop"), nil
	}
	return nil, fmt.Errorf("<err: %d is not an unknown directive policy>", int(p))
}

func (p *UnknownPolicy) UnmarshalText(d []byte) error {
	switch strings.ToLower(string(d)) {
	case "reject", "error":
		*p = RejectUnknown
	case "warn":
		*p = WarnUnknown
	case "drop", "ignore":
		*p = DropUnknown
	default:
		return fmt.Errorf("unknown directive policy %q: want reject, warn or drop", string(d))
	}
	return nil
}
