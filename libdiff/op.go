package libdiff

import "fmt"

// Op is the kind of a Change.
type Op int

const (
	Insert Op = iota
	Delete
	// Replace is a child which changed kind.
	Replace
	// Retag is a tree whose tag changed. Its attributes and children are
	// reported by further changes.
	Retag
	Retext
	AttrAdd
	AttrDelete
	AttrSet
)

var opNames = map[Op]string{
	Insert:     "insert",
	Delete:     "delete",
	Replace:    "replace",
	Retag:      "retag",
	Retext:     "retext",
	AttrAdd:    "attr-add",
	AttrDelete: "attr-delete",
	AttrSet:    "attr-set",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(o))
}

func (o Op) MarshalText() ([]byte, error) {
	if s, ok := opNames[o]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown op %d", int(o))
}

func (o *Op) UnmarshalText(d []byte) error {
	for k, v := range opNames {
		if v == string(d) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown op %q", d)
}
