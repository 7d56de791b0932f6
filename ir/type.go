package ir

import "fmt"

type Kind int

const (
	TreeKind Kind = iota
	ValueKind
)

func Kinds() []Kind {
	return []Kind{TreeKind, ValueKind}
}

func (k Kind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case TreeKind:
		return []byte("tree"), nil
	case ValueKind:
		return []byte("value"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a kind>", int(k))
	}
}

func (k *Kind) UnmarshalText(d []byte) error {
	switch string(d) {
	case "tree":
		*k = TreeKind
	case "value":
		*k = ValueKind
	default:
		return fmt.Errorf("no such kind %q", string(d))
	}
	return nil
}
