package encode

import "github.com/signadot/babylon/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire writes babylon output on a single line.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// EncodePositions controls whether the debug dump and the yaml and json
// encodings carry node locations. It is on by default.
func EncodePositions(v bool) EncodeOption {
	return func(es *EncState) { es.positions = v }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
