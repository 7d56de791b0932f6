package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/ir"
)

// MustString returns n as single line babylon source, panicking on error.
func MustString(n *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := EncodeNode(n, buf, EncodeFormat(format.BabylonFormat), EncodeWire(true)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
