package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/ir"
)

type Babylon struct{ *ir.Node }

func (b Babylon) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeNode(b.Node, buf, encode.EncodeFormat(format.BabylonFormat)); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", b.Node)
	}
	return buf.String()
}

// Logf writes to stderr, rendering *ir.Node arguments as babylon text.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = Babylon{x}.String()
		case *ir.Document:
			args[i] = Babylon{x.Root}.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
