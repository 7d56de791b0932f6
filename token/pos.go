package token

import (
	"fmt"
)

// Pos is a position in a named source. Line and Col are 1-based; Col
// counts characters, not bytes. Off is the byte offset into the source.
type Pos struct {
	File string
	Off  int
	Line int
	Col  int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	file := p.File
	if file == "" {
		file = "-"
	}
	if !p.IsValid() {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
}
