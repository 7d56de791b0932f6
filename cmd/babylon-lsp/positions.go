package main

import (
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"
)

// lineIndex holds the lines of a document to convert token columns,
// which count runes, to and from LSP characters, which count UTF-16
// code units.
type lineIndex []string

func newLineIndex(content string) lineIndex {
	return strings.Split(content, "\n")
}

func (li lineIndex) line(i int) string {
	if i < 0 || i >= len(li) {
		return ""
	}
	return li[i]
}

// char returns the character of the 0-based rune column col of line.
// Columns past the end of the line count one each.
func (li lineIndex) char(line, col int) uint32 {
	n := 0
	for _, r := range li.line(line) {
		if col == 0 {
			break
		}
		n += utf16Len(r)
		col--
	}
	return uint32(n + col)
}

// col is the inverse of char. A character inside a surrogate pair gives
// the column of the pair.
func (li lineIndex) col(line int, char uint32) int {
	c, n := 0, int(char)
	for _, r := range li.line(line) {
		w := utf16Len(r)
		if n < w {
			return c
		}
		n -= w
		c++
	}
	return c + n
}

// position returns the LSP position of a 1-based token line and column.
func (li lineIndex) position(line, col int) protocol.Position {
	return protocol.Position{Line: uint32(line - 1), Character: li.char(line-1, col-1)}
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func utf16LenString(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Len(r)
	}
	return n
}
