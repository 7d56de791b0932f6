package token

import (
	"io"
	"strings"
	"unicode"
)

// Word is the result of ScanWord.
type Word struct {
	Text string
	// Delim is the character which terminated the word. It is EOF if
	// the end of input was reached.
	Delim rune
	// Quoted records that the word contained a quotation, so an empty
	// Text is an explicit empty token.
	Quoted bool
	Pos    Pos
}

// Structural delimiters of the document grammar.
const (
	StructDelims = "#[]"
	NameDelims   = "=#[]"
)

// ScanWord reads one word from s. A word ends at white space or at any
// character of delims which is neither quoted nor escaped; the terminator
// is consumed and recorded in Word.Delim.
//
// A backslash makes the following character literal. A double quote
// toggles quotation and is not part of the word; inside quotation white
// space and delimiters are ordinary text.
//
// If no character was accumulated and no quotation was seen, ScanWord
// returns ErrNoWord.
func ScanWord(s *Stream, delims string) (Word, error) {
	w := Word{Pos: s.Pos(), Delim: EOF}
	sb := &strings.Builder{}
	quoted := false
	n := 0
	for {
		r, err := s.Next()
		if err == io.EOF {
			break
		}
		if r == '\\' {
			e, err := s.Next()
			if err == io.EOF {
				break
			}
			sb.WriteRune(e)
			n++
			continue
		}
		if r == '"' {
			quoted = !quoted
			w.Quoted = true
			continue
		}
		if !quoted && (unicode.IsSpace(r) || strings.ContainsRune(delims, r)) {
			w.Delim = r
			break
		}
		sb.WriteRune(r)
		n++
	}
	if n == 0 && !w.Quoted {
		return w, NewTokenizeErr(ErrNoWord, w.Pos)
	}
	w.Text = sb.String()
	return w, nil
}

// IsStructural reports whether r has structural meaning in the document
// grammar.
func IsStructural(r rune) bool {
	return r == '[' || r == ']' || r == '#'
}
