package token

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// EOF is reported as the delimiter of a word terminated by the end of
// input.
const EOF rune = -1

// Stream is a character source with position tracking and pushback.
//
// A Stream is owned by a single parse; it is not safe for concurrent use
// and holds no state shared with any other Stream.
type Stream struct {
	name string
	d    []byte
	off  int

	line int
	col  int
	// lens[i] is the column reached at the end of line i+1, so that
	// pushing back a newline can restore the column.
	lens []int

	back []rune
}

// Mark is a checkpoint of a Stream, see [Stream.Mark].
type Mark struct {
	off  int
	line int
	col  int
	back []rune
}

// NewStream returns a Stream reading d. name is used in positions.
func NewStream(name string, d []byte) *Stream {
	return NewStreamAt(name, d, 1)
}

// NewStreamAt is like NewStream but numbers the first line of d as line.
func NewStreamAt(name string, d []byte, line int) *Stream {
	if line < 1 {
		line = 1
	}
	return &Stream{name: name, d: d, line: line}
}

func (s *Stream) Name() string { return s.name }

// Pos returns the position of the next character.
func (s *Stream) Pos() Pos {
	off := s.off
	for _, r := range s.back {
		if n := utf8.RuneLen(r); n > 0 {
			off -= n
		}
	}
	return Pos{File: s.name, Off: off, Line: s.line, Col: s.col + 1}
}

// Next returns the next character, pushed back characters first in last
// in first out order. At the end of input it returns io.EOF.
func (s *Stream) Next() (rune, error) {
	var r rune
	if n := len(s.back); n > 0 {
		r = s.back[n-1]
		s.back = s.back[:n-1]
	} else {
		if s.off >= len(s.d) {
			return EOF, io.EOF
		}
		var sz int
		r, sz = utf8.DecodeRune(s.d[s.off:])
		s.off += sz
	}
	s.advance(r)
	return r, nil
}

func (s *Stream) advance(r rune) {
	if r != '\n' {
		s.col++
		return
	}
	i := s.line - 1
	for len(s.lens) <= i {
		s.lens = append(s.lens, 0)
	}
	s.lens[i] = s.col
	s.line++
	s.col = 0
}

// PushBack returns r to the stream. It may be called any number of times
// in a row.
func (s *Stream) PushBack(r rune) {
	if r == EOF {
		return
	}
	s.back = append(s.back, r)
	if r != '\n' {
		if s.col > 0 {
			s.col--
		}
		return
	}
	if s.line > 1 {
		s.line--
	}
	s.col = 0
	if i := s.line - 1; i < len(s.lens) {
		s.col = s.lens[i]
	}
}

// Peek returns the next character without consuming it.
func (s *Stream) Peek() (rune, error) {
	r, err := s.Next()
	if err != nil {
		return r, err
	}
	s.PushBack(r)
	return r, nil
}

// SkipSpace consumes white space and returns the first non space
// character without consuming it, or io.EOF.
func (s *Stream) SkipSpace() (rune, error) {
	for {
		r, err := s.Peek()
		if err != nil || !unicode.IsSpace(r) {
			return r, err
		}
		s.Next()
	}
}

// Mark checkpoints the offset, line, column and pushback buffer.
func (s *Stream) Mark() Mark {
	m := Mark{off: s.off, line: s.line, col: s.col}
	if len(s.back) > 0 {
		m.back = append([]rune(nil), s.back...)
	}
	return m
}

// Reset restores a checkpoint taken with Mark on the same stream.
func (s *Stream) Reset(m Mark) {
	s.off = m.off
	s.line = m.line
	s.col = m.col
	s.back = append(s.back[:0], m.back...)
}
