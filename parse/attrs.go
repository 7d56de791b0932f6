package parse

import (
	"github.com/signadot/babylon/token"
)

// tryAttr reads one name=value pair. On failure the stream is restored to
// where it was and ok is false.
func tryAttr(s *token.Stream) (name, value string, ok bool) {
	m := s.Mark()
	if _, err := s.SkipSpace(); err != nil {
		s.Reset(m)
		return "", "", false
	}
	nw, err := token.ScanWord(s, token.NameDelims)
	if err != nil || nw.Delim != '=' {
		s.Reset(m)
		return "", "", false
	}
	vw, err := token.ScanWord(s, token.StructDelims)
	if err != nil {
		s.Reset(m)
		return "", "", false
	}
	pushStructural(s, vw)
	return nw.Text, vw.Text, true
}
