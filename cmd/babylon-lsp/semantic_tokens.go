package main

import (
	"context"

	"github.com/signadot/babylon/token"

	"go.lsp.dev/protocol"
)

// tokenTypes and tokenModifiers form the legend; semTok indexes them.
var (
	tokenTypes = []protocol.SemanticTokenTypes{
		protocol.SemanticTokenKeyword,
		protocol.SemanticTokenString,
		protocol.SemanticTokenOperator,
		protocol.SemanticTokenProperty,
		protocol.SemanticTokenMacro,
	}
	tokenModifiers = []protocol.SemanticTokenModifiers{
		protocol.SemanticTokenModifierDefinition,
	}
)

const (
	typeKeyword uint32 = iota
	typeString
	typeOperator
	typeProperty
	typeMacro
)

const modDefinition uint32 = 1 << 0

type semTok struct {
	line, char, length uint32
	typ, mods          uint32
}

// scanTokens lexes content the way the parser does and classifies each
// word. Input the parser would reject is highlighted as far as it goes.
// Quoted words running over several lines are not reported.
func scanTokens(content string) []semTok {
	s := token.NewStream("", []byte(content))
	lines := newLineIndex(content)
	var res []semTok
	add := func(start, end token.Pos, typ, mods uint32) {
		if start.Line != end.Line || end.Col <= start.Col {
			return
		}
		from, to := lines.position(start.Line, start.Col), lines.position(end.Line, end.Col)
		res = append(res, semTok{
			line:   from.Line,
			char:   from.Character,
			length: to.Character - from.Character,
			typ:    typ,
			mods:   mods,
		})
	}
	char := func(typ uint32) {
		start := s.Pos()
		s.Next()
		add(start, s.Pos(), typ, 0)
	}
	word := func(delims string, typ, mods uint32) (token.Word, bool) {
		w, err := token.ScanWord(s, delims)
		if err != nil {
			return w, false
		}
		if w.Delim != token.EOF {
			s.PushBack(w.Delim)
		}
		add(w.Pos, s.Pos(), typ, mods)
		return w, true
	}
	for {
		r, err := s.SkipSpace()
		if err != nil {
			return res
		}
		switch r {
		case '[':
			char(typeOperator)
			s.SkipSpace()
			if _, ok := word(token.StructDelims, typeKeyword, modDefinition); !ok {
				continue
			}
			for attr(s, add) {
			}
		case ']':
			char(typeOperator)
		case '#':
			start := s.Pos()
			s.Next()
			s.SkipSpace()
			w, err := token.ScanWord(s, token.StructDelims)
			if err != nil {
				continue
			}
			if w.Delim != token.EOF {
				s.PushBack(w.Delim)
			}
			add(start, s.Pos(), typeMacro, 0)
			if w.Text == "include" {
				s.SkipSpace()
				word(token.StructDelims, typeString, 0)
			}
		default:
			word(token.StructDelims, typeString, 0)
		}
	}
}

// attr scans one name=value pair following a tag, restoring s if there
// is none.
func attr(s *token.Stream, add func(start, end token.Pos, typ, mods uint32)) bool {
	m := s.Mark()
	s.SkipSpace()
	nw, err := token.ScanWord(s, token.NameDelims)
	if err != nil || nw.Delim != '=' {
		s.Reset(m)
		return false
	}
	eq := s.Pos()
	eq.Col--
	add(nw.Pos, eq, typeProperty, 0)
	add(eq, s.Pos(), typeOperator, 0)
	vw, err := token.ScanWord(s, token.StructDelims)
	if err != nil {
		return false
	}
	if vw.Delim != token.EOF {
		s.PushBack(vw.Delim)
	}
	add(vw.Pos, s.Pos(), typeString, 0)
	return true
}

// encodeTokens delta encodes toks, which are in document order.
func encodeTokens(toks []semTok) []uint32 {
	data := make([]uint32, 0, 5*len(toks))
	var prevLine, prevChar uint32
	for _, t := range toks {
		deltaLine := t.line - prevLine
		deltaChar := t.char
		if deltaLine == 0 {
			deltaChar = t.char - prevChar
		}
		data = append(data, deltaLine, deltaChar, t.length, t.typ, t.mods)
		prevLine, prevChar = t.line, t.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: encodeTokens(scanTokens(doc.content))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	var toks []semTok
	for _, t := range scanTokens(doc.content) {
		if t.line >= params.Range.Start.Line && t.line <= params.Range.End.Line {
			toks = append(toks, t)
		}
	}
	return &protocol.SemanticTokens{Data: encodeTokens(toks)}, nil
}
