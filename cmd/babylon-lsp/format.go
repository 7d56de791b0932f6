package main

import (
	"bytes"
	"context"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"

	"go.lsp.dev/protocol"
)

// Formatting replaces the document with its canonical layout. Documents
// which fail to parse are left alone, and so are documents with includes
// or dropped directives, which the canonical text would lose.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil || doc.doc.Spliced() {
		return nil, nil
	}
	var buf bytes.Buffer
	err := encode.Encode(doc.doc, &buf, encode.EncodeFormat(format.BabylonFormat))
	if err != nil {
		return nil, nil
	}
	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	lines := bytes.Count([]byte(doc.content), []byte("\n"))
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}
