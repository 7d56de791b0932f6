package main

import (
	"context"
	"fmt"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/ir"

	"go.lsp.dev/protocol"
)

// DocumentSymbol outlines the trees of the document. Values are leaves
// of the outline; trees spliced in from included files are omitted.
func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	syms := symbols(doc.lines, doc.path, doc.doc.Root.Children)
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

func symbols(lines lineIndex, file string, ns []*ir.Node) []protocol.DocumentSymbol {
	var res []protocol.DocumentSymbol
	for _, n := range ns {
		if n.File != file {
			continue
		}
		sym := protocol.DocumentSymbol{
			Name:  encode.Quote(n.Text),
			Range: nodeRange(lines, n),
		}
		start := sym.Range.Start
		if n.IsTree() {
			sym.Kind = protocol.SymbolKindObject
			sym.Detail = fmt.Sprintf("%d children", len(n.Children))
			sym.Children = symbols(lines, file, n.Children)
			// the tag follows '['
			start.Character++
		} else {
			sym.Kind = protocol.SymbolKindString
		}
		sym.SelectionRange = protocol.Range{
			Start: start,
			End:   protocol.Position{Line: start.Line, Character: start.Character + uint32(utf16LenString(n.Text))},
		}
		if sym.SelectionRange.End.Line == sym.Range.End.Line && sym.SelectionRange.End.Character > sym.Range.End.Character {
			sym.SelectionRange.End = sym.Range.End
		}
		res = append(res, sym)
	}
	return res
}

// nodeRange spans from n to the end of the text of its last descendant
// in the same file. Closing brackets are not tracked by the parser and
// are left out.
func nodeRange(lines lineIndex, n *ir.Node) protocol.Range {
	start := lines.position(n.Line, n.Col)
	last := n
	n.Walk(func(c *ir.Node, _ int) bool {
		if c.File == n.File && (c.Line > last.Line || c.Line == last.Line && c.Col > last.Col) {
			last = c
		}
		return true
	})
	end := lines.position(last.Line, last.Col)
	end.Character += uint32(utf16LenString(last.Text))
	if last.IsTree() {
		end.Character++
	}
	return protocol.Range{Start: start, End: end}
}
