package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/ir"

	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	line := int(params.Position.Line)
	node := findNodeAt(doc, line, doc.lines.col(line, params.Position.Character))
	if node == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: buildHoverText(node),
		},
	}, nil
}

// findNodeAt returns the node of doc starting last on the 0-based line at
// or before the 0-based rune column col. Nodes from included files are not considered.
func findNodeAt(doc *document, line, col int) *ir.Node {
	var best *ir.Node
	doc.doc.Root.Walk(func(n *ir.Node, depth int) bool {
		if depth == 0 || n.File != doc.path {
			return true
		}
		if n.Line-1 != line || n.Col-1 > col {
			return true
		}
		if best == nil || n.Col >= best.Col {
			best = n
		}
		return true
	})
	return best
}

func buildHoverText(n *ir.Node) string {
	var parts []string
	if n.IsTree() {
		parts = append(parts, fmt.Sprintf("**Tree** `%s`", encode.Quote(n.Text)))
		if names := n.AttrNames(); len(names) != 0 {
			sb := &strings.Builder{}
			sb.WriteString("**Attributes:**\n")
			for _, k := range names {
				fmt.Fprintf(sb, "\n- `%s` = `%s`", encode.Quote(k), encode.Quote(n.Attrs[k]))
			}
			parts = append(parts, sb.String())
		}
		parts = append(parts, fmt.Sprintf("**Children:** %d", len(n.Children)))
	} else {
		parts = append(parts, fmt.Sprintf("**Value** `%s`", encode.Quote(n.Text)))
	}
	parts = append(parts, fmt.Sprintf("*%s*", n.Pos()))
	return strings.Join(parts, "\n\n")
}
