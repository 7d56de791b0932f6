package main

import (
	"context"
	"slices"

	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/parse"

	"go.lsp.dev/protocol"
)

// Completion offers directive names after '#' and the tags used in the
// document after '['.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	switch charBefore(doc.content, int(params.Position.Line), int(params.Position.Character)) {
	case '#':
		var items []protocol.CompletionItem
		for _, d := range parse.Directives() {
			items = append(items, protocol.CompletionItem{
				Label:      d,
				Kind:       protocol.CompletionItemKindKeyword,
				Detail:     "directive",
				InsertText: d + " ",
			})
		}
		return &protocol.CompletionList{Items: items}, nil
	case '[':
		var items []protocol.CompletionItem
		for _, tag := range knownTags(doc) {
			items = append(items, protocol.CompletionItem{
				Label:  tag,
				Kind:   protocol.CompletionItemKindClass,
				Detail: "tag",
			})
		}
		return &protocol.CompletionList{Items: items}, nil
	}
	return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
}

// charBefore returns the character left of the 0-based position, or 0.
func charBefore(content string, line, col int) rune {
	rs := []rune(content)
	i := lineColToOffset(rs, line, col)
	if i == 0 || i > len(rs) {
		return 0
	}
	return rs[i-1]
}

// knownTags returns the sorted distinct tags of doc's last good parse.
func knownTags(doc *document) []string {
	if doc.doc == nil {
		return nil
	}
	var tags []string
	doc.doc.Root.Walk(func(n *ir.Node, depth int) bool {
		if depth != 0 && n.IsTree() && !slices.Contains(tags, n.Text) {
			tags = append(tags, n.Text)
		}
		return true
	})
	slices.Sort(tags)
	return tags
}
