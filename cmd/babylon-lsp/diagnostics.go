package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/parse"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
	log  *slog.Logger
}

type document struct {
	uri     string
	path    string
	content string
	lines   lineIndex
	version int32
	// doc is nil when err is not.
	doc *ir.Document
	err error
}

func (ds *documentStore) get(u string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[u]
}

func (ds *documentStore) put(u string, content string, version int32) *document {
	path := uriPath(u)
	doc, err := parse.ParseString(content,
		parse.WithFilename(path),
		parse.ParseLogger(ds.log))
	d := &document{
		uri:     u,
		path:    path,
		content: content,
		lines:   newLineIndex(content),
		version: version,
		doc:     doc,
		err:     err,
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[u] = d
	return d
}

func (ds *documentStore) remove(u string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, u)
}

// uriPath returns the file name of a file URI, so includes resolve next
// to it. Other URIs are used as is.
func uriPath(u string) string {
	if !strings.HasPrefix(u, uri.FileScheme+"://") {
		return u
	}
	return uri.URI(u).Filename()
}

func (s *Server) publishDiagnostics(ctx context.Context, u string) {
	doc := s.docs.get(u)
	if doc == nil {
		return
	}
	diagnostics := s.validateDocument(doc)
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(u),
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.log.Warn("publish diagnostics", "uri", u, "error", err)
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Code:     ir.KindOf(doc.err).String(),
		Message:  doc.err.Error(),
		Source:   "babylon",
	}
	// Failures inside an included file are reported at the top of the
	// including one.
	if pos, ok := ir.PosOf(doc.err); ok && pos.IsValid() && pos.File == doc.path {
		d.Range = protocol.Range{
			Start: doc.lines.position(pos.Line, pos.Col),
			End:   doc.lines.position(pos.Line, pos.Col+1),
		}
	}
	return append(diagnostics, d)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change)
	}
	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// applyChange applies one content change. A change without a range
// replaces the whole content, which is all clients send under full sync.
func applyChange(content string, change protocol.TextDocumentContentChangeEvent) string {
	r := change.Range
	if r == (protocol.Range{}) && change.RangeLength == 0 {
		return change.Text
	}
	rs := []rune(content)
	start := lineColToOffset(rs, int(r.Start.Line), int(r.Start.Character))
	end := lineColToOffset(rs, int(r.End.Line), int(r.End.Character))
	if start > end {
		return content
	}
	return string(rs[:start]) + change.Text + string(rs[end:])
}

// lineColToOffset returns the index into rs of the 0-based line and
// UTF-16 character, clamped to the end of rs.
func lineColToOffset(rs []rune, line, char int) int {
	currentLine := 0
	currentChar := 0
	for i, r := range rs {
		if currentLine == line && currentChar >= char {
			return i
		}
		if r == '\n' {
			if currentLine == line {
				return i
			}
			currentLine++
			currentChar = 0
		} else {
			currentChar += utf16Len(r)
		}
	}
	return len(rs)
}
