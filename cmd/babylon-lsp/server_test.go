package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

func testServer() *Server {
	return newServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func open(t *testing.T, s *Server, u, content string) {
	t.Helper()
	err := s.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.DocumentURI(u), Text: content, Version: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestURIPath(t *testing.T) {
	if got := uriPath("file:///tmp/a.bab"); got != "/tmp/a.bab" {
		t.Errorf("got %q", got)
	}
	if got := uriPath("untitled:1"); got != "untitled:1" {
		t.Errorf("got %q", got)
	}
}

func TestValidate(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/broken.bab"
	open(t, s, u, "[a [b c]\n")
	ds := s.validateDocument(s.docs.get(u))
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ds))
	}
	d := ds[0]
	if d.Code != "unterminated tree" {
		t.Errorf("code %v", d.Code)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 1},
	}
	if diff := cmp.Diff(want, d.Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}

	open(t, s, u, "[a [b c]]\n")
	if ds := s.validateDocument(s.docs.get(u)); len(ds) != 0 {
		t.Errorf("unexpected diagnostics %v", ds)
	}
}

func TestDidChange(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/c.bab"
	open(t, s, u, "[a b]")
	err := s.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: u},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "[x y]"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := s.docs.get(u)
	if doc.content != "[x y]" || doc.doc.Root.Children[0].Text != "x" {
		t.Errorf("got %q", doc.content)
	}
}

func TestApplyChange(t *testing.T) {
	change := protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 1},
			End:   protocol.Position{Line: 1, Character: 2},
		},
		Text: "ñ",
	}
	if got := applyChange("[é\n[b]]", change); got != "[é\n[ñ]]" {
		t.Errorf("got %q", got)
	}
}

func TestHover(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/h.bab"
	open(t, s, u, "[a x=1 b]")
	h, err := s.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     protocol.Position{Line: 0, Character: 7},
		},
	})
	if err != nil || h == nil {
		t.Fatalf("hover %v %v", h, err)
	}
	if !strings.Contains(h.Contents.Value, "**Value** `b`") {
		t.Errorf("got %q", h.Contents.Value)
	}

	h, _ = s.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     protocol.Position{Line: 0, Character: 3},
		},
	})
	if h == nil || !strings.Contains(h.Contents.Value, "`x` = `1`") {
		t.Errorf("got %v", h)
	}
}

func TestCompletion(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/comp.bab"
	open(t, s, u, "[page [nav]] [")
	list, err := s.Completion(context.Background(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     protocol.Position{Line: 0, Character: 7},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	// the last parse failed, so no tags are known
	if len(list.Items) != 0 {
		t.Errorf("got %v", list.Items)
	}

	open(t, s, u, "[page [nav]] #")
	list, _ = s.Completion(context.Background(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     protocol.Position{Line: 0, Character: 14},
		},
	})
	var labels []string
	for _, it := range list.Items {
		labels = append(labels, it.Label)
	}
	if diff := cmp.Diff([]string{"include"}, labels); diff != "" {
		t.Errorf("directives (-want +got):\n%s", diff)
	}
}

func TestKnownTags(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/tags.bab"
	open(t, s, u, "[page [nav [a]] [body [a]]]")
	if diff := cmp.Diff([]string{"a", "body", "nav", "page"}, knownTags(s.docs.get(u))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSemanticTokens(t *testing.T) {
	got := scanTokens("[a x=1 b]\n#include \"n.bab\"")
	want := []semTok{
		{line: 0, char: 0, length: 1, typ: typeOperator},
		{line: 0, char: 1, length: 1, typ: typeKeyword, mods: modDefinition},
		{line: 0, char: 3, length: 1, typ: typeProperty},
		{line: 0, char: 4, length: 1, typ: typeOperator},
		{line: 0, char: 5, length: 1, typ: typeString},
		{line: 0, char: 7, length: 1, typ: typeString},
		{line: 0, char: 8, length: 1, typ: typeOperator},
		{line: 1, char: 0, length: 8, typ: typeMacro},
		{line: 1, char: 9, length: 7, typ: typeString},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(semTok{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	data := encodeTokens(got[6:8])
	if diff := cmp.Diff([]uint32{0, 8, 1, typeOperator, 0, 1, 0, 8, typeMacro, 0}, data); diff != "" {
		t.Errorf("encoded (-want +got):\n%s", diff)
	}
}

func TestSymbols(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/sym.bab"
	open(t, s, u, "[page\n  [nav home]]\nfoot")
	res, err := s.DocumentSymbol(context.Background(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: u},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("got %d symbols", len(res))
	}
	page := res[0].(protocol.DocumentSymbol)
	if page.Name != "page" || len(page.Children) != 1 || page.Children[0].Name != "nav" {
		t.Errorf("got %+v", page)
	}
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 1, Character: 11},
	}
	if diff := cmp.Diff(wantRange, page.Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
}

func TestFormatting(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/f.bab"
	open(t, s, u, "[a   x=1\n b  c]")
	edits, err := s.Formatting(context.Background(), &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: u},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 || edits[0].NewText != "[a x=1 b c]\n" {
		t.Errorf("got %+v", edits)
	}
	if edits[0].Range.End.Line != 2 {
		t.Errorf("end %v", edits[0].Range.End)
	}
}

func TestLineIndex(t *testing.T) {
	li := newLineIndex("a😀b\né x")
	for _, c := range []struct {
		line, col int
		char      uint32
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 2, 3},
		{0, 3, 4},
		{0, 5, 6},
		{1, 2, 2},
		{2, 1, 1},
	} {
		if got := li.char(c.line, c.col); got != c.char {
			t.Errorf("char(%d, %d) = %d want %d", c.line, c.col, got, c.char)
		}
		if got := li.col(c.line, c.char); got != c.col {
			t.Errorf("col(%d, %d) = %d want %d", c.line, c.char, got, c.col)
		}
	}
	// inside the surrogate pair
	if got := li.col(0, 2); got != 1 {
		t.Errorf("col(0, 2) = %d", got)
	}
}

func TestUTF16Positions(t *testing.T) {
	s := testServer()
	const u = "file:///tmp/wide.bab"
	open(t, s, u, "😀 [a")
	ds := s.validateDocument(s.docs.get(u))
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 3},
		End:   protocol.Position{Line: 0, Character: 4},
	}
	if diff := cmp.Diff(want, ds[0].Range); diff != "" {
		t.Errorf("diagnostic range (-want +got):\n%s", diff)
	}

	open(t, s, u, "😀 [a b]")
	// character 5 is the space before b
	h, err := s.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     protocol.Position{Line: 0, Character: 5},
		},
	})
	if err != nil || h == nil {
		t.Fatalf("hover %v %v", h, err)
	}
	if !strings.Contains(h.Contents.Value, "**Tree** `a`") {
		t.Errorf("hover got %q", h.Contents.Value)
	}

	res, err := s.DocumentSymbol(context.Background(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: u},
	})
	if err != nil || len(res) != 2 {
		t.Fatalf("symbols %v %v", res, err)
	}
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 3},
		End:   protocol.Position{Line: 0, Character: 7},
	}
	if diff := cmp.Diff(wantRange, res[1].(protocol.DocumentSymbol).Range); diff != "" {
		t.Errorf("symbol range (-want +got):\n%s", diff)
	}

	got := scanTokens("😀 x")
	wantToks := []semTok{
		{line: 0, char: 0, length: 2, typ: typeString},
		{line: 0, char: 3, length: 1, typ: typeString},
	}
	if diff := cmp.Diff(wantToks, got, cmp.AllowUnexported(semTok{})); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}

	if got := applyChange("😀[b]", protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 3},
			End:   protocol.Position{Line: 0, Character: 4},
		},
		Text: "c",
	}); got != "😀[c]" {
		t.Errorf("change got %q", got)
	}
}

func TestFormattingSpliced(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.bab"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	s := testServer()
	u := string(uri.File(filepath.Join(dir, "top.bab")))
	open(t, s, u, "[a   #include empty.bab b]")
	if doc := s.docs.get(u); doc.doc == nil {
		t.Fatalf("parse: %v", doc.err)
	}
	edits, err := s.Formatting(context.Background(), &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(u)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Errorf("formatting would drop the include: %+v", edits)
	}
}
