// Package babylon parses bracket-tagged documents, reads macro files and
// expands macros in documents.
//
// The work is done by the parse, macro and encode packages; this package
// gathers the common entry points.
package babylon

import (
	"context"
	"io"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/macro"
	"github.com/signadot/babylon/parse"

	"golang.org/x/sync/errgroup"
)

// ParseDocument parses the file at path and everything it includes.
func ParseDocument(path string, opts ...parse.ParseOption) (*ir.Document, error) {
	return parse.ParseFile(path, opts...)
}

// WriteDebugDump writes a human readable dump of doc to w. The dump is
// not babylon source; use encode.Encode with format.BabylonFormat for that.
func WriteDebugDump(doc *ir.Document, w io.Writer) error {
	return encode.WriteDebugDump(doc, w)
}

func ReadMacros(path string, opts ...macro.ReadOption) (*macro.Table, error) {
	return macro.Read(path, opts...)
}

// Expand returns doc with the macros of t expanded. doc is not modified.
func Expand(doc *ir.Document, t *macro.Table, opts ...macro.ExpandOption) (*ir.Document, error) {
	return macro.Expand(doc, t, opts...)
}

// ParseDocuments parses each of paths concurrently. The documents are
// returned in the order of paths. The first failure cancels the parses
// still running and is returned.
func ParseDocuments(ctx context.Context, paths []string, opts ...parse.ParseOption) ([]*ir.Document, error) {
	res := make([]*ir.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			popts := append([]parse.ParseOption{}, opts...)
			popts = append(popts, parse.ParseContext(gctx))
			doc, err := parse.ParseFile(path, popts...)
			if err != nil {
				return err
			}
			res[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
