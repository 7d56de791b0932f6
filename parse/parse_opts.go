package parse

import (
	"context"
	"io/fs"
	"log/slog"
)

const (
	DefaultMaxDepth = 256
	DefaultMaxNodes = 1 << 20
)

type parseOpts struct {
	fsys        fs.FS
	includeDirs []string
	maxDepth    int
	maxNodes    int
	ctx         context.Context
	unknown     UnknownPolicy
	log         *slog.Logger
	file        string
	line        int
}

func defaultOpts() *parseOpts {
	return &parseOpts{
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
		ctx:      context.Background(),
		log:      slog.Default(),
		line:     1,
	}
}

type ParseOption func(*parseOpts)

// ParseFS reads the document and its includes from fsys rather than the
// operating system. Paths are then slash separated and unrooted, as
// fs.FS requires.
func ParseFS(fsys fs.FS) ParseOption {
	return func(o *parseOpts) { o.fsys = fsys }
}

// IncludeDirs adds directories searched for relative include targets
// which are not found next to the including file. Each must exist and be
// a directory.
func IncludeDirs(dirs ...string) ParseOption {
	return func(o *parseOpts) { o.includeDirs = append(o.includeDirs, dirs...) }
}

// MaxDepth bounds the nesting of trees and includes. n <= 0 removes the
// bound.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// MaxNodes bounds the number of nodes a parse may create, includes
// counted. n <= 0 removes the bound.
func MaxNodes(n int) ParseOption {
	return func(o *parseOpts) { o.maxNodes = n }
}

// ParseContext makes the parse stop with a Limit error when ctx is done.
func ParseContext(ctx context.Context) ParseOption {
	return func(o *parseOpts) { o.ctx = ctx }
}

func UnknownDirectives(p UnknownPolicy) ParseOption {
	return func(o *parseOpts) { o.unknown = p }
}

// ParseLogger sets the logger receiving warnings, slog.Default() if unset.
func ParseLogger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) {
		if l != nil {
			o.log = l
		}
	}
}

// WithFilename names in-memory input for positions and for resolving
// relative includes.
func WithFilename(name string) ParseOption {
	return func(o *parseOpts) { o.file = name }
}

// ParseAt is like WithFilename and also numbers the first line of the
// input as line.
func ParseAt(name string, line int) ParseOption {
	return func(o *parseOpts) {
		o.file = name
		o.line = line
	}
}
