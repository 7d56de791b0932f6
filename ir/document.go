package ir

import (
	"slices"

	"github.com/signadot/babylon/token"
)

// Document owns a single synthesized root tree tagged RootTag.
type Document struct {
	Root *Node
	// Includes lists the files spliced in by #include, nested ones
	// included, in the order they were read.
	Includes []string
	// Dropped lists the unknown directive names which were dropped
	// rather than rejected.
	Dropped []string
}

// Spliced reports whether the tree differs from the source text beyond
// layout, so that writing it back would lose directives.
func (d *Document) Spliced() bool {
	return len(d.Includes) != 0 || len(d.Dropped) != 0
}

// NewDocument returns an empty document whose root is positioned at the
// start of file.
func NewDocument(file string) *Document {
	return &Document{
		Root: NewTree(RootTag, token.Pos{File: file, Line: 1, Col: 1}),
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{
		Root:     d.Root.Clone(),
		Includes: slices.Clone(d.Includes),
		Dropped:  slices.Clone(d.Dropped),
	}
}

// Equal reports whether the two documents have equal trees. Includes and
// Dropped are not compared.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Root.Equal(o.Root)
}
