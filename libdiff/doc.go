// Package libdiff computes structural differences between babylon
// documents.
//
// # Usage
//
//	changes := libdiff.Diff(oldDoc, newDoc)
//	err := libdiff.Write(os.Stdout, changes, libdiff.WriteColor(true))
//
// Children are aligned by kind and text, so a value inserted among its
// siblings shows as one insertion rather than as a change to every
// following sibling. Attributes are compared by name.
//
// # Paths
//
// A change is located by a path of child indices from the root, each
// tree step labelled with its tag: "/0:page/2:body/1". Indices of
// deletions and changes count children of the old document; insertions
// count children of the new one. Paths are [ir.Path] strings, so
// (*ir.Node).GetPath on the matching document returns the changed node.
//
// # Related Packages
//
//   - github.com/signadot/babylon/ir - document model
//   - github.com/signadot/babylon/encode - rendering of changed subtrees
package libdiff
