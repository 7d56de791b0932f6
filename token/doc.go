// Package token provides the character level machinery for babylon text.
//
// [Stream] reads characters from an in-memory source, tracking line and
// column, with unlimited pushback and [Mark]/[Stream.Reset] checkpoints.
//
// [ScanWord] reads one delimiter terminated word, honouring double quotes
// and backslash escapes.
package token
