// Package macro reads macro definition files and expands macro references
// in parsed documents.
//
// A macro file is a sequence of blocks separated by blank lines. The first
// line of a block, trimmed, names the macro; the remaining lines, kept
// verbatim, are its body:
//
//	greeting
//	[p hello]
//
//	sig
//	[p regards]
//
// On expansion a value equal to a macro name is replaced by the elements
// of the body parsed as document text.
package macro
