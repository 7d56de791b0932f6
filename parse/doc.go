// Package parse parses babylon text into ir documents.
//
// # Grammar
//
//	Document   := Element*
//	Element    := TreeNode | Directive | ValueNode
//	TreeNode   := '[' TagWord Attribute* Element* ']'
//	Attribute  := NameWord '=' ValueWord
//	Directive  := '#' DirectiveName DirectiveArgs
//	ValueNode  := Word
//
// Words follow [token.ScanWord]: double quotes make structural characters
// ordinary text and a backslash makes the next character literal.
//
// # Usage
//
//	doc, err := parse.ParseFile("site.bab")
//	if err != nil {
//	    return err
//	}
//
//	// in-memory input, includes resolved from fsys
//	doc, err = parse.ParseString(`[page title="Home" #include nav.bab]`,
//	    parse.WithFilename("index.bab"), parse.ParseFS(fsys))
//
// # Includes
//
// '#include name' splices the top level elements of name in place of the
// directive. Relative names resolve next to the including file, then in
// [IncludeDirs], then as given. Including a file which is already being
// parsed fails with [ir.IncludeCycle].
//
// # Related Packages
//
//   - github.com/signadot/babylon/ir - document tree and error kinds
//   - github.com/signadot/babylon/encode - encode documents to text
//   - github.com/signadot/babylon/token - character stream and words
package parse
