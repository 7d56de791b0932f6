package ir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/babylon/token"
)

// ErrorKind classifies failures of parsing, macro reading and expansion.
// Each kind is an error, so errors.Is(err, ir.IncludeCycle) works on any
// error wrapping it.
type ErrorKind int

const (
	NoError ErrorKind = iota
	InvalidArgument
	FileRead
	// OutOfMemory is kept so kinds line up with other implementations;
	// the Go runtime aborts on allocation failure and nothing returns it.
	OutOfMemory
	UnterminatedTree
	IncludeCycle
	MacroCycle
	UnknownDirective
	Syntax
	Limit
	DuplicateMacro
)

var kindNames = map[ErrorKind]string{
	NoError:          "no error",
	InvalidArgument:  "invalid argument",
	FileRead:         "file read error",
	OutOfMemory:      "out of memory",
	UnterminatedTree: "unterminated tree",
	IncludeCycle:     "include cycle",
	MacroCycle:       "macro cycle",
	UnknownDirective: "unknown directive",
	Syntax:           "syntax error",
	Limit:            "limit exceeded",
	DuplicateMacro:   "duplicate macro",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error kind %d", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Error is a positioned failure.
type Error struct {
	Kind ErrorKind
	Pos  token.Pos
	// Path is the file the failure concerns when it is not the file of
	// Pos, such as the target of an include.
	Path string
	Msg  string
	Err  error
}

// Errorf returns an *Error of kind at pos with a formatted message.
func Errorf(kind ErrorKind, pos token.Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) WithPath(p string) *Error {
	e.Path = p
	return e
}

func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	sb := &strings.Builder{}
	if e.Pos.File != "" || e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.String())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Path != "" {
		fmt.Fprintf(sb, " %q", e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of err, NoError for nil or unclassified errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return NoError
}

// PosOf returns the position of the first positioned error in err's chain.
func PosOf(err error) (token.Pos, bool) {
	var e *Error
	if errors.As(err, &e) && (e.Pos.IsValid() || e.Pos.File != "") {
		return e.Pos, true
	}
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return te.Pos, true
	}
	return token.Pos{}, false
}
