package token

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWord is returned by ScanWord when a delimiter or the end of
	// input was reached before any character of a word.
	ErrNoWord = errors.New("no word")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}
