/*
Package scanner defines an interface for scanners of range specifications.

The default scanner implementation is an adapter for lexmachine, living in
sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/numrange"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'numrange.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("numrange.scanner")
}

// EOF is the token type signalling the end of input. It has the same value as
// text/scanner.EOF.
const EOF numrange.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() numrange.Token
	SetErrorHandler(func(error))
}

// LogError is the default error reporting function for scanners.
func LogError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// LexMachine scanner.
type DefaultToken struct {
	kind   numrange.TokType
	lexeme string
	Val    interface{}
	span   numrange.Span
}

var _ numrange.Token = DefaultToken{}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ numrange.TokType, lexeme string, span numrange.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() numrange.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() numrange.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d %q @%v>", t.kind, t.lexeme, t.span)
}
