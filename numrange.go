package numrange

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Token categories are defined by
// the tokenizers, e.g. numbers, range operators and separators.
type TokType int

// Tokens represent input tokens of a range specification. They are produced
// by a scanner.
//
// An example would be a token for a negative number:
//
//    TokType = Num         // identifier for this kind of tokens
//    Lexeme  = "-10"       // lexeme how it appeared in the input stream
//    Value   = -10         // an int64 value, if set by the scanner
//    Span    = 9…12        // occured from byte position 9 in the input stream
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Adjacent is true if other starts exactly where s ends, i.e. there is no gap
// between the two.
func (s Span) Adjacent(other Span) bool {
	return s[1] == other[0]
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
