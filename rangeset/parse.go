package rangeset

import (
	"strconv"
	"strings"

	"github.com/npillmayer/numrange"
	"github.com/npillmayer/numrange/scanner"
	"github.com/npillmayer/numrange/sparse"
)

// --- Grammar ---------------------------------------------------------------

// spec       ::=  section (sectsep section)*
// section    ::=  value  |  value '..' value  |  value '-' value
// value      ::=  ['-'] digit+
// sectsep    ::=  ','  |  whitespace
//
// Sections are validated by a finite state machine over the token stream.
// The shorthand 'a-b' is scanned as two adjacent numbers, the second one
// looking negative, and is read as 'a..b'.

// FSM states. Every (state, token class) pair not present in the transition
// table is an error.
const (
	sError  int8 = iota - 1
	sStart       // start of input
	sNum         // after the first value of a section
	sDots        // after '..'
	sSpan        // after the second value of a section
	sSep         // after a section separator
	sAccept      // end of input
	stateCount
)

// Token classes, i.e. the columns of the transition table.
const (
	cNum int = iota
	cDots
	cSep
	cMinus
	cEOF
	classCount
)

var transitions = func() *sparse.IntMatrix[int8] {
	T := sparse.NewIntMatrix(int(stateCount), classCount, sError)
	T.Set(int(sStart), cNum, sNum).Set(int(sStart), cEOF, sAccept)
	T.Set(int(sNum), cNum, sSpan) // dashed shorthand
	T.Set(int(sNum), cDots, sDots).Set(int(sNum), cSep, sSep).Set(int(sNum), cEOF, sAccept)
	T.Set(int(sDots), cNum, sSpan)
	T.Set(int(sSpan), cSep, sSep).Set(int(sSpan), cEOF, sAccept)
	T.Set(int(sSep), cNum, sNum)
	return T
}()

func classOf(tok numrange.Token) int {
	switch tok.TokType() {
	case tokNum:
		return cNum
	case tokDots:
		return cDots
	case tokSep:
		return cSep
	case scanner.EOF:
		return cEOF
	}
	return cMinus
}

var classNames = [classCount]string{"number", "'..'", "separator", "'-'", "end of input"}

// syntaxMessage explains why a token of class c is not allowed in state s.
func syntaxMessage(s int8, c int) string {
	var msg string
	switch {
	case c == cMinus:
		msg = "stray '-'"
	case s == sStart && c == cSep:
		msg = "range must not start with a separator"
	case s == sStart && c == cDots:
		msg = "range must not start with '..'"
	case s == sDots && c == cSep:
		msg = "'..' must not be followed by a separator"
	case s == sDots && c == cEOF:
		msg = "range must not end with '..'"
	case s == sDots && c == cDots:
		msg = "'..' must not be followed by '..'"
	case s == sSep && c == cDots:
		msg = "separator must not be followed by '..'"
	case s == sSep && c == cEOF:
		msg = "range must not end with a separator"
	case s == sSpan && c == cDots:
		msg = "more than one '..' in section"
	case s == sSpan && c == cNum:
		msg = "dashed ranges must not be chained"
	default:
		msg = "unexpected " + classNames[c]
	}
	return msg + ", expected " + expected(s)
}

// expected lists the token classes allowed in state s.
func expected(s int8) string {
	var classes []string
	transitions.Row(int(s), func(c int, _ int8) {
		classes = append(classes, classNames[c])
	})
	return strings.Join(classes, " or ")
}

// --- Sections --------------------------------------------------------------

// section is a single value or a span, as read from the input. Bounds are
// in input order, i.e. from may be greater than to.
type section struct {
	from, to int64
	isSpan   bool
	at       numrange.Span
}

// readSections validates a single input item and splits it into sections.
func readSections(input string) ([]section, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	var sections []section
	var sect section
	var prev numrange.Token
	st := sStart
	for _, tok := range tokens {
		c := classOf(tok)
		next := transitions.Value(int(st), c)
		if next == sError {
			return nil, syntaxError(input, tok.Span(), syntaxMessage(st, c))
		}
		switch next {
		case sNum:
			n, err := number(input, tok, false)
			if err != nil {
				return nil, err
			}
			sect = section{from: n, to: n, at: tok.Span()}
		case sDots:
			sect.at = sect.at.Extend(tok.Span())
		case sSpan:
			dashed := st == sNum
			if dashed && (!prev.Span().Adjacent(tok.Span()) || !strings.HasPrefix(tok.Lexeme(), "-")) {
				return nil, syntaxError(input, tok.Span(), "unexpected number")
			}
			n, err := number(input, tok, dashed)
			if err != nil {
				return nil, err
			}
			sect.to, sect.isSpan = n, true
			sect.at = sect.at.Extend(tok.Span())
		case sSep, sAccept:
			if st == sNum || st == sSpan {
				sections = append(sections, sect)
			}
		}
		st, prev = next, tok
	}
	tracer().Debugf("%q has %d section(s)", input, len(sections))
	return sections, nil
}

// number converts a number token. If dashed is set, the token's leading '-' is
// a range operator, not a sign.
func number(input string, tok numrange.Token, dashed bool) (int64, error) {
	lexeme := tok.Lexeme()
	if dashed {
		lexeme = lexeme[1:]
	}
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return 0, syntaxError(input, tok.Span(), "number %s out of range", lexeme)
	}
	return n, nil
}

// --- Parsing ---------------------------------------------------------------

// isNegationMarker is true for the runes which mark a range as negated, if
// found at the start of the first input item.
func isNegationMarker(b byte) bool {
	return b == '!' || b == 'N' || b == 'n'
}

// parse reads all input items of a range specification. Negation is resolved
// once, from the first item only: a leading marker is stripped and reported.
// Items are either all valid or parse returns an error and no sections.
func parse(items []string) (negated bool, sections []section, err error) {
	for i, item := range items {
		if i == 0 && len(item) > 0 && isNegationMarker(item[0]) {
			negated = true
			item = item[1:]
		}
		s, err := readSections(item)
		if err != nil {
			return false, nil, err
		}
		sections = append(sections, s...)
	}
	return negated, sections, nil
}
