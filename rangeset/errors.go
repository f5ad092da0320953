package rangeset

import (
	"fmt"

	"github.com/npillmayer/numrange"
	"github.com/pkg/errors"
)

// Errors returned by range set operations. Check with errors.Is.
var (
	// ErrSyntax signals a malformed range specification.
	ErrSyntax = errors.New("range specification syntax error")
	// ErrConfig signals an invalid configuration value, e.g. a non-numeric store size.
	ErrConfig = errors.New("invalid range set configuration")
	// ErrOverflow signals that a result cannot be represented with native integers.
	ErrOverflow = errors.New("range too large")
)

// SyntaxError describes a malformed range specification. Span is the byte
// range of the offending input within Input.
type SyntaxError struct {
	Input string
	Span  numrange.Span
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %v in %q: %s", ErrSyntax.Error(), e.Span, e.Input, e.Msg)
}

// Unwrap makes errors.Is(err, ErrSyntax) hold for syntax errors.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxError(input string, span numrange.Span, msg string, args ...interface{}) *SyntaxError {
	err := &SyntaxError{
		Input: input,
		Span:  span,
		Msg:   fmt.Sprintf(msg, args...),
	}
	tracer().Errorf("%s", err.Error())
	return err
}
