package lexmach

import (
	"github.com/npillmayer/numrange"
	"github.com/npillmayer/numrange/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'numrange.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("numrange.scanner")
}

// LMAdapter holds a compiled lexmachine DFA and creates scanners from it.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. init adds the patterns for
// non-literal tokens to the lexer. Literals ('..', '-', …) are added as verbatim
// patterns, with token types looked up by lexeme in tokenIds.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	lexer := lexmachine.NewLexer()
	init(lexer)
	for _, lit := range literals {
		lexer.Add(quoteLiteral(lit), MakeToken(lit, tokenIds[lit]))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile DFA: %v", err)
		return nil, err
	}
	return &LMAdapter{Lexer: lexer}, nil
}

// quoteLiteral escapes every byte of a literal, making it a lexmachine pattern
// matching just the literal.
func quoteLiteral(lit string) []byte {
	pattern := make([]byte, 0, 2*len(lit))
	for i := 0; i < len(lit); i++ {
		pattern = append(pattern, '\\', lit[i])
	}
	return pattern
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{
		scan:    s,
		end:     uint64(len(input)),
		onError: scanner.LogError,
	}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scan    *lexmachine.Scanner
	end     uint64 // length of input
	onError func(error)
	errcnt  int
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner. A nil handler resets
// error reporting to logging.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = scanner.LogError
	}
	lms.onError = h
}

// ErrorCount returns the number of scanner errors reported so far.
func (lms *LMScanner) ErrorCount() int {
	return lms.errcnt
}

// NextToken is part of the Tokenizer interface.
//
// Unconsumed input is reported to the error handler and skipped. Spans are
// byte offsets into the input. At the end of input, NextToken returns EOF
// tokens with an empty span positioned behind the last byte.
func (lms *LMScanner) NextToken() numrange.Token {
	for {
		tok, err, eof := lms.scan.Next()
		if eof {
			return scanner.MakeDefaultToken(scanner.EOF, "", numrange.Span{lms.end, lms.end})
		}
		if err != nil {
			lms.skipUnconsumed(err)
			continue
		}
		return wrap(tok.(*lexmachine.Token))
	}
}

// Tokens reads all tokens of the input, up to and including the EOF token.
func (lms *LMScanner) Tokens() []numrange.Token {
	var tokens []numrange.Token
	for {
		tok := lms.NextToken()
		tokens = append(tokens, tok)
		if tok.TokType() == scanner.EOF {
			return tokens
		}
	}
}

// skipUnconsumed reports a scanner error and moves the scanner past the offending
// input. The scanner always advances by at least one byte.
func (lms *LMScanner) skipUnconsumed(err error) {
	lms.errcnt++
	lms.onError(err)
	if ui, ok := err.(*machines.UnconsumedInput); ok {
		lms.scan.TC = ui.StartTC + 1
		if ui.FailTC > ui.StartTC {
			lms.scan.TC = ui.FailTC
		}
	}
}

func wrap(token *lexmachine.Token) scanner.DefaultToken {
	from := uint64(token.TC)
	t := scanner.MakeDefaultToken(
		numrange.TokType(token.Type),
		string(token.Lexeme),
		numrange.Span{from, from + uint64(len(token.Lexeme))},
	)
	t.Val = token.Value
	tracer().Debugf("token %v", t)
	return t
}

// ErrorOffset returns the byte offset of the input position a scanner error
// occured at, if the error carries one.
func ErrorOffset(err error) (uint64, bool) {
	if ui, ok := err.(*machines.UnconsumedInput); ok {
		return uint64(ui.StartTC), true
	}
	return 0, false
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
// The token's value is the lexeme.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
