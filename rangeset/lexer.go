package rangeset

import (
	"sync"

	"github.com/npillmayer/numrange"
	"github.com/npillmayer/numrange/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Token types of range specifications.
const (
	tokNum   numrange.TokType = iota + 1 // -?[0-9]+
	tokDots                              // ..
	tokSep                               // run of ',' and whitespace
	tokMinus                             // stray '-', not part of a number
)

// The tokens representing literal lexemes
var literals = []string{"..", "-"}

// tokenIds maps token names to their token types
var tokenIds = map[string]int{
	"NUM": int(tokNum),
	"SEP": int(tokSep),
	"..":  int(tokDots),
	"-":   int(tokMinus),
}

var lexer *lexmach.LMAdapter
var lexerErr error
var lexerOnce sync.Once // monitors one-time creation of the lexer

// Lexer returns the lexmachine lexer for range specifications. The DFA is
// compiled on first use.
func Lexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		tracer().Debugf("Creating lexer")
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`\-?[0-9]+`), lexmach.MakeToken("NUM", tokenIds["NUM"]))
			lexer.Add([]byte(`( |\,|\t|\n|\r)+`), lexmach.MakeToken("SEP", tokenIds["SEP"]))
		}
		lexer, lexerErr = lexmach.NewLMAdapter(init, literals, tokenIds)
	})
	return lexer, lexerErr
}

// tokenize splits a single input item into tokens. The returned token slice is
// terminated by an EOF token positioned at the end of the input. Unconsumed input,
// i.e. any character not allowed in range specifications, is a syntax error.
func tokenize(input string) ([]numrange.Token, error) {
	lex, err := Lexer()
	if err != nil {
		return nil, err
	}
	scan, err := lex.Scanner(input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr != nil {
			return
		}
		pos, _ := lexmach.ErrorOffset(e)
		scanErr = syntaxError(input, numrange.Span{pos, pos + 1},
			"illegal character %q", illegalRune(input, pos))
	})
	tokens := scan.Tokens()
	if scanErr != nil {
		return nil, scanErr
	}
	return tokens, nil
}

func illegalRune(input string, pos uint64) string {
	if pos >= uint64(len(input)) {
		return ""
	}
	for _, r := range input[pos:] {
		return string(r)
	}
	return ""
}
