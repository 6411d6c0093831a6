package parser

import (
	"errors"
	"fmt"
	"strconv"

	"wordlang/interpreter-go/pkg/lexer"
)

// Syntax error kinds. Match them with errors.Is.
var (
	ErrUnexpectedStatement  = errors.New("unexpected token in statement")
	ErrUnexpectedFactor     = errors.New("unexpected token in factor")
	ErrUnexpectedComparison = errors.New("unexpected token in comparison")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrNestingTooDeep       = errors.New("if statements nested too deeply")
)

// SyntaxError reports the token at which parsing stopped.
type SyntaxError struct {
	Kind     error
	Found    lexer.Token
	Expected string // set for ErrUnexpectedToken
	Limit    int    // set for ErrNestingTooDeep
}

func (e *SyntaxError) Error() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("parser: expected %s, found %s", e.Expected, describe(e.Found))
	case ErrNestingTooDeep:
		return fmt.Sprintf("parser: %v (limit %d)", e.Kind, e.Limit)
	default:
		return fmt.Sprintf("parser: %v: %s", e.Kind, describe(e.Found))
	}
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// Lexeme is the source text of the offending token.
func (e *SyntaxError) Lexeme() string {
	return e.Found.Lexeme
}

func describe(tok lexer.Token) string {
	if tok.Kind == lexer.END {
		return "end of input"
	}
	return strconv.Quote(tok.Lexeme)
}
