package interpreter

import (
	"errors"
	"fmt"
)

// Runtime error kinds. Match them with errors.Is.
var (
	ErrUnresolvedName  = errors.New("unresolved name")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrUnexpectedNode  = errors.New("unexpected node")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidNumber   = errors.New("invalid number literal")
)

// RuntimeError is a fatal evaluation failure.
type RuntimeError struct {
	Kind   error
	Detail string
}

func (e *RuntimeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("runtime: %v", e.Kind)
	}
	return fmt.Sprintf("runtime: %v: %s", e.Kind, e.Detail)
}

func (e *RuntimeError) Unwrap() error {
	return e.Kind
}

func runtimeError(kind error, format string, args ...interface{}) error {
	return &RuntimeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
