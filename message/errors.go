package message

import (
	"fmt"
	"strings"
)

// SyntaxError is returned by the codec when a method, content header or
// field table cannot be parsed. It accumulates a stack of short human
// readable labels ("field foo in method Exchange.Declare", "class Basic")
// as it unwinds, the way the original parser's combinator errors collapsed
// into a single context-carrying variant (amqp_core/src/error.rs,
// ConException::SyntaxError(Vec<String>)).
type SyntaxError struct {
	Context []string
}

func (e *SyntaxError) Error() string {
	if len(e.Context) == 0 {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error: %s", strings.Join(e.Context, " in "))
}

// WrapSyntax adds a context label while propagating a SyntaxError up the call
// stack; non-SyntaxError errors are wrapped fresh.
func WrapSyntax(err error, label string) error {
	if err == nil {
		return nil
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		se = &SyntaxError{Context: []string{err.Error()}}
	}
	se.Context = append(se.Context, label)
	return se
}

func NewSyntaxError(label string) *SyntaxError {
	return &SyntaxError{Context: []string{label}}
}
