package diag

import (
	"fmt"

	"strux/internal/source"
)

// SyntaxError is the positioned error value raised by the lower parsing
// stages. The line classifier is the recovery boundary: it converts these
// into diagnostics and degrades the line instead of failing the caller.
type SyntaxError struct {
	Code Code
	Span source.Span
	Msg  string
	Err  error // optional cause
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return e.Code.Title()
	}
	return e.Msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error into an error-severity diagnostic.
func (e *SyntaxError) Diagnostic() Diagnostic {
	d := NewError(e.Code, e.Span, e.Error())
	if e.Err != nil {
		d = d.WithNote(e.Span, e.Err.Error())
	}
	return d
}

// Errorf builds a SyntaxError with a formatted message.
func Errorf(code Code, span source.Span, format string, args ...any) *SyntaxError {
	return &SyntaxError{Code: code, Span: span, Msg: fmt.Sprintf(format, args...)}
}
