package template

import (
	"errors"
	"fmt"
)

// errorPrefix marks template diagnostics so they stand out from transport or
// command errors when printed
const errorPrefix = "[format error] "

var (
	// ErrSyntax categorizes malformed format strings: unbalanced delimiters,
	// stray parens, empty names, trailing junk
	ErrSyntax = errors.New("malformed template syntax")
	// ErrUnknownFunction categorizes calls to helpers that are not registered
	ErrUnknownFunction = errors.New("unknown template function")
	// ErrTooLong categorizes format strings over the maximum length
	ErrTooLong = errors.New("format string too long")
)

// Error is the structured failure returned by Tokenize and Render. Pos is the
// byte offset the scanner stopped at, or -1 when no position applies. Fn is
// the offending name for unknown function errors.
type Error struct {
	category error
	msg      string
	Pos      int
	Fn       string
}

func (e *Error) Error() string {
	return errorPrefix + e.msg
}

func (e *Error) Unwrap() error {
	return e.category
}

func syntaxErrorf(pos int, format string, args ...any) *Error {
	return &Error{
		category: ErrSyntax,
		msg:      fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

func unknownFunctionError(name string) *Error {
	return &Error{
		category: ErrUnknownFunction,
		msg:      fmt.Sprintf("unknown template function: %s", name),
		Pos:      -1,
		Fn:       name,
	}
}

func tooLongError() *Error {
	return &Error{
		category: ErrTooLong,
		msg:      fmt.Sprintf("the maximum format string length is %d", MaxFormatLen),
		Pos:      -1,
	}
}
