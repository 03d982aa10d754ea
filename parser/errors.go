package parser

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/fontface/token"
)

// Kinds of syntax errors. Use errors.Is to test an error for its kind.
var (
	// ErrUnexpectedToken reports a grammar violation at a specific token.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnexpectedEOF reports input ending where a value was required.
	ErrUnexpectedEOF = errors.New("unexpected EOF")

	// ErrExpectedEOF reports trailing input after a complete value.
	ErrExpectedEOF = errors.New("expected EOF")

	// ErrMalformedAtRuleBody reports a structural violation inside an
	// at-rule body which must not be recovered from by fallback parsing.
	ErrMalformedAtRuleBody = errors.New("malformed at-rule body")
)

// Error represents a syntax error.
type Error struct {
	Kind    error
	Message string
	Pos     token.Pos
}

// Errorf returns a new syntax error of the given kind.
func Errorf(kind error, pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the kind of the error.
func (e *Error) Unwrap() error {
	return e.Kind
}

// ErrorList represents a list of syntax errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}

// Unwrap returns the errors of the list, see errors.Is.
func (a ErrorList) Unwrap() []error {
	return a
}

// Err returns the list as an error, or nil if the list is empty.
func (a ErrorList) Err() error {
	if len(a) == 0 {
		return nil
	}
	return a
}
