package parser

import (
	"strings"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/token"
)

// MaxCodePoint is the largest valid Unicode code point.
const MaxCodePoint = 0x10FFFF

// Cursor walks a list of component values, typically a declaration value.
// Whitespace between values is skipped by every method except Remaining.
//
// A Cursor never mutates the values it walks. Backtracking is done by
// saving the State before an attempt and calling Reset after a failure,
// see Try.
type Cursor struct {
	values ast.ComponentValues
	i      int
	end    token.Pos
}

// State is a snapshot of a cursor's position.
type State struct {
	i int
}

// NewCursor returns a cursor over values. The end position is reported
// for errors at the end of input, e.g. the closing parenthesis of a function.
func NewCursor(values ast.ComponentValues, end token.Pos) *Cursor {
	return &Cursor{values: values, end: end}
}

// State returns the current position of the cursor.
func (c *Cursor) State() State { return State{i: c.i} }

// Reset restores the cursor to a state previously returned by State.
func (c *Cursor) Reset(s State) { c.i = s.i }

// skipWhitespace advances past whitespace tokens.
func (c *Cursor) skipWhitespace() {
	for c.i < len(c.values) && isWhitespace(c.values[c.i]) {
		c.i++
	}
}

// Peek returns the next non-whitespace value without consuming it.
// Returns nil at the end of input.
func (c *Cursor) Peek() ast.ComponentValue {
	c.skipWhitespace()
	if c.i >= len(c.values) {
		return nil
	}
	return c.values[c.i]
}

// Next consumes and returns the next non-whitespace value.
func (c *Cursor) Next() (ast.ComponentValue, error) {
	v := c.Peek()
	if v == nil {
		return nil, Errorf(ErrUnexpectedEOF, c.end, "unexpected EOF")
	}
	c.i++
	return v, nil
}

// Position returns the position of the next non-whitespace value, or the
// end position if the cursor is exhausted.
func (c *Cursor) Position() token.Pos {
	if v := c.Peek(); v != nil {
		return v.Position()
	}
	return c.end
}

// IsExhausted returns true if only whitespace remains.
func (c *Cursor) IsExhausted() bool {
	return c.Peek() == nil
}

// ExpectExhausted returns an error if any non-whitespace value remains.
func (c *Cursor) ExpectExhausted() error {
	if v := c.Peek(); v != nil {
		return Errorf(ErrExpectedEOF, v.Position(), "expected EOF, got %q", v.String())
	}
	return nil
}

// Remaining consumes and returns all values left, including whitespace.
func (c *Cursor) Remaining() ast.ComponentValues {
	a := c.values[c.i:]
	c.i = len(c.values)
	return a
}

// nextToken consumes the next value and returns it as a token.
// Blocks and functions are reported as unexpected.
func (c *Cursor) nextToken(expected string) (token.Token, error) {
	v, err := c.Next()
	if err != nil {
		return nil, err
	}
	tok, ok := v.(*ast.Token)
	if !ok {
		return nil, unexpected(expected, v)
	}
	return tok.Token, nil
}

// ExpectIdent consumes an ident token.
func (c *Cursor) ExpectIdent() (*token.Ident, error) {
	tok, err := c.nextToken("ident")
	if err != nil {
		return nil, err
	}
	ident, ok := tok.(*token.Ident)
	if !ok {
		return nil, unexpected("ident", tok)
	}
	return ident, nil
}

// ExpectIdentMatching consumes an ident token equal to name, ignoring ASCII case.
func (c *Cursor) ExpectIdentMatching(name string) error {
	ident, err := c.ExpectIdent()
	if err != nil {
		return err
	} else if !strings.EqualFold(ident.Value, name) {
		return unexpected(name, ident)
	}
	return nil
}

// ExpectString consumes a quoted string token.
func (c *Cursor) ExpectString() (*token.String, error) {
	tok, err := c.nextToken("string")
	if err != nil {
		return nil, err
	}
	s, ok := tok.(*token.String)
	if !ok {
		return nil, unexpected("string", tok)
	}
	return s, nil
}

// ExpectIdentOrString consumes an ident or string token and returns its value.
func (c *Cursor) ExpectIdentOrString() (string, error) {
	tok, err := c.nextToken("ident or string")
	if err != nil {
		return "", err
	}
	switch tok := tok.(type) {
	case *token.Ident:
		return tok.Value, nil
	case *token.String:
		return tok.Value, nil
	}
	return "", unexpected("ident or string", tok)
}

// ExpectURL consumes a url token.
func (c *Cursor) ExpectURL() (*token.URL, error) {
	tok, err := c.nextToken("url")
	if err != nil {
		return nil, err
	}
	u, ok := tok.(*token.URL)
	if !ok {
		return nil, unexpected("url", tok)
	}
	return u, nil
}

// ExpectFunction consumes a function.
func (c *Cursor) ExpectFunction() (*ast.Function, error) {
	v, err := c.Next()
	if err != nil {
		return nil, err
	}
	f, ok := v.(*ast.Function)
	if !ok {
		return nil, unexpected("function", v)
	}
	return f, nil
}

// ExpectFunctionMatching consumes a function named name, ignoring ASCII case.
func (c *Cursor) ExpectFunctionMatching(name string) (*ast.Function, error) {
	f, err := c.ExpectFunction()
	if err != nil {
		return nil, err
	} else if !strings.EqualFold(f.Name, name) {
		return nil, unexpected(name+"()", f)
	}
	return f, nil
}

// ExpectNumber consumes a number token.
func (c *Cursor) ExpectNumber() (*token.Number, error) {
	tok, err := c.nextToken("number")
	if err != nil {
		return nil, err
	}
	n, ok := tok.(*token.Number)
	if !ok {
		return nil, unexpected("number", tok)
	}
	return n, nil
}

// ExpectPercentage consumes a percentage token.
func (c *Cursor) ExpectPercentage() (*token.Percentage, error) {
	tok, err := c.nextToken("percentage")
	if err != nil {
		return nil, err
	}
	p, ok := tok.(*token.Percentage)
	if !ok {
		return nil, unexpected("percentage", tok)
	}
	return p, nil
}

// ExpectDimension consumes a dimension token.
func (c *Cursor) ExpectDimension() (*token.Dimension, error) {
	tok, err := c.nextToken("dimension")
	if err != nil {
		return nil, err
	}
	d, ok := tok.(*token.Dimension)
	if !ok {
		return nil, unexpected("dimension", tok)
	}
	return d, nil
}

// ExpectComma consumes a comma token.
func (c *Cursor) ExpectComma() error {
	tok, err := c.nextToken("comma")
	if err != nil {
		return err
	}
	if _, ok := tok.(*token.Comma); !ok {
		return unexpected("comma", tok)
	}
	return nil
}

// ExpectUnicodeRange consumes a unicode-range token. The range must not be
// empty and must lie within the Unicode code space.
func (c *Cursor) ExpectUnicodeRange() (*token.UnicodeRange, error) {
	tok, err := c.nextToken("unicode-range")
	if err != nil {
		return nil, err
	}
	r, ok := tok.(*token.UnicodeRange)
	if !ok {
		return nil, unexpected("unicode-range", tok)
	}
	if r.Start > r.End || r.End > MaxCodePoint {
		return nil, Errorf(ErrUnexpectedToken, r.Pos, "invalid unicode-range %s", r.String())
	}
	return r, nil
}

// Try calls fn and restores the cursor if fn returns an error.
func Try[T any](c *Cursor, fn func(*Cursor) (T, error)) (T, error) {
	state := c.State()
	v, err := fn(c)
	if err != nil {
		c.Reset(state)
	}
	return v, err
}

// ParseEntirely calls fn and requires that it consumes all of the input.
func ParseEntirely[T any](c *Cursor, fn func(*Cursor) (T, error)) (T, error) {
	v, err := fn(c)
	if err == nil {
		err = c.ExpectExhausted()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ParseNestedBlock parses the arguments of f entirely with fn.
func ParseNestedBlock[T any](f *ast.Function, fn func(*Cursor) (T, error)) (T, error) {
	return ParseEntirely(NewCursor(f.Values, f.End), fn)
}

// ParseCommaSeparated parses a list of items separated by top-level commas.
// Each item must be consumed entirely by fn; an empty item is an error.
// The whole list fails if any item fails.
func ParseCommaSeparated[T any](c *Cursor, fn func(*Cursor) (T, error)) ([]T, error) {
	var a []T
	for {
		// Delimit the item by the next comma.
		j := c.i
		for j < len(c.values) && !isComma(c.values[j]) {
			j++
		}
		end := c.end
		if j < len(c.values) {
			end = c.values[j].Position()
		}

		item := NewCursor(c.values[c.i:j], end)
		v, err := ParseEntirely(item, fn)
		if err != nil {
			c.i += item.i
			return nil, err
		}
		a = append(a, v)

		if j == len(c.values) {
			c.i = j
			return a, nil
		}
		c.i = j + 1
	}
}

// unexpected returns an UnexpectedToken error for a value found in place
// of what was expected.
func unexpected(expected string, v interface {
	Position() token.Pos
	String() string
}) *Error {
	return Errorf(ErrUnexpectedToken, v.Position(), "expected %s, got %q", expected, v.String())
}

// isWhitespace returns true if v is a whitespace token.
func isWhitespace(v ast.ComponentValue) bool {
	tok, ok := v.(*ast.Token)
	if !ok {
		return false
	}
	_, ok = tok.Token.(*token.Whitespace)
	return ok
}

// isComma returns true if v is a comma token.
func isComma(v ast.ComponentValue) bool {
	tok, ok := v.(*ast.Token)
	if !ok {
		return false
	}
	_, ok = tok.Token.(*token.Comma)
	return ok
}
