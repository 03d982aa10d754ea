package values

import (
	"bytes"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
)

// Value is a comparable CSS value which can be written to a printer.
type Value interface {
	comparable
	ToCSS(p *printer.Printer)
}

// Size2D is a one or two value range. A range parsed from a single value
// has both values set to it.
type Size2D[T Value] struct {
	First  T
	Second T
}

// ParseSize2D parses one or two values with fn.
func ParseSize2D[T Value](c *parser.Cursor, fn func(*parser.Cursor) (T, error)) (Size2D[T], error) {
	first, err := fn(c)
	if err != nil {
		return Size2D[T]{}, err
	}
	second, err := parser.Try(c, fn)
	if err != nil {
		second = first
	}
	return Size2D[T]{First: first, Second: second}, nil
}

// ToCSS writes the range. The second value is omitted if it is written
// the same as the first, e.g. normal and 400 when minifying.
func (s Size2D[T]) ToCSS(p *printer.Printer) {
	s.First.ToCSS(p)
	if s.Second != s.First && valueCSS(s.Second, p.Minify()) != valueCSS(s.First, p.Minify()) {
		_ = p.WriteByte(' ')
		s.Second.ToCSS(p)
	}
}

// valueCSS returns the serialization of v.
func valueCSS[T Value](v T, minify bool) string {
	var buf bytes.Buffer
	v.ToCSS(printer.New(&buf, printer.Options{Minify: minify}))
	return buf.String()
}
