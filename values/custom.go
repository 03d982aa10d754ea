package values

import (
	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/token"
)

// CustomValue is a value kept as raw component values. It is used for
// descriptors which are unknown or do not match their grammar.
type CustomValue struct {
	Values ast.ComponentValues
}

// ParseCustomValue consumes the rest of the cursor. It never fails.
// Leading and trailing whitespace is dropped.
func ParseCustomValue(c *parser.Cursor) CustomValue {
	values := c.Remaining()
	for len(values) > 0 && isWhitespace(values[0]) {
		values = values[1:]
	}
	for len(values) > 0 && isWhitespace(values[len(values)-1]) {
		values = values[:len(values)-1]
	}
	return CustomValue{Values: values}
}

// ToCSS writes the values. Whitespace runs are written as one space; when
// minifying, whitespace next to a comma or slash is dropped.
func (v CustomValue) ToCSS(p *printer.Printer) {
	for i, val := range v.Values {
		if !isWhitespace(val) {
			p.Node(val)
			continue
		}
		if p.Minify() && (isSeparator(v.Values, i-1) || isSeparator(v.Values, i+1)) {
			continue
		}
		_ = p.WriteByte(' ')
	}
}

// String returns the raw values.
func (v CustomValue) String() string {
	return v.Values.String()
}

// Clone returns a copy of v that shares no memory with the input.
func (v CustomValue) Clone() CustomValue {
	return CustomValue{Values: v.Values.Clone()}
}

// isSeparator returns true if values[i] is a comma or a slash.
func isSeparator(values ast.ComponentValues, i int) bool {
	if i < 0 || i >= len(values) {
		return false
	}
	tok, ok := values[i].(*ast.Token)
	if !ok {
		return false
	}
	switch tok := tok.Token.(type) {
	case *token.Comma:
		return true
	case *token.Delim:
		return tok.Value == "/"
	}
	return false
}

func isWhitespace(v ast.ComponentValue) bool {
	tok, ok := v.(*ast.Token)
	if !ok {
		return false
	}
	_, ok = tok.Token.(*token.Whitespace)
	return ok
}
