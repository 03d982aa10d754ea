package parser_test

import (
	"strings"
	"testing"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/scanner"
	"github.com/benbjohnson/fontface/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCursor returns a cursor over the component values of s.
func newCursor(t *testing.T, s string) *parser.Cursor {
	t.Helper()
	values, err := parser.ParseComponentValues(scanner.New(strings.NewReader(s)))
	require.NoError(t, err)
	return parser.NewCursor(values, token.Pos{Char: len(s)})
}

func TestCursor_Next(t *testing.T) {
	c := newCursor(t, "  foo  bar ")

	v, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, "foo", v.String())
	assert.False(t, c.IsExhausted())

	v, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, "bar", v.String())
	assert.True(t, c.IsExhausted())
	assert.NoError(t, c.ExpectExhausted())
	assert.Equal(t, token.Pos{Char: 11}, c.Position())

	_, err = c.Next()
	assert.ErrorIs(t, err, parser.ErrUnexpectedEOF)
}

func TestCursor_StateReset(t *testing.T) {
	c := newCursor(t, "a b c")
	state := c.State()

	_, err := c.ExpectIdent()
	require.NoError(t, err)
	_, err = c.ExpectIdent()
	require.NoError(t, err)

	c.Reset(state)
	ident, err := c.ExpectIdent()
	require.NoError(t, err)
	assert.Equal(t, "a", ident.Value)
	assert.Equal(t, " b c", c.Remaining().String())
	assert.True(t, c.IsExhausted())
}

func TestCursor_Expect(t *testing.T) {
	t.Run("IdentMatching", func(t *testing.T) {
		assert.NoError(t, newCursor(t, "LOCAL").ExpectIdentMatching("local"))
		err := newCursor(t, "remote").ExpectIdentMatching("local")
		assert.ErrorIs(t, err, parser.ErrUnexpectedToken)
		assert.EqualError(t, err, `expected local, got "remote"`)
	})

	t.Run("IdentOrString", func(t *testing.T) {
		c := newCursor(t, `foo "bar" 1`)
		s, err := c.ExpectIdentOrString()
		require.NoError(t, err)
		assert.Equal(t, "foo", s)
		s, err = c.ExpectIdentOrString()
		require.NoError(t, err)
		assert.Equal(t, "bar", s)
		_, err = c.ExpectIdentOrString()
		assert.EqualError(t, err, `expected ident or string, got "1"`)
	})

	t.Run("FunctionMatching", func(t *testing.T) {
		f, err := newCursor(t, "Format(woff)").ExpectFunctionMatching("format")
		require.NoError(t, err)
		assert.Equal(t, "woff", f.Values.String())

		_, err = newCursor(t, "tech(woff)").ExpectFunctionMatching("format")
		assert.EqualError(t, err, `expected format(), got "tech(woff)"`)

		_, err = newCursor(t, "{}").ExpectFunction()
		assert.ErrorIs(t, err, parser.ErrUnexpectedToken)
	})

	t.Run("Tokens", func(t *testing.T) {
		c := newCursor(t, "url(a) 1 50% 10deg ,")
		_, err := c.ExpectURL()
		assert.NoError(t, err)
		_, err = c.ExpectNumber()
		assert.NoError(t, err)
		_, err = c.ExpectPercentage()
		assert.NoError(t, err)
		d, err := c.ExpectDimension()
		require.NoError(t, err)
		assert.Equal(t, "deg", d.Unit)
		assert.NoError(t, c.ExpectComma())
		assert.True(t, c.IsExhausted())
	})

	t.Run("ExpectExhausted", func(t *testing.T) {
		c := newCursor(t, "a b")
		_, err := c.ExpectIdent()
		require.NoError(t, err)
		err = c.ExpectExhausted()
		assert.ErrorIs(t, err, parser.ErrExpectedEOF)
		assert.EqualError(t, err, `expected EOF, got "b"`)
	})
}

func TestCursor_ExpectUnicodeRange(t *testing.T) {
	for _, tt := range []struct {
		s   string
		err string
	}{
		{s: "U+0-7F"},
		{s: "u+10FFFF"},
		{s: "U+4??"},
		{s: "U+5A-41", err: "invalid unicode-range U+5A-41"},
		{s: "U+110000", err: "invalid unicode-range U+110000"},
		{s: "foo", err: `expected unicode-range, got "foo"`},
	} {
		t.Run(tt.s, func(t *testing.T) {
			_, err := newCursor(t, tt.s).ExpectUnicodeRange()
			if tt.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, parser.ErrUnexpectedToken)
			assert.EqualError(t, err, tt.err)
		})
	}
}

func TestTry(t *testing.T) {
	c := newCursor(t, "foo 12")

	_, err := parser.Try(c, (*parser.Cursor).ExpectNumber)
	assert.ErrorIs(t, err, parser.ErrUnexpectedToken)

	// The failed attempt leaves the cursor where it was.
	ident, err := parser.Try(c, (*parser.Cursor).ExpectIdent)
	require.NoError(t, err)
	assert.Equal(t, "foo", ident.Value)

	n, err := parser.Try(c, (*parser.Cursor).ExpectNumber)
	require.NoError(t, err)
	assert.Equal(t, float64(12), n.Number)
}

func TestParseEntirely(t *testing.T) {
	_, err := parser.ParseEntirely(newCursor(t, " foo "), (*parser.Cursor).ExpectIdent)
	assert.NoError(t, err)

	_, err = parser.ParseEntirely(newCursor(t, "foo bar"), (*parser.Cursor).ExpectIdent)
	assert.ErrorIs(t, err, parser.ErrExpectedEOF)
}

func TestParseCommaSeparated(t *testing.T) {
	names := func(c *parser.Cursor) ([]string, error) {
		idents, err := parser.ParseCommaSeparated(c, (*parser.Cursor).ExpectIdent)
		if err != nil {
			return nil, err
		}
		var a []string
		for _, ident := range idents {
			a = append(a, ident.Value)
		}
		return a, nil
	}

	for _, tt := range []struct {
		s    string
		want []string
		kind error
	}{
		{s: "a", want: []string{"a"}},
		{s: "a, b ,c", want: []string{"a", "b", "c"}},
		{s: "a,,b", kind: parser.ErrUnexpectedEOF},
		{s: "a,", kind: parser.ErrUnexpectedEOF},
		{s: "", kind: parser.ErrUnexpectedEOF},
		{s: "a b, c", kind: parser.ErrExpectedEOF},
		{s: "a, 1", kind: parser.ErrUnexpectedToken},
	} {
		t.Run(tt.s, func(t *testing.T) {
			got, err := names(newCursor(t, tt.s))
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Ensure that commas nested in functions do not split the outer list.
func TestParseCommaSeparated_Nested(t *testing.T) {
	c := newCursor(t, "f(a, b), g(c)")
	fns, err := parser.ParseCommaSeparated(c, (*parser.Cursor).ExpectFunction)
	require.NoError(t, err)
	require.Len(t, fns, 2)

	args, err := parser.ParseNestedBlock(fns[0], func(c *parser.Cursor) ([]*token.Ident, error) {
		return parser.ParseCommaSeparated(c, (*parser.Cursor).ExpectIdent)
	})
	require.NoError(t, err)
	assert.Len(t, args, 2)
}

func TestParseNestedBlock(t *testing.T) {
	c := newCursor(t, "local(Foo Bar)")
	f, err := c.ExpectFunction()
	require.NoError(t, err)

	_, err = parser.ParseNestedBlock(f, (*parser.Cursor).ExpectIdent)
	require.ErrorIs(t, err, parser.ErrExpectedEOF)

	c = newCursor(t, "local()")
	f, err = c.ExpectFunction()
	require.NoError(t, err)
	_, err = parser.ParseNestedBlock(f, (*parser.Cursor).ExpectIdent)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, f.End, perr.Pos)
	assert.Equal(t, token.Pos{Char: 6}, perr.Pos)
}

// Ensure that cursors do not modify the values they walk.
func TestCursor_ReadOnly(t *testing.T) {
	values := ast.ComponentValues{
		&ast.Token{Token: &token.Ident{Value: "a"}},
		&ast.Token{Token: &token.Whitespace{Value: " "}},
		&ast.Token{Token: &token.Ident{Value: "b"}},
	}
	before := values.String()

	c := parser.NewCursor(values, token.Pos{})
	_, _ = c.ExpectIdent()
	_ = c.Remaining()
	assert.Equal(t, before, values.String())
	assert.Len(t, values, 3)
}
