package scanner_test

import (
	"flag"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/benbjohnson/fontface/scanner"
	"github.com/benbjohnson/fontface/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testiter sets the table test iteration to run in isolation.
var testiter = flag.Int("test.iter", -1, "table test number")

// Ensure than the scanner returns appropriate tokens and literals.
func TestScanner_Scan(t *testing.T) {
	var tests = []struct {
		s   string
		tok token.Token
		err string
	}{
		{s: ``, tok: &token.EOF{}},
		{s: `   `, tok: &token.Whitespace{Value: `   `}},

		{s: `""`, tok: &token.String{Value: ``, Ending: '"'}},
		{s: `"`, tok: &token.String{Value: ``, Ending: '"'}},
		{s: `"foo`, tok: &token.String{Value: `foo`, Ending: '"'}},
		{s: `"hello world"`, tok: &token.String{Value: `hello world`, Ending: '"'}},
		{s: `'hello world'`, tok: &token.String{Value: `hello world`, Ending: '\''}},
		{s: "'foo\\\nbar'", tok: &token.String{Value: "foobar", Ending: '\''}},
		{s: `'foo\ bar'`, tok: &token.String{Value: `foo bar`, Ending: '\''}},
		{s: `'foo\\bar'`, tok: &token.String{Value: `foo\bar`, Ending: '\''}},
		{s: `'frosty the \2603'`, tok: &token.String{Value: `frosty the ☃`, Ending: '\''}},
		{s: "'foo\nbar'", tok: &token.BadString{}},

		{s: `0`, tok: &token.Number{Type: "integer", Value: `0`, Number: 0.0}},
		{s: `1.0`, tok: &token.Number{Type: "number", Value: `1.0`, Number: 1.0}},
		{s: `1.123`, tok: &token.Number{Type: "number", Value: `1.123`, Number: 1.123}},
		{s: `.001`, tok: &token.Number{Type: "number", Value: `.001`, Number: 0.001}},
		{s: `-.001`, tok: &token.Number{Type: "number", Value: `-.001`, Number: -0.001}},
		{s: `10000`, tok: &token.Number{Type: "integer", Value: `10000`, Number: 10000}},
		{s: `10000.`, tok: &token.Number{Type: "integer", Value: `10000`, Number: 10000}},
		{s: `100E`, tok: &token.Dimension{Type: "integer", Value: `100E`, Number: 100, Unit: "E"}},
		{s: `1E2`, tok: &token.Number{Type: "number", Value: `1E2`, Number: 100}},
		{s: `1E25`, tok: &token.Number{Type: "number", Value: `1E25`, Number: 1e25}},
		{s: `1.5E2`, tok: &token.Number{Type: "number", Value: `1.5E2`, Number: 150}},
		{s: `1.5E+2`, tok: &token.Number{Type: "number", Value: `1.5E+2`, Number: 150}},
		{s: `1.5E-2`, tok: &token.Number{Type: "number", Value: `1.5E-2`, Number: 0.015}},
		{s: `+100`, tok: &token.Number{Type: "integer", Value: `+100`, Number: 100}},
		{s: `+1.0`, tok: &token.Number{Type: "number", Value: `+1.0`, Number: 1}},
		{s: `-100`, tok: &token.Number{Type: "integer", Value: `-100`, Number: -100}},
		{s: `-1.0`, tok: &token.Number{Type: "number", Value: `-1.0`, Number: -1}},
		{s: `-`, tok: &token.Delim{Value: `-`}},
		{s: `+`, tok: &token.Delim{Value: `+`}},
		{s: `.`, tok: &token.Delim{Value: `.`}},

		{s: `url`, tok: &token.Ident{Value: `url`}},
		{s: `myIdent`, tok: &token.Ident{Value: `myIdent`}},
		{s: `my\2603`, tok: &token.Ident{Value: `my☃`}},
		{s: `-foo`, tok: &token.Ident{Value: `-foo`}},
		{s: `--foo`, tok: &token.Ident{Value: `--foo`}},

		{s: `url(`, tok: &token.URL{Value: ``}},
		{s: `url(foo`, tok: &token.URL{Value: `foo`}},
		{s: `url(http://foo.com#bar?baz=bat)`, tok: &token.URL{Value: `http://foo.com#bar?baz=bat`}},
		{s: `url(  foo`, tok: &token.URL{Value: `foo`}},
		{s: `url(  foo  `, tok: &token.URL{Value: `foo`}},
		{s: `url(  \2603  `, tok: &token.URL{Value: `☃`}},
		{s: `url(foo)`, tok: &token.URL{Value: `foo`}},
		{s: `URL(foo)`, tok: &token.URL{Value: `foo`}},
		{s: `url("http://foo.com#bar?baz=bat")`, tok: &token.URL{Value: `http://foo.com#bar?baz=bat`}},
		{s: `url(  "foo"  )`, tok: &token.URL{Value: `foo`}},
		{s: `url("foo"  `, tok: &token.URL{Value: `foo`}},
		{s: `url("foo")`, tok: &token.URL{Value: `foo`}},
		{s: `url("foo"x`, tok: &token.BadURL{}},
		{s: `url("foo" x`, tok: &token.BadURL{}},
		{s: `url(foo"`, tok: &token.BadURL{}, err: `invalid url code point: " (U+0022)`},
		{s: `url(foo'`, tok: &token.BadURL{}, err: `invalid url code point: ' (U+0027)`},
		{s: `url(foo(`, tok: &token.BadURL{}, err: `invalid url code point: ( (U+0028)`},
		{s: "url(foo\001", tok: &token.BadURL{}, err: "invalid url code point: \001 (U+0001)"},

		{s: `myFunc(`, tok: &token.Function{Value: `myFunc`}},
		{s: `format("woff2")`, tok: &token.Function{Value: `format`}},

		{s: "u+A", tok: &token.UnicodeRange{Start: 10, End: 10}},
		{s: "U+41", tok: &token.UnicodeRange{Start: 0x41, End: 0x41}},
		{s: "u+00000A", tok: &token.UnicodeRange{Start: 10, End: 10}},
		{s: "u+1?", tok: &token.UnicodeRange{Start: 16, End: 31}},
		{s: "U+??", tok: &token.UnicodeRange{Start: 0, End: 0xFF}},
		{s: "U+4??", tok: &token.UnicodeRange{Start: 0x400, End: 0x4FF}},
		{s: "u+02-04", tok: &token.UnicodeRange{Start: 2, End: 4}},
		{s: "U+0-7F", tok: &token.UnicodeRange{Start: 0, End: 0x7F}},
		{s: "U+41-5A", tok: &token.UnicodeRange{Start: 0x41, End: 0x5A}},
		{s: "U+0-10FFFF", tok: &token.UnicodeRange{Start: 0, End: 0x10FFFF}},

		{s: `100em`, tok: &token.Dimension{Type: "integer", Value: `100em`, Number: 100, Unit: "em"}},
		{s: `-1.2in`, tok: &token.Dimension{Type: "number", Value: `-1.2in`, Number: -1.2, Unit: "in"}},
		{s: `14deg`, tok: &token.Dimension{Type: "integer", Value: `14deg`, Number: 14, Unit: "deg"}},

		{s: `100%`, tok: &token.Percentage{Type: "integer", Value: `100%`, Number: 100}},
		{s: `-0.2%`, tok: &token.Percentage{Type: "number", Value: `-0.2%`, Number: -0.2}},

		{s: `#foo`, tok: &token.Hash{Value: `foo`, Type: "id"}},
		{s: `#foo\2603 bar`, tok: &token.Hash{Value: `foo☃bar`, Type: "id"}},
		{s: `#-x`, tok: &token.Hash{Value: `-x`, Type: "id"}},
		{s: `#_x`, tok: &token.Hash{Value: `_x`, Type: "id"}},
		{s: `#18273`, tok: &token.Hash{Value: `18273`, Type: "unrestricted"}},
		{s: `#`, tok: &token.Delim{Value: `#`}},

		{s: `/`, tok: &token.Delim{Value: `/`}},
		{s: `/* this is * a comment */#`, tok: &token.Delim{Value: "#", Pos: token.Pos{Char: 25, Line: 0}}},

		{s: `<`, tok: &token.Delim{Value: "<"}},
		{s: `<!`, tok: &token.Delim{Value: "<"}},
		{s: `<!-`, tok: &token.Delim{Value: "<"}},
		{s: `<!--`, tok: &token.CDO{}},
		{s: `-->`, tok: &token.CDC{}},

		{s: `@`, tok: &token.Delim{Value: "@"}},
		{s: `@foo`, tok: &token.AtKeyword{Value: "foo"}},
		{s: `@font-face`, tok: &token.AtKeyword{Value: "font-face"}},

		{s: `\2603`, tok: &token.Ident{Value: "☃"}},
		{s: `\ `, tok: &token.Ident{Value: " "}},
		{s: `\0`, tok: &token.Ident{Value: "\uFFFD"}},
		{s: `\110000`, tok: &token.Ident{Value: "\uFFFD"}},
		{s: "\\\n", tok: &token.Delim{Value: `\`}, err: "unescaped \\"},

		{s: `$=`, tok: &token.SuffixMatch{}},
		{s: `$X`, tok: &token.Delim{Value: `$`}},
		{s: `*=`, tok: &token.SubstringMatch{}},
		{s: `*`, tok: &token.Delim{Value: `*`}},
		{s: `^=`, tok: &token.PrefixMatch{}},
		{s: `^X`, tok: &token.Delim{Value: `^`}},
		{s: `~=`, tok: &token.IncludeMatch{}},
		{s: `~`, tok: &token.Delim{Value: `~`}},
		{s: `|=`, tok: &token.DashMatch{}},
		{s: `||`, tok: &token.Column{}},
		{s: `|X`, tok: &token.Delim{Value: `|`}},

		{s: `,`, tok: &token.Comma{}},
		{s: `:`, tok: &token.Colon{}},
		{s: `;`, tok: &token.Semicolon{}},
		{s: `(`, tok: &token.LParen{}},
		{s: `)`, tok: &token.RParen{}},
		{s: `[`, tok: &token.LBrack{}},
		{s: `]`, tok: &token.RBrack{}},
		{s: `{`, tok: &token.LBrace{}},
		{s: `}`, tok: &token.RBrace{}},
	}

	for i, tt := range tests {
		// Skips over tests if test.iter is set.
		if *testiter > -1 && *testiter != i {
			continue
		}

		// Scan token.
		s := scanner.New(strings.NewReader(tt.s))
		tok := s.Scan()

		// Verify properties.
		if !reflect.DeepEqual(tok, tt.tok) {
			t.Errorf("%d. <%q> tok: => got %#v, want %#v", i, tt.s, tok, tt.tok)
		} else if tt.err != "" {
			if len(s.Errors) == 0 {
				t.Errorf("%d. <%q> error expected", i, tt.s)
			} else if len(s.Errors) > 1 {
				t.Errorf("%d. <%q> too many errors occurred", i, tt.s)
			} else if s.Errors[0].Message != tt.err {
				t.Errorf("%d. <%q> error: got %q, want %q", i, tt.s, s.Errors[0].Message, tt.err)
			}
		} else if tt.err == "" && len(s.Errors) > 0 {
			t.Errorf("%d. <%q> unexpected error: %q", i, tt.s, s.Errors[0].Message)
		}
	}
}

// Ensure that token positions follow lines and characters.
func TestScanner_Scan_Pos(t *testing.T) {
	s := scanner.New(strings.NewReader("src:\r\n  url(a)\fformat(woff)"))

	var got []token.Pos
	for {
		tok := s.Scan()
		if _, ok := tok.(*token.EOF); ok {
			break
		}
		got = append(got, tok.Position())
	}

	assert.Equal(t, []token.Pos{
		{Line: 0, Char: 0},  // src
		{Line: 0, Char: 3},  // :
		{Line: 0, Char: 4},  // \n and indentation
		{Line: 1, Char: 2},  // url(a)
		{Line: 1, Char: 8},  // \f
		{Line: 2, Char: 0},  // format(
		{Line: 2, Char: 7},  // woff
		{Line: 2, Char: 11}, // )
	}, got)
}

// Ensure that tokens can be pushed back onto the scanner.
func TestScanner_Unscan(t *testing.T) {
	s := scanner.New(strings.NewReader(`foo bar`))

	foo := s.Scan()
	ws := s.Scan()
	assert.Equal(t, ws, s.Current())

	s.Unscan()
	s.Unscan()
	assert.Equal(t, foo, s.Scan())
	assert.Equal(t, ws, s.Scan())
	assert.Equal(t, &token.Ident{Value: "bar", Pos: token.Pos{Char: 4}}, s.Scan())
	assert.Equal(t, &token.EOF{Pos: token.Pos{Char: 7}}, s.Scan())
	assert.Equal(t, &token.EOF{Pos: token.Pos{Char: 7}}, s.Scan())
}

// Ensure that input is decoded and preprocessed before scanning.
func TestDecode(t *testing.T) {
	var tests = []struct {
		name string
		in   string
		out  string
		err  string
	}{
		{name: "utf-8", in: "a{}", out: "a{}"},
		{name: "utf-8 bom", in: "\xEF\xBB\xBFa", out: "a"},
		{name: "utf-16le bom", in: "\xFF\xFEa\x00", out: "a"},
		{name: "utf-16be bom", in: "\xFE\xFF\x00a", out: "a"},
		{name: "charset", in: "@charset \"iso-8859-1\"; \xE9", out: "@charset \"iso-8859-1\"; é"},
		{name: "charset utf-16", in: "@charset \"utf-16le\"; é", out: "@charset \"utf-16le\"; é"},
		{name: "bom wins", in: "\xEF\xBB\xBF@charset \"iso-8859-1\"; é", out: "@charset \"iso-8859-1\"; é"},
		{name: "unknown charset", in: "@charset \"bogus\"; a", out: "@charset \"bogus\"; a", err: `unknown charset "bogus"`},
		{name: "newlines", in: "a\r\nb\rc\fd", out: "a\nb\nc\nd"},
		{name: "null", in: "a\x00b", out: "a\uFFFDb"},
		{name: "trailing cr", in: "a\r", out: "a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := scanner.Decode(strings.NewReader(tt.in))
			if tt.err != "" {
				require.EqualError(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			b, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.out, string(b))
		})
	}
}

// Ensure that an unknown charset is reported as a scanner error.
func TestScanner_UnknownCharset(t *testing.T) {
	s := scanner.New(strings.NewReader(`@charset "bogus";`))
	assert.Equal(t, &token.AtKeyword{Value: "charset"}, s.Scan())
	require.Len(t, s.Errors, 1)
	assert.Equal(t, `unknown charset "bogus"`, s.Errors[0].Message)
}
