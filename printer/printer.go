package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/token"
)

// DefaultIndent is used when Options.Indent is empty.
const DefaultIndent = "  "

// Options configures the output of a Printer.
type Options struct {
	// Minify drops optional whitespace, newlines and the last semicolon
	// of a block, and prefers shorter value spellings.
	Minify bool

	// Indent is written once per nesting level after each newline.
	Indent string
}

// Mapping relates a position in the output to a position in the source.
type Mapping struct {
	Generated token.Pos
	Original  token.Pos
}

// Printer writes CSS text to an underlying writer.
//
// The first write error is kept and all later writes are dropped. Callers
// check Err once they are done.
type Printer struct {
	w        io.Writer
	opts     Options
	depth    int
	pos      token.Pos // position of the next byte written
	mappings []Mapping
	err      error
}

// New returns a new instance of Printer.
func New(w io.Writer, opts Options) *Printer {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	return &Printer{w: w, opts: opts}
}

// Minify returns true if the printer is in minify mode.
func (p *Printer) Minify() bool { return p.opts.Minify }

// Err returns the first error that occurred while writing.
func (p *Printer) Err() error { return p.err }

// Pos returns the output position of the next byte written.
func (p *Printer) Pos() token.Pos { return p.pos }

// WriteString writes s.
func (p *Printer) WriteString(s string) {
	if p.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
		return
	}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.pos.Line += strings.Count(s, "\n")
		p.pos.Char = utf8.RuneCountInString(s[i+1:])
	} else {
		p.pos.Char += utf8.RuneCountInString(s)
	}
}

// WriteByte writes a single byte. It returns the sticky error.
func (p *Printer) WriteByte(c byte) error {
	p.WriteString(string([]byte{c}))
	return p.err
}

// Whitespace writes a single space unless minifying.
func (p *Printer) Whitespace() {
	if !p.opts.Minify {
		p.WriteString(" ")
	}
}

// Delim writes a delimiter followed by a space unless minifying.
// If spaceBefore is set, a space is written before the delimiter too.
func (p *Printer) Delim(c byte, spaceBefore bool) {
	if p.opts.Minify {
		_ = p.WriteByte(c)
		return
	}
	if spaceBefore {
		p.WriteString(" ")
	}
	_ = p.WriteByte(c)
	p.WriteString(" ")
}

// Newline writes a newline and the current indentation unless minifying.
func (p *Printer) Newline() {
	if p.opts.Minify {
		return
	}
	p.WriteString("\n")
	p.WriteString(strings.Repeat(p.opts.Indent, p.depth))
}

// Indent increases the indentation level.
func (p *Printer) Indent() { p.depth++ }

// Dedent decreases the indentation level.
func (p *Printer) Dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// AddMapping records that the next byte written originates from pos.
func (p *Printer) AddMapping(pos token.Pos) {
	p.mappings = append(p.mappings, Mapping{Generated: p.pos, Original: pos})
}

// Mappings returns the source mappings recorded so far.
func (p *Printer) Mappings() []Mapping { return p.mappings }

// WriteIdent writes s as a CSS identifier, escaping as needed.
func (p *Printer) WriteIdent(s string) {
	p.WriteString(EscapeIdent(s))
}

// WriteQuoted writes s as a double-quoted CSS string.
func (p *Printer) WriteQuoted(s string) {
	p.WriteString(Quote(s))
}

// WriteNumber writes f in its shortest decimal form. When minifying,
// a leading zero before the decimal point is dropped.
func (p *Printer) WriteNumber(f float64) {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if p.opts.Minify {
		if strings.HasPrefix(s, "0.") {
			s = s[1:]
		} else if strings.HasPrefix(s, "-0.") {
			s = "-" + s[2:]
		}
	}
	p.WriteString(s)
}

// WriteHex writes v as uppercase hexadecimal digits.
func (p *Printer) WriteHex(v int) {
	p.WriteString(strings.ToUpper(strconv.FormatInt(int64(v), 16)))
}

// EscapeIdent returns s serialized as a CSS identifier.
func EscapeIdent(s string) string {
	if s == "" {
		return ""
	}

	var buf strings.Builder
	rest := s
	switch {
	case s == "-":
		return `\-`
	case strings.HasPrefix(s, "--"):
		buf.WriteString("--")
		rest = s[2:]
	case s[0] == '-':
		buf.WriteByte('-')
		rest = s[1:]
	}

	// A leading digit cannot start an identifier.
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		fmt.Fprintf(&buf, `\%x `, rest[0])
		rest = rest[1:]
	}

	for _, ch := range rest {
		switch {
		case ch == 0:
			buf.WriteRune('\uFFFD')
		case ch < 0x20 || ch == 0x7F:
			fmt.Fprintf(&buf, `\%x `, ch)
		case isNameRune(ch):
			buf.WriteRune(ch)
		default:
			buf.WriteByte('\\')
			buf.WriteRune(ch)
		}
	}
	return buf.String()
}

// Quote returns s as a double-quoted CSS string.
func Quote(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, ch := range s {
		switch {
		case ch == '"' || ch == '\\':
			buf.WriteByte('\\')
			buf.WriteRune(ch)
		case ch == 0:
			buf.WriteRune('\uFFFD')
		case ch < 0x20 || ch == 0x7F:
			fmt.Fprintf(&buf, `\%x `, ch)
		default:
			buf.WriteRune(ch)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// isNameRune returns true if ch can appear unescaped in an identifier.
func isNameRune(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_' || ch >= 0x80
}

// Node prints an AST node to w.
func Node(w io.Writer, n ast.Node) error {
	p := New(w, Options{})
	p.Node(n)
	return p.Err()
}

// Node prints an AST node. Whitespace runs are printed as a single space.
func (p *Printer) Node(n ast.Node) {
	switch n := n.(type) {
	case *ast.StyleSheet:
		if n == nil {
			return
		}
		p.Node(n.Rules)

	case ast.Rules:
		for i, r := range n {
			if i > 0 {
				p.Newline()
			}
			p.Node(r)
		}

	case *ast.AtRule:
		if n == nil {
			return
		}
		_ = p.WriteByte('@')
		p.WriteIdent(n.Name)
		p.Node(n.Prelude)
		if n.Block != nil {
			p.Node(n.Block)
		} else {
			_ = p.WriteByte(';')
		}

	case *ast.QualifiedRule:
		if n == nil {
			return
		}
		p.Node(n.Prelude)
		p.Node(n.Block)

	case *ast.Declaration:
		if n == nil {
			return
		}
		p.WriteIdent(n.Name)
		p.Delim(':', false)
		p.Node(n.Values)
		if n.Important {
			p.Whitespace()
			p.WriteString("!important")
		}

	case ast.Declarations:
		for i, v := range n {
			if i > 0 {
				p.Whitespace()
			}
			p.Node(v)
			if _, ok := v.(*ast.Declaration); ok {
				_ = p.WriteByte(';')
			}
		}

	case ast.ComponentValues:
		for _, v := range n {
			p.Node(v)
		}

	case *ast.SimpleBlock:
		if n == nil {
			return
		}
		start, end := blockDelims(n.Token)
		_ = p.WriteByte(start)
		p.Node(n.Values)
		_ = p.WriteByte(end)

	case *ast.Function:
		if n == nil {
			return
		}
		p.WriteIdent(n.Name)
		_ = p.WriteByte('(')
		p.Node(n.Values)
		_ = p.WriteByte(')')

	case *ast.Token:
		if n == nil || n.Token == nil {
			return
		}
		p.Token(n.Token)
	}
}

// Token prints a single token.
func (p *Printer) Token(tok token.Token) {
	switch tok := tok.(type) {
	case *token.Ident:
		p.WriteIdent(tok.Value)
	case *token.Function:
		p.WriteIdent(tok.Value)
		_ = p.WriteByte('(')
	case *token.AtKeyword:
		_ = p.WriteByte('@')
		p.WriteIdent(tok.Value)
	case *token.String:
		p.WriteQuoted(tok.Value)
	case *token.URL:
		p.WriteURL(tok.Value)
	case *token.Whitespace:
		_ = p.WriteByte(' ')
	default:
		p.WriteString(tok.String())
	}
}

// WriteURL writes a url() function, quoting the value only if required.
func (p *Printer) WriteURL(s string) {
	p.WriteString("url(")
	if needsQuotes(s) {
		p.WriteQuoted(s)
	} else {
		p.WriteString(s)
	}
	_ = p.WriteByte(')')
}

// needsQuotes returns true if s cannot be written as an unquoted url.
func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, ch := range s {
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n':
			return true
		case ch == '"' || ch == '\'' || ch == '(' || ch == ')' || ch == '\\':
			return true
		case ch < 0x20 || ch == 0x7F:
			return true
		}
	}
	return false
}

// blockDelims returns the opening and closing characters of a block.
func blockDelims(tok token.Token) (byte, byte) {
	switch tok.(type) {
	case *token.LBrack:
		return '[', ']'
	case *token.LParen:
		return '(', ')'
	}
	return '{', '}'
}
