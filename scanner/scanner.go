package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbjohnson/fontface/token"
)

// eof represents an EOF file byte.
var eof rune = -1

// Scanner implements a CSS3 standard compliant scanner.
//
// Input is decoded to UTF-8 before scanning, see Decode.
type Scanner struct {
	// Errors contains a list of all errors that occur during scanning.
	Errors []*Error

	rd   io.RuneReader
	next token.Pos // position of the next rune read from rd

	buf    [4]rune      // circular buffer for runes
	bufpos [4]token.Pos // circular buffer for position
	bufi   int          // circular buffer index
	bufn   int          // number of buffered characters

	tokbuf  [4]token.Token // circular buffer for tokens
	tokbufi int            // token buffer index
	tokbufn int            // number of unscanned tokens
}

// New returns a new instance of Scanner.
func New(r io.Reader) *Scanner {
	s := &Scanner{}
	rd, err := Decode(r)
	if err != nil {
		s.Errors = append(s.Errors, &Error{Message: err.Error()})
	}
	s.rd = bufio.NewReader(rd)
	return s
}

// Scan returns the next token. Tokens pushed back by Unscan are
// returned first.
func (s *Scanner) Scan() token.Token {
	if s.tokbufn > 0 {
		s.tokbufi = ((s.tokbufi + 1) % len(s.tokbuf))
		s.tokbufn--
		return s.tokbuf[s.tokbufi]
	}

	tok := s.scan()
	s.tokbufi = ((s.tokbufi + 1) % len(s.tokbuf))
	s.tokbuf[s.tokbufi] = tok
	return tok
}

// Unscan pushes the current token back. Up to three tokens may be pushed back.
func (s *Scanner) Unscan() {
	s.tokbufi = ((s.tokbufi + len(s.tokbuf) - 1) % len(s.tokbuf))
	s.tokbufn++
}

// Current returns the most recently scanned token.
func (s *Scanner) Current() token.Token {
	if tok := s.tokbuf[s.tokbufi]; tok != nil {
		return tok
	}
	return &token.EOF{}
}

func (s *Scanner) scan() token.Token {
	for {
		ch := s.read()
		pos := s.Pos()

		switch {
		case ch == eof:
			return &token.EOF{Pos: pos}
		case isWhitespace(ch):
			return s.scanWhitespace()
		case ch == '"', ch == '\'':
			return s.scanString()
		case ch == '#':
			return s.scanHash()
		case ch == '$':
			return s.scanMatch(ch, &token.SuffixMatch{Pos: pos})
		case ch == '*':
			return s.scanMatch(ch, &token.SubstringMatch{Pos: pos})
		case ch == '^':
			return s.scanMatch(ch, &token.PrefixMatch{Pos: pos})
		case ch == '~':
			return s.scanMatch(ch, &token.IncludeMatch{Pos: pos})
		case ch == '|':
			switch s.read() {
			case '=':
				return &token.DashMatch{Pos: pos}
			case '|':
				return &token.Column{Pos: pos}
			}
			s.unread(1)
			return &token.Delim{Value: "|", Pos: pos}
		case ch == ',':
			return &token.Comma{Pos: pos}
		case ch == ':':
			return &token.Colon{Pos: pos}
		case ch == ';':
			return &token.Semicolon{Pos: pos}
		case ch == '(':
			return &token.LParen{Pos: pos}
		case ch == ')':
			return &token.RParen{Pos: pos}
		case ch == '[':
			return &token.LBrack{Pos: pos}
		case ch == ']':
			return &token.RBrack{Pos: pos}
		case ch == '{':
			return &token.LBrace{Pos: pos}
		case ch == '}':
			return &token.RBrace{Pos: pos}
		case ch == '-':
			ch1, ch2 := s.read(), s.read()
			s.unread(2)
			switch {
			case startsNumber(ch, ch1, ch2):
				s.unread(1)
				return s.scanNumeric(pos)
			case ch1 == '-' && ch2 == '>':
				s.read()
				s.read()
				return &token.CDC{Pos: pos}
			case startsIdent(ch, ch1, ch2):
				return s.scanIdent()
			}
			return &token.Delim{Value: "-", Pos: pos}
		case ch == '+', ch == '.':
			ch1, ch2 := s.read(), s.read()
			s.unread(2)
			if startsNumber(ch, ch1, ch2) {
				s.unread(1)
				return s.scanNumeric(pos)
			}
			return &token.Delim{Value: string(ch), Pos: pos}
		case isDigit(ch):
			s.unread(1)
			return s.scanNumeric(pos)
		case ch == '/':
			if s.read() == '*' {
				s.scanComment()
				continue
			}
			s.unread(1)
			return &token.Delim{Value: "/", Pos: pos}
		case ch == '<':
			if s.scanPrefix("!--") {
				return &token.CDO{Pos: pos}
			}
			return &token.Delim{Value: "<", Pos: pos}
		case ch == '@':
			if s.read(); s.peekIdent() {
				return &token.AtKeyword{Value: s.scanName(), Pos: pos}
			}
			s.unread(1)
			return &token.Delim{Value: "@", Pos: pos}
		case ch == '\\':
			if s.peekEscape() {
				return s.scanIdent()
			}
			s.Errors = append(s.Errors, &Error{Message: "unescaped \\", Pos: pos})
			return &token.Delim{Value: "\\", Pos: pos}
		case ch == 'u', ch == 'U':
			// U+ followed by a hex digit or "?" starts a unicode range.
			ch1, ch2 := s.read(), s.read()
			if ch1 == '+' && (isHexDigit(ch2) || ch2 == '?') {
				s.unread(1)
				return s.scanUnicodeRange(pos)
			}
			s.unread(2)
			return s.scanIdent()
		case isNameStart(ch):
			return s.scanIdent()
		}
		return &token.Delim{Value: string(ch), Pos: pos}
	}
}

// scanMatch returns tok if ch is followed by "=", else ch as a delim.
func (s *Scanner) scanMatch(ch rune, tok token.Token) token.Token {
	if s.read() == '=' {
		return tok
	}
	s.unread(1)
	return &token.Delim{Value: string(ch), Pos: tok.Position()}
}

// scanPrefix consumes prefix if the input continues with it. Nothing is
// consumed otherwise.
func (s *Scanner) scanPrefix(prefix string) bool {
	for i, want := range prefix {
		if s.read() != want {
			s.unread(i + 1)
			return false
		}
	}
	return true
}

// scanWhitespace consumes a run of whitespace starting at the current code point.
func (s *Scanner) scanWhitespace() token.Token {
	pos := s.Pos()
	var buf bytes.Buffer
	_, _ = buf.WriteRune(s.curr())
	ch := s.read()
	for ; isWhitespace(ch); ch = s.read() {
		_, _ = buf.WriteRune(ch)
	}
	s.unread(1)
	return &token.Whitespace{Value: buf.String(), Pos: pos}
}

// scanString consumes a string whose opening quote is the current code
// point. EOF ends the string; an unescaped newline makes it a bad-string.
func (s *Scanner) scanString() token.Token {
	pos, ending := s.Pos(), s.curr()
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof || ch == ending {
			return &token.String{Value: buf.String(), Ending: ending, Pos: pos}
		} else if ch == '\n' {
			s.unread(1)
			return &token.BadString{Pos: pos}
		} else if ch == '\\' {
			if s.peekEscape() {
				_, _ = buf.WriteRune(s.scanEscape())
				continue
			}
			// An escaped newline continues the string on the next line.
			// An escaped EOF is dropped.
			if next := s.read(); next == eof {
				s.unread(1)
			}
		} else {
			_, _ = buf.WriteRune(ch)
		}
	}
}

// scanNumeric consumes a number, percentage or dimension. The number
// starts at the next code point.
func (s *Scanner) scanNumeric(pos token.Pos) token.Token {
	num, typ, repr := s.scanNumber()

	// dimension
	if s.read(); s.peekIdent() {
		unit := s.scanName()
		return &token.Dimension{Type: typ, Value: repr + unit, Number: num, Unit: unit, Pos: pos}
	}
	s.unread(1)

	// percentage
	if ch := s.read(); ch == '%' {
		return &token.Percentage{Type: typ, Value: repr + "%", Number: num, Pos: pos}
	}
	s.unread(1)

	return &token.Number{Type: typ, Value: repr, Number: num, Pos: pos}
}

// scanNumber consumes a number and returns its value, its type ("integer"
// or "number") and its text.
func (s *Scanner) scanNumber() (num float64, typ, repr string) {
	var buf bytes.Buffer
	typ = "integer"

	// sign
	if ch := s.read(); ch == '+' || ch == '-' {
		_, _ = buf.WriteRune(ch)
	} else {
		s.unread(1)
	}

	// integer part
	_, _ = buf.WriteString(s.scanDigits())

	// fraction
	if ch0 := s.read(); ch0 == '.' {
		if ch1 := s.read(); isDigit(ch1) {
			typ = "number"
			_, _ = buf.WriteRune(ch0)
			_, _ = buf.WriteRune(ch1)
			_, _ = buf.WriteString(s.scanDigits())
		} else {
			s.unread(2)
		}
	} else {
		s.unread(1)
	}

	// exponent
	if ch0 := s.read(); ch0 == 'e' || ch0 == 'E' {
		if ch1 := s.read(); ch1 == '+' || ch1 == '-' {
			if ch2 := s.read(); isDigit(ch2) {
				typ = "number"
				_, _ = buf.WriteRune(ch0)
				_, _ = buf.WriteRune(ch1)
				_, _ = buf.WriteRune(ch2)
				_, _ = buf.WriteString(s.scanDigits())
			} else {
				s.unread(3)
			}
		} else if isDigit(ch1) {
			typ = "number"
			_, _ = buf.WriteRune(ch0)
			_, _ = buf.WriteRune(ch1)
			_, _ = buf.WriteString(s.scanDigits())
		} else {
			s.unread(2)
		}
	} else {
		s.unread(1)
	}

	repr = buf.String()
	num, _ = strconv.ParseFloat(repr, 64)
	return num, typ, repr
}

// scanDigits consumes digits and returns them.
func (s *Scanner) scanDigits() string {
	var buf bytes.Buffer
	ch := s.read()
	for ; isDigit(ch); ch = s.read() {
		_, _ = buf.WriteRune(ch)
	}
	s.unread(1)
	return buf.String()
}

// scanComment skips a comment up to and including "*/". The opening "/*"
// has been consumed.
func (s *Scanner) scanComment() {
	for ch := s.read(); ch != eof; ch = s.read() {
		if ch != '*' {
			continue
		}
		if s.read() == '/' {
			return
		}
		s.unread(1)
	}
}

// scanHash consumes "#" followed by a name. The hash is of type "id" when
// the name is an identifier. A lone "#" is a delim.
func (s *Scanner) scanHash() token.Token {
	pos := s.Pos()

	ch := s.read()
	if !isName(ch) && !s.peekEscape() {
		s.unread(1)
		return &token.Delim{Value: "#", Pos: pos}
	}
	typ := "unrestricted"
	if s.peekIdent() {
		typ = "id"
	}
	return &token.Hash{Value: s.scanName(), Type: typ, Pos: pos}
}

// scanName consumes name code points and escapes, starting with the
// current code point.
func (s *Scanner) scanName() string {
	var buf bytes.Buffer
	s.unread(1)
	for {
		if ch := s.read(); isName(ch) {
			_, _ = buf.WriteRune(ch)
		} else if s.peekEscape() {
			_, _ = buf.WriteRune(s.scanEscape())
		} else {
			s.unread(1)
			return buf.String()
		}
	}
}

// scanIdent consumes an ident, function, url or bad-url token.
func (s *Scanner) scanIdent() token.Token {
	pos := s.Pos()
	v := s.scanName()

	// A left parenthesis turns the name into a function or, for "url",
	// into a url token.
	if ch := s.read(); ch == '(' {
		if strings.EqualFold(v, "url") {
			return s.scanURL(pos)
		}
		return &token.Function{Value: v, Pos: pos}
	}
	s.unread(1)

	return &token.Ident{Value: v, Pos: pos}
}

// scanURL consumes the rest of an unquoted "url(" function as a url or
// bad-url token. A quoted url is a url token as well.
func (s *Scanner) scanURL(pos token.Pos) token.Token {
	if ch := s.read(); isWhitespace(ch) {
		s.scanWhitespace()
	} else {
		s.unread(1)
	}

	if ch := s.read(); ch == eof {
		return &token.URL{Pos: pos}
	} else if ch == '"' || ch == '\'' {
		// url("...") takes the value of the string.
		var value string
		switch tok := s.scanString().(type) {
		case *token.String:
			value = tok.Value
		case *token.BadString:
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		}

		if ch := s.read(); isWhitespace(ch) {
			s.scanWhitespace()
		} else {
			s.unread(1)
		}

		if ch := s.read(); ch != ')' && ch != eof {
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		}
		return &token.URL{Value: value, Pos: pos}
	}
	s.unread(1)

	// Unquoted value up to ")" or whitespace.
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == ')' || ch == eof {
			return &token.URL{Value: buf.String(), Pos: pos}
		} else if isWhitespace(ch) {
			s.scanWhitespace()
			if ch0 := s.read(); ch0 == ')' || ch0 == eof {
				return &token.URL{Value: buf.String(), Pos: pos}
			}
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		} else if ch == '"' || ch == '\'' || ch == '(' || isNonPrintable(ch) {
			s.Errors = append(s.Errors, &Error{Message: fmt.Sprintf("invalid url code point: %c (%U)", ch, ch), Pos: pos})
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		} else if ch == '\\' {
			if s.peekEscape() {
				_, _ = buf.WriteRune(s.scanEscape())
			} else {
				s.Errors = append(s.Errors, &Error{Message: "unescaped \\ in url", Pos: s.Pos()})
				s.scanBadURL()
				return &token.BadURL{Pos: pos}
			}
		} else {
			_, _ = buf.WriteRune(ch)
		}
	}
}

// scanBadURL skips the rest of a malformed url up to ")" or EOF.
func (s *Scanner) scanBadURL() {
	for {
		ch := s.read()
		if ch == ')' || ch == eof {
			return
		} else if s.peekEscape() {
			s.scanEscape()
		}
	}
}

// scanUnicodeRange consumes the digits of a unicode-range token after "U+".
// Wildcards stand for 0 in the start and F in the end of the range.
func (s *Scanner) scanUnicodeRange(pos token.Pos) token.Token {
	digits := s.scanHexDigits(6)

	// Wildcards fill up to six digits in total.
	wildcards := 0
	for len(digits)+wildcards < 6 {
		if s.read() != '?' {
			s.unread(1)
			break
		}
		wildcards++
	}
	if wildcards > 0 {
		start := parseHex(digits + strings.Repeat("0", wildcards))
		end := parseHex(digits + strings.Repeat("F", wildcards))
		return &token.UnicodeRange{Start: start, End: end, Pos: pos}
	}

	start := parseHex(digits)
	if ch1, ch2 := s.read(), s.read(); ch1 == '-' && isHexDigit(ch2) {
		s.unread(1)
		return &token.UnicodeRange{Start: start, End: parseHex(s.scanHexDigits(6)), Pos: pos}
	}
	s.unread(2)
	return &token.UnicodeRange{Start: start, End: start, Pos: pos}
}

// scanHexDigits consumes up to n hex digits and returns them.
func (s *Scanner) scanHexDigits(n int) string {
	var buf bytes.Buffer
	for buf.Len() < n {
		ch := s.read()
		if !isHexDigit(ch) {
			s.unread(1)
			break
		}
		_, _ = buf.WriteRune(ch)
	}
	return buf.String()
}

// parseHex returns the value of a string of at most six hex digits.
func parseHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 32)
	return int(v)
}

// scanEscape consumes the escape following the current backslash and
// returns the code point it stands for.
func (s *Scanner) scanEscape() rune {
	var buf bytes.Buffer
	ch := s.read()
	if isHexDigit(ch) {
		_, _ = buf.WriteRune(ch)
		for i := 0; i < 5; i++ {
			if next := s.read(); next == eof {
				s.unread(1)
				break
			} else if isWhitespace(next) {
				break
			} else if !isHexDigit(next) {
				s.unread(1)
				break
			} else {
				_, _ = buf.WriteRune(next)
			}
		}
		// A single whitespace after six hex digits is consumed as well.
		if buf.Len() == 6 {
			if next := s.read(); !isWhitespace(next) {
				s.unread(1)
			}
		}
		v, _ := strconv.ParseInt(buf.String(), 16, 0)
		if v == 0 || (v >= 0xD800 && v <= 0xDFFF) || v > 0x10FFFF {
			return '\uFFFD'
		}
		return rune(v)
	} else if ch == eof {
		s.unread(1)
		return '\uFFFD'
	}
	return ch
}

// peekEscape returns true if the current and next code points are a valid escape.
func (s *Scanner) peekEscape() bool {
	if s.curr() != '\\' {
		return false
	}

	next := s.read()
	s.unread(1)
	return next != '\n'
}

// peekIdent returns true if an identifier starts at the current code point.
func (s *Scanner) peekIdent() bool {
	ch0 := s.curr()
	ch1, ch2 := s.read(), s.read()
	s.unread(2)
	return startsIdent(ch0, ch1, ch2)
}

// read returns the next code point, from the unread buffer first. The
// input is already preprocessed (see Decode). EOF is returned as eof.
func (s *Scanner) read() rune {
	if s.bufn > 0 {
		s.bufi = ((s.bufi + 1) % len(s.buf))
		s.bufn--
		return s.buf[s.bufi]
	}

	pos := s.next
	ch, _, err := s.rd.ReadRune()
	if err != nil {
		ch = eof
	} else if ch == '\n' {
		s.next.Line++
		s.next.Char = 0
	} else {
		s.next.Char++
	}

	s.bufi = ((s.bufi + 1) % len(s.buf))
	s.buf[s.bufi] = ch
	s.bufpos[s.bufi] = pos
	return ch
}

// unread pushes the last n code points back.
func (s *Scanner) unread(n int) {
	for i := 0; i < n; i++ {
		s.bufi = ((s.bufi + len(s.buf) - 1) % len(s.buf))
		s.bufn++
	}
}

// curr returns the current code point.
func (s *Scanner) curr() rune {
	return s.buf[s.bufi]
}

// Pos returns the position of the current code point.
func (s *Scanner) Pos() token.Pos {
	return s.bufpos[s.bufi]
}

// startsIdent returns true if an identifier starts with ch0, ch1, ch2.
func startsIdent(ch0, ch1, ch2 rune) bool {
	switch {
	case ch0 == '-':
		return isNameStart(ch1) || ch1 == '-' || isValidEscape(ch1, ch2)
	case isNameStart(ch0):
		return true
	case ch0 == '\\':
		return isValidEscape(ch0, ch1)
	}
	return false
}

// startsNumber returns true if a number starts with ch0, ch1, ch2.
func startsNumber(ch0, ch1, ch2 rune) bool {
	switch {
	case ch0 == '+' || ch0 == '-':
		return isDigit(ch1) || (ch1 == '.' && isDigit(ch2))
	case ch0 == '.':
		return isDigit(ch1)
	}
	return isDigit(ch0)
}

// isValidEscape returns true if ch0 is a backslash not followed by a newline.
func isValidEscape(ch0, ch1 rune) bool {
	return ch0 == '\\' && ch1 != '\n' && ch1 != eof
}

// Code point classes of the CSS syntax. Input is preprocessed, so
// newline is always '\n'.

func isWhitespace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' }
func isLetter(ch rune) bool     { return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
func isNonASCII(ch rune) bool   { return ch >= 0x80 }
func isNameStart(ch rune) bool  { return isLetter(ch) || isNonASCII(ch) || ch == '_' }
func isName(ch rune) bool       { return isNameStart(ch) || isDigit(ch) || ch == '-' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isNonPrintable(ch rune) bool {
	return 0 <= ch && ch <= 0x08 || ch == 0x0B || 0x0E <= ch && ch <= 0x1F || ch == 0x7F
}

// Error is a recoverable scan error. The scanner continues after it.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	return e.Message
}
