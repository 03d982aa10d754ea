package parser

import (
	"strings"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/token"
)

// parser represents a CSS3 parser.
type parser struct {
	errors ErrorList
}

// ParseStyleSheet parses an input stream into a stylesheet.
func ParseStyleSheet(s Scanner) (*ast.StyleSheet, error) {
	var p parser
	ss := &ast.StyleSheet{}
	ss.Rules = p.consumeRules(s, true)
	return ss, p.error()
}

// ParseRules parses a list of rules.
func ParseRules(s Scanner) (ast.Rules, error) {
	var p parser
	a := p.consumeRules(s, false)
	return a, p.error()
}

// ParseRule parses a qualified rule or at-rule.
func ParseRule(s Scanner) (ast.Rule, error) {
	var p parser

	// Skip over initial whitespace.
	p.skipWhitespace(s)

	// If the current token is EOF, return syntax error.
	var r ast.Rule
	switch tok := s.Scan().(type) {
	case *token.EOF:
		return nil, Errorf(ErrUnexpectedEOF, tok.Pos, "unexpected EOF")
	case *token.AtKeyword:
		r = p.consumeAtRule(s)
	default:
		s.Unscan()
		qr := p.consumeQualifiedRule(s)
		if qr == nil {
			return nil, p.error()
		}
		r = qr
	}

	// Skip over trailing whitespace.
	p.skipWhitespace(s)

	// If we're not at EOF then return a syntax error.
	if tok := s.Scan(); !isEOF(tok) {
		return nil, Errorf(ErrExpectedEOF, tok.Position(), "expected EOF, got %q", tok.String())
	}

	return r, p.error()
}

// ParseDeclaration parses a name/value declaration.
func ParseDeclaration(s Scanner) (*ast.Declaration, error) {
	var p parser

	// Skip over initial whitespace.
	p.skipWhitespace(s)

	// If the next token is not an ident then return an error.
	if _, ok := s.Scan().(*token.Ident); !ok {
		p.errors = append(p.errors, Errorf(ErrUnexpectedToken, s.Current().Position(), "expected ident, got %q", s.Current().String()))
		return nil, p.error()
	}
	s.Unscan()

	// Consume a declaration. If nothing is returned, return syntax error.
	d := p.consumeDeclaration(s)
	return d, p.error()
}

// ParseDeclarations parses a list of declarations and at-rules.
// Invalid declarations are skipped and reported in the returned error.
func ParseDeclarations(s Scanner) (ast.Declarations, error) {
	var p parser
	a := p.consumeDeclarations(s)
	return a, p.error()
}

// ParseComponentValue parses a component value.
func ParseComponentValue(s Scanner) (ast.ComponentValue, error) {
	var p parser

	// Skip over initial whitespace.
	p.skipWhitespace(s)

	// If the next token is EOF then return an error.
	if tok, ok := s.Scan().(*token.EOF); ok {
		return nil, Errorf(ErrUnexpectedEOF, tok.Pos, "unexpected EOF")
	}
	s.Unscan()

	// Consume component value.
	v := p.consumeComponentValue(s)

	// Skip over any trailing whitespace.
	p.skipWhitespace(s)

	// If we're not at EOF then return a syntax error.
	if tok := s.Scan(); !isEOF(tok) {
		return nil, Errorf(ErrExpectedEOF, tok.Position(), "expected EOF, got %q", tok.String())
	}

	return v, nil
}

// ParseComponentValues parses a list of component values.
func ParseComponentValues(s Scanner) (ast.ComponentValues, error) {
	var a ast.ComponentValues

	// Repeatedly consume a component value until EOF.
	var p parser
	for {
		if isEOF(s.Scan()) {
			break
		}
		s.Unscan()

		// Otherwise append to list of component values.
		a = append(a, p.consumeComponentValue(s))
	}

	return a, nil
}

// error returns the error on the parser.
// Returns nil if there are no errors.
func (p *parser) error() error {
	return p.errors.Err()
}

// consumeRules consumes a list of rules from a token stream. (§5.4.1)
func (p *parser) consumeRules(s Scanner, toplevel bool) ast.Rules {
	var a ast.Rules
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Whitespace:
			// nop
		case *token.EOF:
			return a
		case *token.CDO, *token.CDC:
			if !toplevel {
				s.Unscan()
				if r := p.consumeQualifiedRule(s); r != nil {
					a = append(a, r)
				}
			}
		case *token.AtKeyword:
			if r := p.consumeAtRule(s); r != nil {
				a = append(a, r)
			}
		default:
			s.Unscan()
			if r := p.consumeQualifiedRule(s); r != nil {
				a = append(a, r)
			}
		}
	}
}

// consumeAtRule consumes a single at-rule. (§5.4.2)
// This assumes that the current token is the at-keyword.
func (p *parser) consumeAtRule(s Scanner) *ast.AtRule {
	r := &ast.AtRule{}

	// Set the name to the value of the current token.
	atkeyword := s.Current().(*token.AtKeyword)
	r.Name = atkeyword.Value
	r.Pos = atkeyword.Pos

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Semicolon, *token.EOF:
			return r
		case *token.LBrace:
			r.Block = p.consumeSimpleBlock(s)
			return r
		default:
			s.Unscan()
			r.Prelude = append(r.Prelude, p.consumeComponentValue(s))
		}
	}
}

// consumeQualifiedRule consumes a single qualified rule. (§5.4.3)
func (p *parser) consumeQualifiedRule(s Scanner) *ast.QualifiedRule {
	r := &ast.QualifiedRule{}

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok := tok.(type) {
		case *token.EOF:
			p.errors = append(p.errors, Errorf(ErrUnexpectedEOF, tok.Pos, "unexpected EOF"))
			return nil
		case *token.LBrace:
			r.Block = p.consumeSimpleBlock(s)
			return r
		default:
			s.Unscan()
			r.Prelude = append(r.Prelude, p.consumeComponentValue(s))
		}
	}
}

// consumeDeclarations consumes a list of declarations. (§5.4.4)
func (p *parser) consumeDeclarations(s Scanner) ast.Declarations {
	var a ast.Declarations

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok := tok.(type) {
		case *token.Whitespace, *token.Semicolon:
			// nop
		case *token.EOF:
			return a
		case *token.AtKeyword:
			a = append(a, p.consumeAtRule(s))
		case *token.Ident:
			// Generate a list of tokens up to the next semicolon or EOF.
			s.Unscan()
			tokens := p.consumeDeclarationTokens(s)

			// Consume declaration using temporary list of tokens.
			if d := p.consumeDeclaration(NewTokenScanner(tokens)); d != nil {
				a = append(a, d)
			}

		default:
			// Any other token is a syntax error.
			p.errors = append(p.errors, Errorf(ErrUnexpectedToken, tok.Position(), "unexpected %q", tok.String()))

			// Repeatedly consume a component values until semicolon or EOF.
			s.Unscan()
			p.skipComponentValues(s)
		}
	}
}

// consumeDeclaration consumes a single declaration. (§5.4.5)
func (p *parser) consumeDeclaration(s Scanner) *ast.Declaration {
	d := &ast.Declaration{}

	// The first token must be an ident.
	ident := s.Scan().(*token.Ident)
	d.Name = ident.Value
	d.Pos = ident.Pos

	// Skip over whitespace.
	p.skipWhitespace(s)

	// The next token must be a colon.
	if _, ok := s.Scan().(*token.Colon); !ok {
		p.errors = append(p.errors, Errorf(ErrUnexpectedToken, s.Current().Position(), "expected colon, got %q", s.Current().String()))
		return nil
	}

	// Skip over whitespace before the value.
	p.skipWhitespace(s)

	// Consume the declaration value until EOF.
	for {
		if isEOF(s.Scan()) {
			break
		}
		s.Unscan()
		d.Values = append(d.Values, p.consumeComponentValue(s))
	}

	// Check last two non-whitespace tokens for "!important".
	d.Values, d.Important = cleanImportantFlag(d.Values)

	return d
}

// Checks if the last two non-whitespace tokens are a case-insensitive "!important".
// If so, it removes them and returns the "important" flag set to true.
// Trailing whitespace is removed in any case.
func cleanImportantFlag(values ast.ComponentValues) (ast.ComponentValues, bool) {
	values = trimTrailingWhitespace(values)
	n := len(values)
	if n == 0 {
		return values, false
	}

	ident, ok := values[n-1].(*ast.Token)
	if !ok {
		return values, false
	}
	if tok, ok := ident.Token.(*token.Ident); !ok || !strings.EqualFold(tok.Value, "important") {
		return values, false
	}

	rest := trimTrailingWhitespace(values[:n-1])
	if len(rest) == 0 {
		return values, false
	}
	bang, ok := rest[len(rest)-1].(*ast.Token)
	if !ok {
		return values, false
	}
	if tok, ok := bang.Token.(*token.Delim); !ok || tok.Value != "!" {
		return values, false
	}
	return trimTrailingWhitespace(rest[:len(rest)-1]), true
}

// trimTrailingWhitespace removes whitespace tokens from the end of values.
func trimTrailingWhitespace(values ast.ComponentValues) ast.ComponentValues {
	for len(values) > 0 && isWhitespace(values[len(values)-1]) {
		values = values[:len(values)-1]
	}
	return values
}

// consumeComponentValue consumes a single component value. (§5.4.6)
func (p *parser) consumeComponentValue(s Scanner) ast.ComponentValue {
	tok := s.Scan()
	switch tok.(type) {
	case *token.LBrace, *token.LBrack, *token.LParen:
		return p.consumeSimpleBlock(s)
	case *token.Function:
		return p.consumeFunction(s)
	default:
		return &ast.Token{Token: tok}
	}
}

// consumeSimpleBlock consumes a simple block. (§5.4.7)
func (p *parser) consumeSimpleBlock(s Scanner) *ast.SimpleBlock {
	b := &ast.SimpleBlock{}

	// Set the block's associated token to the current token.
	b.Token = s.Current()

	for {
		tok := s.Scan()

		// If this token is EOF or the mirror of the starting token then return.
		switch tok.(type) {
		case *token.EOF:
			b.End = tok.Position()
			return b
		case *token.RBrack:
			if _, ok := b.Token.(*token.LBrack); ok {
				b.End = tok.Position()
				return b
			}
		case *token.RBrace:
			if _, ok := b.Token.(*token.LBrace); ok {
				b.End = tok.Position()
				return b
			}
		case *token.RParen:
			if _, ok := b.Token.(*token.LParen); ok {
				b.End = tok.Position()
				return b
			}
		}

		// Otherwise consume a component value.
		s.Unscan()
		b.Values = append(b.Values, p.consumeComponentValue(s))
	}
}

// consumeFunction consumes a function. (§5.4.8)
func (p *parser) consumeFunction(s Scanner) *ast.Function {
	f := &ast.Function{}

	// Set the name to the first token.
	fn := s.Current().(*token.Function)
	f.Name, f.Pos = fn.Value, fn.Pos

	for {
		tok := s.Scan()

		// If this token is EOF or the mirror of the starting token then return.
		switch tok.(type) {
		case *token.EOF, *token.RParen:
			f.End = tok.Position()
			return f
		}

		// Otherwise consume a component value.
		s.Unscan()
		f.Values = append(f.Values, p.consumeComponentValue(s))
	}
}

// consumeDeclarationTokens collects the tokens of all component values
// up to the next semicolon or EOF. Semicolons nested inside blocks and
// functions do not end the declaration.
func (p *parser) consumeDeclarationTokens(s Scanner) []token.Token {
	var a ast.ComponentValues
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Semicolon, *token.EOF:
			s.Unscan()
			return a.Tokens()
		}
		s.Unscan()
		a = append(a, p.consumeComponentValue(s))
	}
}

// skipComponentValues consumes all component values until a semicolon or EOF.
func (p *parser) skipComponentValues(s Scanner) {
	for {
		v := p.consumeComponentValue(s)
		if tok, ok := v.(*ast.Token); ok {
			switch tok.Token.(type) {
			case *token.Semicolon, *token.EOF:
				return
			}
		}
	}
}

// skipWhitespace skips over all contiguous whitespace tokes.
func (p *parser) skipWhitespace(s Scanner) {
	for {
		if _, ok := s.Scan().(*token.Whitespace); !ok {
			s.Unscan()
			return
		}
	}
}

// isEOF returns true if tok is the EOF token.
func isEOF(tok token.Token) bool {
	_, ok := tok.(*token.EOF)
	return ok
}

// Scanner represents a type that can retrieve the next token.
type Scanner interface {
	Current() token.Token
	Scan() token.Token
	Unscan()
}

// TokenScanner represents a scanner for a fixed list of tokens.
type TokenScanner struct {
	i      int
	tokens []token.Token
}

// NewTokenScanner returns a new instance of TokenScanner.
func NewTokenScanner(tokens []token.Token) *TokenScanner {
	return &TokenScanner{i: -1, tokens: tokens}
}

// Current returns the current token.
func (s *TokenScanner) Current() token.Token {
	if s.i < 0 || s.i >= len(s.tokens) {
		return &token.EOF{Pos: s.endPos()}
	}
	return s.tokens[s.i]
}

// Scan returns the next token.
func (s *TokenScanner) Scan() token.Token {
	if s.i < len(s.tokens) {
		s.i++
	}
	return s.Current()
}

// Unscan moves back one token.
func (s *TokenScanner) Unscan() {
	if s.i > -1 {
		s.i--
	}
}

// endPos returns the position reported for EOF: that of the last token.
func (s *TokenScanner) endPos() token.Pos {
	if len(s.tokens) == 0 {
		return token.Pos{}
	}
	return s.tokens[len(s.tokens)-1].Position()
}
