package token

import (
	"fmt"
	"strings"
)

// Token represents a lexical token.
type Token interface {
	token()
	Position() Pos
	String() string
}

func (_ *Ident) token()          {}
func (_ *Function) token()       {}
func (_ *AtKeyword) token()      {}
func (_ *Hash) token()           {}
func (_ *String) token()         {}
func (_ *BadString) token()      {}
func (_ *URL) token()            {}
func (_ *BadURL) token()         {}
func (_ *Delim) token()          {}
func (_ *Number) token()         {}
func (_ *Percentage) token()     {}
func (_ *Dimension) token()      {}
func (_ *UnicodeRange) token()   {}
func (_ *IncludeMatch) token()   {}
func (_ *DashMatch) token()      {}
func (_ *PrefixMatch) token()    {}
func (_ *SuffixMatch) token()    {}
func (_ *SubstringMatch) token() {}
func (_ *Column) token()         {}
func (_ *Whitespace) token()     {}
func (_ *CDO) token()            {}
func (_ *CDC) token()            {}
func (_ *Colon) token()          {}
func (_ *Semicolon) token()      {}
func (_ *Comma) token()          {}
func (_ *LBrack) token()         {}
func (_ *RBrack) token()         {}
func (_ *LParen) token()         {}
func (_ *RParen) token()         {}
func (_ *LBrace) token()         {}
func (_ *RBrace) token()         {}
func (_ *EOF) token()            {}

type Ident struct {
	Value string
	Pos   Pos
}

func (t *Ident) Position() Pos  { return t.Pos }
func (t *Ident) String() string { return t.Value }

type Function struct {
	Value string
	Pos   Pos
}

func (t *Function) Position() Pos  { return t.Pos }
func (t *Function) String() string { return t.Value + "(" }

type AtKeyword struct {
	Value string
	Pos   Pos
}

func (t *AtKeyword) Position() Pos  { return t.Pos }
func (t *AtKeyword) String() string { return "@" + t.Value }

// Hash represents a hash token. Type is either "id" or "unrestricted".
type Hash struct {
	Type  string
	Value string
	Pos   Pos
}

func (t *Hash) Position() Pos  { return t.Pos }
func (t *Hash) String() string { return "#" + t.Value }

// String represents a quoted string. Ending holds the quote character.
type String struct {
	Ending rune
	Value  string
	Pos    Pos
}

func (t *String) Position() Pos { return t.Pos }
func (t *String) String() string {
	q := t.Ending
	if q == 0 {
		q = '"'
	}
	return string(q) + t.Value + string(q)
}

type BadString struct {
	Pos Pos
}

func (t *BadString) Position() Pos  { return t.Pos }
func (t *BadString) String() string { return "''" }

type URL struct {
	Value string
	Pos   Pos
}

func (t *URL) Position() Pos  { return t.Pos }
func (t *URL) String() string { return "url(" + t.Value + ")" }

type BadURL struct {
	Pos Pos
}

func (t *BadURL) Position() Pos  { return t.Pos }
func (t *BadURL) String() string { return "url()" }

type Delim struct {
	Value string
	Pos   Pos
}

func (t *Delim) Position() Pos  { return t.Pos }
func (t *Delim) String() string { return t.Value }

// Number represents a numeric token. Type is either "integer" or "number".
type Number struct {
	Type   string
	Number float64
	Value  string
	Pos    Pos
}

func (t *Number) Position() Pos  { return t.Pos }
func (t *Number) String() string { return t.Value }

type Percentage struct {
	Type   string
	Number float64
	Value  string
	Pos    Pos
}

func (t *Percentage) Position() Pos  { return t.Pos }
func (t *Percentage) String() string { return t.Value }

type Dimension struct {
	Type   string
	Number float64
	Unit   string
	Value  string
	Pos    Pos
}

func (t *Dimension) Position() Pos  { return t.Pos }
func (t *Dimension) String() string { return t.Value }

// UnicodeRange represents an inclusive range of code points.
type UnicodeRange struct {
	Start int
	End   int
	Pos   Pos
}

func (t *UnicodeRange) Position() Pos { return t.Pos }
func (t *UnicodeRange) String() string {
	if t.Start == t.End {
		return fmt.Sprintf("U+%X", t.Start)
	}
	return fmt.Sprintf("U+%X-%X", t.Start, t.End)
}

type IncludeMatch struct {
	Pos Pos
}

func (t *IncludeMatch) Position() Pos  { return t.Pos }
func (t *IncludeMatch) String() string { return "~=" }

type DashMatch struct {
	Pos Pos
}

func (t *DashMatch) Position() Pos  { return t.Pos }
func (t *DashMatch) String() string { return "|=" }

type PrefixMatch struct {
	Pos Pos
}

func (t *PrefixMatch) Position() Pos  { return t.Pos }
func (t *PrefixMatch) String() string { return "^=" }

type SuffixMatch struct {
	Pos Pos
}

func (t *SuffixMatch) Position() Pos  { return t.Pos }
func (t *SuffixMatch) String() string { return "$=" }

type SubstringMatch struct {
	Pos Pos
}

func (t *SubstringMatch) Position() Pos  { return t.Pos }
func (t *SubstringMatch) String() string { return "*=" }

type Column struct {
	Pos Pos
}

func (t *Column) Position() Pos  { return t.Pos }
func (t *Column) String() string { return "||" }

type Whitespace struct {
	Value string
	Pos   Pos
}

func (t *Whitespace) Position() Pos  { return t.Pos }
func (t *Whitespace) String() string { return t.Value }

type CDO struct {
	Pos Pos
}

func (t *CDO) Position() Pos  { return t.Pos }
func (t *CDO) String() string { return "<!--" }

type CDC struct {
	Pos Pos
}

func (t *CDC) Position() Pos  { return t.Pos }
func (t *CDC) String() string { return "-->" }

type Colon struct {
	Pos Pos
}

func (t *Colon) Position() Pos  { return t.Pos }
func (t *Colon) String() string { return ":" }

type Semicolon struct {
	Pos Pos
}

func (t *Semicolon) Position() Pos  { return t.Pos }
func (t *Semicolon) String() string { return ";" }

type Comma struct {
	Pos Pos
}

func (t *Comma) Position() Pos  { return t.Pos }
func (t *Comma) String() string { return "," }

type LBrack struct {
	Pos Pos
}

func (t *LBrack) Position() Pos  { return t.Pos }
func (t *LBrack) String() string { return "[" }

type RBrack struct {
	Pos Pos
}

func (t *RBrack) Position() Pos  { return t.Pos }
func (t *RBrack) String() string { return "]" }

type LParen struct {
	Pos Pos
}

func (t *LParen) Position() Pos  { return t.Pos }
func (t *LParen) String() string { return "(" }

type RParen struct {
	Pos Pos
}

func (t *RParen) Position() Pos  { return t.Pos }
func (t *RParen) String() string { return ")" }

type LBrace struct {
	Pos Pos
}

func (t *LBrace) Position() Pos  { return t.Pos }
func (t *LBrace) String() string { return "{" }

type RBrace struct {
	Pos Pos
}

func (t *RBrace) Position() Pos  { return t.Pos }
func (t *RBrace) String() string { return "}" }

type EOF struct {
	Pos Pos
}

func (t *EOF) Position() Pos  { return t.Pos }
func (t *EOF) String() string { return "EOF" }

// Clone returns a copy of tok whose strings share no memory with the input.
func Clone(tok Token) Token {
	switch tok := tok.(type) {
	case *Ident:
		return &Ident{Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *Function:
		return &Function{Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *AtKeyword:
		return &AtKeyword{Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *Hash:
		return &Hash{Type: tok.Type, Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *String:
		return &String{Ending: tok.Ending, Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *URL:
		return &URL{Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *Delim:
		return &Delim{Value: strings.Clone(tok.Value), Pos: tok.Pos}
	case *Number:
		other := *tok
		other.Value = strings.Clone(tok.Value)
		return &other
	case *Percentage:
		other := *tok
		other.Value = strings.Clone(tok.Value)
		return &other
	case *Dimension:
		other := *tok
		other.Unit, other.Value = strings.Clone(tok.Unit), strings.Clone(tok.Value)
		return &other
	case *Whitespace:
		return &Whitespace{Value: strings.Clone(tok.Value), Pos: tok.Pos}
	}

	// The remaining tokens carry no strings and are never mutated.
	return tok
}

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}

// Before returns true if p comes strictly before q.
// Lines are compared first, then characters within the line.
func (p Pos) Before(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Char < q.Char)
}

// String returns "line:char" using one-based numbers for display.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Char+1)
}
