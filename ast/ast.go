package ast

import (
	"bytes"
	"strings"

	"github.com/benbjohnson/fontface/token"
)

// Node represents a node in the CSS3 abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *StyleSheet) node()     {}
func (_ Rules) node()           {}
func (_ *AtRule) node()         {}
func (_ *QualifiedRule) node()  {}
func (_ Declarations) node()    {}
func (_ *Declaration) node()    {}
func (_ ComponentValues) node() {}
func (_ *SimpleBlock) node()    {}
func (_ *Function) node()       {}
func (_ *Token) node()          {}

// StyleSheet represents a top-level CSS3 stylesheet.
type StyleSheet struct {
	Rules Rules
}

func (s *StyleSheet) String() string {
	var buf bytes.Buffer
	for _, r := range s.Rules {
		buf.WriteString(r.String())
		buf.WriteString("\n")
	}
	return buf.String()
}

// Rules represents a list of rules.
type Rules []Rule

func (a Rules) String() string {
	var buf bytes.Buffer
	for i, r := range a {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(r.String())
	}
	return buf.String()
}

// Rule represents a qualified rule or at-rule.
type Rule interface {
	Node
	rule()
}

func (_ *AtRule) rule()        {}
func (_ *QualifiedRule) rule() {}

// AtRule represents a rule starting with an "@" symbol.
// Pos is the position of the at-keyword.
type AtRule struct {
	Name    string
	Prelude ComponentValues
	Block   *SimpleBlock
	Pos     token.Pos
}

func (r *AtRule) String() string {
	var buf bytes.Buffer
	buf.WriteString("@" + r.Name)
	buf.WriteString(r.Prelude.String())
	if r.Block != nil {
		buf.WriteString(r.Block.String())
	} else {
		buf.WriteString(";")
	}
	return buf.String()
}

// QualifiedRule represents an unnamed rule that includes a prelude and block.
type QualifiedRule struct {
	Prelude ComponentValues
	Block   *SimpleBlock
}

func (r *QualifiedRule) String() string {
	return r.Prelude.String() + r.Block.String()
}

// Declarations represents a list of declarations or at-rules.
type Declarations []Node

func (a Declarations) String() string {
	var buf bytes.Buffer
	for i, d := range a {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(d.String())
		if _, ok := d.(*Declaration); ok {
			buf.WriteString(";")
		}
	}
	return buf.String()
}

// Declaration represents a name/value pair.
// Values never contain the leading or trailing whitespace of the value.
type Declaration struct {
	Name      string
	Values    ComponentValues
	Important bool
	Pos       token.Pos
}

func (d *Declaration) String() string {
	s := d.Name + ": " + d.Values.String()
	if d.Important {
		s += " !important"
	}
	return s
}

// ComponentValues represents a list of component values.
type ComponentValues []ComponentValue

func (a ComponentValues) String() string {
	var buf bytes.Buffer
	for _, v := range a {
		buf.WriteString(v.String())
	}
	return buf.String()
}

// Tokens flattens the component values back into a token list.
// Functions and blocks contribute their opening token, their contents
// and a matching closing token.
func (a ComponentValues) Tokens() []token.Token {
	var tokens []token.Token
	for _, v := range a {
		tokens = appendTokens(tokens, v)
	}
	return tokens
}

func appendTokens(tokens []token.Token, v ComponentValue) []token.Token {
	switch v := v.(type) {
	case *Token:
		return append(tokens, v.Token)
	case *Function:
		tokens = append(tokens, &token.Function{Value: v.Name, Pos: v.Pos})
		for _, child := range v.Values {
			tokens = appendTokens(tokens, child)
		}
		return append(tokens, &token.RParen{Pos: v.End})
	case *SimpleBlock:
		tokens = append(tokens, v.Token)
		for _, child := range v.Values {
			tokens = appendTokens(tokens, child)
		}
		return append(tokens, v.closing())
	}
	return tokens
}

// Clone returns a deep copy of the component values. Token strings are
// copied as well, see token.Clone.
func (a ComponentValues) Clone() ComponentValues {
	if a == nil {
		return nil
	}
	other := make(ComponentValues, len(a))
	for i, v := range a {
		other[i] = cloneValue(v)
	}
	return other
}

func cloneValue(v ComponentValue) ComponentValue {
	switch v := v.(type) {
	case *Token:
		return &Token{Token: token.Clone(v.Token)}
	case *Function:
		return &Function{Name: strings.Clone(v.Name), Values: v.Values.Clone(), Pos: v.Pos, End: v.End}
	case *SimpleBlock:
		return &SimpleBlock{Token: v.Token, Values: v.Values.Clone(), End: v.End}
	}
	return v
}

// ComponentValue represents a component value.
type ComponentValue interface {
	Node
	componentValue()
	Position() token.Pos
}

func (_ *SimpleBlock) componentValue() {}
func (_ *Function) componentValue()    {}
func (_ *Token) componentValue()       {}

// SimpleBlock represents a {-block, [-block, or (-block.
type SimpleBlock struct {
	Token  token.Token
	Values ComponentValues
	End    token.Pos
}

func (b *SimpleBlock) String() string {
	switch b.Token.(type) {
	case *token.LBrace:
		return "{" + b.Values.String() + "}"
	case *token.LBrack:
		return "[" + b.Values.String() + "]"
	case *token.LParen:
		return "(" + b.Values.String() + ")"
	}
	return "<>"
}

// Position returns the position of the opening token.
func (b *SimpleBlock) Position() token.Pos {
	if b.Token == nil {
		return token.Pos{}
	}
	return b.Token.Position()
}

// closing returns the token mirroring the block's opening token.
func (b *SimpleBlock) closing() token.Token {
	switch b.Token.(type) {
	case *token.LBrack:
		return &token.RBrack{Pos: b.End}
	case *token.LParen:
		return &token.RParen{Pos: b.End}
	}
	return &token.RBrace{Pos: b.End}
}

// Function represents a function call with a list of arguments.
// Pos is the position of the function name, End of the closing parenthesis.
type Function struct {
	Name   string
	Values ComponentValues
	Pos    token.Pos
	End    token.Pos
}

func (f *Function) String() string {
	return f.Name + "(" + f.Values.String() + ")"
}

// Position returns the position of the function name.
func (f *Function) Position() token.Pos {
	return f.Pos
}

// Token represents a single token in the AST.
type Token struct {
	token.Token
}

func (t *Token) String() string {
	return t.Token.String()
}
