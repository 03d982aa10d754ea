package fontface

import (
	"bytes"
	"strings"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/token"
	"github.com/benbjohnson/fontface/values"
	xfont "golang.org/x/image/font"
)

// Rule represents an @font-face rule.
//
// Descriptors are kept in source order. Duplicate descriptors are not
// merged; the lookup methods such as Family return the last one.
type Rule struct {
	Descriptors []Descriptor

	// Loc is the position of the @font-face keyword.
	Loc token.Pos
}

// ParseRule parses the block of an @font-face at-rule.
//
// Errors are reported in the returned parser.ErrorList next to the rule.
// A src descriptor which fails to parse is kept as a *CustomDescriptor;
// !important declarations and nested at-rules are skipped.
func ParseRule(r *ast.AtRule) (*Rule, error) {
	if !strings.EqualFold(r.Name, "font-face") {
		return nil, parser.Errorf(parser.ErrUnexpectedToken, r.Pos, "expected @font-face, got @%s", r.Name)
	} else if r.Block == nil {
		return nil, parser.Errorf(parser.ErrMalformedAtRuleBody, r.Pos, "@font-face without block")
	}
	rule := &Rule{Loc: r.Pos}

	var errs parser.ErrorList
	decls, err := parser.ParseDeclarations(parser.NewTokenScanner(r.Block.Values.Tokens()))
	if list, ok := err.(parser.ErrorList); ok {
		errs = append(errs, list...)
	} else if err != nil {
		errs = append(errs, err)
	}

	for _, n := range decls {
		switch n := n.(type) {
		case *ast.AtRule:
			errs = append(errs, parser.Errorf(parser.ErrUnexpectedToken, n.Pos, "unexpected @%s in @font-face", n.Name))
		case *ast.Declaration:
			if n.Important {
				errs = append(errs, parser.Errorf(parser.ErrUnexpectedToken, n.Pos, "!important not allowed on descriptor %s", n.Name))
				continue
			}
			d, err := ParseDescriptor(n.Name, parser.NewCursor(n.Values, r.Block.End))
			if err != nil {
				errs = append(errs, err)
			}
			rule.Descriptors = append(rule.Descriptors, d)
		}
	}
	return rule, errs.Err()
}

// ToCSS writes the rule. When minifying, the semicolon after the last
// descriptor is omitted.
func (r *Rule) ToCSS(p *printer.Printer) {
	p.AddMapping(r.Loc)
	p.WriteString("@font-face")
	p.Whitespace()
	_ = p.WriteByte('{')
	p.Indent()
	for i, d := range r.Descriptors {
		p.Newline()
		d.ToCSS(p)
		if i != len(r.Descriptors)-1 || !p.Minify() {
			_ = p.WriteByte(';')
		}
	}
	p.Dedent()
	p.Newline()
	_ = p.WriteByte('}')
}

// String returns the rule in canonical form.
func (r *Rule) String() string {
	var buf bytes.Buffer
	p := printer.New(&buf, printer.Options{})
	r.ToCSS(p)
	return buf.String()
}

// Clone returns a deep copy of r that shares no memory with the input,
// so it can be kept after the source text is discarded.
func (r *Rule) Clone() *Rule {
	other := &Rule{Loc: r.Loc, Descriptors: make([]Descriptor, len(r.Descriptors))}
	for i, d := range r.Descriptors {
		other.Descriptors[i] = d.Clone()
	}
	return other
}

// Family returns the value of the last font-family descriptor.
func (r *Rule) Family() (values.FontFamily, bool) {
	if d := lastDescriptor[*FamilyDescriptor](r); d != nil {
		return d.Family, true
	}
	return values.FontFamily{}, false
}

// Sources returns the sources of the last src descriptor.
func (r *Rule) Sources() []Source {
	if d := lastDescriptor[*SrcDescriptor](r); d != nil {
		return d.Sources
	}
	return nil
}

// Style returns the last font-style descriptor, or normal.
func (r *Rule) Style() values.FontStyle {
	if d := lastDescriptor[*StyleDescriptor](r); d != nil {
		return d.Style
	}
	return values.FontStyle{Keyword: values.StyleNormal}
}

// Weight returns the last font-weight descriptor, or normal.
func (r *Rule) Weight() values.Size2D[values.FontWeight] {
	if d := lastDescriptor[*WeightDescriptor](r); d != nil {
		return d.Weight
	}
	normal := values.FontWeight{Keyword: values.WeightNormal, Value: 400}
	return values.Size2D[values.FontWeight]{First: normal, Second: normal}
}

// UnicodeRanges returns the ranges of the last unicode-range descriptor.
func (r *Rule) UnicodeRanges() []UnicodeRange {
	if d := lastDescriptor[*UnicodeRangeDescriptor](r); d != nil {
		return d.Ranges
	}
	return nil
}

// Matches returns true if the rule declares a face of the given family
// (ignoring case) which covers style and weight.
func (r *Rule) Matches(family string, style xfont.Style, weight xfont.Weight) bool {
	f, ok := r.Family()
	if !ok || !strings.EqualFold(f.String(), family) {
		return false
	}
	if r.Style().Font() != style {
		return false
	}
	w := r.Weight()
	lo, hi := w.First.Font(), w.Second.Font()
	if lo > hi {
		lo, hi = hi, lo
	}
	return weight >= lo && weight <= hi
}

// lastDescriptor returns the last descriptor of type T, or the zero value.
func lastDescriptor[T Descriptor](r *Rule) T {
	for i := len(r.Descriptors) - 1; i >= 0; i-- {
		if d, ok := r.Descriptors[i].(T); ok {
			return d
		}
	}
	var zero T
	return zero
}
