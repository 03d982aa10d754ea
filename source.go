package fontface

import (
	"errors"
	"strings"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/token"
	"github.com/benbjohnson/fontface/values"
)

// Source is one item of a src descriptor: a *URLSource or a *LocalSource.
type Source interface {
	source()
	ToCSS(p *printer.Printer)
	Clone() Source
}

func (_ *URLSource) source()   {}
func (_ *LocalSource) source() {}

// URLSource references a font file by url, optionally with a format hint
// and a list of required font technologies.
type URLSource struct {
	URL    values.URL
	Format FontFormat // empty if absent
	Tech   []FontTechnology
}

// LocalSource references a font installed on the system by its name.
type LocalSource struct {
	Family values.FontFamily
}

// ParseSource parses one item of a src descriptor.
//
// A url source is tried first. An ErrMalformedAtRuleBody error from it is
// returned as is; any other failure makes the item a local() source.
func ParseSource(c *parser.Cursor) (Source, error) {
	start := c.Peek()
	u, err := parser.Try(c, ParseURLSource)
	if err == nil {
		return u, nil
	} else if errors.Is(err, parser.ErrMalformedAtRuleBody) {
		return nil, err
	}

	l, lerr := parser.Try(c, ParseLocalSource)
	if lerr != nil {
		// An item starting with a url cannot be local(). The url error
		// tells more about what is wrong.
		if tok, ok := start.(*ast.Token); ok {
			if _, ok := tok.Token.(*token.URL); ok {
				return nil, err
			}
		}
		return nil, lerr
	}
	return l, nil
}

// ParseLocalSource parses a local() function wrapping a family name.
func ParseLocalSource(c *parser.Cursor) (*LocalSource, error) {
	f, err := c.ExpectFunctionMatching("local")
	if err != nil {
		return nil, err
	}
	family, err := parser.ParseNestedBlock(f, values.ParseFontFamily)
	if err != nil {
		return nil, err
	}
	return &LocalSource{Family: family}, nil
}

// ParseURLSource parses a url followed by optional format() and tech()
// functions. The functions may appear at most once each and format() must
// come before tech().
func ParseURLSource(c *parser.Cursor) (*URLSource, error) {
	u, err := values.ParseURL(c)
	if err != nil {
		return nil, err
	}
	s := &URLSource{URL: u}

	var order formatTechOrder
	for !c.IsExhausted() {
		f, err := c.ExpectFunction()
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(f.Name) {
		case "format":
			if order.format != nil {
				return nil, parser.Errorf(parser.ErrUnexpectedToken, f.Pos, "duplicate format()")
			}
			order.format = &f.Pos
			if err := order.check(); err != nil {
				return nil, err
			}
			if s.Format, err = parser.ParseNestedBlock(f, ParseFontFormat); err != nil {
				return nil, err
			}

		case "tech":
			if order.tech != nil {
				return nil, parser.Errorf(parser.ErrUnexpectedToken, f.Pos, "duplicate tech()")
			}
			order.tech = &f.Pos
			if err := order.check(); err != nil {
				return nil, err
			}
			if s.Tech, err = parser.ParseNestedBlock(f, ParseFontTechnologies); err != nil {
				return nil, err
			}

		default:
			return nil, parser.Errorf(parser.ErrUnexpectedToken, f.Pos, "expected format() or tech(), got %s()", f.Name)
		}
	}
	return s, nil
}

// formatTechOrder records where the format() and tech() functions of a
// url source were found.
type formatTechOrder struct {
	format *token.Pos
	tech   *token.Pos
}

// check returns ErrMalformedAtRuleBody once both functions are recorded
// and tech() does not come after format().
func (o *formatTechOrder) check() error {
	if o.format == nil || o.tech == nil {
		return nil
	}
	if !o.format.Before(*o.tech) {
		return parser.Errorf(parser.ErrMalformedAtRuleBody, *o.tech, "tech() at %s must follow format() at %s", o.tech, o.format)
	}
	return nil
}

// ToCSS writes the url with its format and technologies.
func (s *URLSource) ToCSS(p *printer.Printer) {
	s.URL.ToCSS(p)
	if s.Format != "" {
		p.Whitespace()
		p.WriteString("format(")
		s.Format.ToCSS(p)
		_ = p.WriteByte(')')
	}
	if len(s.Tech) > 0 {
		p.Whitespace()
		p.WriteString("tech(")
		for i, t := range s.Tech {
			if i > 0 {
				_ = p.WriteByte(',')
			}
			t.ToCSS(p)
		}
		_ = p.WriteByte(')')
	}
}

// Clone returns a copy of s that shares no memory with the input.
func (s *URLSource) Clone() Source {
	other := &URLSource{URL: s.URL.Clone(), Format: FontFormat(strings.Clone(string(s.Format)))}
	if s.Tech != nil {
		other.Tech = append([]FontTechnology(nil), s.Tech...)
	}
	return other
}

// ToCSS writes the local() function.
func (s *LocalSource) ToCSS(p *printer.Printer) {
	p.WriteString("local(")
	s.Family.ToCSS(p)
	_ = p.WriteByte(')')
}

// Clone returns a copy of s that shares no memory with the input.
func (s *LocalSource) Clone() Source {
	return &LocalSource{Family: s.Family.Clone()}
}
