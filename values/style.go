package values

import (
	"math"
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/token"
	xfont "golang.org/x/image/font"
)

// Font style keywords.
const (
	StyleNormal  = "normal"
	StyleItalic  = "italic"
	StyleOblique = "oblique"
)

// DefaultObliqueAngle is the angle of "oblique" without an explicit angle.
var DefaultObliqueAngle = Angle{Value: 14, Unit: "deg"}

// Angle is a CSS angle as written: a number and one of deg, grad, rad and turn.
type Angle struct {
	Value float64
	Unit  string
}

// angleUnits maps angle units to the number of degrees per unit.
var angleUnits = map[string]float64{
	"deg":  1,
	"grad": 360.0 / 400,
	"rad":  180 / math.Pi,
	"turn": 360,
}

// ParseAngle parses an angle dimension.
func ParseAngle(c *parser.Cursor) (Angle, error) {
	d, err := c.ExpectDimension()
	if err != nil {
		return Angle{}, err
	}
	unit := strings.ToLower(d.Unit)
	if _, ok := angleUnits[unit]; !ok {
		return Angle{}, parser.Errorf(parser.ErrUnexpectedToken, d.Pos, "invalid angle %q", d.Value)
	}
	return Angle{Value: d.Number, Unit: unit}, nil
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return a.Value * angleUnits[a.Unit]
}

// ToCSS writes the angle.
func (a Angle) ToCSS(p *printer.Printer) {
	p.WriteNumber(a.Value)
	p.WriteString(a.Unit)
}

// FontStyle is a font-style value. Angle is only used by oblique.
type FontStyle struct {
	Keyword string
	Angle   Angle
}

// ParseFontStyle parses normal, italic or oblique with an optional angle
// between -90deg and 90deg.
func ParseFontStyle(c *parser.Cursor) (FontStyle, error) {
	ident, err := c.ExpectIdent()
	if err != nil {
		return FontStyle{}, err
	}
	switch strings.ToLower(ident.Value) {
	case StyleNormal:
		return FontStyle{Keyword: StyleNormal}, nil
	case StyleItalic:
		return FontStyle{Keyword: StyleItalic}, nil
	case StyleOblique:
		pos := c.Position()
		angle, err := parser.Try(c, ParseAngle)
		if err != nil {
			return FontStyle{Keyword: StyleOblique, Angle: DefaultObliqueAngle}, nil
		} else if deg := angle.Degrees(); deg < -90 || deg > 90 {
			return FontStyle{}, parser.Errorf(parser.ErrUnexpectedToken, pos, "oblique angle out of range")
		}
		return FontStyle{Keyword: StyleOblique, Angle: angle}, nil
	}
	return FontStyle{}, unexpectedKeyword("font style", ident)
}

// ToCSS writes the style. The default oblique angle is omitted.
func (s FontStyle) ToCSS(p *printer.Printer) {
	p.WriteString(s.Keyword)
	if s.Keyword == StyleOblique && s.Angle.Degrees() != DefaultObliqueAngle.Degrees() {
		_ = p.WriteByte(' ')
		s.Angle.ToCSS(p)
	}
}

// Font returns the style of the font package.
func (s FontStyle) Font() xfont.Style {
	switch s.Keyword {
	case StyleItalic:
		return xfont.StyleItalic
	case StyleOblique:
		return xfont.StyleOblique
	}
	return xfont.StyleNormal
}

// unexpectedKeyword returns an error for an identifier outside a keyword set.
func unexpectedKeyword(what string, ident *token.Ident) error {
	return parser.Errorf(parser.ErrUnexpectedToken, ident.Pos, "invalid %s %q", what, ident.Value)
}
