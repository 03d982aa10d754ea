package values

import (
	"math"
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	xfont "golang.org/x/image/font"
)

// Font weight keywords.
const (
	WeightNormal  = "normal"
	WeightBold    = "bold"
	WeightBolder  = "bolder"
	WeightLighter = "lighter"
)

// FontWeight is a font-weight value. Keyword is empty for numeric weights.
// Value holds the numeric weight, which is also set for normal (400) and
// bold (700).
type FontWeight struct {
	Keyword string
	Value   float64
}

// ParseFontWeight parses a weight keyword or a number in [1, 1000].
func ParseFontWeight(c *parser.Cursor) (FontWeight, error) {
	if ident, err := parser.Try(c, (*parser.Cursor).ExpectIdent); err == nil {
		switch strings.ToLower(ident.Value) {
		case WeightNormal:
			return FontWeight{Keyword: WeightNormal, Value: 400}, nil
		case WeightBold:
			return FontWeight{Keyword: WeightBold, Value: 700}, nil
		case WeightBolder:
			return FontWeight{Keyword: WeightBolder}, nil
		case WeightLighter:
			return FontWeight{Keyword: WeightLighter}, nil
		}
		return FontWeight{}, unexpectedKeyword("font weight", ident)
	}

	n, err := c.ExpectNumber()
	if err != nil {
		return FontWeight{}, err
	} else if n.Number < 1 || n.Number > 1000 {
		return FontWeight{}, parser.Errorf(parser.ErrUnexpectedToken, n.Pos, "font weight out of range: %s", n.Value)
	}
	return FontWeight{Value: n.Number}, nil
}

// ToCSS writes the weight. When minifying, normal and bold are written
// as numbers.
func (w FontWeight) ToCSS(p *printer.Printer) {
	switch w.Keyword {
	case "":
		p.WriteNumber(w.Value)
	case WeightNormal, WeightBold:
		if p.Minify() {
			p.WriteNumber(w.Value)
			return
		}
		p.WriteString(w.Keyword)
	default:
		p.WriteString(w.Keyword)
	}
}

// Font returns the nearest weight of the font package. Relative weights
// map to the normal weight.
func (w FontWeight) Font() xfont.Weight {
	if w.Value == 0 {
		return xfont.WeightNormal
	}
	// CSS weight 400 is the normal weight; each step of 100 is one unit.
	v := math.Round(w.Value/100) - 4
	return xfont.Weight(math.Max(float64(xfont.WeightThin), math.Min(v, float64(xfont.WeightBlack))))
}
