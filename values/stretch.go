package values

import (
	"math"
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	xfont "golang.org/x/image/font"
)

// stretchKeywords lists the font-stretch keywords and their percentages,
// narrowest first.
var stretchKeywords = []struct {
	keyword string
	percent float64
	font    xfont.Stretch
}{
	{"ultra-condensed", 50, xfont.StretchUltraCondensed},
	{"extra-condensed", 62.5, xfont.StretchExtraCondensed},
	{"condensed", 75, xfont.StretchCondensed},
	{"semi-condensed", 87.5, xfont.StretchSemiCondensed},
	{"normal", 100, xfont.StretchNormal},
	{"semi-expanded", 112.5, xfont.StretchSemiExpanded},
	{"expanded", 125, xfont.StretchExpanded},
	{"extra-expanded", 150, xfont.StretchExtraExpanded},
	{"ultra-expanded", 200, xfont.StretchUltraExpanded},
}

// FontStretch is a font-stretch value. Keyword is empty for percentages.
// Percent is set in both cases, e.g. 75 for condensed.
type FontStretch struct {
	Keyword string
	Percent float64
}

// ParseFontStretch parses a stretch keyword or a non-negative percentage.
func ParseFontStretch(c *parser.Cursor) (FontStretch, error) {
	if ident, err := parser.Try(c, (*parser.Cursor).ExpectIdent); err == nil {
		name := strings.ToLower(ident.Value)
		for _, k := range stretchKeywords {
			if k.keyword == name {
				return FontStretch{Keyword: k.keyword, Percent: k.percent}, nil
			}
		}
		return FontStretch{}, unexpectedKeyword("font stretch", ident)
	}

	pct, err := c.ExpectPercentage()
	if err != nil {
		return FontStretch{}, err
	} else if pct.Number < 0 {
		return FontStretch{}, parser.Errorf(parser.ErrUnexpectedToken, pct.Pos, "negative font stretch %s", pct.Value)
	}
	return FontStretch{Percent: pct.Number}, nil
}

// ToCSS writes the stretch. When minifying, keywords are written as
// percentages.
func (s FontStretch) ToCSS(p *printer.Printer) {
	if s.Keyword != "" && !p.Minify() {
		p.WriteString(s.Keyword)
		return
	}
	p.WriteNumber(s.Percent)
	_ = p.WriteByte('%')
}

// Font returns the nearest stretch of the font package.
func (s FontStretch) Font() xfont.Stretch {
	best := stretchKeywords[0]
	for _, k := range stretchKeywords[1:] {
		if math.Abs(k.percent-s.Percent) < math.Abs(best.percent-s.Percent) {
			best = k
		}
	}
	return best.font
}
