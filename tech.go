package fontface

import (
	"strconv"
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
)

// FontTechnology is a font technology named in a tech() function.
type FontTechnology int

// Font technologies.
const (
	TechFeaturesOpenType FontTechnology = iota
	TechFeaturesAAT
	TechFeaturesGraphite
	TechColorCOLRv0
	TechColorCOLRv1
	TechColorSVG
	TechColorSbix
	TechColorCBDT
	TechVariations
	TechPalettes
	TechIncremental
)

var techNames = [...]string{
	TechFeaturesOpenType: "features-opentype",
	TechFeaturesAAT:      "features-aat",
	TechFeaturesGraphite: "features-graphite",
	TechColorCOLRv0:      "color-colrv0",
	TechColorCOLRv1:      "color-colrv1",
	TechColorSVG:         "color-svg",
	TechColorSbix:        "color-sbix",
	TechColorCBDT:        "color-cbdt",
	TechVariations:       "variations",
	TechPalettes:         "palettes",
	TechIncremental:      "incremental",
}

// String returns the keyword of the technology.
func (t FontTechnology) String() string {
	if t < 0 || int(t) >= len(techNames) {
		return "FontTechnology(" + strconv.Itoa(int(t)) + ")"
	}
	return techNames[t]
}

// ParseFontTechnology parses a technology keyword. Only identifiers are
// accepted and unknown keywords are an error.
func ParseFontTechnology(c *parser.Cursor) (FontTechnology, error) {
	ident, err := c.ExpectIdent()
	if err != nil {
		return 0, err
	}
	for i, name := range techNames {
		if strings.EqualFold(ident.Value, name) {
			return FontTechnology(i), nil
		}
	}
	return 0, parser.Errorf(parser.ErrUnexpectedToken, ident.Pos, "unknown font technology %q", ident.Value)
}

// ParseFontTechnologies parses a comma separated list of technologies.
func ParseFontTechnologies(c *parser.Cursor) ([]FontTechnology, error) {
	return parser.ParseCommaSeparated(c, ParseFontTechnology)
}

// ToCSS writes the technology keyword.
func (t FontTechnology) ToCSS(p *printer.Printer) {
	p.WriteString(t.String())
}
