package fontface

import (
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
)

// FontFormat is the argument of a format() function. Known formats are one
// of the constants below; any other string is kept as written.
type FontFormat string

// Known font formats.
const (
	FormatWOFF             FontFormat = "woff"
	FormatWOFF2            FontFormat = "woff2"
	FormatTrueType         FontFormat = "truetype"
	FormatOpenType         FontFormat = "opentype"
	FormatEmbeddedOpenType FontFormat = "embedded-opentype"
	FormatCollection       FontFormat = "collection"
	FormatSVG              FontFormat = "svg"
)

var knownFormats = []FontFormat{
	FormatWOFF,
	FormatWOFF2,
	FormatTrueType,
	FormatOpenType,
	FormatEmbeddedOpenType,
	FormatCollection,
	FormatSVG,
}

// ParseFontFormat parses an identifier or string naming a font format.
// Known formats are matched case-insensitively. The format may not be empty.
func ParseFontFormat(c *parser.Cursor) (FontFormat, error) {
	pos := c.Position()
	s, err := c.ExpectIdentOrString()
	if err != nil {
		return "", err
	} else if s == "" {
		return "", parser.Errorf(parser.ErrUnexpectedToken, pos, "empty font format")
	}
	for _, f := range knownFormats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return FontFormat(s), nil
}

// Known returns true if f is one of the known font formats.
func (f FontFormat) Known() bool {
	for _, k := range knownFormats {
		if f == k {
			return true
		}
	}
	return false
}

// ToCSS writes the format as a quoted string. Keywords are not written
// as identifiers since few browsers accept them.
func (f FontFormat) ToCSS(p *printer.Printer) {
	p.WriteQuoted(string(f))
}
