package values

import (
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
)

// GenericFamily is a generic font family keyword.
type GenericFamily string

// Generic font families.
const (
	Serif       GenericFamily = "serif"
	SansSerif   GenericFamily = "sans-serif"
	Cursive     GenericFamily = "cursive"
	Fantasy     GenericFamily = "fantasy"
	Monospace   GenericFamily = "monospace"
	SystemUI    GenericFamily = "system-ui"
	Emoji       GenericFamily = "emoji"
	Math        GenericFamily = "math"
	FangSong    GenericFamily = "fangsong"
	UISerif     GenericFamily = "ui-serif"
	UISansSerif GenericFamily = "ui-sans-serif"
	UIMonospace GenericFamily = "ui-monospace"
	UIRounded   GenericFamily = "ui-rounded"
)

var genericFamilies = map[string]GenericFamily{
	"serif":         Serif,
	"sans-serif":    SansSerif,
	"cursive":       Cursive,
	"fantasy":       Fantasy,
	"monospace":     Monospace,
	"system-ui":     SystemUI,
	"emoji":         Emoji,
	"math":          Math,
	"fangsong":      FangSong,
	"ui-serif":      UISerif,
	"ui-sans-serif": UISansSerif,
	"ui-monospace":  UIMonospace,
	"ui-rounded":    UIRounded,
}

// reservedWords may not appear unquoted in a family name.
var reservedWords = map[string]bool{
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"revert":       true,
	"revert-layer": true,
	"default":      true,
}

// FontFamily is either a generic family or a family name.
// Exactly one of Generic and Name is set.
type FontFamily struct {
	Generic GenericFamily
	Name    string
}

// ParseFontFamily parses a quoted family name, a generic family keyword or
// a family name given as a sequence of identifiers.
func ParseFontFamily(c *parser.Cursor) (FontFamily, error) {
	if s, err := parser.Try(c, (*parser.Cursor).ExpectString); err == nil {
		return FontFamily{Name: s.Value}, nil
	}

	ident, err := c.ExpectIdent()
	if err != nil {
		return FontFamily{}, err
	}
	if g, ok := genericFamilies[strings.ToLower(ident.Value)]; ok {
		return FontFamily{Generic: g}, nil
	}

	// Identifiers are joined by a single space.
	words := []string{ident.Value}
	for {
		ident, err := parser.Try(c, (*parser.Cursor).ExpectIdent)
		if err != nil {
			break
		}
		words = append(words, ident.Value)
	}
	return FontFamily{Name: strings.Join(words, " ")}, nil
}

// String returns the family name or generic keyword.
func (f FontFamily) String() string {
	if f.Generic != "" {
		return string(f.Generic)
	}
	return f.Name
}

// ToCSS writes the family. Names are written as identifiers when they
// read back as the same name, otherwise as a quoted string.
func (f FontFamily) ToCSS(p *printer.Printer) {
	if f.Generic != "" {
		p.WriteString(string(f.Generic))
		return
	}
	if !isIdentSequence(f.Name) {
		p.WriteQuoted(f.Name)
		return
	}
	p.WriteString(f.Name)
}

// Clone returns a copy of f that shares no memory with the input.
func (f FontFamily) Clone() FontFamily {
	return FontFamily{Generic: f.Generic, Name: strings.Clone(f.Name)}
}

// isIdentSequence returns true if name is a space separated list of
// identifiers which need no escaping and are not keywords.
func isIdentSequence(name string) bool {
	if name == "" {
		return false
	}
	for _, word := range strings.Split(name, " ") {
		if word == "" || word == "-" || printer.EscapeIdent(word) != word {
			return false
		}
		lower := strings.ToLower(word)
		if _, ok := genericFamilies[lower]; ok || reservedWords[lower] {
			return false
		}
	}
	return true
}
