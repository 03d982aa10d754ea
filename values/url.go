package values

import (
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/token"
)

// URL is a url() reference. The URL is kept as written; it is never resolved.
type URL struct {
	URL string
	Pos token.Pos
}

// ParseURL parses a url token.
func ParseURL(c *parser.Cursor) (URL, error) {
	tok, err := c.ExpectURL()
	if err != nil {
		return URL{}, err
	}
	return URL{URL: tok.Value, Pos: tok.Pos}, nil
}

// ToCSS writes the url, quoting it only if needed.
func (u URL) ToCSS(p *printer.Printer) {
	p.WriteURL(u.URL)
}

// Clone returns a copy of u that shares no memory with the input.
func (u URL) Clone() URL {
	return URL{URL: strings.Clone(u.URL), Pos: u.Pos}
}
