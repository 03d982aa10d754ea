package fontface

import (
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
)

// UnicodeRange is an inclusive range of code points.
// Ranges parsed from CSS satisfy 0 <= Start <= End <= 0x10FFFF.
type UnicodeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseUnicodeRange parses a single unicode-range token.
func ParseUnicodeRange(c *parser.Cursor) (UnicodeRange, error) {
	tok, err := c.ExpectUnicodeRange()
	if err != nil {
		return UnicodeRange{}, err
	}
	return UnicodeRange{Start: tok.Start, End: tok.End}, nil
}

// Contains returns true if r contains the code point ch.
func (r UnicodeRange) Contains(ch rune) bool {
	return int(ch) >= r.Start && int(ch) <= r.End
}

// ToCSS writes the range in its shortest form.
//
// A range which covers every code point sharing a hex prefix is written
// with "?" wildcards, e.g. U+4?? for U+400-4FF. Other ranges are written
// as U+start-end, and single code points as U+start.
func (r UnicodeRange) ToCSS(p *printer.Printer) {
	if r.Start != r.End {
		// Find the highest hex digit where start and end differ.
		shift := 24
		mask := 0xf << shift
		for shift > 0 {
			if r.Start&mask != r.End&mask {
				break
			}
			mask >>= 4
			shift -= 4
		}

		// The digits below the differing one, and the differing one
		// itself, must span 0 to F for the wildcard form.
		shift += 4
		remainderMask := 1<<shift - 1
		if r.Start&remainderMask == 0 && r.End&remainderMask == remainderMask {
			p.WriteString("U+")
			if prefix := (r.Start &^ remainderMask) >> shift; prefix != 0 {
				p.WriteHex(prefix)
			}
			for ; shift > 0; shift -= 4 {
				_ = p.WriteByte('?')
			}
			return
		}
	}

	p.WriteString("U+")
	p.WriteHex(r.Start)
	if r.End != r.Start {
		_ = p.WriteByte('-')
		p.WriteHex(r.End)
	}
}
