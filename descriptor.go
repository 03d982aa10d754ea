package fontface

import (
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/values"
)

// Descriptor represents a single @font-face descriptor.
type Descriptor interface {
	descriptor()

	// Name returns the descriptor name. Known descriptors return their
	// lowercase name, custom descriptors the name as written.
	Name() string

	// ToCSS writes the descriptor as "name: value".
	ToCSS(p *printer.Printer)

	// Clone returns a deep copy that shares no memory with the input.
	Clone() Descriptor
}

func (_ *SrcDescriptor) descriptor()          {}
func (_ *FamilyDescriptor) descriptor()       {}
func (_ *StyleDescriptor) descriptor()        {}
func (_ *WeightDescriptor) descriptor()       {}
func (_ *StretchDescriptor) descriptor()      {}
func (_ *UnicodeRangeDescriptor) descriptor() {}
func (_ *CustomDescriptor) descriptor()       {}

// SrcDescriptor is the src descriptor: an ordered list of sources.
type SrcDescriptor struct {
	Sources []Source
}

// FamilyDescriptor is the font-family descriptor.
type FamilyDescriptor struct {
	Family values.FontFamily
}

// StyleDescriptor is the font-style descriptor.
type StyleDescriptor struct {
	Style values.FontStyle
}

// WeightDescriptor is the font-weight descriptor, a weight or weight range.
type WeightDescriptor struct {
	Weight values.Size2D[values.FontWeight]
}

// StretchDescriptor is the font-stretch descriptor, a stretch or stretch range.
type StretchDescriptor struct {
	Stretch values.Size2D[values.FontStretch]
}

// UnicodeRangeDescriptor is the unicode-range descriptor.
type UnicodeRangeDescriptor struct {
	Ranges []UnicodeRange
}

// CustomDescriptor holds a descriptor which is unknown or whose value does
// not match the grammar of a known descriptor.
type CustomDescriptor struct {
	Property string
	Value    values.CustomValue
}

// ParseDescriptor parses the value of the descriptor called name.
//
// Names are matched case-insensitively. A value which does not match the
// grammar of its descriptor is kept as a *CustomDescriptor, as is the value
// of an unknown descriptor, so a descriptor is always returned. Only src
// reports errors: if any of its sources fails to parse, the whole value is
// kept as a *CustomDescriptor and the error of the failing source is
// returned with it.
func ParseDescriptor(name string, c *parser.Cursor) (Descriptor, error) {
	state := c.State()

	var d Descriptor
	var err error
	switch strings.ToLower(name) {
	case "src":
		sources, err := parser.ParseCommaSeparated(c, ParseSource)
		if err == nil {
			return &SrcDescriptor{Sources: sources}, nil
		}
		tracer().Debugf("src descriptor kept as custom value: %v", err)
		c.Reset(state)
		return &CustomDescriptor{Property: name, Value: values.ParseCustomValue(c)}, err
	case "font-family":
		d, err = parseTyped(c, values.ParseFontFamily, func(v values.FontFamily) Descriptor {
			return &FamilyDescriptor{Family: v}
		})
	case "font-style":
		d, err = parseTyped(c, values.ParseFontStyle, func(v values.FontStyle) Descriptor {
			return &StyleDescriptor{Style: v}
		})
	case "font-weight":
		d, err = parseTyped(c, parseWeightRange, func(v values.Size2D[values.FontWeight]) Descriptor {
			return &WeightDescriptor{Weight: v}
		})
	case "font-stretch":
		d, err = parseTyped(c, parseStretchRange, func(v values.Size2D[values.FontStretch]) Descriptor {
			return &StretchDescriptor{Stretch: v}
		})
	case "unicode-range":
		d, err = parseTyped(c, parseUnicodeRanges, func(v []UnicodeRange) Descriptor {
			return &UnicodeRangeDescriptor{Ranges: v}
		})
	default:
		tracer().Debugf("unknown descriptor %q kept as custom value", name)
		return &CustomDescriptor{Property: name, Value: values.ParseCustomValue(c)}, nil
	}
	if err == nil {
		return d, nil
	}

	// Fall back to the raw value.
	tracer().Debugf("descriptor %q kept as custom value: %v", name, err)
	c.Reset(state)
	return &CustomDescriptor{Property: name, Value: values.ParseCustomValue(c)}, nil
}

// parseTyped parses the whole value with fn and wraps the result.
func parseTyped[T any](c *parser.Cursor, fn func(*parser.Cursor) (T, error), wrap func(T) Descriptor) (Descriptor, error) {
	v, err := parser.ParseEntirely(c, fn)
	if err != nil {
		return nil, err
	}
	return wrap(v), nil
}

func parseWeightRange(c *parser.Cursor) (values.Size2D[values.FontWeight], error) {
	return values.ParseSize2D(c, values.ParseFontWeight)
}

func parseStretchRange(c *parser.Cursor) (values.Size2D[values.FontStretch], error) {
	return values.ParseSize2D(c, values.ParseFontStretch)
}

func parseUnicodeRanges(c *parser.Cursor) ([]UnicodeRange, error) {
	return parser.ParseCommaSeparated(c, ParseUnicodeRange)
}

// Name returns "src".
func (d *SrcDescriptor) Name() string { return "src" }

// ToCSS writes the descriptor.
func (d *SrcDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Name())
	for i, s := range d.Sources {
		if i > 0 {
			p.Delim(',', false)
		}
		s.ToCSS(p)
	}
}

// Clone returns a deep copy of d.
func (d *SrcDescriptor) Clone() Descriptor {
	other := &SrcDescriptor{Sources: make([]Source, len(d.Sources))}
	for i, s := range d.Sources {
		other.Sources[i] = s.Clone()
	}
	return other
}

// Name returns "font-family".
func (d *FamilyDescriptor) Name() string { return "font-family" }

// ToCSS writes the descriptor.
func (d *FamilyDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Name())
	d.Family.ToCSS(p)
}

// Clone returns a deep copy of d.
func (d *FamilyDescriptor) Clone() Descriptor {
	return &FamilyDescriptor{Family: d.Family.Clone()}
}

// Name returns "font-style".
func (d *StyleDescriptor) Name() string { return "font-style" }

// ToCSS writes the descriptor.
func (d *StyleDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Name())
	d.Style.ToCSS(p)
}

// Clone returns a copy of d. Style values hold no input strings.
func (d *StyleDescriptor) Clone() Descriptor {
	other := *d
	return &other
}

// Name returns "font-weight".
func (d *WeightDescriptor) Name() string { return "font-weight" }

// ToCSS writes the descriptor.
func (d *WeightDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Name())
	d.Weight.ToCSS(p)
}

// Clone returns a copy of d.
func (d *WeightDescriptor) Clone() Descriptor {
	other := *d
	return &other
}

// Name returns "font-stretch".
func (d *StretchDescriptor) Name() string { return "font-stretch" }

// ToCSS writes the descriptor.
func (d *StretchDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Name())
	d.Stretch.ToCSS(p)
}

// Clone returns a copy of d.
func (d *StretchDescriptor) Clone() Descriptor {
	other := *d
	return &other
}

// Name returns "unicode-range".
func (d *UnicodeRangeDescriptor) Name() string { return "unicode-range" }

// ToCSS writes the descriptor.
func (d *UnicodeRangeDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Name())
	for i, r := range d.Ranges {
		if i > 0 {
			p.Delim(',', false)
		}
		r.ToCSS(p)
	}
}

// Clone returns a copy of d.
func (d *UnicodeRangeDescriptor) Clone() Descriptor {
	return &UnicodeRangeDescriptor{Ranges: append([]UnicodeRange(nil), d.Ranges...)}
}

// Name returns the descriptor name as written.
func (d *CustomDescriptor) Name() string { return d.Property }

// ToCSS writes the descriptor.
func (d *CustomDescriptor) ToCSS(p *printer.Printer) {
	writeName(p, d.Property)
	d.Value.ToCSS(p)
}

// Clone returns a deep copy of d.
func (d *CustomDescriptor) Clone() Descriptor {
	return &CustomDescriptor{Property: strings.Clone(d.Property), Value: d.Value.Clone()}
}

// writeName writes a descriptor name and the colon following it.
func writeName(p *printer.Printer, name string) {
	p.WriteIdent(name)
	p.Delim(':', false)
}
