package fontface

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/scanner"
	"github.com/benbjohnson/fontface/token"
	"github.com/benbjohnson/fontface/values"
)

// Rules, descriptors, sources, formats and technologies are encoded as
// JSON objects tagged with a "type" and an optional "value":
//
//	{"type": "font-weight", "value": "100 900"}
//
// Values without a structure of their own (family, style, weight, stretch
// and custom values) are encoded as their canonical CSS text.

// tagged is the JSON form of a tagged value.
type tagged struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// newTagged returns a tagged value holding the encoding of v.
func newTagged(typ string, v any) (tagged, error) {
	data, err := json.Marshal(v)
	return tagged{Type: typ, Value: data}, err
}

type jsonRule struct {
	Properties []json.RawMessage `json:"properties"`
	Loc        jsonLoc           `json:"loc"`
}

type jsonLoc struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonURLSource struct {
	URL    string           `json:"url"`
	Format *FontFormat      `json:"format,omitempty"`
	Tech   []FontTechnology `json:"tech"`
}

type jsonCustom struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MarshalJSON encodes the rule with its descriptors in source order.
func (r *Rule) MarshalJSON() ([]byte, error) {
	v := jsonRule{Properties: []json.RawMessage{}, Loc: jsonLoc{Line: r.Loc.Line, Column: r.Loc.Char}}
	for _, d := range r.Descriptors {
		data, err := marshalDescriptor(d)
		if err != nil {
			return nil, err
		}
		v.Properties = append(v.Properties, data)
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes a rule encoded by MarshalJSON.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var v jsonRule
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	other := Rule{Loc: token.Pos{Line: v.Loc.Line, Char: v.Loc.Column}}
	for _, p := range v.Properties {
		d, err := unmarshalDescriptor(p)
		if err != nil {
			return err
		}
		other.Descriptors = append(other.Descriptors, d)
	}
	*r = other
	return nil
}

func marshalDescriptor(d Descriptor) ([]byte, error) {
	var t tagged
	var err error
	switch d := d.(type) {
	case *SrcDescriptor:
		sources := []json.RawMessage{}
		for _, s := range d.Sources {
			data, err := marshalSource(s)
			if err != nil {
				return nil, err
			}
			sources = append(sources, data)
		}
		t, err = newTagged("source", sources)
	case *FamilyDescriptor:
		t, err = newTagged("font-family", cssText(d.Family))
	case *StyleDescriptor:
		t, err = newTagged("font-style", cssText(d.Style))
	case *WeightDescriptor:
		t, err = newTagged("font-weight", cssText(d.Weight))
	case *StretchDescriptor:
		t, err = newTagged("font-stretch", cssText(d.Stretch))
	case *UnicodeRangeDescriptor:
		ranges := d.Ranges
		if ranges == nil {
			ranges = []UnicodeRange{}
		}
		t, err = newTagged("unicode-range", ranges)
	case *CustomDescriptor:
		t, err = newTagged("custom", jsonCustom{Name: d.Property, Value: cssText(d.Value)})
	default:
		return nil, fmt.Errorf("cannot encode descriptor %T", d)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

func unmarshalDescriptor(data []byte) (Descriptor, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	switch t.Type {
	case "source":
		var raw []json.RawMessage
		if err := json.Unmarshal(t.Value, &raw); err != nil {
			return nil, err
		}
		d := &SrcDescriptor{}
		for _, data := range raw {
			s, err := unmarshalSource(data)
			if err != nil {
				return nil, err
			}
			d.Sources = append(d.Sources, s)
		}
		return d, nil
	case "font-family":
		v, err := unmarshalCSS(t.Value, values.ParseFontFamily)
		return &FamilyDescriptor{Family: v}, err
	case "font-style":
		v, err := unmarshalCSS(t.Value, values.ParseFontStyle)
		return &StyleDescriptor{Style: v}, err
	case "font-weight":
		v, err := unmarshalCSS(t.Value, parseWeightRange)
		return &WeightDescriptor{Weight: v}, err
	case "font-stretch":
		v, err := unmarshalCSS(t.Value, parseStretchRange)
		return &StretchDescriptor{Stretch: v}, err
	case "unicode-range":
		d := &UnicodeRangeDescriptor{}
		if err := json.Unmarshal(t.Value, &d.Ranges); err != nil {
			return nil, err
		}
		for _, r := range d.Ranges {
			if r.Start < 0 || r.Start > r.End || r.End > parser.MaxCodePoint {
				return nil, fmt.Errorf("invalid unicode-range U+%X-%X", r.Start, r.End)
			}
		}
		return d, nil
	case "custom":
		var v jsonCustom
		if err := json.Unmarshal(t.Value, &v); err != nil {
			return nil, err
		}
		value, err := parseCSS(v.Value, func(c *parser.Cursor) (values.CustomValue, error) {
			return values.ParseCustomValue(c), nil
		})
		return &CustomDescriptor{Property: v.Name, Value: value}, err
	}
	return nil, fmt.Errorf("unknown descriptor type %q", t.Type)
}

func marshalSource(s Source) ([]byte, error) {
	var t tagged
	var err error
	switch s := s.(type) {
	case *URLSource:
		v := jsonURLSource{URL: s.URL.URL, Tech: s.Tech}
		if s.Format != "" {
			v.Format = &s.Format
		}
		if v.Tech == nil {
			v.Tech = []FontTechnology{}
		}
		t, err = newTagged("url", v)
	case *LocalSource:
		t, err = newTagged("local", cssText(s.Family))
	default:
		return nil, fmt.Errorf("cannot encode source %T", s)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

func unmarshalSource(data []byte) (Source, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	switch t.Type {
	case "url":
		var v jsonURLSource
		if err := json.Unmarshal(t.Value, &v); err != nil {
			return nil, err
		}
		s := &URLSource{URL: values.URL{URL: v.URL}}
		if v.Format != nil {
			s.Format = *v.Format
		}
		if len(v.Tech) > 0 {
			s.Tech = v.Tech
		}
		return s, nil
	case "local":
		family, err := unmarshalCSS(t.Value, values.ParseFontFamily)
		return &LocalSource{Family: family}, err
	}
	return nil, fmt.Errorf("unknown source type %q", t.Type)
}

// MarshalJSON encodes a known format as {"type": "woff2"} and any other
// format as {"type": "string", "value": "x-custom"}.
func (f FontFormat) MarshalJSON() ([]byte, error) {
	if f.Known() {
		return json.Marshal(tagged{Type: string(f)})
	}
	t, err := newTagged("string", string(f))
	if err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

// UnmarshalJSON decodes a format encoded by MarshalJSON.
func (f *FontFormat) UnmarshalJSON(data []byte) error {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	if t.Type != "string" {
		if !FontFormat(t.Type).Known() {
			return fmt.Errorf("unknown font format type %q", t.Type)
		}
		*f = FontFormat(t.Type)
		return nil
	}
	var s string
	if err := json.Unmarshal(t.Value, &s); err != nil {
		return err
	}
	*f = FontFormat(s)
	return nil
}

// MarshalJSON encodes the technology as {"type": "<keyword>"}.
func (t FontTechnology) MarshalJSON() ([]byte, error) {
	if t < 0 || int(t) >= len(techNames) {
		return nil, fmt.Errorf("cannot encode %s", t)
	}
	return json.Marshal(tagged{Type: t.String()})
}

// UnmarshalJSON decodes a technology encoded by MarshalJSON.
func (t *FontTechnology) UnmarshalJSON(data []byte) error {
	var v tagged
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	for i, name := range techNames {
		if v.Type == name {
			*t = FontTechnology(i)
			return nil
		}
	}
	return fmt.Errorf("unknown font technology %q", v.Type)
}

// cssText returns the canonical serialization of v.
func cssText(v interface{ ToCSS(*printer.Printer) }) string {
	var buf bytes.Buffer
	v.ToCSS(printer.New(&buf, printer.Options{}))
	return buf.String()
}

// unmarshalCSS decodes a JSON string and parses it with fn.
func unmarshalCSS[T any](data json.RawMessage, fn func(*parser.Cursor) (T, error)) (T, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var zero T
		return zero, err
	}
	return parseCSS(s, fn)
}

// parseCSS parses all of s with fn.
func parseCSS[T any](s string, fn func(*parser.Cursor) (T, error)) (T, error) {
	a, err := parser.ParseComponentValues(scanner.New(strings.NewReader(s)))
	if err != nil {
		var zero T
		return zero, err
	}
	return parser.ParseEntirely(parser.NewCursor(a, token.Pos{Char: len(s)}), fn)
}
