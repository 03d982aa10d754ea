// Package values implements the CSS value grammars used by @font-face
// descriptors: URLs, font family names, weight, style and stretch values,
// two-value ranges and raw custom values.
//
// Every value type parses from a parser.Cursor and serializes through a
// printer.Printer with a ToCSS method.
package values
