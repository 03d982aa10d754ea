/*
Package fontface parses and serializes CSS @font-face rules.

The package builds on a CSS3 compliant scanner and parser. The scanner
breaks up a stream of code points into tokens and the parser builds a
generic syntax tree from them. The @font-face block is then parsed a
second time, declaration by declaration, into typed descriptors.


Descriptors

A Rule holds its descriptors in source order. The known descriptors are
src, font-family, font-style, font-weight, font-stretch and unicode-range.
Any other descriptor, and a known descriptor whose value does not match its
grammar, is kept as a CustomDescriptor with its raw component values, so
parsing never stops at a descriptor it does not understand.

The src descriptor is a comma separated list of url() and local() sources.
It fails as a whole if any source is invalid: its value is kept as a
CustomDescriptor as well, but the error of the source is also reported.
Within a url source, format() must come before tech(); a source breaking
that rule is reported with parser.ErrMalformedAtRuleBody.


Serialization

Rules are written through a printer.Printer, either in canonical form with
one descriptor per line or minified. Output of the serializer parses back
to the same rule. Unicode ranges are written in their shortest form, using
"?" wildcards where the range covers a whole hex prefix.

*/
package fontface
