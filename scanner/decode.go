package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tracer writes to trace with key 'fontface.scanner'
func tracer() tracing.Trace {
	return tracing.Select("fontface.scanner")
}

// charsetPrefix starts an @charset rule. It is matched byte-for-byte. (§3.2)
var charsetPrefix = []byte(`@charset "`)

// sniffLen is the number of bytes inspected to determine the encoding.
const sniffLen = 1024

// Decode returns a reader which yields r as preprocessed UTF-8 text.
//
// The encoding is determined from a byte order mark, then from a leading
// @charset rule, and defaults to UTF-8. A BOM always wins over @charset.
// The returned error reports an unsupported @charset label; the reader is
// still valid and falls back to UTF-8 in that case.
func Decode(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)

	enc, err := sniffEncoding(head)
	decoder := unicode.BOMOverride(enc.NewDecoder())
	return transform.NewReader(br, transform.Chain(decoder, preprocessor{})), err
}

// sniffEncoding determines the fallback encoding from an @charset rule.
func sniffEncoding(head []byte) (encoding.Encoding, error) {
	if !bytes.HasPrefix(head, charsetPrefix) {
		return unicode.UTF8, nil
	}
	rest := head[len(charsetPrefix):]
	end := bytes.Index(rest, []byte(`";`))
	if end < 0 {
		return unicode.UTF8, nil
	}
	label := strings.ToLower(string(rest[:end]))

	// A rule declaring UTF-16 cannot have been read as ASCII, so the
	// label is a lie and UTF-8 is used instead.
	if label == "utf-16be" || label == "utf-16le" {
		return unicode.UTF8, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		tracer().Errorf("unknown @charset label %q", label)
		return unicode.UTF8, fmt.Errorf("unknown charset %q", label)
	}
	tracer().Debugf("decoding input as %s", name)
	return enc, nil
}

// preprocessor filters code points as described in §3.3:
// CR, CRLF and FF become LF and NULL becomes U+FFFD.
type preprocessor struct {
	transform.NopResetter
}

// replacement is U+FFFD encoded as UTF-8.
const replacement = "\uFFFD"

// Transform implements transform.Transformer.
func (preprocessor) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		switch ch := src[nSrc]; ch {
		case '\r':
			// Need the following byte to collapse CRLF.
			if nSrc+1 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
			nSrc++
			if nSrc < len(src) && src[nSrc] == '\n' {
				nSrc++
			}
		case '\f':
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst, nSrc = nDst+1, nSrc+1
		case 0:
			if nDst+len(replacement) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], replacement)
			nSrc++
		default:
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ch
			nDst, nSrc = nDst+1, nSrc+1
		}
	}
	return nDst, nSrc, nil
}
