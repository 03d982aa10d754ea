package fontface

import (
	"io"
	"strings"

	"github.com/benbjohnson/fontface/ast"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontface'
func tracer() tracing.Trace {
	return tracing.Select("fontface")
}

// ParseStyleSheet reads a style sheet from r and parses its @font-face
// rules. Other rules are ignored.
//
// Parsing continues after errors. The returned error is a parser.ErrorList
// of every error found; the rules parsed so far are returned along with it.
func ParseStyleSheet(r io.Reader) ([]*Rule, error) {
	s := scanner.New(r)
	ss, err := parser.ParseStyleSheet(s)
	for _, e := range s.Errors {
		tracer().Debugf("%s: %s", e.Pos, e.Message)
	}

	var errs parser.ErrorList
	if list, ok := err.(parser.ErrorList); ok {
		errs = append(errs, list...)
	} else if err != nil {
		errs = append(errs, err)
	}

	var rules []*Rule
	for _, r := range ss.Rules {
		at, ok := r.(*ast.AtRule)
		if !ok || !strings.EqualFold(at.Name, "font-face") {
			continue
		}
		rule, err := ParseRule(at)
		if list, ok := err.(parser.ErrorList); ok {
			errs = append(errs, list...)
		} else if err != nil {
			errs = append(errs, err)
		}
		if rule != nil {
			rules = append(rules, rule)
		}
	}
	tracer().Debugf("parsed %d @font-face rules, %d errors", len(rules), len(errs))
	return rules, errs.Err()
}

// Format writes rules to w, one after another.
func Format(w io.Writer, rules []*Rule, opts printer.Options) error {
	p := printer.New(w, opts)
	for i, r := range rules {
		if i > 0 {
			p.Newline()
		}
		r.ToCSS(p)
	}
	if !opts.Minify && len(rules) > 0 {
		p.Newline()
	}
	return p.Err()
}
