// Command fontfacefmt reads style sheets and prints their @font-face rules
// in canonical or minified form.
//
// Usage:
//
//	fontfacefmt [flags] [file ...]
//
// Without files, the style sheet is read from standard input. With -list,
// the rules are summarized in a table instead; with -json, they are written
// as JSON. -family, -weight and -italic
// select the rules which match a font request.
//
// Flags override the settings of the YAML file given with -config:
//
//	minify: true
//	indent: "\t"
//	trace: Debug
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbjohnson/fontface"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/benbjohnson/fontface/values"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	xfont "golang.org/x/image/font"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'fontface'
func tracer() tracing.Trace {
	return tracing.Select("fontface")
}

// Options holds the settings of a run.
type Options struct {
	Minify bool   `yaml:"minify"`
	Indent string `yaml:"indent"`
	Trace  string `yaml:"trace"`

	List   bool   `yaml:"-"`
	JSON   bool   `yaml:"-"`
	Family string `yaml:"-"`
	Weight int    `yaml:"-"`
	Italic bool   `yaml:"-"`
}

func main() {
	initDisplay()

	opts, args, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}

	// set up logging
	if err := setupTracing(opts.Trace); err != nil {
		pterm.Error.Println("error configuring tracing")
		os.Exit(1)
	}
	tracer().Infof("Trace level is %s", opts.Trace)

	if err := run(opts, args, os.Stdin, os.Stdout); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// parseFlags reads the command line and the config file it names.
// Flags given on the command line win over the config file.
func parseFlags(arguments []string) (Options, []string, error) {
	opts := Options{Indent: printer.DefaultIndent, Trace: "Error", Weight: 400}

	fs := flag.NewFlagSet("fontfacefmt", flag.ContinueOnError)
	config := fs.String("config", "", "YAML config file")
	minify := fs.Bool("minify", opts.Minify, "minify the output")
	indent := fs.String("indent", opts.Indent, "indentation of descriptors")
	tlevel := fs.String("trace", opts.Trace, "Trace level [Debug|Info|Error]")
	fs.BoolVar(&opts.List, "list", false, "list rules as a table")
	fs.BoolVar(&opts.JSON, "json", false, "write rules as JSON")
	fs.StringVar(&opts.Family, "family", "", "only rules of this font family")
	fs.IntVar(&opts.Weight, "weight", opts.Weight, "font weight to match with -family")
	fs.BoolVar(&opts.Italic, "italic", false, "match italic faces with -family")
	if err := fs.Parse(arguments); err != nil {
		return opts, nil, err
	}

	if *config != "" {
		if err := loadConfig(*config, &opts); err != nil {
			return opts, nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "minify":
			opts.Minify = *minify
		case "indent":
			opts.Indent = *indent
		case "trace":
			opts.Trace = *tlevel
		}
	})
	return opts, fs.Args(), nil
}

// loadConfig overwrites opts with the settings of a YAML file.
func loadConfig(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// setupTracing routes the library's traces to the Go logger.
func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.fontface":         level,
		"trace.fontface.scanner": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// run parses every input and writes the selected rules to w. Inputs with
// errors are still printed; the first error is returned afterwards.
func run(opts Options, paths []string, stdin io.Reader, w io.Writer) error {
	var rules []*fontface.Rule
	var firstErr error
	parse := func(name string, r io.Reader) {
		a, err := fontface.ParseStyleSheet(r)
		if err != nil {
			reportErrors(name, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", name, err)
			}
		}
		rules = append(rules, a...)
	}

	if len(paths) == 0 {
		parse("<stdin>", stdin)
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		parse(path, f)
		f.Close()
	}

	rules = selectRules(rules, opts)
	tracer().Debugf("%d rules selected", len(rules))

	var err error
	switch {
	case opts.List:
		err = listRules(w, rules)
	case opts.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(rules)
	default:
		err = fontface.Format(w, rules, printer.Options{Minify: opts.Minify, Indent: opts.Indent})
	}
	if err != nil {
		return err
	}
	return firstErr
}

// reportErrors traces every error of a parse.
func reportErrors(name string, err error) {
	var list parser.ErrorList
	if !errors.As(err, &list) {
		list = parser.ErrorList{err}
	}
	for _, e := range list {
		var perr *parser.Error
		if errors.As(e, &perr) {
			tracer().Errorf("%s:%s: %s", name, perr.Pos, perr.Message)
			continue
		}
		tracer().Errorf("%s: %v", name, e)
	}
}

// selectRules returns the rules matching the font request of opts.
// All rules are returned if no family is requested.
func selectRules(rules []*fontface.Rule, opts Options) []*fontface.Rule {
	if opts.Family == "" {
		return rules
	}
	style := xfont.StyleNormal
	if opts.Italic {
		style = xfont.StyleItalic
	}
	weight := values.FontWeight{Value: float64(opts.Weight)}.Font()

	var a []*fontface.Rule
	for _, r := range rules {
		if r.Matches(opts.Family, style, weight) {
			a = append(a, r)
		}
	}
	return a
}

// listRules writes a table with one row per rule.
func listRules(w io.Writer, rules []*fontface.Rule) error {
	data := pterm.TableData{{"Family", "Weight", "Style", "Sources"}}
	for _, r := range rules {
		family, _ := r.Family()
		var sources []string
		for _, s := range r.Sources() {
			sources = append(sources, cssString(s))
		}
		data = append(data, []string{
			family.String(),
			cssString(r.Weight()),
			cssString(r.Style()),
			strings.Join(sources, ", "),
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// cssString returns the canonical serialization of v.
func cssString(v interface{ ToCSS(*printer.Printer) }) string {
	var buf bytes.Buffer
	v.ToCSS(printer.New(&buf, printer.Options{}))
	return buf.String()
}
