package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benbjohnson/fontface"
	"github.com/benbjohnson/fontface/parser"
	"github.com/benbjohnson/fontface/printer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = `
body { font-family: Inter, sans-serif }
@font-face { font-family: Inter; src: url(inter.woff2) format("woff2"); font-weight: 100 900 }
@font-face { font-family: Inter; src: url(inter-italic.woff2) format("woff2"); font-style: italic }
`

func TestParseFlags(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "fontfacefmt.yaml")
	require.NoError(t, os.WriteFile(config, []byte("minify: true\nindent: \"\\t\"\ntrace: Debug\n"), 0o644))

	opts, args, err := parseFlags([]string{"-config", config, "-trace", "Info", "a.css"})
	require.NoError(t, err)
	assert.True(t, opts.Minify)
	assert.Equal(t, "\t", opts.Indent)
	assert.Equal(t, "Info", opts.Trace)
	assert.Equal(t, 400, opts.Weight)
	assert.Equal(t, []string{"a.css"}, args)

	opts, _, err = parseFlags([]string{"-config", config, "-minify=false"})
	require.NoError(t, err)
	assert.False(t, opts.Minify)

	_, _, err = parseFlags([]string{"-config", filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontface")
	defer teardown()

	var buf bytes.Buffer
	err := run(Options{Minify: true}, nil, strings.NewReader(sheet), &buf)
	require.NoError(t, err)
	assert.Equal(t,
		`@font-face{font-family:Inter;src:url(inter.woff2)format("woff2");font-weight:100 900}`+
			`@font-face{font-family:Inter;src:url(inter-italic.woff2)format("woff2");font-style:italic}`,
		buf.String())

	// Select the italic face.
	buf.Reset()
	err = run(Options{Indent: "  ", Family: "inter", Weight: 400, Italic: true}, nil, strings.NewReader(sheet), &buf)
	require.NoError(t, err)
	assert.Equal(t, `@font-face {
  font-family: Inter;
  src: url(inter-italic.woff2) format("woff2");
  font-style: italic;
}
`, buf.String())
}

func TestRun_File(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontface")
	defer teardown()

	path := filepath.Join(t.TempDir(), "fonts.css")
	require.NoError(t, os.WriteFile(path, []byte(sheet+"@font-face { src: url(x) tech(y); font-family: X }"), 0o644))

	var buf bytes.Buffer
	err := run(Options{List: true}, []string{path}, nil, &buf)
	assert.ErrorIs(t, err, parser.ErrUnexpectedToken)
	assert.Contains(t, err.Error(), path)

	out := buf.String()
	assert.Contains(t, out, "Family")
	assert.Contains(t, out, "100 900")
	assert.Contains(t, out, `url(inter-italic.woff2) format("woff2")`)
	assert.Contains(t, out, "X")

	err = run(Options{}, []string{filepath.Join(t.TempDir(), "missing.css")}, nil, &buf)
	assert.Error(t, err)
}

func TestRun_JSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontface")
	defer teardown()

	var buf bytes.Buffer
	err := run(Options{JSON: true, Family: "Inter", Weight: 400, Italic: true}, nil, strings.NewReader(sheet), &buf)
	require.NoError(t, err)

	var rules []*fontface.Rule
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "@font-face{font-family:Inter;src:url(inter-italic.woff2)format(\"woff2\");font-style:italic}", minified(t, rules))
}

func minified(t *testing.T, rules []*fontface.Rule) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fontface.Format(&buf, rules, printer.Options{Minify: true}))
	return buf.String()
}
