package fontface_test

import (
	"strings"
	"testing"

	"github.com/benbjohnson/fontface"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	xfont "golang.org/x/image/font"
)

// --- Test Suite Preparation ------------------------------------------------

const robotoFaces = `
@font-face { font-family: Roboto; src: url(r-400.woff2) format("woff2"); font-weight: 400; unicode-range: U+0-FF }
@font-face { font-family: Roboto; src: url(r-700.woff2) format("woff2"); font-weight: bold; unicode-range: U+0-FF }
@font-face { font-family: Roboto; src: url(r-italic.woff2) format("woff2"); font-style: italic; font-weight: 100 900 }
@font-face { font-family: Roboto; src: url(r-cyrillic.woff2); font-weight: 400; unicode-range: U+400-4FF }
@font-face { font-family: "Roboto Mono"; src: local(Roboto Mono) }
`

type MatchTestEnviron struct {
	suite.Suite
	rules []*fontface.Rule
}

func TestMatchFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontface")
	defer teardown()
	suite.Run(t, new(MatchTestEnviron))
}

func (env *MatchTestEnviron) SetupSuite() {
	rules, err := fontface.ParseStyleSheet(strings.NewReader(robotoFaces))
	env.Require().NoError(err)
	env.Require().Len(rules, 5)
	env.rules = rules
}

// --- Tests -----------------------------------------------------------------

func (env *MatchTestEnviron) TestRegular() {
	env.Equal([]string{"r-400.woff2", "r-cyrillic.woff2"}, env.match("roboto", xfont.StyleNormal, xfont.WeightNormal))
}

func (env *MatchTestEnviron) TestBold() {
	env.Equal([]string{"r-700.woff2"}, env.match("Roboto", xfont.StyleNormal, xfont.WeightBold))
	env.Empty(env.match("Roboto", xfont.StyleNormal, xfont.WeightSemiBold))
}

func (env *MatchTestEnviron) TestItalicRange() {
	for _, w := range []xfont.Weight{xfont.WeightThin, xfont.WeightMedium, xfont.WeightBlack} {
		env.Equal([]string{"r-italic.woff2"}, env.match("Roboto", xfont.StyleItalic, w), "weight %d", w)
	}
	env.Empty(env.match("Roboto", xfont.StyleOblique, xfont.WeightNormal))
}

func (env *MatchTestEnviron) TestFamilyName() {
	env.Equal([]string{"Roboto Mono"}, env.match("roboto mono", xfont.StyleNormal, xfont.WeightNormal))
	env.Empty(env.match("Roboto Slab", xfont.StyleNormal, xfont.WeightNormal))
}

func (env *MatchTestEnviron) TestCoverage() {
	var cyrillic []string
	for _, r := range env.rules {
		if !r.Matches("Roboto", xfont.StyleNormal, xfont.WeightNormal) {
			continue
		}
		for _, ur := range r.UnicodeRanges() {
			if ur.Contains('Ж') {
				cyrillic = append(cyrillic, sourceName(r))
			}
		}
	}
	env.Equal([]string{"r-cyrillic.woff2"}, cyrillic)
}

// --- Helpers ---------------------------------------------------------------

// match returns the first source of every rule matching the request.
func (env *MatchTestEnviron) match(family string, style xfont.Style, weight xfont.Weight) []string {
	var a []string
	for _, r := range env.rules {
		if r.Matches(family, style, weight) {
			a = append(a, sourceName(r))
		}
	}
	return a
}

// sourceName returns the url or local name of the first source of r.
func sourceName(r *fontface.Rule) string {
	sources := r.Sources()
	if len(sources) == 0 {
		return ""
	}
	switch s := sources[0].(type) {
	case *fontface.URLSource:
		return s.URL.URL
	case *fontface.LocalSource:
		return s.Family.String()
	}
	return ""
}
