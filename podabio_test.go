package podabio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil426/podabio-sub000/internal/logger"
	"github.com/phil426/podabio-sub000/internal/themecss"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

func auroraTheme() *tokens.Theme {
	return &tokens.Theme{
		ID:   7,
		Name: "Aurora Borealis!!",
		Legacy: tokens.Legacy{
			Colors:        tokens.LegacyColors{Accent: "#34d399"},
			Fonts:         tokens.LegacyFonts{Heading: "Playfair Display", Body: "Inter"},
			SpatialEffect: "glass",
			WidgetStyles:  tokens.Group{tokens.WidgetBorderEffect: "glow"},
		},
	}
}

func TestRenderWithoutTheme(t *testing.T) {
	res, err := Render(nil, tokens.PageOverrides{CustomAccentColor: "#123456"})
	require.NoError(t, err)

	assert.Equal(t, "#123456", res.Tokens.Value(tokens.AccentPrimary))
	assert.Contains(t, res.CSS, "--color-accent-primary: #123456;")
	assert.True(t, strings.HasPrefix(res.CSS, ":root {\n"))
	assert.Empty(t, res.ThemeClass)
	assert.Empty(t, res.BodyClass)
	assert.Empty(t, res.Diagnostics)

	_, err = themecss.VerifyStylesheet(res.CSS)
	assert.NoError(t, err)
}

func TestRenderTheme(t *testing.T) {
	res, err := Render(auroraTheme(), tokens.PageOverrides{})
	require.NoError(t, err)

	assert.Equal(t, "theme-aurora-borealis", res.ThemeClass)
	assert.Equal(t, "spatial-glass theme-aurora-borealis", res.BodyClass)
	assert.Equal(t, "#34d399", res.Tokens.Value(tokens.AccentPrimary))
	assert.Contains(t, res.FontsURL, "family=Playfair+Display:wght@")
	assert.Equal(t, 1, strings.Count(res.FontsURL, "family=Inter:"))
}

func TestRenderIsIdempotent(t *testing.T) {
	page := tokens.PageOverrides{CustomHeadingFont: "Lora", FeaturedEffect: "pulse"}
	first, err := Render(auroraTheme(), page)
	require.NoError(t, err)
	second, err := Render(auroraTheme(), page)
	require.NoError(t, err)

	assert.Equal(t, first.CSS, second.CSS)
	assert.Equal(t, first.FontsURL, second.FontsURL)
}

func TestRenderWithConfig(t *testing.T) {
	cfg := themecss.DefaultConfig()
	cfg.Defaults[tokens.AccentPrimary] = "#ff00ff"

	res, err := RenderWith(cfg, nil, tokens.PageOverrides{})
	require.NoError(t, err)
	assert.Contains(t, res.CSS, "--color-accent-primary: #ff00ff;")
}

func TestRendererLogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	theme := auroraTheme()
	theme.ColorTokens = tokens.Group{"accent": map[string]any{"primary": "red;}"}}

	res, err := Renderer{Logger: log}.Render(theme, tokens.PageOverrides{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Diagnostics)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"code":"unsafe_value"`)
	assert.Contains(t, out, `"theme":"Aurora Borealis!!"`)
	assert.Contains(t, out, "stylesheet rendered")
}

func TestHeadFragment(t *testing.T) {
	res, err := Render(auroraTheme(), tokens.PageOverrides{})
	require.NoError(t, err)

	head, err := HeadFragment(res)
	require.NoError(t, err)
	html := string(head)

	// Preconnect hints, then the inline block, then external stylesheets.
	preconnect := strings.LastIndex(html, `rel="preconnect"`)
	style := strings.Index(html, "<style>")
	styleEnd := strings.Index(html, "</style>")
	fonts := strings.Index(html, `rel="stylesheet"`)
	require.GreaterOrEqual(t, preconnect, 0)
	require.GreaterOrEqual(t, fonts, 0)
	assert.Less(t, preconnect, style)
	assert.Less(t, styleEnd, fonts)
	assert.Equal(t, 1, strings.Count(html, `rel="stylesheet"`))

	// CSS passes through unescaped, the URL is attribute-escaped.
	assert.Contains(t, html, res.CSS)
	assert.Contains(t, html, "&amp;display=swap")
	assert.True(t, strings.HasSuffix(html, "&amp;display=swap\">\n"))
}

func TestHeadFragmentWithoutFonts(t *testing.T) {
	cfg := themecss.DefaultConfig()
	for _, id := range []tokens.SlotID{tokens.FontHeading, tokens.FontBody, tokens.FontWidgetHeading, tokens.FontWidgetBody} {
		cfg.Defaults[id] = "system-ui"
	}
	res, err := RenderWith(cfg, nil, tokens.PageOverrides{})
	require.NoError(t, err)
	require.Empty(t, res.FontsURL)

	head, err := HeadFragment(res)
	require.NoError(t, err)
	assert.NotContains(t, string(head), "preconnect")
	assert.NotContains(t, string(head), `rel="stylesheet"`)
	assert.True(t, strings.HasPrefix(string(head), "<style>"))
	assert.True(t, strings.HasSuffix(string(head), "</style>\n"))
}

func TestHeadFragmentRejectsBrokenCSS(t *testing.T) {
	_, err := HeadFragment(nil)
	assert.Error(t, err)

	res := &Result{Stylesheet: themecss.Stylesheet{CSS: "body { color: red; </style><script>"}}
	_, err = HeadFragment(res)
	assert.Error(t, err)
}
