package themecss

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

func render(t *testing.T, theme *tokens.Theme, page tokens.PageOverrides) Stylesheet {
	t.Helper()
	sheet, err := Emit(Resolve(DefaultConfig(), theme, page))
	require.NoError(t, err)
	return sheet
}

// block returns the body of the first rule with the given selector.
func block(t *testing.T, css, selector string) string {
	t.Helper()
	start := strings.Index(css, selector+" {\n")
	require.GreaterOrEqual(t, start, 0, "selector %q not found", selector)
	rest := css[start:]
	end := strings.Index(rest, "}\n")
	require.Greater(t, end, 0)
	return rest[:end]
}

func TestEmitDefaults(t *testing.T) {
	sheet := render(t, nil, tokens.PageOverrides{})

	require.True(t, strings.HasPrefix(sheet.CSS, ":root {\n"))
	root := block(t, sheet.CSS, ":root")
	for _, slot := range tokens.Slots() {
		assert.Contains(t, root, "  "+slot.Property+": ", slot.ID)
	}
	assert.Contains(t, root, "--color-accent-primary: #2563eb;")
	assert.Contains(t, root, "--font-family-heading: 'Inter', sans-serif;")
	assert.Contains(t, root, "--space-md: 1rem;")
	assert.Contains(t, root, "--widget-box-shadow: 0 1px 3px rgba(15, 23, 42, 0.12);")
	assert.Contains(t, root, "--accent-color: #2563eb;")
	assert.Contains(t, root, "--heading-text-shadow: none;")

	assert.Empty(t, sheet.BodyClass)
	assert.Empty(t, sheet.ThemeClass)
	assert.Empty(t, sheet.SpatialEffectClass)
	assert.Equal(t, "https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap", sheet.FontsURL)

	_, err := VerifyStylesheet(sheet.CSS)
	require.NoError(t, err)
}

func TestEmitIdempotent(t *testing.T) {
	theme := &tokens.Theme{
		Name:        "Aurora Borealis!!",
		ColorTokens: tokens.Group{"gradient": map[string]any{"page": "linear-gradient(180deg, #0f172a, #1e3a8a)"}},
		SpacingTokens: tokens.Group{
			"density": "compact",
		},
	}
	theme.WidgetStyles = tokens.Group{tokens.WidgetBorderEffect: "glow"}
	page := tokens.PageOverrides{SpatialEffect: "floating", FeaturedEffect: "shine"}

	rt := Resolve(DefaultConfig(), theme, page)
	first, err := Emit(rt)
	require.NoError(t, err)
	second, err := Emit(rt)
	require.NoError(t, err)
	third := render(t, theme, page)

	assert.Equal(t, first, second)
	assert.Equal(t, first.CSS, third.CSS)
}

func TestEmitContractError(t *testing.T) {
	rt := Resolve(DefaultConfig(), nil, tokens.PageOverrides{})
	delete(rt.Values, tokens.ShadowLevel1)
	rt.Values[tokens.EasingStandard] = "  "

	_, err := Emit(rt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteTokens))

	var ce *ContractError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "emit", ce.Op)
	assert.ElementsMatch(t, []string{string(tokens.ShadowLevel1), string(tokens.EasingStandard)}, ce.Missing)

	_, err = Emit(nil)
	assert.ErrorIs(t, err, ErrIncompleteTokens)
}

func TestEmitReplacesInjectedUnsafeValue(t *testing.T) {
	rt := Resolve(DefaultConfig(), nil, tokens.PageOverrides{})
	rt.Values[tokens.AccentPrimary] = "red;}</style><script>alert(1)</script>"

	sheet, err := Emit(rt)
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(sheet.CSS), "</style")
	assert.NotContains(t, sheet.CSS, "<script")
	assert.Contains(t, sheet.CSS, "--color-accent-primary: #2563eb;")
	require.NotEmpty(t, sheet.Diagnostics)
	last := sheet.Diagnostics[len(sheet.Diagnostics)-1]
	assert.Equal(t, CodeUnsafe, last.Code)
	assert.Equal(t, LayerEmit, last.Layer)
}

func TestEmitUnsafeThemeValueNeverReachesCSS(t *testing.T) {
	hostile := []string{
		"red}</style><script>alert(1)</script>",
		"red; background: url(javascript:alert(1))",
		"expression(alert(1))",
		"/* */ red",
		"@import url(evil.css)",
	}
	for _, v := range hostile {
		t.Run(v, func(t *testing.T) {
			theme := &tokens.Theme{
				Name:             v,
				ColorTokens:      tokens.Group{"accent": map[string]any{"primary": v}},
				TypographyTokens: tokens.Group{"font": map[string]any{"heading": v}},
			}
			theme.WidgetStyles = tokens.Group{tokens.WidgetBorderEffect: "glow", tokens.WidgetGlowColor: v}

			sheet := render(t, theme, tokens.PageOverrides{CustomBodyFont: v})
			assert.NotContains(t, sheet.CSS, v)
			_, err := VerifyStylesheet(sheet.CSS)
			require.NoError(t, err)
			assert.NotContains(t, sheet.FontsURL, "<")
		})
	}
}

func TestEmitGradientTextColor(t *testing.T) {
	gradient := "linear-gradient(90deg, #ff0000, #0000ff)"
	theme := &tokens.Theme{
		TypographyTokens: tokens.Group{"color": map[string]any{"heading": gradient}},
	}
	sheet := render(t, theme, tokens.PageOverrides{})

	title := block(t, sheet.CSS, ".page-title")
	assert.Contains(t, title, "background-image: "+gradient+";")
	assert.Contains(t, title, "-webkit-background-clip: text;")
	assert.Contains(t, title, "-webkit-text-fill-color: transparent;")
	assert.NotContains(t, title, "  color: "+gradient)
	assert.NotContains(t, title, "text-shadow")

	desc := block(t, sheet.CSS, ".page-description")
	assert.Contains(t, desc, "  color: #0f172a;")
	assert.NotContains(t, desc, "background-clip")
}

func TestEmitCompactSpacing(t *testing.T) {
	theme := &tokens.Theme{SpacingTokens: tokens.Group{"density": "compact"}}
	sheet := render(t, theme, tokens.PageOverrides{})

	root := block(t, sheet.CSS, ":root")
	assert.Contains(t, root, "--space-md: 0.75rem;")
	assert.Contains(t, root, "--space-lg: 1.125rem;")
}

func TestEmitScaledSpacingIsExact(t *testing.T) {
	theme := &tokens.Theme{SpacingTokens: tokens.Group{
		"density":    "compact",
		"base_scale": map[string]any{"md": 1.125, "sm": 0.7},
	}}
	sheet := render(t, theme, tokens.PageOverrides{})

	root := block(t, sheet.CSS, ":root")
	assert.Contains(t, root, "--space-md: 0.84375rem;")
	assert.Contains(t, root, "--space-sm: 0.525rem;")
}

func TestEmitWidgetShadow(t *testing.T) {
	tests := []struct {
		name   string
		styles tokens.Group
		want   string
	}{
		{
			name:   "glow",
			styles: tokens.Group{tokens.WidgetBorderEffect: "glow", tokens.WidgetGlowColor: "#ff0000", tokens.WidgetBorderGlowIntensity: "pronounced"},
			want:   "--widget-box-shadow: 0 1px 3px rgba(15, 23, 42, 0.12), 0 0 12px rgba(255, 0, 0, 0.85);",
		},
		{
			name:   "pronounced shadow",
			styles: tokens.Group{tokens.WidgetBorderEffect: "shadow", tokens.WidgetBorderShadowIntensity: "pronounced"},
			want:   "--widget-box-shadow: 0 8px 24px rgba(15, 23, 42, 0.18);",
		},
		{
			name:   "unknown effect defaults to subtle shadow",
			styles: tokens.Group{tokens.WidgetBorderEffect: "sparkles"},
			want:   "--widget-box-shadow: 0 1px 3px rgba(15, 23, 42, 0.12);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := &tokens.Theme{}
			theme.WidgetStyles = tt.styles
			sheet := render(t, theme, tokens.PageOverrides{})
			assert.Contains(t, sheet.CSS, tt.want)
		})
	}
}

func TestEmitWidgetShapeAndBorder(t *testing.T) {
	page := tokens.PageOverrides{WidgetStyles: tokens.Group{
		tokens.WidgetShape:       "pill",
		tokens.WidgetBorderWidth: "bold",
		tokens.WidgetSpacing:     "spacious",
	}}
	root := block(t, render(t, nil, page).CSS, ":root")

	assert.Contains(t, root, "--widget-border-radius: 9999px;")
	assert.Contains(t, root, "--widget-border-width: 3px;")
	assert.Contains(t, root, "--widget-gap: var(--space-lg);")
	assert.Contains(t, root, "--widget-padding: var(--space-xl);")
}

func TestEmitClasses(t *testing.T) {
	tests := []struct {
		name      string
		theme     string
		spatial   string
		wantBody  string
		wantTheme string
	}{
		{name: "theme and spatial", theme: "Aurora Borealis!!", spatial: "glass", wantBody: "spatial-glass theme-aurora-borealis", wantTheme: "theme-aurora-borealis"},
		{name: "symbols only", theme: "???", spatial: "glass", wantBody: "spatial-glass"},
		{name: "theme only", theme: "Midnight", wantBody: "theme-midnight", wantTheme: "theme-midnight"},
		{name: "nothing", theme: "???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := render(t, &tokens.Theme{Name: tt.theme}, tokens.PageOverrides{SpatialEffect: tt.spatial})
			assert.Equal(t, tt.wantBody, sheet.BodyClass)
			assert.Equal(t, tt.wantTheme, sheet.ThemeClass)
			assert.NotContains(t, sheet.BodyClass, "  ")
		})
	}
}

func TestEmitEffectTemplates(t *testing.T) {
	sheet := render(t, nil, tokens.PageOverrides{
		SpatialEffect:  "tilt",
		PageNameEffect: "neon",
		FeaturedEffect: "pulse",
	})

	assert.Equal(t, "spatial-tilt", sheet.SpatialEffectClass)
	assert.Equal(t, "page-name-neon", sheet.PageNameClass)
	assert.Equal(t, "featured-pulse", sheet.FeaturedClass)
	assert.Contains(t, sheet.CSS, "body.spatial-tilt .widget:hover {")
	assert.Contains(t, sheet.CSS, ".page-title.page-name-neon {")
	assert.Contains(t, sheet.CSS, "@keyframes podabio-pulse {")

	_, err := VerifyStylesheet(sheet.CSS)
	require.NoError(t, err)
}

func TestEmitFontsDeduplicated(t *testing.T) {
	theme := &tokens.Theme{}
	theme.Fonts.Heading = "Playfair Display"
	theme.Fonts.Body = "Inter"

	sheet := render(t, theme, tokens.PageOverrides{})

	assert.Equal(t,
		"https://fonts.googleapis.com/css2?family=Playfair+Display:wght@400;500;600;700&family=Inter:wght@400;500;600;700&display=swap",
		sheet.FontsURL)
	assert.Contains(t, sheet.CSS, "--font-family-heading: 'Playfair Display', sans-serif;")
	assert.Contains(t, sheet.CSS, "--font-family-widget-heading: 'Playfair Display', sans-serif;")

	same := render(t, nil, tokens.PageOverrides{CustomHeadingFont: "Lato", CustomBodyFont: "Lato"})
	assert.Equal(t, 1, strings.Count(same.FontsURL, "family="))
}

func TestEmitTextShadow(t *testing.T) {
	theme := &tokens.Theme{
		TypographyTokens: tokens.Group{
			"effect": map[string]any{
				"heading": map[string]any{"type": "glow", "color": "#ff00aa", "blur": 10},
			},
		},
	}
	root := block(t, render(t, theme, tokens.PageOverrides{}).CSS, ":root")
	assert.Contains(t, root, "--heading-text-shadow: 0 0 10px #ff00aa;")
	assert.Contains(t, root, "--widget-heading-text-shadow: none;")
}
