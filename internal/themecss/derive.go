package themecss

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

// ScaleSpacing returns base × multiplier, unrounded.
func ScaleSpacing(base, multiplier float64) float64 {
	return base * multiplier
}

// numberNoise is the inverse of the error FormatNumber drops, so 1.1*3 prints 3.3.
const numberNoise = 1e9

// FormatNumber prints n in its shortest exact decimal form. Only binary
// float noise below 1e-9 is cleaned; real digits are never rounded away.
func FormatNumber(n float64) string {
	r := math.Round(n*numberNoise) / numberNoise
	if math.IsInf(r, 0) || math.IsNaN(r) {
		r = n
	}
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// IntensityAlpha maps an intensity keyword to a glow alpha.
func IntensityAlpha(i tokens.Intensity) float64 {
	if i == tokens.IntensityPronounced {
		return 0.85
	}
	return 0.5
}

// ShadowBranch names which composite shadow rule fired.
type ShadowBranch string

// Shadow branches. Exactly one applies to a widget.
const (
	BranchGlow   ShadowBranch = "glow"
	BranchShadow ShadowBranch = "shadow"
)

// Shadow is a composite widget box-shadow.
type Shadow struct {
	Branch ShadowBranch
	Value  string
}

// CompositeShadow derives the widget box-shadow from the border effect.
// Glow combines the level-1 elevation with a colored glow ring; shadow picks
// the elevation level from the intensity.
func CompositeShadow(w WidgetStyle, level1, level2, glowFallback string) Shadow {
	if w.BorderEffect == tokens.EffectGlow {
		width := w.GlowWidth
		if width <= 0 {
			width = builtinConfig.GlowWidth
		}
		glow := GlowColor(w.GlowColor, w.GlowIntensity, glowFallback)
		return Shadow{
			Branch: BranchGlow,
			Value:  fmt.Sprintf("%s, 0 0 %spx %s", level1, FormatNumber(width), glow),
		}
	}

	if w.ShadowIntensity == tokens.IntensityPronounced {
		return Shadow{Branch: BranchShadow, Value: level2}
	}
	return Shadow{Branch: BranchShadow, Value: level1}
}

// GlowColor returns color at the given alpha. Hex colors become rgba();
// other color syntaxes are used as given. Gradients cannot glow, so they
// are replaced with fallback.
func GlowColor(color string, alpha float64, fallback string) string {
	color = strings.TrimSpace(color)
	if color == "" || IsGradient(color) {
		color = fallback
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}

	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, FormatNumber(alpha))
}

// IsGradient reports whether a color value is a CSS gradient. The check is a
// case-insensitive substring match, so any *-gradient() function counts.
func IsGradient(v string) bool {
	return strings.Contains(strings.ToLower(v), "gradient")
}

// Declaration is one CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// TextColorDeclarations applies a text color. Solid colors use color;
// gradients are painted through the glyphs with background-clip.
func TextColorDeclarations(v string) []Declaration {
	if !IsGradient(v) {
		return []Declaration{{"color", v}}
	}
	return []Declaration{
		{"background-image", v},
		{"background-clip", "text"},
		{"-webkit-background-clip", "text"},
		{"-webkit-text-fill-color", "transparent"},
		{"color", "transparent"},
	}
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "ui-rounded": true, "emoji": true, "math": true,
	"fangsong": true,
}

var webSafeFamilies = map[string]bool{
	"arial": true, "helvetica": true, "times": true, "times new roman": true,
	"georgia": true, "verdana": true, "tahoma": true, "trebuchet ms": true,
	"courier": true, "courier new": true, "impact": true, "garamond": true,
	"palatino": true,
}

// IsGenericFamily reports whether family is a CSS generic family keyword.
func IsGenericFamily(family string) bool {
	return genericFamilies[strings.ToLower(strings.TrimSpace(family))]
}

func isHostedFamily(family string) bool {
	key := strings.ToLower(strings.TrimSpace(family))
	return key != "" && !genericFamilies[key] && !webSafeFamilies[key]
}

// FontsURL builds one font-provider URL for the distinct hosted families, in
// first-seen order. It returns "" when no family needs fetching.
func FontsURL(baseURL string, weights []int, families ...string) string {
	seen := make(map[string]bool, len(families))
	var params []string

	axis := make([]string, len(weights))
	for i, w := range weights {
		axis[i] = strconv.Itoa(w)
	}
	weightSpec := ""
	if len(axis) > 0 {
		weightSpec = ":wght@" + strings.Join(axis, ";")
	}

	for _, f := range families {
		f = strings.TrimSpace(f)
		key := strings.ToLower(f)
		if !isHostedFamily(f) || seen[key] {
			continue
		}
		seen[key] = true
		params = append(params, "family="+url.QueryEscape(f)+weightSpec)
	}

	if len(params) == 0 {
		return ""
	}
	return baseURL + "?" + strings.Join(params, "&") + "&display=swap"
}

// FontStack renders a family as a font-family value with a generic fallback.
func FontStack(family string) string {
	if IsGenericFamily(family) {
		return strings.ToLower(family)
	}
	return "'" + family + "', sans-serif"
}

// Slug turns a theme name into its body class: lowercase, runs outside
// [a-z0-9] collapsed to one hyphen, trimmed, prefixed with "theme-".
// An empty result means no class.
func Slug(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return ""
	}
	slug := b.String()
	if len(slug) > 64 {
		slug = strings.TrimRight(slug[:64], "-")
	}
	return "theme-" + slug
}
