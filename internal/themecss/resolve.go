// Package themecss turns a theme snapshot and page overrides into a safe,
// deterministic stylesheet: Resolve merges the precedence layers, the derive
// functions compute spacing, shadows, text colors and the fonts URL, and Emit
// serializes the result.
package themecss

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

// ResolvedTokens is the flat, fully defaulted value set for one render.
// Every schema slot has a non-empty value.
type ResolvedTokens struct {
	ThemeName string
	HasTheme  bool

	Values  map[tokens.SlotID]string
	Sources map[tokens.SlotID]Layer

	Density     tokens.Density
	BaseScale   map[string]float64 // rem, keyed by tokens.SpacingSteps
	Multipliers map[string]float64

	Widget              WidgetStyle
	HeadingEffect       TextEffect
	WidgetHeadingEffect TextEffect

	SpatialEffect  tokens.SpatialEffect
	PageNameEffect tokens.PageNameEffect
	FeaturedEffect tokens.FeaturedEffect

	Diagnostics []Diagnostic

	config Config
}

// Value returns the resolved value of a slot.
func (rt *ResolvedTokens) Value(id tokens.SlotID) string {
	if rt == nil {
		return ""
	}
	return rt.Values[id]
}

// WidgetStyle is the resolved widget_styles block.
type WidgetStyle struct {
	BorderWeight    tokens.BorderWeight
	BorderEffect    tokens.BorderEffect
	ShadowIntensity tokens.Intensity
	GlowIntensity   float64 // alpha in [0, 1]
	GlowColor       string
	GlowWidth       float64 // px
	Spacing         tokens.Spacing
	Shape           tokens.Shape
}

// TextEffect is a resolved typography glow/shadow for one heading role.
type TextEffect struct {
	Type  tokens.TextEffectType
	Color string
	Blur  float64 // px
}

// slotRule adds the page override, legacy field and fallback slot to a
// schema slot. Slots without a rule resolve from their token path only.
type slotRule struct {
	override func(tokens.PageOverrides) string
	legacy   func(*tokens.Theme) string
	fallback tokens.SlotID
}

var slotRules = map[tokens.SlotID]slotRule{
	tokens.TextPrimary: {
		override: func(p tokens.PageOverrides) string { return p.CustomPrimaryColor },
		legacy:   func(t *tokens.Theme) string { return t.Colors.Primary },
	},
	tokens.TextSecondary: {
		override: func(p tokens.PageOverrides) string { return p.CustomSecondaryColor },
		legacy:   func(t *tokens.Theme) string { return t.Colors.Secondary },
	},
	tokens.AccentPrimary: {
		override: func(p tokens.PageOverrides) string { return p.CustomAccentColor },
		legacy:   func(t *tokens.Theme) string { return t.Colors.Accent },
	},
	tokens.BackgroundBase: {
		override: func(p tokens.PageOverrides) string { return p.CustomPageBackground },
		legacy:   func(t *tokens.Theme) string { return t.PageBackground },
	},
	tokens.BackgroundSurface: {
		override: func(p tokens.PageOverrides) string { return p.CustomWidgetBackground },
		legacy:   func(t *tokens.Theme) string { return t.WidgetBackground },
	},
	tokens.BorderDefault: {
		override: func(p tokens.PageOverrides) string { return p.CustomBorderColor },
		legacy:   func(t *tokens.Theme) string { return t.WidgetBorderColor },
	},
	tokens.FontHeading: {
		override: func(p tokens.PageOverrides) string { return p.CustomHeadingFont },
		legacy:   func(t *tokens.Theme) string { return t.Fonts.Heading },
	},
	tokens.FontBody: {
		override: func(p tokens.PageOverrides) string { return p.CustomBodyFont },
		legacy:   func(t *tokens.Theme) string { return t.Fonts.Body },
	},
	tokens.FontWidgetHeading:  {fallback: tokens.FontHeading},
	tokens.FontWidgetBody:     {fallback: tokens.FontBody},
	tokens.ColorHeading:       {fallback: tokens.TextPrimary},
	tokens.ColorBody:          {fallback: tokens.TextPrimary},
	tokens.ColorWidgetHeading: {fallback: tokens.ColorHeading},
	tokens.ColorWidgetBody:    {fallback: tokens.ColorBody},
}

var (
	lengthPattern   = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)(px|rem|em|%|vh|vw|vmin|vmax|ch|ex)$`)
	durationPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)(ms|s)$`)
	fontPattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]{0,62}$`)
	pxPattern       = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)\s*(px)?$`)
)

const defaultTextShadowColor = "rgba(15, 23, 42, 0.35)"

// Resolve merges theme, legacy fields and page overrides into one value set.
// Precedence per slot: page override, structured token, legacy field,
// fallback slot, built-in default. A nil theme skips the theme layers.
// Resolve never fails; problems become Diagnostics.
func Resolve(cfg Config, theme *tokens.Theme, page tokens.PageOverrides) *ResolvedTokens {
	r := &resolver{
		cfg:   cfg,
		theme: theme,
		page:  page,
		out: &ResolvedTokens{
			Values:  make(map[tokens.SlotID]string),
			Sources: make(map[tokens.SlotID]Layer),
			config:  cfg,
		},
	}
	if theme != nil {
		r.out.ThemeName = theme.Name
		r.out.HasTheme = true
	}

	for _, slot := range tokens.Slots() {
		v, layer := r.resolveSlot(slot)
		r.out.Values[slot.ID] = v
		r.out.Sources[slot.ID] = layer
	}

	r.resolveSpacing()
	r.resolveWidget()
	r.out.HeadingEffect = r.resolveTextEffect("heading")
	r.out.WidgetHeadingEffect = r.resolveTextEffect("widget_heading")
	r.resolveEffects()

	return r.out
}

type resolver struct {
	cfg   Config
	theme *tokens.Theme
	page  tokens.PageOverrides
	out   *ResolvedTokens
}

func (r *resolver) diag(code Code, slot string, layer Layer, value, msg string) {
	r.out.Diagnostics = append(r.out.Diagnostics, Diagnostic{
		Code:    code,
		Slot:    slot,
		Layer:   layer,
		Value:   truncateValue(value),
		Message: msg,
	})
}

func (r *resolver) resolveSlot(slot tokens.Slot) (string, Layer) {
	rule := slotRules[slot.ID]

	if rule.override != nil {
		if raw := strings.TrimSpace(rule.override(r.page)); raw != "" {
			if v, layer, ok := r.accept(slot, LayerPage, raw); ok {
				return v, layer
			}
		}
	}

	if r.theme != nil {
		raw, presence := r.theme.Group(slot.Group).Lookup(slot.Path...)
		switch presence {
		case tokens.Present:
			if v, layer, ok := r.accept(slot, LayerTheme, raw); ok {
				return v, layer
			}
		case tokens.Malformed:
			r.diag(CodeMalformed, string(slot.ID), LayerTheme, "", "token path does not lead to a value")
		}

		if rule.legacy != nil {
			if raw := strings.TrimSpace(rule.legacy(r.theme)); raw != "" {
				if v, layer, ok := r.accept(slot, LayerLegacy, raw); ok {
					return v, layer
				}
			}
		}
	}

	if rule.fallback != "" {
		if v, ok := r.out.Values[rule.fallback]; ok && v != "" {
			return v, LayerFallback
		}
	}

	return r.cfg.defaultFor(slot.ID), LayerDefault
}

// accept coerces a raw value into the slot's kind. ok=false means "treat as
// absent and keep falling through". An unsafe value stops resolution: the
// slot takes its default and ok is true.
func (r *resolver) accept(slot tokens.Slot, layer Layer, raw any) (string, Layer, bool) {
	id := string(slot.ID)

	candidate, code, msg := coerce(slot, raw)
	if code != "" {
		r.diag(code, id, layer, describe(raw), msg)
		return "", layer, false
	}
	if candidate == "" {
		return "", layer, false
	}

	clean, err := sanitizeValue(candidate)
	if err != nil {
		r.diag(CodeUnsafe, id, layer, candidate, err.Error())
		return r.cfg.defaultFor(slot.ID), LayerDefault, true
	}

	if slot.Kind == tokens.KindFont {
		family, valid := normalizeFont(clean)
		if !valid {
			r.diag(CodeInvalid, id, layer, clean, "not a single font family name")
			return "", layer, false
		}
		clean = family
	}

	return clean, layer, true
}

// coerce turns a raw token into a candidate string. A non-empty code means
// the value is unusable at this layer.
func coerce(slot tokens.Slot, raw any) (string, Code, string) {
	switch slot.Kind {
	case tokens.KindColor, tokens.KindShadow, tokens.KindEasing, tokens.KindFont:
		s, ok := raw.(string)
		if !ok {
			return "", CodeMalformed, "expected a string"
		}
		return strings.TrimSpace(s), "", ""

	case tokens.KindNumber:
		n, p := tokens.AsNumber(raw)
		if p != tokens.Present || math.IsNaN(n) || math.IsInf(n, 0) {
			return "", CodeMalformed, "expected a number"
		}
		return FormatNumber(n), "", ""

	case tokens.KindLength, tokens.KindDuration:
		if s, ok := raw.(string); ok {
			s = strings.TrimSpace(s)
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				pattern := lengthPattern
				if slot.Kind == tokens.KindDuration {
					pattern = durationPattern
				}
				if s == "0" || pattern.MatchString(s) {
					return s, "", ""
				}
				if _, serr := sanitizeValue(s); serr != nil {
					// Let accept report it as unsafe rather than invalid.
					return s, "", ""
				}
				return "", CodeInvalid, "not a " + slot.Kind.String()
			}
		}
		n, p := tokens.AsNumber(raw)
		if p != tokens.Present || math.IsNaN(n) || math.IsInf(n, 0) {
			return "", CodeMalformed, "expected a " + slot.Kind.String()
		}
		if slot.Kind == tokens.KindDuration && n < 0 {
			return "", CodeInvalid, "negative duration"
		}
		return FormatNumber(n) + slot.Unit, "", ""
	}

	return "", CodeMalformed, "unknown slot kind"
}

// normalizeFont reduces a font value to a single family name: the first
// entry of a comma list, without quotes.
func normalizeFont(v string) (string, bool) {
	first := v
	if i := strings.IndexByte(v, ','); i >= 0 {
		first = v[:i]
	}
	first = strings.Trim(strings.TrimSpace(first), `"'`)
	first = strings.TrimSpace(first)
	if !fontPattern.MatchString(first) {
		return "", false
	}
	return first, true
}

// describe renders a raw token for a diagnostic without dumping whole groups.
func describe(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case nil:
		return ""
	case map[string]any, tokens.Group, map[any]any:
		return "<group>"
	case []any:
		return "<list>"
	default:
		return fmt.Sprint(v)
	}
}

func (r *resolver) resolveSpacing() {
	spacing := r.theme.Group(tokens.GroupSpacing)

	layers := []rawLayer{fromGroup(LayerTheme, spacing, "density")}
	if r.theme != nil {
		layers = append(layers, fromString(LayerLegacy, r.theme.LayoutDensity))
	}
	density, found, unknown := lookupKeyword(r, "spacing.density", tokens.ParseDensity, layers...)
	switch {
	case found:
		r.out.Density = density
	case unknown:
		// An unrecognized keyword never scales: comfortable at 1.0 everywhere,
		// whatever the configured default or the theme's own tables say.
		r.out.Density = tokens.DensityComfortable
	default:
		r.out.Density = orKeyword(r.cfg.DefaultDensity, builtinConfig.DefaultDensity)
	}
	unscaled := !found && unknown

	r.out.BaseScale = make(map[string]float64, len(tokens.SpacingSteps))
	r.out.Multipliers = make(map[string]float64, len(tokens.SpacingSteps))

	table := r.cfg.multipliers(r.out.Density)
	for _, step := range tokens.SpacingSteps {
		base := r.cfg.baseStep(step)
		if v, p := spacing.Number("base_scale", step); p == tokens.Present && v >= 0 && !math.IsInf(v, 0) {
			base = v
		} else if p != tokens.Absent {
			r.diag(CodeMalformed, "spacing.base_scale."+step, LayerTheme, "", "expected a non-negative number")
		}
		r.out.BaseScale[step] = base

		mult := 1.0
		if unscaled {
			r.out.Multipliers[step] = mult
			continue
		}
		if v, ok := table[step]; ok {
			mult = v
		}
		if v, p := spacing.Number("density_multipliers", string(r.out.Density), step); p == tokens.Present && v >= 0 && !math.IsInf(v, 0) {
			mult = v
		} else if p != tokens.Absent {
			r.diag(CodeMalformed, "spacing.density_multipliers."+string(r.out.Density)+"."+step, LayerTheme, "", "expected a non-negative number")
		}
		r.out.Multipliers[step] = mult
	}
}

func (r *resolver) resolveWidget() {
	var legacy tokens.Group
	if r.theme != nil {
		legacy = r.theme.WidgetStyles
	}
	page := r.page.WidgetStyles

	layers := func(key string) []rawLayer {
		return []rawLayer{fromGroup(LayerPage, page, key), fromGroup(LayerLegacy, legacy, key)}
	}

	w := WidgetStyle{}
	w.BorderWeight = resolveKeyword(r, "widget_styles."+tokens.WidgetBorderWidth, tokens.ParseBorderWeight,
		orKeyword(r.cfg.BorderWeight, builtinConfig.BorderWeight), layers(tokens.WidgetBorderWidth)...)
	w.BorderEffect = resolveKeyword(r, "widget_styles."+tokens.WidgetBorderEffect, tokens.ParseBorderEffect,
		orKeyword(r.cfg.BorderEffect, builtinConfig.BorderEffect), layers(tokens.WidgetBorderEffect)...)
	w.ShadowIntensity = resolveKeyword(r, "widget_styles."+tokens.WidgetBorderShadowIntensity, tokens.ParseIntensity,
		orKeyword(r.cfg.ShadowIntensity, builtinConfig.ShadowIntensity), layers(tokens.WidgetBorderShadowIntensity)...)
	w.Spacing = resolveKeyword(r, "widget_styles."+tokens.WidgetSpacing, tokens.ParseSpacing,
		orKeyword(r.cfg.WidgetSpacing, builtinConfig.WidgetSpacing), layers(tokens.WidgetSpacing)...)
	w.Shape = resolveKeyword(r, "widget_styles."+tokens.WidgetShape, tokens.ParseShape,
		orKeyword(r.cfg.Shape, builtinConfig.Shape), layers(tokens.WidgetShape)...)

	w.GlowIntensity = r.resolveGlowIntensity(layers(tokens.WidgetBorderGlowIntensity))
	w.GlowWidth = r.resolveGlowWidth(layers(tokens.WidgetGlowWidth))
	w.GlowColor = r.resolveColorKey("widget_styles."+tokens.WidgetGlowColor, layers(tokens.WidgetGlowColor), r.out.Values[tokens.GlowPrimary])

	r.out.Widget = w
}

func (r *resolver) resolveGlowIntensity(layers []rawLayer) float64 {
	key := "widget_styles." + tokens.WidgetBorderGlowIntensity
	for _, l := range layers {
		if l.presence == tokens.Absent {
			continue
		}
		if s, ok := l.raw.(string); ok {
			if kw, ok := tokens.ParseIntensity(s); ok {
				return IntensityAlpha(kw)
			}
		}
		n, p := tokens.AsNumber(l.raw)
		if p == tokens.Present && n >= 0 && n <= 1 {
			return n
		}
		r.diag(CodeUnknownKeyword, key, l.layer, describe(l.raw), "expected subtle, pronounced or a number in [0, 1]")
	}
	return IntensityAlpha(orKeyword(r.cfg.GlowIntensity, builtinConfig.GlowIntensity))
}

func (r *resolver) resolveGlowWidth(layers []rawLayer) float64 {
	key := "widget_styles." + tokens.WidgetGlowWidth
	for _, l := range layers {
		if l.presence == tokens.Absent {
			continue
		}
		var n float64
		p := tokens.Malformed
		if s, ok := l.raw.(string); ok {
			if m := pxPattern.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
				n, _ = strconv.ParseFloat(m[1], 64)
				p = tokens.Present
			}
		} else {
			n, p = tokens.AsNumber(l.raw)
		}
		if p == tokens.Present && n > 0 && n <= 64 {
			return n
		}
		r.diag(CodeInvalid, key, l.layer, describe(l.raw), "glow width must be a pixel value in (0, 64]")
	}
	if r.cfg.GlowWidth > 0 {
		return r.cfg.GlowWidth
	}
	return builtinConfig.GlowWidth
}

// resolveColorKey picks the first safe string among layers, else fallback.
func (r *resolver) resolveColorKey(key string, layers []rawLayer, fallback string) string {
	for _, l := range layers {
		switch l.presence {
		case tokens.Absent:
			continue
		case tokens.Malformed:
			r.diag(CodeMalformed, key, l.layer, "", "expected a color string")
			continue
		}
		s, ok := l.raw.(string)
		if !ok {
			r.diag(CodeMalformed, key, l.layer, describe(l.raw), "expected a color string")
			continue
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		clean, err := sanitizeValue(s)
		if err != nil {
			r.diag(CodeUnsafe, key, l.layer, s, err.Error())
			return fallback
		}
		return clean
	}
	return fallback
}

func (r *resolver) resolveTextEffect(role string) TextEffect {
	typo := r.theme.Group(tokens.GroupTypography)
	key := "typography.effect." + role
	none := TextEffect{Type: tokens.TextEffectNone}

	raw, presence := typo.Lookup("effect", role)
	switch presence {
	case tokens.Absent:
		return none
	case tokens.Malformed:
		r.diag(CodeMalformed, key, LayerTheme, "", "effect path does not lead to a value")
		return none
	}

	effect := typo.Sub("effect", role)
	var kind string
	if s, ok := raw.(string); ok {
		kind = s
	} else if effect != nil {
		kind, _ = effect.String("type")
	} else {
		r.diag(CodeMalformed, key, LayerTheme, describe(raw), "expected an effect group or keyword")
		return none
	}
	if strings.TrimSpace(kind) == "" {
		return none
	}

	t, ok := tokens.ParseTextEffectType(kind)
	if !ok {
		r.diag(CodeUnknownKeyword, key+".type", LayerTheme, kind, "unknown text effect")
		return none
	}
	if t == tokens.TextEffectNone {
		return none
	}

	out := TextEffect{Type: t, Blur: 6, Color: defaultTextShadowColor}
	if t == tokens.TextEffectGlow {
		out.Blur = 12
		out.Color = r.out.Values[tokens.AccentPrimary]
	}
	out.Color = r.resolveColorKey(key+".color", []rawLayer{fromGroup(LayerTheme, effect, "color")}, out.Color)
	if IsGradient(out.Color) {
		r.diag(CodeInvalid, key+".color", LayerTheme, out.Color, "text-shadow cannot use a gradient")
		out.Color = r.cfg.defaultFor(tokens.GlowPrimary)
	}
	if v, p := effect.Number("blur"); p == tokens.Present && v >= 0 && v <= 64 {
		out.Blur = v
	} else if p != tokens.Absent {
		r.diag(CodeInvalid, key+".blur", LayerTheme, "", "blur must be a number in [0, 64]")
	}
	return out
}

func (r *resolver) resolveEffects() {
	layers := []rawLayer{fromString(LayerPage, r.page.SpatialEffect)}
	if r.theme != nil {
		layers = append(layers, fromString(LayerLegacy, r.theme.SpatialEffect))
	}
	r.out.SpatialEffect = resolveKeyword(r, "spatial_effect", tokens.ParseSpatialEffect, tokens.SpatialNone, layers...)

	r.out.PageNameEffect = resolveKeyword(r, "page_name_effect", tokens.ParsePageNameEffect, tokens.PageNameNone,
		fromString(LayerPage, r.page.PageNameEffect))
	r.out.FeaturedEffect = resolveKeyword(r, "featured_effect", tokens.ParseFeaturedEffect, tokens.FeaturedNone,
		fromString(LayerPage, r.page.FeaturedEffect))
}

// rawLayer is one candidate value for a keyword-like setting.
type rawLayer struct {
	layer    Layer
	raw      any
	presence tokens.Presence
}

func fromGroup(layer Layer, g tokens.Group, path ...string) rawLayer {
	raw, p := g.Lookup(path...)
	return rawLayer{layer: layer, raw: raw, presence: p}
}

func fromString(layer Layer, s string) rawLayer {
	if strings.TrimSpace(s) == "" {
		return rawLayer{layer: layer, presence: tokens.Absent}
	}
	return rawLayer{layer: layer, raw: s, presence: tokens.Present}
}

// resolveKeyword returns the first layer value inside the closed keyword set.
// Unknown or malformed keywords are reported and fall through.
func resolveKeyword[T ~string](r *resolver, key string, parse func(string) (T, bool), fallback T, layers ...rawLayer) T {
	if v, found, _ := lookupKeyword(r, key, parse, layers...); found {
		return v
	}
	return fallback
}

// lookupKeyword returns the first layer's keyword that parses. unknown
// reports whether some layer held a string that is not a keyword.
func lookupKeyword[T ~string](r *resolver, key string, parse func(string) (T, bool), layers ...rawLayer) (v T, found, unknown bool) {
	for _, l := range layers {
		switch l.presence {
		case tokens.Absent:
			continue
		case tokens.Malformed:
			r.diag(CodeMalformed, key, l.layer, "", "expected a keyword")
			continue
		}
		s, ok := l.raw.(string)
		if !ok {
			r.diag(CodeMalformed, key, l.layer, describe(l.raw), "expected a keyword")
			continue
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		if parsed, ok := parse(s); ok {
			return parsed, true, unknown
		}
		r.diag(CodeUnknownKeyword, key, l.layer, s, "unknown keyword")
		unknown = true
	}
	return v, false, unknown
}

func orKeyword[T ~string](v, fallback T) T {
	if v == "" {
		return fallback
	}
	return v
}
