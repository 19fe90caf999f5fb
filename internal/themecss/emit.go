package themecss

import (
	"strings"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

// Stylesheet is the emitter's output for one render.
type Stylesheet struct {
	CSS string

	// BodyClass joins SpatialEffectClass and ThemeClass with a space,
	// skipping whichever is empty.
	BodyClass          string
	ThemeClass         string
	SpatialEffectClass string

	// PageNameClass goes on the page title, FeaturedClass on the featured widget.
	PageNameClass string
	FeaturedClass string

	FontsURL string

	// Diagnostics holds the resolver's diagnostics followed by any raised
	// while emitting.
	Diagnostics []Diagnostic
}

var shapeCorner = map[tokens.Shape]tokens.SlotID{
	tokens.ShapeSquare:  tokens.CornerNone,
	tokens.ShapeRounded: tokens.CornerMD,
	tokens.ShapePill:    tokens.CornerPill,
}

var borderWidth = map[tokens.BorderWeight]tokens.SlotID{
	tokens.BorderHairline: tokens.BorderWidthHairline,
	tokens.BorderRegular:  tokens.BorderWidthRegular,
	tokens.BorderBold:     tokens.BorderWidthBold,
}

// gap and padding steps per widget spacing keyword
var spacingSteps = map[tokens.Spacing][2]string{
	tokens.SpacingTight:       {"sm", "md"},
	tokens.SpacingComfortable: {"md", "lg"},
	tokens.SpacingSpacious:    {"lg", "xl"},
}

// Emit serializes a resolved token set. The same input always yields
// byte-identical output. Every value is re-checked for CSS safety; an unsafe
// one is replaced with its default and reported. A token set missing a
// schema slot is a caller bug and returns a *ContractError.
func Emit(rt *ResolvedTokens) (Stylesheet, error) {
	if rt == nil {
		return Stylesheet{}, &ContractError{Op: "emit", Missing: []string{"resolved tokens"}}
	}

	var missing []string
	for _, slot := range tokens.Slots() {
		if strings.TrimSpace(rt.Values[slot.ID]) == "" {
			missing = append(missing, string(slot.ID))
		}
	}
	if len(missing) > 0 {
		return Stylesheet{}, &ContractError{Op: "emit", Missing: missing}
	}

	e := &emitter{rt: rt, cfg: rt.config}
	e.diags = append(e.diags, rt.Diagnostics...)
	e.values = make(map[tokens.SlotID]string, len(rt.Values))
	for _, slot := range tokens.Slots() {
		e.values[slot.ID] = e.safe(string(slot.ID), rt.Values[slot.ID], e.cfg.defaultFor(slot.ID))
	}

	e.writeRoot()
	e.writeBase()
	e.writeRoles()

	out := Stylesheet{
		ThemeClass:         Slug(rt.ThemeName),
		SpatialEffectClass: SpatialClass(rt.SpatialEffect),
	}
	if t, ok := spatialTemplates[rt.SpatialEffect]; ok {
		e.b.WriteString(t.css)
	}
	if t, ok := pageNameTemplates[rt.PageNameEffect]; ok {
		out.PageNameClass = t.class
		e.b.WriteString(t.css)
	}
	if t, ok := featuredTemplates[rt.FeaturedEffect]; ok {
		out.FeaturedClass = t.class
		e.b.WriteString(t.css)
	}

	out.BodyClass = joinClasses(out.SpatialEffectClass, out.ThemeClass)
	out.FontsURL = FontsURL(e.cfg.fontsBaseURL(), e.cfg.fontWeights(),
		e.values[tokens.FontHeading],
		e.values[tokens.FontBody],
		e.values[tokens.FontWidgetHeading],
		e.values[tokens.FontWidgetBody],
	)
	out.CSS = e.b.String()
	out.Diagnostics = e.diags
	return out, nil
}

type emitter struct {
	rt     *ResolvedTokens
	cfg    Config
	values map[tokens.SlotID]string
	diags  []Diagnostic
	b      strings.Builder
}

// safe returns v when it passes the sanitizer and def otherwise.
func (e *emitter) safe(key, v, def string) string {
	clean, err := sanitizeValue(v)
	if err == nil {
		return clean
	}
	e.diags = append(e.diags, Diagnostic{
		Code:    CodeUnsafe,
		Slot:    key,
		Layer:   LayerEmit,
		Value:   truncateValue(v),
		Message: err.Error(),
	})
	return def
}

func (e *emitter) rule(selector string, decls ...Declaration) {
	e.b.WriteString(selector)
	e.b.WriteString(" {\n")
	for _, d := range decls {
		e.b.WriteString("  ")
		e.b.WriteString(d.Property)
		e.b.WriteString(": ")
		e.b.WriteString(d.Value)
		e.b.WriteString(";\n")
	}
	e.b.WriteString("}\n")
}

func (e *emitter) writeRoot() {
	var decls []Declaration
	for _, slot := range tokens.Slots() {
		v := e.values[slot.ID]
		if slot.Kind == tokens.KindFont {
			v = FontStack(v)
		}
		decls = append(decls, Declaration{slot.Property, v})
	}

	for _, step := range tokens.SpacingSteps {
		base, ok := e.rt.BaseScale[step]
		if !ok {
			base = e.cfg.baseStep(step)
		}
		mult, ok := e.rt.Multipliers[step]
		if !ok {
			mult = 1
		}
		v := ScaleSpacing(base, mult)
		decls = append(decls, Declaration{"--space-" + step, FormatNumber(v) + "rem"})
	}

	w := e.rt.Widget
	pageBackground := e.values[tokens.BackgroundBase]
	if g := e.values[tokens.GradientPage]; !strings.EqualFold(g, "none") {
		pageBackground = g
	}

	shape := w.Shape
	if _, ok := shapeCorner[shape]; !ok {
		shape = builtinConfig.Shape
	}
	weight := w.BorderWeight
	if _, ok := borderWidth[weight]; !ok {
		weight = builtinConfig.BorderWeight
	}
	steps, ok := spacingSteps[w.Spacing]
	if !ok {
		steps = spacingSteps[builtinConfig.WidgetSpacing]
	}

	glowFallback := e.values[tokens.GlowPrimary]
	if IsGradient(glowFallback) {
		glowFallback = e.cfg.defaultFor(tokens.GlowPrimary)
	}
	w.GlowColor = e.safe("widget_styles."+tokens.WidgetGlowColor, w.GlowColor, glowFallback)
	shadow := CompositeShadow(w, e.values[tokens.ShadowLevel1], e.values[tokens.ShadowLevel2], glowFallback)

	decls = append(decls,
		Declaration{"--page-background", pageBackground},
		Declaration{"--widget-background", e.values[tokens.BackgroundSurface]},
		Declaration{"--widget-border-color", e.values[tokens.BorderDefault]},
		Declaration{"--widget-border-width", e.values[borderWidth[weight]]},
		Declaration{"--widget-border-radius", e.values[shapeCorner[shape]]},
		Declaration{"--widget-box-shadow", e.safe("widget.box_shadow", shadow.Value, e.values[tokens.ShadowLevel1])},
		Declaration{"--widget-gap", "var(--space-" + steps[0] + ")"},
		Declaration{"--widget-padding", "var(--space-" + steps[1] + ")"},
		Declaration{"--heading-text-shadow", e.textShadow("typography.effect.heading", e.rt.HeadingEffect)},
		Declaration{"--widget-heading-text-shadow", e.textShadow("typography.effect.widget_heading", e.rt.WidgetHeadingEffect)},

		Declaration{"--primary-color", e.values[tokens.TextPrimary]},
		Declaration{"--secondary-color", e.values[tokens.TextSecondary]},
		Declaration{"--accent-color", e.values[tokens.AccentPrimary]},
		Declaration{"--heading-font", FontStack(e.values[tokens.FontHeading])},
		Declaration{"--body-font", FontStack(e.values[tokens.FontBody])},
	)

	e.rule(":root", decls...)
}

func (e *emitter) textShadow(key string, t TextEffect) string {
	var v string
	switch t.Type {
	case tokens.TextEffectGlow:
		v = "0 0 " + FormatNumber(t.Blur) + "px " + t.Color
	case tokens.TextEffectShadow:
		v = "0 2px " + FormatNumber(t.Blur) + "px " + t.Color
	default:
		return "none"
	}
	return e.safe(key, v, "none")
}

func (e *emitter) writeBase() {
	bodyColor := e.values[tokens.ColorBody]
	if IsGradient(bodyColor) {
		bodyColor = e.values[tokens.TextPrimary]
	}
	if IsGradient(bodyColor) {
		bodyColor = e.cfg.defaultFor(tokens.TextPrimary)
	}

	e.rule("body",
		Declaration{"background", "var(--page-background)"},
		Declaration{"color", bodyColor},
		Declaration{"font-family", "var(--font-family-body)"},
		Declaration{"line-height", "var(--line-height-normal)"},
	)
	e.rule(".widgets",
		Declaration{"display", "flex"},
		Declaration{"flex-direction", "column"},
		Declaration{"gap", "var(--widget-gap)"},
		Declaration{"margin-top", "var(--spacing-vertical)"},
	)
	e.rule(".widget",
		Declaration{"background", "var(--widget-background)"},
		Declaration{"border", "var(--widget-border-width) solid var(--widget-border-color)"},
		Declaration{"border-radius", "var(--widget-border-radius)"},
		Declaration{"box-shadow", "var(--widget-box-shadow)"},
		Declaration{"padding", "var(--widget-padding)"},
		Declaration{"font-family", "var(--font-family-widget-body)"},
		Declaration{"transition", "transform var(--motion-duration-standard) var(--motion-easing-standard), box-shadow var(--motion-duration-standard) var(--motion-easing-standard)"},
	)
}

func (e *emitter) writeRoles() {
	roles := []struct {
		selector string
		color    tokens.SlotID
		font     string
		size     string
		weight   string
		shadow   string
	}{
		{".page-title", tokens.ColorHeading, "var(--font-family-heading)", "var(--type-scale-xl)", "var(--font-weight-bold)", "var(--heading-text-shadow)"},
		{".page-description", tokens.ColorBody, "var(--font-family-body)", "var(--type-scale-sm)", "var(--font-weight-normal)", ""},
		{".widget-title", tokens.ColorWidgetHeading, "var(--font-family-widget-heading)", "var(--type-scale-md)", "var(--font-weight-medium)", "var(--widget-heading-text-shadow)"},
		{".widget-description", tokens.ColorWidgetBody, "var(--font-family-widget-body)", "var(--type-scale-xs)", "var(--font-weight-normal)", ""},
	}

	for _, r := range roles {
		decls := []Declaration{
			{"font-family", r.font},
			{"font-size", r.size},
			{"font-weight", r.weight},
			{"line-height", "var(--line-height-tight)"},
		}
		decls = append(decls, TextColorDeclarations(e.values[r.color])...)
		if r.shadow != "" && !IsGradient(e.values[r.color]) {
			decls = append(decls, Declaration{"text-shadow", r.shadow})
		}
		e.rule(r.selector, decls...)
	}
}

func joinClasses(classes ...string) string {
	var parts []string
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
