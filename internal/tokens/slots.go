package tokens

// Kind is the value type a slot holds. It decides which raw shapes are accepted.
type Kind int

// Slot kinds.
const (
	KindColor Kind = iota
	KindFont
	KindLength
	KindNumber
	KindShadow
	KindDuration
	KindEasing
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindLength:
		return "length"
	case KindNumber:
		return "number"
	case KindShadow:
		return "shadow"
	case KindDuration:
		return "duration"
	case KindEasing:
		return "easing"
	}
	return "unknown"
}

// SlotID names a slot by its dotted path inside its group, prefixed by the group.
type SlotID string

// Slot describes one named token slot and the custom property it feeds.
type Slot struct {
	ID       SlotID
	Property string // CSS custom property, e.g. "--color-accent-primary"
	Group    GroupName
	Path     []string // path inside the group's token map
	Kind     Kind
	Unit     string // appended to bare numbers for length/duration slots
}

// Color slots.
const (
	BackgroundFrame              SlotID = "color.background.frame"
	BackgroundBase               SlotID = "color.background.base"
	BackgroundSurface            SlotID = "color.background.surface"
	BackgroundSurfaceTranslucent SlotID = "color.background.surface_translucent"
	BackgroundSurfaceRaised      SlotID = "color.background.surface_raised"
	TextPrimary                  SlotID = "color.text.primary"
	TextSecondary                SlotID = "color.text.secondary"
	TextInverse                  SlotID = "color.text.inverse"
	BorderDefault                SlotID = "color.border.default"
	BorderFocus                  SlotID = "color.border.focus"
	AccentPrimary                SlotID = "color.accent.primary"
	AccentMuted                  SlotID = "color.accent.muted"
	AccentAlt                    SlotID = "color.accent.alt"
	AccentHighlight              SlotID = "color.accent.highlight"
	GradientPage                 SlotID = "color.gradient.page"
	GradientAccent               SlotID = "color.gradient.accent"
	GlowPrimary                  SlotID = "color.glow.primary"
)

// Typography, spacing, shape and motion slots.
const (
	FontHeading         SlotID = "typography.font.heading"
	FontBody            SlotID = "typography.font.body"
	FontWidgetHeading   SlotID = "typography.font.widget_heading"
	FontWidgetBody      SlotID = "typography.font.widget_body"
	ColorHeading        SlotID = "typography.color.heading"
	ColorBody           SlotID = "typography.color.body"
	ColorWidgetHeading  SlotID = "typography.color.widget_heading"
	ColorWidgetBody     SlotID = "typography.color.widget_body"
	ScaleXL             SlotID = "typography.scale.xl"
	ScaleLG             SlotID = "typography.scale.lg"
	ScaleMD             SlotID = "typography.scale.md"
	ScaleSM             SlotID = "typography.scale.sm"
	ScaleXS             SlotID = "typography.scale.xs"
	LineHeightTight     SlotID = "typography.line_height.tight"
	LineHeightNormal    SlotID = "typography.line_height.normal"
	LineHeightRelaxed   SlotID = "typography.line_height.relaxed"
	WeightNormal        SlotID = "typography.weight.normal"
	WeightMedium        SlotID = "typography.weight.medium"
	WeightBold          SlotID = "typography.weight.bold"
	SpacingVertical     SlotID = "spacing.vertical"
	CornerNone          SlotID = "shape.corner.none"
	CornerSM            SlotID = "shape.corner.sm"
	CornerMD            SlotID = "shape.corner.md"
	CornerLG            SlotID = "shape.corner.lg"
	CornerPill          SlotID = "shape.corner.pill"
	BorderWidthHairline SlotID = "shape.border_width.hairline"
	BorderWidthRegular  SlotID = "shape.border_width.regular"
	BorderWidthBold     SlotID = "shape.border_width.bold"
	ShadowLevel1        SlotID = "shape.shadow.level_1"
	ShadowLevel2        SlotID = "shape.shadow.level_2"
	DurationFast        SlotID = "motion.duration.fast"
	DurationStandard    SlotID = "motion.duration.standard"
	DurationSlow        SlotID = "motion.duration.slow"
	EasingStandard      SlotID = "motion.easing.standard"
	EasingDecelerate    SlotID = "motion.easing.decelerate"
	EasingAccelerate    SlotID = "motion.easing.accelerate"
)

// SpacingSteps is the base spacing scale, smallest first.
var SpacingSteps = []string{"2xs", "xs", "sm", "md", "lg", "xl", "2xl"}

var slots = []Slot{
	{BackgroundFrame, "--color-background-frame", GroupColor, []string{"background", "frame"}, KindColor, ""},
	{BackgroundBase, "--color-background-base", GroupColor, []string{"background", "base"}, KindColor, ""},
	{BackgroundSurface, "--color-background-surface", GroupColor, []string{"background", "surface"}, KindColor, ""},
	{BackgroundSurfaceTranslucent, "--color-background-surface-translucent", GroupColor, []string{"background", "surface_translucent"}, KindColor, ""},
	{BackgroundSurfaceRaised, "--color-background-surface-raised", GroupColor, []string{"background", "surface_raised"}, KindColor, ""},
	{TextPrimary, "--color-text-primary", GroupColor, []string{"text", "primary"}, KindColor, ""},
	{TextSecondary, "--color-text-secondary", GroupColor, []string{"text", "secondary"}, KindColor, ""},
	{TextInverse, "--color-text-inverse", GroupColor, []string{"text", "inverse"}, KindColor, ""},
	{BorderDefault, "--color-border-default", GroupColor, []string{"border", "default"}, KindColor, ""},
	{BorderFocus, "--color-border-focus", GroupColor, []string{"border", "focus"}, KindColor, ""},
	{AccentPrimary, "--color-accent-primary", GroupColor, []string{"accent", "primary"}, KindColor, ""},
	{AccentMuted, "--color-accent-muted", GroupColor, []string{"accent", "muted"}, KindColor, ""},
	{AccentAlt, "--color-accent-alt", GroupColor, []string{"accent", "alt"}, KindColor, ""},
	{AccentHighlight, "--color-accent-highlight", GroupColor, []string{"accent", "highlight"}, KindColor, ""},
	{GradientPage, "--gradient-page", GroupColor, []string{"gradient", "page"}, KindColor, ""},
	{GradientAccent, "--gradient-accent", GroupColor, []string{"gradient", "accent"}, KindColor, ""},
	{GlowPrimary, "--color-glow-primary", GroupColor, []string{"glow", "primary"}, KindColor, ""},

	{FontHeading, "--font-family-heading", GroupTypography, []string{"font", "heading"}, KindFont, ""},
	{FontBody, "--font-family-body", GroupTypography, []string{"font", "body"}, KindFont, ""},
	{FontWidgetHeading, "--font-family-widget-heading", GroupTypography, []string{"font", "widget_heading"}, KindFont, ""},
	{FontWidgetBody, "--font-family-widget-body", GroupTypography, []string{"font", "widget_body"}, KindFont, ""},
	{ColorHeading, "--color-heading", GroupTypography, []string{"color", "heading"}, KindColor, ""},
	{ColorBody, "--color-body", GroupTypography, []string{"color", "body"}, KindColor, ""},
	{ColorWidgetHeading, "--color-widget-heading", GroupTypography, []string{"color", "widget_heading"}, KindColor, ""},
	{ColorWidgetBody, "--color-widget-body", GroupTypography, []string{"color", "widget_body"}, KindColor, ""},
	{ScaleXL, "--type-scale-xl", GroupTypography, []string{"scale", "xl"}, KindLength, "rem"},
	{ScaleLG, "--type-scale-lg", GroupTypography, []string{"scale", "lg"}, KindLength, "rem"},
	{ScaleMD, "--type-scale-md", GroupTypography, []string{"scale", "md"}, KindLength, "rem"},
	{ScaleSM, "--type-scale-sm", GroupTypography, []string{"scale", "sm"}, KindLength, "rem"},
	{ScaleXS, "--type-scale-xs", GroupTypography, []string{"scale", "xs"}, KindLength, "rem"},
	{LineHeightTight, "--line-height-tight", GroupTypography, []string{"line_height", "tight"}, KindNumber, ""},
	{LineHeightNormal, "--line-height-normal", GroupTypography, []string{"line_height", "normal"}, KindNumber, ""},
	{LineHeightRelaxed, "--line-height-relaxed", GroupTypography, []string{"line_height", "relaxed"}, KindNumber, ""},
	{WeightNormal, "--font-weight-normal", GroupTypography, []string{"weight", "normal"}, KindNumber, ""},
	{WeightMedium, "--font-weight-medium", GroupTypography, []string{"weight", "medium"}, KindNumber, ""},
	{WeightBold, "--font-weight-bold", GroupTypography, []string{"weight", "bold"}, KindNumber, ""},

	{SpacingVertical, "--spacing-vertical", GroupSpacing, []string{"vertical_spacing"}, KindLength, "rem"},

	{CornerNone, "--shape-corner-none", GroupShape, []string{"corner", "none"}, KindLength, "px"},
	{CornerSM, "--shape-corner-sm", GroupShape, []string{"corner", "sm"}, KindLength, "rem"},
	{CornerMD, "--shape-corner-md", GroupShape, []string{"corner", "md"}, KindLength, "rem"},
	{CornerLG, "--shape-corner-lg", GroupShape, []string{"corner", "lg"}, KindLength, "rem"},
	{CornerPill, "--shape-corner-pill", GroupShape, []string{"corner", "pill"}, KindLength, "px"},
	{BorderWidthHairline, "--border-width-hairline", GroupShape, []string{"border_width", "hairline"}, KindLength, "px"},
	{BorderWidthRegular, "--border-width-regular", GroupShape, []string{"border_width", "regular"}, KindLength, "px"},
	{BorderWidthBold, "--border-width-bold", GroupShape, []string{"border_width", "bold"}, KindLength, "px"},
	{ShadowLevel1, "--shadow-level-1", GroupShape, []string{"shadow", "level_1"}, KindShadow, ""},
	{ShadowLevel2, "--shadow-level-2", GroupShape, []string{"shadow", "level_2"}, KindShadow, ""},

	{DurationFast, "--motion-duration-fast", GroupMotion, []string{"duration", "fast"}, KindDuration, "ms"},
	{DurationStandard, "--motion-duration-standard", GroupMotion, []string{"duration", "standard"}, KindDuration, "ms"},
	{DurationSlow, "--motion-duration-slow", GroupMotion, []string{"duration", "slow"}, KindDuration, "ms"},
	{EasingStandard, "--motion-easing-standard", GroupMotion, []string{"easing", "standard"}, KindEasing, ""},
	{EasingDecelerate, "--motion-easing-decelerate", GroupMotion, []string{"easing", "decelerate"}, KindEasing, ""},
	{EasingAccelerate, "--motion-easing-accelerate", GroupMotion, []string{"easing", "accelerate"}, KindEasing, ""},
}

var slotIndex = func() map[SlotID]int {
	idx := make(map[SlotID]int, len(slots))
	for i, s := range slots {
		idx[s.ID] = i
	}
	return idx
}()

// Slots returns every schema slot in emission order. The slice is a copy.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// Lookup returns the slot definition for id.
func Lookup(id SlotID) (Slot, bool) {
	i, ok := slotIndex[id]
	if !ok {
		return Slot{}, false
	}
	return slots[i], true
}
