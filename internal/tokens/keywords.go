package tokens

import "strings"

// Density controls the spacing scale multipliers.
type Density string

// Density keywords.
const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
)

// Shape is the widget corner style.
type Shape string

// Shape keywords.
const (
	ShapeSquare  Shape = "square"
	ShapeRounded Shape = "rounded"
	ShapePill    Shape = "pill"
)

// BorderWeight selects a border width slot.
type BorderWeight string

// Border weight keywords.
const (
	BorderHairline BorderWeight = "hairline"
	BorderRegular  BorderWeight = "regular"
	BorderBold     BorderWeight = "bold"
)

// BorderEffect selects which widget shadow branch applies.
type BorderEffect string

// Border effect keywords.
const (
	EffectShadow BorderEffect = "shadow"
	EffectGlow   BorderEffect = "glow"
)

// Intensity scales a shadow or glow.
type Intensity string

// Intensity keywords.
const (
	IntensitySubtle     Intensity = "subtle"
	IntensityPronounced Intensity = "pronounced"
)

// Spacing is the widget spacing keyword.
type Spacing string

// Spacing keywords.
const (
	SpacingTight       Spacing = "tight"
	SpacingComfortable Spacing = "comfortable"
	SpacingSpacious    Spacing = "spacious"
)

// SpatialEffect selects a pre-authored page-level animation/transform rule set.
type SpatialEffect string

// Spatial effect keywords.
const (
	SpatialNone     SpatialEffect = "none"
	SpatialGlass    SpatialEffect = "glass"
	SpatialDepth    SpatialEffect = "depth"
	SpatialFloating SpatialEffect = "floating"
	SpatialTilt     SpatialEffect = "tilt"
)

// PageNameEffect decorates the page title.
type PageNameEffect string

// Page name effect keywords.
const (
	PageNameNone     PageNameEffect = "none"
	PageNameGlow     PageNameEffect = "glow"
	PageNameShadow   PageNameEffect = "shadow"
	PageNameNeon     PageNameEffect = "neon"
	PageNameGradient PageNameEffect = "gradient"
	PageNameOutline  PageNameEffect = "outline"
)

// FeaturedEffect decorates the featured widget.
type FeaturedEffect string

// Featured widget effect keywords.
const (
	FeaturedNone  FeaturedEffect = "none"
	FeaturedPulse FeaturedEffect = "pulse"
	FeaturedShine FeaturedEffect = "shine"
	FeaturedGlow  FeaturedEffect = "glow"
	FeaturedLift  FeaturedEffect = "lift"
)

// TextEffectType is the kind of typography effect on a heading role.
type TextEffectType string

// Typography effect keywords.
const (
	TextEffectNone   TextEffectType = "none"
	TextEffectGlow   TextEffectType = "glow"
	TextEffectShadow TextEffectType = "shadow"
)

var (
	densities       = []Density{DensityCompact, DensityComfortable}
	shapes          = []Shape{ShapeSquare, ShapeRounded, ShapePill}
	borderWeights   = []BorderWeight{BorderHairline, BorderRegular, BorderBold}
	borderEffects   = []BorderEffect{EffectShadow, EffectGlow}
	intensities     = []Intensity{IntensitySubtle, IntensityPronounced}
	spacings        = []Spacing{SpacingTight, SpacingComfortable, SpacingSpacious}
	spatialEffects  = []SpatialEffect{SpatialNone, SpatialGlass, SpatialDepth, SpatialFloating, SpatialTilt}
	pageNameEffects = []PageNameEffect{PageNameNone, PageNameGlow, PageNameShadow, PageNameNeon, PageNameGradient, PageNameOutline}
	featuredEffects = []FeaturedEffect{FeaturedNone, FeaturedPulse, FeaturedShine, FeaturedGlow, FeaturedLift}
	textEffectTypes = []TextEffectType{TextEffectNone, TextEffectGlow, TextEffectShadow}
)

func parseKeyword[T ~string](s string, allowed []T) (T, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range allowed {
		if string(k) == s {
			return k, true
		}
	}
	var zero T
	return zero, false
}

// ParseDensity parses a density keyword (case-insensitive).
func ParseDensity(s string) (Density, bool) { return parseKeyword(s, densities) }

// ParseShape parses a widget shape keyword.
func ParseShape(s string) (Shape, bool) { return parseKeyword(s, shapes) }

// ParseBorderWeight parses a border weight keyword.
func ParseBorderWeight(s string) (BorderWeight, bool) { return parseKeyword(s, borderWeights) }

// ParseBorderEffect parses a border effect keyword.
func ParseBorderEffect(s string) (BorderEffect, bool) { return parseKeyword(s, borderEffects) }

// ParseIntensity parses an intensity keyword.
func ParseIntensity(s string) (Intensity, bool) { return parseKeyword(s, intensities) }

// ParseSpacing parses a widget spacing keyword.
func ParseSpacing(s string) (Spacing, bool) { return parseKeyword(s, spacings) }

// ParseSpatialEffect parses a spatial effect keyword.
func ParseSpatialEffect(s string) (SpatialEffect, bool) { return parseKeyword(s, spatialEffects) }

// ParsePageNameEffect parses a page name effect keyword.
func ParsePageNameEffect(s string) (PageNameEffect, bool) { return parseKeyword(s, pageNameEffects) }

// ParseFeaturedEffect parses a featured widget effect keyword.
func ParseFeaturedEffect(s string) (FeaturedEffect, bool) { return parseKeyword(s, featuredEffects) }

// ParseTextEffectType parses a typography effect type.
func ParseTextEffectType(s string) (TextEffectType, bool) { return parseKeyword(s, textEffectTypes) }

// Keywords returns the accepted values for each keyword family, keyed by the
// name used in fixture validation tags.
func Keywords() map[string][]string {
	return map[string][]string{
		"density":         toStrings(densities),
		"shape":           toStrings(shapes),
		"border_weight":   toStrings(borderWeights),
		"border_effect":   toStrings(borderEffects),
		"intensity":       toStrings(intensities),
		"spacing":         toStrings(spacings),
		"spatial_effect":  toStrings(spatialEffects),
		"page_name":       toStrings(pageNameEffects),
		"featured_effect": toStrings(featuredEffects),
	}
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
