// Package tokens defines the design token schema of a link-in-bio theme:
// five token groups, the legacy flat fields older themes still carry, and
// the per-page overrides that sit on top of them.
package tokens

// GroupName identifies one of the five token groups of a theme.
type GroupName string

// Token groups, in schema order.
const (
	GroupColor      GroupName = "color"
	GroupTypography GroupName = "typography"
	GroupSpacing    GroupName = "spacing"
	GroupShape      GroupName = "shape"
	GroupMotion     GroupName = "motion"
)

// Theme is a read-only snapshot of a stored theme.
type Theme struct {
	ID     int64  `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Active bool   `yaml:"active" json:"active"`

	ColorTokens      Group `yaml:"color_tokens" json:"color_tokens"`
	TypographyTokens Group `yaml:"typography_tokens" json:"typography_tokens"`
	SpacingTokens    Group `yaml:"spacing_tokens" json:"spacing_tokens"`
	ShapeTokens      Group `yaml:"shape_tokens" json:"shape_tokens"`
	MotionTokens     Group `yaml:"motion_tokens" json:"motion_tokens"`

	Legacy `yaml:",inline"`
}

// Legacy holds the flat fields that predate structured token groups.
type Legacy struct {
	Colors            LegacyColors `yaml:"colors" json:"colors"`
	Fonts             LegacyFonts  `yaml:"fonts" json:"fonts"`
	PageBackground    string       `yaml:"page_background" json:"page_background"`
	WidgetBackground  string       `yaml:"widget_background" json:"widget_background"`
	WidgetBorderColor string       `yaml:"widget_border_color" json:"widget_border_color"`
	WidgetStyles      Group        `yaml:"widget_styles" json:"widget_styles"`
	SpatialEffect     string       `yaml:"spatial_effect" json:"spatial_effect"`
	LayoutDensity     string       `yaml:"layout_density" json:"layout_density"`
}

// LegacyColors is the original three-color palette.
type LegacyColors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
	Accent    string `yaml:"accent" json:"accent"`
}

// LegacyFonts is the original heading/body font pair.
type LegacyFonts struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

// Group returns the token group with the given name. Unknown names yield nil.
func (t *Theme) Group(name GroupName) Group {
	if t == nil {
		return nil
	}
	switch name {
	case GroupColor:
		return t.ColorTokens
	case GroupTypography:
		return t.TypographyTokens
	case GroupSpacing:
		return t.SpacingTokens
	case GroupShape:
		return t.ShapeTokens
	case GroupMotion:
		return t.MotionTokens
	}
	return nil
}

// PageOverrides is the slice of a page that can override its theme.
// Empty strings mean "not overridden".
type PageOverrides struct {
	ThemeID *int64 `yaml:"theme_id" json:"theme_id"`

	CustomPrimaryColor     string `yaml:"custom_primary_color" json:"custom_primary_color"`
	CustomSecondaryColor   string `yaml:"custom_secondary_color" json:"custom_secondary_color"`
	CustomAccentColor      string `yaml:"custom_accent_color" json:"custom_accent_color"`
	CustomHeadingFont      string `yaml:"custom_heading_font" json:"custom_heading_font"`
	CustomBodyFont         string `yaml:"custom_body_font" json:"custom_body_font"`
	CustomPageBackground   string `yaml:"custom_page_background" json:"custom_page_background"`
	CustomWidgetBackground string `yaml:"custom_widget_background" json:"custom_widget_background"`
	CustomBorderColor      string `yaml:"custom_border_color" json:"custom_border_color"`

	// WidgetStyles overrides individual widget_styles fields of the theme.
	WidgetStyles  Group  `yaml:"widget_styles" json:"widget_styles"`
	SpatialEffect string `yaml:"spatial_effect" json:"spatial_effect"`

	PageNameEffect string `yaml:"page_name_effect" json:"page_name_effect"`
	FeaturedEffect string `yaml:"featured_effect" json:"featured_effect"`
}

// Widget style keys shared by the legacy theme field and the page override.
const (
	WidgetBorderWidth           = "border_width"
	WidgetBorderEffect          = "border_effect"
	WidgetBorderShadowIntensity = "border_shadow_intensity"
	WidgetBorderGlowIntensity   = "border_glow_intensity"
	WidgetGlowColor             = "glow_color"
	WidgetGlowWidth             = "glow_width"
	WidgetSpacing               = "spacing"
	WidgetShape                 = "shape"
)
