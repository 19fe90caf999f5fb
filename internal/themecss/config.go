package themecss

import (
	"fmt"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

// Config is the engine's fixed knowledge: the built-in default of every slot,
// the base spacing scale, the density multiplier tables and the widget style
// defaults. It is passed in explicitly; the engine keeps no global state.
type Config struct {
	Defaults map[tokens.SlotID]string

	// BaseScale is the spacing scale in rem, keyed by tokens.SpacingSteps.
	BaseScale map[string]float64
	// Density maps each density keyword to per-step multipliers.
	Density        map[tokens.Density]map[string]float64
	DefaultDensity tokens.Density

	Shape           tokens.Shape
	BorderWeight    tokens.BorderWeight
	BorderEffect    tokens.BorderEffect
	ShadowIntensity tokens.Intensity
	GlowIntensity   tokens.Intensity
	GlowWidth       float64 // px
	WidgetSpacing   tokens.Spacing

	// FontWeights is the weight set requested for every font family.
	FontWeights  []int
	FontsBaseURL string
}

// DefaultConfig returns a fresh copy of the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: map[tokens.SlotID]string{
			tokens.BackgroundFrame:              "#0f172a",
			tokens.BackgroundBase:               "#f8fafc",
			tokens.BackgroundSurface:            "#ffffff",
			tokens.BackgroundSurfaceTranslucent: "rgba(255, 255, 255, 0.85)",
			tokens.BackgroundSurfaceRaised:      "#ffffff",
			tokens.TextPrimary:                  "#0f172a",
			tokens.TextSecondary:                "#475569",
			tokens.TextInverse:                  "#ffffff",
			tokens.BorderDefault:                "#e2e8f0",
			tokens.BorderFocus:                  "#2563eb",
			tokens.AccentPrimary:                "#2563eb",
			tokens.AccentMuted:                  "#dbeafe",
			tokens.AccentAlt:                    "#7c3aed",
			tokens.AccentHighlight:              "#f59e0b",
			tokens.GradientPage:                 "none",
			tokens.GradientAccent:               "linear-gradient(135deg, #2563eb 0%, #7c3aed 100%)",
			tokens.GlowPrimary:                  "#60a5fa",

			tokens.FontHeading:        "Inter",
			tokens.FontBody:           "Inter",
			tokens.FontWidgetHeading:  "Inter",
			tokens.FontWidgetBody:     "Inter",
			tokens.ColorHeading:       "#0f172a",
			tokens.ColorBody:          "#0f172a",
			tokens.ColorWidgetHeading: "#0f172a",
			tokens.ColorWidgetBody:    "#0f172a",
			tokens.ScaleXL:            "2rem",
			tokens.ScaleLG:            "1.5rem",
			tokens.ScaleMD:            "1.25rem",
			tokens.ScaleSM:            "1rem",
			tokens.ScaleXS:            "0.875rem",
			tokens.LineHeightTight:    "1.2",
			tokens.LineHeightNormal:   "1.5",
			tokens.LineHeightRelaxed:  "1.75",
			tokens.WeightNormal:       "400",
			tokens.WeightMedium:       "500",
			tokens.WeightBold:         "700",

			tokens.SpacingVertical: "1.5rem",

			tokens.CornerNone:          "0px",
			tokens.CornerSM:            "0.375rem",
			tokens.CornerMD:            "0.75rem",
			tokens.CornerLG:            "1.5rem",
			tokens.CornerPill:          "9999px",
			tokens.BorderWidthHairline: "1px",
			tokens.BorderWidthRegular:  "2px",
			tokens.BorderWidthBold:     "3px",
			tokens.ShadowLevel1:        "0 1px 3px rgba(15, 23, 42, 0.12)",
			tokens.ShadowLevel2:        "0 8px 24px rgba(15, 23, 42, 0.18)",

			tokens.DurationFast:     "150ms",
			tokens.DurationStandard: "250ms",
			tokens.DurationSlow:     "400ms",
			tokens.EasingStandard:   "cubic-bezier(0.4, 0, 0.2, 1)",
			tokens.EasingDecelerate: "cubic-bezier(0, 0, 0.2, 1)",
			tokens.EasingAccelerate: "cubic-bezier(0.4, 0, 1, 1)",
		},
		BaseScale: map[string]float64{
			"2xs": 0.25,
			"xs":  0.5,
			"sm":  0.75,
			"md":  1.0,
			"lg":  1.5,
			"xl":  2.0,
			"2xl": 3.0,
		},
		Density: map[tokens.Density]map[string]float64{
			tokens.DensityCompact: {
				"2xs": 0.75, "xs": 0.75, "sm": 0.75, "md": 0.75, "lg": 0.75, "xl": 0.75, "2xl": 0.75,
			},
			tokens.DensityComfortable: {
				"2xs": 1.0, "xs": 1.0, "sm": 1.0, "md": 1.0, "lg": 1.0, "xl": 1.0, "2xl": 1.0,
			},
		},
		DefaultDensity:  tokens.DensityComfortable,
		Shape:           tokens.ShapeRounded,
		BorderWeight:    tokens.BorderRegular,
		BorderEffect:    tokens.EffectShadow,
		ShadowIntensity: tokens.IntensitySubtle,
		GlowIntensity:   tokens.IntensitySubtle,
		GlowWidth:       12,
		WidgetSpacing:   tokens.SpacingComfortable,
		FontWeights:     []int{400, 500, 600, 700},
		FontsBaseURL:    "https://fonts.googleapis.com/css2",
	}
}

// Validate reports every slot without a usable default and every spacing
// step without a base value. A Config that fails Validate still resolves:
// missing entries fall back to DefaultConfig.
func (c Config) Validate() error {
	var missing []string
	for _, slot := range tokens.Slots() {
		v, ok := c.Defaults[slot.ID]
		if !ok {
			missing = append(missing, string(slot.ID))
			continue
		}
		if _, err := sanitizeValue(v); err != nil {
			missing = append(missing, fmt.Sprintf("%s (%v)", slot.ID, err))
		}
	}
	for _, step := range tokens.SpacingSteps {
		if _, ok := c.BaseScale[step]; !ok {
			missing = append(missing, "spacing.base_scale."+step)
		}
	}
	if len(missing) > 0 {
		return &ContractError{Op: "config", Missing: missing}
	}
	return nil
}

// defaultFor returns the configured default for id, falling back to the
// built-in table when the configured one is missing or unsafe.
func (c Config) defaultFor(id tokens.SlotID) string {
	if v, ok := c.Defaults[id]; ok {
		if clean, err := sanitizeValue(v); err == nil {
			return clean
		}
	}
	return builtinDefaults[id]
}

func (c Config) baseStep(step string) float64 {
	if v, ok := c.BaseScale[step]; ok {
		return v
	}
	return builtinConfig.BaseScale[step]
}

func (c Config) multipliers(d tokens.Density) map[string]float64 {
	if table, ok := c.Density[d]; ok {
		return table
	}
	return nil
}

func (c Config) fontWeights() []int {
	if len(c.FontWeights) > 0 {
		return c.FontWeights
	}
	return builtinConfig.FontWeights
}

func (c Config) fontsBaseURL() string {
	if c.FontsBaseURL != "" {
		return c.FontsBaseURL
	}
	return builtinConfig.FontsBaseURL
}

// builtinConfig is never handed out; DefaultConfig returns fresh maps.
var (
	builtinConfig   = DefaultConfig()
	builtinDefaults = builtinConfig.Defaults
)
