package tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ThemeRow is a theme as the persistence layer stores it: token groups and
// widget styles are JSON text columns.
type ThemeRow struct {
	ID                int64
	Name              string
	Active            bool
	ColorTokens       string
	TypographyTokens  string
	SpacingTokens     string
	ShapeTokens       string
	MotionTokens      string
	Colors            string // legacy {"primary","secondary","accent"}
	Fonts             string // legacy {"heading","body"}
	PageBackground    string
	WidgetBackground  string
	WidgetBorderColor string
	WidgetStyles      string
	SpatialEffect     string
	LayoutDensity     string
}

// DecodeError records a JSON column that could not be decoded.
type DecodeError struct {
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Column, e.Err)
}

// Unwrap exposes the underlying JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FromRow converts a stored row into a Theme. Undecodable columns are left
// empty and reported; they never abort the conversion.
func FromRow(row ThemeRow) (*Theme, []error) {
	var errs []error
	group := func(column, raw string) Group {
		g, err := DecodeGroup(raw)
		if err != nil {
			errs = append(errs, &DecodeError{Column: column, Err: err})
		}
		return g
	}

	theme := &Theme{
		ID:               row.ID,
		Name:             row.Name,
		Active:           row.Active,
		ColorTokens:      group("color_tokens", row.ColorTokens),
		TypographyTokens: group("typography_tokens", row.TypographyTokens),
		SpacingTokens:    group("spacing_tokens", row.SpacingTokens),
		ShapeTokens:      group("shape_tokens", row.ShapeTokens),
		MotionTokens:     group("motion_tokens", row.MotionTokens),
	}

	colors := group("colors", row.Colors)
	theme.Colors.Primary, _ = colors.String("primary")
	theme.Colors.Secondary, _ = colors.String("secondary")
	theme.Colors.Accent, _ = colors.String("accent")

	fonts := group("fonts", row.Fonts)
	theme.Fonts.Heading, _ = fonts.String("heading")
	theme.Fonts.Body, _ = fonts.String("body")

	theme.PageBackground = row.PageBackground
	theme.WidgetBackground = row.WidgetBackground
	theme.WidgetBorderColor = row.WidgetBorderColor
	theme.WidgetStyles = group("widget_styles", row.WidgetStyles)
	theme.SpatialEffect = row.SpatialEffect
	theme.LayoutDensity = row.LayoutDensity

	return theme, errs
}

// DecodeGroup decodes a JSON object into a Group. Empty input and JSON null
// decode to a nil group without error.
func DecodeGroup(raw string) (Group, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var g Group
	if err := dec.Decode(&g); err != nil {
		return nil, err
	}
	return g, nil
}
