package fixtures

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/phil426/podabio-sub000/internal/tokens"
)

// Severity ranks a Finding.
type Severity string

// Finding severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation problem with its position in the file.
type Finding struct {
	Field    string // YAML path, e.g. "widget_styles.shape"
	Tag      string // failed rule
	Value    string
	Message  string
	Severity Severity
	Line     int
	Column   int
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		keywords := tokens.Keywords()
		_ = v.RegisterValidation("keyword", func(fl validator.FieldLevel) bool {
			allowed, ok := keywords[fl.Param()]
			if !ok {
				return false
			}
			return slices.Contains(allowed, strings.ToLower(strings.TrimSpace(fl.Field().String())))
		})

		validateInst = v
	})
	return validateInst
}

// widgetView is the keyword subset of widget_styles that validation covers.
type widgetView struct {
	BorderWidth           string `yaml:"border_width" validate:"omitempty,keyword=border_weight"`
	BorderEffect          string `yaml:"border_effect" validate:"omitempty,keyword=border_effect"`
	BorderShadowIntensity string `yaml:"border_shadow_intensity" validate:"omitempty,keyword=intensity"`
	Spacing               string `yaml:"spacing" validate:"omitempty,keyword=spacing"`
	Shape                 string `yaml:"shape" validate:"omitempty,keyword=shape"`
}

type themeView struct {
	ID            int64      `yaml:"id" validate:"gte=0"`
	Name          string     `yaml:"name" validate:"required,max=120"`
	SpatialEffect string     `yaml:"spatial_effect" validate:"omitempty,keyword=spatial_effect"`
	LayoutDensity string     `yaml:"layout_density" validate:"omitempty,keyword=density"`
	WidgetStyles  widgetView `yaml:"widget_styles"`
}

type pageView struct {
	ThemeID        *int64     `yaml:"theme_id" validate:"omitempty,gte=1"`
	SpatialEffect  string     `yaml:"spatial_effect" validate:"omitempty,keyword=spatial_effect"`
	PageNameEffect string     `yaml:"page_name_effect" validate:"omitempty,keyword=page_name"`
	FeaturedEffect string     `yaml:"featured_effect" validate:"omitempty,keyword=featured_effect"`
	WidgetStyles   widgetView `yaml:"widget_styles"`
}

func newWidgetView(g tokens.Group) widgetView {
	str := func(key string) string {
		s, _ := g[key].(string)
		return s
	}
	return widgetView{
		BorderWidth:           str(tokens.WidgetBorderWidth),
		BorderEffect:          str(tokens.WidgetBorderEffect),
		BorderShadowIntensity: str(tokens.WidgetBorderShadowIntensity),
		Spacing:               str(tokens.WidgetSpacing),
		Shape:                 str(tokens.WidgetShape),
	}
}

// ValidateTheme checks identity and legacy keyword fields. Token values are
// checked by the resolver, which reports them as diagnostics.
func ValidateTheme(t *Theme) []Finding {
	if t == nil {
		return nil
	}
	view := themeView{
		ID:            t.ID,
		Name:          strings.TrimSpace(t.Name),
		SpatialEffect: t.SpatialEffect,
		LayoutDensity: t.LayoutDensity,
		WidgetStyles:  newWidgetView(t.WidgetStyles),
	}
	return collect(validatorInstance().Struct(view), t.Position)
}

// ValidatePage checks page override keyword fields.
func ValidatePage(p *Page) []Finding {
	if p == nil {
		return nil
	}
	view := pageView{
		ThemeID:        p.ThemeID,
		SpatialEffect:  p.SpatialEffect,
		PageNameEffect: p.PageNameEffect,
		FeaturedEffect: p.FeaturedEffect,
		WidgetStyles:   newWidgetView(p.WidgetStyles),
	}
	return collect(validatorInstance().Struct(view), p.Position)
}

// RequireTheme returns a *ValidationError for the first error-severity
// finding, or nil when the theme can be rendered.
func RequireTheme(t *Theme) error {
	for _, f := range ValidateTheme(t) {
		if f.Severity == SeverityError {
			return NewValidationError(f.Field, f.Message, nil)
		}
	}
	return nil
}

func collect(err error, position func(path ...string) (int, int)) []Finding {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []Finding{{Field: "document", Message: err.Error(), Severity: SeverityError}}
	}

	findings := make([]Finding, 0, len(ves))
	for _, fe := range ves {
		path := fieldPath(fe)
		line, col := position(path...)
		findings = append(findings, Finding{
			Field:    strings.Join(path, "."),
			Tag:      fe.Tag(),
			Value:    fmt.Sprint(fe.Value()),
			Message:  message(fe),
			Severity: severity(fe),
			Line:     line,
			Column:   col,
		})
	}
	return findings
}

// fieldPath drops the view struct name from the validator namespace.
func fieldPath(fe validator.FieldError) []string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return parts
}

func severity(fe validator.FieldError) Severity {
	if fe.Tag() == "keyword" {
		return SeverityWarning
	}
	return SeverityError
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "keyword":
		allowed := tokens.Keywords()[fe.Param()]
		return fmt.Sprintf("unknown %s %q (want %s); the default is used",
			strings.ReplaceAll(fe.Param(), "_", " "), fe.Value(), strings.Join(allowed, ", "))
	}
	return fmt.Sprintf("%s failed validation for tag '%s'", fe.Field(), fe.Tag())
}
