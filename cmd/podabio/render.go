package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	podabio "github.com/phil426/podabio-sub000"
	"github.com/phil426/podabio-sub000/internal/fixtures"
	"github.com/phil426/podabio-sub000/internal/logger"
	"github.com/phil426/podabio-sub000/internal/themecss"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one theme and page to CSS",
	Long: `Resolve a single theme fixture plus optional page overrides and print
the stylesheet. Without --theme the page overrides and built-in defaults
are rendered on their own.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRender(cmd.OutOrStdout())
	},
}

func init() {
	f := renderCmd.Flags()
	f.String("theme", "", "Theme fixture file")
	f.Int("theme-index", 0, "Theme to render when the file holds several")
	f.Int64("theme-id", 0, "Select the theme by id instead of position")
	f.String("page", "", "Page override fixture file (default: the page embedded in --theme)")
	f.String("format", "css", "Output format: css|head|json")
	f.StringP("output", "o", "", "Write to this file instead of stdout")
}

// renderOutput is the json format of the render command.
type renderOutput struct {
	CSS                string           `json:"css"`
	BodyClass          string           `json:"body_class"`
	ThemeClass         string           `json:"theme_class"`
	SpatialEffectClass string           `json:"spatial_effect_class"`
	PageNameClass      string           `json:"page_name_class"`
	FeaturedClass      string           `json:"featured_class"`
	FontsURL           string           `json:"fonts_url"`
	Diagnostics        []renderDiagnose `json:"diagnostics"`
}

type renderDiagnose struct {
	Code    string `json:"code"`
	Slot    string `json:"slot"`
	Layer   string `json:"layer"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func runRender(stdout io.Writer) error {
	log, err := buildLogger()
	if err != nil {
		return err
	}
	engine, err := buildEngineConfig()
	if err != nil {
		return err
	}

	var theme *tokens.Theme
	var embedded *fixtures.Page
	if path := getStringWithFallback("theme", "render.theme", ""); path != "" {
		file, err := fixtures.LoadFile(path)
		if err != nil {
			return err
		}
		selected, err := selectTheme(file,
			getIntWithFallback("theme-index", "render.theme-index", 0),
			int64(getIntWithFallback("theme-id", "render.theme-id", 0)))
		if err != nil {
			return err
		}
		logFindings(log.With("file", path), fixtures.ValidateTheme(selected))
		theme = &selected.Theme
		embedded = file.Page
	}

	page := tokens.PageOverrides{}
	if path := getStringWithFallback("page", "render.page", ""); path != "" {
		file, err := fixtures.LoadFile(path)
		if err != nil {
			return err
		}
		if file.Page == nil {
			return fmt.Errorf("%s: no page overrides in file", path)
		}
		logFindings(log.With("file", path), fixtures.ValidatePage(file.Page))
		page = file.Page.PageOverrides
	} else if embedded != nil {
		page = embedded.PageOverrides
	}

	res, err := podabio.Renderer{Config: &engine, Logger: log}.Render(theme, page)
	if err != nil {
		return err
	}

	out, err := formatRender(res, getStringWithFallback("format", "render.format", "css"))
	if err != nil {
		return err
	}

	if path := getStringWithFallback("output", "render.output", ""); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.With("file", path).Info("stylesheet written")
		return nil
	}
	_, err = stdout.Write(out)
	return err
}

// selectTheme picks by id when id is non-zero, by position otherwise.
func selectTheme(file *fixtures.File, index int, id int64) (*fixtures.Theme, error) {
	if id != 0 {
		for _, t := range file.Themes {
			if t.ID == id {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%s: no theme with id %d", file.Path, id)
	}
	if index < 0 || index >= len(file.Themes) {
		return nil, fmt.Errorf("%s: theme index %d out of range (%d themes)", file.Path, index, len(file.Themes))
	}
	return file.Themes[index], nil
}

func logFindings(log *logger.Logger, findings []fixtures.Finding) {
	for _, f := range findings {
		log.WithFields(map[string]any{
			"field":    f.Field,
			"line":     f.Line,
			"severity": string(f.Severity),
		}).Warn(f.Message)
	}
}

func formatRender(res *podabio.Result, format string) ([]byte, error) {
	switch format {
	case "css":
		return []byte(res.CSS), nil
	case "head":
		head, err := podabio.HeadFragment(res)
		if err != nil {
			return nil, err
		}
		return []byte(head), nil
	case "json":
		out := renderOutput{
			CSS:                res.CSS,
			BodyClass:          res.BodyClass,
			ThemeClass:         res.ThemeClass,
			SpatialEffectClass: res.SpatialEffectClass,
			PageNameClass:      res.PageNameClass,
			FeaturedClass:      res.FeaturedClass,
			FontsURL:           res.FontsURL,
			Diagnostics:        diagnosticsJSON(res.Diagnostics),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want css, head or json)", format)
	}
}

func diagnosticsJSON(diags []themecss.Diagnostic) []renderDiagnose {
	out := make([]renderDiagnose, 0, len(diags))
	for _, d := range diags {
		out = append(out, renderDiagnose{
			Code:    string(d.Code),
			Slot:    d.Slot,
			Layer:   d.Layer.String(),
			Value:   d.Value,
			Message: d.Message,
		})
	}
	return out
}
