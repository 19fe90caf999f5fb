// Package podabio renders the stylesheet of a link-in-bio page from its theme
// and page overrides.
//
// # Rendering
//
// Resolve a theme plus page overrides into CSS, a body class and a fonts URL:
//
//	res, err := podabio.Render(theme, tokens.PageOverrides{CustomAccentColor: "#123456"})
//	head, err := podabio.HeadFragment(res)
//
// A nil theme is valid: the page overrides and the built-in defaults still
// produce a complete stylesheet. Bad token data never fails a render; it is
// reported in Result.Diagnostics.
//
// # Batch generation
//
// Render every theme fixture under a directory to one CSS file each plus a
// manifest.json:
//
//	result, err := podabio.Generate(podabio.GenerateConfig{
//		SourceDir: "themes",
//		OutputDir: "public/themes",
//	})
//
// # Checking
//
// Report fixture problems in golangci-lint format:
//
//	result, err := podabio.Check(podabio.CheckConfig{SourceDir: "themes"})
//	podabio.WriteOutput(os.Stdout, result, podabio.OutputIssues, config)
//
// The podabio CLI in cmd/podabio wraps all three.
package podabio

import (
	"fmt"

	"github.com/phil426/podabio-sub000/internal/logger"
	"github.com/phil426/podabio-sub000/internal/themecss"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

// Result is one rendered page stylesheet.
type Result struct {
	themecss.Stylesheet

	// Tokens is the resolved set the stylesheet was emitted from.
	Tokens *themecss.ResolvedTokens
}

// Renderer runs resolve and emit with a fixed engine configuration.
// The zero value uses themecss.DefaultConfig and does not log.
type Renderer struct {
	Config *themecss.Config
	Logger *logger.Logger
}

// Render renders with the default engine configuration.
func Render(theme *tokens.Theme, page tokens.PageOverrides) (*Result, error) {
	return Renderer{}.Render(theme, page)
}

// RenderWith renders with cfg.
func RenderWith(cfg themecss.Config, theme *tokens.Theme, page tokens.PageOverrides) (*Result, error) {
	return Renderer{Config: &cfg}.Render(theme, page)
}

// Render resolves theme and page and emits the stylesheet. The only error is
// a *themecss.ContractError, which means the engine itself is broken.
func (r Renderer) Render(theme *tokens.Theme, page tokens.PageOverrides) (*Result, error) {
	cfg := themecss.DefaultConfig()
	if r.Config != nil {
		cfg = *r.Config
	}

	rt := themecss.Resolve(cfg, theme, page)
	sheet, err := themecss.Emit(rt)
	if err != nil {
		r.Logger.Error(err, "emit failed")
		return nil, fmt.Errorf("render %q: %w", rt.ThemeName, err)
	}

	log := r.Logger
	if theme != nil {
		log = log.WithFields(map[string]any{"theme_id": theme.ID, "theme": theme.Name})
	}
	for _, d := range sheet.Diagnostics {
		log.WithFields(map[string]any{
			"code":  string(d.Code),
			"slot":  d.Slot,
			"layer": d.Layer.String(),
		}).Warn(d.Message)
	}
	log.With("bytes", len(sheet.CSS)).Debug("stylesheet rendered")

	return &Result{Stylesheet: sheet, Tokens: rt}, nil
}
