package podabio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phil426/podabio-sub000/internal/fixtures"
	"github.com/phil426/podabio-sub000/internal/logger"
	"github.com/phil426/podabio-sub000/internal/themecss"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

// ManifestFile is the name of the index Generate writes next to the CSS files.
const ManifestFile = "manifest.json"

// GenerateConfig holds batch generation configuration
type GenerateConfig struct {
	SourceDir string   // Directory holding theme fixtures
	Includes  []string // Glob patterns relative to SourceDir (default fixtures.DefaultPatterns)
	PageFile  string   // Optional page override fixture applied to matching themes
	OutputDir string   // Where <slug>.css and manifest.json are written

	Engine *themecss.Config // nil uses themecss.DefaultConfig
	Logger *logger.Logger
}

// GenerateResult summarizes a Generate run.
type GenerateResult struct {
	FilesScanned   int
	ThemesRendered int
	Manifest       Manifest
	Warnings       []string // Files or themes that were skipped, and why
}

// Manifest indexes the generated stylesheets.
type Manifest struct {
	Themes []ManifestEntry `json:"themes"`
}

// ManifestEntry describes one generated stylesheet.
type ManifestEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	BodyClass   string `json:"body_class,omitempty"`
	FontsURL    string `json:"fonts_url,omitempty"`
	CSSFile     string `json:"css_file"`
	Source      string `json:"source"`
	Diagnostics int    `json:"diagnostics"`
}

// Generate renders every theme fixture under SourceDir to its own stylesheet.
// Unreadable files and themes failing hard validation are skipped with a
// warning; they do not stop the run.
func Generate(config GenerateConfig) (*GenerateResult, error) {
	if config.OutputDir == "" {
		return nil, errors.New("generate: output directory is required")
	}
	log := config.Logger
	result := &GenerateResult{Manifest: Manifest{Themes: []ManifestEntry{}}}

	// 1. Optional page overrides
	var page *fixtures.Page
	if config.PageFile != "" {
		p, err := loadPage(config.PageFile)
		if err != nil {
			return nil, fmt.Errorf("load page: %w", err)
		}
		page = p
	}

	// 2. Discover fixtures
	files, stats, err := fixtures.Discover(config.SourceDir, config.Includes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesKept
	log.WithFields(map[string]any{"kept": stats.FilesKept, "skipped": stats.FilesSkipped}).Debug("fixtures discovered")

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	renderer := Renderer{Config: config.Engine, Logger: log}
	used := make(map[string]bool)
	matched := false

	// 3. Render each theme
	for _, path := range files {
		flog := log.With("file", path)
		flog.Debug("parsing fixture")

		file, err := fixtures.LoadFile(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to parse %s: %v", path, err))
			continue
		}
		if len(file.Themes) == 0 {
			flog.Debug("no themes in file")
			continue
		}

		for _, theme := range file.Themes {
			if err := fixtures.RequireTheme(theme); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped theme %d in %s: %v", theme.Index, path, err))
				continue
			}

			overrides, ok := pageFor(page, file.Page, theme)
			matched = matched || ok

			res, err := renderer.Render(&theme.Theme, overrides)
			if err != nil {
				return nil, err
			}

			name := cssFileName(res.ThemeClass, theme.ID, used)
			if err := os.WriteFile(filepath.Join(config.OutputDir, name), []byte(res.CSS), 0o644); err != nil {
				return nil, fmt.Errorf("write failed: %w", err)
			}

			result.Manifest.Themes = append(result.Manifest.Themes, ManifestEntry{
				ID:          theme.ID,
				Name:        theme.Name,
				Active:      theme.Active,
				BodyClass:   res.BodyClass,
				FontsURL:    res.FontsURL,
				CSSFile:     name,
				Source:      filepath.ToSlash(path),
				Diagnostics: len(res.Diagnostics),
			})
			result.ThemesRendered++
			flog.WithFields(map[string]any{"theme": theme.Name, "css": name}).Info("stylesheet written")
		}
	}

	if page != nil && page.ThemeID != nil && !matched {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Page theme_id %d matches no theme; overrides were not applied", *page.ThemeID))
	}

	// 4. Manifest
	if err := writeManifest(filepath.Join(config.OutputDir, ManifestFile), result.Manifest); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	return result, nil
}

// loadPage reads a fixture that must carry a page: document.
func loadPage(path string) (*fixtures.Page, error) {
	file, err := fixtures.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if file.Page == nil {
		return nil, fixtures.NewParseError(path, 0, errors.New("no page overrides in file"))
	}
	return file.Page, nil
}

// pageFor picks the overrides for theme. The page from PageFile wins over a
// page embedded in the theme's own file. A page with a theme_id applies only
// to that theme; ok reports whether the selected page applied.
func pageFor(global, local *fixtures.Page, theme *fixtures.Theme) (tokens.PageOverrides, bool) {
	page := global
	if page == nil {
		page = local
	}
	if page == nil {
		return tokens.PageOverrides{}, false
	}
	if page.ThemeID != nil && *page.ThemeID != theme.ID {
		return tokens.PageOverrides{}, false
	}
	return page.PageOverrides, true
}

// cssFileName returns "<slug>.css", falling back to the theme id when the
// name has no slug, and numbering repeats.
func cssFileName(slug string, id int64, used map[string]bool) string {
	base := slug
	if base == "" {
		base = fmt.Sprintf("theme-%d", id)
	}
	name := base + ".css"
	for n := 2; used[strings.ToLower(name)]; n++ {
		name = fmt.Sprintf("%s-%d.css", base, n)
	}
	used[strings.ToLower(name)] = true
	return name
}

func writeManifest(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
