package podabio

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/phil426/podabio-sub000/internal/fixtures"
	"github.com/phil426/podabio-sub000/internal/logger"
	"github.com/phil426/podabio-sub000/internal/themecss"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

// CheckConfig holds theme check configuration
type CheckConfig struct {
	SourceDir string   // Directory holding theme fixtures
	Includes  []string // Glob patterns relative to SourceDir (default fixtures.DefaultPatterns)
	PageFile  string   // Optional page override fixture, checked and applied to matching themes
	Strict    bool     // Exit with code 1 on any issue

	MaxIssues        int  // 0 = unlimited (default)
	MaxSameIssues    int  // 0 = unlimited (default)
	PrintIssuedLines bool // Show source lines with issues (default: true)
	PrintLinterName  bool // Show (themecheck) suffix (default: true)
	UseColors        bool // Enable color output (default: auto-detect)

	Engine *themecss.Config // nil uses themecss.DefaultConfig
	Logger *logger.Logger
}

// CheckResult contains theme check results
type CheckResult struct {
	Issues []Issue

	FilesScanned   int
	FilesFailed    int // Files that could not be parsed
	ThemesChecked  int
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	// IssuesByCode counts issues per Issue.Code, before truncation.
	IssuesByCode map[string]int
}

// Check validates and renders every theme fixture under SourceDir and
// reports what the renderer would silently fix: unknown keywords, malformed
// tokens, invalid or unsafe values. Nothing is written.
func Check(config CheckConfig) (*CheckResult, error) {
	log := config.Logger
	result := &CheckResult{IssuesByCode: make(map[string]int)}
	c := &checker{sources: make(map[string][]string), seen: make(map[string]bool)}

	var page *fixtures.Page
	if config.PageFile != "" {
		file, err := fixtures.LoadFile(config.PageFile)
		if err != nil {
			return nil, fmt.Errorf("load page: %w", err)
		}
		if file.Page == nil {
			return nil, fmt.Errorf("load page: %s has no page overrides", config.PageFile)
		}
		page = file.Page
		for _, f := range fixtures.ValidatePage(page) {
			c.addFinding(config.PageFile, f)
		}
	}

	files, stats, err := fixtures.Discover(config.SourceDir, config.Includes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesKept

	renderer := Renderer{Config: config.Engine}

	for _, path := range files {
		log.With("file", path).Debug("checking fixture")

		file, err := fixtures.LoadFile(path)
		if err != nil {
			result.FilesFailed++
			c.addParseError(path, err)
			continue
		}

		pagePath := config.PageFile
		if page == nil && file.Page != nil {
			pagePath = path
			for _, f := range fixtures.ValidatePage(file.Page) {
				c.addFinding(path, f)
			}
		}

		for _, theme := range file.Themes {
			result.ThemesChecked++
			for _, f := range fixtures.ValidateTheme(theme) {
				c.addFinding(path, f)
			}

			overrides, applied := pageFor(page, file.Page, theme)
			res, err := renderer.Render(&theme.Theme, overrides)
			if err != nil {
				line, col := theme.Position()
				c.add(path, line, col, SeverityError, "contract", err.Error())
				continue
			}

			var pageFix *fixtures.Page
			if applied {
				pageFix = page
				if pageFix == nil {
					pageFix = file.Page
				}
			}
			for _, d := range res.Diagnostics {
				c.addDiagnostic(d, path, theme, pagePath, pageFix)
			}

			if _, err := themecss.VerifyStylesheet(res.CSS); err != nil {
				line, col := theme.Position()
				c.add(path, line, col, SeverityError, "stylesheet", "rendered stylesheet failed verification: "+err.Error())
			}
		}
	}

	sortIssues(c.issues)
	for _, issue := range c.issues {
		result.IssuesByCode[issue.Code]++
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	result.Issues, result.TruncatedCount = limitIssues(c.issues, config)
	log.WithFields(map[string]any{
		"files":    result.FilesScanned,
		"themes":   result.ThemesChecked,
		"errors":   result.ErrorCount,
		"warnings": result.WarningCount,
	}).Info("check complete")

	return result, nil
}

type checker struct {
	issues  []Issue
	sources map[string][]string // file lines, loaded on first issue
	seen    map[string]bool     // one issue per file, position and text
}

func (c *checker) add(file string, line, col int, severity, code, text string) {
	if line <= 0 {
		line, col = 1, 1
	}
	if col <= 0 {
		col = 1
	}

	key := fmt.Sprintf("%s:%d:%d:%s", file, line, col, text)
	if c.seen[key] {
		return
	}
	c.seen[key] = true

	issue := Issue{
		FromLinter: LinterName,
		Text:       text,
		Severity:   severity,
		Code:       code,
		Pos:        IssuePos{Filename: file, Line: line, Column: col},
	}
	if src := c.sourceLine(file, line); src != "" {
		issue.SourceLines = []string{src}
	}
	c.issues = append(c.issues, issue)
}

func (c *checker) addFinding(file string, f fixtures.Finding) {
	severity := SeverityWarning
	if f.Severity == fixtures.SeverityError {
		severity = SeverityError
	}
	c.add(file, f.Line, f.Column, severity, f.Tag, f.Field+": "+f.Message)
}

func (c *checker) addParseError(file string, err error) {
	line := 0
	var pe *fixtures.ParseError
	if errors.As(err, &pe) {
		line = pe.Line
	}
	c.add(file, line, 1, SeverityError, "parse", err.Error())
}

// keys the validator already reports as keyword findings
var validatedKeywords = map[string]bool{
	"spacing.density":  true,
	"spatial_effect":   true,
	"page_name_effect": true,
	"featured_effect":  true,

	"widget_styles." + tokens.WidgetBorderWidth:           true,
	"widget_styles." + tokens.WidgetBorderEffect:          true,
	"widget_styles." + tokens.WidgetBorderShadowIntensity: true,
	"widget_styles." + tokens.WidgetSpacing:               true,
	"widget_styles." + tokens.WidgetShape:                 true,
}

func (c *checker) addDiagnostic(d themecss.Diagnostic, themeFile string, theme *fixtures.Theme, pageFile string, page *fixtures.Page) {
	if d.Code == themecss.CodeUnknownKeyword && validatedKeywords[d.Slot] && d.Layer != themecss.LayerTheme {
		return
	}

	file := themeFile
	position := theme.Position
	if d.Layer == themecss.LayerPage {
		if page == nil {
			return
		}
		file, position = pageFile, page.Position
	}

	line, col := position(diagnosticPath(d)...)

	severity := SeverityWarning
	if d.Code == themecss.CodeUnsafe {
		severity = SeverityError
	}
	c.add(file, line, col, severity, string(d.Code), diagnosticText(d))
}

func diagnosticText(d themecss.Diagnostic) string {
	var b strings.Builder
	b.WriteString(strings.Join(diagnosticPath(d), "."))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Value != "" {
		fmt.Fprintf(&b, " (got %q)", d.Value)
	}
	switch d.Code {
	case themecss.CodeUnsafe:
		b.WriteString("; the default is used")
	case themecss.CodeMalformed, themecss.CodeInvalid, themecss.CodeUnknownKeyword:
		b.WriteString("; ignored")
	}
	return b.String()
}

// legacyPaths and pagePaths map slot ids to the flat field that feeds them.
var legacyPaths = map[tokens.SlotID][]string{
	tokens.TextPrimary:       {"colors", "primary"},
	tokens.TextSecondary:     {"colors", "secondary"},
	tokens.AccentPrimary:     {"colors", "accent"},
	tokens.BackgroundBase:    {"page_background"},
	tokens.BackgroundSurface: {"widget_background"},
	tokens.BorderDefault:     {"widget_border_color"},
	tokens.FontHeading:       {"fonts", "heading"},
	tokens.FontBody:          {"fonts", "body"},
}

var pagePaths = map[tokens.SlotID][]string{
	tokens.TextPrimary:       {"custom_primary_color"},
	tokens.TextSecondary:     {"custom_secondary_color"},
	tokens.AccentPrimary:     {"custom_accent_color"},
	tokens.BackgroundBase:    {"custom_page_background"},
	tokens.BackgroundSurface: {"custom_widget_background"},
	tokens.BorderDefault:     {"custom_border_color"},
	tokens.FontHeading:       {"custom_heading_font"},
	tokens.FontBody:          {"custom_body_font"},
}

// diagnosticPath turns a diagnostic slot key into the document path of the
// value it complains about.
func diagnosticPath(d themecss.Diagnostic) []string {
	id := tokens.SlotID(d.Slot)
	switch d.Layer {
	case themecss.LayerLegacy:
		if p, ok := legacyPaths[id]; ok {
			return p
		}
		if d.Slot == "spacing.density" {
			return []string{"layout_density"}
		}
	case themecss.LayerPage:
		if p, ok := pagePaths[id]; ok {
			return p
		}
	}

	parts := strings.Split(d.Slot, ".")
	switch tokens.GroupName(parts[0]) {
	case tokens.GroupColor, tokens.GroupTypography, tokens.GroupSpacing, tokens.GroupShape, tokens.GroupMotion:
		parts[0] += "_tokens"
	}
	return parts
}

// sourceLine returns line (1-based) of file, or "" when unavailable.
func (c *checker) sourceLine(file string, line int) string {
	lines, ok := c.sources[file]
	if !ok {
		data, err := os.ReadFile(file)
		if err == nil {
			lines = strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		}
		c.sources[file] = lines
	}
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// limitIssues applies MaxIssues and MaxSameIssues and returns how many
// issues were dropped.
func limitIssues(issues []Issue, config CheckConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	if config.MaxIssues > 0 && len(issues) > config.MaxIssues {
		issues = issues[:config.MaxIssues]
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}

// Failed applies the soft gate: errors always fail, and in strict mode any
// issue fails.
func (r *CheckResult) Failed(strict bool) bool {
	if r == nil {
		return false
	}
	if strict {
		return r.ErrorCount+r.WarningCount > 0
	}
	return r.ErrorCount > 0
}
