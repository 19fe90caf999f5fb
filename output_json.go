package podabio

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues   int            `json:"total_issues"`
	Errors        int            `json:"errors"`
	Warnings      int            `json:"warnings"`
	Truncated     int            `json:"truncated"`
	FilesScanned  int            `json:"files_scanned"`
	FilesFailed   int            `json:"files_failed"`
	ThemesChecked int            `json:"themes_checked"`
	ByCode        map[string]int `json:"by_code"`
}

// JSONIssue represents a single check issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// jsonNow is replaced in tests.
var jsonNow = time.Now

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *CheckResult) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Code:     issue.Code,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	byCode := result.IssuesByCode
	if byCode == nil {
		byCode = map[string]int{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: jsonNow().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:   result.ErrorCount + result.WarningCount,
			Errors:        result.ErrorCount,
			Warnings:      result.WarningCount,
			Truncated:     result.TruncatedCount,
			FilesScanned:  result.FilesScanned,
			FilesFailed:   result.FilesFailed,
			ThemesChecked: result.ThemesChecked,
			ByCode:        byCode,
		},
		Issues: jsonIssues,
	}
}
