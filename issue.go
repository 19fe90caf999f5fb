package podabio

// Issue is one theme check finding in golangci-lint format.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "themecheck"
	Text        string   `json:"Text"`        // "widget_styles.shape: unknown shape \"cozy\" ..."
	Severity    string   `json:"Severity"`    // "warning", "error"
	Code        string   `json:"Code"`        // "unsafe_value", "keyword", ...
	SourceLines []string `json:"SourceLines"` // Line of the fixture file with the issue
	Pos         IssuePos `json:"Pos"`
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "themes/aurora.yaml"
	Line     int    `json:"Line"`     // 23
	Column   int    `json:"Column"`   // 5 (1-based, start of the key)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// LinterName is the FromLinter value of every Issue.
const LinterName = "themecheck"
