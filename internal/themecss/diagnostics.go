package themecss

import (
	"fmt"
	"unicode/utf8"
)

// Layer is a precedence layer of the resolver, highest first.
type Layer int

// Precedence layers.
const (
	LayerPage Layer = iota
	LayerTheme
	LayerLegacy
	LayerFallback
	LayerDefault
	LayerEmit
)

func (l Layer) String() string {
	switch l {
	case LayerPage:
		return "page"
	case LayerTheme:
		return "theme"
	case LayerLegacy:
		return "legacy"
	case LayerFallback:
		return "fallback"
	case LayerDefault:
		return "default"
	case LayerEmit:
		return "emit"
	}
	return "unknown"
}

// Code classifies a diagnostic.
type Code string

// Diagnostic codes.
const (
	// CodeMalformed: a value had the wrong shape and was treated as absent.
	CodeMalformed Code = "malformed_token"
	// CodeUnsafe: a value could break out of its CSS context; the slot took its default.
	CodeUnsafe Code = "unsafe_value"
	// CodeUnknownKeyword: a keyword outside its closed set was ignored.
	CodeUnknownKeyword Code = "unknown_keyword"
	// CodeInvalid: a well-shaped value failed its kind check (e.g. a font name with commas).
	CodeInvalid Code = "invalid_value"
)

// Diagnostic records a value the resolver or emitter did not use as given.
// Diagnostics never stop rendering.
type Diagnostic struct {
	Code    Code
	Slot    string // slot id or widget style key
	Layer   Layer
	Value   string // offending raw value, truncated
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s layer): %s", d.Code, d.Slot, d.Layer, d.Message)
}

const maxDiagnosticValue = 60

// truncateValue cuts v to at most maxDiagnosticValue bytes, on a rune boundary.
func truncateValue(v string) string {
	if len(v) <= maxDiagnosticValue {
		return v
	}
	cut := maxDiagnosticValue - 3
	for cut > 0 && !utf8.RuneStart(v[cut]) {
		cut--
	}
	return v[:cut] + "..."
}
