package themecss

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const maxValueLength = 512

var (
	errEmptyValue        = errors.New("empty value")
	errTooLong           = fmt.Errorf("value longer than %d bytes", maxValueLength)
	errControlChar       = errors.New("control or invalid character")
	errForbiddenChar     = errors.New("forbidden character")
	errForbiddenSequence = errors.New("forbidden sequence")
	errForbiddenToken    = errors.New("forbidden CSS token")
	errUnbalanced        = errors.New("unbalanced brackets or quotes")
)

// Characters that end a declaration, open/close a block, start markup or
// begin a CSS escape. None of them occur in a well-formed token value.
const forbiddenChars = "{};<>\\"

var forbiddenSequences = []string{
	"/*", "*/", "<!--", "-->",
	"javascript:", "vbscript:",
	"expression(", "@import", "-moz-binding", "behavior:",
}

// Sanitize trims v and reports whether it is safe to place in a CSS value
// position inside a <style> element. Unsafe values are rejected, not repaired.
func Sanitize(v string) (string, error) {
	return sanitizeValue(v)
}

func sanitizeValue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errEmptyValue
	}
	if len(v) > maxValueLength {
		return "", errTooLong
	}
	if !utf8.ValidString(v) {
		return "", errControlChar
	}

	for _, r := range v {
		if r < 0x20 || r == 0x7f || r == '\u2028' || r == '\u2029' {
			return "", errControlChar
		}
		if strings.ContainsRune(forbiddenChars, r) {
			return "", fmt.Errorf("%w %q", errForbiddenChar, r)
		}
	}

	lower := strings.ToLower(v)
	for _, seq := range forbiddenSequences {
		if strings.Contains(lower, seq) {
			return "", fmt.Errorf("%w %q", errForbiddenSequence, seq)
		}
	}

	if err := lexValue(v); err != nil {
		return "", err
	}

	return v, nil
}

// lexValue runs the CSS tokenizer over a single value and rejects anything
// that is not a plain component-value sequence.
func lexValue(v string) error {
	lexer := css.NewLexer(parse.NewInputString(v))
	depth := 0

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("lex: %w", err)
			}
			if depth != 0 {
				return errUnbalanced
			}
			return nil
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth < 0 {
				return errUnbalanced
			}
		case css.StringToken:
			if len(text) < 2 || text[len(text)-1] != text[0] {
				return errUnbalanced
			}
		case css.BadStringToken, css.BadURLToken, css.CDOToken, css.CDCToken,
			css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken,
			css.AtKeywordToken, css.CommentToken:
			return fmt.Errorf("%w %s", errForbiddenToken, tt)
		}
	}
}

// StylesheetStats summarizes a lexed stylesheet.
type StylesheetStats struct {
	Rules        int // top-level and nested blocks opened
	Declarations int // semicolons seen inside blocks
}

// VerifyStylesheet lexes a full stylesheet and checks that blocks balance and
// no malformed strings/URLs or markup delimiters appear.
func VerifyStylesheet(text string) (StylesheetStats, error) {
	var stats StylesheetStats

	if strings.Contains(strings.ToLower(text), "</style") {
		return stats, fmt.Errorf("%w %q", errForbiddenSequence, "</style")
	}

	lexer := css.NewLexer(parse.NewInputString(text))
	depth := 0
	for {
		tt, _ := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return stats, fmt.Errorf("lex: %w", err)
			}
			if depth != 0 {
				return stats, errUnbalanced
			}
			return stats, nil
		case css.LeftBraceToken:
			depth++
			stats.Rules++
		case css.RightBraceToken:
			depth--
			if depth < 0 {
				return stats, errUnbalanced
			}
		case css.SemicolonToken:
			if depth > 0 {
				stats.Declarations++
			}
		case css.BadStringToken, css.BadURLToken, css.CDOToken, css.CDCToken:
			return stats, fmt.Errorf("%w %s", errForbiddenToken, tt)
		}
	}
}
