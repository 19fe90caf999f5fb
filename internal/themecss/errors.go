package themecss

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteTokens is the sentinel behind every ContractError.
var ErrIncompleteTokens = errors.New("incomplete token set")

// ContractError reports a programming error: a token set or config missing
// schema-required entries. Bad theme data never produces one.
type ContractError struct {
	Op      string
	Missing []string
}

func (e *ContractError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v: missing %s", e.Op, ErrIncompleteTokens, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is match ErrIncompleteTokens.
func (e *ContractError) Unwrap() error {
	return ErrIncompleteTokens
}
