package parser

import (
	"fmt"

	"github.com/dmnkit/go-feel/scanner"
)

// ParseError reports an unexpected token or malformed construct, with
// the position of the token that triggered it.
type ParseError struct {
	Message  string
	Position scanner.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError: %s", e.Message)
}

func newParseError(message string, pos scanner.Position) *ParseError {
	return &ParseError{Message: message, Position: pos}
}
