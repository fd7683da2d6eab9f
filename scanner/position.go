package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a location in the source text. Chars is the byte offset,
// Lines and Cols are zero-based line and column counts (columns in code
// points). The zero value means "unknown position".
type Position struct {
	Chars int
	Lines int
	Cols  int
}

// IsZero reports whether the position is the unknown sentinel.
func (p Position) IsZero() bool {
	return p.Chars == 0 && p.Lines == 0 && p.Cols == 0
}

func (p Position) String() string {
	return fmt.Sprintf("chars: %d, lines: %d, cols: %d", p.Chars, p.Lines, p.Cols)
}

// Increase returns the position advanced past chunk.
func (p Position) Increase(chunk string) Position {
	lines := strings.Split(chunk, "\n")
	deltaCols := 0
	if len(lines) == 1 {
		// still on the same line
		deltaCols = p.Cols
	}
	return Position{
		Chars: p.Chars + len(chunk),
		Lines: p.Lines + len(lines) - 1,
		Cols:  deltaCols + utf8.RuneCountInString(lines[len(lines)-1]),
	}
}

// LinePointer renders the source line the position falls on, with a
// caret underneath pointing at the column.
func (p Position) LinePointer(fullText string) string {
	lines := strings.Split(fullText, "\n")
	if p.Lines >= len(lines) {
		return ""
	}
	spaces := strings.Repeat(" ", p.Cols)
	return fmt.Sprintf("%s\n%s^\n", lines[p.Lines], spaces)
}
