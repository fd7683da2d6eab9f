package scanner

import (
	"fmt"
	"regexp"
	"strings"
)

// ScanError reports that no token matched at the cursor.
type ScanError struct {
	Message  string
	Position Position
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("ScanError: %s", e.Message)
}

// tokenPattern is one entry of the ordered match table. Operators carry
// no regexp and match by literal prefix.
type tokenPattern struct {
	kind Kind
	re   *regexp.Regexp
}

var tokenPatterns = buildTokenPatterns()

func buildTokenPatterns() []tokenPattern {
	patterns := []tokenPattern{
		{kind: KindSpace, re: regexp.MustCompile(`^\s+`)},
		{kind: KindCommentLine, re: regexp.MustCompile(`^//[^\n]*\n?`)},
		{kind: KindCommentBlock, re: regexp.MustCompile(`^/\*(?s:.*?)\*/`)},
		{kind: KindKeyword, re: regexp.MustCompile(`^(` + strings.Join(Keywords, "|") + `)\b`)},
		{kind: KindTemporal, re: regexp.MustCompile(`^@"(\\.|[^"])*"`)},
		{kind: KindString, re: regexp.MustCompile(`^"(\\.|[^"])*"`)},
		{kind: KindBacktick, re: regexp.MustCompile("^`[^`]*`")},
	}
	for _, op := range operators {
		patterns = append(patterns, tokenPattern{kind: Kind(op)})
	}
	patterns = append(patterns,
		tokenPattern{kind: KindNumber, re: regexp.MustCompile(`^[0-9]+(\.[0-9]+)?\b`)},
		// Names admit Latin letters, _ $ ? %, digits after the first
		// character, and the Han, Greek, Bopomofo and Hangul blocks.
		tokenPattern{kind: KindName, re: regexp.MustCompile(
			`^[a-zA-Z_$?%\p{Han}\p{Greek}\p{Bopomofo}\p{Hangul}][a-zA-Z_$?%0-9\p{Han}\p{Greek}\p{Bopomofo}\p{Hangul}]*`)},
	)
	return patterns
}

// Scanner produces tokens from a source string one at a time. The
// current token is whatever the last NextToken call found; Rewind moves
// the cursor back to a previously returned token, which the parser's
// backtracking name resolution depends on.
type Scanner struct {
	input   string
	cursor  Position
	current Token
}

// NewScanner creates a scanner over the given input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// IsEOF reports whether the cursor has passed the end of input.
func (s *Scanner) IsEOF() bool {
	return s.cursor.Chars >= len(s.input)
}

// TextRange returns the source text between two byte offsets.
func (s *Scanner) TextRange(start, end int) string {
	return s.input[start:end]
}

// Current returns the current token.
func (s *Scanner) Current() Token {
	return s.current
}

// Expect reports whether the current token has the given kind.
func (s *Scanner) Expect(kind Kind) bool {
	return s.current.Expect(kind)
}

// ExpectKinds reports whether the current token has any of the kinds.
func (s *Scanner) ExpectKinds(kinds ...Kind) bool {
	return s.current.ExpectKinds(kinds...)
}

// ExpectKeyword reports whether the current token is the keyword.
func (s *Scanner) ExpectKeyword(keyword string) bool {
	return s.current.ExpectKeyword(keyword)
}

// ExpectKeywords reports whether the current token is any of the keywords.
func (s *Scanner) ExpectKeywords(keywords ...string) bool {
	return s.current.ExpectKeywords(keywords...)
}

// NextToken advances to the next token, transparently skipping
// whitespace and comments.
func (s *Scanner) NextToken() error {
	for {
		token, err := s.findNextToken()
		if err != nil {
			return err
		}
		switch token.Kind {
		case KindSpace, KindCommentLine, KindCommentBlock:
			continue
		}
		s.current = token
		return nil
	}
}

func (s *Scanner) findNextToken() (Token, error) {
	if s.IsEOF() {
		return Token{Kind: KindEOF, Position: s.cursor}, nil
	}
	rest := s.input[s.cursor.Chars:]
	for _, pattern := range tokenPatterns {
		var matched string
		if pattern.re != nil {
			m := pattern.re.FindString(rest)
			if m == "" {
				continue
			}
			matched = m
		} else {
			if !strings.HasPrefix(rest, string(pattern.kind)) {
				continue
			}
			matched = string(pattern.kind)
		}
		token := Token{Kind: pattern.kind, Value: matched, Position: s.cursor}
		s.cursor = s.cursor.Increase(matched)
		return token, nil
	}
	return Token{}, &ScanError{Message: "fail to find token", Position: s.cursor}
}

// Rewind moves the cursor back to just after the given token and makes
// it current again.
func (s *Scanner) Rewind(token Token) {
	s.cursor = token.Position.Increase(token.Value)
	s.current = token
}
