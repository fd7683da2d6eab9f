package evaluator

import (
	"errors"
	"fmt"

	"github.com/dmnkit/go-feel/parser"
	"github.com/dmnkit/go-feel/scanner"
	"github.com/dmnkit/go-feel/values"
)

// ErrKind classifies an evaluation failure.
type ErrKind int

const (
	ErrRuntime ErrKind = iota
	ErrVarNotFound
	ErrKey
	ErrIndex
	ErrType
	ErrValue
	ErrParse
	ErrScan
)

func (k ErrKind) String() string {
	switch k {
	case ErrVarNotFound:
		return "VarNotFound"
	case ErrKey:
		return "KeyError"
	case ErrIndex:
		return "IndexError"
	case ErrType:
		return "TypeError"
	case ErrValue:
		return "ValueError"
	case ErrParse:
		return "ParseError"
	case ErrScan:
		return "ScanError"
	default:
		return "RuntimeError"
	}
}

// EvalError is any failure raised during evaluation, with a structured
// kind and the source position the evaluator attached.
type EvalError struct {
	Kind   ErrKind
	Detail string
	Pos    scanner.Position
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s at %s", e.message(), e.Pos)
}

func (e *EvalError) message() string {
	switch e.Kind {
	case ErrVarNotFound:
		return fmt.Sprintf("VarNotFound: `%s`", e.Detail)
	case ErrKey, ErrIndex:
		return e.Kind.String()
	case ErrType:
		return fmt.Sprintf("TypeError: expect %s", e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

// Render formats the error for users: message, location, and a caret
// under the offending source line.
func (e *EvalError) Render(source string) string {
	return fmt.Sprintf("%s\n  at line %d col %d\n%s",
		e.message(), e.Pos.Lines+1, e.Pos.Cols, e.Pos.LinePointer(source))
}

func (e *EvalError) withPosIfZero(pos scanner.Position) *EvalError {
	if e.Pos.IsZero() {
		return &EvalError{Kind: e.Kind, Detail: e.Detail, Pos: pos}
	}
	return e
}

func newRuntimeError(format string, args ...any) *EvalError {
	return &EvalError{Kind: ErrRuntime, Detail: fmt.Sprintf(format, args...)}
}

func newValueError(format string, args ...any) *EvalError {
	return &EvalError{Kind: ErrValue, Detail: fmt.Sprintf(format, args...)}
}

func newVarNotFound(name string) *EvalError {
	return &EvalError{Kind: ErrVarNotFound, Detail: name}
}

func newKeyError() *EvalError {
	return &EvalError{Kind: ErrKey}
}

func newIndexError() *EvalError {
	return &EvalError{Kind: ErrIndex}
}

// asEvalError lifts lower-layer errors into the evaluator taxonomy.
func asEvalError(err error) *EvalError {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr
	}
	var valueErr *values.ValueError
	if errors.As(err, &valueErr) {
		return &EvalError{Kind: ErrValue, Detail: valueErr.Message}
	}
	var typeErr *values.TypeError
	if errors.As(err, &typeErr) {
		return &EvalError{Kind: ErrType, Detail: typeErr.Message}
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return &EvalError{Kind: ErrParse, Detail: parseErr.Message, Pos: parseErr.Position}
	}
	var scanErr *scanner.ScanError
	if errors.As(err, &scanErr) {
		return &EvalError{Kind: ErrScan, Detail: scanErr.Message, Pos: scanErr.Position}
	}
	return &EvalError{Kind: ErrRuntime, Detail: err.Error()}
}
