package values

import "fmt"

// ValueError reports a value that is parseable but semantically invalid
// (bad number string, temporal parse failure, division by zero).
type ValueError struct {
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ValueError: %s", e.Message)
}

// NewValueError creates a ValueError with a formatted message.
func NewValueError(format string, args ...any) *ValueError {
	return &ValueError{Message: fmt.Sprintf(format, args...)}
}

// TypeError reports an operand of the wrong shape for an operator or a
// built-in function.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("TypeError: expect %s", e.Message)
}

// NewTypeError creates a TypeError with a formatted message.
func NewTypeError(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}
