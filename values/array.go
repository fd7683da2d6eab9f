package values

import "strings"

// Array is an ordered list value. Instances are reference-shared
// within an evaluation; built-ins that "modify" lists rebuild them.
type Array struct {
	Items []Value
}

// NewArray creates an array over the given items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

func (*Array) TypeName() string { return "array" }

func (a *Array) String() string {
	parts := make([]string, len(a.Items))
	for i, v := range a.Items {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
