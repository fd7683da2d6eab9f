package values

// Binary operator dispatch. Arithmetic dispatches on the left operand:
// numbers combine with numbers, strings concatenate with "+",
// date-times combine with durations and with each other. Any other
// pairing is a ValueError citing both types.

// Add returns a + b.
func Add(a, b Value) (Value, error) {
	switch av := a.(type) {
	case Number:
		if bv, ok := b.(Number); ok {
			return av.Add(bv), nil
		}
	case String:
		if bv, ok := b.(String); ok {
			return av + bv, nil
		}
	case DateTime:
		if bv, ok := b.(Duration); ok {
			return DateTimeOp(true, av, bv), nil
		}
	case Duration:
		if bv, ok := b.(DateTime); ok {
			return DateTimeOp(true, bv, av), nil
		}
	}
	return nil, NewValueError("cannot + %s and %s", a.TypeName(), b.TypeName())
}

// Sub returns a - b.
func Sub(a, b Value) (Value, error) {
	switch av := a.(type) {
	case Number:
		if bv, ok := b.(Number); ok {
			return av.Sub(bv), nil
		}
	case DateTime:
		switch bv := b.(type) {
		case Duration:
			return DateTimeOp(false, av, bv), nil
		case DateTime:
			return DateTimeSub(av, bv), nil
		}
	}
	return nil, NewValueError("cannot - %s and %s", a.TypeName(), b.TypeName())
}

// Mul returns a * b.
func Mul(a, b Value) (Value, error) {
	if av, ok := a.(Number); ok {
		if bv, ok := b.(Number); ok {
			return av.Mul(bv), nil
		}
	}
	return nil, NewValueError("cannot * %s and %s", a.TypeName(), b.TypeName())
}

// Div returns a / b; division by zero is a ValueError.
func Div(a, b Value) (Value, error) {
	if av, ok := a.(Number); ok {
		if bv, ok := b.(Number); ok {
			if bv.IsZero() {
				return nil, NewValueError("division by zero")
			}
			return av.Div(bv), nil
		}
	}
	return nil, NewValueError("cannot / %s and %s", a.TypeName(), b.TypeName())
}

// Rem returns a % b; a zero divisor is a ValueError.
func Rem(a, b Value) (Value, error) {
	if av, ok := a.(Number); ok {
		if bv, ok := b.(Number); ok {
			if bv.IsZero() {
				return nil, NewValueError("division by zero")
			}
			return av.Rem(bv), nil
		}
	}
	return nil, NewValueError("cannot %% %s and %s", a.TypeName(), b.TypeName())
}

// Neg returns -a for numbers.
func Neg(a Value) (Value, error) {
	if av, ok := a.(Number); ok {
		return av.Neg(), nil
	}
	return nil, NewValueError("cannot negate %s", a.TypeName())
}
