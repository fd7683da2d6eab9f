// Package values defines the FEEL runtime value model: the universal
// Value interface, its variants, operator dispatch, and the comparison
// and equality semantics shared by the evaluator and the prelude.
package values

import "fmt"

// Value is the universal runtime type. Every variant knows its type
// name (used in error messages) and its canonical textual form.
type Value interface {
	TypeName() string
	String() string
}

// Null is the null value.
type Null struct{}

func (Null) TypeName() string { return "null" }
func (Null) String() string   { return "null" }

// Bool is a boolean value.
type Bool bool

func (Bool) TypeName() string { return "boolean" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String is a string value. It prints double-quoted with escapes.
type String string

func (String) TypeName() string { return "string" }
func (s String) String() string {
	return fmt.Sprintf("\"%s\"", Escape(string(s)))
}

// Truthy projects a value to a boolean: null is false, booleans are
// themselves, numbers are non-zero, strings and collections non-empty,
// everything else true.
func Truthy(v Value) bool {
	switch tv := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(tv)
	case Number:
		return !tv.IsZero()
	case String:
		return len(tv) > 0
	case *Array:
		return len(tv.Items) > 0
	case *Context:
		return tv.Len() > 0
	default:
		return true
	}
}

// Equal is structural equality over values. Numbers compare by
// mathematical value, arrays and contexts element-wise, callables by
// identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av.Equal(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av.Time.Equal(bv.Time)
	case Date:
		bv, ok := b.(Date)
		return ok && av == bv
	case Time:
		bv, ok := b.(Time)
		return ok && av == bv
	case Duration:
		bv, ok := b.(Duration)
		return ok && av == bv
	case *Range:
		bv, ok := b.(*Range)
		if !ok {
			return false
		}
		return av.StartOpen == bv.StartOpen && av.EndOpen == bv.EndOpen &&
			Equal(av.Start, bv.Start) && Equal(av.End, bv.End)
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Context:
		bv, ok := b.(*Context)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.Keys() {
			bval, present := bv.Get(key)
			aval, _ := av.Get(key)
			if !present || !Equal(aval, bval) {
				return false
			}
		}
		return true
	case *NativeFunc:
		bv, ok := b.(*NativeFunc)
		return ok && av == bv
	case *Macro:
		bv, ok := b.(*Macro)
		return ok && av == bv
	case *UserFunc:
		bv, ok := b.(*UserFunc)
		return ok && av == bv
	default:
		return false
	}
}

// Compare orders two values of the same category: number/number,
// string/string, date-time/date-time and date/date (same
// representation). The second result is false for any other pairing.
func Compare(a, b Value) (int, bool) {
	switch av := a.(type) {
	case Number:
		if bv, ok := b.(Number); ok {
			return av.Cmp(bv), true
		}
	case String:
		if bv, ok := b.(String); ok {
			switch {
			case av < bv:
				return -1, true
			case av == bv:
				return 0, true
			default:
				return 1, true
			}
		}
	case DateTime:
		if bv, ok := b.(DateTime); ok {
			return av.Time.Compare(bv.Time), true
		}
	case Date:
		if bv, ok := b.(Date); ok {
			return CompareDate(av, bv)
		}
	}
	return 0, false
}

// CompareTotal is Compare extended to a total order: incomparable
// pairings fall back to a stable sort key and never fail. Strings sort
// before numbers; booleans and everything else project onto numbers.
func CompareTotal(a, b Value) int {
	if c, ok := Compare(a, b); ok {
		return c
	}
	ka, sa, na := compareKey(a)
	kb, sb, nb := compareKey(b)
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	if ka == 0 {
		switch {
		case sa < sb:
			return -1
		case sa == sb:
			return 0
		default:
			return 1
		}
	}
	return na.Cmp(nb)
}

func compareKey(v Value) (kind int, s string, n Number) {
	switch tv := v.(type) {
	case String:
		return 0, string(tv), Number{}
	case Number:
		return 1, "", tv
	case Bool:
		if tv {
			return 1, "", NewNumberFromInt(1)
		}
		return 1, "", NewNumberFromInt(0)
	default:
		return 1, "", NewNumberFromInt(0)
	}
}

// ExpectString asserts the value is a string; hint names the operand in
// the error.
func ExpectString(v Value, hint string) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", NewTypeError("%s, expect string, but %s found", hint, v.TypeName())
}

// ExpectNumber asserts the value is a number.
func ExpectNumber(v Value, hint string) (Number, error) {
	if n, ok := v.(Number); ok {
		return n, nil
	}
	return Number{}, NewTypeError("%s, expect number, but %s found", hint, v.TypeName())
}

// ExpectInteger asserts the value is an integral number.
func ExpectInteger(v Value, hint string) (int64, error) {
	if n, ok := v.(Number); ok && n.IsInteger() {
		if i, ok := n.Int(); ok {
			return i, nil
		}
	}
	return 0, NewTypeError("%s, expect integer, but %s found", hint, v.TypeName())
}

// ExpectPositiveInteger asserts the value is an integer >= 1.
func ExpectPositiveInteger(v Value, hint string) (int, error) {
	i, err := ExpectInteger(v, hint)
	if err != nil {
		return 0, err
	}
	if i < 1 {
		return 0, NewTypeError("%s, expect positive integer, but non-positive found", hint)
	}
	return int(i), nil
}

// ExpectArray asserts the value is an array.
func ExpectArray(v Value, hint string) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}
	return nil, NewTypeError("%s, expect array, but %s found", hint, v.TypeName())
}

// ExpectContext asserts the value is a context.
func ExpectContext(v Value, hint string) (*Context, error) {
	if c, ok := v.(*Context); ok {
		return c, nil
	}
	return nil, NewTypeError("%s, expect context, but %s found", hint, v.TypeName())
}

// ExpectRange asserts the value is a range.
func ExpectRange(v Value, hint string) (*Range, error) {
	if r, ok := v.(*Range); ok {
		return r, nil
	}
	return nil, NewTypeError("%s, expect range, but %s found", hint, v.TypeName())
}
