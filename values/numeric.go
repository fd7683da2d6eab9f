package values

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// divFracDigits is how many fractional digits a division keeps before
// trailing zeros are stripped. Comfortably above the 28 significant
// digits FEEL arithmetic must preserve.
const divFracDigits = 100

// Number is an arbitrary-precision decimal with an integer fast path:
// values that are exact small integers stay in an int64 and only
// promote to a decimal when an operation needs it.
type Number struct {
	small int64
	big   decimal.Decimal
	isBig bool
}

func (Number) TypeName() string { return "number" }

func (n Number) String() string {
	if !n.isBig {
		return strconv.FormatInt(n.small, 10)
	}
	if exp := n.big.Exponent(); exp < 0 {
		// keep the scale: decimal.String would trim trailing zeros
		return n.big.StringFixed(-exp)
	}
	return n.big.String()
}

// NewNumberFromInt creates a Number from an int64.
func NewNumberFromInt(v int64) Number {
	return Number{small: v}
}

// NewNumberFromString parses a decimal literal. The second result is
// false when the string does not parse.
func NewNumberFromString(s string) (Number, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number{small: i}, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, false
	}
	return newNumberFromDecimal(d), true
}

// NewNumberFromFloat creates a Number from a float64.
func NewNumberFromFloat(v float64) Number {
	return newNumberFromDecimal(decimal.NewFromFloat(v))
}

// newNumberFromDecimal wraps a decimal, downgrading to the integer fast
// path when the value is a small integer with no fractional scale to
// preserve.
func newNumberFromDecimal(d decimal.Decimal) Number {
	if d.Exponent() >= 0 && d.IsInteger() {
		if d.Cmp(maxInt64Dec) <= 0 && d.Cmp(minInt64Dec) >= 0 {
			return Number{small: d.IntPart()}
		}
	}
	return Number{big: d, isBig: true}
}

var (
	maxInt64Dec = decimal.NewFromInt(math.MaxInt64)
	minInt64Dec = decimal.NewFromInt(math.MinInt64)
)

// Dec returns the value as a decimal, promoting the fast path.
func (n Number) Dec() decimal.Decimal {
	if !n.isBig {
		return decimal.NewFromInt(n.small)
	}
	return n.big
}

// IsZero reports whether the value is mathematically zero.
func (n Number) IsZero() bool {
	if !n.isBig {
		return n.small == 0
	}
	return n.big.IsZero()
}

// IsInteger reports whether the value has no fractional part.
func (n Number) IsInteger() bool {
	if !n.isBig {
		return true
	}
	return n.big.IsInteger()
}

// IsPositive reports whether the value is >= 0.
func (n Number) IsPositive() bool {
	if !n.isBig {
		return n.small >= 0
	}
	return !n.big.IsNegative()
}

// Int returns the value as an int64 when it is an integer in range.
func (n Number) Int() (int64, bool) {
	if !n.isBig {
		return n.small, true
	}
	if n.big.IsInteger() && n.big.Cmp(maxInt64Dec) <= 0 && n.big.Cmp(minInt64Dec) >= 0 {
		return n.big.IntPart(), true
	}
	return 0, false
}

// Float returns the nearest float64.
func (n Number) Float() float64 {
	if !n.isBig {
		return float64(n.small)
	}
	return n.big.InexactFloat64()
}

// Cmp returns -1, 0 or 1 comparing n with other.
func (n Number) Cmp(other Number) int {
	if !n.isBig && !other.isBig {
		switch {
		case n.small < other.small:
			return -1
		case n.small == other.small:
			return 0
		default:
			return 1
		}
	}
	return n.Dec().Cmp(other.Dec())
}

// Equal reports mathematical equality, ignoring scale.
func (n Number) Equal(other Number) bool {
	return n.Cmp(other) == 0
}

// Add returns n + other.
func (n Number) Add(other Number) Number {
	if !n.isBig && !other.isBig {
		if r, ok := addInt64(n.small, other.small); ok {
			return Number{small: r}
		}
	}
	return newNumberFromDecimal(n.Dec().Add(other.Dec()))
}

// Sub returns n - other.
func (n Number) Sub(other Number) Number {
	if !n.isBig && !other.isBig {
		if r, ok := subInt64(n.small, other.small); ok {
			return Number{small: r}
		}
	}
	return newNumberFromDecimal(n.Dec().Sub(other.Dec()))
}

// Mul returns n * other.
func (n Number) Mul(other Number) Number {
	if !n.isBig && !other.isBig {
		if r, ok := mulInt64(n.small, other.small); ok {
			return Number{small: r}
		}
	}
	return newNumberFromDecimal(n.Dec().Mul(other.Dec()))
}

// Div returns n / other as a decimal; it never integer-truncates. The
// quotient keeps divFracDigits fractional digits with trailing zeros
// stripped, so exact quotients print minimally. Callers check for a
// zero divisor.
func (n Number) Div(other Number) Number {
	q := n.Dec().DivRound(other.Dec(), divFracDigits)
	return newNumberFromDecimal(stripTrailingZeros(q))
}

// Rem returns the remainder of n / other, sign following the dividend.
// Callers check for a zero divisor.
func (n Number) Rem(other Number) Number {
	if !n.isBig && !other.isBig {
		return Number{small: n.small % other.small}
	}
	return newNumberFromDecimal(n.Dec().Mod(other.Dec()))
}

// Neg returns -n.
func (n Number) Neg() Number {
	if !n.isBig && n.small != math.MinInt64 {
		return Number{small: -n.small}
	}
	return newNumberFromDecimal(n.Dec().Neg())
}

// Abs returns the absolute value.
func (n Number) Abs() Number {
	if !n.isBig && n.small != math.MinInt64 {
		if n.small < 0 {
			return Number{small: -n.small}
		}
		return n
	}
	return newNumberFromDecimal(n.Dec().Abs())
}

// FloorScale rounds toward negative infinity at the given decimal
// scale, which may be negative.
func (n Number) FloorScale(scale int32) Number {
	return Number{big: n.Dec().RoundFloor(scale), isBig: true}
}

// CeilScale rounds toward positive infinity at the given decimal scale.
func (n Number) CeilScale(scale int32) Number {
	return Number{big: n.Dec().RoundCeil(scale), isBig: true}
}

// HalfEvenScale applies banker's rounding at the given decimal scale.
// The result keeps the requested scale, so decimal("1.56", 9) prints
// as 1.560000000.
func (n Number) HalfEvenScale(scale int32) Number {
	return Number{big: n.Dec().RoundBank(scale), isBig: true}
}

// Sqrt returns the square root, or an error for negative input. Like
// the natural logarithm it goes through float64, which is precise to
// about 15 significant digits.
func (n Number) Sqrt() (Number, error) {
	f := n.Float()
	if f < 0 {
		return Number{}, NewValueError("sqrt of negative number")
	}
	return NewNumberFromFloat(math.Sqrt(f)), nil
}

// Ln returns the natural logarithm, or an error for non-positive input.
func (n Number) Ln() (Number, error) {
	f := n.Float()
	if f <= 0 {
		return Number{}, NewValueError("log of non-positive number")
	}
	return NewNumberFromFloat(math.Log(f)), nil
}

func addInt64(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

func subInt64(a, b int64) (int64, bool) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, false
	}
	return r, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == math.MinInt64 && b == -1) {
		return 0, false
	}
	return r, true
}

// stripTrailingZeros removes trailing fractional zeros so that an
// exact quotient like 8/5 prints as 1.6 rather than 1.600…0.
func stripTrailingZeros(d decimal.Decimal) decimal.Decimal {
	if d.Exponent() >= 0 {
		return d
	}
	coeff := new(big.Int).Set(d.Coefficient())
	if coeff.Sign() == 0 {
		return decimal.Zero
	}
	exp := d.Exponent()
	ten := big.NewInt(10)
	for exp < 0 {
		q, r := new(big.Int).QuoRem(coeff, ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		coeff = q
		exp++
	}
	return decimal.NewFromBigInt(coeff, exp)
}
