package values

import (
	"math"
	"strings"
	"testing"
)

func numFromString(t *testing.T, s string) Number {
	t.Helper()
	n, ok := NewNumberFromString(s)
	if !ok {
		t.Fatalf("parse number %q failed", s)
	}
	return n
}

func TestNumberParseAndPrint(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"-7", "-7"},
		{"3000.888", "3000.888"},
		{"1.560000000", "1.560000000"},
		{"2342404820143892034890", "2342404820143892034890"},
	}
	for _, tc := range cases {
		if got := numFromString(t, tc.input).String(); got != tc.want {
			t.Errorf("parse(%q).String() = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, ok := NewNumberFromString("12abc"); ok {
		t.Error("expected parse failure for 12abc")
	}
}

func TestNumberEqualityIgnoresScale(t *testing.T) {
	if !numFromString(t, "1.0").Equal(NewNumberFromInt(1)) {
		t.Error("1.0 must equal 1")
	}
	if !numFromString(t, "2.50").Equal(numFromString(t, "2.5")) {
		t.Error("2.50 must equal 2.5")
	}
}

func TestNumberArithmetic(t *testing.T) {
	cases := []struct {
		a, op, b string
		want     string
	}{
		{"2", "+", "4", "6"},
		{"2", "-", "5", "-3"},
		{"4", "*", "9", "36"},
		{"7", "/", "2", "3.5"},
		{"8", "/", "5", "1.6"},
		{"8", "%", "5", "3"},
		{"1.5", "+", "2.5", "4.0"},
	}
	for _, tc := range cases {
		a, b := numFromString(t, tc.a), numFromString(t, tc.b)
		var got Number
		switch tc.op {
		case "+":
			got = a.Add(b)
		case "-":
			got = a.Sub(b)
		case "*":
			got = a.Mul(b)
		case "/":
			got = a.Div(b)
		case "%":
			got = a.Rem(b)
		}
		if got.String() != tc.want {
			t.Errorf("%s %s %s = %s, want %s", tc.a, tc.op, tc.b, got, tc.want)
		}
	}
}

func TestNumberDivPrecision(t *testing.T) {
	got := NewNumberFromInt(10).Div(NewNumberFromInt(3)).String()
	want := "3." + strings.Repeat("3", 100)
	if got != want {
		t.Errorf("10/3 = %q, want %q", got, want)
	}
}

func TestNumberIntOverflowPromotes(t *testing.T) {
	big := NewNumberFromInt(math.MaxInt64)
	got := big.Add(NewNumberFromInt(1)).String()
	if got != "9223372036854775808" {
		t.Errorf("MaxInt64+1 = %q", got)
	}
	got = NewNumberFromInt(math.MinInt64).Neg().String()
	if got != "9223372036854775808" {
		t.Errorf("-MinInt64 = %q", got)
	}
}

func TestNumberRounding(t *testing.T) {
	cases := []struct {
		input string
		mode  string
		scale int32
		want  string
	}{
		{"1.5", "floor", 0, "1"},
		{"-1.5", "floor", 0, "-2"},
		{"-1.56", "floor", 1, "-1.6"},
		{"1.5", "ceil", 0, "2"},
		{"-1.5", "ceil", 0, "-1"},
		{"-1.56", "ceil", 1, "-1.5"},
		{"1.5", "halfeven", 0, "2"},
		{"2.5", "halfeven", 0, "2"},
		{"1.56", "halfeven", 9, "1.560000000"},
		{"1234", "floor", -2, "1200"},
		{"1234", "ceil", -2, "1300"},
	}
	for _, tc := range cases {
		n := numFromString(t, tc.input)
		var got Number
		switch tc.mode {
		case "floor":
			got = n.FloorScale(tc.scale)
		case "ceil":
			got = n.CeilScale(tc.scale)
		case "halfeven":
			got = n.HalfEvenScale(tc.scale)
		}
		if got.String() != tc.want {
			t.Errorf("%s(%s, %d) = %s, want %s", tc.mode, tc.input, tc.scale, got, tc.want)
		}
	}
}

// Rounding at a scale is idempotent: applying the same scale twice
// yields the same result.
func TestNumberHalfEvenIdempotent(t *testing.T) {
	inputs := []string{"3.14159", "-3.14159", "0.5", "123456.789", "-0.0005"}
	for _, input := range inputs {
		for scale := int32(-10); scale <= 10; scale++ {
			once := numFromString(t, input).HalfEvenScale(scale)
			twice := once.HalfEvenScale(scale)
			if once.String() != twice.String() {
				t.Fatalf("decimal(%q, %d) not idempotent: %s vs %s", input, scale, once, twice)
			}
		}
	}
}

func TestNumberHelpers(t *testing.T) {
	if !numFromString(t, "4").IsInteger() || numFromString(t, "4.2").IsInteger() {
		t.Error("IsInteger misclassifies")
	}
	if i, ok := numFromString(t, "9").Int(); !ok || i != 9 {
		t.Error("Int() failed for 9")
	}
	if numFromString(t, "-3").Abs().String() != "3" {
		t.Error("Abs(-3) != 3")
	}
	root, err := NewNumberFromInt(4).Sqrt()
	if err != nil || root.String() != "2" {
		t.Errorf("sqrt(4) = %v, %v", root, err)
	}
	if _, err := NewNumberFromInt(-1).Sqrt(); err == nil {
		t.Error("sqrt(-1) must fail")
	}
	if _, err := NewNumberFromInt(0).Ln(); err == nil {
		t.Error("ln(0) must fail")
	}
}
