package evaluator

import (
	"strings"
	"testing"

	"github.com/dmnkit/go-feel/values"
)

func mustEval(t *testing.T, contextInput, input string) values.Value {
	t.Helper()
	eng := NewEngine()
	if contextInput != "" {
		if err := eng.LoadContext(contextInput); err != nil {
			t.Fatalf("load context %q: %v", contextInput, err)
		}
	}
	v, err := eng.EvalString(input)
	if err != nil {
		t.Fatalf("eval %q: %v", input, err)
	}
	return v
}

func TestEvalStateless(t *testing.T) {
	testcases := []struct {
		ctx   string
		input string
		want  string
	}{
		{"", "2+ 4", "6"},
		{"", "2 -5", "-3"},
		{"", "8 - 2", "6"},
		{"", "7 / 2", "3.5"},
		{"", "10 / 3", "3." + strings.Repeat("3", 100)},
		{"", "4 * 9 + 1", "37"},
		{"", "8 % 5", "3"},
		{"", "8 / 5", "1.6"},
		{"", "true and false", "false"},
		{"", "false or 2", "true"},
		{"", "not (false or 2)", "false"},
		{"", `@"2023-06-01T10:33:20+01:00" + @"P3Y11M"`, `date and time("2027-05-01T10:33:20+01:00")`},
		{"", `@"2023-06-01T10:33:20+01:00" - @"P1Y2M"`, `date and time("2022-04-01T10:33:20+01:00")`},
		{"", `@"2023-06-01T10:33:20+01:00" - @"2022-04-01T10:33:20+01:00"`, `duration("P426D")`},
		{"", `@"2023-09-17" < @"2023-10-02"`, "true"},
		{"", `"abc" + "de\nf"`, `"abcde\nf"`},
		{"", "2 < 3 - 1", "false"},
		{"", `"abc" <= "abd"`, "true"},
		{"", "[6, 1, 2, -3][4]", "-3"},
		{"", "[2, 8,false,true]", "[2, 8, false, true]"},
		{"", "{a: 1, b: 2}", `{"a":1, "b":2}`},
		{"", "5 in (5..8]", "false"},
		{"", "5 in [5..8)", "true"},
		{"", "8 in [5..8)", "false"},
		{"", "8 in [5..8]", "true"},
		{"", `"c" in ["a".."z"]`, "true"},
		{"", `"f" in ["a".."f")`, "false"},
		{"", "7 in [2, 7, 8]", "true"},
		{"", "7 in [3, 99, -1]", "false"},
		{"", "2 in (>=5, <3)", "true"},
		{"", "6 in (>=5, <3)", "true"},
		{"", "4 in (>=5, <3)", "false"},
		{"", "if 2 > 3 then 6 else 8", "8"},
		{"", "for a in [2, 3, 4] return a * 2", "[4, 6, 8]"},
		{"", "for `a&b-c` in [2, 3, 4] return `a&b-c` * 2", "[4, 6, 8]"},
		{"", "for a in [2, 3, 4], b in [8, 1, 2] return a + b", "[[10, 3, 4], [11, 4, 5], [12, 5, 6]]"},
		{"", "some a in [2, 8, 3, 6] satisfies a > 4", "8"},
		{"", "some a in [2, 3] satisfies a > 4", "null"},
		{"", "every a in [2, 8, 3, 6] satisfies a > 4", "[8, 6]"},
		{"{a: 5}", "a + 10.3", "15.3"},
		{`{"???": 5}`, "??? + 6", "11"},
		{"{a+b: 9}", "a+b*2", "18"},
		{"", `{a: function(x,y) x+y}["a"](3, 5)`, "8"},
		{"", "is defined(a)", "false"},
		{"", "is defined([1, 2][1])", "true"},
		{"", "is defined([1, 2][-1])", "false"},
		{"", "is defined([1, 2][6])", "false"},
		{"", "(2 * 8, true, null, 9 / 3)", "3"},
		{"", "function(a, b) a + b", "function"},
		{"{lst: [1, 2, 3]}", "for x in lst return x + 1", "[2, 3, 4]"},
		{"{score: 7}", "score in [5..10]", "true"},
	}
	for _, tc := range testcases {
		v := mustEval(t, tc.ctx, tc.input)
		if got := v.String(); got != tc.want {
			t.Errorf("eval(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestEvalUnaryTestsTop(t *testing.T) {
	testcases := []struct {
		ctx   string
		input string
		want  string
	}{
		{`{"?": 5}`, ">6, =8, < 3", "false"},
		{`{"?": 5}`, ">6, <8, < 3", "true"},
		{`{"?": 5}`, "5", "true"},
		{`{"?": 5}`, "8", "false"},
		{`{"?": 5, a: 5}`, "a", "true"},
	}
	for _, tc := range testcases {
		eng := NewEngine()
		if err := eng.LoadContext(tc.ctx); err != nil {
			t.Fatalf("load context: %v", err)
		}
		v, err := eng.EvalUnaryTests(tc.input)
		if err != nil {
			t.Fatalf("eval unary tests %q: %v", tc.input, err)
		}
		if got := v.String(); got != tc.want {
			t.Errorf("unary tests %q = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestEveryQuantifierModes(t *testing.T) {
	t.Run("source behaviour returns satisfying list", func(t *testing.T) {
		v := mustEval(t, "", "every a in [2, 8, 3, 6] satisfies a > 4")
		if v.String() != "[8, 6]" {
			t.Errorf("got %s", v)
		}
	})
	t.Run("standard behaviour returns boolean", func(t *testing.T) {
		eng := NewEngine()
		eng.SetEveryReturnsBool(true)
		v, err := eng.EvalString("every a in [2, 8, 3, 6] satisfies a > 4")
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != "false" {
			t.Errorf("got %s", v)
		}
		v, err = eng.EvalString("every a in [5, 8, 6] satisfies a > 4")
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != "true" {
			t.Errorf("got %s", v)
		}
	})
}

func TestSetVars(t *testing.T) {
	eng := NewEngine()
	n, _ := values.NewNumberFromString("2.3")
	eng.SetVar("v1", n)
	v, err := eng.EvalString("v1 + 3")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "5.3" {
		t.Errorf("got %s", v)
	}
}

func TestLoadContextBindsVars(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadContext("{hi: 5}"); err != nil {
		t.Fatal(err)
	}
	v, err := eng.EvalString("hi + 3")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "8" {
		t.Errorf("got %s", v)
	}
}

func TestLoadContextRequiresContext(t *testing.T) {
	eng := NewEngine()
	err := eng.LoadContext("[1, 2]")
	if err == nil {
		t.Fatal("expected error")
	}
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrValue {
		t.Errorf("got %v", err)
	}
}

func TestUserFuncCall(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadContext("{add2: (function(a, b) a+b)}"); err != nil {
		t.Fatal(err)
	}
	v, err := eng.EvalString("add2(4.5, 9)")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "13.5" {
		t.Errorf("got %s", v)
	}

	if _, err := eng.EvalString("add2(1)"); err == nil {
		t.Error("too few arguments must fail")
	}
}

func TestNativeFuncKeywordArgs(t *testing.T) {
	eng := NewEngine()
	v, err := eng.EvalString(`substring("hello world", start position: 7)`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != `"world"` {
		t.Errorf("got %s", v)
	}

	if _, err := eng.EvalString(`substring("abc", 1, start position: 2)`); err == nil {
		t.Error("duplicate argument must fail")
	}
	if _, err := eng.EvalString(`substring("abc", 1, 2, 3)`); err == nil {
		t.Error("too many arguments must fail")
	}
	if _, err := eng.EvalString(`string length()`); err == nil {
		t.Error("too few arguments must fail")
	}
}

func TestErrorKindsAndPositions(t *testing.T) {
	eng := NewEngine()
	_, err := eng.EvalString("1 + missing")
	if err == nil {
		t.Fatal("expected error")
	}
	evalErr, ok := err.(*EvalError)
	if !ok {
		t.Fatalf("got %T", err)
	}
	if evalErr.Kind != ErrVarNotFound || evalErr.Detail != "missing" {
		t.Errorf("got %+v", evalErr)
	}
	if evalErr.Pos.Chars != 4 {
		t.Errorf("pos = %+v, want chars 4", evalErr.Pos)
	}
	rendered := evalErr.Render("1 + missing")
	if !strings.Contains(rendered, "VarNotFound") || !strings.Contains(rendered, "at line 1") {
		t.Errorf("rendered = %q", rendered)
	}
	if !strings.Contains(rendered, "^") {
		t.Errorf("rendered lacks caret: %q", rendered)
	}

	_, err = eng.EvalString("{a: 1}.b")
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrKey {
		t.Errorf("dot on missing key: %v", err)
	}

	_, err = eng.EvalString("[1][9]")
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrIndex {
		t.Errorf("index out of bounds: %v", err)
	}

	_, err = eng.EvalString("1 / 0")
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrValue {
		t.Errorf("division by zero: %v", err)
	}

	_, err = eng.EvalString(`1 + "a"`)
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrValue {
		t.Errorf("mismatched operands: %v", err)
	}

	_, err = eng.EvalString("(")
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrParse {
		t.Errorf("parse failure: %v", err)
	}
}

func TestRangeEndpointTypeMismatch(t *testing.T) {
	eng := NewEngine()
	_, err := eng.EvalString(`[1.."a"]`)
	if err == nil {
		t.Fatal("expected error")
	}
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrValue {
		t.Errorf("got %v", err)
	}
}

// A failed evaluation must leave the scope stack exactly as it was:
// frames pushed for iterations and probes pop on the error path too.
func TestScopeHygieneAfterFailure(t *testing.T) {
	eng := NewEngine()
	eng.BindVar("a", values.NewNumberFromInt(5))

	if _, err := eng.EvalString("for x in [1, 2] return missing"); err == nil {
		t.Fatal("expected failure inside the loop body")
	}
	if got := len(eng.scopes); got != 1 {
		t.Fatalf("scope stack depth = %d after failure, want 1", got)
	}

	v, err := eng.EvalString("a")
	if err != nil || v.String() != "5" {
		t.Fatalf("a = %v, %v", v, err)
	}

	// loop variables do not leak
	if _, err := eng.EvalString("for x in [1] return x"); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.EvalString("x"); err == nil {
		t.Error("loop variable leaked into the enclosing scope")
	}
}

func TestIsDefinedRethrowsOtherErrors(t *testing.T) {
	eng := NewEngine()
	// a type failure inside the probe is not a lookup failure
	if _, err := eng.EvalString(`is defined(1 + "a")`); err == nil {
		t.Error("expected the value error to propagate")
	}
	if got := len(eng.scopes); got != 1 {
		t.Errorf("scope stack depth = %d", got)
	}
}

func TestContextPutSharesReference(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadContext("{m: {a: 1}}"); err != nil {
		t.Fatal(err)
	}
	v, err := eng.EvalString(`context put(m, "b", 2)`)
	if err != nil {
		t.Fatal(err)
	}
	original, _ := eng.Resolve("m")
	if v != original {
		t.Error("context put must return the same shared reference")
	}
	if original.String() != `{"a":1, "b":2}` {
		t.Errorf("mutation not visible: %s", original)
	}
}

func TestPrintedLiteralsRoundTrip(t *testing.T) {
	inputs := []string{
		"null",
		"true",
		"-3.25",
		`"he\tllo"`,
		"[1, 2, [3]]",
		`{a: 1, b: {c: 2}}`,
		"[1..5)",
		`@"2023-06-01T10:33:20+01:00"`,
		`@"P3Y11M"`,
		`@"-P1D"`,
		`@"2023-09-17"`,
		`@"11:33:20+01:00"`,
	}
	for _, input := range inputs {
		first := mustEval(t, "", input)
		second := mustEval(t, "", first.String())
		if !values.Equal(first, second) {
			t.Errorf("round trip of %q: %s != %s", input, first, second)
		}
	}
}
