package parser

import (
	"strings"
	"testing"

	"github.com/dmnkit/go-feel/ast"
)

// boundNames is a test double for the evaluation engine's EnvProbe.
type boundNames map[string]bool

func (b boundNames) HasName(name string) bool { return b[name] }

func mustParse(t *testing.T, input string, probe EnvProbe, top Top) ast.Node {
	t.Helper()
	node, err := Parse(input, probe, top)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node
}

func TestParseExpressions(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"a + b(4, 9)", "(+ a (call b [4, 9]))"},
		{"if a > 6 then true else false", "(if (> a 6) true false)"},
		{`{a: 1, "bbb": [2, 1]}`, `{a: 1, "bbb": [2, 1]}`},
		{"x and y", "(and x y)"},
		{"x or y and z", "(or x (and y z))"},
		{"2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"a in [1..5)", "(in a [1..5))"},
		{"for a in lst return a * 2", "(for a in lst (* a 2))"},
		{"some a in lst satisfies a > 4", "(some a in lst satisfies (> a 4))"},
		{"every a in lst satisfies a > 4", "(every a in lst satisfies (> a 4))"},
		{"a.b.c", "(. (. a b) c)"},
		{"arr[2]", "([] arr 2)"},
		{"[-3, 4]", "[(- 3), 4]"},
		{"(1, 2, 3)", "(expr-list 1 2 3)"},
		{"[]", "[]"},
		{"f(timeout: 30, 1)", "(call f [timeout:30, 1])"},
		{"null", "null"},
		{`@"P1D"`, `@"P1D"`},
	}
	for _, tc := range cases {
		node := mustParse(t, tc.input, boundNames{}, TopExpression)
		if got := node.String(); got != tc.want {
			t.Errorf("parse(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseUnaryTests(t *testing.T) {
	node := mustParse(t, "> 2, <= 1, a>8", boundNames{}, TopUnaryTests)
	want := "(unary-tests (> 2) (<= 1) (> a 8))"
	if got := node.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMultiWordNames(t *testing.T) {
	// operator-free runs are plain identifiers even when unbound
	node := mustParse(t, "string length + 1", boundNames{}, TopExpression)
	if got := node.String(); got != "(+ string length 1)" {
		t.Errorf("got %q", got)
	}
}

func TestParseNameBacktracking(t *testing.T) {
	// "a+b" is bound, so the operator-containing run resolves to it
	node := mustParse(t, "a+b*2", boundNames{"a+b": true}, TopExpression)
	if got := node.String(); got != "(* a+b 2)" {
		t.Errorf("got %q", got)
	}

	// unbound: backtracks to the plain prefix and re-parses operators
	node = mustParse(t, "a+b*2", boundNames{}, TopExpression)
	if got := node.String(); got != "(+ a (* b 2))" {
		t.Errorf("got %q", got)
	}
}

func TestParseLongestBoundPrefixWins(t *testing.T) {
	probe := boundNames{"a": true, "a b": true}
	node := mustParse(t, "a b + 1", probe, TopExpression)
	if got := node.String(); got != "(+ a b 1)" {
		t.Errorf("got %q, want reference to the longer name: %q", got, "(+ a b 1)")
	}
	binop, ok := node.(*ast.BinOp)
	if !ok {
		t.Fatalf("expected BinOp, got %T", node)
	}
	v, ok := binop.Left.(*ast.Var)
	if !ok || v.Name != "a b" {
		t.Fatalf("left = %v, want Var(a b)", binop.Left)
	}
}

func TestParseKeywordInBoundName(t *testing.T) {
	// multi-word names may embed keywords when the environment binds
	// them; "date and time" resolves as one reference
	probe := boundNames{"date and time": true}
	node := mustParse(t, `date and time("2018-04-29T09:30:00+07:00")`, probe, TopExpression)
	call, ok := node.(*ast.FuncCall)
	if !ok {
		t.Fatalf("expected FuncCall, got %T: %s", node, node)
	}
	v, ok := call.FuncRef.(*ast.Var)
	if !ok || v.Name != "date and time" {
		t.Fatalf("func ref = %v", call.FuncRef)
	}
}

func TestParseBacktickNames(t *testing.T) {
	node := mustParse(t, "for `a&b-c` in [2, 3] return `a&b-c` * 2", boundNames{}, TopExpression)
	forExpr, ok := node.(*ast.ForExpr)
	if !ok {
		t.Fatalf("expected ForExpr, got %T", node)
	}
	if forExpr.VarName != "a&b-c" {
		t.Errorf("loop var = %q", forExpr.VarName)
	}
}

func TestParseChainedFor(t *testing.T) {
	node := mustParse(t, "for a in [2], b in [8] return a + b", boundNames{}, TopExpression)
	want := "(for a in [2] (for b in [8] (+ a b)))"
	if got := node.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseFuncDefKeepsCode(t *testing.T) {
	input := "function(a, b) a + b   "
	node := mustParse(t, input, boundNames{}, TopExpression)
	def, ok := node.(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected FuncDef, got %T", node)
	}
	if def.Code != input {
		t.Errorf("code = %q, want %q", def.Code, input)
	}
}

func TestParseDupArgName(t *testing.T) {
	_, err := Parse("function(a, b, a) a+ b", boundNames{}, TopExpression)
	if err == nil {
		t.Fatal("expected duplicate parameter error")
	}
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Message != "function has duplication arg name `a`" {
		t.Errorf("message = %q", parseErr.Message)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"(",
		"if a then b",
		"{a 1}",
		"for a in [1] a",
		"[1..",
	} {
		if _, err := Parse(input, boundNames{}, TopExpression); err == nil {
			t.Errorf("parse(%q): expected error", input)
		}
	}
}

func TestParseErrorMentionsToken(t *testing.T) {
	_, err := Parse("if a then b otherwise c", boundNames{}, TopExpression)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "else") {
		t.Errorf("error should name the expected keyword: %v", err)
	}
}
