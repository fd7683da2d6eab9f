// Package feel provides a clean Go API for evaluating FEEL
// expressions, the expression language of the DMN standard.
//
// Basic usage:
//
//	result, err := feel.Eval("1 + 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result) // 2
//
// Stateful use (a DMN layer keeps one engine per decision evaluation):
//
//	eng := evaluator.NewEngine()
//	eng.LoadContext(`{amount: 120}`)
//	result, _ := eng.EvalString("amount * 2")
//	fmt.Println(result) // 240
package feel

import (
	"github.com/pkg/errors"

	"github.com/dmnkit/go-feel/ast"
	"github.com/dmnkit/go-feel/evaluator"
	"github.com/dmnkit/go-feel/parser"
	"github.com/dmnkit/go-feel/values"
)

// Eval evaluates a single FEEL expression against a fresh engine.
func Eval(input string) (values.Value, error) {
	eng := evaluator.NewEngine()
	v, err := eng.EvalString(input)
	if err != nil {
		return nil, errors.Wrapf(err, "eval %q", input)
	}
	return v, nil
}

// EvalWithContext loads a context literal, then evaluates the
// expression with its entries bound.
func EvalWithContext(contextInput, input string) (values.Value, error) {
	eng := evaluator.NewEngine()
	if err := eng.LoadContext(contextInput); err != nil {
		return nil, errors.Wrapf(err, "load context %q", contextInput)
	}
	v, err := eng.EvalString(input)
	if err != nil {
		return nil, errors.Wrapf(err, "eval %q", input)
	}
	return v, nil
}

// EvalUnaryTests evaluates input as decision-table unary tests with
// "?" bound to the test subject.
func EvalUnaryTests(testSubject values.Value, input string) (values.Value, error) {
	eng := evaluator.NewEngine()
	eng.BindVar("?", testSubject)
	v, err := eng.EvalUnaryTests(input)
	if err != nil {
		return nil, errors.Wrapf(err, "eval unary tests %q", input)
	}
	return v, nil
}

// ParseString parses an expression without evaluating it, consulting
// a fresh engine for name resolution.
func ParseString(input string) (ast.Node, error) {
	node, err := parser.Parse(input, evaluator.NewEngine(), parser.TopExpression)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", input)
	}
	return node, nil
}
