// Package ast defines the FEEL abstract syntax tree.
//
// Every node records the source position of its first token and prints
// as an s-expression, which the parser tests match against.
package ast

import (
	"fmt"
	"strings"

	"github.com/dmnkit/go-feel/scanner"
)

// Node is the interface all syntax nodes implement.
type Node interface {
	// StartPos returns the position of the node's first token.
	StartPos() scanner.Position
	String() string
}

// FuncCallArg is one argument of a function call. ArgName is empty for
// positional arguments.
type FuncCallArg struct {
	ArgName string
	Arg     Node
}

func (a FuncCallArg) String() string {
	if a.ArgName == "" {
		return a.Arg.String()
	}
	return fmt.Sprintf("%s:%s", a.ArgName, a.Arg)
}

// MapItem is one key/value entry of a context literal. Name is an Ident
// or a StringNode.
type MapItem struct {
	Name  Node
	Value Node
}

func (m MapItem) String() string {
	return fmt.Sprintf("%s: %s", m.Name, m.Value)
}

// BinOp is a binary operator: arithmetic, comparison, or indexing
// (op "[]").
type BinOp struct {
	Op    string
	Left  Node
	Right Node
	Pos   scanner.Position
}

func (n *BinOp) StartPos() scanner.Position { return n.Pos }
func (n *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Op, n.Left, n.Right)
}

// LogicOp is a short-circuiting "and" or "or".
type LogicOp struct {
	Op    string
	Left  Node
	Right Node
	Pos   scanner.Position
}

func (n *LogicOp) StartPos() scanner.Position { return n.Pos }
func (n *LogicOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Op, n.Left, n.Right)
}

// DotOp is attribute access on a context.
type DotOp struct {
	Left Node
	Attr string
	Pos  scanner.Position
}

func (n *DotOp) StartPos() scanner.Position { return n.Pos }
func (n *DotOp) String() string {
	return fmt.Sprintf("(. %s %s)", n.Left, n.Attr)
}

// InOp tests membership of the left value in the right operand.
type InOp struct {
	Left  Node
	Right Node
	Pos   scanner.Position
}

func (n *InOp) StartPos() scanner.Position { return n.Pos }
func (n *InOp) String() string {
	return fmt.Sprintf("(in %s %s)", n.Left, n.Right)
}

// FuncCall applies a callable to arguments.
type FuncCall struct {
	FuncRef Node
	Args    []FuncCallArg
	Pos     scanner.Position
}

func (n *FuncCall) StartPos() scanner.Position { return n.Pos }
func (n *FuncCall) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(call %s [%s])", n.FuncRef, strings.Join(parts, ", "))
}

// FuncDef is a function literal. Code keeps the original source text so
// that the value can be printed back.
type FuncDef struct {
	ArgNames []string
	Body     Node
	Code     string
	Pos      scanner.Position
}

func (n *FuncDef) StartPos() scanner.Position { return n.Pos }
func (n *FuncDef) String() string {
	return fmt.Sprintf("(function [%s] %s)", strings.Join(n.ArgNames, ", "), n.Body)
}

// Var is a variable reference, either a plain (possibly multi-word)
// name or a back-tick quoted one.
type Var struct {
	Name   string
	Quoted bool
	Pos    scanner.Position
}

func (n *Var) StartPos() scanner.Position { return n.Pos }
func (n *Var) String() string             { return n.Name }

// Ident is a bare identifier used as a context key.
type Ident struct {
	Name string
	Pos  scanner.Position
}

func (n *Ident) StartPos() scanner.Position { return n.Pos }
func (n *Ident) String() string             { return n.Name }

// NumberNode is an unparsed numeric literal.
type NumberNode struct {
	Value string
	Pos   scanner.Position
}

func (n *NumberNode) StartPos() scanner.Position { return n.Pos }
func (n *NumberNode) String() string             { return n.Value }

// BoolNode is a boolean literal.
type BoolNode struct {
	Value bool
	Pos   scanner.Position
}

func (n *BoolNode) StartPos() scanner.Position { return n.Pos }
func (n *BoolNode) String() string             { return fmt.Sprintf("%v", n.Value) }

// NullNode is the null literal.
type NullNode struct {
	Pos scanner.Position
}

func (n *NullNode) StartPos() scanner.Position { return n.Pos }
func (n *NullNode) String() string             { return "null" }

// StringNode is a string literal, value still quoted and escaped as in
// the source.
type StringNode struct {
	Value string
	Pos   scanner.Position
}

func (n *StringNode) StartPos() scanner.Position { return n.Pos }
func (n *StringNode) String() string             { return n.Value }

// TemporalNode is a temporal literal, value still wrapped in @"…".
type TemporalNode struct {
	Value string
	Pos   scanner.Position
}

func (n *TemporalNode) StartPos() scanner.Position { return n.Pos }
func (n *TemporalNode) String() string             { return n.Value }

// Neg negates its operand.
type Neg struct {
	Value Node
	Pos   scanner.Position
}

func (n *Neg) StartPos() scanner.Position { return n.Pos }
func (n *Neg) String() string             { return fmt.Sprintf("(- %s)", n.Value) }

// ArrayNode is a list literal.
type ArrayNode struct {
	Elements []Node
	Pos      scanner.Position
}

func (n *ArrayNode) StartPos() scanner.Position { return n.Pos }
func (n *ArrayNode) String() string {
	return fmtNodes(n.Elements, ", ", "[", "]")
}

// MapNode is a context literal.
type MapNode struct {
	Items []MapItem
	Pos   scanner.Position
}

func (n *MapNode) StartPos() scanner.Position { return n.Pos }
func (n *MapNode) String() string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		parts[i] = item.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RangeNode is an interval literal with open/closed endpoints.
type RangeNode struct {
	StartOpen bool
	Start     Node
	EndOpen   bool
	End       Node
	Pos       scanner.Position
}

func (n *RangeNode) StartPos() scanner.Position { return n.Pos }
func (n *RangeNode) String() string {
	startBra, endBra := "[", "]"
	if n.StartOpen {
		startBra = "("
	}
	if n.EndOpen {
		endBra = ")"
	}
	return fmt.Sprintf("%s%s..%s%s", startBra, n.Start, n.End, endBra)
}

// IfExpr is a conditional expression.
type IfExpr struct {
	Condition  Node
	ThenBranch Node
	ElseBranch Node
	Pos        scanner.Position
}

func (n *IfExpr) StartPos() scanner.Position { return n.Pos }
func (n *IfExpr) String() string {
	return fmt.Sprintf("(if %s %s %s)", n.Condition, n.ThenBranch, n.ElseBranch)
}

// ForExpr iterates a list and collects results. Chained clauses parse
// as nested ForExprs.
type ForExpr struct {
	VarName    string
	ListExpr   Node
	ReturnExpr Node
	Pos        scanner.Position
}

func (n *ForExpr) StartPos() scanner.Position { return n.Pos }
func (n *ForExpr) String() string {
	return fmt.Sprintf("(for %s in %s %s)", n.VarName, n.ListExpr, n.ReturnExpr)
}

// SomeExpr yields the first element satisfying the filter.
type SomeExpr struct {
	VarName    string
	ListExpr   Node
	FilterExpr Node
	Pos        scanner.Position
}

func (n *SomeExpr) StartPos() scanner.Position { return n.Pos }
func (n *SomeExpr) String() string {
	return fmt.Sprintf("(some %s in %s satisfies %s)", n.VarName, n.ListExpr, n.FilterExpr)
}

// EveryExpr filters a list by a predicate.
type EveryExpr struct {
	VarName    string
	ListExpr   Node
	FilterExpr Node
	Pos        scanner.Position
}

func (n *EveryExpr) StartPos() scanner.Position { return n.Pos }
func (n *EveryExpr) String() string {
	return fmt.Sprintf("(every %s in %s satisfies %s)", n.VarName, n.ListExpr, n.FilterExpr)
}

// ExprList is a parenthesised, comma-separated expression list.
type ExprList struct {
	Exprs []Node
	Pos   scanner.Position
}

func (n *ExprList) StartPos() scanner.Position { return n.Pos }
func (n *ExprList) String() string {
	return fmtNodes(n.Exprs, " ", "(expr-list ", ")")
}

// UnaryTest compares the implicit input "?" against Right.
type UnaryTest struct {
	Op    string
	Right Node
	Pos   scanner.Position
}

func (n *UnaryTest) StartPos() scanner.Position { return n.Pos }
func (n *UnaryTest) String() string {
	return fmt.Sprintf("(%s %s)", n.Op, n.Right)
}

// UnaryTests is the top-level node of a unary-tests parse.
type UnaryTests struct {
	Tests []Node
	Pos   scanner.Position
}

func (n *UnaryTests) StartPos() scanner.Position { return n.Pos }
func (n *UnaryTests) String() string {
	return fmtNodes(n.Tests, " ", "(unary-tests ", ")")
}

func fmtNodes(nodes []Node, delim, prefix, suffix string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return prefix + strings.Join(parts, delim) + suffix
}
