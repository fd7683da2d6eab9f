// Package evaluator walks FEEL syntax trees against a stack of scope
// frames and the process-wide prelude of built-in functions.
package evaluator

import (
	"github.com/dmnkit/go-feel/ast"
	"github.com/dmnkit/go-feel/parser"
	"github.com/dmnkit/go-feel/values"
)

type scopeFrame map[string]values.Value

// Engine evaluates syntax trees. It owns a stack of scope frames whose
// bottom frame holds user globals; lookups fall back to the prelude.
// An Engine is single-threaded: a call to Eval owns it for the
// duration, and engines and their values must not be shared across
// goroutines.
type Engine struct {
	scopes           []scopeFrame
	everyReturnsBool bool
}

// NewEngine creates an engine with one (global) scope frame.
func NewEngine() *Engine {
	return &Engine{scopes: []scopeFrame{{}}}
}

// SetEveryReturnsBool switches `every … satisfies` from returning the
// list of satisfying elements (the default) to the DMN-standard
// boolean quantifier.
func (e *Engine) SetEveryReturnsBool(b bool) {
	e.everyReturnsBool = b
}

func (e *Engine) pushFrame() {
	e.scopes = append(e.scopes, scopeFrame{})
}

func (e *Engine) popFrame() {
	if len(e.scopes) > 0 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Resolve looks a name up through the scopes top-down, then the
// prelude.
func (e *Engine) Resolve(name string) (values.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return prelude.resolve(name)
}

// HasName reports whether the name resolves; it implements the
// parser's EnvProbe.
func (e *Engine) HasName(name string) bool {
	_, ok := e.Resolve(name)
	return ok
}

// SetVar assigns in the nearest enclosing frame that already holds the
// name, binding at the top frame when none does.
func (e *Engine) SetVar(name string, value values.Value) {
	if len(e.scopes) == 0 {
		e.pushFrame()
	}
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = value
			return
		}
	}
	e.BindVar(name, value)
}

// BindVar binds in the current (top) frame only.
func (e *Engine) BindVar(name string, value values.Value) {
	if len(e.scopes) == 0 {
		e.pushFrame()
	}
	e.scopes[len(e.scopes)-1][name] = value
}

// ParseString parses an expression consulting this engine's bindings.
func (e *Engine) ParseString(input string) (ast.Node, error) {
	return parser.Parse(input, e, parser.TopExpression)
}

// ParseUnaryTests parses input as decision-table unary tests.
func (e *Engine) ParseUnaryTests(input string) (ast.Node, error) {
	return parser.Parse(input, e, parser.TopUnaryTests)
}

// EvalString parses and evaluates an expression.
func (e *Engine) EvalString(input string) (values.Value, error) {
	node, err := e.ParseString(input)
	if err != nil {
		return nil, asEvalError(err)
	}
	return e.Eval(node)
}

// EvalUnaryTests parses and evaluates input as unary tests. The
// caller binds "?" to the test subject beforehand.
func (e *Engine) EvalUnaryTests(input string) (values.Value, error) {
	node, err := e.ParseUnaryTests(input)
	if err != nil {
		return nil, asEvalError(err)
	}
	return e.Eval(node)
}

// LoadContext parses the source as a context literal and binds its
// entries in a fresh scope frame.
func (e *Engine) LoadContext(input string) error {
	node, err := e.ParseString(input)
	if err != nil {
		return asEvalError(err)
	}
	v, err := e.Eval(node)
	if err != nil {
		return err
	}
	ctx, ok := v.(*values.Context)
	if !ok {
		return newValueError("context/map required")
	}
	e.pushFrame()
	for _, ent := range ctx.Entries() {
		e.BindVar(ent.Key, ent.Value)
	}
	return nil
}

// Eval evaluates a node, attaching the node's start position to any
// error that does not carry one yet.
func (e *Engine) Eval(node ast.Node) (values.Value, error) {
	v, err := e.evalNode(node)
	if err != nil {
		return nil, asEvalError(err).withPosIfZero(node.StartPos())
	}
	return v, nil
}

func (e *Engine) evalNode(node ast.Node) (values.Value, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return values.Null{}, nil
	case *ast.BoolNode:
		return values.Bool(n.Value), nil
	case *ast.NumberNode:
		num, ok := values.NewNumberFromString(n.Value)
		if !ok {
			return nil, newValueError("fail to parse number %q", n.Value)
		}
		return num, nil
	case *ast.StringNode:
		// drop exactly the surrounding quotes, then resolve escapes
		return values.String(values.Unescape(n.Value[1 : len(n.Value)-1])), nil
	case *ast.TemporalNode:
		return values.ParseTemporal(n.Value)
	case *ast.Ident:
		return values.String(n.Name), nil
	case *ast.Var:
		if v, ok := e.Resolve(n.Name); ok {
			return v, nil
		}
		return nil, newVarNotFound(n.Name)
	case *ast.Neg:
		v, err := e.Eval(n.Value)
		if err != nil {
			return nil, err
		}
		return values.Neg(v)
	case *ast.BinOp:
		return e.evalBinop(n)
	case *ast.LogicOp:
		return e.evalLogicOp(n)
	case *ast.InOp:
		return e.evalInOp(n)
	case *ast.DotOp:
		return e.evalDotOp(n)
	case *ast.RangeNode:
		return e.evalRange(n)
	case *ast.ArrayNode:
		return e.evalArray(n)
	case *ast.MapNode:
		return e.evalMap(n)
	case *ast.FuncDef:
		return &values.UserFunc{Def: n, Code: n.Code}, nil
	case *ast.FuncCall:
		return e.evalFuncCall(n)
	case *ast.IfExpr:
		return e.evalIfExpr(n)
	case *ast.ForExpr:
		return e.evalForExpr(n)
	case *ast.SomeExpr:
		return e.evalSomeExpr(n)
	case *ast.EveryExpr:
		return e.evalEveryExpr(n)
	case *ast.ExprList:
		return e.evalExprList(n)
	case *ast.UnaryTest:
		return e.evalUnaryTest(n)
	case *ast.UnaryTests:
		return e.evalUnaryTests(n)
	default:
		return nil, newRuntimeError("unknown node %T", node)
	}
}

// IsDefined probes whether the node evaluates without a lookup
// failure. A plain variable reference is answered by name resolution;
// anything else is evaluated in a scratch frame, mapping VarNotFound,
// KeyError and IndexError to false and rethrowing everything else.
func (e *Engine) IsDefined(node ast.Node) (values.Value, error) {
	if v, ok := node.(*ast.Var); ok {
		_, found := e.Resolve(v.Name)
		return values.Bool(found), nil
	}
	e.pushFrame()
	_, err := e.Eval(node)
	e.popFrame()
	if err != nil {
		switch asEvalError(err).Kind {
		case ErrIndex, ErrKey, ErrVarNotFound:
			return values.Bool(false), nil
		default:
			return nil, err
		}
	}
	return values.Bool(true), nil
}

func (e *Engine) evalBinop(n *ast.BinOp) (values.Value, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+":
		return values.Add(left, right)
	case "-":
		return values.Sub(left, right)
	case "*":
		return values.Mul(left, right)
	case "/":
		return values.Div(left, right)
	case "%":
		return values.Rem(left, right)
	case ">", ">=", "<", "<=", "=", "!=":
		return compareValues(n.Op, left, right), nil
	case "[]":
		return e.evalBinopIndex(left, right)
	default:
		return nil, newRuntimeError("unknown op %s", n.Op)
	}
}

// compareValues applies a comparison operator. Equality is structural
// and universal; the ordering operators are false on incomparable
// operands rather than failing.
func compareValues(op string, left, right values.Value) values.Value {
	switch op {
	case "=":
		return values.Bool(values.Equal(left, right))
	case "!=":
		return values.Bool(!values.Equal(left, right))
	}
	c, ok := values.Compare(left, right)
	if !ok {
		return values.Bool(false)
	}
	switch op {
	case ">":
		return values.Bool(c > 0)
	case ">=":
		return values.Bool(c >= 0)
	case "<":
		return values.Bool(c < 0)
	default:
		return values.Bool(c <= 0)
	}
}

func (e *Engine) evalBinopIndex(left, right values.Value) (values.Value, error) {
	switch container := left.(type) {
	case *values.Context:
		key, ok := right.(values.String)
		if !ok {
			return nil, newRuntimeError("context key not string")
		}
		v, found := container.Get(string(key))
		if !found {
			return nil, newKeyError()
		}
		return v, nil
	case *values.Array:
		idx, ok := right.(values.Number)
		if !ok {
			return nil, newRuntimeError("array index not integer")
		}
		// FEEL indexes are 1-based
		i, fits := idx.Int()
		if !idx.IsInteger() || !fits || i < 1 || i > int64(len(container.Items)) {
			return nil, newIndexError()
		}
		return container.Items[i-1], nil
	default:
		return nil, newRuntimeError("value %s is not indexable", left.TypeName())
	}
}

func (e *Engine) evalLogicOp(n *ast.LogicOp) (values.Value, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	leftBool := values.Truthy(left)
	switch n.Op {
	case "and":
		if !leftBool {
			return values.Bool(false), nil
		}
	case "or":
		if leftBool {
			return values.Bool(true), nil
		}
	default:
		return nil, newRuntimeError("unexpected logic op %s", n.Op)
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	return values.Bool(values.Truthy(right)), nil
}

func (e *Engine) evalInOp(n *ast.InOp) (values.Value, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	// a parenthesised test list evaluates with "?" bound to the left
	// value; a bare unary test on the right behaves like a singleton
	// list
	switch right := n.Right.(type) {
	case *ast.ExprList:
		e.pushFrame()
		e.BindVar("?", left)
		v, err := e.evalExprListIn(right.Exprs)
		e.popFrame()
		return v, err
	case *ast.UnaryTest:
		e.pushFrame()
		e.BindVar("?", left)
		v, err := e.evalExprListIn([]ast.Node{right})
		e.popFrame()
		return v, err
	}

	e.pushFrame()
	rightValue, err := e.Eval(n.Right)
	e.popFrame()
	if err != nil {
		return nil, err
	}
	switch rv := rightValue.(type) {
	case *values.Range:
		return values.Bool(rv.Contains(left)), nil
	case *values.Array:
		for _, item := range rv.Items {
			if values.Equal(item, left) {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil
	default:
		return values.Bool(values.Equal(rv, left)), nil
	}
}

// evalExprListIn evaluates test expressions against the bound "?"
// input: true iff any evaluates to true or equals the input.
func (e *Engine) evalExprListIn(exprs []ast.Node) (values.Value, error) {
	left, ok := e.Resolve("?")
	if !ok {
		return nil, newVarNotFound("?")
	}
	for _, expr := range exprs {
		res, err := e.Eval(expr)
		if err != nil {
			return nil, err
		}
		if b, isBool := res.(values.Bool); isBool && bool(b) {
			return values.Bool(true), nil
		}
		if values.Equal(left, res) {
			return values.Bool(true), nil
		}
	}
	return values.Bool(false), nil
}

func (e *Engine) evalDotOp(n *ast.DotOp) (values.Value, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	ctx, ok := left.(*values.Context)
	if !ok {
		return nil, newRuntimeError("%s is not indexable", left.TypeName())
	}
	v, found := ctx.Get(n.Attr)
	if !found {
		return nil, newKeyError()
	}
	return v, nil
}

func (e *Engine) evalRange(n *ast.RangeNode) (values.Value, error) {
	startValue, err := e.Eval(n.Start)
	if err != nil {
		return nil, err
	}
	endValue, err := e.Eval(n.End)
	if err != nil {
		return nil, err
	}
	if startValue.TypeName() != endValue.TypeName() {
		return nil, (&EvalError{
			Kind:   ErrValue,
			Detail: "range start type " + startValue.TypeName() + " != end type " + endValue.TypeName(),
			Pos:    n.End.StartPos(),
		})
	}
	return &values.Range{
		StartOpen: n.StartOpen,
		Start:     startValue,
		EndOpen:   n.EndOpen,
		End:       endValue,
	}, nil
}

func (e *Engine) evalArray(n *ast.ArrayNode) (values.Value, error) {
	items := make([]values.Value, 0, len(n.Elements))
	for _, elem := range n.Elements {
		v, err := e.Eval(elem)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return values.NewArray(items...), nil
}

func (e *Engine) evalMap(n *ast.MapNode) (values.Value, error) {
	ctx := values.NewContext()
	for _, item := range n.Items {
		k, err := e.Eval(item.Name)
		if err != nil {
			return nil, err
		}
		key, err := values.ExpectString(k, "context item "+item.Name.String())
		if err != nil {
			return nil, err
		}
		v, err := e.Eval(item.Value)
		if err != nil {
			return nil, err
		}
		ctx.Insert(key, v)
	}
	return ctx, nil
}

func (e *Engine) evalIfExpr(n *ast.IfExpr) (values.Value, error) {
	cond, err := e.Eval(n.Condition)
	if err != nil {
		return nil, err
	}
	if values.Truthy(cond) {
		return e.Eval(n.ThenBranch)
	}
	return e.Eval(n.ElseBranch)
}

func (e *Engine) evalForExpr(n *ast.ForExpr) (values.Value, error) {
	listValue, err := e.Eval(n.ListExpr)
	if err != nil {
		return nil, err
	}
	arr, ok := listValue.(*values.Array)
	if !ok {
		return nil, newRuntimeError("for loop require a list")
	}
	results := make([]values.Value, 0, len(arr.Items))
	for _, item := range arr.Items {
		e.pushFrame()
		e.BindVar(n.VarName, item)
		v, err := e.Eval(n.ReturnExpr)
		e.popFrame()
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return values.NewArray(results...), nil
}

func (e *Engine) evalSomeExpr(n *ast.SomeExpr) (values.Value, error) {
	listValue, err := e.Eval(n.ListExpr)
	if err != nil {
		return nil, err
	}
	arr, ok := listValue.(*values.Array)
	if !ok {
		return nil, newRuntimeError("some loop require a list")
	}
	for _, item := range arr.Items {
		e.pushFrame()
		e.BindVar(n.VarName, item)
		v, err := e.Eval(n.FilterExpr)
		e.popFrame()
		if err != nil {
			return nil, err
		}
		if values.Truthy(v) {
			return item, nil
		}
	}
	return values.Null{}, nil
}

func (e *Engine) evalEveryExpr(n *ast.EveryExpr) (values.Value, error) {
	listValue, err := e.Eval(n.ListExpr)
	if err != nil {
		return nil, err
	}
	arr, ok := listValue.(*values.Array)
	if !ok {
		return nil, newRuntimeError("every loop require a list")
	}
	satisfying := make([]values.Value, 0, len(arr.Items))
	for _, item := range arr.Items {
		e.pushFrame()
		e.BindVar(n.VarName, item)
		v, err := e.Eval(n.FilterExpr)
		e.popFrame()
		if err != nil {
			return nil, err
		}
		if values.Truthy(v) {
			satisfying = append(satisfying, item)
		}
	}
	if e.everyReturnsBool {
		return values.Bool(len(satisfying) == len(arr.Items)), nil
	}
	return values.NewArray(satisfying...), nil
}

func (e *Engine) evalExprList(n *ast.ExprList) (values.Value, error) {
	var last values.Value = values.Null{}
	for _, expr := range n.Exprs {
		v, err := e.Eval(expr)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (e *Engine) evalUnaryTest(n *ast.UnaryTest) (values.Value, error) {
	left, ok := e.Resolve("?")
	if !ok {
		return nil, newVarNotFound("?")
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	return compareValues(n.Op, left, right), nil
}

func (e *Engine) evalUnaryTests(n *ast.UnaryTests) (values.Value, error) {
	return e.evalExprListIn(n.Tests)
}

func (e *Engine) evalFuncCall(n *ast.FuncCall) (values.Value, error) {
	fref, err := e.Eval(n.FuncRef)
	if err != nil {
		return nil, err
	}
	switch f := fref.(type) {
	case *values.NativeFunc:
		return e.callNativeFunc(f, n.Args)
	case *values.UserFunc:
		return e.callUserFunc(f, n.Args)
	case *values.Macro:
		return e.callMacro(f, n.Args)
	default:
		return nil, newRuntimeError("cannot call non function %s", fref.TypeName())
	}
}

func (e *Engine) callNativeFunc(f *values.NativeFunc, callArgs []ast.FuncCallArg) (values.Value, error) {
	if len(f.RequiredArgs) > len(callArgs) {
		return nil, newRuntimeError("too few arguments, expect at least %d args, found %d",
			len(f.RequiredArgs), len(callArgs))
	}
	maxArgs := len(f.RequiredArgs) + len(f.OptionalArgs)
	if f.VarArg == "" && maxArgs < len(callArgs) {
		return nil, newRuntimeError("too many arguments, expect at most %d args, found %d",
			maxArgs, len(callArgs))
	}

	namedArgs := make(map[string]values.Value)
	varArgValues := []values.Value{}
	positionalIdx := 0
	useVarArg := false
	for _, callArg := range callArgs {
		argName := callArg.ArgName
		if argName == "" {
			switch {
			case positionalIdx < len(f.RequiredArgs):
				argName = f.RequiredArgs[positionalIdx]
			case positionalIdx < maxArgs:
				argName = f.OptionalArgs[positionalIdx-len(f.RequiredArgs)]
			case f.VarArg != "":
				argName = f.VarArg
				useVarArg = true
			default:
				return nil, newRuntimeError("too many arguments, expect at most %d args, found %d",
					maxArgs, len(callArgs))
			}
			positionalIdx++
		} else if !f.KnownArg(argName) {
			return nil, newValueError("unknown argument %s", argName)
		}
		if _, dup := namedArgs[argName]; dup {
			return nil, newValueError("argument %s already set", argName)
		}
		argValue, err := e.Eval(callArg.Arg)
		if err != nil {
			return nil, err
		}
		if useVarArg {
			varArgValues = append(varArgValues, argValue)
		} else {
			namedArgs[argName] = argValue
		}
	}
	if f.VarArg != "" {
		if _, explicit := namedArgs[f.VarArg]; !explicit {
			namedArgs[f.VarArg] = values.NewArray(varArgValues...)
		}
	}
	return f.Body(e, namedArgs)
}

func (e *Engine) callMacro(m *values.Macro, callArgs []ast.FuncCallArg) (values.Value, error) {
	if len(m.RequiredArgs) > len(callArgs) {
		return nil, newRuntimeError("call macro %s expect %d args, found %d",
			m.Name, len(m.RequiredArgs), len(callArgs))
	}
	args := make(map[string]ast.Node, len(m.RequiredArgs))
	for i, argName := range m.RequiredArgs {
		args[argName] = callArgs[i].Arg
	}
	return m.Body(e, args)
}

func (e *Engine) callUserFunc(f *values.UserFunc, callArgs []ast.FuncCallArg) (values.Value, error) {
	argValues := make([]values.Value, 0, len(callArgs))
	for _, a := range callArgs {
		v, err := e.Eval(a.Arg)
		if err != nil {
			return nil, err
		}
		argValues = append(argValues, v)
	}
	if len(f.Def.ArgNames) > len(argValues) {
		return nil, newRuntimeError("func call with too few arguments")
	}
	e.pushFrame()
	for i, argName := range f.Def.ArgNames {
		e.BindVar(argName, argValues[i])
	}
	result, err := e.Eval(f.Def.Body)
	e.popFrame()
	return result, err
}
