package values

import "github.com/dmnkit/go-feel/ast"

// Interpreter is the callable side of the evaluator that native
// functions and macros receive. Keeping it an interface here lets the
// prelude live next to the engine without this package importing it.
type Interpreter interface {
	// Eval evaluates an AST node in the current scope stack.
	Eval(node ast.Node) (Value, error)
	// Resolve looks a name up through the scopes and the prelude.
	Resolve(name string) (Value, bool)
	// SetVar assigns in the nearest enclosing scope holding the name,
	// binding at the top when none does.
	SetVar(name string, value Value)
	// BindVar binds in the current (top) scope only.
	BindVar(name string, value Value)
	// IsDefined probes whether a node evaluates without a lookup
	// failure. Only macros may use it.
	IsDefined(node ast.Node) (Value, error)
}

// NativeFuncBody is the implementation of a built-in function. Its
// arguments arrive already evaluated and keyed by parameter name.
type NativeFuncBody func(e Interpreter, args map[string]Value) (Value, error)

// NativeFunc is a built-in function value with required, optional and
// at most one variadic parameter name.
type NativeFunc struct {
	Name         string
	RequiredArgs []string
	OptionalArgs []string
	VarArg       string
	Body         NativeFuncBody
}

func (*NativeFunc) TypeName() string { return "nativefunc" }
func (*NativeFunc) String() string   { return "function" }

// KnownArg reports whether name is a declared parameter.
func (f *NativeFunc) KnownArg(name string) bool {
	for _, a := range f.RequiredArgs {
		if a == name {
			return true
		}
	}
	for _, a := range f.OptionalArgs {
		if a == name {
			return true
		}
	}
	return f.VarArg != "" && f.VarArg == name
}

// MacroBody is the implementation of a macro: it receives the
// arguments as unevaluated AST nodes and may evaluate them
// selectively through the interpreter.
type MacroBody func(e Interpreter, args map[string]ast.Node) (Value, error)

// Macro is a built-in whose arguments are not evaluated before the
// call.
type Macro struct {
	Name         string
	RequiredArgs []string
	Body         MacroBody
}

func (*Macro) TypeName() string { return "macro" }
func (*Macro) String() string   { return "function" }

// UserFunc is a function defined in FEEL source. Def retains the
// definition node; Code the original source text.
type UserFunc struct {
	Def  *ast.FuncDef
	Code string
}

func (*UserFunc) TypeName() string { return "function" }
func (*UserFunc) String() string   { return "function" }
