package evaluator

import (
	"github.com/dmnkit/go-feel/ast"
	"github.com/dmnkit/go-feel/values"
)

// Scope manipulation, boolean and conversion built-ins.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-conversion/
func (p *preludeTable) loadConversionFuncs() {
	p.addNativeFunc("set", []string{"name", "value"},
		func(e values.Interpreter, args map[string]values.Value) (values.Value, error) {
			name, ok := argOf(args, "name").(values.String)
			if !ok {
				return nil, newRuntimeError("argument name should be string")
			}
			value := argOf(args, "value")
			e.SetVar(string(name), value)
			return value, nil
		})

	p.addNativeFunc("bind", []string{"name", "value"},
		func(e values.Interpreter, args map[string]values.Value) (values.Value, error) {
			name, ok := argOf(args, "name").(values.String)
			if !ok {
				return nil, newRuntimeError("argument name should be string")
			}
			value := argOf(args, "value")
			e.BindVar(string(name), value)
			return value, nil
		})

	p.addNativeFunc("string", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			v := argOf(args, "from")
			if s, ok := v.(values.String); ok {
				return s, nil
			}
			return values.String(v.String()), nil
		})

	p.addNativeFunc("number", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			switch v := argOf(args, "from").(type) {
			case values.Number:
				return v, nil
			case values.String:
				n, ok := values.NewNumberFromString(string(v))
				if !ok {
					return nil, newValueError("fail to parse number %q", string(v))
				}
				return n, nil
			default:
				return nil, newValueError("fail to parse number from %s", v.TypeName())
			}
		})

	p.addNativeFunc("not", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			return values.Bool(!values.Truthy(argOf(args, "from"))), nil
		})

	p.addMacro("is defined", []string{"value"},
		func(e values.Interpreter, args map[string]ast.Node) (values.Value, error) {
			node, ok := args["value"]
			if !ok {
				return nil, newRuntimeError("is defined requires an argument")
			}
			return e.IsDefined(node)
		})

	p.addNativeFunc("get or else", []string{"value", "default"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			v := argOf(args, "value")
			if _, isNull := v.(values.Null); isNull {
				return argOf(args, "default"), nil
			}
			return v, nil
		})
}
