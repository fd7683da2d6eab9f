package evaluator

import "github.com/dmnkit/go-feel/values"

// preludeTable holds the built-in functions. It is built once at
// process start and never mutated afterwards; engines only read it.
type preludeTable struct {
	vars map[string]values.Value
}

func (p *preludeTable) resolve(name string) (values.Value, bool) {
	v, ok := p.vars[name]
	return v, ok
}

func (p *preludeTable) setVar(name string, value values.Value) {
	p.vars[name] = value
}

func (p *preludeTable) addNativeFunc(name string, requiredArgs []string, body values.NativeFuncBody) {
	p.addNativeFuncFull(name, requiredArgs, nil, "", body)
}

func (p *preludeTable) addNativeFuncFull(name string, requiredArgs, optionalArgs []string, varArg string, body values.NativeFuncBody) {
	p.setVar(name, &values.NativeFunc{
		Name:         name,
		RequiredArgs: requiredArgs,
		OptionalArgs: optionalArgs,
		VarArg:       varArg,
		Body:         body,
	})
}

func (p *preludeTable) addMacro(name string, requiredArgs []string, body values.MacroBody) {
	p.setVar(name, &values.Macro{
		Name:         name,
		RequiredArgs: requiredArgs,
		Body:         body,
	})
}

var prelude = buildPrelude()

func buildPrelude() *preludeTable {
	p := &preludeTable{vars: make(map[string]values.Value)}
	p.loadConversionFuncs()
	p.loadStringFuncs()
	p.loadNumberFuncs()
	p.loadListFuncs()
	p.loadContextFuncs()
	p.loadRangeFuncs()
	p.loadTemporalFuncs()
	return p
}

// argOf returns a call argument by parameter name, null when absent.
func argOf(args map[string]values.Value, name string) values.Value {
	if v, ok := args[name]; ok {
		return v
	}
	return values.Null{}
}
