package evaluator

import "github.com/dmnkit/go-feel/values"

// Context built-ins.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-context/
func (p *preludeTable) loadContextFuncs() {
	p.addNativeFunc("get value", []string{"context", "key"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			ctx, err := values.ExpectContext(argOf(args, "context"), "argument[1] `context`")
			if err != nil {
				return nil, err
			}
			path, err := keyPath(argOf(args, "key"))
			if err != nil {
				return nil, err
			}
			if v, ok := ctx.GetPath(path); ok {
				return v, nil
			}
			return values.Null{}, nil
		})

	p.addNativeFunc("get entries", []string{"context"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			ctx, err := values.ExpectContext(argOf(args, "context"), "argument[1] `context`")
			if err != nil {
				return nil, err
			}
			res := make([]values.Value, 0, ctx.Len())
			for _, ent := range ctx.Entries() {
				entCtx := values.NewContext()
				entCtx.Insert("key", values.String(ent.Key))
				entCtx.Insert("value", ent.Value)
				res = append(res, entCtx)
			}
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("context put", []string{"context", "key", "value"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			ctx, err := values.ExpectContext(argOf(args, "context"), "argument[1] `context`")
			if err != nil {
				return nil, err
			}
			path, err := keyPath(argOf(args, "key"))
			if err != nil {
				return nil, err
			}
			// mutates the shared context and returns the same reference
			ctx.InsertPath(path, argOf(args, "value"))
			return ctx, nil
		})

	p.addNativeFunc("context merge", []string{"contexts"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			contexts, err := values.ExpectArray(argOf(args, "contexts"), "argument[1] `contexts`")
			if err != nil {
				return nil, err
			}
			res := values.NewContext()
			for _, v := range contexts.Items {
				ctx, err := values.ExpectContext(v, "argument[1] `contexts` element")
				if err != nil {
					return nil, err
				}
				res.Merge(ctx)
			}
			return res, nil
		})
}

// keyPath accepts a key as a single string or a list of strings.
func keyPath(v values.Value) ([]string, error) {
	switch key := v.(type) {
	case values.String:
		return []string{string(key)}, nil
	case *values.Array:
		keys := make([]string, 0, len(key.Items))
		for i, item := range key.Items {
			s, ok := item.(values.String)
			if !ok {
				return nil, values.NewTypeError("argument[2][%d], expect string, but %s found", i+1, item.TypeName())
			}
			keys = append(keys, string(s))
		}
		return keys, nil
	default:
		return nil, values.NewTypeError("string or string list, but %s found", v.TypeName())
	}
}
