package evaluator

import "github.com/dmnkit/go-feel/values"

// Numeric built-ins.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-numeric/
func (p *preludeTable) loadNumberFuncs() {
	p.addNativeFuncFull("decimal", []string{"n"}, []string{"scale"}, "",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			var n values.Number
			switch v := argOf(args, "n").(type) {
			case values.Number:
				n = v
			case values.String:
				parsed, ok := values.NewNumberFromString(string(v))
				if !ok {
					return nil, newValueError("argument[1] `n` is not a number")
				}
				n = parsed
			default:
				return nil, newValueError("argument[1] `n` is not a number")
			}
			if scalev, ok := args["scale"]; ok {
				scale, err := values.ExpectInteger(scalev, "argument[2] `scale`")
				if err != nil {
					return nil, err
				}
				return n.HalfEvenScale(int32(scale)), nil
			}
			return n, nil
		})

	// round down is floor, round up is ceiling
	scaleRound := func(names []string, round func(n values.Number, scale int32) values.Number) {
		for _, name := range names {
			p.addNativeFuncFull(name, []string{"n"}, []string{"scale"}, "",
				func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
					n, err := values.ExpectNumber(argOf(args, "n"), "argument[1] `n`")
					if err != nil {
						return nil, err
					}
					var scale int64
					if scalev, ok := args["scale"]; ok {
						scale, err = values.ExpectInteger(scalev, "argument[2] `scale`")
						if err != nil {
							return nil, err
						}
					}
					return round(n, int32(scale)), nil
				})
		}
	}
	scaleRound([]string{"floor", "round down"}, values.Number.FloorScale)
	scaleRound([]string{"ceiling", "round up"}, values.Number.CeilScale)

	p.addNativeFunc("abs", []string{"number"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			n, err := values.ExpectNumber(argOf(args, "number"), "argument[1] `number`")
			if err != nil {
				return nil, err
			}
			return n.Abs(), nil
		})

	p.addNativeFunc("modulo", []string{"dividend", "divisor"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			dividend, err := values.ExpectNumber(argOf(args, "dividend"), "argument[1] `dividend`")
			if err != nil {
				return nil, err
			}
			divisor, err := values.ExpectNumber(argOf(args, "divisor"), "argument[2] `divisor`")
			if err != nil {
				return nil, err
			}
			if divisor.IsZero() {
				return nil, newValueError("division by zero")
			}
			return dividend.Rem(divisor), nil
		})

	p.addNativeFunc("sqrt", []string{"number"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			n, err := values.ExpectNumber(argOf(args, "number"), "argument[1] `number`")
			if err != nil {
				return nil, err
			}
			root, err := n.Sqrt()
			if err != nil {
				return nil, err
			}
			return root, nil
		})

	p.addNativeFunc("log", []string{"number"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			n, err := values.ExpectNumber(argOf(args, "number"), "argument[1] `number`")
			if err != nil {
				return nil, err
			}
			ln, err := n.Ln()
			if err != nil {
				return nil, err
			}
			return ln, nil
		})

	parity := func(name string, rem int64) {
		p.addNativeFunc(name, []string{"number"},
			func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
				n, err := values.ExpectNumber(argOf(args, "number"), "argument[1] `number`")
				if err != nil {
					return nil, err
				}
				i, ok := n.Int()
				if !ok {
					return values.Bool(false), nil
				}
				if i < 0 {
					i = -i
				}
				return values.Bool(i%2 == rem), nil
			})
	}
	parity("odd", 1)
	parity("even", 0)
}
