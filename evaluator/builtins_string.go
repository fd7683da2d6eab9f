package evaluator

import (
	"strings"

	"github.com/dmnkit/go-feel/values"
)

// String built-ins. Positions and lengths count code points and are
// 1-based.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-string/
func (p *preludeTable) loadStringFuncs() {
	p.addNativeFunc("string length", []string{"string"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			s, err := values.ExpectString(argOf(args, "string"), "argument[1] `string`")
			if err != nil {
				return nil, err
			}
			return values.NewNumberFromInt(int64(len([]rune(s)))), nil
		})

	p.addNativeFuncFull("substring", []string{"string", "start position"}, []string{"length"}, "",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			s, err := values.ExpectString(argOf(args, "string"), "argument[1] `string`")
			if err != nil {
				return nil, err
			}
			start, err := values.ExpectInteger(argOf(args, "start position"), "argument[2] `start position`")
			if err != nil {
				return nil, err
			}
			runes := []rune(s)
			// an out-of-range start clamps to the empty string rather
			// than failing
			if start < 1 || start > int64(len(runes)) {
				return values.String(""), nil
			}
			sub := runes[start-1:]
			if lenv, ok := args["length"]; ok {
				length, err := values.ExpectInteger(lenv, "argument[3] `length`")
				if err != nil {
					return nil, err
				}
				if length < int64(len(sub)) {
					if length < 0 {
						length = 0
					}
					sub = sub[:length]
				}
			}
			return values.String(string(sub)), nil
		})

	p.addNativeFuncFull("string join", []string{"list"}, []string{"delimiter", "prefix", "suffix"}, "",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			optString := func(name string) (string, error) {
				if v, ok := args[name]; ok {
					return values.ExpectString(v, "argument `"+name+"`")
				}
				return "", nil
			}
			delimiter, err := optString("delimiter")
			if err != nil {
				return nil, err
			}
			prefix, err := optString("prefix")
			if err != nil {
				return nil, err
			}
			suffix, err := optString("suffix")
			if err != nil {
				return nil, err
			}
			var b strings.Builder
			b.WriteString(prefix)
			for i, v := range arr.Items {
				sv, err := values.ExpectString(v, "argument[1] `list` element")
				if err != nil {
					return nil, err
				}
				if i > 0 {
					b.WriteString(delimiter)
				}
				b.WriteString(sv)
			}
			b.WriteString(suffix)
			return values.String(b.String()), nil
		})

	p.addNativeFunc("upper case", []string{"string"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			s, err := values.ExpectString(argOf(args, "string"), "argument[1] `string`")
			if err != nil {
				return nil, err
			}
			return values.String(strings.ToUpper(s)), nil
		})

	p.addNativeFunc("lower case", []string{"string"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			s, err := values.ExpectString(argOf(args, "string"), "argument[1] `string`")
			if err != nil {
				return nil, err
			}
			return values.String(strings.ToLower(s)), nil
		})

	stringPredicate := func(name string, pred func(s, match string) bool) {
		p.addNativeFunc(name, []string{"string", "match"},
			func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
				s, err := values.ExpectString(argOf(args, "string"), "argument[1] `string`")
				if err != nil {
					return nil, err
				}
				match, err := values.ExpectString(argOf(args, "match"), "argument[2] `match`")
				if err != nil {
					return nil, err
				}
				return values.Bool(pred(s, match)), nil
			})
	}
	stringPredicate("contains", strings.Contains)
	stringPredicate("starts with", strings.HasPrefix)
	stringPredicate("ends with", strings.HasSuffix)
}
