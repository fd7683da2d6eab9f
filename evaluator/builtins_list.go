package evaluator

import (
	"sort"

	"github.com/dmnkit/go-feel/values"
)

// List built-ins. Positions are 1-based; the aggregate functions take
// their operands variadically: sum(1, 2) sums its operands, and a list
// passed by name to the variadic parameter (sum(list: l)) is summed
// element-wise. A single list passed positionally is one operand, not
// the operand list.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-list/
func (p *preludeTable) loadListFuncs() {
	p.addNativeFunc("list contains", []string{"list", "element"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			elem := argOf(args, "element")
			for _, v := range arr.Items {
				if values.Equal(v, elem) {
					return values.Bool(true), nil
				}
			}
			return values.Bool(false), nil
		})

	p.addNativeFuncFull("count", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			return values.NewNumberFromInt(int64(len(arr.Items))), nil
		})

	extremum := func(name string, keep func(candidate, best values.Value) bool) {
		p.addNativeFuncFull(name, nil, nil, "list",
			func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
				arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
				if err != nil {
					return nil, err
				}
				var best values.Value
				for _, v := range arr.Items {
					if best == nil || keep(v, best) {
						best = v
					}
				}
				if best == nil {
					return values.Null{}, nil
				}
				return best, nil
			})
	}
	extremum("min", func(candidate, best values.Value) bool {
		return values.CompareTotal(candidate, best) < 0
	})
	extremum("max", func(candidate, best values.Value) bool {
		return values.CompareTotal(candidate, best) > 0
	})

	p.addNativeFuncFull("sum", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			sum := values.NewNumberFromInt(0)
			for _, v := range arr.Items {
				if n, ok := v.(values.Number); ok {
					sum = sum.Add(n)
				}
			}
			return sum, nil
		})

	p.addNativeFuncFull("product", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			res := values.NewNumberFromInt(1)
			for _, v := range arr.Items {
				if n, ok := v.(values.Number); ok {
					res = res.Mul(n)
				}
			}
			return res, nil
		})

	p.addNativeFuncFull("mean", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			sum, count := values.NewNumberFromInt(0), 0
			for _, v := range arr.Items {
				if n, ok := v.(values.Number); ok {
					sum = sum.Add(n)
					count++
				}
			}
			if count == 0 {
				return values.Null{}, nil
			}
			return sum.Div(values.NewNumberFromInt(int64(count))), nil
		})

	p.addNativeFuncFull("stddev", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			var nums []values.Number
			sum := values.NewNumberFromInt(0)
			for _, v := range arr.Items {
				if n, ok := v.(values.Number); ok {
					nums = append(nums, n)
					sum = sum.Add(n)
				}
			}
			if len(nums) == 0 {
				return values.Null{}, nil
			}
			count := values.NewNumberFromInt(int64(len(nums)))
			avg := sum.Div(count)
			dev := values.NewNumberFromInt(0)
			for _, n := range nums {
				diff := n.Sub(avg)
				dev = dev.Add(diff.Mul(diff))
			}
			root, err := dev.Div(count).Sqrt()
			if err != nil {
				return values.Null{}, nil
			}
			return root, nil
		})

	p.addNativeFuncFull("median", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			var nums []values.Number
			for _, v := range arr.Items {
				if n, ok := v.(values.Number); ok {
					nums = append(nums, n)
				}
			}
			sort.SliceStable(nums, func(i, j int) bool {
				return nums[i].Cmp(nums[j]) < 0
			})
			switch n := len(nums); {
			case n == 0:
				return values.Null{}, nil
			case n%2 == 1:
				return nums[n/2], nil
			default:
				half := n / 2
				return nums[half-1].Add(nums[half]).Div(values.NewNumberFromInt(2)), nil
			}
		})

	p.addNativeFuncFull("all", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			for _, v := range arr.Items {
				if !values.Truthy(v) {
					return values.Bool(false), nil
				}
			}
			return values.Bool(true), nil
		})

	p.addNativeFuncFull("any", nil, nil, "list",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "arguments `list`")
			if err != nil {
				return nil, err
			}
			for _, v := range arr.Items {
				if values.Truthy(v) {
					return values.Bool(true), nil
				}
			}
			return values.Bool(false), nil
		})

	p.addNativeFuncFull("sublist", []string{"list", "start position"}, []string{"length"}, "",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			start, err := values.ExpectPositiveInteger(argOf(args, "start position"), "argument[2] `start position`")
			if err != nil {
				return nil, err
			}
			// unlike substring, an out-of-range start fails
			if start > len(arr.Items) {
				return nil, newIndexError()
			}
			sub := arr.Items[start-1:]
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
			out := make([]values.Value, len(sub))
			copy(out, sub)
			return values.NewArray(out...), nil
		})

	p.addNativeFuncFull("append", []string{"list"}, nil, "items",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			items, err := values.ExpectArray(argOf(args, "items"), "arguments `items`")
			if err != nil {
				return nil, err
			}
			res := make([]values.Value, 0, len(arr.Items)+len(items.Items))
			res = append(res, arr.Items...)
			res = append(res, items.Items...)
			return values.NewArray(res...), nil
		})

	p.addNativeFuncFull("concatenate", nil, nil, "lists",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			lists, err := values.ExpectArray(argOf(args, "lists"), "arguments `lists`")
			if err != nil {
				return nil, err
			}
			var res []values.Value
			for _, v := range lists.Items {
				child, err := values.ExpectArray(v, "argument `lists` element")
				if err != nil {
					return nil, err
				}
				res = append(res, child.Items...)
			}
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("flatten", []string{"list"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			var res []values.Value
			for _, v := range arr.Items {
				if child, ok := v.(*values.Array); ok {
					res = append(res, child.Items...)
				} else {
					res = append(res, v)
				}
			}
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("sort", []string{"list"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			res := make([]values.Value, len(arr.Items))
			copy(res, arr.Items)
			sort.SliceStable(res, func(i, j int) bool {
				return values.CompareTotal(res[i], res[j]) < 0
			})
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("insert before", []string{"list", "position", "newItem"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			position, err := values.ExpectPositiveInteger(argOf(args, "position"), "argument[2] `position`")
			if err != nil {
				return nil, err
			}
			if position > len(arr.Items) {
				return nil, newIndexError()
			}
			newItem := argOf(args, "newItem")
			res := make([]values.Value, 0, len(arr.Items)+1)
			res = append(res, arr.Items[:position-1]...)
			res = append(res, newItem)
			res = append(res, arr.Items[position-1:]...)
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("remove", []string{"list", "position"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			position, err := values.ExpectPositiveInteger(argOf(args, "position"), "argument[2] `position`")
			if err != nil {
				return nil, err
			}
			if position > len(arr.Items) {
				return nil, newIndexError()
			}
			res := make([]values.Value, 0, len(arr.Items)-1)
			res = append(res, arr.Items[:position-1]...)
			res = append(res, arr.Items[position:]...)
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("reverse", []string{"list"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			res := make([]values.Value, len(arr.Items))
			for i, v := range arr.Items {
				res[len(arr.Items)-1-i] = v
			}
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("index of", []string{"list", "match"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			match := argOf(args, "match")
			var res []values.Value
			for i, v := range arr.Items {
				if values.Equal(v, match) {
					res = append(res, values.NewNumberFromInt(int64(i+1)))
				}
			}
			return values.NewArray(res...), nil
		})

	p.addNativeFunc("distinct values", []string{"list"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			arr, err := values.ExpectArray(argOf(args, "list"), "argument[1] `list`")
			if err != nil {
				return nil, err
			}
			return values.NewArray(dedupValues(arr.Items)...), nil
		})

	p.addNativeFuncFull("union", nil, nil, "lists",
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			lists, err := values.ExpectArray(argOf(args, "lists"), "arguments `lists`")
			if err != nil {
				return nil, err
			}
			var all []values.Value
			for _, v := range lists.Items {
				child, err := values.ExpectArray(v, "argument `lists` element")
				if err != nil {
					return nil, err
				}
				all = append(all, child.Items...)
			}
			return values.NewArray(dedupValues(all)...), nil
		})
}

// dedupValues keeps the first occurrence of each distinct value.
func dedupValues(items []values.Value) []values.Value {
	var res []values.Value
	for _, v := range items {
		seen := false
		for _, kept := range res {
			if values.Equal(kept, v) {
				seen = true
				break
			}
		}
		if !seen {
			res = append(res, v)
		}
	}
	return res
}
