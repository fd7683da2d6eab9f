package evaluator

import "github.com/dmnkit/go-feel/values"

// Allen interval built-ins. Each takes two arguments where either may
// be a point or a range; dispatch follows the interval algebra.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-range/
func (p *preludeTable) loadRangeFuncs() {
	p.addNativeFunc("before", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			a, b := argOf(args, "a"), argOf(args, "b")
			if rngA, ok := a.(*values.Range); ok {
				if rngB, ok := b.(*values.Range); ok {
					return values.Bool(rngA.Before(rngB)), nil
				}
				return values.Bool(rngA.BeforePoint(b)), nil
			}
			if rngB, ok := b.(*values.Range); ok {
				return values.Bool(rngB.AfterPoint(a)), nil
			}
			c, ok := values.Compare(a, b)
			return values.Bool(ok && c < 0), nil
		})

	p.addNativeFunc("after", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			a, b := argOf(args, "a"), argOf(args, "b")
			if rngA, ok := a.(*values.Range); ok {
				if rngB, ok := b.(*values.Range); ok {
					return values.Bool(rngA.After(rngB)), nil
				}
				return values.Bool(rngA.AfterPoint(b)), nil
			}
			if rngB, ok := b.(*values.Range); ok {
				return values.Bool(rngB.BeforePoint(a)), nil
			}
			c, ok := values.Compare(a, b)
			return values.Bool(ok && c > 0), nil
		})

	bothRanges := func(name string, pred func(a, b *values.Range) bool) {
		p.addNativeFunc(name, []string{"a", "b"},
			func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
				rngA, err := values.ExpectRange(argOf(args, "a"), "argument[1] `a`")
				if err != nil {
					return nil, err
				}
				rngB, err := values.ExpectRange(argOf(args, "b"), "argument[2] `b`")
				if err != nil {
					return nil, err
				}
				return values.Bool(pred(rngA, rngB)), nil
			})
	}
	bothRanges("meets", func(a, b *values.Range) bool { return a.Meets(b) })
	bothRanges("met by", func(a, b *values.Range) bool { return b.Meets(a) })
	bothRanges("overlaps", func(a, b *values.Range) bool {
		return a.OverlapsBefore(b) || a.OverlapsAfter(b)
	})
	bothRanges("overlaps before", func(a, b *values.Range) bool { return a.OverlapsBefore(b) })
	bothRanges("overlaps after", func(a, b *values.Range) bool { return a.OverlapsAfter(b) })
	bothRanges("coincides", func(a, b *values.Range) bool {
		return values.Equal(a, b)
	})

	p.addNativeFunc("starts", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			rngB, err := values.ExpectRange(argOf(args, "b"), "argument[2] `b`")
			if err != nil {
				return nil, err
			}
			if rngA, ok := argOf(args, "a").(*values.Range); ok {
				return values.Bool(rngB.StartedByRange(rngA)), nil
			}
			return values.Bool(rngB.StartedBy(argOf(args, "a"))), nil
		})

	p.addNativeFunc("started by", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			rngA, err := values.ExpectRange(argOf(args, "a"), "argument[1] `a`")
			if err != nil {
				return nil, err
			}
			if rngB, ok := argOf(args, "b").(*values.Range); ok {
				return values.Bool(rngA.StartedByRange(rngB)), nil
			}
			return values.Bool(rngA.StartedBy(argOf(args, "b"))), nil
		})

	p.addNativeFunc("finishes", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			rngB, err := values.ExpectRange(argOf(args, "b"), "argument[2] `b`")
			if err != nil {
				return nil, err
			}
			if rngA, ok := argOf(args, "a").(*values.Range); ok {
				return values.Bool(rngB.FinishedByRange(rngA)), nil
			}
			return values.Bool(rngB.FinishedBy(argOf(args, "a"))), nil
		})

	p.addNativeFunc("finished by", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			rngA, err := values.ExpectRange(argOf(args, "a"), "argument[1] `a`")
			if err != nil {
				return nil, err
			}
			if rngB, ok := argOf(args, "b").(*values.Range); ok {
				return values.Bool(rngA.FinishedByRange(rngB)), nil
			}
			return values.Bool(rngA.FinishedBy(argOf(args, "b"))), nil
		})

	p.addNativeFunc("includes", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			rngA, err := values.ExpectRange(argOf(args, "a"), "argument[1] `a`")
			if err != nil {
				return nil, err
			}
			if rngB, ok := argOf(args, "b").(*values.Range); ok {
				return values.Bool(rngA.Includes(rngB)), nil
			}
			return values.Bool(rngA.Position(argOf(args, "b")) == 0), nil
		})

	p.addNativeFunc("during", []string{"a", "b"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			rngB, err := values.ExpectRange(argOf(args, "b"), "argument[2] `b`")
			if err != nil {
				return nil, err
			}
			if rngA, ok := argOf(args, "a").(*values.Range); ok {
				return values.Bool(rngB.Includes(rngA)), nil
			}
			return values.Bool(rngB.Position(argOf(args, "a")) == 0), nil
		})
}
