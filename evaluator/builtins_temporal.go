package evaluator

import "github.com/dmnkit/go-feel/values"

// Temporal constructors and helpers.
// Refer to https://docs.camunda.io/docs/components/modeler/feel/builtin-functions/feel-built-in-functions-temporal/
func (p *preludeTable) loadTemporalFuncs() {
	p.addNativeFunc("date and time", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			switch v := argOf(args, "from").(type) {
			case values.DateTime:
				return v, nil
			case values.String:
				return values.ParseDateTime(string(v))
			default:
				return nil, values.NewTypeError("argument[1] `from`, expect string, but %s found", v.TypeName())
			}
		})

	p.addNativeFunc("date", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			switch v := argOf(args, "from").(type) {
			case values.Date:
				return v, nil
			case values.DateTime:
				year, month, day := v.Time.Date()
				return values.Date{Form: values.DateYMD, Year: year, Month: int(month), Day: day}, nil
			case values.String:
				return values.ParseDate(string(v))
			default:
				return nil, values.NewTypeError("argument[1] `from`, expect string, but %s found", v.TypeName())
			}
		})

	p.addNativeFunc("time", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			switch v := argOf(args, "from").(type) {
			case values.Time:
				return v, nil
			case values.DateTime:
				hour, min, sec := v.Time.Clock()
				_, offset := v.Time.Zone()
				return values.Time{
					Hour: hour, Min: min, Sec: sec,
					OffsetSecs: offset, HasOffset: true,
				}, nil
			case values.String:
				return values.ParseTime(string(v))
			default:
				return nil, values.NewTypeError("argument[1] `from`, expect string, but %s found", v.TypeName())
			}
		})

	p.addNativeFunc("duration", []string{"from"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			switch v := argOf(args, "from").(type) {
			case values.Duration:
				return v, nil
			case values.String:
				parsed, err := values.ParseTemporal(string(v))
				if err != nil {
					return nil, err
				}
				if dur, ok := parsed.(values.Duration); ok {
					return dur, nil
				}
				return nil, newValueError("fail to parse duration %q", string(v))
			default:
				return nil, values.NewTypeError("argument[1] `from`, expect string, but %s found", v.TypeName())
			}
		})

	p.addNativeFunc("now", nil,
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			return values.Now(), nil
		})

	p.addNativeFunc("today", nil,
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			return values.Today(), nil
		})

	p.addNativeFunc("day of week", []string{"date"},
		func(_ values.Interpreter, args map[string]values.Value) (values.Value, error) {
			switch v := argOf(args, "date").(type) {
			case values.DateTime:
				return values.String(values.DayOfWeek(v)), nil
			case values.Date:
				return values.String(values.DayOfWeek(values.DateToDateTime(v))), nil
			default:
				return nil, values.NewTypeError("argument[1] `date`, expect date or date time, but %s found", v.TypeName())
			}
		})
}
