package layout

import (
	"fmt"

	"github.com/knetic/govaluate"
	"github.com/mitchellh/mapstructure"
)

// DerivedValue is the result of one derived expression.
type DerivedValue struct {
	Name        string      `yaml:"name"`
	Value       interface{} `yaml:"value"`
	Description string      `yaml:"description,omitempty"`
}

// GetExpressionFunctions defines functions usable in derived expressions.
// govaluate hands every numeric argument over as float64.
func GetExpressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"RowStride": func(args ...interface{}) (interface{}, error) {
			n, err := numbers("RowStride", args, "width", "bitsPerPixel")
			if err != nil {
				return nil, err
			}
			return float64(rowStride(n[0], n[1])), nil
		},
		"PixelArraySize": func(args ...interface{}) (interface{}, error) {
			n, err := numbers("PixelArraySize", args, "width", "height", "bitsPerPixel")
			if err != nil {
				return nil, err
			}
			// Height is stored unsigned; negative values mark top-down rows
			rows := int64(int32(uint32(n[1])))
			if rows < 0 {
				rows = -rows
			}
			return float64(rowStride(n[0], n[2]) * rows), nil
		},
		"PaletteEntries": func(args ...interface{}) (interface{}, error) {
			n, err := numbers("PaletteEntries", args, "bitsPerPixel", "colorsUsed")
			if err != nil {
				return nil, err
			}
			if n[1] > 0 {
				return float64(n[1]), nil
			}
			if n[0] > 0 && n[0] <= 8 {
				return float64(int64(1) << uint(n[0])), nil
			}
			return float64(0), nil
		},
	}
}

// rowStride is the byte length of one pixel row padded to a 4-byte boundary.
func rowStride(width, bitsPerPixel int64) int64 {
	return ((width*bitsPerPixel + 31) / 32) * 4
}

func numbers(fn string, args []interface{}, names ...string) ([]int64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s expects %d arguments %v, got %d", fn, len(names), names, len(args))
	}
	out := make([]int64, len(args))
	for i, arg := range args {
		v, ok := arg.(float64)
		if !ok {
			return nil, fmt.Errorf("arg %d (%s) must be numeric for %s", i+1, names[i], fn)
		}
		out[i] = int64(v)
	}
	return out, nil
}

// Compile checks that a derived expression parses.
func (d *Derived) Compile() (*govaluate.EvaluableExpression, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(d.Expression, GetExpressionFunctions())
	if err != nil {
		return nil, fmt.Errorf("derived value %s: invalid expression %q: %w", d.Name, d.Expression, err)
	}
	return expr, nil
}

// Evaluate computes every derived value, in layout order, against params.
func (f *FileFormat) Evaluate(params map[string]interface{}) ([]DerivedValue, error) {
	values := make([]DerivedValue, 0, len(f.Derived))
	for i := range f.Derived {
		d := &f.Derived[i]
		expr, err := d.Compile()
		if err != nil {
			return nil, err
		}
		result, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("error evaluating derived value %s: %w", d.Name, err)
		}
		values = append(values, DerivedValue{Name: d.Name, Value: result, Description: d.Description})
	}
	return values, nil
}

// Params flattens the exported fields of each source struct into one
// parameter map. Numbers become float64 and byte arrays become strings, which
// is what govaluate works with. Later sources overwrite earlier names.
func Params(sources ...interface{}) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	for _, src := range sources {
		var fields map[string]interface{}
		if err := mapstructure.Decode(src, &fields); err != nil {
			return nil, fmt.Errorf("error flattening %T: %w", src, err)
		}
		for name, value := range fields {
			v, err := paramValue(value)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", name, err)
			}
			params[name] = v
		}
	}
	return params, nil
}

func paramValue(value interface{}) (interface{}, error) {
	var num float64
	if err := mapstructure.Decode(value, &num); err == nil {
		return num, nil
	}

	var s string
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(value); err != nil {
		return nil, err
	}
	return s, nil
}
