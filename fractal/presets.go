package fractal

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Presets are named option sets that are known to render well
var Presets = map[string]Options{
	"Mandelbrot": {
		Variant: Mandelbrot, Precision: 25, Smooth: true, Order: 2, Lightness: 1,
	},
	"Multibrot 3": {
		Variant: Mandelbrot, Precision: 25, Smooth: true, Order: 3, Lightness: 1,
	},
	"Newton": {
		Variant: Newton, Precision: 20, Smooth: true, Order: 2, ConstReal: 1, Lightness: 1,
	},
	"Julia": {
		Variant: Julia, Precision: 2000, Smooth: true, Order: 2, ConstReal: -0.8, ConstImaginary: 0.156, Lightness: 5,
	},
	"Julia 1-φ": {
		Variant: Julia, Precision: 20, Smooth: true, Order: 2, ConstReal: -0.61803398875, Lightness: 1.5,
	},
	"Julia φ−2 + (φ−1)i": {
		Variant: Julia, Precision: 1000, Smooth: true, Order: 2, ConstReal: -0.38196601125, ConstImaginary: 0.61803398875, Lightness: 5,
	},
	"Julia (-.835 -.2321i)": {
		Variant: Julia, Precision: 500, Smooth: true, Order: 2, ConstReal: -0.835, ConstImaginary: -0.2321, Lightness: 7,
	},
	"Julia (-.8i)": {
		Variant: Julia, Precision: 200, Smooth: true, Order: 2, ConstImaginary: -0.8, Lightness: 4,
	},
}

// Preset returns a verified copy of a named preset
func Preset(name string) (Options, error) {
	options, ok := Presets[name]
	if !ok {
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	err := options.Verify()
	return options, err
}

func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
