// Package fractal holds the per point iteration of every supported fractal. Two families
// exist: escape time (Mandelbrot, Julia, Mandelbar, BurningShip) which count the steps until
// an orbit leaves the radius 2 disc, and root convergence (Newton) which count the steps until
// Newton's method lands on one of the roots of a polynomial.
package fractal

import (
	"Frustals/point"
	"fmt"
	"math"
)

// All is the channel of results that do not belong to a particular basin
const All = -1

// Iterations is the result of iterating a single point
type Iterations struct {
	// N is within [0, Precision], fractional when smoothing is enabled
	N float64
	// Channel is the index of the basin the point fell into, or All
	Channel int
	// Channels is the number of basins the fractal can produce
	Channels int
}

func all(n float64) Iterations {
	return Iterations{N: n, Channel: All, Channels: 1}
}

// Fractal iterates single points. The boolean is false when the point stayed bounded or
// never converged within Options.Precision steps.
type Fractal interface {
	Iterate(p point.Point, options *Options) (Iterations, bool)
	Channels() int
}

// New returns the fractal for a variant
func New(variant Variant) (Fractal, error) {
	switch variant {
	case Mandelbrot:
		return &EscapeTime{Variant: Mandelbrot, step: multibrotStep}, nil
	case Julia:
		return &EscapeTime{Variant: Julia, step: multibrotStep}, nil
	case Mandelbar:
		return &EscapeTime{Variant: Mandelbar, step: mandelbarStep}, nil
	case BurningShip:
		return &EscapeTime{Variant: BurningShip, step: burningShipStep}, nil
	case Newton, Newton2, Newton3, Newton4, Newton5:
		preset := newtonPresets[variant]
		return NewNewton(preset.polynomial, preset.roots)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(variant))
	}
}

// clampIterations keeps a smoothed count within [0, precision], a non-finite smoothing
// falls back to the integer count
func clampIterations(n float64, iteration int, precision int) float64 {
	if math.IsNaN(n) {
		n = float64(iteration)
	}
	return math.Max(0, math.Min(n, float64(precision)))
}
