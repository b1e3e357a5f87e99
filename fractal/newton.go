package fractal

import (
	"Frustals/point"
	"errors"
	"math"
)

// Epsilon is the squared distance to a root under which a point counts as converged
const Epsilon = 1e-5

var ErrNoRoots = errors.New("newton fractal needs a polynomial and at least one root")

// NewtonFractal iterates z ← z - c·p(z)/p'(z) from z = point until z lands within Epsilon
// of one of its roots. The channel of a result is the index of that root.
type NewtonFractal struct {
	polynomial Polynomial
	derivative Polynomial
	roots      []complex128
}

func NewNewton(polynomial Polynomial, roots []complex128) (*NewtonFractal, error) {
	if len(polynomial) == 0 || len(roots) == 0 {
		return nil, ErrNoRoots
	}
	return &NewtonFractal{
		polynomial: polynomial,
		derivative: polynomial.Derivative(),
		roots:      roots,
	}, nil
}

func (nf *NewtonFractal) Channels() int {
	return len(nf.roots)
}

func (nf *NewtonFractal) Roots() []complex128 {
	return nf.roots
}

// Step applies one iteration of the detuned Newton's method
func (nf *NewtonFractal) Step(z complex128, c complex128) complex128 {
	// Division by a vanishing derivative yields Inf or NaN which then never converges
	return z - c*nf.polynomial.Eval(z)/nf.derivative.Eval(z)
}

func (nf *NewtonFractal) Iterate(p point.Point, options *Options) (Iterations, bool) {
	z := p.Complex()
	c := options.Const()

	for iteration := 0; iteration < options.Precision; iteration++ {
		previous := z
		z = nf.Step(z, c)

		// First root wins when several are within reach
		for channel, root := range nf.roots {
			convergence := sqrAbs(z - root)
			if convergence >= Epsilon {
				continue
			}
			n := float64(iteration)
			if options.Smooth {
				// Linear interpolation between the last two iterates in log distance
				previousLog := math.Log(sqrAbs(previous - root))
				n += (math.Log(Epsilon) - previousLog) / (math.Log(convergence) - previousLog)
			}
			return Iterations{
				N:        clampIterations(n, iteration, options.Precision),
				Channel:  channel,
				Channels: len(nf.roots),
			}, true
		}
	}
	return Iterations{}, false
}

func sqrAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

type newtonPreset struct {
	polynomial Polynomial
	roots      []complex128
}

var newtonPresets = map[Variant]newtonPreset{
	// z³ - 1
	Newton: {
		polynomial: Polynomial{{1, 3}, {-1, 0}},
		roots: []complex128{
			complex(1, 0),
			complex(-0.5, math.Sqrt(3)/2),
			complex(-0.5, -math.Sqrt(3)/2),
		},
	},
	// z³ - 2z + 2
	Newton2: {
		polynomial: Polynomial{{1, 3}, {-2, 1}, {2, 0}},
		roots: []complex128{
			complex(-1.7693, 0),
			complex(0.88465, -0.58974),
			complex(0.88465, 0.58974),
		},
	},
	// z⁶ + z³ - 1
	Newton3: {
		polynomial: Polynomial{{1, 6}, {1, 3}, {-1, 0}},
		roots: []complex128{
			complex(0.58699, 1.01670),
			complex(0.85180, 0),
			complex(0.58699, -1.01670),
			complex(-0.42590, -0.73768),
			complex(-1.1740, 0),
			complex(-0.42590, 0.73768),
		},
	},
	// z⁵ - 2
	Newton4: {
		polynomial: Polynomial{{1, 5}, {-2, 0}},
		roots: []complex128{
			complex(-0.929316, -0.675188),
			complex(-0.929316, 0.675188),
			complex(0.354967, -1.09248),
			complex(0.354967, 1.09248),
			complex(1.1487, 0),
		},
	},
	// z³ - 1 + 1/z
	Newton5: {
		polynomial: Polynomial{{1, 3}, {-1, 0}, {1, -1}},
		roots: []complex128{
			complex(-0.72714, -0.93410),
			complex(-0.72714, 0.93410),
			complex(0.72714, -0.43001),
			complex(0.72714, 0.43001),
		},
	},
}
