package fractal

import (
	"Frustals/point"
	"math"
	"math/cmplx"
)

// EscapeTime iterates z ← f(z)^order + c until |z| > 2.
//
// Mandelbrot, Mandelbar and BurningShip start from z = 0 with c = point, Julia starts from
// z = point with c = Options.Const.
type EscapeTime struct {
	Variant Variant
	step    func(z complex128, c complex128, order int) complex128
}

func (e *EscapeTime) Channels() int {
	return 1
}

func (e *EscapeTime) Iterate(p point.Point, options *Options) (Iterations, bool) {
	z, c := complex(0, 0), p.Complex()
	if e.Variant == Julia {
		z, c = p.Complex(), options.Const()
	}

	if e.Variant == Mandelbrot && options.Order == 2 && insideMainBulbs(p) {
		return Iterations{}, false
	}

	for iteration := 0; iteration < options.Precision; iteration++ {
		z = e.step(z, c, options.Order)

		// |z| > 2 => |z|² > 4
		mod2 := real(z)*real(z) + imag(z)*imag(z)
		if mod2 > 4 {
			n := float64(iteration)
			if options.Smooth {
				// n - ln(ln|z| / B) / ln d with B = max(|c|, 2^(1/(d-1)))
				order := float64(options.Order)
				bound := math.Max(cmplx.Abs(c), math.Pow(2, 1/(order-1)))
				n -= math.Log(math.Log(mod2)/2/bound) / math.Log(order)
			}
			return all(clampIterations(n, iteration, options.Precision)), true
		}
	}
	return Iterations{}, false
}

// insideMainBulbs tests membership of the main cardioid and the period 2 bulb
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Cardioid_/_bulb_checking
func insideMainBulbs(p point.Point) bool {
	y2 := p.Y * p.Y
	q := math.Sqrt((p.X-0.25)*(p.X-0.25) + y2)
	if p.X < q-2*q*q+0.25 {
		return true
	}
	return (p.X+1)*(p.X+1)+y2 < 1.0/16
}

func multibrotStep(z complex128, c complex128, order int) complex128 {
	return powi(z, order) + c
}

func mandelbarStep(z complex128, c complex128, order int) complex128 {
	return powi(cmplx.Conj(z), order) + c
}

func burningShipStep(z complex128, c complex128, order int) complex128 {
	return powi(complex(math.Abs(real(z)), math.Abs(imag(z))), order) + c
}

// powi raises z to an integer power by squaring, negative powers invert the result
func powi(z complex128, n int) complex128 {
	if n == 2 {
		return z * z
	}
	if n < 0 {
		return 1 / powi(z, -n)
	}
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= z
		}
		z *= z
		n >>= 1
	}
	return result
}
