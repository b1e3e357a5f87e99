package colorize

import (
	"Frustals/fractal"
	"Frustals/pixel"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// AbsoluteHSL colors by the raw iteration count instead of its ratio to precision. Below
// Lightness·10 iterations the pixel fades in from black, past it the hue keeps turning,
// one degree per iteration or logarithmically.
type AbsoluteHSL struct {
	Lightness   float64
	Logarithmic bool
}

func (a *AbsoluteHSL) MaxChannels() int {
	return 0
}

func (a *AbsoluteHSL) Color(it fractal.Iterations) pixel.Pixel {
	hue := hueOffset(it)
	threshold := a.Lightness * 10

	if it.N <= threshold {
		return fromColorful(colorful.Hsl(normalizeHue(hue), 1, 0.5*it.N/threshold))
	}

	over := it.N - threshold
	if a.Logarithmic {
		over = math.Log(1+over) * 10
	}
	return fromColorful(colorful.Hsl(normalizeHue(hue+over), 1, 0.5))
}
