package colorize

import (
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/pixel"
	"image/color"
	"math"
)

// Palette cycles through a list of colors by iteration count. Smooth blends the two
// neighbouring entries by the fractional part of the count.
type Palette struct {
	Colors []color.RGBA
	Smooth bool
}

// MaxChannels is 1, a palette only defines the aggregate case
func (p *Palette) MaxChannels() int {
	return 1
}

func (p *Palette) at(iterations float64) color.RGBA {
	return p.Colors[int(math.Floor(iterations))%len(p.Colors)]
}

func (p *Palette) Color(it fractal.Iterations) pixel.Pixel {
	if !p.Smooth {
		return pixel.FromColor(p.at(it.N))
	}
	// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
	_, fraction := math.Modf(it.N)
	return pixel.FromColor(misc.LinearInterpolationRGB(p.at(it.N), p.at(it.N+1), fraction))
}
