package colorize

import (
	"Frustals/fractal"
	"Frustals/pixel"
)

// Band is one of the six primary and secondary hues used for per channel coloring
type Band int

const (
	Red Band = iota
	Yellow
	Green
	Cyan
	Blue
	Magenta
	bandCount
)

// band maps a channel onto the six bands, spreading fewer channels out evenly
func band(it fractal.Iterations) Band {
	return Band(it.Channel * int(bandCount) / it.Channels)
}

// Spectrum sweeps the aggregate channel through a red, green, blue ramp and paints each
// basin of a multi channel fractal in its own band, brighter the faster it converged.
type Spectrum struct {
	Precision float64
	Lightness float64
}

func (s *Spectrum) MaxChannels() int {
	return int(bandCount)
}

func (s *Spectrum) Color(it fractal.Iterations) pixel.Pixel {
	if it.Channel == fractal.All {
		v := 3 * 255 * it.N / s.Precision * s.Lightness
		return pixel.FromFloat(v, v-255, v-2*255)
	}

	v := 255 * (1 - it.N/s.Precision) * s.Lightness
	switch band(it) {
	case Red:
		return pixel.FromFloat(v, 0, 0)
	case Yellow:
		return pixel.FromFloat(v, v, 0)
	case Green:
		return pixel.FromFloat(0, v, 0)
	case Cyan:
		return pixel.FromFloat(0, v, v)
	case Blue:
		return pixel.FromFloat(0, 0, v)
	default:
		return pixel.FromFloat(v, 0, v)
	}
}

// Grayscale is the black and white rendition of Spectrum, basins are told apart by a
// constant gray offset per band
type Grayscale struct {
	Precision float64
	Lightness float64
}

func (g *Grayscale) MaxChannels() int {
	return int(bandCount)
}

func (g *Grayscale) Color(it fractal.Iterations) pixel.Pixel {
	if it.Channel == fractal.All {
		v := 255 * it.N / g.Precision * g.Lightness
		return pixel.FromFloat(v, v, v)
	}

	increment := 255.0 / float64(bandCount)
	v := increment*(1-it.N/g.Precision)*g.Lightness + increment*float64(band(it))
	return pixel.FromFloat(v, v, v)
}
