package colorize

import (
	"Frustals/fractal"
	"Frustals/pixel"

	"github.com/lucasb-eyer/go-colorful"
)

// Threshold places the normalized convergence n·Overexposure/Precision against two thresholds:
//   - below the lower one the pixel darkens towards black
//   - between them the hue rotates by up to ColorRotation degrees
//   - above the upper one the rotation is complete and the pixel washes out towards white
//
// A black threshold above the white threshold inverts the convergence.
type Threshold struct {
	Precision      float64
	Overexposure   float64
	BlackThreshold float64
	WhiteThreshold float64
	ColorRotation  float64
	ColorBase      float64
	// HSL selects the hue/saturation/lightness model instead of hue/whiteness/blackness
	HSL bool
}

func (t *Threshold) MaxChannels() int {
	return 0
}

// Components returns the hue in degrees and the whiteness and blackness in [0, 1]
func (t *Threshold) Components(it fractal.Iterations) (hue float64, whiteness float64, blackness float64) {
	convergence := it.N * t.Overexposure / t.Precision
	low, high := t.BlackThreshold, t.WhiteThreshold
	if low > high {
		low, high = high, low
		convergence = 1 - convergence
	}

	var rotation float64
	switch {
	case convergence < low:
		blackness = clamp01(1 - convergence/low)
	case convergence <= high:
		rotation = (convergence - low) / (high - low) * t.ColorRotation
	default:
		rotation = t.ColorRotation
		whiteness = clamp01((convergence - high) / (1 - high))
	}

	hue = normalizeHue(t.ColorBase + hueOffset(it) + rotation)
	return hue, whiteness, blackness
}

func (t *Threshold) Color(it fractal.Iterations) pixel.Pixel {
	hue, whiteness, blackness := t.Components(it)
	if t.HSL {
		return fromColorful(colorful.Hsl(hue, 1, 0.5*(1-blackness)+0.5*whiteness))
	}
	return fromColorful(hwb(hue, whiteness, blackness))
}

// hwb converts hue/whiteness/blackness through the equivalent HSV color
func hwb(hue float64, whiteness float64, blackness float64) colorful.Color {
	if whiteness+blackness >= 1 {
		gray := whiteness / (whiteness + blackness)
		return colorful.Color{R: gray, G: gray, B: gray}
	}
	value := 1 - blackness
	return colorful.Hsv(hue, 1-whiteness/value, value)
}
