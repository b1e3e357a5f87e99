// Package colorize turns iteration results into pixels.
//
// A colorizer is built once per render pass from verified options and is then called for
// every pixel from any number of goroutines, so implementations are immutable.
package colorize

import (
	"Frustals/fractal"
	"Frustals/pixel"
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrUnsupportedChannels = errors.New("colorization can not tell the channels of this fractal apart")
	ErrEmptyPalette        = errors.New("palette colorization needs at least one color")
)

// Colorizer maps the result of a point that escaped or converged to a pixel
type Colorizer interface {
	Color(it fractal.Iterations) pixel.Pixel
	// MaxChannels is the largest channel count the colorizer defines a coloring for,
	// 0 means any count
	MaxChannels() int
}

// New builds the colorizer selected by options.Colorization. Options must be verified.
func New(options *fractal.Options) (Colorizer, error) {
	if options.Precision <= 0 {
		return nil, fmt.Errorf("%w: %d", fractal.ErrInvalidPrecision, options.Precision)
	}
	precision := float64(options.Precision)

	switch options.Colorization {
	case fractal.Spectrum:
		return &Spectrum{Precision: precision, Lightness: options.Lightness}, nil
	case fractal.Grayscale:
		return &Grayscale{Precision: precision, Lightness: options.Lightness}, nil
	case fractal.AbsoluteHSL:
		return &AbsoluteHSL{Lightness: options.Lightness}, nil
	case fractal.AbsoluteLogHSL:
		return &AbsoluteHSL{Lightness: options.Lightness, Logarithmic: true}, nil
	case fractal.ThresholdHWB, fractal.ThresholdHSL:
		return &Threshold{
			Precision:      precision,
			Overexposure:   options.Overexposure,
			BlackThreshold: options.BlackThreshold,
			WhiteThreshold: options.WhiteThreshold,
			ColorRotation:  options.ColorRotation,
			ColorBase:      options.ColorBase,
			HSL:            options.Colorization == fractal.ThresholdHSL,
		}, nil
	case fractal.Palette:
		if len(options.Palette) == 0 {
			return nil, ErrEmptyPalette
		}
		return &Palette{Colors: options.Palette, Smooth: options.Smooth}, nil
	default:
		return nil, fmt.Errorf("%w: %d", fractal.ErrUnknownColorization, int(options.Colorization))
	}
}

// Validate fails when the fractal produces more channels than the colorizer can handle.
// It is meant to run once when options are applied, never per pixel.
func Validate(c Colorizer, f fractal.Fractal) error {
	channels := f.Channels()
	if channels <= 1 || c.MaxChannels() == 0 || channels <= c.MaxChannels() {
		return nil
	}
	return fmt.Errorf("%w: %T handles %d channels, fractal has %d", ErrUnsupportedChannels, c, c.MaxChannels(), channels)
}

// Shade colors the outcome of Fractal.Iterate. Points without a result are Background,
// a non-finite count is treated as 0 so that it still yields a defined color.
func Shade(c Colorizer, it fractal.Iterations, ok bool) pixel.Pixel {
	if !ok {
		return pixel.Background
	}
	if math.IsNaN(it.N) || math.IsInf(it.N, 0) || it.N < 0 {
		it.N = 0
	}
	return c.Color(it)
}

// hueOffset spreads channels evenly over the color wheel
func hueOffset(it fractal.Iterations) float64 {
	if it.Channel == fractal.All || it.Channels <= 0 {
		return 0
	}
	return float64(it.Channel) * 360 / float64(it.Channels)
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if math.IsNaN(h) {
		return 0
	}
	return h
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

func fromColorful(c colorful.Color) pixel.Pixel {
	r, g, b := c.Clamped().RGB255()
	return pixel.Pixel{R: r, G: g, B: b, A: 255}
}
