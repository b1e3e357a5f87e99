// Package pixel holds the RGBA output of a render pass
package pixel

import (
	"fmt"
	"image/color"
	"math"
)

// Pixel is a straight (non premultiplied) RGBA color
type Pixel struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

var (
	// Background is the color of points that never escaped or converged
	Background = Pixel{R: 0, G: 0, B: 0, A: 255}
	// Void is fully transparent, it marks pixels that were not rendered yet
	Void = Pixel{}
)

// FromFloat builds an opaque pixel, each channel is clamped to [0, 255] and rounded.
// NaN channels become 0.
func FromFloat(r float64, g float64, b float64) Pixel {
	return Pixel{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(math.Max(0, math.Min(v, 255))))
}

// FromColor converts any color, alpha is forced to opaque
func FromColor(c color.Color) Pixel {
	r, g, b, _ := c.RGBA()
	return Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}

func (p Pixel) RGBA() color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", p.R, p.G, p.B, p.A)
}
