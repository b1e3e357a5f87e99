package render

import (
	"Frustals/colorize"
	"Frustals/domain"
	"Frustals/fractal"
	"Frustals/pixel"
	"Frustals/point"
	"fmt"
)

// Shader is an immutable snapshot of everything needed to color a single point: the
// verified options, the fractal they select and the matching colorizer. It is safe to
// share between goroutines.
type Shader struct {
	fractal   fractal.Fractal
	colorizer colorize.Colorizer
	options   fractal.Options
}

// NewShader verifies a copy of options and fails when the colorization can not handle
// the channels of the fractal
func NewShader(options fractal.Options) (*Shader, error) {
	if err := options.Verify(); err != nil {
		return nil, err
	}
	f, err := fractal.New(options.Variant)
	if err != nil {
		return nil, err
	}
	return newShader(f, options)
}

func newShader(f fractal.Fractal, options fractal.Options) (*Shader, error) {
	c, err := colorize.New(&options)
	if err != nil {
		return nil, err
	}
	if err = colorize.Validate(c, f); err != nil {
		return nil, fmt.Errorf("%s with %s: %w", options.Variant, options.Colorization, err)
	}
	return &Shader{fractal: f, colorizer: c, options: options}, nil
}

// with keeps the fractal when only the tuning of the same variant changes
func (s *Shader) with(options fractal.Options) (*Shader, error) {
	if err := options.Verify(); err != nil {
		return nil, err
	}
	if options.Variant != s.options.Variant {
		return NewShader(options)
	}
	return newShader(s.fractal, options)
}

func (s *Shader) Options() fractal.Options {
	return s.options
}

func (s *Shader) Fractal() fractal.Fractal {
	return s.fractal
}

// Shade colors a point of the plane
func (s *Shader) Shade(p point.Point) pixel.Pixel {
	it, ok := s.fractal.Iterate(p, &s.options)
	return colorize.Shade(s.colorizer, it, ok)
}

// At colors the pixel stored at a row-major buffer index of d
func (s *Shader) At(d *domain.Domain, index int) pixel.Pixel {
	return s.Shade(d.At(index))
}
