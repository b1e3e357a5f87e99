package fractal

import (
	"Frustals/misc"
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

var (
	ErrInvalidPrecision    = errors.New("precision must be positive")
	ErrInvalidOrder        = errors.New("order must be at least 2")
	ErrUnknownVariant      = errors.New("unknown variant")
	ErrUnknownColorization = errors.New("unknown colorization")
	ErrInvalidKnob         = errors.New("invalid colorization setting")
)

const (
	Mandelbrot Variant = iota
	Julia
	Mandelbar
	BurningShip
	Newton
	Newton2
	Newton3
	Newton4
	Newton5
)

type Variant int

var variantNames = []string{
	"Mandelbrot", "Julia", "Mandelbar", "BurningShip", "Newton", "Newton2", "Newton3", "Newton4", "Newton5",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "Variant(" + strconv.Itoa(int(v)) + ")"
	}
	return variantNames[v]
}

// IsNewton reports whether the variant belongs to the root convergence family
func (v Variant) IsNewton() bool {
	return v >= Newton && v <= Newton5
}

func (v Variant) MarshalText() ([]byte, error) {
	if v < 0 || int(v) >= len(variantNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText accepts either the variant name or its number written as text
func (v *Variant) UnmarshalText(text []byte) error {
	i, err := parseEnum(string(text), variantNames)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownVariant, text)
	}
	*v = Variant(i)
	return nil
}

const (
	Spectrum Colorization = iota
	Grayscale
	AbsoluteHSL
	AbsoluteLogHSL
	ThresholdHWB
	ThresholdHSL
	Palette
)

type Colorization int

var colorizationNames = []string{
	"Spectrum", "Grayscale", "AbsoluteHSL", "AbsoluteLogHSL", "ThresholdHWB", "ThresholdHSL", "Palette",
}

func (c Colorization) String() string {
	if c < 0 || int(c) >= len(colorizationNames) {
		return "Colorization(" + strconv.Itoa(int(c)) + ")"
	}
	return colorizationNames[c]
}

func (c Colorization) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(colorizationNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColorization, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Colorization) UnmarshalText(text []byte) error {
	i, err := parseEnum(string(text), colorizationNames)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownColorization, text)
	}
	*c = Colorization(i)
	return nil
}

func parseEnum(text string, names []string) (int, error) {
	for i, name := range names {
		if name == text {
			return i, nil
		}
	}
	i, err := strconv.Atoi(text)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(names) {
		return 0, errors.New("out of range")
	}
	return i, nil
}

// GeneratePaletteSettings describes one linear gradient segment of a palette
type GeneratePaletteSettings struct {
	StartColor   color.RGBA
	EndColor     color.RGBA
	NumberColors int
}

func (gps *GeneratePaletteSettings) GeneratePalette() []color.RGBA {
	palette := make([]color.RGBA, 0, gps.NumberColors)
	for j := 0; j < gps.NumberColors; j++ {
		fraction := float64(j) / float64(gps.NumberColors)
		palette = append(palette, color.RGBA{
			R: misc.LerpUint8(gps.StartColor.R, gps.EndColor.R, fraction),
			G: misc.LerpUint8(gps.StartColor.G, gps.EndColor.G, fraction),
			B: misc.LerpUint8(gps.StartColor.B, gps.EndColor.B, fraction),
			A: 255,
		})
	}
	return palette
}

// Options is the configuration of one render pass. It is treated as an immutable
// snapshot while a pass is running.
type Options struct {
	Variant   Variant
	Precision int
	Smooth    bool
	Order     int

	// Fixed constant of Julia, detuning factor of Newton
	ConstReal      float64
	ConstImaginary float64

	Colorization Colorization

	// Spectrum, Grayscale and Absolute*
	Lightness float64

	// Threshold*
	BlackThreshold float64
	WhiteThreshold float64
	Overexposure   float64
	ColorRotation  float64
	ColorBase      float64

	// Palette
	GeneratePaletteSettings []GeneratePaletteSettings
	Palette                 []color.RGBA
}

// Const is the complex constant of the formula
func (o *Options) Const() complex128 {
	return complex(o.ConstReal, o.ConstImaginary)
}

// Verify fills defaults for unset values and rejects values that can not be rendered
func (o *Options) Verify() error {
	if o.Variant < Mandelbrot || o.Variant > Newton5 {
		return fmt.Errorf("%w: %d", ErrUnknownVariant, int(o.Variant))
	}
	if o.Colorization < Spectrum || o.Colorization > Palette {
		return fmt.Errorf("%w: %d", ErrUnknownColorization, int(o.Colorization))
	}

	if o.Precision == 0 {
		o.Precision = 25
	}
	if o.Precision < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, o.Precision)
	}
	if o.Order == 0 {
		o.Order = 2
	}
	if o.Order < 2 {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, o.Order)
	}
	// A zero detuning factor would leave every point in place
	if o.Variant.IsNewton() && o.ConstReal == 0 && o.ConstImaginary == 0 {
		o.ConstReal = 1
	}

	if o.Lightness == 0 {
		o.Lightness = 1
	}
	if o.Lightness < 0 {
		return fmt.Errorf("%w: lightness %g", ErrInvalidKnob, o.Lightness)
	}
	if o.Overexposure == 0 {
		o.Overexposure = 1
	}
	if o.Overexposure < 0 {
		return fmt.Errorf("%w: overexposure %g", ErrInvalidKnob, o.Overexposure)
	}
	if o.BlackThreshold == 0 && o.WhiteThreshold == 0 {
		o.BlackThreshold = 0.1
		o.WhiteThreshold = 0.9
	}
	if o.BlackThreshold < 0 || o.BlackThreshold > 1 || o.WhiteThreshold < 0 || o.WhiteThreshold > 1 {
		return fmt.Errorf("%w: thresholds must be within [0, 1], got black %g white %g", ErrInvalidKnob, o.BlackThreshold, o.WhiteThreshold)
	}
	if o.BlackThreshold == o.WhiteThreshold {
		return fmt.Errorf("%w: black and white thresholds are both %g", ErrInvalidKnob, o.BlackThreshold)
	}

	if len(o.GeneratePaletteSettings) > 0 {
		o.Palette = make([]color.RGBA, 0)
		for i := 0; i < len(o.GeneratePaletteSettings); i++ {
			o.Palette = append(o.Palette, o.GeneratePaletteSettings[i].GeneratePalette()...)
		}
	}
	if len(o.Palette) == 0 {
		o.Palette = []color.RGBA{{R: 255, G: 255, B: 255, A: 255}}
	}

	return nil
}

func (o *Options) String() string {
	output := "{Options "
	output += fmt.Sprintf("Variant: %s ", o.Variant)
	output += fmt.Sprintf("Precision: %d ", o.Precision)
	output += fmt.Sprintf("Smooth: %t ", o.Smooth)
	output += fmt.Sprintf("Order: %d ", o.Order)
	output += fmt.Sprintf("Const: %g%+gi ", o.ConstReal, o.ConstImaginary)
	output += fmt.Sprintf("Colorization: %s}", o.Colorization)
	return output
}
