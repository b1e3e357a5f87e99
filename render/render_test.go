package render

import (
	"Frustals/colorize"
	"Frustals/fractal"
	"Frustals/pixel"
	"Frustals/point"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, width int, height int, options fractal.Options) *Renderer {
	r, err := New(width, height, options)
	require.NoError(t, err)
	return r
}

func fullFrame(t *testing.T, width int, height int, options fractal.Options) []uint8 {
	r := newRenderer(t, width, height, options)
	b := r.Render()
	return append([]uint8(nil), b.Bytes()...)
}

var testOptions = fractal.Options{Variant: fractal.Mandelbrot, Precision: 60, Smooth: true}

func TestRenderFillsBuffer(t *testing.T) {
	r := newRenderer(t, 40, 30, testOptions)
	b := r.Render()
	require.Len(t, b.Bytes(), 40*30*4)
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, uint8(255), b.At(i).A, "pixel %d was not rendered", i)
	}
	// The origin is inside the set
	assert.Equal(t, pixel.Background, b.At(15*40+20))
}

func TestRenderPartialCompletesFrame(t *testing.T) {
	want := fullFrame(t, 33, 17, testOptions)

	r := newRenderer(t, 33, 17, testOptions)
	for phase := 0; phase < 5; phase++ {
		b, err := r.RenderPartial(5, phase)
		require.NoError(t, err)
		if phase == 0 {
			// Only every fifth pixel is done after the first phase
			assert.Equal(t, pixel.Void, b.At(1))
			assert.NotEqual(t, pixel.Void, b.At(0))
		}
	}
	assert.Equal(t, want, r.Buffer().Bytes())
}

func TestRenderPartialPhases(t *testing.T) {
	r := newRenderer(t, 10, 1, testOptions)
	_, err := r.RenderPartial(4, 1)
	require.NoError(t, err)
	// (index + 1) mod 4 == 0 => 3, 7
	for i := 0; i < 10; i++ {
		rendered := r.Buffer().At(i) != pixel.Void
		assert.Equal(t, i == 3 || i == 7, rendered, "pixel %d", i)
	}

	// Phases are taken modulo the stride
	_, err = r.RenderPartial(4, -3)
	require.NoError(t, err)
	assert.NotEqual(t, pixel.Void, r.Buffer().At(3))

	_, err = r.RenderPartial(0, 0)
	assert.ErrorIs(t, err, ErrInvalidStride)
}

func TestRenderPooledMatchesRender(t *testing.T) {
	variants := []fractal.Options{
		testOptions,
		{Variant: fractal.Newton3, Precision: 30, Smooth: true, Colorization: fractal.ThresholdHWB, ColorRotation: 45},
		{Variant: fractal.Julia, Precision: 80, ConstReal: -0.8, ConstImaginary: 0.156, Colorization: fractal.AbsoluteLogHSL},
	}
	for _, options := range variants {
		want := fullFrame(t, 37, 23, options)
		for _, workers := range []int{0, 1, 3, 8, 2000} {
			r := newRenderer(t, 37, 23, options)
			b, err := r.RenderPooled(workers)
			require.NoError(t, err)
			assert.Equal(t, want, b.Bytes(), "%s with %d workers", options.Variant, workers)
		}
	}
}

type panicky struct{}

func (panicky) Iterate(p point.Point, options *fractal.Options) (fractal.Iterations, bool) {
	if p.X > 0 {
		panic("numeric fault")
	}
	return fractal.Iterations{}, false
}

func (panicky) Channels() int {
	return 1
}

func TestRenderPooledFailsFrame(t *testing.T) {
	r := newRenderer(t, 20, 20, testOptions)
	shader, err := newShader(panicky{}, r.Options())
	require.NoError(t, err)
	r.shader = shader

	_, err = r.RenderPooled(4)
	assert.ErrorIs(t, err, ErrPixelPanic)
}

func TestRenderPreview(t *testing.T) {
	r := newRenderer(t, 41, 20, testOptions)
	full := r.Render()

	preview, err := r.RenderPreview(4)
	require.NoError(t, err)
	assert.Equal(t, 11, preview.Width())
	assert.Equal(t, 5, preview.Height())
	assert.Len(t, preview.Bytes(), 11*5*4)

	for y := 0; y < preview.Height(); y++ {
		for x := 0; x < preview.Width(); x++ {
			assert.Equal(t, full.At(y*4*41+x*4), preview.At(y*11+x))
		}
	}

	_, err = r.RenderPreview(0)
	assert.ErrorIs(t, err, ErrInvalidDownsample)
}

func TestResizeKeepsViewport(t *testing.T) {
	r := newRenderer(t, 100, 100, testOptions)
	require.NoError(t, r.Change(-0.5, 0.25, 0.75))
	before := r.Viewport()

	require.NoError(t, r.Resize(64, 48))
	after := r.Viewport()
	assert.Equal(t, before.Origin, after.Origin)
	assert.Equal(t, before.Scale, after.Scale)
	assert.Len(t, r.Buffer().Bytes(), 64*48*4)
	assert.Len(t, r.Render().Bytes(), 64*48*4)

	assert.Error(t, r.Resize(0, 10))
}

func TestViewportControl(t *testing.T) {
	r := newRenderer(t, 200, 100, testOptions)
	v := r.Viewport()
	assert.Equal(t, point.New(-2, -1), v.Min)
	assert.Equal(t, point.New(2, 1), v.Max)

	r.Shift(50, 0)
	assert.InDelta(t, 1.0, r.Viewport().Origin.X, 1e-12)
	r.Shift(-50, 0)
	assert.InDelta(t, 0.0, r.Viewport().Origin.X, 1e-12)

	require.NoError(t, r.Zoom(0.5, 100, 50))
	assert.InDelta(t, 0.5, r.Viewport().Scale, 1e-12)
	assert.Error(t, r.Zoom(0, 0, 0))
	assert.Error(t, r.Change(0, 0, -1))
}

func TestSetOptions(t *testing.T) {
	r := newRenderer(t, 10, 10, testOptions)
	mandelbrot := r.Shader().Fractal()

	require.NoError(t, r.SetOptions(fractal.Options{Variant: fractal.Mandelbrot, Precision: 200}))
	assert.Same(t, mandelbrot, r.Shader().Fractal())
	assert.Equal(t, 200, r.Options().Precision)

	require.NoError(t, r.SetOptions(fractal.Options{Variant: fractal.Newton}))
	assert.Equal(t, 3, r.Shader().Fractal().Channels())
	options := r.Options()
	assert.Equal(t, complex(1, 0), options.Const())

	// A palette can not color the basins of a Newton fractal
	err := r.SetOptions(fractal.Options{Variant: fractal.Newton, Colorization: fractal.Palette})
	assert.ErrorIs(t, err, colorize.ErrUnsupportedChannels)
	assert.Equal(t, fractal.Spectrum, r.Options().Colorization)

	assert.ErrorIs(t, r.SetOptions(fractal.Options{Precision: -2}), fractal.ErrInvalidPrecision)
}

func TestNewShaderRejects(t *testing.T) {
	_, err := NewShader(fractal.Options{Variant: fractal.Variant(77)})
	assert.ErrorIs(t, err, fractal.ErrUnknownVariant)
	_, err = New(0, 10, testOptions)
	assert.Error(t, err)
}
