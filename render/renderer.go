// Package render drives the per pixel computation over a whole canvas.
//
// A Renderer owns the viewport, the options and the pixel buffers. None of its methods
// may be called concurrently, every render pass reads the viewport and the options as
// they were when the pass started.
package render

import (
	"Frustals/domain"
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/pixel"
	"Frustals/point"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidStride     = errors.New("stride must be positive")
	ErrInvalidDownsample = errors.New("preview downsample factor must be positive")
	ErrPixelPanic        = errors.New("pixel computation panicked")
)

// Viewport describes the visible part of the plane
type Viewport struct {
	Origin point.Point
	Scale  float64
	// Min and Max are the plane points under the top left and bottom right corners
	Min point.Point
	Max point.Point
}

type Renderer struct {
	domain  *domain.Domain
	shader  *Shader
	buffer  *pixel.Buffer
	preview *pixel.Buffer
	logger  bslogger.Logger
}

func New(width int, height int, options fractal.Options) (*Renderer, error) {
	d, err := domain.New(width, height)
	if err != nil {
		return nil, err
	}
	shader, err := NewShader(options)
	if err != nil {
		return nil, err
	}
	buffer, err := pixel.NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	buffer.Clear(pixel.Void)

	r := &Renderer{
		domain:  d,
		shader:  shader,
		buffer:  buffer,
		preview: &pixel.Buffer{},
		logger:  misc.NewLogger("Renderer", nil),
	}
	r.logger.Debugf("Created %dx%d renderer %s", width, height, shader.options.String())
	return r, nil
}

// SetOptions swaps the fractal when the variant changes and only retunes it otherwise.
// Invalid options leave the current ones in place.
func (r *Renderer) SetOptions(options fractal.Options) error {
	shader, err := r.shader.with(options)
	if err != nil {
		return err
	}
	r.shader = shader
	r.logger.Debugf("Options set to %s", shader.options.String())
	return nil
}

// Options returns a copy of the verified options
func (r *Renderer) Options() fractal.Options {
	return r.shader.Options()
}

func (r *Renderer) Shader() *Shader {
	return r.shader
}

func (r *Renderer) Viewport() Viewport {
	return Viewport{
		Origin: r.domain.Origin,
		Scale:  r.domain.Scale,
		Min:    r.domain.Min(),
		Max:    r.domain.Max(),
	}
}

// Snapshot is the viewport in the form handed out with distributed tasks
func (r *Renderer) Snapshot() domain.Snapshot {
	return r.domain.Snapshot()
}

// Resize changes the canvas and the buffer, the viewport origin and scale are kept
func (r *Renderer) Resize(width int, height int) error {
	if err := r.domain.Resize(width, height); err != nil {
		return err
	}
	if err := r.buffer.Resize(width, height); err != nil {
		return err
	}
	r.buffer.Clear(pixel.Void)
	r.logger.Debugf("Resized to %dx%d", width, height)
	return nil
}

// Shift pans by a pixel delta
func (r *Renderer) Shift(dx float64, dy float64) {
	r.domain.Shift(point.New(dx, dy))
}

// Zoom scales the viewport by factor around the pixel (x, y), a factor below 1 zooms in
func (r *Renderer) Zoom(factor float64, x float64, y float64) error {
	return r.domain.Zoom(factor, point.New(x, y))
}

// Change sets the viewport absolutely
func (r *Renderer) Change(x float64, y float64, scale float64) error {
	return r.domain.Change(point.New(x, y), scale)
}

func (r *Renderer) Buffer() *pixel.Buffer {
	return r.buffer
}

// Preview returns the buffer of the last preview render
func (r *Renderer) Preview() *pixel.Buffer {
	return r.preview
}

// Render computes every pixel on the calling goroutine
func (r *Renderer) Render() *pixel.Buffer {
	startTime := time.Now()
	shader := r.shader
	it := r.domain.Iterator()
	for index, p, ok := it.Next(); ok; index, p, ok = it.Next() {
		r.buffer.Set(index, shader.Shade(p))
	}
	r.logger.Debugf("Rendered %d pixels in %s", r.buffer.Len(), time.Since(startTime))
	return r.buffer
}

// RenderPartial only computes the pixels whose index satisfies (index + phase) mod stride == 0.
// Advancing phase from 0 to stride-1 over successive calls completes the frame, abandoning
// a frame is simply not asking for the remaining phases.
func (r *Renderer) RenderPartial(stride int, phase int) (*pixel.Buffer, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}
	phase = ((phase % stride) + stride) % stride

	shader := r.shader
	count := r.buffer.Len()
	for index := (stride - phase) % stride; index < count; index += stride {
		r.buffer.Set(index, shader.At(r.domain, index))
	}
	return r.buffer, nil
}

// RenderPooled splits the buffer into one contiguous range per worker and computes them in
// parallel. It returns once every range is done. A panic in any pixel fails the whole
// frame, the content of the buffer is then undefined. Workers below 1 use GOMAXPROCS.
func (r *Renderer) RenderPooled(workers int) (*pixel.Buffer, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	startTime := time.Now()
	shader := r.shader
	snapshot := *r.domain
	count := r.buffer.Len()
	if workers > count {
		workers = count
	}

	var group errgroup.Group
	for worker := 0; worker < workers; worker++ {
		start := count * worker / workers
		end := count * (worker + 1) / workers
		group.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err = fmt.Errorf("%w: pixels [%d, %d): %v", ErrPixelPanic, start, end, recovered)
				}
			}()
			for index := start; index < end; index++ {
				r.buffer.Set(index, shader.At(&snapshot, index))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		r.logger.Errorf("Pooled render failed: %s", err)
		return nil, err
	}

	r.logger.Debugf("Rendered %d pixels with %d workers in %s", count, workers, time.Since(startTime))
	return r.buffer, nil
}

// RenderPreview renders every factor-th pixel row and column into the preview buffer,
// which is ceil(width/factor) by ceil(height/factor) pixels
func (r *Renderer) RenderPreview(factor int) (*pixel.Buffer, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDownsample, factor)
	}
	width := (r.domain.Width() + factor - 1) / factor
	height := (r.domain.Height() + factor - 1) / factor
	if err := r.preview.Resize(width, height); err != nil {
		return nil, err
	}

	shader := r.shader
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := r.domain.Project(point.New(float64(x*factor), float64(y*factor)))
			r.preview.Set(y*width+x, shader.Shade(p))
		}
	}
	return r.preview, nil
}
