package domain

import (
	"Frustals/point"
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidScale  = errors.New("scale must be a positive finite number")
	ErrInvalidFactor = errors.New("zoom factor must be a positive finite number")
	ErrInvalidSize   = errors.New("canvas width and height must be positive")
)

// Domain maps canvas pixels onto the complex plane.
//
// Scale is the half extent of the visible plane along the shorter canvas axis, the longer
// axis is stretched by the aspect ratio so circles stay circular. Pixel (0, 0) is the top
// left corner of the canvas and maps to the smallest real and imaginary values on screen.
type Domain struct {
	Origin point.Point
	Scale  float64
	Size   point.Point
}

// Snapshot is the serializable state of a Domain, handed to workers with every task
type Snapshot struct {
	OriginX float64
	OriginY float64
	Scale   float64
	Width   int
	Height  int
}

func New(width int, height int) (*Domain, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new domain %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Domain{
		Origin: point.New(0, 0),
		Scale:  1,
		Size:   point.New(float64(width), float64(height)),
	}, nil
}

func Restore(s Snapshot) (*Domain, error) {
	d, err := New(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	if err = d.Change(point.New(s.OriginX, s.OriginY), s.Scale); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Domain) Snapshot() Snapshot {
	return Snapshot{
		OriginX: d.Origin.X,
		OriginY: d.Origin.Y,
		Scale:   d.Scale,
		Width:   d.Width(),
		Height:  d.Height(),
	}
}

func (d *Domain) Width() int {
	return int(d.Size.X)
}

func (d *Domain) Height() int {
	return int(d.Size.Y)
}

// Resize only changes the canvas, the viewport is left alone and the content reflows
func (d *Domain) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, ErrInvalidSize)
	}
	d.Size = point.New(float64(width), float64(height))
	return nil
}

func (d *Domain) scalePoint() point.Point {
	aspect := math.Max(d.Size.X, d.Size.Y) / math.Min(d.Size.X, d.Size.Y)
	if d.Size.X > d.Size.Y {
		return point.New(d.Scale*aspect, d.Scale)
	}
	return point.New(d.Scale, d.Scale*aspect)
}

func (d *Domain) projectedOrigin() point.Point {
	return d.Origin.Sub(d.scalePoint())
}

// Project converts a pixel coordinate into a point on the plane
func (d *Domain) Project(p point.Point) point.Point {
	return d.projectedOrigin().Add(p.Scale(2).Mul(d.scalePoint()).Div(d.Size))
}

// At projects the pixel stored at a row-major buffer index
func (d *Domain) At(index int) point.Point {
	width := d.Width()
	return d.Project(point.New(float64(index%width), float64(index/width)))
}

// Min is the plane point under the top left corner of the canvas
func (d *Domain) Min() point.Point {
	return d.projectedOrigin()
}

// Max is the plane point under the bottom right corner of the canvas
func (d *Domain) Max() point.Point {
	return d.Origin.Add(d.scalePoint())
}

// Shift pans the viewport by a pixel delta
func (d *Domain) Shift(p point.Point) {
	d.Origin = d.Origin.Add(d.Project(p).Sub(d.projectedOrigin()))
}

// Zoom multiplies the scale by factor while keeping the plane point under the center pixel
// fixed. A factor below 1 zooms in.
func (d *Domain) Zoom(factor float64, center point.Point) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("zoom by %g: %w", factor, ErrInvalidFactor)
	}

	// The delta is the same on both axes since the shorter side is used for the span
	span := (factor - 1) * math.Min(d.Size.X, d.Size.Y) / 2
	delta := d.Project(point.New(span, span)).Sub(d.projectedOrigin())

	anchor := d.Project(center).Sub(d.Origin)
	d.Origin = d.Origin.Sub(delta.Mul(anchor).Scale(1 / d.Scale))
	d.Scale += math.Min(delta.X, delta.Y)
	return nil
}

// Change sets the viewport absolutely, used to restore bookmarks and presets
func (d *Domain) Change(origin point.Point, scale float64) error {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return fmt.Errorf("change scale to %g: %w", scale, ErrInvalidScale)
	}
	d.Origin = origin
	d.Scale = scale
	return nil
}

// Iterator walks every pixel of the canvas row-major with x varying fastest
type Iterator struct {
	domain *Domain
	index  int
	count  int
}

func (d *Domain) Iterator() *Iterator {
	return &Iterator{
		domain: d,
		count:  d.Width() * d.Height(),
	}
}

// Next returns the buffer index and the plane point of the next pixel
func (it *Iterator) Next() (int, point.Point, bool) {
	if it.index >= it.count {
		return it.index, point.Point{}, false
	}
	index := it.index
	it.index++
	return index, it.domain.At(index), true
}

// Reset restarts the walk and picks up any resize made in between
func (it *Iterator) Reset() {
	it.index = 0
	it.count = it.domain.Width() * it.domain.Height()
}
