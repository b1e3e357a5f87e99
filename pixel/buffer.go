package pixel

import (
	"errors"
	"fmt"
	"image"
)

const BytesPerPixel = 4

var ErrInvalidSize = errors.New("buffer dimensions must not be negative")

// Buffer is a flat row-major RGBA store, pixel (x, y) lives at index y·width + x and
// its bytes at 4·index. The host reads it through Bytes or Image.
type Buffer struct {
	width  int
	height int
	data   []uint8
}

func NewBuffer(width int, height int) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize reallocates the store when the pixel count changes, the content is undefined afterwards
func (b *Buffer) Resize(width int, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	size := width * height * BytesPerPixel
	if cap(b.data) >= size {
		b.data = b.data[:size]
	} else {
		b.data = make([]uint8, size)
	}
	b.width = width
	b.height = height
	return nil
}

func (b *Buffer) Width() int {
	return b.width
}

func (b *Buffer) Height() int {
	return b.height
}

// Len is the number of pixels
func (b *Buffer) Len() int {
	return b.width * b.height
}

// Bytes exposes the backing store, 4 bytes per pixel
func (b *Buffer) Bytes() []uint8 {
	return b.data
}

func (b *Buffer) Set(index int, p Pixel) {
	i := index * BytesPerPixel
	s := b.data[i : i+BytesPerPixel : i+BytesPerPixel]
	s[0] = p.R
	s[1] = p.G
	s[2] = p.B
	s[3] = p.A
}

func (b *Buffer) At(index int) Pixel {
	i := index * BytesPerPixel
	s := b.data[i : i+BytesPerPixel : i+BytesPerPixel]
	return Pixel{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Clear fills every pixel with p
func (b *Buffer) Clear(p Pixel) {
	for i := 0; i < b.Len(); i++ {
		b.Set(i, p)
	}
}

// Image wraps the backing store without copying, writes to either are shared
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.width * BytesPerPixel,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// Copy returns an independent copy of the buffer
func (b *Buffer) Copy() *Buffer {
	data := make([]uint8, len(b.data))
	copy(data, b.data)
	return &Buffer{width: b.width, height: b.height, data: data}
}
