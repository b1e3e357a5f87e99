package pixel

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, Pixel{R: 0, G: 255, B: 128, A: 255}, FromFloat(-12, 300, 127.6))
	assert.Equal(t, Pixel{R: 0, G: 0, B: 0, A: 255}, FromFloat(math.NaN(), math.Inf(-1), 0))
	assert.Equal(t, uint8(255), FromFloat(math.Inf(1), 0, 0).R)
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, Pixel{R: 10, G: 20, B: 30, A: 255}, FromColor(color.RGBA{R: 10, G: 20, B: 30, A: 255}))
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 4}, Pixel{R: 1, G: 2, B: 3, A: 4}.RGBA())
}

func TestBufferResize(t *testing.T) {
	b, err := NewBuffer(4, 3)
	require.NoError(t, err)
	assert.Len(t, b.Bytes(), 4*3*4)
	assert.Equal(t, 12, b.Len())

	require.NoError(t, b.Resize(7, 5))
	assert.Len(t, b.Bytes(), 7*5*4)
	assert.Equal(t, 7, b.Width())
	assert.Equal(t, 5, b.Height())

	require.NoError(t, b.Resize(2, 2))
	assert.Len(t, b.Bytes(), 2*2*4)

	assert.ErrorIs(t, b.Resize(-1, 2), ErrInvalidSize)
}

func TestBufferSetAt(t *testing.T) {
	b, err := NewBuffer(3, 2)
	require.NoError(t, err)

	p := Pixel{R: 1, G: 2, B: 3, A: 4}
	b.Set(4, p)
	assert.Equal(t, p, b.At(4))
	assert.Equal(t, []uint8{1, 2, 3, 4}, b.Bytes()[16:20])
	assert.Equal(t, Void, b.At(0))

	// x = 1, y = 1 is index 4
	assert.Equal(t, p.RGBA(), b.Image().RGBAAt(1, 1))

	b.Clear(Background)
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, Background, b.At(i))
	}
}

func TestBufferCopy(t *testing.T) {
	b, err := NewBuffer(2, 2)
	require.NoError(t, err)
	c := b.Copy()
	b.Set(0, Background)
	assert.Equal(t, Void, c.At(0))
}
