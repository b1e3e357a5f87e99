package domain

import (
	"Frustals/point"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func newDomain(t *testing.T, width int, height int) *Domain {
	d, err := New(width, height)
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	d := newDomain(t, 300, 200)
	assert.Equal(t, point.New(0, 0), d.Origin)
	assert.Equal(t, 1.0, d.Scale)
	assert.Equal(t, 300, d.Width())
	assert.Equal(t, 200, d.Height())

	_, err := New(0, 10)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestProjectKeepsAspectRatio(t *testing.T) {
	d := newDomain(t, 400, 200)
	assert.InDelta(t, -2.0, d.Min().X, tolerance)
	assert.InDelta(t, -1.0, d.Min().Y, tolerance)
	assert.InDelta(t, 2.0, d.Max().X, tolerance)
	assert.InDelta(t, 1.0, d.Max().Y, tolerance)

	center := d.Project(point.New(200, 100))
	assert.InDelta(t, 0.0, center.X, tolerance)
	assert.InDelta(t, 0.0, center.Y, tolerance)

	d = newDomain(t, 100, 300)
	assert.InDelta(t, -1.0, d.Min().X, tolerance)
	assert.InDelta(t, -3.0, d.Min().Y, tolerance)
}

func TestProjectIsDeterministic(t *testing.T) {
	d := newDomain(t, 640, 480)
	require.NoError(t, d.Change(point.New(-0.75, 0.1), 0.3))
	for _, index := range []int{0, 1, 639, 640, 1234, 640*480 - 1} {
		assert.Equal(t, d.At(index), d.At(index))
	}
	assert.Equal(t, d.Project(point.New(12, 34)), d.At(34*640+12))
}

func TestZoomByOneIsIdentity(t *testing.T) {
	d := newDomain(t, 320, 240)
	require.NoError(t, d.Change(point.New(-0.5, 0.25), 0.8))
	for _, center := range []point.Point{{X: 0, Y: 0}, {X: 160, Y: 120}, {X: 17, Y: 230}} {
		require.NoError(t, d.Zoom(1, center))
		assert.InDelta(t, -0.5, d.Origin.X, tolerance)
		assert.InDelta(t, 0.25, d.Origin.Y, tolerance)
		assert.InDelta(t, 0.8, d.Scale, tolerance)
	}
}

func TestZoomKeepsAnchorFixed(t *testing.T) {
	d := newDomain(t, 320, 240)
	center := point.New(50, 200)
	anchor := d.Project(center)

	for _, factor := range []float64{0.5, 0.9, 1.7, 0.25, 3} {
		require.NoError(t, d.Zoom(factor, center))
		moved := d.Project(center)
		assert.InDelta(t, anchor.X, moved.X, 1e-9)
		assert.InDelta(t, anchor.Y, moved.Y, 1e-9)
	}
	assert.InDelta(t, 0.5*0.9*1.7*0.25*3, d.Scale, tolerance)
}

func TestZoomRejectsInvalidFactor(t *testing.T) {
	d := newDomain(t, 10, 10)
	assert.ErrorIs(t, d.Zoom(0, point.New(5, 5)), ErrInvalidFactor)
	assert.ErrorIs(t, d.Zoom(-2, point.New(5, 5)), ErrInvalidFactor)
	assert.Equal(t, 1.0, d.Scale)
}

func TestShiftThereAndBack(t *testing.T) {
	d := newDomain(t, 200, 100)
	require.NoError(t, d.Change(point.New(0.3, -0.2), 0.5))

	d.Shift(point.New(25, -40))
	assert.NotEqual(t, point.New(0.3, -0.2), d.Origin)
	d.Shift(point.New(-25, 40))
	assert.InDelta(t, 0.3, d.Origin.X, tolerance)
	assert.InDelta(t, -0.2, d.Origin.Y, tolerance)
}

func TestResizeKeepsViewport(t *testing.T) {
	d := newDomain(t, 200, 100)
	require.NoError(t, d.Change(point.New(1, 2), 0.125))
	require.NoError(t, d.Resize(50, 400))
	assert.Equal(t, point.New(1, 2), d.Origin)
	assert.Equal(t, 0.125, d.Scale)
	assert.Equal(t, 50, d.Width())
	assert.ErrorIs(t, d.Resize(-1, 4), ErrInvalidSize)
}

func TestChangeRejectsInvalidScale(t *testing.T) {
	d := newDomain(t, 10, 10)
	assert.ErrorIs(t, d.Change(point.New(0, 0), 0), ErrInvalidScale)
	assert.ErrorIs(t, d.Change(point.New(0, 0), -1), ErrInvalidScale)
}

func TestIterator(t *testing.T) {
	d := newDomain(t, 3, 2)
	it := d.Iterator()

	var indices []int
	var points []point.Point
	for {
		index, p, ok := it.Next()
		if !ok {
			break
		}
		indices = append(indices, index)
		points = append(points, p)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, indices)
	assert.Equal(t, d.Project(point.New(1, 0)), points[1])
	assert.Equal(t, d.Project(point.New(0, 1)), points[3])

	it.Reset()
	index, p, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, 0, index)
	assert.Equal(t, points[0], p)
}

func TestSnapshotRestore(t *testing.T) {
	d := newDomain(t, 64, 48)
	require.NoError(t, d.Change(point.New(-1.25, 0.5), 0.01))

	restored, err := Restore(d.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, d, restored)
}
