package coordinator

import (
	"Frustals/domain"
	"Frustals/misc"
	"errors"
	"math"
)

var ErrInvalidTransition = errors.New("invalid transition")

// transitionSettings describes a zoom from one viewport to another. The scale changes by
// ScaleStep every frame, the origin glides with an exponential easing.
type transitionSettings struct {
	EndScale   float64
	EndX       float64
	EndY       float64
	FrameCount int
	ScaleStep  float64
	StartScale float64
	StartX     float64
	StartY     float64
}

func (ts *transitionSettings) Verify() error {
	if ts.StartScale <= 0 || math.IsNaN(ts.StartScale) || math.IsInf(ts.StartScale, 0) {
		ts.StartScale = 1
	}
	if ts.EndScale <= 0 || math.IsNaN(ts.EndScale) || math.IsInf(ts.EndScale, 0) {
		ts.EndScale = ts.StartScale
	}
	if ts.ScaleStep <= 1 {
		ts.ScaleStep = 1.1
	}

	/*
	 * The scale changes by a constant factor every frame
	 *
	 * i.e.
	 * scale_start * scale_step^n = scale_end
	 * n = |log(scale_end / scale_start)| / log(scale_step)
	 *
	 * plus one so both ends are rendered
	 */
	ts.FrameCount = int(math.Ceil(math.Abs(math.Log(ts.EndScale/ts.StartScale))/math.Log(ts.ScaleStep))) + 1
	if ts.FrameCount < 1 {
		return ErrInvalidTransition
	}
	return nil
}

// zoomingIn reports whether the transition magnifies, a smaller scale shows less of the plane
func (ts *transitionSettings) zoomingIn() bool {
	return ts.EndScale < ts.StartScale
}

// Frame returns the viewport of frame i in [0, FrameCount)
func (ts *transitionSettings) Frame(i int, width int, height int) domain.Snapshot {
	t := 0.0
	if ts.FrameCount > 1 {
		t = float64(i) / float64(ts.FrameCount-1)
	}

	// Moving early while zoomed out keeps the target in view once zoomed in
	eased := misc.EaseInExpo(t)
	if ts.zoomingIn() {
		eased = misc.EaseOutExpo(t)
	}

	return domain.Snapshot{
		OriginX: misc.LerpFloat64(ts.StartX, ts.EndX, eased),
		OriginY: misc.LerpFloat64(ts.StartY, ts.EndY, eased),
		Scale:   misc.LerpLog(ts.StartScale, ts.EndScale, t),
		Width:   width,
		Height:  height,
	}
}
