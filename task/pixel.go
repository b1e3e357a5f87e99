package task

import (
	"Frustals/pixel"
	"fmt"
)

// Result is the color computed for one pixel index of a frame
type Result struct {
	Index int
	Pixel pixel.Pixel
}

func (r *Result) String() string {
	output := "{Result "
	output += fmt.Sprintf("Index: %d ", r.Index)
	output += fmt.Sprintf("Pixel: %s}", r.Pixel)
	return output
}
