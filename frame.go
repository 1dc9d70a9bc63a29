package gohwdec

import (
	"github.com/bluenviron/gohwdec/pkg/surfacepool"
)

// Frame is a decoded video frame. Ownership of the pixel buffer transfers
// to the caller.
type Frame struct {
	// decoded picture data.
	Buffer *surfacepool.PixelBuffer

	// presentation timestamp, or NoTimestamp.
	PTS int64

	// reconstructed decode timestamp, or NoTimestamp.
	DTS int64

	// display dimensions.
	Width  int
	Height int

	// whether the frame is interlaced.
	Interlaced bool

	// whether the top field must be displayed first.
	TopFieldFirst bool

	// how many times the frame must be repeated during display:
	// 1 for field repetition, 2 for frame doubling, 4 for frame tripling.
	RepeatPict int
}
