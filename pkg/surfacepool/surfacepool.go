// Package surfacepool contains the pool of output frame surfaces shared
// between a decode session and the decode engine.
package surfacepool

import (
	"sync/atomic"

	"github.com/bluenviron/gohwdec/pkg/liberrors"
)

// PixelBuffer is a writable region for decoded picture data, acquired from
// an external allocator.
type PixelBuffer struct {
	Data   []byte
	Stride int
}

// Allocator acquires pixel buffers for decoded frames.
type Allocator interface {
	// Acquire returns a writable buffer able to hold a picture with the
	// given geometry.
	Acquire(width int, height int) (*PixelBuffer, error)
}

// PicStruct describes the picture structure of a decoded surface.
type PicStruct uint16

// picture structure flags.
const (
	PicStructProgressive PicStruct = 1 << iota
	PicStructFieldTFF
	PicStructFieldBFF
	PicStructFieldRepeated
	PicStructFrameDoubling
	PicStructFrameTripling
)

// Surface is an output frame buffer slot. It wraps exactly one pixel buffer
// plus the geometry and picture metadata visible to the engine. While the
// engine holds a reference to it for an asynchronous decode, its locked flag
// is set and the surface must not be reused, moved or freed.
type Surface struct {
	Width  int
	Height int
	Stride int

	// set by the engine when the surface is filled.
	Timestamp int64
	PicStruct PicStruct

	buffer *PixelBuffer
	locked atomic.Bool
}

// Lock marks the surface as referenced by the engine. It is called by the
// engine binding when an asynchronous decode is submitted.
func (s *Surface) Lock() {
	s.locked.Store(true)
}

// Unlock clears the engine reference. It is called by the engine binding
// once the asynchronous decode has completed.
func (s *Surface) Unlock() {
	s.locked.Store(false)
}

// Locked reports whether the engine holds a reference to the surface.
func (s *Surface) Locked() bool {
	return s.locked.Load()
}

// Buffer returns the backing pixel buffer.
func (s *Surface) Buffer() *PixelBuffer {
	return s.buffer
}

// TakeBuffer transfers ownership of the backing pixel buffer to the caller,
// leaving the surface unbacked until Provision is called again.
func (s *Surface) TakeBuffer() *PixelBuffer {
	buf := s.buffer
	s.buffer = nil
	return buf
}

// Provision backs the surface with a fresh pixel buffer from the allocator.
func (s *Surface) Provision(al Allocator) error {
	buf, err := al.Acquire(s.Width, s.Height)
	if err != nil {
		return liberrors.ErrResourceExhausted{What: "pixel buffer: " + err.Error()}
	}

	s.buffer = buf
	s.Stride = buf.Stride
	return nil
}

// Pool owns every surface issued to the engine. It only grows; surfaces are
// released all at once on flush or close.
type Pool struct {
	// Allocator provides pixel buffers for new surfaces.
	Allocator Allocator

	// geometry of new surfaces.
	Width  int
	Height int

	surfaces []*Surface
}

// Acquire returns the first surface not referenced by the engine, allocating
// a new one when every owned surface is locked. An allocation failure means
// that no surface is currently available; it is a retryable condition, not a
// fatal one.
func (p *Pool) Acquire() (*Surface, error) {
	for _, s := range p.surfaces {
		if !s.Locked() {
			return s, nil
		}
	}

	s := &Surface{
		Width:  p.Width,
		Height: p.Height,
	}
	err := s.Provision(p.Allocator)
	if err != nil {
		return nil, err
	}

	p.surfaces = append(p.surfaces, s)
	return s, nil
}

// ReleaseAll drops every owned surface. Afterwards the pool behaves as
// freshly constructed.
func (p *Pool) ReleaseAll() {
	for _, s := range p.surfaces {
		s.TakeBuffer()
	}
	p.surfaces = nil
}

// Len returns the number of owned surfaces.
func (p *Pool) Len() int {
	return len(p.surfaces)
}
