// Package engine contains the interface between the library and an
// asynchronous hardware decode engine binding.
package engine

import (
	"time"

	"github.com/bluenviron/gohwdec/pkg/bitstream"
	"github.com/bluenviron/gohwdec/pkg/surfacepool"
)

// CodecID is a compressed video format understood by an engine.
type CodecID int

// codec IDs.
const (
	CodecAVC CodecID = iota
	CodecHEVC
	CodecMPEG2
	CodecVC1
)

// String implements fmt.Stringer.
func (c CodecID) String() string {
	switch c {
	case CodecAVC:
		return "AVC"
	case CodecHEVC:
		return "HEVC"
	case CodecMPEG2:
		return "MPEG2"
	case CodecVC1:
		return "VC1"
	}
	return "unknown"
}

// IOPattern is the memory type used for decoded frames.
type IOPattern int

// IO patterns.
const (
	IOPatternSystemMemory IOPattern = iota
	IOPatternVideoMemory
)

// ImplementationKind describes how an engine performs decoding.
type ImplementationKind int

// implementation kinds.
const (
	ImplementationUnknown ImplementationKind = iota
	ImplementationSoftware
	ImplementationHardware
)

// String implements fmt.Stringer.
func (k ImplementationKind) String() string {
	switch k {
	case ImplementationSoftware:
		return "software"
	case ImplementationHardware:
		return "hardware"
	}
	return "unknown"
}

// Params are the negotiated parameters of a decode session. DecodeHeader
// fills them from the stream's sequence header; they are then passed to
// InitDecoder, QueryIOSurf and ResetDecoder.
type Params struct {
	Codec CodecID

	// coded dimensions.
	Width  int
	Height int

	// crop rectangle (display region).
	CropX      int
	CropY      int
	CropWidth  int
	CropHeight int

	FrameRateNum int
	FrameRateDen int

	IOPattern  IOPattern
	AsyncDepth int
}

// Job is an opaque token representing an in-flight, not-yet-complete
// asynchronous decode operation.
type Job interface{}

// Engine is the entry point of an asynchronous decode engine binding.
type Engine interface {
	// InitSession opens a new engine session.
	InitSession() (Session, Status)
}

// Session is a configured engine session. None of its methods are safe for
// concurrent use; the session object that owns it serializes every call.
type Session interface {
	// ImplementationKind reports whether decoding is performed in
	// hardware or in software.
	ImplementationKind() ImplementationKind

	// DecodeHeader parses the stream's sequence header from the given
	// bitstream view and fills par. It returns StatusErrMoreData when no
	// complete sequence header is available yet.
	DecodeHeader(bs *bitstream.Buffer, par *Params) Status

	// QueryIOSurf returns the suggested number of output surfaces for
	// the given parameters.
	QueryIOSurf(par *Params) (int, Status)

	// InitDecoder initializes the decoder with negotiated parameters.
	InitDecoder(par *Params) Status

	// DecodeFrameAsync submits a decode operation. The engine consumes
	// bytes from bs, writes into surf and locks it until the operation
	// completes. A nil bs asks the engine to drain internally buffered
	// frames. When an output frame is scheduled, it returns the surface
	// that will hold it along with a completion token.
	DecodeFrameAsync(bs *bitstream.Buffer, surf *surfacepool.Surface) (*surfacepool.Surface, Job, Status)

	// WaitJob blocks until the given operation completes or the timeout
	// expires.
	WaitJob(job Job, timeout time.Duration) Status

	// ResetDecoder resets the decoder's internal state without
	// destroying the session.
	ResetDecoder(par *Params) Status

	// Close terminates the session.
	Close() Status
}
