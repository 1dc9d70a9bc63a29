package engine

import (
	"github.com/bluenviron/gohwdec/pkg/liberrors"
)

// Status is a result code reported by an engine.
type Status int

// statuses.
const (
	StatusOK Status = iota
	StatusErrMoreData
	StatusErrMoreSurface
	StatusErrMoreBitstream
	StatusWarnDeviceBusy
	StatusWarnParamsChanged
	StatusErrIncompatibleParams
	StatusErrInvalidParams
	StatusErrMemoryAlloc
	StatusErrNotEnoughBuffer
	StatusErrInvalidHandle
	StatusErrDeviceFailed
	StatusErrDeviceLost
	StatusErrLockMemory
	StatusErrNullPtr
	StatusErrUndefinedBehavior
	StatusErrNotInitialized
	StatusErrUnsupported
	StatusErrNotFound
	StatusErrAborted
	StatusErrUnknown
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusErrMoreData:
		return "more data needed"
	case StatusErrMoreSurface:
		return "more surfaces needed"
	case StatusErrMoreBitstream:
		return "more bitstream needed"
	case StatusWarnDeviceBusy:
		return "device busy"
	case StatusWarnParamsChanged:
		return "parameters changed"
	case StatusErrIncompatibleParams:
		return "incompatible parameters"
	case StatusErrInvalidParams:
		return "invalid parameters"
	case StatusErrMemoryAlloc:
		return "memory allocation failed"
	case StatusErrNotEnoughBuffer:
		return "insufficient buffer"
	case StatusErrInvalidHandle:
		return "invalid handle"
	case StatusErrDeviceFailed:
		return "device failed"
	case StatusErrDeviceLost:
		return "device lost"
	case StatusErrLockMemory:
		return "memory lock failed"
	case StatusErrNullPtr:
		return "null pointer"
	case StatusErrUndefinedBehavior:
		return "undefined behavior"
	case StatusErrNotInitialized:
		return "not initialized"
	case StatusErrUnsupported:
		return "unsupported"
	case StatusErrNotFound:
		return "not found"
	case StatusErrAborted:
		return "aborted"
	}
	return "unknown"
}

// StatusToError translates an engine status into one of the library's error
// kinds, so that callers never observe engine-specific codes. StatusOK maps
// to nil; the more-data / more-surface / more-bitstream statuses map to
// ErrWouldBlock, which is consumed inside the decode loop and never
// surfaced.
func StatusToError(s Status) error {
	switch s {
	case StatusOK, StatusWarnDeviceBusy, StatusWarnParamsChanged:
		// warnings are not errors: the decode loop reacts to them and
		// decoding continues.
		return nil

	case StatusErrMemoryAlloc, StatusErrNotEnoughBuffer:
		return liberrors.ErrResourceExhausted{What: s.String()}

	case StatusErrInvalidHandle, StatusErrInvalidParams, StatusErrIncompatibleParams:
		return liberrors.ErrInvalidArgument{Reason: s.String()}

	case StatusErrDeviceFailed, StatusErrDeviceLost, StatusErrLockMemory:
		return liberrors.ErrIOFailure{Reason: s.String()}

	case StatusErrNullPtr, StatusErrUndefinedBehavior, StatusErrNotInitialized:
		return liberrors.ErrInternalBug{Reason: s.String()}

	case StatusErrUnsupported, StatusErrNotFound:
		return liberrors.ErrUnsupported{What: s.String()}

	case StatusErrMoreData, StatusErrMoreSurface, StatusErrMoreBitstream:
		return liberrors.ErrWouldBlock{}
	}

	return liberrors.ErrUnknown{Status: s}
}
