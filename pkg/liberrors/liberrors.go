// Package liberrors contains errors returned by the library.
package liberrors

import (
	"fmt"
)

// ErrResourceExhausted is returned when a memory or surface allocation fails.
type ErrResourceExhausted struct {
	What string
}

// Error implements the error interface.
func (e ErrResourceExhausted) Error() string {
	return fmt.Sprintf("resource exhausted: %s", e.What)
}

// ErrInvalidArgument is returned when the engine rejects a handle or parameter.
type ErrInvalidArgument struct {
	Reason string
}

// Error implements the error interface.
func (e ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// ErrIOFailure is returned when the decode device fails, is lost, or stays
// busy beyond the configured timeout. The session can usually be recovered
// by reinitializing it or by closing and reopening it.
type ErrIOFailure struct {
	Reason string
}

// Error implements the error interface.
func (e ErrIOFailure) Error() string {
	return fmt.Sprintf("i/o failure: %s", e.Reason)
}

// ErrInternalBug is returned when an internal invariant is broken, for
// instance when timestamp accounting does not match submissions. The session
// must not be used for decoding after receiving it.
type ErrInternalBug struct {
	Reason string
}

// Error implements the error interface.
func (e ErrInternalBug) Error() string {
	return fmt.Sprintf("internal bug: %s", e.Reason)
}

// ErrUnsupported is returned when a codec or operation is not supported by
// the engine.
type ErrUnsupported struct {
	What string
}

// Error implements the error interface.
func (e ErrUnsupported) Error() string {
	return fmt.Sprintf("unsupported: %s", e.What)
}

// ErrWouldBlock corresponds to the engine asking for more data, more
// surfaces or more bitstream. It is a control signal consumed inside the
// decode loop and is never returned to callers of the library.
type ErrWouldBlock struct{}

// Error implements the error interface.
func (e ErrWouldBlock) Error() string {
	return "operation would block"
}

// ErrUnknown is returned when the engine reports a status with no known
// meaning.
type ErrUnknown struct {
	Status fmt.Stringer
}

// Error implements the error interface.
func (e ErrUnknown) Error() string {
	return fmt.Sprintf("unknown engine status: %v", e.Status)
}
