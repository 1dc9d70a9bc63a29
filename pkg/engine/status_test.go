package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/gohwdec/pkg/liberrors"
)

func TestStatusToError(t *testing.T) {
	for _, ca := range []struct {
		name     string
		statuses []Status
		err      error
	}{
		{
			"success",
			[]Status{StatusOK},
			nil,
		},
		{
			"warnings",
			[]Status{StatusWarnDeviceBusy, StatusWarnParamsChanged},
			nil,
		},
		{
			"resource exhausted",
			[]Status{StatusErrMemoryAlloc, StatusErrNotEnoughBuffer},
			liberrors.ErrResourceExhausted{},
		},
		{
			"invalid argument",
			[]Status{StatusErrInvalidHandle, StatusErrInvalidParams, StatusErrIncompatibleParams},
			liberrors.ErrInvalidArgument{},
		},
		{
			"i/o failure",
			[]Status{StatusErrDeviceFailed, StatusErrDeviceLost, StatusErrLockMemory},
			liberrors.ErrIOFailure{},
		},
		{
			"internal bug",
			[]Status{StatusErrNullPtr, StatusErrUndefinedBehavior, StatusErrNotInitialized},
			liberrors.ErrInternalBug{},
		},
		{
			"unsupported",
			[]Status{StatusErrUnsupported, StatusErrNotFound},
			liberrors.ErrUnsupported{},
		},
		{
			"would block",
			[]Status{StatusErrMoreData, StatusErrMoreSurface, StatusErrMoreBitstream},
			liberrors.ErrWouldBlock{},
		},
		{
			"unknown",
			[]Status{StatusErrAborted, StatusErrUnknown, Status(9999)},
			liberrors.ErrUnknown{},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			for _, st := range ca.statuses {
				err := StatusToError(st)
				if ca.err == nil {
					require.NoError(t, err)
				} else {
					require.IsType(t, ca.err, err)
				}
			}
		})
	}
}
