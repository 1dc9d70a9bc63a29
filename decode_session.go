/*
Package gohwdec implements the control layer of a hardware-accelerated video
decode session: it negotiates codec parameters with an asynchronous decode
engine, feeds it compressed data, manages the pool of output frame surfaces
the engine writes into, and reconstructs presentation/decode timestamps for
frames that emerge out of submission order.

The engine itself is an external collaborator, abstracted by the interfaces
in pkg/engine; this library does not bind to any concrete hardware vendor
API.
*/
package gohwdec

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/bluenviron/gohwdec/pkg/bitstream"
	"github.com/bluenviron/gohwdec/pkg/engine"
	"github.com/bluenviron/gohwdec/pkg/liberrors"
	"github.com/bluenviron/gohwdec/pkg/seqheader"
	"github.com/bluenviron/gohwdec/pkg/surfacepool"
	"github.com/bluenviron/gohwdec/pkg/timestampqueue"
)

const (
	defaultAsyncDepth        = 4
	defaultBusyTimeout       = 500 * time.Millisecond
	defaultCompletionTimeout = 60 * time.Second

	// how long to sleep between submissions while the device is busy.
	busyPollInterval = 1 * time.Millisecond
)

// DecodeSession is a hardware decode session, from parameter negotiation to
// close. Its methods are not safe for concurrent use and must be serialized
// by the caller; the only concurrency involved is the engine's asynchronous
// execution of in-flight decode operations.
type DecodeSession struct {
	//
	// parameters (all optional except Engine, Allocator, Codec)
	//
	// Engine is the decode engine binding. Mandatory.
	Engine engine.Engine
	// Allocator provides pixel buffers for decoded frames. Mandatory.
	Allocator surfacepool.Allocator
	// Codec of the incoming stream.
	Codec Codec
	// number of decode operations the engine may keep in flight.
	// It defaults to 4.
	AsyncDepth int
	// cumulative time budget for busy-device retries, after which Decode
	// fails. It defaults to 500 milliseconds.
	BusyTimeout time.Duration
	// how long to wait for an in-flight decode operation to complete
	// before treating it as a fatal stall. It defaults to 60 seconds.
	CompletionTimeout time.Duration
	// called with human-readable information about the session.
	OnInfo func(string)

	//
	// private
	//
	sessionID   uuid.UUID
	ses         engine.Session
	engineCodec engine.CodecID
	par         engine.Params
	negotiated  bool
	needsReinit bool
	lastStatus  engine.Status
	bs          *bitstream.Buffer
	pool        *surfacepool.Pool
	tsq         *timestampqueue.Queue
	pending     packetQueue
}

// Initialize validates the configuration and opens the engine session.
// Parameter negotiation with the stream (sequence header decoding, surface
// count query, timestamp queue sizing) happens on the first Decode call that
// carries data.
func (ds *DecodeSession) Initialize() error {
	if ds.Engine == nil {
		return fmt.Errorf("Engine is mandatory")
	}
	if ds.Allocator == nil {
		return fmt.Errorf("Allocator is mandatory")
	}

	ecodec, err := ds.Codec.engineID()
	if err != nil {
		return err
	}
	ds.engineCodec = ecodec

	if ds.AsyncDepth == 0 {
		ds.AsyncDepth = defaultAsyncDepth
	}
	if ds.BusyTimeout == 0 {
		ds.BusyTimeout = defaultBusyTimeout
	}
	if ds.CompletionTimeout == 0 {
		ds.CompletionTimeout = defaultCompletionTimeout
	}

	ses, st := ds.Engine.InitSession()
	err = engine.StatusToError(st)
	if err != nil {
		return err
	}
	ds.ses = ses

	ds.sessionID = uuid.New()

	if ds.OnInfo != nil {
		ds.OnInfo(fmt.Sprintf("using %s decode engine implementation",
			ses.ImplementationKind()))
	}

	ds.bs = &bitstream.Buffer{}
	ds.lastStatus = engine.StatusErrMoreData

	return nil
}

// SessionID returns the unique identifier of the session.
func (ds *DecodeSession) SessionID() uuid.UUID {
	return ds.sessionID
}

// Params returns the negotiated stream parameters. They are meaningful only
// after negotiation has completed.
func (ds *DecodeSession) Params() engine.Params {
	return ds.par
}

// NeedsReinit reports whether the stream carried an incompatible parameter
// change. Once buffered frames have been drained through Decode, the caller
// must invoke Reinit before submitting further data.
func (ds *DecodeSession) NeedsReinit() bool {
	return ds.needsReinit
}

// peekBuffered returns a view of every buffered-but-undecoded byte: the
// bitstream content followed by pending packet payloads.
func (ds *DecodeSession) peekBuffered() []byte {
	view := append([]byte(nil), ds.bs.Bytes()...)
	for _, p := range ds.pending.packets {
		view = append(view, p.Data...)
	}
	return view
}

// tryNegotiate attempts to negotiate stream parameters from buffered data.
// It returns false when more data is needed.
func (ds *DecodeSession) tryNegotiate() (bool, error) {
	view := ds.peekBuffered()
	if len(view) == 0 {
		return false, nil
	}

	var sniffed *seqheader.Params
	if seqheader.Sniffable(ds.engineCodec) {
		sniffed = seqheader.Sniff(ds.engineCodec, view)
		if sniffed == nil {
			// no sequence header buffered yet, do not bother the
			// engine.
			return false, nil
		}
	}

	par := engine.Params{
		Codec:      ds.engineCodec,
		IOPattern:  engine.IOPatternSystemMemory,
		AsyncDepth: ds.AsyncDepth,
	}

	// the engine parses the header from a scratch view; the actual bytes
	// are submitted again by the decode loop.
	hdr := &bitstream.Buffer{}
	hdr.Enqueue(view)

	st := ds.ses.DecodeHeader(hdr, &par)
	if st == engine.StatusErrMoreData {
		return false, nil
	}
	err := engine.StatusToError(st)
	if err != nil {
		return false, err
	}

	// back-fill fields a minimal engine leaves unset.
	if sniffed != nil {
		if par.Width == 0 {
			par.Width, par.Height = sniffed.Width, sniffed.Height
		}
		if par.FrameRateNum == 0 && sniffed.FPS > 0 {
			par.FrameRateNum = int(math.Round(sniffed.FPS * 1000))
			par.FrameRateDen = 1000
		}
	}
	if par.CropWidth == 0 {
		par.CropWidth, par.CropHeight = par.Width, par.Height
	}

	nsurf, st := ds.ses.QueryIOSurf(&par)
	err = engine.StatusToError(st)
	if err != nil {
		return false, err
	}

	ds.tsq = timestampqueue.New(nsurf + par.AsyncDepth)
	ds.pool = &surfacepool.Pool{
		Allocator: ds.Allocator,
		Width:     par.Width,
		Height:    par.Height,
	}

	st = ds.ses.InitDecoder(&par)
	err = engine.StatusToError(st)
	if err != nil {
		return false, err
	}

	ds.par = par
	ds.negotiated = true
	ds.lastStatus = engine.StatusErrMoreData

	return true, nil
}

// Decode submits a compressed packet and returns a decoded frame, if one is
// ready. A nil frame with a nil error means that no frame is ready yet; the
// decoder may be accumulating its pipeline delay or waiting for more data.
// The returned count is the number of bytes accepted from the given packet.
//
// Passing a packet with an empty payload signals end of stream: each
// following call drains one buffered frame until none remain.
func (ds *DecodeSession) Decode(pkt *Packet) (*Frame, int, error) {
	if ds.ses == nil {
		return nil, 0, fmt.Errorf("session is not initialized")
	}

	var size int
	if pkt != nil {
		size = len(pkt.Data)
	}
	if size > 0 {
		ds.pending.push(pkt)
	}

	if !ds.negotiated {
		ok, err := ds.tryNegotiate()
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			// packet buffered, waiting for a sequence header.
			return nil, size, nil
		}
	}

	// when a reinitialization is pending, the bitstream is treated as
	// exhausted: buffered frames are drained before the caller rebuilds
	// the session.
	submit := !ds.needsReinit

	var outSurf *surfacepool.Surface
	var job engine.Job
	busy := time.Duration(0)

	st := ds.lastStatus

loop:
	for {
		switch st {
		case engine.StatusErrMoreData:
			switch {
			case !submit:
				// drain completed.
				break loop

			case ds.pending.len() > 0:
				p, _ := ds.pending.pop()
				ds.tsq.Put(p.PTS, p.DTS)
				ds.bs.SetTimestamp(p.PTS)
				ds.bs.Enqueue(p.Data)

			case size == 0:
				// end of stream: drain buffered frames.
				submit = false

			default:
				// no work currently available.
				break loop
			}

		case engine.StatusWarnParamsChanged:
			// the new sequence header is compatible, decoding
			// continues transparently.

		case engine.StatusErrIncompatibleParams:
			if !submit {
				return nil, 0, liberrors.ErrInternalBug{
					Reason: "incompatible parameter change while already draining",
				}
			}
			// drain buffered frames, then let the caller
			// reinitialize.
			submit = false
			ds.needsReinit = true
		}

		insurf, err := ds.pool.Acquire()
		if err != nil {
			// no surface currently available; the caller retries
			// with a later call.
			break loop
		}

		bsArg := ds.bs
		if !submit {
			bsArg = nil
		}

		outSurf, job, st = ds.ses.DecodeFrameAsync(bsArg, insurf)

		if st == engine.StatusWarnDeviceBusy {
			if busy > ds.BusyTimeout {
				return nil, 0, liberrors.ErrIOFailure{
					Reason: "device busy timeout",
				}
			}
			time.Sleep(busyPollInterval)
			busy += busyPollInterval
		} else {
			busy = 0
		}

		switch st {
		case engine.StatusErrMoreData, engine.StatusErrMoreSurface,
			engine.StatusWarnDeviceBusy, engine.StatusWarnParamsChanged,
			engine.StatusErrIncompatibleParams:
			continue
		}

		break loop
	}

	ds.lastStatus = st

	if st != engine.StatusErrMoreData { // not an error: no frame ready yet
		err := engine.StatusToError(st)
		if _, ok := err.(liberrors.ErrWouldBlock); ok {
			err = nil
		}
		if err != nil {
			return nil, 0, err
		}
	}

	var frame *Frame
	if job != nil {
		frame2, err := ds.finishJob(job, outSurf)
		if err != nil {
			return nil, 0, err
		}
		frame = frame2
	}

	return frame, size, nil
}

// finishJob waits for an in-flight decode operation, correlates its output
// timestamp and moves the surface's pixel buffer into a caller-owned frame.
func (ds *DecodeSession) finishJob(job engine.Job, outSurf *surfacepool.Surface) (*Frame, error) {
	st := ds.ses.WaitJob(job, ds.CompletionTimeout)
	if st != engine.StatusOK {
		return nil, liberrors.ErrIOFailure{
			Reason: "decode operation stalled: " + st.String(),
		}
	}

	dts, err := ds.tsq.Get(outSurf.Timestamp)
	if err != nil {
		return nil, err
	}

	// move the pixel buffer out of the surface and back the surface with
	// a fresh one, so that it can be reused by the engine.
	buf := outSurf.TakeBuffer()
	err = outSurf.Provision(ds.Allocator)
	if err != nil {
		return nil, err
	}

	ds.tsq.MarkDecoded()

	ps := outSurf.PicStruct
	repeat := 0
	switch {
	case ps&surfacepool.PicStructFrameTripling != 0:
		repeat = 4
	case ps&surfacepool.PicStructFrameDoubling != 0:
		repeat = 2
	case ps&surfacepool.PicStructFieldRepeated != 0:
		repeat = 1
	}

	return &Frame{
		Buffer:        buf,
		PTS:           outSurf.Timestamp,
		DTS:           dts,
		Width:         ds.par.CropWidth,
		Height:        ds.par.CropHeight,
		Interlaced:    ps&surfacepool.PicStructProgressive == 0,
		TopFieldFirst: ps&surfacepool.PicStructFieldTFF != 0,
		RepeatPict:    repeat,
	}, nil
}

// Reinit tears down and rebuilds the session in place, after an
// incompatible mid-stream parameter change. Buffered-but-unsubmitted packets
// are preserved and negotiation restarts from them.
func (ds *DecodeSession) Reinit() error {
	if ds.ses == nil {
		return fmt.Errorf("session is not initialized")
	}

	ds.ses.Close()

	if ds.pool != nil {
		ds.pool.ReleaseAll()
		ds.pool = nil
	}
	ds.tsq = nil
	ds.negotiated = false
	ds.needsReinit = false
	ds.lastStatus = engine.StatusErrMoreData

	ses, st := ds.Engine.InitSession()
	err := engine.StatusToError(st)
	if err != nil {
		return err
	}
	ds.ses = ses

	// negotiation runs immediately when the new sequence header is
	// already buffered, otherwise it resumes on the next Decode call.
	_, err = ds.tryNegotiate()
	return err
}

// Flush resets the session in place without destroying it, discarding every
// buffered packet and frame. It is used on stream discontinuities, like
// seeks.
func (ds *DecodeSession) Flush() error {
	if ds.ses == nil {
		return fmt.Errorf("session is not initialized")
	}

	ds.bs.Reset()
	ds.pending.clear()

	if !ds.negotiated {
		return nil
	}

	st := ds.ses.ResetDecoder(&ds.par)
	err := engine.StatusToError(st)

	ds.pool.ReleaseAll()
	ds.tsq.ResetAll()

	return err
}

// Close terminates the engine session and releases every owned resource.
func (ds *DecodeSession) Close() error {
	var err error
	if ds.ses != nil {
		err = engine.StatusToError(ds.ses.Close())
		ds.ses = nil
	}

	if ds.pool != nil {
		ds.pool.ReleaseAll()
		ds.pool = nil
	}
	ds.tsq = nil
	ds.pending.clear()
	ds.negotiated = false

	return err
}
