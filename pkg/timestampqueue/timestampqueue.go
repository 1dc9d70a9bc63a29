// Package timestampqueue contains a queue that correlates submission-order
// presentation timestamps with decode-order output.
package timestampqueue

import (
	"fmt"
	"math"

	"github.com/bluenviron/gohwdec/pkg/liberrors"
)

// NoTimestamp is the sentinel of an unknown timestamp. A slot whose
// presentation timestamp is NoTimestamp is considered free.
const NoTimestamp int64 = math.MinInt64

// reordering headroom for a GOP with leading reference frames, like
// I[31]P[30]B[29]B[28] ... B[1]B[0] (numbers are display order).
const reorderHeadroom = 32

type slot struct {
	pts int64
	dts int64
}

// Queue is a logical circular buffer of (presentation timestamp, decode
// timestamp) pairs. Entries are inserted in submission order and retrieved
// in decode order. Its size grows at two specific points in the session's
// life, to accommodate the decoder's fixed pipeline delay and its frame
// reordering depth.
type Queue struct {
	slots        []slot
	putCount     int
	decodedCount int
}

// New allocates a Queue.
func New(size int) *Queue {
	if size < 1 {
		size = 1
	}

	q := &Queue{
		slots: make([]slot, size),
	}
	q.ResetAll()
	return q
}

func (q *Queue) grow(size int) {
	old := len(q.slots)

	slots := make([]slot, size)
	copy(slots, q.slots)
	for i := old; i < size; i++ {
		slots[i] = slot{pts: NoTimestamp, dts: NoTimestamp}
	}
	q.slots = slots
}

// Put records the timestamp pair of a submitted packet.
func (q *Queue) Put(pts int64, dts int64) {
	if q.decodedCount == 0 && q.putCount == len(q.slots) {
		// no frame decoded yet although the queue is full: output lags
		// input by the decoder pipeline delay. Double the size.
		q.grow(len(q.slots) * 2)
	} else if q.decodedCount == 1 && len(q.slots) < q.putCount+reorderHeadroom {
		// first frame decoded: provision headroom for frame reordering.
		q.grow(q.putCount + reorderHeadroom)
	}

	i := q.putCount % len(q.slots)
	q.slots[i] = slot{pts: pts, dts: dts}
	q.putCount++
}

// Get retrieves the decode timestamp paired with the given presentation
// timestamp, marking the entry as consumed. Asking for NoTimestamp is valid
// and returns NoTimestamp, since some frames carry no presentation
// timestamp. Asking for a timestamp that matches no live entry reveals a
// submission/retrieval accounting defect and is fatal to the session.
//
// When the same presentation timestamp has been submitted twice without an
// intervening retrieval, the live entry in the lowest-numbered slot wins.
func (q *Queue) Get(pts int64) (int64, error) {
	if pts == NoTimestamp {
		return NoTimestamp, nil
	}

	for i := range q.slots {
		if q.slots[i].pts == pts {
			q.slots[i].pts = NoTimestamp
			return q.slots[i].dts, nil
		}
	}

	return 0, liberrors.ErrInternalBug{
		Reason: fmt.Sprintf("presentation timestamp %d does not match any entry", pts),
	}
}

// MarkDecoded records that a frame has been decoded. The decoded count
// drives the growth policy of Put.
func (q *Queue) MarkDecoded() {
	q.decodedCount++
}

// ResetAll marks every slot as free without changing the queue size.
func (q *Queue) ResetAll() {
	for i := range q.slots {
		q.slots[i] = slot{pts: NoTimestamp, dts: NoTimestamp}
	}
}

// Size returns the number of slots.
func (q *Queue) Size() int {
	return len(q.slots)
}

// PutCount returns the number of entries submitted so far.
func (q *Queue) PutCount() int {
	return q.putCount
}
