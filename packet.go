package gohwdec

import (
	"github.com/bluenviron/gohwdec/pkg/timestampqueue"
)

// NoTimestamp is the sentinel of an unknown presentation or decode
// timestamp.
const NoTimestamp = timestampqueue.NoTimestamp

// Packet is a discrete unit of compressed video handed to a DecodeSession.
// Ownership of the payload transfers to the session. A Packet with an empty
// payload signals that no more input will follow, making the session drain
// its buffered frames.
type Packet struct {
	// compressed payload.
	Data []byte

	// presentation timestamp, or NoTimestamp.
	PTS int64

	// decode timestamp, or NoTimestamp.
	DTS int64
}

// packetQueue is an ordered sequence of packets awaiting submission.
// Insertion order equals submission order.
type packetQueue struct {
	packets []*Packet
}

func (q *packetQueue) push(p *Packet) {
	q.packets = append(q.packets, p)
}

func (q *packetQueue) pop() (*Packet, bool) {
	if len(q.packets) == 0 {
		return nil, false
	}

	p := q.packets[0]
	q.packets = q.packets[1:]
	return p, true
}

func (q *packetQueue) len() int {
	return len(q.packets)
}

func (q *packetQueue) clear() {
	q.packets = nil
}
