// Package bitstream contains a growable buffer for compressed video data.
package bitstream

const initialCapacity = 1024

// Buffer is a growable byte buffer with a read offset. Compressed packets
// are appended at the tail; the decode engine consumes bytes from the head
// by advancing the offset. The valid region is data[offset : offset+length].
type Buffer struct {
	data      []byte
	offset    int
	length    int
	timestamp int64
}

// ensureCapacity grows the underlying region until it can hold at least n
// bytes, preserving existing content. It is a no-op if the current capacity
// is already sufficient.
func (b *Buffer) ensureCapacity(n int) {
	if len(b.data) >= n {
		return
	}

	newCap := len(b.data)
	if newCap == 0 {
		newCap = initialCapacity
	}
	for newCap < n {
		newCap *= 2
	}

	data := make([]byte, newCap)
	copy(data, b.data)
	b.data = data
}

// Enqueue appends a compressed packet payload at the tail of the valid
// region. When the tail would cross the physical end of the buffer although
// total free space suffices, the valid region is first moved back to the
// start of the buffer.
func (b *Buffer) Enqueue(p []byte) {
	required := b.length + len(p)
	b.ensureCapacity(required)

	if required > len(b.data)-b.offset {
		copy(b.data, b.data[b.offset:b.offset+b.length])
		b.offset = 0
	}

	copy(b.data[b.offset+b.length:], p)
	b.length += len(p)
}

// Consume advances the read offset by n bytes, marking them as processed by
// the engine.
func (b *Buffer) Consume(n int) {
	if n > b.length {
		n = b.length
	}
	b.offset += n
	b.length -= n
}

// Bytes returns the valid region. The returned slice aliases the internal
// buffer and is invalidated by the next Enqueue or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data[b.offset : b.offset+b.length]
}

// Len returns the number of valid bytes.
func (b *Buffer) Len() int {
	return b.length
}

// Offset returns the current read offset.
func (b *Buffer) Offset() int {
	return b.offset
}

// Capacity returns the size of the underlying region.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// Reset empties the buffer without releasing its capacity, so that it can be
// reused across flush cycles without reallocating.
func (b *Buffer) Reset() {
	b.offset = 0
	b.length = 0
}

// SetTimestamp records the presentation timestamp of the most recently
// enqueued packet. The engine stamps output surfaces with it.
func (b *Buffer) SetTimestamp(ts int64) {
	b.timestamp = ts
}

// Timestamp returns the timestamp of the most recently enqueued packet.
func (b *Buffer) Timestamp() int64 {
	return b.timestamp
}
