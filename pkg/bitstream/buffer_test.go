package bitstream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnqueue(t *testing.T) {
	for _, ca := range []struct {
		name     string
		payloads [][]byte
	}{
		{
			"single",
			[][]byte{{1, 2, 3}},
		},
		{
			"multiple",
			[][]byte{{1, 2, 3}, {4, 5}, {6}},
		},
		{
			"growth",
			[][]byte{bytes.Repeat([]byte{0xAA}, 900), bytes.Repeat([]byte{0xBB}, 900)},
		},
		{
			"empty payload",
			[][]byte{{1, 2}, {}, {3}},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			var b Buffer
			var expected []byte

			for _, p := range ca.payloads {
				b.Enqueue(p)
				expected = append(expected, p...)
			}

			require.Equal(t, expected, b.Bytes())
			require.Equal(t, len(expected), b.Len())
		})
	}
}

func TestConsume(t *testing.T) {
	var b Buffer
	b.Enqueue([]byte{1, 2, 3, 4, 5})

	b.Consume(2)
	require.Equal(t, []byte{3, 4, 5}, b.Bytes())
	require.Equal(t, 2, b.Offset())

	// consuming more than available clamps to the valid region
	b.Consume(10)
	require.Equal(t, 0, b.Len())
}

func TestEnqueueCompaction(t *testing.T) {
	var b Buffer

	// fill most of the initial capacity, then consume the head
	b.Enqueue(bytes.Repeat([]byte{0x11}, 1000))
	b.Consume(900)

	// free space suffices but the tail would cross the physical end:
	// the valid region must be moved back to the start
	b.Enqueue(bytes.Repeat([]byte{0x22}, 500))

	require.Equal(t, 0, b.Offset())
	expected := append(bytes.Repeat([]byte{0x11}, 100), bytes.Repeat([]byte{0x22}, 500)...)
	require.Equal(t, expected, b.Bytes())
	require.Equal(t, 1024, b.Capacity())
}

func TestReset(t *testing.T) {
	var b Buffer
	b.Enqueue(bytes.Repeat([]byte{0x33}, 2000))
	b.Consume(100)

	b.Reset()

	require.Equal(t, 0, b.Len())
	require.Equal(t, 0, b.Offset())

	// capacity is kept for reuse
	require.NotZero(t, b.Capacity())

	b.Enqueue([]byte{1, 2, 3})
	require.Equal(t, []byte{1, 2, 3}, b.Bytes())
}

func TestTimestamp(t *testing.T) {
	var b Buffer
	b.SetTimestamp(90000)
	require.Equal(t, int64(90000), b.Timestamp())
}

func FuzzEnqueue(f *testing.F) {
	f.Add([]byte{1, 2, 3}, uint8(1))

	f.Fuzz(func(t *testing.T, p []byte, consume uint8) {
		var b Buffer
		var expected []byte

		for i := 0; i < 4; i++ {
			b.Enqueue(p)
			expected = append(expected, p...)

			n := int(consume)
			if n > len(expected) {
				n = len(expected)
			}
			b.Consume(n)
			expected = expected[n:]
		}

		require.Equal(t, len(expected), b.Len())
		if len(expected) != 0 {
			require.Equal(t, expected, b.Bytes())
		}
	})
}
