package seqheader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/gohwdec/pkg/engine"
)

var testSPSH264 = []byte{
	0x67, 0x64, 0x00, 0x0c, 0xac, 0x3b, 0x50, 0xb0,
	0x4b, 0x42, 0x00, 0x00, 0x03, 0x00, 0x02, 0x00,
	0x00, 0x03, 0x00, 0x3d, 0x08,
}

var testSPSH265 = []byte{
	0x42, 0x01, 0x01, 0x01, 0x60, 0x00, 0x00, 0x03,
	0x00, 0x90, 0x00, 0x00, 0x03, 0x00, 0x00, 0x03,
	0x00, 0x78, 0xa0, 0x03, 0xc0, 0x80, 0x10, 0xe5,
	0x96, 0x66, 0x69, 0x24, 0xca, 0xe0, 0x10, 0x00,
	0x00, 0x03, 0x00, 0x10, 0x00, 0x00, 0x03, 0x01,
	0xe0, 0x80,
}

func annexB(nalus ...[]byte) []byte {
	var ret []byte
	for _, nalu := range nalus {
		ret = append(ret, 0, 0, 0, 1)
		ret = append(ret, nalu...)
	}
	return ret
}

func TestSniff(t *testing.T) {
	for _, ca := range []struct {
		name   string
		codec  engine.CodecID
		data   []byte
		params *Params
	}{
		{
			"h264",
			engine.CodecAVC,
			annexB(testSPSH264, []byte{0x68, 0xee, 0x3c, 0x80}),
			&Params{
				Width:  352,
				Height: 288,
				FPS:    15,
			},
		},
		{
			"h264 leading garbage",
			engine.CodecAVC,
			append([]byte{0x12, 0x34}, annexB(testSPSH264)...),
			&Params{
				Width:  352,
				Height: 288,
				FPS:    15,
			},
		},
		{
			"h264 no sequence header",
			engine.CodecAVC,
			annexB([]byte{0x68, 0xee, 0x3c, 0x80}),
			nil,
		},
		{
			"h265",
			engine.CodecHEVC,
			annexB(testSPSH265),
			&Params{
				Width:  1920,
				Height: 1080,
				FPS:    30,
			},
		},
		{
			"no start code",
			engine.CodecAVC,
			[]byte{0x01, 0x02, 0x03},
			nil,
		},
		{
			"empty",
			engine.CodecAVC,
			nil,
			nil,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.params, Sniff(ca.codec, ca.data))
		})
	}
}

func TestSniffable(t *testing.T) {
	require.True(t, Sniffable(engine.CodecAVC))
	require.True(t, Sniffable(engine.CodecHEVC))
	require.False(t, Sniffable(engine.CodecMPEG2))
	require.False(t, Sniffable(engine.CodecVC1))
}
