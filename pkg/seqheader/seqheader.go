// Package seqheader contains helpers to locate and parse video sequence
// headers inside buffered Annex-B data.
package seqheader

import (
	"bytes"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h265"

	"github.com/bluenviron/gohwdec/pkg/engine"
)

// Params are the stream parameters recovered from a sequence header. They
// back-fill fields that a minimal engine leaves unset after header decoding.
type Params struct {
	Width  int
	Height int
	FPS    float64
}

// Sniffable reports whether Sniff knows how to locate a sequence header for
// the given codec. For other codecs, header parsing is left entirely to the
// engine.
func Sniffable(codec engine.CodecID) bool {
	return codec == engine.CodecAVC || codec == engine.CodecHEVC
}

// Sniff scans buffered Annex-B data for a complete sequence header and
// parses it. It returns nil when no complete sequence header is available
// yet.
func Sniff(codec engine.CodecID, data []byte) *Params {
	// skip leading garbage before the first start code.
	i := bytes.Index(data, []byte{0, 0, 1})
	if i < 0 {
		return nil
	}
	data = data[i:]

	var au h264.AnnexB // start-code syntax is shared between H264 and H265
	err := au.Unmarshal(data)
	if err != nil {
		return nil
	}

	switch codec {
	case engine.CodecAVC:
		for _, nalu := range au {
			if len(nalu) == 0 || h264.NALUType(nalu[0]&0x1F) != h264.NALUTypeSPS {
				continue
			}

			var sps h264.SPS
			err = sps.Unmarshal(nalu)
			if err != nil {
				continue
			}

			return &Params{
				Width:  sps.Width(),
				Height: sps.Height(),
				FPS:    sps.FPS(),
			}
		}

	case engine.CodecHEVC:
		for _, nalu := range au {
			if len(nalu) == 0 || h265.NALUType((nalu[0]>>1)&0b111111) != h265.NALUType_SPS_NUT {
				continue
			}

			var sps h265.SPS
			err = sps.Unmarshal(nalu)
			if err != nil {
				continue
			}

			return &Params{
				Width:  sps.Width(),
				Height: sps.Height(),
				FPS:    sps.FPS(),
			}
		}
	}

	return nil
}
