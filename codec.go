package gohwdec

import (
	"github.com/bluenviron/gohwdec/pkg/engine"
	"github.com/bluenviron/gohwdec/pkg/liberrors"
)

// Codec is a compressed video format accepted by a DecodeSession.
type Codec int

// supported codecs.
const (
	CodecH264 Codec = iota
	CodecH265
	CodecMPEG1Video
	CodecMPEG2Video
	CodecVC1
)

// String implements fmt.Stringer.
func (c Codec) String() string {
	switch c {
	case CodecH264:
		return "H264"
	case CodecH265:
		return "H265"
	case CodecMPEG1Video:
		return "MPEG-1 Video"
	case CodecMPEG2Video:
		return "MPEG-2 Video"
	case CodecVC1:
		return "VC-1"
	}
	return "unknown"
}

// engineID maps the codec to the engine's own codec identifier.
func (c Codec) engineID() (engine.CodecID, error) {
	switch c {
	case CodecH264:
		return engine.CodecAVC, nil

	case CodecH265:
		return engine.CodecHEVC, nil

	case CodecMPEG1Video, CodecMPEG2Video:
		return engine.CodecMPEG2, nil

	case CodecVC1:
		return engine.CodecVC1, nil
	}

	return 0, liberrors.ErrUnsupported{What: "codec " + c.String()}
}
