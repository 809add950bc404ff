// Package protocol implements the framing and message codecs for the
// connection manager wire protocol: a stream of frames, each carrying a
// message type word, an optional protobuf header and an opaque body.
package protocol

import (
	"github.com/pkg/errors"

	"github.com/steamlink-go/steamlink/internal/core/bytes"
	"github.com/steamlink-go/steamlink/internal/steamlang"
)

// The high bit of the message type word marks a frame as carrying a
// serialized protobuf header. This client only speaks that variant.
const protoMask = 0x80000000

// frameMinSize is the message type word plus the header length word.
const frameMinSize = 8

var (
	// ErrFrameTooShort is returned for frames smaller than the fixed
	// preamble or whose declared header overruns the frame.
	ErrFrameTooShort = errors.New("frame too short")
	// ErrUnstructuredFrame is returned for legacy frames without a
	// protobuf header. They are logged and dropped, never parsed.
	ErrUnstructuredFrame = errors.New("frame without protobuf header")
)

// EncodeFrame lays out one wire frame: the message type word with the
// proto flag set, the header length, the serialized header and the body.
func EncodeFrame(emsg steamlang.EMsg, header *Header, body []byte) []byte {
	hdr := header.Marshal()

	out := make([]byte, 0, frameMinSize+len(hdr)+len(body))
	out = bytes.PutUint32(out, uint32(emsg)|protoMask)
	out = bytes.PutUint32(out, uint32(len(hdr)))
	out = append(out, hdr...)
	return append(out, body...)
}

// DecodeFrame splits a raw frame into its message type, parsed header
// and unparsed body. Body decoding is message type specific and left to
// the dispatcher.
func DecodeFrame(data []byte) (steamlang.EMsg, *Header, []byte, error) {
	if len(data) < frameMinSize {
		return 0, nil, nil, errors.Wrapf(ErrFrameTooShort, "%d bytes", len(data))
	}

	raw := bytes.Uint32(data[:4])
	if raw&protoMask == 0 {
		return 0, nil, nil, errors.Wrapf(ErrUnstructuredFrame, "emsg %d", raw)
	}
	emsg := steamlang.EMsg(raw &^ protoMask)

	headerLen := int(bytes.Uint32(data[4:8]))
	if frameMinSize+headerLen > len(data) {
		return 0, nil, nil, errors.Wrapf(ErrFrameTooShort, "header length %d overruns %d byte frame", headerLen, len(data))
	}

	header, err := UnmarshalHeader(data[frameMinSize : frameMinSize+headerLen])
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "parsing frame header")
	}

	return emsg, header, data[frameMinSize+headerLen:], nil
}
