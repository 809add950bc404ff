package protocol

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	corebytes "github.com/steamlink-go/steamlink/internal/core/bytes"
)

// Multi is a container frame: its body holds a sequence of complete
// frames, optionally gzip compressed. SizeUnzipped of zero means the
// payload is plain.
type Multi struct {
	SizeUnzipped uint32
	MessageBody  []byte
}

func (m *Multi) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.SizeUnzipped))
	b = appendBytesField(b, 2, m.MessageBody)
	return b
}

func (m *Multi) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.SizeUnzipped)
		case 2:
			v, err := f.bytes()
			if err != nil {
				return err
			}
			m.MessageBody = append([]byte(nil), v...)
			return nil
		}
		return f.skip()
	})
}

var (
	// ErrMalformedContainer is returned when a container cannot be
	// decoded or decompressed at all.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrTruncatedContainer is returned when a container's payload ends
	// in the middle of a length prefixed record. The already emitted
	// frames stand; the remainder is unusable.
	ErrTruncatedContainer = errors.New("container payload ends mid-record")
)

// UnpackMulti expands a container body, invoking emit once per inner
// frame in order. Decompression failure is fatal for the whole
// container; an error from emit aborts the walk and is returned as-is.
func UnpackMulti(body []byte, emit func(frame []byte) error) error {
	var msg Multi
	if err := msg.Unmarshal(body); err != nil {
		return errors.Wrapf(ErrMalformedContainer, "decoding container: %v", err)
	}

	payload := msg.MessageBody
	if msg.SizeUnzipped > 0 {
		r, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return errors.Wrapf(ErrMalformedContainer, "opening compressed payload: %v", err)
		}
		payload, err = io.ReadAll(r)
		if err != nil {
			return errors.Wrapf(ErrMalformedContainer, "decompressing payload: %v", err)
		}
		if err := r.Close(); err != nil {
			return errors.Wrapf(ErrMalformedContainer, "closing decompressor: %v", err)
		}
	}

	offset := 0
	for offset+4 <= len(payload) {
		size := int(corebytes.Uint32(payload[offset : offset+4]))
		offset += 4
		if offset+size > len(payload) {
			return errors.Wrapf(ErrTruncatedContainer, "record wants %d bytes, %d remain", size, len(payload)-offset)
		}
		if err := emit(payload[offset : offset+size]); err != nil {
			return err
		}
		offset += size
	}
	if offset != len(payload) {
		return errors.Wrapf(ErrTruncatedContainer, "%d trailing bytes", len(payload)-offset)
	}
	return nil
}
