package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Header is the protobuf header carried by every structured frame. All
// fields are optional on the wire; a nil pointer means the field was not
// present, which is not the same thing as a zero value.
type Header struct {
	SteamID       *uint64
	SessionID     *int32
	SourceJobID   *uint64
	TargetJobID   *uint64
	TargetJobName *string
}

// Field numbers in the serialized header.
const (
	headerFieldSteamID       = 1
	headerFieldSessionID     = 2
	headerFieldSourceJobID   = 10
	headerFieldTargetJobID   = 11
	headerFieldTargetJobName = 12
)

// Marshal serializes the set fields of the header. A nil header
// serializes to an empty byte slice.
func (h *Header) Marshal() []byte {
	var b []byte
	if h == nil {
		return b
	}
	if h.SteamID != nil {
		b = protowire.AppendTag(b, headerFieldSteamID, protowire.VarintType)
		b = protowire.AppendVarint(b, *h.SteamID)
	}
	if h.SessionID != nil {
		b = protowire.AppendTag(b, headerFieldSessionID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(int64(*h.SessionID)))
	}
	if h.SourceJobID != nil {
		b = protowire.AppendTag(b, headerFieldSourceJobID, protowire.VarintType)
		b = protowire.AppendVarint(b, *h.SourceJobID)
	}
	if h.TargetJobID != nil {
		b = protowire.AppendTag(b, headerFieldTargetJobID, protowire.VarintType)
		b = protowire.AppendVarint(b, *h.TargetJobID)
	}
	if h.TargetJobName != nil {
		b = protowire.AppendTag(b, headerFieldTargetJobName, protowire.BytesType)
		b = protowire.AppendString(b, *h.TargetJobName)
	}
	return b
}

// UnmarshalHeader parses a serialized header, ignoring any fields this
// client does not know about.
func UnmarshalHeader(b []byte) (*Header, error) {
	h := &Header{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case headerFieldSteamID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			h.SteamID, b = &v, b[n:]
		case headerFieldSessionID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			s := int32(int64(v))
			h.SessionID, b = &s, b[n:]
		case headerFieldSourceJobID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			h.SourceJobID, b = &v, b[n:]
		case headerFieldTargetJobID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			h.TargetJobID, b = &v, b[n:]
		case headerFieldTargetJobName:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			h.TargetJobName, b = &v, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return h, nil
}

// Helpers for building header fields inline.

func Uint64(v uint64) *uint64 { return &v }
func Int32(v int32) *int32    { return &v }
func String(v string) *string { return &v }
