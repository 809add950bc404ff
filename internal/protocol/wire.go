package protocol

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/steamlink-go/steamlink/internal/steamlang"
)

type fieldType = protowire.Type

// fieldReader hands one wire field to a message's decode callback. The
// callback must consume the field through exactly one of the methods
// below (or skip it); each method advances the shared buffer.
type fieldReader struct {
	num protowire.Number
	typ protowire.Type
	b   *[]byte
}

// eachField walks the fields of a serialized message, invoking fn once
// per field. Unknown fields are the callback's problem; returning
// f.skip() from the default branch drops them.
func eachField(b []byte, fn func(num int, typ fieldType, f *fieldReader) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := fieldReader{num: num, typ: typ, b: &b}
		if err := fn(int(num), typ, &f); err != nil {
			return err
		}
	}
	return nil
}

func (f *fieldReader) varint() (uint64, error) {
	if f.typ != protowire.VarintType {
		return 0, errors.Errorf("field %d: expected varint, got wire type %d", f.num, f.typ)
	}
	v, n := protowire.ConsumeVarint(*f.b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*f.b = (*f.b)[n:]
	return v, nil
}

func (f *fieldReader) varint64(out *uint64) error {
	v, err := f.varint()
	if err != nil {
		return err
	}
	*out = v
	return nil
}

func (f *fieldReader) varint32(out *uint32) error {
	v, err := f.varint()
	if err != nil {
		return err
	}
	*out = uint32(v)
	return nil
}

func (f *fieldReader) int32(out *int32) error {
	v, err := f.varint()
	if err != nil {
		return err
	}
	*out = int32(int64(v))
	return nil
}

func (f *fieldReader) eresult(out *steamlang.EResult) error {
	var v int32
	if err := f.int32(&v); err != nil {
		return err
	}
	*out = steamlang.EResult(v)
	return nil
}

func (f *fieldReader) bool(out *bool) error {
	v, err := f.varint()
	if err != nil {
		return err
	}
	*out = v != 0
	return nil
}

// bytes returns a view into the buffer; callers keeping the value past
// the decode call must copy it.
func (f *fieldReader) bytes() ([]byte, error) {
	if f.typ != protowire.BytesType {
		return nil, errors.Errorf("field %d: expected bytes, got wire type %d", f.num, f.typ)
	}
	v, n := protowire.ConsumeBytes(*f.b)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	*f.b = (*f.b)[n:]
	return v, nil
}

func (f *fieldReader) str(out *string) error {
	v, err := f.bytes()
	if err != nil {
		return err
	}
	*out = string(v)
	return nil
}

func (f *fieldReader) skip() error {
	n := protowire.ConsumeFieldValue(f.num, f.typ, *f.b)
	if n < 0 {
		return protowire.ParseError(n)
	}
	*f.b = (*f.b)[n:]
	return nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}
