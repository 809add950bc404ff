package keyvalues

import (
	"math"

	"github.com/pkg/errors"

	"github.com/steamlink-go/steamlink/internal/core/bytes"
)

// Binary KeyValues type markers.
const (
	binTypeObject  = 0x00
	binTypeString  = 0x01
	binTypeInt32   = 0x02
	binTypeFloat32 = 0x03
	binTypePointer = 0x04
	binTypeColor   = 0x06
	binTypeUint64  = 0x07
	binTypeEnd     = 0x08
	binTypeInt64   = 0x0A
	binTypeAltEnd  = 0x0B
)

var errBinaryTruncated = errors.New("binary keyvalues: unexpected end of data")

// ParseBinary decodes a binary KeyValues blob into an Object. The blob
// is a sequence of typed entries terminated by end markers; the top
// level runs until the buffer is exhausted.
func ParseBinary(data []byte) (Object, error) {
	root := Object{}
	rest := data
	for len(rest) > 0 {
		// Tolerate trailing end markers closing the document.
		if rest[0] == binTypeEnd || rest[0] == binTypeAltEnd {
			rest = rest[1:]
			continue
		}
		var err error
		rest, err = parseBinaryEntry(rest, root)
		if err != nil {
			return nil, err
		}
	}
	return root, nil
}

func parseBinaryEntry(data []byte, into Object) ([]byte, error) {
	if len(data) < 1 {
		return nil, errBinaryTruncated
	}
	typ := data[0]
	name, rest, err := readCString(data[1:])
	if err != nil {
		return nil, err
	}

	switch typ {
	case binTypeObject:
		child := Object{}
		for {
			if len(rest) < 1 {
				return nil, errBinaryTruncated
			}
			if rest[0] == binTypeEnd || rest[0] == binTypeAltEnd {
				rest = rest[1:]
				break
			}
			rest, err = parseBinaryEntry(rest, child)
			if err != nil {
				return nil, err
			}
		}
		into[name] = child
	case binTypeString:
		var v string
		v, rest, err = readCString(rest)
		if err != nil {
			return nil, err
		}
		into[name] = v
	case binTypeInt32, binTypePointer, binTypeColor:
		if len(rest) < 4 {
			return nil, errBinaryTruncated
		}
		into[name] = int64(int32(bytes.Uint32(rest[:4])))
		rest = rest[4:]
	case binTypeFloat32:
		if len(rest) < 4 {
			return nil, errBinaryTruncated
		}
		into[name] = float64(math.Float32frombits(bytes.Uint32(rest[:4])))
		rest = rest[4:]
	case binTypeUint64:
		if len(rest) < 8 {
			return nil, errBinaryTruncated
		}
		into[name] = uint64(bytes.Uint32(rest[:4])) | uint64(bytes.Uint32(rest[4:8]))<<32
		rest = rest[8:]
	case binTypeInt64:
		if len(rest) < 8 {
			return nil, errBinaryTruncated
		}
		into[name] = int64(uint64(bytes.Uint32(rest[:4])) | uint64(bytes.Uint32(rest[4:8]))<<32)
		rest = rest[8:]
	default:
		return nil, errors.Errorf("binary keyvalues: unknown type marker 0x%02X for %q", typ, name)
	}
	return rest, nil
}

func readCString(data []byte) (string, []byte, error) {
	for i, c := range data {
		if c == 0 {
			return string(data[:i]), data[i+1:], nil
		}
	}
	return "", nil, errBinaryTruncated
}
