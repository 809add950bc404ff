// Package bytes holds the little endian byte fiddling helpers shared by
// the frame and container codecs.
package bytes

// Uint32 reads a little endian uint32 from the first four bytes of b.
// Callers are responsible for bounds checking.
func Uint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// PutUint32 appends v to b in little endian order and returns the
// extended slice.
func PutUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// StripPadding returns a slice of b without the trailing 0s. Text
// metadata blobs arrive NUL terminated and the terminator is not part
// of the document.
func StripPadding(b []byte) []byte {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			return b[:i+1]
		}
	}
	return []byte{}
}
