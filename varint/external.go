package varint

import (
	"fmt"

	"github.com/kelindar/varkit/endian"
	"github.com/kelindar/varkit/errs"
)

// External is the fixed-width little-endian integer codec (spec §4.1). Its
// width is not self-describing: the caller stores or otherwise knows W and
// passes it back in on decode. This is the compact inner codec used by
// FOR offsets, Split's tail band, and the dimension descriptor.
//
// PutFixed and GetFixed delegate to endian.GetLittleEndianEngine(), the
// format's canonical byte order engine: encoding/binary's LittleEndian
// always produces the same byte layout regardless of host architecture, so
// no explicit host-endianness branch is needed at the call site.

// littleEndian is the byte order engine every External-encoded field on
// the wire uses.
var littleEndian = endian.GetLittleEndianEngine()

// PutFixed writes the low w bytes of v, little-endian, into dst[:w].
// It returns the number of bytes written (w) or errs.ErrBufferTooSmall if
// len(dst) < w, and errs.ErrInvalidWidth if w is outside 1..8.
func PutFixed(dst []byte, v uint64, w Width) (int, error) {
	if err := checkWidth(w); err != nil {
		return 0, err
	}
	if len(dst) < int(w) {
		return 0, errs.ErrBufferTooSmall
	}

	var tmp [8]byte
	littleEndian.PutUint64(tmp[:], v)
	copy(dst, tmp[:w])

	return int(w), nil
}

// GetFixed reads a little-endian, w-byte unsigned integer from src.
// It returns the decoded value and w, or errs.ErrBufferTooSmall if
// len(src) < w, and errs.ErrInvalidWidth if w is outside 1..8.
func GetFixed(src []byte, w Width) (uint64, int, error) {
	if err := checkWidth(w); err != nil {
		return 0, 0, err
	}
	if len(src) < int(w) {
		return 0, 0, errs.ErrBufferTooSmall
	}

	var tmp [8]byte
	copy(tmp[:], src[:w])

	return littleEndian.Uint64(tmp[:]), int(w), nil
}

// PutFixedSigned writes a non-negative signed integer using PutFixed.
// Negative values are rejected: the source library's equivalent check
// (`value > INT64_MAX`) was a no-op bug (spec §9 Open Question #1); the
// intended and implemented semantics are "reject negatives".
func PutFixedSigned(dst []byte, v int64, w Width) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: negative value %d", errs.ErrValueOutOfRange, v)
	}

	return PutFixed(dst, uint64(v), w)
}

// GetFixedSigned reads a value written by PutFixedSigned. Since only
// non-negative values are ever encoded, this is a thin wrapper over
// GetFixed with a signed return type.
func GetFixedSigned(src []byte, w Width) (int64, int, error) {
	v, n, err := GetFixed(src, w)
	if err != nil {
		return 0, n, err
	}

	return int64(v), n, nil
}
