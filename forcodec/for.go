// Package forcodec implements frame-of-reference encoding (spec §4.8),
// grounded directly on the varintFOR reference: a column of unsigned
// integers is stored as its minimum value plus a fixed-width offset per
// element, giving O(1) random access without decoding the whole column.
//
// Wire format:
//
//	[min: Tagged][offset_width: 1 byte][count: Tagged][offsets...]
//
// offsets are External-encoded, offset_width bytes apiece, in element
// order.
package forcodec

import (
	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/internal/pool"
	"github.com/kelindar/varkit/varint"
)

// Header describes a Frame-of-Reference column without decoding its
// offsets.
type Header struct {
	Min         uint64
	OffsetWidth varint.Width
	Count       int
}

// ReadHeader parses the header at the start of src, returning it and the
// number of bytes it occupies (the offset of the first element).
func ReadHeader(src []byte) (Header, int, error) {
	min, n1, err := varint.TaggedDecode(src)
	if err != nil {
		return Header{}, 0, err
	}
	if len(src) < n1+1 {
		return Header{}, 0, errs.ErrBufferTooSmall
	}
	offsetWidth := varint.Width(src[n1])

	count, n2, err := varint.TaggedDecode(src[n1+1:])
	if err != nil {
		return Header{}, 0, err
	}

	return Header{Min: min, OffsetWidth: offsetWidth, Count: int(count)}, n1 + 1 + n2, nil
}

// Analyze computes the min and required offset width for values, the two
// quantities the header needs, without allocating an encoded buffer.
func Analyze(values []uint64) (min uint64, offsetWidth varint.Width) {
	if len(values) == 0 {
		return 0, 1
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, varint.WidthOfUnsigned(max - min)
}

// Encode writes values as a Frame-of-Reference column.
func Encode(values []uint64) ([]byte, error) {
	min, offsetWidth := Analyze(values)

	buf := pool.Get()
	defer pool.Put(buf)

	var tmp [9]byte

	n, err := varint.TaggedEncode(tmp[:], min)
	if err != nil {
		return nil, err
	}
	buf.MustWrite(tmp[:n])

	buf.MustWrite([]byte{byte(offsetWidth)})

	n, err = varint.TaggedEncode(tmp[:], uint64(len(values)))
	if err != nil {
		return nil, err
	}
	buf.MustWrite(tmp[:n])

	for _, v := range values {
		off, err := varint.SubChecked(v, min)
		if err != nil {
			return nil, err
		}
		n, err := varint.PutFixed(tmp[:], off, offsetWidth)
		if err != nil {
			return nil, err
		}
		buf.MustWrite(tmp[:n])
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode reconstructs every value stored in a Frame-of-Reference column.
func Decode(src []byte) ([]uint64, error) {
	hdr, headerLen, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}

	out := make([]uint64, hdr.Count)
	offset := headerLen
	for i := range hdr.Count {
		v, n, err := varint.GetFixed(src[offset:], hdr.OffsetWidth)
		if err != nil {
			return nil, err
		}
		out[i] = v + hdr.Min
		offset += n
	}

	return out, nil
}

// GetAt decodes a single element at idx without decoding the rest of the
// column, the point of the frame-of-reference layout.
func GetAt(src []byte, idx int) (uint64, error) {
	hdr, headerLen, err := ReadHeader(src)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= hdr.Count {
		return 0, errs.ErrValueOutOfRange
	}

	pos := headerLen + idx*int(hdr.OffsetWidth)
	v, _, err := varint.GetFixed(src[pos:], hdr.OffsetWidth)
	if err != nil {
		return 0, err
	}

	return v + hdr.Min, nil
}
