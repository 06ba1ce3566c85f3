// Package dimension implements the compact row/column descriptor used to
// frame a two-dimensional value grid (spec §4.9): a single packed header
// byte naming the width of the row and column counts and whether the grid
// is sparse, followed by the two counts themselves, External-encoded at
// the widths the header names.
package dimension

import (
	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/varint"
)

// Dims holds a decoded dimension descriptor.
type Dims struct {
	Rows   uint64
	Cols   uint64
	Sparse bool

	// Vector reports whether the descriptor carried no explicit row
	// dimension (row width 0). Rows is always 0 in that case.
	Vector bool
}

// header layout, all within a single byte:
//
//	bit 0     sparse flag
//	bits 1-3  col width - 1 (col width in 1..8)
//	bits 4-7  row width (row width in 0..8; 0 means vector, no row count)
func encodeHeader(rowWidth, colWidth varint.Width, sparse bool) byte {
	var b byte
	if sparse {
		b |= 0x01
	}
	b |= byte(colWidth-1) << 1
	b |= byte(rowWidth) << 4

	return b
}

func decodeHeader(b byte) (rowWidth, colWidth varint.Width, sparse bool) {
	sparse = b&0x01 != 0
	colWidth = varint.Width((b>>1)&0x07) + 1
	rowWidth = varint.Width((b >> 4) & 0x0F)

	return rowWidth, colWidth, sparse
}

// Encode writes a dimension descriptor for a rows x cols grid at the
// caller-chosen widths. rowWidth is 0..8; 0 selects the vector form,
// omitting the row count entirely (rows must be 0 in that case). colWidth
// is 1..8, since every descriptor names a column count.
func Encode(dst []byte, rowWidth, colWidth varint.Width, sparse bool, rows, cols uint64) (int, error) {
	if rowWidth < 0 || rowWidth > 8 || colWidth < 1 || colWidth > 8 {
		return 0, errs.ErrInvalidWidth
	}
	if rowWidth == 0 && rows != 0 {
		return 0, errs.ErrValueOutOfRange
	}

	n := 1 + int(rowWidth) + int(colWidth)
	if len(dst) < n {
		return 0, errs.ErrBufferTooSmall
	}

	dst[0] = encodeHeader(rowWidth, colWidth, sparse)

	off := 1
	if rowWidth > 0 {
		m, err := varint.PutFixed(dst[off:], rows, rowWidth)
		if err != nil {
			return 0, err
		}
		off += m
	}

	if _, err := varint.PutFixed(dst[off:], cols, colWidth); err != nil {
		return 0, err
	}

	return n, nil
}

// Decode reads a dimension descriptor from src, returning it and the
// number of bytes consumed.
func Decode(src []byte) (Dims, int, error) {
	if len(src) < 1 {
		return Dims{}, 0, errs.ErrBufferTooSmall
	}

	rowWidth, colWidth, sparse := decodeHeader(src[0])

	offset := 1
	var rows uint64
	if rowWidth > 0 {
		r, n, err := varint.GetFixed(src[offset:], rowWidth)
		if err != nil {
			return Dims{}, 0, err
		}
		rows = r
		offset += n
	}

	cols, n, err := varint.GetFixed(src[offset:], colWidth)
	if err != nil {
		return Dims{}, 0, err
	}
	offset += n

	return Dims{Rows: rows, Cols: cols, Sparse: sparse, Vector: rowWidth == 0}, offset, nil
}
