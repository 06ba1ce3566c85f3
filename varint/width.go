// Package varint implements the four primitive varint codecs — External,
// Tagged, Split, and Chained — plus the checked-arithmetic helpers they
// share. Every function in this package is pure: it reads from and writes
// to caller-supplied byte slices and performs no allocation, per spec §3.
package varint

import "github.com/kelindar/varkit/errs"

// Width is the common currency between encoder and decoder: a byte count
// in 0..8, or Invalid when a value cannot be represented.
type Width int8

// Invalid marks a width that could not be determined, e.g. from a
// malformed lead byte.
const Invalid Width = -1

// MaxWidth is the largest byte width the External/FOR codecs support.
const MaxWidth Width = 8

// WidthOfUnsigned returns the smallest Width in [1,8] such that
// v < 2^(8*Width). It never returns Invalid: every uint64 fits in 8 bytes.
func WidthOfUnsigned(v uint64) Width {
	switch {
	case v <= 0xFF:
		return 1
	case v <= 0xFFFF:
		return 2
	case v <= 0xFFFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 4
	case v <= 0xFFFFFFFFFF:
		return 5
	case v <= 0xFFFFFFFFFFFF:
		return 6
	case v <= 0xFFFFFFFFFFFFFF:
		return 7
	default:
		return 8
	}
}

// checkWidth validates that w is a usable byte width for the External codec.
func checkWidth(w Width) error {
	if w < 1 || w > MaxWidth {
		return errs.ErrInvalidWidth
	}

	return nil
}
