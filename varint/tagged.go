package varint

import (
	"fmt"

	"github.com/kelindar/varkit/errs"
)

// Tagged is the sort-preserving, self-describing unsigned integer codec
// (spec §4.2). A single lead byte determines the encoded length; payload
// bytes (when present) are stored big-endian so that lexicographic byte
// comparison equals numeric comparison over the decoded values — the
// entire reason this codec exists (spec §6, "Tagged wire format").
//
// Length bands (bit-exact, see spec §4.2 for the authoritative table):
//
//	Lead byte L   Length   Value range
//	0..240        1        0..240
//	241..248      2        241..2287
//	249           3        2288..67823
//	250           4        up to 2^24-1
//	251..255      L-246    up to 2^64-1

// band boundaries, named for readability at each branch below.
const (
	tag1Max = 240
	tag2Max = 2287
	tag3Max = 67823
	tag4Max = 1<<24 - 1
)

// LengthOfLead returns the total encoded length (including the lead byte
// itself) implied by lead, a pure function of the first byte of an
// encoding.
func LengthOfLead(lead byte) int {
	switch {
	case lead <= tag1Max:
		return 1
	case lead <= 248:
		return 2
	case lead == 249:
		return 3
	case lead == 250:
		return 4
	default: // 251..255
		return int(lead) - 246
	}
}

// TaggedLen returns the number of bytes TaggedEncode(v) will write, without
// writing anything.
func TaggedLen(v uint64) int {
	switch {
	case v <= tag1Max:
		return 1
	case v <= tag2Max:
		return 2
	case v <= tag3Max:
		return 3
	case v <= tag4Max:
		return 4
	case v <= 1<<32-1:
		return 5
	case v <= 1<<40-1:
		return 6
	case v <= 1<<48-1:
		return 7
	case v <= 1<<56-1:
		return 8
	default:
		return 9
	}
}

// TaggedEncode writes the Tagged encoding of v into dst, returning the
// number of bytes written. It returns errs.ErrBufferTooSmall if dst is
// shorter than TaggedLen(v).
func TaggedEncode(dst []byte, v uint64) (int, error) {
	n := TaggedLen(v)
	if len(dst) < n {
		return 0, errs.ErrBufferTooSmall
	}

	switch n {
	case 1:
		dst[0] = byte(v)
	case 2:
		x := v - 240
		dst[0] = byte(x/256) + 241
		dst[1] = byte(x % 256)
	case 3:
		x := v - 2288
		dst[0] = 249
		dst[1] = byte(x / 256)
		dst[2] = byte(x % 256)
	default:
		// n in 4..9: lead byte 250..255, payload is (n-1) big-endian bytes.
		dst[0] = byte(246 + n)
		for i := range n - 1 {
			shift := uint(8 * (n - 2 - i))
			dst[1+i] = byte(v >> shift)
		}
	}

	return n, nil
}

// TaggedDecode reads a Tagged-encoded value from src, returning the decoded
// value and the number of bytes consumed. It returns
// (0, 0, errs.ErrBufferTooSmall) if src is empty or shorter than the length
// implied by its lead byte.
func TaggedDecode(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.ErrBufferTooSmall
	}

	lead := src[0]
	n := LengthOfLead(lead)
	if len(src) < n {
		return 0, 0, errs.ErrBufferTooSmall
	}

	switch n {
	case 1:
		return uint64(lead), 1, nil
	case 2:
		v := uint64(lead-241)*256 + uint64(src[1]) + 240
		return v, 2, nil
	case 3:
		v := uint64(src[1])*256 + uint64(src[2]) + 2288
		return v, 3, nil
	default:
		var v uint64
		for i := 1; i < n; i++ {
			v = v<<8 | uint64(src[i])
		}

		return v, n, nil
	}
}

// TaggedAdd reads the Tagged value at the start of buf, adds delta with
// overflow-checked arithmetic, and re-encodes the sum in place if it fits
// in the same encoded length the original value occupied. If the sum needs
// a different length, or the addition itself overflows uint64, TaggedAdd
// leaves buf untouched and returns errs.ErrOverflow.
func TaggedAdd(buf []byte, delta uint64) (int, error) {
	v, n, err := TaggedDecode(buf)
	if err != nil {
		return 0, err
	}

	sum, err := AddChecked(v, delta)
	if err != nil {
		return 0, err
	}

	if TaggedLen(sum) != n {
		return 0, fmt.Errorf("%w: sum %d no longer fits in %d-byte encoding", errs.ErrOverflow, sum, n)
	}

	return TaggedEncode(buf[:n], sum)
}
