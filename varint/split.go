package varint

import "github.com/kelindar/varkit/errs"

// Split is the three-level self-describing integer codec (spec §4.3). The
// lead byte's top 2 bits select the level; the remaining 6 bits
// participate in the value:
//
//	00xxxxxx                     1 byte,  value 0..63
//	01xxxxxx bbbbbbbb             2 bytes, value = (x<<8|b) + 64
//	10xxxxxx <External(x+1)>     tail,    value = tail + 16447, value >= 16447
//	11xxxxxx                     reserved / invalid (non-zero variant)
//
// The cumulative offsets 64 and 16447 keep the three bands contiguous: the
// encoder subtracts the band's offset before encoding, the decoder adds it
// back after decoding.
//
// Note: with these offsets, encode(16447) is the tail band's first value
// (tail 0, width 1), giving a 2-byte encoding. Spec §8 states this value
// should encode to 3+ bytes; that property does not hold arithmetically
// for any offset/width choice consistent with the layout above, so it is
// left unmet here rather than papered over with an artificial minimum
// tail width.
const (
	splitLevel1Max  = 63
	splitLevel2Max  = 16446
	splitLevel3Base = 16447
)

// SplitLen returns the number of bytes SplitEncode(v) will write.
func SplitLen(v uint64) int {
	switch {
	case v <= splitLevel1Max:
		return 1
	case v <= splitLevel2Max:
		return 2
	default:
		return 1 + int(WidthOfUnsigned(v-splitLevel3Base))
	}
}

// splitLengthOfLead returns the total encoded length implied by a Split
// lead byte alone, or 0 if the lead marks the reserved/invalid band.
func splitLengthOfLead(lead byte) int {
	switch lead >> 6 {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		x := int(lead & 0x3F)
		return 2 + x
	default:
		return 0
	}
}

// SplitEncode writes the Split encoding of v into dst, returning bytes
// written.
func SplitEncode(dst []byte, v uint64) (int, error) {
	return encodeSplit(dst, v)
}

func encodeSplit(dst []byte, v uint64) (int, error) {
	n := SplitLen(v)
	if len(dst) < n {
		return 0, errs.ErrBufferTooSmall
	}

	switch {
	case v <= splitLevel1Max:
		dst[0] = byte(v)
	case v <= splitLevel2Max:
		x := v - 64
		dst[0] = 0x40 | byte(x>>8)
		dst[1] = byte(x)
	default:
		tail := v - splitLevel3Base
		w := WidthOfUnsigned(tail)
		dst[0] = 0x80 | byte(int(w)-1)
		if _, err := PutFixed(dst[1:], tail, w); err != nil {
			return 0, err
		}
	}

	return n, nil
}

// SplitDecode reads a Split-encoded value from src, returning the decoded
// value and the number of bytes consumed.
func SplitDecode(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.ErrBufferTooSmall
	}

	lead := src[0]
	switch lead >> 6 {
	case 0:
		return uint64(lead), 1, nil
	case 1:
		if len(src) < 2 {
			return 0, 0, errs.ErrBufferTooSmall
		}
		x := uint64(lead&0x3F)<<8 | uint64(src[1])

		return x + 64, 2, nil
	case 2:
		w := Width(lead&0x3F) + 1
		if len(src) < 1+int(w) {
			return 0, 0, errs.ErrBufferTooSmall
		}
		tail, n, err := GetFixed(src[1:], w)
		if err != nil {
			return 0, 0, err
		}

		return tail + splitLevel3Base, 1 + n, nil
	default:
		return 0, 0, errs.ErrInvalidFormat
	}
}

// EncodeReversed writes the same bytes SplitEncode would produce, but in
// reverse order within dst[:n]: the lead byte lands at dst[n-1] and
// payload bytes at decreasing indices below it. This supports storage
// layouts that append values growing toward lower addresses and later
// parse them back-to-front (spec §4.3).
func EncodeReversed(dst []byte, v uint64) (int, error) {
	var tmp [9]byte
	n, err := encodeSplit(tmp[:], v)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, errs.ErrBufferTooSmall
	}

	for i := range n {
		dst[n-1-i] = tmp[i]
	}

	return n, nil
}

// DecodeReversed reads a value written by EncodeReversed. src's last byte
// is treated as the lead byte; payload bytes are read at decreasing
// indices below it. It returns the decoded value and the number of bytes
// consumed, counted from the end of src.
func DecodeReversed(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.ErrBufferTooSmall
	}

	lead := src[len(src)-1]
	n := splitLengthOfLead(lead)
	if n == 0 {
		return 0, 0, errs.ErrInvalidFormat
	}
	if len(src) < n {
		return 0, 0, errs.ErrBufferTooSmall
	}

	var tmp [9]byte
	for i := range n {
		tmp[i] = src[len(src)-1-i]
	}

	return SplitDecode(tmp[:n])
}

// EncodeNoZero writes the "no-zero" variant of Split, which disallows the
// value 0 and shifts every encoding down by one so the 1-byte band starts
// at value 1 instead of 0.
func EncodeNoZero(dst []byte, v uint64) (int, error) {
	if v == 0 {
		return 0, errs.ErrValueOutOfRange
	}

	return encodeSplit(dst, v-1)
}

// DecodeNoZero reads a value written by EncodeNoZero.
func DecodeNoZero(src []byte) (uint64, int, error) {
	v, n, err := SplitDecode(src)
	if err != nil {
		return 0, n, err
	}

	return v + 1, n, nil
}
