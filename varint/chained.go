package varint

import "github.com/kelindar/varkit/errs"

// Chained is the 7-bit continuation-byte codec (spec §4.4), bit-exact with
// the varint format shared by SQLite3 and LevelDB. Groups of 7 bits are
// stored big-endian (most significant group first); every byte but the
// last carries a continuation bit (0x80). Values needing more than 8
// groups (i.e. v >= 2^56) instead use a 9-byte tail form: 8 continuation
// bytes carrying the high 56 bits, followed by one plain byte carrying the
// low 8 bits — giving full 64-bit coverage in at most 9 bytes rather than
// the 10 a naive 7-bit grouping would need.
const chainedTailThreshold = uint64(1) << 56

// ChainedLen returns the number of bytes ChainedEncode(v) will write.
func ChainedLen(v uint64) int {
	if v >= chainedTailThreshold {
		return 9
	}

	n := 1
	for x := v; x > 0x7f; x >>= 7 {
		n++
	}

	return n
}

// ChainedEncode writes the Chained encoding of v into dst, returning the
// number of bytes written.
func ChainedEncode(dst []byte, v uint64) (int, error) {
	n := ChainedLen(v)
	if len(dst) < n {
		return 0, errs.ErrBufferTooSmall
	}

	if n == 9 {
		dst[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			dst[i] = byte(v&0x7f) | 0x80
			v >>= 7
		}

		return 9, nil
	}

	// Build groups least-significant-first, then reverse into dst so the
	// most significant group lands at dst[0] and the terminal
	// (no-continuation) group lands at dst[n-1].
	var buf [8]byte
	x := v
	for i := range n {
		buf[i] = byte(x&0x7f) | 0x80
		x >>= 7
	}
	buf[0] &^= 0x80

	for i, j := 0, n-1; j >= 0; i, j = i+1, j-1 {
		dst[i] = buf[j]
	}

	return n, nil
}

// ChainedDecode reads a Chained-encoded value from src, returning the
// decoded value and the number of bytes consumed.
func ChainedDecode(src []byte) (uint64, int, error) {
	var v uint64

	for i := range 8 {
		if i >= len(src) {
			return 0, 0, errs.ErrBufferTooSmall
		}
		b := src[i]
		v = v<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}

	// All 8 groups carried a continuation bit: this is the 9-byte tail
	// form, and the 9th byte is a plain (unmasked) low byte.
	if len(src) < 9 {
		return 0, 0, errs.ErrBufferTooSmall
	}
	v = v<<8 | uint64(src[8])

	return v, 9, nil
}
