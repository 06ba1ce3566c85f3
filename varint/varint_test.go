package varint

import (
	"bytes"
	"sort"
	"testing"

	"github.com/kelindar/varkit/errs"
	"github.com/stretchr/testify/require"
)

func TestWidthOfUnsigned(t *testing.T) {
	cases := []struct {
		v uint64
		w Width
	}{
		{0, 1}, {0xFF, 1}, {0x100, 2}, {0xFFFF, 2}, {0x10000, 3},
		{0xFFFFFFFF, 4}, {0x100000000, 5}, {MaxUint64, 8},
	}
	for _, c := range cases {
		require.Equal(t, c.w, WidthOfUnsigned(c.v))
	}
}

func TestPutGetFixedRoundTrip(t *testing.T) {
	for w := Width(1); w <= MaxWidth; w++ {
		buf := make([]byte, 8)
		max := uint64(1)<<(8*uint(w)) - 1
		if w == 8 {
			max = MaxUint64
		}
		n, err := PutFixed(buf, max, w)
		require.NoError(t, err)
		require.Equal(t, int(w), n)

		got, m, err := GetFixed(buf[:n], w)
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, max, got)
	}
}

func TestPutFixedInvalidWidth(t *testing.T) {
	_, err := PutFixed(make([]byte, 8), 1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)

	_, err = PutFixed(make([]byte, 8), 1, 9)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)
}

func TestPutFixedBufferTooSmall(t *testing.T) {
	_, err := PutFixed(make([]byte, 1), 1000, 4)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestPutFixedSignedRejectsNegative(t *testing.T) {
	_, err := PutFixedSigned(make([]byte, 8), -1, 4)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)
}

func TestPutFixedSignedRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	n, err := PutFixedSigned(buf, 12345, 4)
	require.NoError(t, err)

	got, _, err := GetFixedSigned(buf[:n], 4)
	require.NoError(t, err)
	require.EqualValues(t, 12345, got)
}

func TestTaggedRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 240, 241, 2287, 2288, 67823, 67824, 1<<24 - 1, 1 << 24, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		buf := make([]byte, 9)
		n, err := TaggedEncode(buf, v)
		require.NoError(t, err)
		require.Equal(t, TaggedLen(v), n)

		got, m, err := TaggedDecode(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, v, got)
	}
}

func TestTaggedSortPreservation(t *testing.T) {
	// Concrete end-to-end scenario: encoding these values and sorting the
	// resulting byte strings lexicographically must recover the original
	// ascending order.
	values := []uint64{0, 240, 241, 2287, 2288, 67823, 67824, 1 << 32, 1<<64 - 1}

	encoded := make([][]byte, len(values))
	for i, v := range values {
		buf := make([]byte, 9)
		n, err := TaggedEncode(buf, v)
		require.NoError(t, err)
		encoded[i] = buf[:n]
	}

	sorted := make([][]byte, len(encoded))
	copy(sorted, encoded)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i], sorted[j]) < 0 })

	for i := range sorted {
		require.Equal(t, encoded[i], sorted[i], "index %d out of order after byte-lexicographic sort", i)
	}
}

func TestTaggedDecodeBufferTooSmall(t *testing.T) {
	_, _, err := TaggedDecode(nil)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)

	_, _, err = TaggedDecode([]byte{250})
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestTaggedAdd(t *testing.T) {
	buf := make([]byte, 9)
	n, err := TaggedEncode(buf, 100)
	require.NoError(t, err)

	n2, err := TaggedAdd(buf[:n], 50)
	require.NoError(t, err)
	require.Equal(t, n, n2)

	got, _, err := TaggedDecode(buf[:n2])
	require.NoError(t, err)
	require.EqualValues(t, 150, got)
}

func TestTaggedAddOverflowsLength(t *testing.T) {
	buf := make([]byte, 9)
	n, err := TaggedEncode(buf, 240) // 1-byte encoding, top of its band
	require.NoError(t, err)

	_, err = TaggedAdd(buf[:n], 1) // 241 needs 2 bytes
	require.ErrorIs(t, err, errs.ErrOverflow)
}

func TestTaggedAddArithmeticOverflow(t *testing.T) {
	buf := make([]byte, 9)
	n, err := TaggedEncode(buf, MaxUint64)
	require.NoError(t, err)

	_, err = TaggedAdd(buf[:n], 1)
	require.ErrorIs(t, err, errs.ErrOverflow)
}

func TestSplitRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 16446, 16447, 16448, 1 << 20, 1<<64 - 1}
	for _, v := range values {
		buf := make([]byte, 9)
		n, err := SplitEncode(buf, v)
		require.NoError(t, err)
		require.Equal(t, SplitLen(v), n)

		got, m, err := SplitDecode(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, v, got)
	}
}

func TestSplitLengthBoundaries(t *testing.T) {
	require.Equal(t, 1, SplitLen(63))
	require.Equal(t, 2, SplitLen(64))
	require.Equal(t, 2, SplitLen(16446))
	// 16447 is the tail band's first value (tail 0, width 1): 2 bytes,
	// not the 3+ a literal reading of the length bands might suggest.
	require.Equal(t, 2, SplitLen(16447))
	require.Equal(t, 3, SplitLen(16447+256))
}

func TestSplitReversedRoundTrip(t *testing.T) {
	values := []uint64{0, 63, 64, 16446, 16447, 1 << 40}
	for _, v := range values {
		buf := make([]byte, 9)
		n, err := EncodeReversed(buf, v)
		require.NoError(t, err)

		got, m, err := DecodeReversed(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, v, got)
	}
}

func TestSplitNoZeroRoundTrip(t *testing.T) {
	_, err := EncodeNoZero(make([]byte, 9), 0)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)

	values := []uint64{1, 64, 16447, 1 << 30}
	for _, v := range values {
		buf := make([]byte, 9)
		n, err := EncodeNoZero(buf, v)
		require.NoError(t, err)

		got, m, err := DecodeNoZero(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, v, got)
	}
}

func TestChainedBoundaryLiterals(t *testing.T) {
	// Concrete end-to-end scenario from spec: exact byte sequences.
	cases := []struct {
		v    uint64
		want []byte
	}{
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x81, 0x80, 0x00}},
	}
	for _, c := range cases {
		buf := make([]byte, 9)
		n, err := ChainedEncode(buf, c.v)
		require.NoError(t, err)
		require.Equal(t, c.want, buf[:n])

		got, m, err := ChainedDecode(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, c.v, got)
	}
}

func TestChainedRoundTripFullRange(t *testing.T) {
	values := []uint64{0, 1, 126, 127, 128, 16383, 16384, 1 << 32, 1<<56 - 1, 1 << 56, MaxUint64}
	for _, v := range values {
		buf := make([]byte, 9)
		n, err := ChainedEncode(buf, v)
		require.NoError(t, err)
		require.Equal(t, ChainedLen(v), n)

		got, m, err := ChainedDecode(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, m)
		require.Equal(t, v, got)
	}
}

func TestChainedNineByteTail(t *testing.T) {
	require.Equal(t, 9, ChainedLen(MaxUint64))

	buf := make([]byte, 9)
	n, err := ChainedEncode(buf, MaxUint64)
	require.NoError(t, err)
	require.Equal(t, 9, n)

	got, m, err := ChainedDecode(buf[:n])
	require.NoError(t, err)
	require.Equal(t, 9, m)
	require.Equal(t, uint64(MaxUint64), got)
}

func TestChainedDecodeBufferTooSmall(t *testing.T) {
	_, _, err := ChainedDecode([]byte{0x81})
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestAddCheckedOverflow(t *testing.T) {
	_, err := AddChecked(MaxUint64, 1)
	require.ErrorIs(t, err, errs.ErrOverflow)

	got, err := AddChecked(1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, got)
}

func TestSubCheckedUnderflow(t *testing.T) {
	_, err := SubChecked(1, 2)
	require.ErrorIs(t, err, errs.ErrOverflow)

	got, err := SubChecked(5, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, got)
}

func TestAddCheckedSignedOverflow(t *testing.T) {
	_, err := AddCheckedSigned(1<<62, 1<<62)
	require.ErrorIs(t, err, errs.ErrOverflow)

	got, err := AddCheckedSigned(-5, 3)
	require.NoError(t, err)
	require.EqualValues(t, -2, got)
}
