package bitstream

import (
	"testing"

	"github.com/kelindar/varkit/errs"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	store := make([]uint64, 2)

	require.NoError(t, Set(store, 0, 4, 0xA))
	require.NoError(t, Set(store, 4, 4, 0x5))

	got, err := Get(store, 0, 4)
	require.NoError(t, err)
	require.EqualValues(t, 0xA, got)

	got, err = Get(store, 4, 4)
	require.NoError(t, err)
	require.EqualValues(t, 0x5, got)
}

func TestSetIsDisjoint(t *testing.T) {
	store := make([]uint64, 1)
	require.NoError(t, Set(store, 0, 8, 0xFF))
	require.NoError(t, Set(store, 8, 8, 0x00))

	got, err := Get(store, 0, 8)
	require.NoError(t, err)
	require.EqualValues(t, 0xFF, got, "writing the second field must not clobber the first")
}

func TestCrossSlotStraddle(t *testing.T) {
	store := make([]uint64, 2)
	// A 40-bit value starting at bit 40 straddles slot 0 (bits 40..63,
	// 24 bits) and slot 1 (bits 0..15, 16 bits).
	const value = uint64(0x123456789A)

	require.NoError(t, Set(store, 40, 40, value))
	got, err := Get(store, 40, 40)
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestNumSlots(t *testing.T) {
	require.Equal(t, 0, NumSlots(0))
	require.Equal(t, 1, NumSlots(1))
	require.Equal(t, 1, NumSlots(64))
	require.Equal(t, 2, NumSlots(65))
	require.Equal(t, 3, NumSlots(150))
}

func TestInvalidWidth(t *testing.T) {
	store := make([]uint64, 1)

	_, err := Get(store, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)

	_, err = Get(store, 0, 65)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)

	err = Set(store, 0, 0, 1)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)
}

func TestOutOfBoundsBufferTooSmall(t *testing.T) {
	store := make([]uint64, 1)

	_, err := Get(store, 60, 8)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)

	err = Set(store, 60, 8, 1)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)

	_, err = Get(store, 64, 1)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestMaxWidthWholeSlot(t *testing.T) {
	store := make([]uint64, 1)
	require.NoError(t, Set(store, 0, 64, ^uint64(0)))

	got, err := Get(store, 0, 64)
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), got)
}

func TestPrepareRestoreSignedRoundTrip(t *testing.T) {
	cases := []struct {
		v     int64
		width int
	}{
		{0, 4}, {7, 4}, {-8, 4}, {-1, 4},
		{1000, 12}, {-1000, 12},
		{0, 64}, {-1, 64}, {1<<62 - 1, 64}, {-(1 << 62), 64},
	}

	for _, c := range cases {
		u, err := PrepareSigned(c.v, c.width)
		require.NoError(t, err)

		got, err := RestoreSigned(u, c.width)
		require.NoError(t, err)
		require.Equal(t, c.v, got)
	}
}

func TestPrepareSignedInvalidWidth(t *testing.T) {
	_, err := PrepareSigned(1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)

	_, err = RestoreSigned(1, 65)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)
}
