package forcodec

import (
	"testing"

	"github.com/kelindar/varkit/errs"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []uint64{5, 5, 6, 100, 5}

	data, err := Encode(values)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestForClusteredScenario(t *testing.T) {
	// Concrete end-to-end scenario: 100 consecutive values starting at
	// 1_000_000 pack into a header plus 100 single-byte offsets.
	values := make([]uint64, 100)
	for i := range values {
		values[i] = 1_000_000 + uint64(i)
	}

	data, err := Encode(values)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), 120)

	hdr, headerLen, err := ReadHeader(data)
	require.NoError(t, err)
	require.EqualValues(t, 1, hdr.OffsetWidth)
	require.Equal(t, 100, hdr.Count)
	require.Equal(t, len(data), headerLen+100)

	v, err := GetAt(data, 42)
	require.NoError(t, err)
	require.EqualValues(t, 1_000_042, v)
}

func TestGetAtOutOfRange(t *testing.T) {
	data, err := Encode([]uint64{1, 2, 3})
	require.NoError(t, err)

	_, err = GetAt(data, 3)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)

	_, err = GetAt(data, -1)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)
}

func TestAnalyzeEmpty(t *testing.T) {
	min, width := Analyze(nil)
	require.EqualValues(t, 0, min)
	require.EqualValues(t, 1, width)
}

func TestEncodeDecodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEncodeDecodeAllEqual(t *testing.T) {
	values := []uint64{42, 42, 42, 42}

	data, err := Encode(values)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, values, got)
}
