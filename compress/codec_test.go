package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, ct := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, decompressed)
		})
	}
}

func TestCodecRoundTripEmpty(t *testing.T) {
	for _, ct := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCreateCodecInvalid(t *testing.T) {
	_, err := CreateCodec(CompressionType(0xff))
	require.Error(t, err)
}

func TestGetCodecUnsupported(t *testing.T) {
	_, err := GetCodec(CompressionType(0xff))
	require.Error(t, err)
}

func TestCompressionStats(t *testing.T) {
	s := CompressionStats{OriginalSize: 100, CompressedSize: 40}
	require.InDelta(t, 0.4, s.CompressionRatio(), 0.0001)
	require.InDelta(t, 60.0, s.SpaceSavings(), 0.0001)
}

func TestCompressionStatsZeroOriginal(t *testing.T) {
	s := CompressionStats{}
	require.Equal(t, 0.0, s.CompressionRatio())
}
