package compress

// ZstdCompressor provides Zstandard compression for serialized trie
// envelopes.
//
// This compressor favors compression ratio over speed, making it best
// suited to trie.SaveFile snapshots that are written rarely and read back
// occasionally: cold storage of a subscription table, or shipping a
// snapshot over a bandwidth-constrained link.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
