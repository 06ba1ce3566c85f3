package trie

import (
	"os"

	"github.com/kelindar/varkit/compress"
)

// SaveBytes serializes t and compresses the result with codec, a
// convenience for callers persisting a trie to disk or object storage.
// The compression layer is a storage optimization only: the uncompressed
// output of Serialize is always a complete, valid envelope on its own.
func (t *Trie) SaveBytes(codec compress.Codec) ([]byte, error) {
	raw, err := t.Serialize()
	if err != nil {
		return nil, err
	}

	return codec.Compress(raw)
}

// LoadBytes reverses SaveBytes.
func LoadBytes(data []byte, codec compress.Codec) (*Trie, error) {
	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}

	return Deserialize(raw)
}

// SaveFile serializes t, compresses it with codec, and writes the result
// to path.
func (t *Trie) SaveFile(path string, codec compress.Codec) error {
	data, err := t.SaveBytes(codec)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadFile reads path and reverses SaveFile.
func LoadFile(path string, codec compress.Codec) (*Trie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return LoadBytes(data, codec)
}
