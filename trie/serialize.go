package trie

import (
	"fmt"

	"github.com/kelindar/varkit/bitstream"
	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/internal/pool"
	"github.com/kelindar/varkit/varint"
)

// magic identifies a serialized trie envelope; version allows the wire
// format to evolve without breaking readers of the current version.
var magic = [4]byte{'T', 'R', 'I', 'E'}

const version = 1

// Serialize writes the trie as a self-describing byte envelope: a magic
// number and version, followed by the pattern, node, and subscriber
// counts, followed by the root node and its descendants in depth-first
// order.
func (t *Trie) Serialize() ([]byte, error) {
	buf := pool.Get()
	defer pool.Put(buf)

	buf.MustWrite(magic[:])
	buf.MustWrite([]byte{version})

	var tmp [9]byte
	n, err := varint.TaggedEncode(tmp[:], uint64(t.patternCount))
	if err != nil {
		return nil, err
	}
	buf.MustWrite(tmp[:n])

	n, err = varint.TaggedEncode(tmp[:], uint64(t.nodeCount))
	if err != nil {
		return nil, err
	}
	buf.MustWrite(tmp[:n])

	n, err = varint.TaggedEncode(tmp[:], uint64(t.subscriberCount))
	if err != nil {
		return nil, err
	}
	buf.MustWrite(tmp[:n])

	if err := serializeNode(buf, t.root); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func serializeNode(buf *pool.ByteBuffer, node *Node) error {
	var slots [1]uint64
	if err := bitstream.Set(slots[:], 0, 1, boolToUint64(node.Terminal)); err != nil {
		return err
	}
	if err := bitstream.Set(slots[:], 1, 2, uint64(node.Kind)); err != nil {
		return err
	}
	buf.MustWrite([]byte{byte(slots[0])})

	var tmp [9]byte
	segBytes := []byte(node.Segment)
	n, err := varint.TaggedEncode(tmp[:], uint64(len(segBytes)))
	if err != nil {
		return err
	}
	buf.MustWrite(tmp[:n])
	buf.MustWrite(segBytes)

	if node.Terminal {
		n, err := varint.TaggedEncode(tmp[:], uint64(len(node.Subscribers)))
		if err != nil {
			return err
		}
		buf.MustWrite(tmp[:n])
		for _, sub := range node.Subscribers {
			n, err := varint.TaggedEncode(tmp[:], sub.ID)
			if err != nil {
				return err
			}
			buf.MustWrite(tmp[:n])

			nameBytes := []byte(sub.Name)
			n, err = varint.TaggedEncode(tmp[:], uint64(len(nameBytes)))
			if err != nil {
				return err
			}
			buf.MustWrite(tmp[:n])
			buf.MustWrite(nameBytes)
		}
	}

	n, err = varint.TaggedEncode(tmp[:], uint64(len(node.Children)))
	if err != nil {
		return err
	}
	buf.MustWrite(tmp[:n])

	for _, child := range node.Children {
		if err := serializeNode(buf, child); err != nil {
			return err
		}
	}

	return nil
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

// Deserialize parses a byte envelope produced by Serialize into a fresh
// Trie.
func Deserialize(src []byte) (*Trie, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil trie envelope", errs.ErrNullInput)
	}
	if len(src) < 5 || [4]byte{src[0], src[1], src[2], src[3]} != magic {
		return nil, fmt.Errorf("%w: missing TRIE magic", errs.ErrInvalidFormat)
	}
	if src[4] != version {
		return nil, fmt.Errorf("%w: unsupported trie envelope version %d", errs.ErrInvalidFormat, src[4])
	}

	offset := 5

	patternCount, n, err := varint.TaggedDecode(src[offset:])
	if err != nil {
		return nil, err
	}
	offset += n

	nodeCount, n, err := varint.TaggedDecode(src[offset:])
	if err != nil {
		return nil, err
	}
	offset += n

	subscriberCount, n, err := varint.TaggedDecode(src[offset:])
	if err != nil {
		return nil, err
	}
	offset += n

	root, n, err := deserializeNode(src[offset:])
	if err != nil {
		return nil, err
	}
	offset += n

	return &Trie{
		root:            root,
		patternCount:    int(patternCount),
		nodeCount:       int(nodeCount),
		subscriberCount: int(subscriberCount),
	}, nil
}

func deserializeNode(src []byte) (*Node, int, error) {
	if len(src) < 1 {
		return nil, 0, errs.ErrBufferTooSmall
	}

	var slots [1]uint64
	slots[0] = uint64(src[0])
	terminalBit, err := bitstream.Get(slots[:], 0, 1)
	if err != nil {
		return nil, 0, err
	}
	kindBits, err := bitstream.Get(slots[:], 1, 2)
	if err != nil {
		return nil, 0, err
	}
	offset := 1

	segLen, n, err := varint.TaggedDecode(src[offset:])
	if err != nil {
		return nil, 0, err
	}
	offset += n
	if len(src) < offset+int(segLen) {
		return nil, 0, errs.ErrBufferTooSmall
	}
	segment := string(src[offset : offset+int(segLen)])
	offset += int(segLen)

	node := newNode(segment, Kind(kindBits))
	node.Terminal = terminalBit == 1

	if node.Terminal {
		subCount, n, err := varint.TaggedDecode(src[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n
		for range int(subCount) {
			id, n, err := varint.TaggedDecode(src[offset:])
			if err != nil {
				return nil, 0, err
			}
			offset += n

			nameLen, n, err := varint.TaggedDecode(src[offset:])
			if err != nil {
				return nil, 0, err
			}
			offset += n
			if len(src) < offset+int(nameLen) {
				return nil, 0, errs.ErrBufferTooSmall
			}
			name := string(src[offset : offset+int(nameLen)])
			offset += int(nameLen)

			node.addSubscriber(id, name)
		}
	}

	childCount, n, err := varint.TaggedDecode(src[offset:])
	if err != nil {
		return nil, 0, err
	}
	offset += n

	for range int(childCount) {
		child, n, err := deserializeNode(src[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n
		node.addChild(child)
	}

	return node, offset, nil
}
