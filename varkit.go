// Package varkit implements a family of byte-oriented varint codecs
// (External, Tagged, Split, Chained), the bit-level containers built on
// top of them (Bitstream, Packed array), two array-level compression
// codecs (Delta+ZigZag, Frame-of-Reference), a matrix/vector dimension
// descriptor, and an AMQP-style pattern-matching trie.
//
// Each concern lives in its own subpackage: varint, bitstream, packed,
// deltacodec, forcodec, dimension, trie, compress. This root package adds
// only what genuinely spans them: the package documentation and Codec, a
// tagged-variant wrapper for callers that need to choose among the four
// varint encodings at runtime rather than at compile time.
package varkit

import (
	"fmt"

	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/varint"
)

// Kind identifies one of the four varint encodings a Codec can dispatch
// to. The library-level "choose a codec" operation maps naturally to a
// tagged-variant wrapper carrying the kind and any codec-specific
// parameter (External's fixed byte width); no v-table is required, a
// switch over the variant suffices.
type Kind uint8

const (
	// External selects the fixed-width little-endian codec (varint.PutFixed
	// / varint.GetFixed). Its width is not self-describing and is carried
	// on the Codec value itself.
	External Kind = iota
	// Tagged selects the self-describing, sort-preserving codec
	// (varint.TaggedEncode / varint.TaggedDecode).
	Tagged
	// Split selects the three-level self-describing codec
	// (varint.SplitEncode / varint.SplitDecode).
	Split
	// Chained selects the 7-bit continuation codec
	// (varint.ChainedEncode / varint.ChainedDecode).
	Chained
)

// String returns the Kind's name, for logging and error messages.
func (k Kind) String() string {
	switch k {
	case External:
		return "external"
	case Tagged:
		return "tagged"
	case Split:
		return "split"
	case Chained:
		return "chained"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Codec is a runtime-selectable varint encoding: a Kind plus the one
// parameter a variant might need (External's Width; ignored by the three
// self-describing variants). Callers who know which codec they want at
// compile time should call the varint package's functions directly —
// Codec exists for code paths that pick the encoding dynamically, e.g.
// from a stored format tag or a configuration value.
type Codec struct {
	Kind  Kind
	Width varint.Width // meaningful only when Kind == External
}

// NewExternalCodec returns a Codec that encodes with the fixed-width
// External format at the given byte width.
func NewExternalCodec(w varint.Width) Codec {
	return Codec{Kind: External, Width: w}
}

// NewCodec returns a Codec for one of the three self-describing variants
// (Tagged, Split, Chained). Use NewExternalCodec for External, since it
// additionally needs a width.
func NewCodec(kind Kind) Codec {
	return Codec{Kind: kind}
}

// Encode writes v to dst using c's variant, returning the number of bytes
// written.
func (c Codec) Encode(dst []byte, v uint64) (int, error) {
	switch c.Kind {
	case External:
		return varint.PutFixed(dst, v, c.Width)
	case Tagged:
		return varint.TaggedEncode(dst, v)
	case Split:
		return varint.SplitEncode(dst, v)
	case Chained:
		return varint.ChainedEncode(dst, v)
	default:
		return 0, fmt.Errorf("%w: unknown codec kind %s", errs.ErrInvalidFormat, c.Kind)
	}
}

// Decode reads a value from src using c's variant, returning the decoded
// value and the number of bytes consumed.
func (c Codec) Decode(src []byte) (uint64, int, error) {
	switch c.Kind {
	case External:
		return varint.GetFixed(src, c.Width)
	case Tagged:
		return varint.TaggedDecode(src)
	case Split:
		return varint.SplitDecode(src)
	case Chained:
		return varint.ChainedDecode(src)
	default:
		return 0, 0, fmt.Errorf("%w: unknown codec kind %s", errs.ErrInvalidFormat, c.Kind)
	}
}

// Len reports the encoded length of v under c's variant, without writing
// anything. For External this is simply c.Width.
func (c Codec) Len(v uint64) int {
	switch c.Kind {
	case External:
		return int(c.Width)
	case Tagged:
		return varint.TaggedLen(v)
	case Split:
		return varint.SplitLen(v)
	case Chained:
		return varint.ChainedLen(v)
	default:
		return 0
	}
}
