// Package errs defines the closed error taxonomy shared by every codec in
// varkit. Every exported operation that can fail returns one of the
// sentinel errors below (optionally wrapped with additional context via
// fmt.Errorf("%w: ...")), so callers can use errors.Is regardless of which
// package raised the error.
package errs

import "errors"

var (
	// ErrBufferTooSmall is returned by an encoder when the destination buffer
	// cannot hold the encoded value, or by a decoder when the source buffer
	// is shorter than the encoding it claims to contain.
	ErrBufferTooSmall = errors.New("varkit: buffer too small")

	// ErrInvalidWidth is returned when a byte-width parameter falls outside
	// the range a codec supports (External and FOR codecs: 1..8).
	ErrInvalidWidth = errors.New("varkit: invalid width")

	// ErrOverflow is returned when a checked arithmetic operation would wrap
	// around, e.g. Tagged.Add on a value already at 2^64-1.
	ErrOverflow = errors.New("varkit: arithmetic overflow")

	// ErrNullInput is returned by trie.Deserialize (and LoadBytes/LoadFile,
	// which call it) when given a nil envelope buffer.
	ErrNullInput = errors.New("varkit: null input")

	// ErrInvalidFormat is returned when deserializing a trie envelope whose
	// magic, version, or structure does not match the wire contract.
	ErrInvalidFormat = errors.New("varkit: invalid format")

	// ErrValueOutOfRange is returned by packed.Array.Set when the value does
	// not fit in the array's configured bit width, and by the External
	// codec's signed convenience wrapper when given a negative value.
	ErrValueOutOfRange = errors.New("varkit: value out of range")

	// ErrTooManySubscribers is returned by trie.Trie.Insert when a pattern
	// already has the configured maximum number of distinct subscribers.
	ErrTooManySubscribers = errors.New("varkit: too many subscribers for pattern")
)
