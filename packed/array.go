// Package packed implements a fixed-width homogeneous array over a
// bit-level slot store (spec §4.6). Every element occupies exactly W bits,
// W fixed at construction time and shared by the whole array; SLOT_BITS —
// the word size of the []uint64 slot store the bitstream package packs
// into — is fixed at
// 64, the widest of the {8,16,32,64} the format allows (spec §9, "Slot
// width").
package packed

import (
	"fmt"
	"sort"

	"github.com/kelindar/varkit/bitstream"
	"github.com/kelindar/varkit/endian"
	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/internal/options"
)

var littleEndian = endian.GetLittleEndianEngine()

// Config carries construction-time tuning for Array.
type Config struct {
	capacityHint int
}

// Option configures an Array at construction time.
type Option = options.Option[*Config]

// WithCapacityHint pre-sizes the backing store for at least n elements,
// avoiding reallocation on the first n Append calls.
func WithCapacityHint(n int) Option {
	return options.NoError(func(c *Config) { c.capacityHint = n })
}

// Array is a fixed-width, bit-packed array of unsigned integers.
type Array struct {
	width int
	len   int
	slots []uint64
}

// New creates an empty Array whose elements are each width bits wide.
func New(width int, opts ...Option) (*Array, error) {
	if width < 1 || width > bitstream.MaxWidth {
		return nil, fmt.Errorf("%w: element width %d", errs.ErrInvalidWidth, width)
	}

	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	a := &Array{width: width}
	if cfg.capacityHint > 0 {
		a.slots = make([]uint64, bitstream.NumSlots(cfg.capacityHint*width))
	}

	return a, nil
}

// Width returns the fixed bit width of every element.
func (a *Array) Width() int { return a.width }

// Len returns the number of elements currently stored.
func (a *Array) Len() int { return a.len }

// Cap returns the number of elements the backing store can hold before
// Append needs to grow it.
func (a *Array) Cap() int {
	if a.width == 0 {
		return 0
	}

	return (len(a.slots) * 64) / a.width
}

// Bytes returns the backing slot store as a little-endian byte slice,
// SLOT_BITS/8 bytes per slot, for callers embedding an Array in a larger
// serialized blob (spec §4.6).
func (a *Array) Bytes() []byte {
	out := make([]byte, len(a.slots)*8)
	for i, slot := range a.slots {
		littleEndian.PutUint64(out[i*8:], slot)
	}

	return out
}

func (a *Array) ensureCapacity(n int) {
	needed := bitstream.NumSlots(n * a.width)
	if len(a.slots) >= needed {
		return
	}

	grown := make([]uint64, needed)
	copy(grown, a.slots)
	a.slots = grown
}

func (a *Array) checkIndex(i int) error {
	if i < 0 || i >= a.len {
		return fmt.Errorf("%w: index %d, length %d", errs.ErrValueOutOfRange, i, a.len)
	}

	return nil
}

// Get returns the value at index i.
func (a *Array) Get(i int) (uint64, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}

	return bitstream.Get(a.slots, i*a.width, a.width)
}

// Set overwrites the value at index i. It returns errs.ErrValueOutOfRange
// if v does not fit in the array's configured bit width.
func (a *Array) Set(i int, v uint64) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	if err := a.checkValue(v); err != nil {
		return err
	}

	return bitstream.Set(a.slots, i*a.width, a.width, v)
}

func (a *Array) checkValue(v uint64) error {
	if a.width < 64 && v>>uint(a.width) != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", errs.ErrValueOutOfRange, v, a.width)
	}

	return nil
}

// Append adds v to the end of the array. It returns errs.ErrValueOutOfRange
// if v does not fit in the array's configured bit width.
func (a *Array) Append(v uint64) error {
	if err := a.checkValue(v); err != nil {
		return err
	}

	a.ensureCapacity(a.len + 1)
	if err := bitstream.Set(a.slots, a.len*a.width, a.width, v); err != nil {
		return err
	}
	a.len++

	return nil
}

// Insert places v at index i, shifting elements at i and beyond one
// position to the right. i may equal Len(), in which case Insert behaves
// like Append.
func (a *Array) Insert(i int, v uint64) error {
	if i < 0 || i > a.len {
		return fmt.Errorf("%w: index %d, length %d", errs.ErrValueOutOfRange, i, a.len)
	}
	if err := a.checkValue(v); err != nil {
		return err
	}

	a.ensureCapacity(a.len + 1)
	for k := a.len; k > i; k-- {
		prev, err := bitstream.Get(a.slots, (k-1)*a.width, a.width)
		if err != nil {
			return err
		}
		if err := bitstream.Set(a.slots, k*a.width, a.width, prev); err != nil {
			return err
		}
	}

	if err := bitstream.Set(a.slots, i*a.width, a.width, v); err != nil {
		return err
	}
	a.len++

	return nil
}

// BinarySearch locates target in an array assumed to be sorted ascending.
// It returns the index of target and true if found, or the index target
// would need to be inserted at to keep the array sorted, and false.
func (a *Array) BinarySearch(target uint64) (int, bool) {
	idx := sort.Search(a.len, func(i int) bool {
		v, _ := bitstream.Get(a.slots, i*a.width, a.width)
		return v >= target
	})

	if idx < a.len {
		if v, _ := bitstream.Get(a.slots, idx*a.width, a.width); v == target {
			return idx, true
		}
	}

	return idx, false
}

// InsertSorted inserts v at the position BinarySearch reports, preserving
// ascending order. Duplicate values are inserted immediately before the
// first existing occurrence. It returns the index v was inserted at.
func (a *Array) InsertSorted(v uint64) (int, error) {
	idx, _ := a.BinarySearch(v)
	if err := a.Insert(idx, v); err != nil {
		return 0, err
	}

	return idx, nil
}
