// Package bitstream implements arbitrary bit-width, arbitrary bit-offset
// access over a slice of 64-bit words (spec §4.5). Values are packed
// LSB-first within a slot: the least significant bit of a slot holds the
// lowest global bit position that slot covers. A value whose width
// carries it past bit 63 of its starting slot straddles into the low
// bits of the next slot.
//
// This is the substrate packed.Array builds fixed-width columns on top
// of; it has no knowledge of arrays, only of bit positions.
package bitstream

import (
	"fmt"

	"github.com/kelindar/varkit/errs"
)

// MaxWidth is the largest bit width Get/Set will address in a single call.
const MaxWidth = 64

func maskFor(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<uint(width) - 1
}

func checkWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return fmt.Errorf("%w: bit width %d", errs.ErrInvalidWidth, width)
	}

	return nil
}

// NumSlots returns the number of 64-bit words needed to hold bitCount bits.
func NumSlots(bitCount int) int {
	return (bitCount + 63) / 64
}

// Get reads a width-bit value starting at bitOffset (0-indexed, LSB-first)
// from store.
func Get(store []uint64, bitOffset, width int) (uint64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}
	if bitOffset < 0 {
		return 0, fmt.Errorf("%w: negative bit offset %d", errs.ErrValueOutOfRange, bitOffset)
	}

	slotIdx := bitOffset / 64
	bitInSlot := bitOffset % 64
	if slotIdx >= len(store) {
		return 0, errs.ErrBufferTooSmall
	}

	bitsInFirst := 64 - bitInSlot
	low := store[slotIdx] >> uint(bitInSlot)

	if width <= bitsInFirst {
		return low & maskFor(width), nil
	}

	if slotIdx+1 >= len(store) {
		return 0, errs.ErrBufferTooSmall
	}

	bitsInSecond := width - bitsInFirst
	high := store[slotIdx+1] & maskFor(bitsInSecond)

	return low | (high << uint(bitsInFirst)), nil
}

// Set writes the low width bits of value at bitOffset in store, clearing
// whatever was previously there.
func Set(store []uint64, bitOffset, width int, value uint64) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	if bitOffset < 0 {
		return fmt.Errorf("%w: negative bit offset %d", errs.ErrValueOutOfRange, bitOffset)
	}

	slotIdx := bitOffset / 64
	bitInSlot := bitOffset % 64
	if slotIdx >= len(store) {
		return errs.ErrBufferTooSmall
	}

	mask := maskFor(width)
	value &= mask
	bitsInFirst := 64 - bitInSlot

	store[slotIdx] = (store[slotIdx] &^ (mask << uint(bitInSlot))) | (value << uint(bitInSlot))

	if width > bitsInFirst {
		if slotIdx+1 >= len(store) {
			return errs.ErrBufferTooSmall
		}

		bitsInSecond := width - bitsInFirst
		highMask := maskFor(bitsInSecond)
		highValue := value >> uint(bitsInFirst)
		store[slotIdx+1] = (store[slotIdx+1] &^ highMask) | (highValue & highMask)
	}

	return nil
}

// PrepareSigned maps a signed value into its width-bit two's-complement
// representation, for storage via Set. It truncates silently if v does not
// fit in width bits; callers that need overflow detection should compare
// RestoreSigned(PrepareSigned(v, width), width) against v.
func PrepareSigned(v int64, width int) (uint64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}

	return uint64(v) & maskFor(width), nil
}

// RestoreSigned reconstructs a signed value from a width-bit two's
// complement representation produced by PrepareSigned, sign-extending the
// high bit.
func RestoreSigned(u uint64, width int) (int64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}

	u &= maskFor(width)
	if width == 64 {
		return int64(u), nil
	}

	signBit := uint64(1) << uint(width-1)
	if u&signBit != 0 {
		u |= ^maskFor(width)
	}

	return int64(u), nil
}
