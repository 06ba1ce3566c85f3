package varint

import (
	"fmt"
	"math"

	"github.com/kelindar/varkit/errs"
)

// AddChecked returns a+b, or errs.ErrOverflow if the unsigned sum would
// wrap past 2^64-1. Used by TaggedAdd (§4.2).
func AddChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("%w: %d + %d", errs.ErrOverflow, a, b)
	}

	return sum, nil
}

// SubChecked returns a-b, or errs.ErrOverflow if b > a (unsigned underflow).
func SubChecked(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", errs.ErrOverflow, a, b)
	}

	return a - b, nil
}

// AddCheckedSigned returns a+b, or errs.ErrOverflow if the sum would fall
// outside int64's range.
func AddCheckedSigned(a, b int64) (int64, error) {
	sum := a + b
	// Overflow occurs iff a and b share a sign but the result doesn't.
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, fmt.Errorf("%w: %d + %d", errs.ErrOverflow, a, b)
	}

	return sum, nil
}

// MaxUint64 is the largest value representable by any of this package's
// codecs; useful for bounds checks in callers.
const MaxUint64 = math.MaxUint64
