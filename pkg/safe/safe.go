// Package safe provides overflow-checked integer conversions and arithmetic.
package safe

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

var ErrOverflow = errors.New("integer overflow")

type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint8 converts v to uint8 with range validation.
func Uint8[T integer](v T) (uint8, error) {
	u, err := Uint64(v)
	if err != nil || u > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %d out of uint8 range", ErrOverflow, v)
	}
	return uint8(u), nil
}

// Uint32 converts v to uint32 with range validation.
func Uint32[T integer](v T) (uint32, error) {
	u, err := Uint64(v)
	if err != nil || u > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d out of uint32 range", ErrOverflow, v)
	}
	return uint32(u), nil
}

// Uint64 converts v to uint64, rejecting negative values.
func Uint64[T integer](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d out of uint64 range", ErrOverflow, v)
	}
	return uint64(v), nil
}

// Add returns a+b or ErrOverflow when the sum wraps.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrOverflow when b exceeds a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// Mul returns a*b or ErrOverflow when the product does not fit.
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}
