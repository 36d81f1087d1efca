// Package codec implements the canonical word-aligned binary encoding.
//
// Every value is written as a static part followed by a dynamic part. The static part has a
// size that does not depend on variable-length content, so offsets of nested fields can be
// computed from lengths alone. Scalars narrower than a word are right-justified big-endian
// inside a full word, fixed byte arrays and blobs are zero padded to the next word boundary.
package codec

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// WordSize is the alignment unit of the encoding.
const WordSize = types.WordSize

var (
	// ErrNotAligned reports a fixed-size type whose size is not a word multiple.
	ErrNotAligned = errors.New("codec: size is not word aligned")
	// ErrBufferTooShort reports a buffer that cannot hold the value being read or written.
	ErrBufferTooShort = errors.New("codec: buffer too short")
	// ErrUnknownDiscriminant reports a tag with no matching variant.
	ErrUnknownDiscriminant = errors.New("codec: unknown discriminant")
	// ErrWrongAlign reports an encoding whose length is not a word multiple.
	ErrWrongAlign = errors.New("codec: wrong alignment")
	// ErrNonZeroPadding reports padding bytes that are not zero.
	ErrNonZeroPadding = errors.New("codec: non-zero padding")
)

// Encodable is implemented by every type with a canonical encoding.
type Encodable interface {
	// EncodeStatic writes the fixed-size prefix.
	EncodeStatic(e *Encoder)
	// EncodeDynamic writes the variable-length payload.
	EncodeDynamic(e *Encoder)
	// SerializedSize returns the total encoded size in bytes.
	SerializedSize() int
}

// Padded rounds n up to the next word boundary.
func Padded(n int) int {
	if r := n % WordSize; r != 0 {
		return n + WordSize - r
	}
	return n
}

// CheckAligned returns ErrNotAligned when size is not a word multiple.
func CheckAligned(size int) error {
	if size%WordSize != 0 {
		return fmt.Errorf("%w: %d", ErrNotAligned, size)
	}
	return nil
}

// MustAlign panics when size is not a word multiple. Use it for sizes known at init time.
func MustAlign(size int) int {
	if err := CheckAligned(size); err != nil {
		panic(err)
	}
	return size
}

// Encode returns the full encoding of v.
func Encode(v Encodable) []byte {
	e := NewEncoder(v.SerializedSize())
	v.EncodeStatic(e)
	v.EncodeDynamic(e)
	return e.Bytes()
}

// EncodeInto writes the encoding of v into dst and returns the number of bytes written.
func EncodeInto(v Encodable, dst []byte) (int, error) {
	size := v.SerializedSize()
	if len(dst) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooShort, size, len(dst))
	}

	e := &Encoder{buf: dst[:0:size]}
	v.EncodeStatic(e)
	v.EncodeDynamic(e)
	if err := e.Aligned(); err != nil {
		return 0, err
	}
	if e.Len() != size {
		return 0, fmt.Errorf("%w: wrote %d bytes, expected %d", ErrWrongAlign, e.Len(), size)
	}
	return size, nil
}

// EncodeSequence writes every element of items, static part then dynamic part, in order.
func EncodeSequence[T Encodable](e *Encoder, items []T) {
	for _, item := range items {
		item.EncodeStatic(e)
		item.EncodeDynamic(e)
	}
}

// SequenceSize returns the encoded size of items written by EncodeSequence.
func SequenceSize[T Encodable](items []T) int {
	size := 0
	for _, item := range items {
		size += item.SerializedSize()
	}
	return size
}

// DecodeSequence reads n elements using decode. minSize is the smallest encoded size of one
// element and bounds the up-front allocation by the bytes actually available.
func DecodeSequence[T any](d *Decoder, n uint64, minSize int, decode func(*Decoder) (T, error)) ([]T, error) {
	if minSize <= 0 {
		minSize = WordSize
	}
	if n > uint64(d.Remaining()/minSize) {
		return nil, fmt.Errorf("%w: %d elements of at least %d bytes, %d bytes left", ErrBufferTooShort, n, minSize, d.Remaining())
	}

	items := make([]T, 0, int(n))
	for i := uint64(0); i < n; i++ {
		item, err := decode(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
