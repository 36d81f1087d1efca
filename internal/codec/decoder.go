package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decoder reads an encoding from a byte slice.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a Decoder positioned at the start of b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Offset returns the number of bytes consumed.
func (d *Decoder) Offset() int {
	return d.off
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

func (d *Decoder) take(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrBufferTooShort, n, d.off, d.Remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// Word reads one big-endian word.
func (d *Decoder) Word() (uint64, error) {
	b, err := d.take(WordSize)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (d *Decoder) narrow(max uint64) (uint64, error) {
	start := d.off
	v, err := d.Word()
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, fmt.Errorf("%w: word at offset %d exceeds %d", ErrNonZeroPadding, start, max)
	}
	return v, nil
}

// U8 reads a right-justified byte and verifies the padding.
func (d *Decoder) U8() (uint8, error) {
	v, err := d.narrow(math.MaxUint8)
	return uint8(v), err
}

// U16 reads a right-justified uint16 and verifies the padding.
func (d *Decoder) U16() (uint16, error) {
	v, err := d.narrow(math.MaxUint16)
	return uint16(v), err
}

// U32 reads a right-justified uint32 and verifies the padding.
func (d *Decoder) U32() (uint32, error) {
	v, err := d.narrow(math.MaxUint32)
	return uint32(v), err
}

// Length reads a count word. The count is bounded by the remaining bytes so that it can be used
// for allocation safely: every counted element occupies at least one byte.
func (d *Decoder) Length() (uint64, error) {
	n, err := d.Word()
	if err != nil {
		return 0, err
	}
	if n > uint64(d.Remaining()) {
		return 0, fmt.Errorf("%w: length %d exceeds %d remaining bytes", ErrBufferTooShort, n, d.Remaining())
	}
	return n, nil
}

// Discriminant reads an enum tag and checks it against the number of variants.
func (d *Decoder) Discriminant(variants uint64) (uint64, error) {
	tag, err := d.Word()
	if err != nil {
		return 0, err
	}
	if tag >= variants {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDiscriminant, tag)
	}
	return tag, nil
}

// Array fills dst and skips the padding that follows it.
func (d *Decoder) Array(dst []byte) error {
	b, err := d.Blob(uint64(len(dst)))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// Blob reads n raw bytes followed by zero padding and returns a copy of the bytes. An empty
// blob decodes to nil.
func (d *Decoder) Blob(n uint64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if n > uint64(d.Remaining()) {
		return nil, fmt.Errorf("%w: blob of %d bytes at offset %d, have %d", ErrBufferTooShort, n, d.off, d.Remaining())
	}
	raw, err := d.take(Padded(int(n)))
	if err != nil {
		return nil, err
	}
	for _, p := range raw[n:] {
		if p != 0 {
			return nil, fmt.Errorf("%w: blob padding at offset %d", ErrNonZeroPadding, d.off-len(raw)+int(n))
		}
	}

	out := make([]byte, n)
	copy(out, raw[:n])
	return out, nil
}
