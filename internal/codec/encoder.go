package codec

import "encoding/binary"

var zeroPad [WordSize]byte

// Encoder accumulates an encoding. It never fails on its own; alignment is verified with Aligned.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with the given capacity hint.
func NewEncoder(capacity int) *Encoder {
	return &Encoder{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Aligned returns ErrWrongAlign when the written length is not a word multiple.
func (e *Encoder) Aligned() error {
	if len(e.buf)%WordSize != 0 {
		return ErrWrongAlign
	}
	return nil
}

// Word writes v as one big-endian word.
func (e *Encoder) Word(v uint64) {
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
}

// U8 writes v right-justified in one word.
func (e *Encoder) U8(v uint8) {
	e.Word(uint64(v))
}

// U16 writes v right-justified in one word.
func (e *Encoder) U16(v uint16) {
	e.Word(uint64(v))
}

// U32 writes v right-justified in one word.
func (e *Encoder) U32(v uint32) {
	e.Word(uint64(v))
}

// Length writes a count as one word.
func (e *Encoder) Length(n int) {
	e.Word(uint64(n))
}

// Discriminant writes an enum tag as one word.
func (e *Encoder) Discriminant(tag uint64) {
	e.Word(tag)
}

// Array writes a fixed-size byte array followed by zero padding to the next word.
func (e *Encoder) Array(b []byte) {
	e.Blob(b)
}

// Blob writes raw bytes followed by zero padding to the next word.
func (e *Encoder) Blob(b []byte) {
	e.buf = append(e.buf, b...)
	if pad := Padded(len(b)) - len(b); pad > 0 {
		e.buf = append(e.buf, zeroPad[:pad]...)
	}
}
