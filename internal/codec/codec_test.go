package codec

import (
	"bytes"
	"errors"
	"testing"
)

type pair struct {
	a    uint32
	blob []byte
}

func (p pair) EncodeStatic(e *Encoder) {
	e.U32(p.a)
	e.Length(len(p.blob))
}

func (p pair) EncodeDynamic(e *Encoder) {
	e.Blob(p.blob)
}

func (p pair) SerializedSize() int {
	return 2*WordSize + Padded(len(p.blob))
}

func decodePair(d *Decoder) (pair, error) {
	a, err := d.U32()
	if err != nil {
		return pair{}, err
	}
	n, err := d.Length()
	if err != nil {
		return pair{}, err
	}
	blob, err := d.Blob(n)
	if err != nil {
		return pair{}, err
	}
	return pair{a: a, blob: blob}, nil
}

func TestPadded(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0}, {1, 8}, {7, 8}, {8, 8}, {9, 16}, {20, 24}, {32, 32},
	}
	for _, tt := range tests {
		if got := Padded(tt.in); got != tt.want {
			t.Fatalf("Padded(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMustAlignPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustAlign(12) did not panic")
		}
	}()
	MustAlign(12)
}

func TestEncoderLayout(t *testing.T) {
	e := NewEncoder(0)
	e.U8(0xab)
	e.U16(0x0102)
	e.Array([]byte{1, 2, 3, 4})
	e.Blob(nil)

	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0xab,
		0, 0, 0, 0, 0, 0, 0x01, 0x02,
		1, 2, 3, 4, 0, 0, 0, 0,
	}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("Bytes() = %x, want %x", e.Bytes(), want)
	}
	if err := e.Aligned(); err != nil {
		t.Fatalf("Aligned() error = %v", err)
	}

	e.buf = append(e.buf, 1)
	if err := e.Aligned(); !errors.Is(err, ErrWrongAlign) {
		t.Fatalf("Aligned() error = %v, want ErrWrongAlign", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	items := []pair{
		{a: 1, blob: []byte("abc")},
		{a: 2},
		{a: 3, blob: bytes.Repeat([]byte{0xff}, 9)},
	}
	e := NewEncoder(SequenceSize(items))
	EncodeSequence(e, items)
	if e.Len() != SequenceSize(items) {
		t.Fatalf("encoded %d bytes, SequenceSize() = %d", e.Len(), SequenceSize(items))
	}

	d := NewDecoder(e.Bytes())
	got, err := DecodeSequence(d, uint64(len(items)), 2*WordSize, decodePair)
	if err != nil {
		t.Fatalf("DecodeSequence() error = %v", err)
	}
	if d.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after decode", d.Remaining())
	}
	for i := range items {
		if got[i].a != items[i].a || !bytes.Equal(got[i].blob, items[i].blob) {
			t.Fatalf("item %d = %+v, want %+v", i, got[i], items[i])
		}
	}
}

func TestDecoderErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		read    func(d *Decoder) error
		wantErr error
	}{
		{
			name:    "short word",
			data:    []byte{1, 2, 3},
			read:    func(d *Decoder) error { _, err := d.Word(); return err },
			wantErr: ErrBufferTooShort,
		},
		{
			name:    "u8 padding",
			data:    []byte{0, 0, 0, 0, 0, 0, 1, 0},
			read:    func(d *Decoder) error { _, err := d.U8(); return err },
			wantErr: ErrNonZeroPadding,
		},
		{
			name:    "u32 padding",
			data:    []byte{0, 0, 0, 1, 0, 0, 0, 0},
			read:    func(d *Decoder) error { _, err := d.U32(); return err },
			wantErr: ErrNonZeroPadding,
		},
		{
			name:    "blob padding",
			data:    []byte{1, 2, 3, 0, 0, 0, 0, 9},
			read:    func(d *Decoder) error { _, err := d.Blob(3); return err },
			wantErr: ErrNonZeroPadding,
		},
		{
			name:    "blob longer than buffer",
			data:    make([]byte, 8),
			read:    func(d *Decoder) error { _, err := d.Blob(1 << 62); return err },
			wantErr: ErrBufferTooShort,
		},
		{
			name:    "length longer than buffer",
			data:    []byte{0, 0, 0, 0, 0, 0, 0, 9},
			read:    func(d *Decoder) error { _, err := d.Length(); return err },
			wantErr: ErrBufferTooShort,
		},
		{
			name:    "unknown discriminant",
			data:    []byte{0, 0, 0, 0, 0, 0, 0, 3},
			read:    func(d *Decoder) error { _, err := d.Discriminant(3); return err },
			wantErr: ErrUnknownDiscriminant,
		},
		{
			name: "sequence count beyond buffer",
			data: make([]byte, 16),
			read: func(d *Decoder) error {
				_, err := DecodeSequence(d, 3, 2*WordSize, decodePair)
				return err
			},
			wantErr: ErrBufferTooShort,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(NewDecoder(tt.data)); !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeInto(t *testing.T) {
	v := pair{a: 7, blob: []byte{1}}
	if _, err := EncodeInto(v, make([]byte, v.SerializedSize()-1)); !errors.Is(err, ErrBufferTooShort) {
		t.Fatalf("EncodeInto() error = %v, want ErrBufferTooShort", err)
	}

	dst := make([]byte, v.SerializedSize()+8)
	n, err := EncodeInto(v, dst)
	if err != nil {
		t.Fatalf("EncodeInto() error = %v", err)
	}
	if !bytes.Equal(dst[:n], Encode(v)) {
		t.Fatalf("EncodeInto() = %x, want %x", dst[:n], Encode(v))
	}
}
