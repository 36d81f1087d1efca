package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
)

// Witness holds signature bytes or arbitrary data such as contract bytecode.
type Witness []byte

// EncodeStatic implements codec.Encodable.
func (w Witness) EncodeStatic(e *codec.Encoder) {
	e.Length(len(w))
}

// EncodeDynamic implements codec.Encodable.
func (w Witness) EncodeDynamic(e *codec.Encoder) {
	e.Blob(w)
}

// SerializedSize implements codec.Encodable.
func (w Witness) SerializedSize() int {
	return codec.WordSize + codec.Padded(len(w))
}

// DecodeWitness reads a Witness.
func DecodeWitness(d *codec.Decoder) (Witness, error) {
	n, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("witness length: %w", err)
	}
	data, err := d.Blob(n)
	if err != nil {
		return nil, fmt.Errorf("witness data: %w", err)
	}
	return Witness(data), nil
}
