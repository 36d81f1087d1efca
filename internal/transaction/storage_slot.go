package transaction

import (
	"bytes"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// StorageSlotSize is the encoded size of a StorageSlot.
const StorageSlotSize = 64

// StorageSlot is an initial contract storage entry.
type StorageSlot struct {
	Key   types.Bytes32 `json:"key"`
	Value types.Bytes32 `json:"value"`
}

// EncodeStatic implements codec.Encodable.
func (s StorageSlot) EncodeStatic(e *codec.Encoder) {
	e.Array(s.Key[:])
	e.Array(s.Value[:])
}

// EncodeDynamic implements codec.Encodable.
func (StorageSlot) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (StorageSlot) SerializedSize() int {
	return StorageSlotSize
}

// DecodeStorageSlot reads a StorageSlot.
func DecodeStorageSlot(d *codec.Decoder) (StorageSlot, error) {
	var s StorageSlot
	if err := d.Array(s.Key[:]); err != nil {
		return StorageSlot{}, fmt.Errorf("storage slot key: %w", err)
	}
	if err := d.Array(s.Value[:]); err != nil {
		return StorageSlot{}, fmt.Errorf("storage slot value: %w", err)
	}
	return s, nil
}

// Compare orders slots by key, then by value.
func (s StorageSlot) Compare(o StorageSlot) int {
	if c := bytes.Compare(s.Key[:], o.Key[:]); c != 0 {
		return c
	}
	return bytes.Compare(s.Value[:], o.Value[:])
}
