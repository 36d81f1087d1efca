// Package types defines the fixed-size primitives shared by the transaction model.
package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Word is the unit of every encoded scalar.
type Word = uint64

// WordSize is the size of a Word in bytes.
const WordSize = 8

type (
	Bytes4  [4]byte
	Bytes8  [8]byte
	Bytes20 [20]byte
	Bytes32 [32]byte
	Bytes64 [64]byte

	// Address identifies an owner or recipient.
	Address [32]byte
	// AssetID identifies an asset. The zero value is the base asset.
	AssetID [32]byte
	// ContractID identifies a deployed contract.
	ContractID [32]byte
	// MessageID identifies a message input.
	MessageID [32]byte
	// Salt is the contract deployment salt.
	Salt [32]byte
)

// BaseAsset is the asset fees are paid in.
var BaseAsset = AssetID{}

var ErrInvalidHex = errors.New("invalid hex")

func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func decodeHex(dst []byte, text string) error {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	if len(text) != hex.EncodedLen(len(dst)) {
		return fmt.Errorf("%w: expected %d hex chars, got %d", ErrInvalidHex, hex.EncodedLen(len(dst)), len(text))
	}
	if _, err := hex.Decode(dst, []byte(text)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return nil
}

func (b Bytes4) String() string { return encodeHex(b[:]) }
func (b Bytes4) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b *Bytes4) UnmarshalText(text []byte) error { return decodeHex(b[:], string(text)) }

func (b Bytes8) String() string { return encodeHex(b[:]) }
func (b Bytes8) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b *Bytes8) UnmarshalText(text []byte) error { return decodeHex(b[:], string(text)) }

func (b Bytes20) String() string { return encodeHex(b[:]) }
func (b Bytes20) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b *Bytes20) UnmarshalText(text []byte) error { return decodeHex(b[:], string(text)) }

func (b Bytes32) String() string { return encodeHex(b[:]) }
func (b Bytes32) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b *Bytes32) UnmarshalText(text []byte) error { return decodeHex(b[:], string(text)) }
func (b Bytes32) IsZero() bool { return b == Bytes32{} }

func (b Bytes64) String() string { return encodeHex(b[:]) }
func (b Bytes64) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b *Bytes64) UnmarshalText(text []byte) error { return decodeHex(b[:], string(text)) }

func (a Address) String() string { return encodeHex(a[:]) }
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (a *Address) UnmarshalText(text []byte) error { return decodeHex(a[:], string(text)) }
func (a Address) IsZero() bool { return a == Address{} }

func (a AssetID) String() string { return encodeHex(a[:]) }
func (a AssetID) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (a *AssetID) UnmarshalText(text []byte) error { return decodeHex(a[:], string(text)) }
func (a AssetID) IsBase() bool { return a == BaseAsset }

// Compare orders asset ids bytewise.
func (a AssetID) Compare(b AssetID) int { return bytes.Compare(a[:], b[:]) }

func (c ContractID) String() string { return encodeHex(c[:]) }
func (c ContractID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *ContractID) UnmarshalText(text []byte) error { return decodeHex(c[:], string(text)) }

// Compare orders contract ids bytewise.
func (c ContractID) Compare(b ContractID) int { return bytes.Compare(c[:], b[:]) }

func (m MessageID) String() string { return encodeHex(m[:]) }
func (m MessageID) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *MessageID) UnmarshalText(text []byte) error { return decodeHex(m[:], string(text)) }

// Compare orders message ids bytewise.
func (m MessageID) Compare(b MessageID) int { return bytes.Compare(m[:], b[:]) }

func (s Salt) String() string { return encodeHex(s[:]) }
func (s Salt) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *Salt) UnmarshalText(text []byte) error { return decodeHex(s[:], string(text)) }

// ParseBytes32 parses a 32-byte hex string with an optional 0x prefix.
func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	err := b.UnmarshalText([]byte(s))
	return b, err
}

// ParseAddress parses a 32-byte hex address with an optional 0x prefix.
func ParseAddress(s string) (Address, error) {
	var a Address
	err := a.UnmarshalText([]byte(s))
	return a, err
}

// ParseAssetID parses a 32-byte hex asset id with an optional 0x prefix.
func ParseAssetID(s string) (AssetID, error) {
	var a AssetID
	err := a.UnmarshalText([]byte(s))
	return a, err
}
