// Package crypto wraps the hashing and secp256k1 primitives the transaction model relies on.
package crypto

import (
	"crypto/sha256"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// Hash returns the sha256 digest of data.
func Hash(data []byte) types.Bytes32 {
	return types.Bytes32(chainhash.HashH(data))
}

// Hasher is a streaming sha256.
type Hasher struct {
	h hash.Hash
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

// Chain feeds data into the hasher and returns it for chaining.
func (h *Hasher) Chain(data []byte) *Hasher {
	_, _ = h.h.Write(data)
	return h
}

// Digest returns the digest of everything chained so far.
func (h *Hasher) Digest() types.Bytes32 {
	var out types.Bytes32
	h.h.Sum(out[:0])
	return out
}

// Reset clears the hasher.
func (h *Hasher) Reset() {
	h.h.Reset()
}
