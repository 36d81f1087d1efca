// Package merkle computes the binary and sparse Merkle roots used for contract code, predicate
// owners and initial contract state.
package merkle

import (
	"bytes"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

// ChunkSize is the leaf size used when rooting code.
const ChunkSize = 8

func leafHash(data []byte) types.Bytes32 {
	return crypto.NewHasher().Chain([]byte{leafPrefix}).Chain(data).Digest()
}

func nodeHash(left, right types.Bytes32) types.Bytes32 {
	return crypto.NewHasher().Chain([]byte{nodePrefix}).Chain(left[:]).Chain(right[:]).Digest()
}

// BinaryRoot returns the root of a binary Merkle tree over leaves. Subtrees split at the largest
// power of two smaller than the leaf count. The empty tree roots to sha256 of nothing.
func BinaryRoot(leaves [][]byte) types.Bytes32 {
	if len(leaves) == 0 {
		return crypto.Hash(nil)
	}
	return binaryRoot(leaves)
}

func binaryRoot(leaves [][]byte) types.Bytes32 {
	if len(leaves) == 1 {
		return leafHash(leaves[0])
	}
	k := 1
	for k*2 < len(leaves) {
		k *= 2
	}
	return nodeHash(binaryRoot(leaves[:k]), binaryRoot(leaves[k:]))
}

// CodeRoot splits code into 8-byte chunks, zero padding the last one, and returns their binary root.
func CodeRoot(code []byte) types.Bytes32 {
	leaves := make([][]byte, 0, (len(code)+ChunkSize-1)/ChunkSize)
	for start := 0; start < len(code); start += ChunkSize {
		chunk := make([]byte, ChunkSize)
		copy(chunk, code[start:min(start+ChunkSize, len(code))])
		leaves = append(leaves, chunk)
	}
	return BinaryRoot(leaves)
}

// Entry is a sparse tree leaf.
type Entry struct {
	Key   types.Bytes32
	Value []byte
}

type sparseLeaf struct {
	key  types.Bytes32
	hash types.Bytes32
}

// SparseRoot returns the root of a 256-level sparse Merkle tree holding entries. A subtree with a
// single leaf is represented by that leaf, an empty subtree by the zero hash. A key written more
// than once keeps its last value.
func SparseRoot(entries []Entry) types.Bytes32 {
	byKey := make(map[types.Bytes32]types.Bytes32, len(entries))
	for _, e := range entries {
		valueHash := crypto.Hash(e.Value)
		byKey[e.Key] = crypto.NewHasher().
			Chain([]byte{leafPrefix}).
			Chain(e.Key[:]).
			Chain(valueHash[:]).
			Digest()
	}

	leaves := make([]sparseLeaf, 0, len(byKey))
	for k, h := range byKey {
		leaves = append(leaves, sparseLeaf{key: k, hash: h})
	}
	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i].key[:], leaves[j].key[:]) < 0
	})

	return sparseRoot(leaves, 0)
}

func sparseRoot(leaves []sparseLeaf, depth int) types.Bytes32 {
	switch len(leaves) {
	case 0:
		return types.Bytes32{}
	case 1:
		return leaves[0].hash
	}

	// leaves are sorted, so the ones with a zero bit at depth come first
	split := sort.Search(len(leaves), func(i int) bool {
		return bit(leaves[i].key, depth) == 1
	})
	return nodeHash(sparseRoot(leaves[:split], depth+1), sparseRoot(leaves[split:], depth+1))
}

func bit(key types.Bytes32, depth int) byte {
	return (key[depth/8] >> (7 - uint(depth%8))) & 1
}
