// Package contract derives contract ids and roots from Create transactions.
package contract

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/merkle"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// seed is prepended to every contract id preimage ("FUEL").
var seed = [4]byte{0x46, 0x55, 0x45, 0x4c}

// ErrBytecodeWitnessIndex is returned when the bytecode witness of a Create does not exist.
var ErrBytecodeWitnessIndex = errors.New("bytecode witness index out of bounds")

// Root returns the code root of bytecode.
func Root(bytecode []byte) types.Bytes32 {
	return merkle.CodeRoot(bytecode)
}

// InitialStateRoot returns the state root of a contract deployed with slots.
func InitialStateRoot(slots []transaction.StorageSlot) types.Bytes32 {
	entries := make([]merkle.Entry, len(slots))
	for i, s := range slots {
		entries[i] = merkle.Entry{Key: s.Key, Value: s.Value[:]}
	}
	return merkle.SparseRoot(entries)
}

// DefaultStateRoot is the state root of a contract without storage slots.
func DefaultStateRoot() types.Bytes32 {
	return InitialStateRoot(nil)
}

// ID returns the id of the contract with the given salt, code root and state root.
func ID(salt types.Salt, root, stateRoot types.Bytes32) types.ContractID {
	return types.ContractID(crypto.NewHasher().
		Chain(seed[:]).
		Chain(salt[:]).
		Chain(root[:]).
		Chain(stateRoot[:]).
		Digest())
}

// FromTransaction returns the bytecode deployed by tx.
func FromTransaction(tx *transaction.Create) ([]byte, error) {
	witnesses := tx.Witnesses()
	index := int(tx.BytecodeWitnessIndex())
	if index >= len(witnesses) {
		return nil, ErrBytecodeWitnessIndex
	}
	return witnesses[index], nil
}

// IDFromTransaction returns the id of the contract deployed by tx.
func IDFromTransaction(tx *transaction.Create) (types.ContractID, error) {
	bytecode, err := FromTransaction(tx)
	if err != nil {
		return types.ContractID{}, err
	}
	return ID(tx.Salt(), Root(bytecode), InitialStateRoot(tx.StorageSlots())), nil
}
