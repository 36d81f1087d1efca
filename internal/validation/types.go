package validation

import (
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SignatureRecoverer recovers the owner that produced a signature witness.
	SignatureRecoverer interface {
		RecoverOwner(signature []byte, message types.Bytes32) (types.Address, error)
	}
	// PredicateOwners derives the owner address of predicate code.
	PredicateOwners interface {
		PredicateOwner(predicate []byte) types.Address
	}
)
