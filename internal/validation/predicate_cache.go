package validation

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// DefaultPredicateCacheSize bounds the number of predicate owners kept by default.
const DefaultPredicateCacheSize = 4096

// CachedPredicateOwners memoizes predicate owner roots keyed by the hash of the predicate code.
// It is safe for concurrent use.
type CachedPredicateOwners struct {
	cache *lru.Cache[types.Bytes32, types.Address]
	owner func(predicate []byte) types.Address
}

// NewCachedPredicateOwners returns a cache holding up to size owners.
func NewCachedPredicateOwners(size int) (*CachedPredicateOwners, error) {
	cache, err := lru.New[types.Bytes32, types.Address](size)
	if err != nil {
		return nil, fmt.Errorf("predicate owner cache: %w", err)
	}
	return &CachedPredicateOwners{cache: cache, owner: transaction.PredicateOwner}, nil
}

// PredicateOwner returns the owner of predicate, computing it on a cache miss.
func (c *CachedPredicateOwners) PredicateOwner(predicate []byte) types.Address {
	key := crypto.Hash(predicate)
	if owner, ok := c.cache.Get(key); ok {
		return owner
	}
	owner := c.owner(predicate)
	c.cache.Add(key, owner)
	return owner
}

// Len returns the number of cached owners.
func (c *CachedPredicateOwners) Len() int {
	return c.cache.Len()
}
