package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// SignatureSize is the size of a signature witness: r followed by s, with the recovery id in
// the top bit of s.
const SignatureSize = 64

const compactHeader = 27

var (
	ErrInvalidSecretKey = errors.New("invalid secret key")
	ErrInvalidSignature = errors.New("invalid signature")
)

// SecretKey is a secp256k1 private key.
type SecretKey struct {
	key *btcec.PrivateKey
}

// GenerateSecretKey returns a random key.
func GenerateSecretKey() (SecretKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return SecretKey{}, fmt.Errorf("generate secret key: %w", err)
	}
	return SecretKey{key: key}, nil
}

// SecretKeyFromBytes parses a 32-byte scalar.
func SecretKeyFromBytes(b []byte) (SecretKey, error) {
	if len(b) != btcec.PrivKeyBytesLen {
		return SecretKey{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSecretKey, btcec.PrivKeyBytesLen, len(b))
	}
	key, _ := btcec.PrivKeyFromBytes(b)
	if key.Key.IsZero() {
		return SecretKey{}, fmt.Errorf("%w: zero scalar", ErrInvalidSecretKey)
	}
	return SecretKey{key: key}, nil
}

// PublicKey returns the matching public key.
func (k SecretKey) PublicKey() PublicKey {
	return PublicKey{key: k.key.PubKey()}
}

// Sign signs a 32-byte message digest.
func (k SecretKey) Sign(message types.Bytes32) (types.Bytes64, error) {
	var sig types.Bytes64
	if k.key == nil {
		return sig, ErrInvalidSecretKey
	}

	compact := ecdsa.SignCompact(k.key, message[:], false)
	recoveryID := compact[0] - compactHeader
	if recoveryID > 1 {
		return sig, fmt.Errorf("%w: recovery id %d does not fit one bit", ErrInvalidSignature, recoveryID)
	}

	copy(sig[:], compact[1:])
	sig[32] |= recoveryID << 7
	return sig, nil
}

// PublicKey is a secp256k1 public key.
type PublicKey struct {
	key *btcec.PublicKey
}

// Bytes returns the uncompressed point without its prefix byte.
func (p PublicKey) Bytes() types.Bytes64 {
	var out types.Bytes64
	copy(out[:], p.key.SerializeUncompressed()[1:])
	return out
}

// Owner returns the address controlled by the key.
func (p PublicKey) Owner() types.Address {
	b := p.Bytes()
	return types.Address(Hash(b[:]))
}

// Recover returns the public key that produced sig over message.
func Recover(sig types.Bytes64, message types.Bytes32) (PublicKey, error) {
	var compact [1 + SignatureSize]byte
	recoveryID := sig[32] >> 7
	compact[0] = compactHeader + recoveryID
	copy(compact[1:], sig[:])
	compact[33] &= 0x7f

	key, _, err := ecdsa.RecoverCompact(compact[:], message[:])
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return PublicKey{key: key}, nil
}

// Recoverer recovers owners from signature witnesses.
type Recoverer struct{}

// RecoverOwner returns the address that signed message with the given witness bytes.
func (Recoverer) RecoverOwner(signature []byte, message types.Bytes32) (types.Address, error) {
	if len(signature) != SignatureSize {
		return types.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, SignatureSize, len(signature))
	}
	pk, err := Recover(types.Bytes64(signature), message)
	if err != nil {
		return types.Address{}, err
	}
	return pk.Owner(), nil
}
