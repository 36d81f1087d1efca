package transaction

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
	"github.com/goodnatureofminers/blockinsight7000-txcore/pkg/safe"
)

var (
	ErrBuilderMintInputs  = errors.New("mint transactions have no inputs or witnesses")
	ErrBuilderTooManyKeys = errors.New("witness index does not fit one byte")
)

type signer struct {
	key          crypto.SecretKey
	witnessIndex uint8
}

// Builder assembles a transaction and signs its unsigned inputs once the id is known.
type Builder struct {
	tx      Transaction
	signers []signer
	byOwner map[types.Address]uint8
	err     error
}

// NewScriptBuilder starts a Script transaction.
func NewScriptBuilder(script, scriptData []byte) *Builder {
	return newBuilder(NewScript(0, 0, 0, script, scriptData, nil, nil, nil, types.Bytes32{}))
}

// NewCreateBuilder starts a Create transaction whose bytecode is witness 0.
func NewCreateBuilder(bytecode []byte, salt types.Salt, storageSlots []StorageSlot) *Builder {
	return newBuilder(NewCreate(0, 0, 0, 0, salt, storageSlots, nil, nil, []Witness{bytecode}))
}

// NewMintBuilder starts a Mint transaction.
func NewMintBuilder(txPointer TxPointer) *Builder {
	return newBuilder(NewMint(txPointer, nil))
}

func newBuilder(tx Transaction) *Builder {
	return &Builder{tx: tx, byOwner: make(map[types.Address]uint8)}
}

// GasPrice sets the gas price. It is ignored for Mint.
func (b *Builder) GasPrice(v types.Word) *Builder {
	switch t := b.tx.(type) {
	case *Script:
		t.SetGasPrice(v)
	case *Create:
		t.SetGasPrice(v)
	}
	return b
}

// GasLimit sets the gas limit. It is ignored for Mint.
func (b *Builder) GasLimit(v types.Word) *Builder {
	switch t := b.tx.(type) {
	case *Script:
		t.SetGasLimit(v)
	case *Create:
		t.SetGasLimit(v)
	}
	return b
}

// Maturity sets the maturity. It is ignored for Mint.
func (b *Builder) Maturity(v types.Word) *Builder {
	switch t := b.tx.(type) {
	case *Script:
		t.SetMaturity(v)
	case *Create:
		t.SetMaturity(v)
	}
	return b
}

// AddStorageSlot appends a storage slot to a Create transaction.
func (b *Builder) AddStorageSlot(slot StorageSlot) *Builder {
	if c, ok := b.tx.(*Create); ok {
		c.AddStorageSlot(slot)
	}
	return b
}

func (b *Builder) AddInput(in Input) *Builder {
	switch t := b.tx.(type) {
	case *Script:
		t.AddInput(in)
	case *Create:
		t.AddInput(in)
	default:
		b.fail(ErrBuilderMintInputs)
	}
	return b
}

func (b *Builder) AddOutput(out Output) *Builder {
	switch t := b.tx.(type) {
	case *Script:
		t.AddOutput(out)
	case *Create:
		t.AddOutput(out)
	case *Mint:
		t.AddOutput(out)
	}
	return b
}

func (b *Builder) AddWitness(w Witness) *Builder {
	switch t := b.tx.(type) {
	case *Script:
		t.AddWitness(w)
	case *Create:
		t.AddWitness(w)
	default:
		b.fail(ErrBuilderMintInputs)
	}
	return b
}

// AddUnsignedCoinInput adds a coin owned by key. Its signature is added by Finalize.
func (b *Builder) AddUnsignedCoinInput(key crypto.SecretKey, utxoID UtxoID, amount types.Word,
	assetID types.AssetID, txPointer TxPointer, maturity types.Word) *Builder {
	owner := key.PublicKey().Owner()
	index, ok := b.witnessFor(owner, key)
	if !ok {
		return b
	}
	return b.AddInput(CoinSigned{
		UtxoID:       utxoID,
		Owner:        owner,
		Amount:       amount,
		AssetID:      assetID,
		TxPointer:    txPointer,
		WitnessIndex: index,
		Maturity:     maturity,
	})
}

// AddUnsignedMessageInput adds a message sent to the owner of key. Its signature is added by
// Finalize.
func (b *Builder) AddUnsignedMessageInput(key crypto.SecretKey, sender types.Address, nonce, amount types.Word,
	data []byte) *Builder {
	recipient := key.PublicKey().Owner()
	index, ok := b.witnessFor(recipient, key)
	if !ok {
		return b
	}
	return b.AddInput(MessageSigned{
		MessageID:    ComputeMessageID(sender, recipient, nonce, amount, data),
		Sender:       sender,
		Recipient:    recipient,
		Amount:       amount,
		Nonce:        nonce,
		WitnessIndex: index,
		Data:         data,
	})
}

// witnessFor reserves a placeholder witness for owner, reusing the one of an earlier input.
func (b *Builder) witnessFor(owner types.Address, key crypto.SecretKey) (uint8, bool) {
	if index, ok := b.byOwner[owner]; ok {
		return index, true
	}
	index, err := safe.Uint8(len(b.tx.Witnesses()))
	if err != nil {
		b.fail(ErrBuilderTooManyKeys)
		return 0, false
	}
	b.AddWitness(Witness{})
	if b.err != nil {
		return 0, false
	}
	b.byOwner[owner] = index
	b.signers = append(b.signers, signer{key: key, witnessIndex: index})
	return index, true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Finalize signs the registered inputs and returns the transaction with its metadata computed.
// The builder must not be used afterwards.
func (b *Builder) Finalize() (Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if c, ok := b.tx.(*Create); ok && int(c.bytecodeWitnessIndex) < len(c.witnesses) {
		c.SetBytecodeLength(types.Word(len(c.witnesses[c.bytecodeWitnessIndex]) / 4))
	}

	id := ID(b.tx)
	for _, s := range b.signers {
		sig, err := s.key.Sign(id)
		if err != nil {
			return nil, fmt.Errorf("sign witness %d: %w", s.witnessIndex, err)
		}
		switch t := b.tx.(type) {
		case *Script:
			t.SetWitness(int(s.witnessIndex), sig[:])
		case *Create:
			t.SetWitness(int(s.witnessIndex), sig[:])
		}
	}
	b.tx.Precompute()
	return b.tx, nil
}
