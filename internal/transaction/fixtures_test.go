package transaction

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

var txCmpOpts = cmp.Options{
	cmp.AllowUnexported(Script{}, Create{}, Mint{}),
	cmpopts.IgnoreFields(Script{}, "metadata"),
	cmpopts.IgnoreFields(Create{}, "metadata"),
	cmpopts.IgnoreFields(Mint{}, "metadata"),
	cmpopts.EquateEmpty(),
}

func fill32(v byte) types.Bytes32 {
	var b types.Bytes32
	for i := range b {
		b[i] = v
	}
	return b
}

func sampleInputs() []Input {
	return []Input{
		CoinSigned{
			UtxoID:       NewUtxoID(fill32(0x01), 1),
			Owner:        types.Address(fill32(0x02)),
			Amount:       100,
			AssetID:      types.AssetID(fill32(0x03)),
			TxPointer:    NewTxPointer(10, 2),
			WitnessIndex: 0,
			Maturity:     5,
		},
		CoinPredicate{
			UtxoID:        NewUtxoID(fill32(0x04), 0),
			Owner:         PredicateOwner([]byte{0xaa, 0xbb, 0xcc}),
			Amount:        200,
			AssetID:       types.BaseAsset,
			TxPointer:     NewTxPointer(11, 3),
			Maturity:      0,
			Predicate:     []byte{0xaa, 0xbb, 0xcc},
			PredicateData: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
		},
		ContractInput{
			UtxoID:      NewUtxoID(fill32(0x05), 2),
			BalanceRoot: fill32(0x06),
			StateRoot:   fill32(0x07),
			TxPointer:   NewTxPointer(12, 4),
			ContractID:  types.ContractID(fill32(0x08)),
		},
		MessageSigned{
			MessageID:    types.MessageID(fill32(0x09)),
			Sender:       types.Address(fill32(0x0a)),
			Recipient:    types.Address(fill32(0x0b)),
			Amount:       300,
			Nonce:        7,
			WitnessIndex: 1,
			Data:         []byte("hello"),
		},
		MessagePredicate{
			MessageID:     types.MessageID(fill32(0x0c)),
			Sender:        types.Address(fill32(0x0d)),
			Recipient:     PredicateOwner([]byte{0x10}),
			Amount:        400,
			Nonce:         8,
			Data:          []byte("data"),
			Predicate:     []byte{0x10},
			PredicateData: nil,
		},
	}
}

func sampleOutputs() []Output {
	return []Output{
		CoinOutput{To: types.Address(fill32(0x11)), Amount: 50, AssetID: types.BaseAsset},
		ContractOutput{InputIndex: 2, BalanceRoot: fill32(0x12), StateRoot: fill32(0x13)},
		MessageOutput{Recipient: types.Address(fill32(0x14)), Amount: 60},
		ChangeOutput{To: types.Address(fill32(0x15)), Amount: 70, AssetID: types.BaseAsset},
		VariableOutput{To: types.Address(fill32(0x16)), Amount: 80, AssetID: types.AssetID(fill32(0x03))},
	}
}

func sampleScript() *Script {
	return NewScript(
		1, 1000, 0,
		[]byte{0x50, 0x40, 0x00, 0x00, 0x24, 0x04},
		[]byte{0xde, 0xad},
		sampleInputs(),
		sampleOutputs(),
		[]Witness{make([]byte, 64), []byte{0x01, 0x02, 0x03}},
		fill32(0x20),
	)
}

func sampleCreate() *Create {
	return NewCreate(
		2, 2000, 3,
		0,
		types.Salt(fill32(0x30)),
		[]StorageSlot{
			{Key: fill32(0x01), Value: fill32(0x31)},
			{Key: fill32(0x02), Value: fill32(0x32)},
		},
		[]Input{sampleInputs()[0], sampleInputs()[1]},
		[]Output{
			ChangeOutput{To: types.Address(fill32(0x15)), Amount: 0, AssetID: types.BaseAsset},
			ContractCreatedOutput{ContractID: types.ContractID(fill32(0x33)), StateRoot: fill32(0x34)},
		},
		[]Witness{{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, make([]byte, 64)},
	)
}

func sampleMint() *Mint {
	return NewMint(NewTxPointer(99, 0), []Output{
		CoinOutput{To: types.Address(fill32(0x40)), Amount: 1_000, AssetID: types.BaseAsset},
		CoinOutput{To: types.Address(fill32(0x41)), Amount: 2_000, AssetID: types.AssetID(fill32(0x42))},
	})
}

func sampleTransactions() []struct {
	name string
	tx   Transaction
} {
	return []struct {
		name string
		tx   Transaction
	}{
		{name: "script", tx: sampleScript()},
		{name: "create", tx: sampleCreate()},
		{name: "mint", tx: sampleMint()},
		{name: "empty script", tx: NewScript(0, 0, 0, nil, nil, nil, nil, nil, types.Bytes32{})},
		{name: "empty create", tx: NewCreate(0, 0, 0, 0, types.Salt{}, nil, nil, nil, nil)},
		{name: "empty mint", tx: NewMint(TxPointer{}, nil)},
	}
}
