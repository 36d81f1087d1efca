package checker

import (
	"encoding/hex"
	"testing"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

func signedScript(t *testing.T, gasLimit types.Word) transaction.Transaction {
	t.Helper()

	raw := make([]byte, 32)
	raw[0] = 0x11
	key, err := crypto.SecretKeyFromBytes(raw)
	if err != nil {
		t.Fatalf("SecretKeyFromBytes() error = %v", err)
	}
	tx, err := transaction.NewScriptBuilder([]byte{0x01}, nil).
		GasPrice(1).
		GasLimit(gasLimit).
		AddUnsignedCoinInput(key, transaction.NewUtxoID(types.Bytes32{9}, 0), 5_000, types.BaseAsset, transaction.TxPointer{}, 0).
		AddOutput(transaction.ChangeOutput{To: key.PublicKey().Owner(), AssetID: types.BaseAsset}).
		Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return tx
}

func hexPayload(tx transaction.Transaction) []byte {
	return []byte(hex.EncodeToString(transaction.Encode(tx)))
}
