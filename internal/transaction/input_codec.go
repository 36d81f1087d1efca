package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

const (
	inputTagCoin uint64 = iota
	inputTagContract
	inputTagMessage

	inputTagCount
)

// Static sizes of the input variants, discriminant included.
var (
	InputCoinSize     = codec.MustAlign(codec.WordSize + UtxoIDSize + 32 + codec.WordSize + 32 + TxPointerSize + 4*codec.WordSize)
	InputContractSize = codec.MustAlign(codec.WordSize + UtxoIDSize + 32 + 32 + TxPointerSize + 32)
	InputMessageSize  = codec.MustAlign(codec.WordSize + 3*32 + 6*codec.WordSize)
)

func encodeCoinStatic(e *codec.Encoder, utxoID UtxoID, owner types.Address, amount types.Word, assetID types.AssetID,
	txPointer TxPointer, witnessIndex uint8, maturity types.Word, predicate, predicateData []byte) {
	e.Discriminant(inputTagCoin)
	utxoID.EncodeStatic(e)
	e.Array(owner[:])
	e.Word(amount)
	e.Array(assetID[:])
	txPointer.EncodeStatic(e)
	e.U8(witnessIndex)
	e.Word(maturity)
	e.Length(len(predicate))
	e.Length(len(predicateData))
}

func encodeMessageStatic(e *codec.Encoder, messageID types.MessageID, sender, recipient types.Address, amount, nonce types.Word,
	witnessIndex uint8, data, predicate, predicateData []byte) {
	e.Discriminant(inputTagMessage)
	e.Array(messageID[:])
	e.Array(sender[:])
	e.Array(recipient[:])
	e.Word(amount)
	e.Word(nonce)
	e.U8(witnessIndex)
	e.Length(len(data))
	e.Length(len(predicate))
	e.Length(len(predicateData))
}

// EncodeStatic implements codec.Encodable.
func (c CoinSigned) EncodeStatic(e *codec.Encoder) {
	encodeCoinStatic(e, c.UtxoID, c.Owner, c.Amount, c.AssetID, c.TxPointer, c.WitnessIndex, c.Maturity, nil, nil)
}

// EncodeDynamic implements codec.Encodable.
func (CoinSigned) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (CoinSigned) SerializedSize() int {
	return InputCoinSize
}

// EncodeStatic implements codec.Encodable. The witness index of a predicate coin is always zero.
func (c CoinPredicate) EncodeStatic(e *codec.Encoder) {
	encodeCoinStatic(e, c.UtxoID, c.Owner, c.Amount, c.AssetID, c.TxPointer, 0, c.Maturity, c.Predicate, c.PredicateData)
}

// EncodeDynamic implements codec.Encodable.
func (c CoinPredicate) EncodeDynamic(e *codec.Encoder) {
	e.Blob(c.Predicate)
	e.Blob(c.PredicateData)
}

// SerializedSize implements codec.Encodable.
func (c CoinPredicate) SerializedSize() int {
	return InputCoinSize + codec.Padded(len(c.Predicate)) + codec.Padded(len(c.PredicateData))
}

// EncodeStatic implements codec.Encodable.
func (c ContractInput) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(inputTagContract)
	c.UtxoID.EncodeStatic(e)
	e.Array(c.BalanceRoot[:])
	e.Array(c.StateRoot[:])
	c.TxPointer.EncodeStatic(e)
	e.Array(c.ContractID[:])
}

// EncodeDynamic implements codec.Encodable.
func (ContractInput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (ContractInput) SerializedSize() int {
	return InputContractSize
}

// EncodeStatic implements codec.Encodable.
func (m MessageSigned) EncodeStatic(e *codec.Encoder) {
	encodeMessageStatic(e, m.MessageID, m.Sender, m.Recipient, m.Amount, m.Nonce, m.WitnessIndex, m.Data, nil, nil)
}

// EncodeDynamic implements codec.Encodable.
func (m MessageSigned) EncodeDynamic(e *codec.Encoder) {
	e.Blob(m.Data)
}

// SerializedSize implements codec.Encodable.
func (m MessageSigned) SerializedSize() int {
	return InputMessageSize + codec.Padded(len(m.Data))
}

// EncodeStatic implements codec.Encodable. The witness index of a predicate message is always zero.
func (m MessagePredicate) EncodeStatic(e *codec.Encoder) {
	encodeMessageStatic(e, m.MessageID, m.Sender, m.Recipient, m.Amount, m.Nonce, 0, m.Data, m.Predicate, m.PredicateData)
}

// EncodeDynamic implements codec.Encodable.
func (m MessagePredicate) EncodeDynamic(e *codec.Encoder) {
	e.Blob(m.Data)
	e.Blob(m.Predicate)
	e.Blob(m.PredicateData)
}

// SerializedSize implements codec.Encodable.
func (m MessagePredicate) SerializedSize() int {
	return InputMessageSize + codec.Padded(len(m.Data)) + codec.Padded(len(m.Predicate)) + codec.Padded(len(m.PredicateData))
}

// DecodeInput reads one input, static part then dynamic part.
func DecodeInput(d *codec.Decoder) (Input, error) {
	tag, err := d.Discriminant(inputTagCount)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	switch tag {
	case inputTagCoin:
		return decodeCoin(d)
	case inputTagContract:
		return decodeContractInput(d)
	default:
		return decodeMessage(d)
	}
}

func decodeCoin(d *codec.Decoder) (Input, error) {
	var (
		c   CoinPredicate
		err error
	)
	if c.UtxoID, err = DecodeUtxoID(d); err != nil {
		return nil, fmt.Errorf("coin input: %w", err)
	}
	if err = d.Array(c.Owner[:]); err != nil {
		return nil, fmt.Errorf("coin input owner: %w", err)
	}
	if c.Amount, err = d.Word(); err != nil {
		return nil, fmt.Errorf("coin input amount: %w", err)
	}
	if err = d.Array(c.AssetID[:]); err != nil {
		return nil, fmt.Errorf("coin input asset id: %w", err)
	}
	if c.TxPointer, err = DecodeTxPointer(d); err != nil {
		return nil, fmt.Errorf("coin input: %w", err)
	}
	witnessIndex, err := d.U8()
	if err != nil {
		return nil, fmt.Errorf("coin input witness index: %w", err)
	}
	if c.Maturity, err = d.Word(); err != nil {
		return nil, fmt.Errorf("coin input maturity: %w", err)
	}
	predicateLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("coin input predicate length: %w", err)
	}
	predicateDataLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("coin input predicate data length: %w", err)
	}

	if c.Predicate, err = d.Blob(predicateLen); err != nil {
		return nil, fmt.Errorf("coin input predicate: %w", err)
	}
	if c.PredicateData, err = d.Blob(predicateDataLen); err != nil {
		return nil, fmt.Errorf("coin input predicate data: %w", err)
	}

	if len(c.Predicate) == 0 && len(c.PredicateData) == 0 {
		return CoinSigned{
			UtxoID:       c.UtxoID,
			Owner:        c.Owner,
			Amount:       c.Amount,
			AssetID:      c.AssetID,
			TxPointer:    c.TxPointer,
			WitnessIndex: witnessIndex,
			Maturity:     c.Maturity,
		}, nil
	}
	return c, nil
}

func decodeContractInput(d *codec.Decoder) (Input, error) {
	var (
		c   ContractInput
		err error
	)
	if c.UtxoID, err = DecodeUtxoID(d); err != nil {
		return nil, fmt.Errorf("contract input: %w", err)
	}
	if err = d.Array(c.BalanceRoot[:]); err != nil {
		return nil, fmt.Errorf("contract input balance root: %w", err)
	}
	if err = d.Array(c.StateRoot[:]); err != nil {
		return nil, fmt.Errorf("contract input state root: %w", err)
	}
	if c.TxPointer, err = DecodeTxPointer(d); err != nil {
		return nil, fmt.Errorf("contract input: %w", err)
	}
	if err = d.Array(c.ContractID[:]); err != nil {
		return nil, fmt.Errorf("contract input contract id: %w", err)
	}
	return c, nil
}

func decodeMessage(d *codec.Decoder) (Input, error) {
	var (
		m   MessagePredicate
		err error
	)
	if err = d.Array(m.MessageID[:]); err != nil {
		return nil, fmt.Errorf("message input id: %w", err)
	}
	if err = d.Array(m.Sender[:]); err != nil {
		return nil, fmt.Errorf("message input sender: %w", err)
	}
	if err = d.Array(m.Recipient[:]); err != nil {
		return nil, fmt.Errorf("message input recipient: %w", err)
	}
	if m.Amount, err = d.Word(); err != nil {
		return nil, fmt.Errorf("message input amount: %w", err)
	}
	if m.Nonce, err = d.Word(); err != nil {
		return nil, fmt.Errorf("message input nonce: %w", err)
	}
	witnessIndex, err := d.U8()
	if err != nil {
		return nil, fmt.Errorf("message input witness index: %w", err)
	}
	dataLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("message input data length: %w", err)
	}
	predicateLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("message input predicate length: %w", err)
	}
	predicateDataLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("message input predicate data length: %w", err)
	}

	if m.Data, err = d.Blob(dataLen); err != nil {
		return nil, fmt.Errorf("message input data: %w", err)
	}
	if m.Predicate, err = d.Blob(predicateLen); err != nil {
		return nil, fmt.Errorf("message input predicate: %w", err)
	}
	if m.PredicateData, err = d.Blob(predicateDataLen); err != nil {
		return nil, fmt.Errorf("message input predicate data: %w", err)
	}

	if len(m.Predicate) == 0 && len(m.PredicateData) == 0 {
		return MessageSigned{
			MessageID:    m.MessageID,
			Sender:       m.Sender,
			Recipient:    m.Recipient,
			Amount:       m.Amount,
			Nonce:        m.Nonce,
			WitnessIndex: witnessIndex,
			Data:         m.Data,
		}, nil
	}
	return m, nil
}
