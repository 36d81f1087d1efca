package transaction

import (
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// ID returns the transaction id: the hash of the encoding of PrepareSign(tx).
func ID(tx Transaction) types.Bytes32 {
	return crypto.Hash(Encode(PrepareSign(tx)))
}

// PrepareSign returns a copy of tx with every field that is not covered by signatures cleared.
func PrepareSign(tx Transaction) Transaction {
	clone := tx.Clone()
	switch t := clone.(type) {
	case *Script:
		t.receiptsRoot = types.Bytes32{}
		t.inputs = mapInputs(t.inputs, PrepareSignInput)
		t.outputs = mapOutputs(t.outputs, PrepareSignOutput)
		t.witnesses = nil
	case *Create:
		t.inputs = mapInputs(t.inputs, PrepareSignInput)
		t.outputs = mapOutputs(t.outputs, PrepareSignOutput)
		t.witnesses = nil
	case *Mint:
		t.outputs = mapOutputs(t.outputs, PrepareSignOutput)
	}
	return clone
}

// PrepareInitScript returns the copy of tx a script observes when execution starts.
func PrepareInitScript(tx Transaction) Transaction {
	clone := tx.Clone()
	switch t := clone.(type) {
	case *Script:
		t.receiptsRoot = types.Bytes32{}
		t.outputs = mapOutputs(t.outputs, PrepareInitScriptOutput)
	case *Create:
		t.outputs = mapOutputs(t.outputs, PrepareInitScriptOutput)
	case *Mint:
		t.outputs = mapOutputs(t.outputs, PrepareInitScriptOutput)
	}
	return clone
}

// PrepareInitPredicate returns the copy of tx a predicate observes.
func PrepareInitPredicate(tx Transaction) Transaction {
	clone := tx.Clone()
	switch t := clone.(type) {
	case *Script:
		t.receiptsRoot = types.Bytes32{}
		t.inputs = mapInputs(t.inputs, PrepareInitPredicateInput)
		t.outputs = mapOutputs(t.outputs, PrepareInitPredicateOutput)
	case *Create:
		t.inputs = mapInputs(t.inputs, PrepareInitPredicateInput)
		t.outputs = mapOutputs(t.outputs, PrepareInitPredicateOutput)
	case *Mint:
		t.outputs = mapOutputs(t.outputs, PrepareInitPredicateOutput)
	}
	return clone
}

func mapInputs(inputs []Input, f func(Input) Input) []Input {
	for i, in := range inputs {
		inputs[i] = f(in)
	}
	return inputs
}

func mapOutputs(outputs []Output, f func(Output) Output) []Output {
	for i, out := range outputs {
		outputs[i] = f(out)
	}
	return outputs
}
