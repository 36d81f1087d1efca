// Package consensus holds the chain parameters that bound transaction validity and price fees.
package consensus

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

var ErrZeroGasPriceFactor = errors.New("gas price factor must be greater than zero")

// Parameters are the consensus parameters. Values are passed by copy and never mutated once
// constructed; the With* methods return modified copies.
//
// The struct tags let binaries embed Parameters in their go-flags configuration, for example
// with `group:"consensus" namespace:"consensus" env-namespace:"CONSENSUS"`.
type Parameters struct {
	MaxInputs              uint64 `long:"max-inputs" env:"MAX_INPUTS" default:"255" description:"maximum number of inputs"`
	MaxOutputs             uint64 `long:"max-outputs" env:"MAX_OUTPUTS" default:"255" description:"maximum number of outputs"`
	MaxWitnesses           uint64 `long:"max-witnesses" env:"MAX_WITNESSES" default:"255" description:"maximum number of witnesses"`
	MaxGasPerTx            uint64 `long:"max-gas-per-tx" env:"MAX_GAS_PER_TX" default:"100000000" description:"maximum gas limit of a transaction"`
	MaxScriptLength        uint64 `long:"max-script-length" env:"MAX_SCRIPT_LENGTH" default:"1048576" description:"maximum script length in bytes"`
	MaxScriptDataLength    uint64 `long:"max-script-data-length" env:"MAX_SCRIPT_DATA_LENGTH" default:"1048576" description:"maximum script data length in bytes"`
	MaxStorageSlots        uint64 `long:"max-storage-slots" env:"MAX_STORAGE_SLOTS" default:"255" description:"maximum number of initial storage slots"`
	ContractMaxSize        uint64 `long:"contract-max-size" env:"CONTRACT_MAX_SIZE" default:"16777216" description:"maximum contract bytecode size in bytes"`
	MaxPredicateLength     uint64 `long:"max-predicate-length" env:"MAX_PREDICATE_LENGTH" default:"1048576" description:"maximum predicate length in bytes"`
	MaxPredicateDataLength uint64 `long:"max-predicate-data-length" env:"MAX_PREDICATE_DATA_LENGTH" default:"1048576" description:"maximum predicate data length in bytes"`
	MaxMessageDataLength   uint64 `long:"max-message-data-length" env:"MAX_MESSAGE_DATA_LENGTH" default:"1048576" description:"maximum message data length in bytes"`
	GasPerByte             uint64 `long:"gas-per-byte" env:"GAS_PER_BYTE" default:"4" description:"gas charged per metered byte"`
	GasPriceFactor         uint64 `long:"gas-price-factor" env:"GAS_PRICE_FACTOR" default:"1000000000" description:"divisor converting gas into fee units"`
}

// Default returns the default parameters.
func Default() Parameters {
	return Parameters{
		MaxInputs:              255,
		MaxOutputs:             255,
		MaxWitnesses:           255,
		MaxGasPerTx:            100_000_000,
		MaxScriptLength:        1024 * 1024,
		MaxScriptDataLength:    1024 * 1024,
		MaxStorageSlots:        255,
		ContractMaxSize:        16 * 1024 * 1024,
		MaxPredicateLength:     1024 * 1024,
		MaxPredicateDataLength: 1024 * 1024,
		MaxMessageDataLength:   1024 * 1024,
		GasPerByte:             4,
		GasPriceFactor:         1_000_000_000,
	}
}

// Validate reports parameters that would make fee computation undefined.
func (p Parameters) Validate() error {
	if p.GasPriceFactor == 0 {
		return ErrZeroGasPriceFactor
	}
	return nil
}

func (p Parameters) WithMaxInputs(v uint64) Parameters { p.MaxInputs = v; return p }
func (p Parameters) WithMaxOutputs(v uint64) Parameters { p.MaxOutputs = v; return p }
func (p Parameters) WithMaxWitnesses(v uint64) Parameters { p.MaxWitnesses = v; return p }
func (p Parameters) WithMaxGasPerTx(v uint64) Parameters { p.MaxGasPerTx = v; return p }
func (p Parameters) WithMaxScriptLength(v uint64) Parameters { p.MaxScriptLength = v; return p }
func (p Parameters) WithMaxStorageSlots(v uint64) Parameters { p.MaxStorageSlots = v; return p }
func (p Parameters) WithContractMaxSize(v uint64) Parameters { p.ContractMaxSize = v; return p }
func (p Parameters) WithGasPerByte(v uint64) Parameters { p.GasPerByte = v; return p }
func (p Parameters) WithGasPriceFactor(v uint64) Parameters { p.GasPriceFactor = v; return p }

func (p Parameters) WithMaxScriptDataLength(v uint64) Parameters {
	p.MaxScriptDataLength = v
	return p
}

func (p Parameters) WithMaxPredicateLength(v uint64) Parameters {
	p.MaxPredicateLength = v
	return p
}

func (p Parameters) WithMaxPredicateDataLength(v uint64) Parameters {
	p.MaxPredicateDataLength = v
	return p
}

func (p Parameters) WithMaxMessageDataLength(v uint64) Parameters {
	p.MaxMessageDataLength = v
	return p
}

// LoadFile reads parameters from an ini file. Keys missing from the file keep their defaults.
//
//	[Application Options]
//	max-inputs = 16
//	gas-price-factor = 92
func LoadFile(path string) (Parameters, error) {
	var p Parameters
	parser := flags.NewParser(&p, flags.IgnoreUnknown)
	// applies the default tags
	if _, err := parser.ParseArgs(nil); err != nil {
		return Parameters{}, fmt.Errorf("consensus defaults: %w", err)
	}
	if err := flags.NewIniParser(parser).ParseFile(path); err != nil {
		return Parameters{}, fmt.Errorf("consensus parameters %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("consensus parameters %s: %w", path, err)
	}
	return p, nil
}
