package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/checked"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/service/checker"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/validation"
)

var ErrRejected = errors.New("transaction rejected")

// input selects the transaction source shared by every command.
type input struct {
	in     io.Reader
	out    io.Writer
	Format string `short:"f" long:"format" description:"payload format: binary, hex or json" default:"hex"`
	Args   struct {
		File string `positional-arg-name:"file" description:"payload file, stdin when empty or -"`
	} `positional-args:"yes"`
}

func (c *input) read() (transaction.Transaction, error) {
	format, err := checker.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	var payload []byte
	if c.Args.File == "" || c.Args.File == "-" {
		payload, err = io.ReadAll(c.in)
	} else {
		payload, err = os.ReadFile(c.Args.File)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return checker.Decode(nil, format, payload)
}

func (c *input) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type decodeCommand struct{ input }

func (c *decodeCommand) Execute([]string) error {
	tx, err := c.read()
	if err != nil {
		return err
	}
	out, err := transaction.MarshalJSON(tx)
	if err != nil {
		return err
	}
	return c.printJSON(json.RawMessage(out))
}

type encodeCommand struct {
	input
	Binary bool `long:"binary" description:"write raw bytes instead of hex"`
}

func (c *encodeCommand) Execute([]string) error {
	tx, err := c.read()
	if err != nil {
		return err
	}
	raw := transaction.Encode(tx)
	if c.Binary {
		_, err = c.out.Write(raw)
		return err
	}
	_, err = fmt.Fprintln(c.out, hex.EncodeToString(raw))
	return err
}

type inspectCommand struct{ input }

func (c *inspectCommand) Execute([]string) error {
	tx, err := c.read()
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(c.out, tx)
	return nil
}

type idCommand struct{ input }

func (c *idCommand) Execute([]string) error {
	tx, err := c.read()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, transaction.ID(tx))
	return err
}

type offsets struct {
	Size         int   `json:"size"`
	MeteredBytes int   `json:"metered_bytes"`
	Inputs       int   `json:"inputs"`
	Input        []int `json:"input"`
	Outputs      int   `json:"outputs"`
	Output       []int `json:"output"`
	Witnesses    int   `json:"witnesses"`
	Witness      []int `json:"witness"`
}

type offsetsCommand struct{ input }

func (c *offsetsCommand) Execute([]string) error {
	tx, err := c.read()
	if err != nil {
		return err
	}
	o := offsets{
		Size:         tx.SerializedSize(),
		MeteredBytes: tx.MeteredBytesSize(),
		Inputs:       tx.InputsOffset(),
		Outputs:      tx.OutputsOffset(),
		Witnesses:    tx.WitnessesOffset(),
	}
	for i := range tx.Inputs() {
		off, _ := tx.InputOffset(i)
		o.Input = append(o.Input, off)
	}
	for i := range tx.Outputs() {
		off, _ := tx.OutputOffset(i)
		o.Output = append(o.Output, off)
	}
	for i := range tx.Witnesses() {
		off, _ := tx.WitnessOffset(i)
		o.Witness = append(o.Witness, off)
	}
	return c.printJSON(o)
}

type checkReport struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	Accepted     bool              `json:"accepted"`
	Rule         string            `json:"rule,omitempty"`
	Errors       []string          `json:"errors,omitempty"`
	MinFee       uint64            `json:"min_fee,omitempty"`
	MaxFee       uint64            `json:"max_fee,omitempty"`
	FreeBalances []checked.Balance `json:"free_balances,omitempty"`
}

type checkCommand struct {
	input
	BlockHeight    uint64               `long:"block-height" description:"height the transaction is checked at" default:"0"`
	SkipSignatures bool                 `long:"skip-signatures" description:"skip signature and predicate owner checks"`
	All            bool                 `long:"all" description:"report every violated rule instead of the first, signatures included"`
	ParamsFile     string               `long:"params-file" description:"ini file with consensus parameters"`
	Consensus      consensus.Parameters `group:"consensus" namespace:"consensus"`
}

func (c *checkCommand) params() (consensus.Parameters, error) {
	if c.ParamsFile != "" {
		return consensus.LoadFile(c.ParamsFile)
	}
	if err := c.Consensus.Validate(); err != nil {
		return consensus.Parameters{}, err
	}
	return c.Consensus, nil
}

func (c *checkCommand) Execute([]string) error {
	params, err := c.params()
	if err != nil {
		return err
	}
	tx, err := c.read()
	if err != nil {
		return err
	}
	report := checkReport{ID: transaction.ID(tx).String(), Kind: tx.Kind().String()}

	if c.All {
		err := validation.ValidateAll(tx, c.BlockHeight, params, crypto.Recoverer{}, transaction.PredicateOwners{})
		var merr *multierror.Error
		switch {
		case errors.As(err, &merr):
			for _, e := range merr.Errors {
				report.Errors = append(report.Errors, e.Error())
			}
			report.Rule = validation.Rule(merr.Errors[0])
		case err != nil:
			report.Errors = []string{err.Error()}
			report.Rule = validation.Rule(err)
		}
		if err != nil {
			if perr := c.printJSON(report); perr != nil {
				return perr
			}
			return fmt.Errorf("%w: %d violations", ErrRejected, len(report.Errors))
		}
	}

	var opts []checked.Option
	if c.SkipSignatures {
		opts = append(opts, checked.WithoutSignatures())
	}
	res, err := checked.Check(tx, c.BlockHeight, params, opts...)
	if err != nil {
		report.Rule = validation.Rule(err)
		report.Errors = []string{err.Error()}
		if perr := c.printJSON(report); perr != nil {
			return perr
		}
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	report.Accepted = true
	report.MinFee = res.MinFee()
	report.MaxFee = res.MaxFee()
	report.FreeBalances = res.FreeBalances()
	return c.printJSON(report)
}

func newParser(in io.Reader, out io.Writer) *flags.Parser {
	var global struct{}
	parser := flags.NewParser(&global, flags.Default)
	add := func(name, short, long string, cmd any) {
		if _, err := parser.AddCommand(name, short, long, cmd); err != nil {
			panic(err)
		}
	}
	add("decode", "Print a transaction as JSON", "Decodes a payload and prints its canonical JSON form.",
		&decodeCommand{input{in: in, out: out}})
	add("encode", "Print the canonical encoding", "Decodes a payload and prints its canonical binary encoding.",
		&encodeCommand{input: input{in: in, out: out}})
	add("inspect", "Dump the decoded structure", "Decodes a payload and dumps the Go values it decodes to.",
		&inspectCommand{input{in: in, out: out}})
	add("id", "Print the transaction id", "Prints the id that signatures commit to.",
		&idCommand{input{in: in, out: out}})
	add("offsets", "Print field offsets", "Prints the byte offsets of inputs, outputs and witnesses.",
		&offsetsCommand{input{in: in, out: out}})
	add("check", "Validate a transaction", "Validates a transaction and prints its fees and free balances.",
		&checkCommand{input: input{in: in, out: out}})
	return parser
}
