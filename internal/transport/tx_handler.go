// Package transport exposes the transaction service over gRPC and REST.
package transport

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/checked"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/service/checker"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/validation"
)

// TxHandler implements TxServiceServer.
type TxHandler struct {
	checker Checker
	logger  *zap.Logger
}

// NewTxHandler returns a TxHandler instance.
func NewTxHandler(c Checker, logger *zap.Logger) *TxHandler {
	return &TxHandler{checker: c, logger: logger}
}

// Health reports server health.
func (h *TxHandler) Health(_ context.Context, _ *HealthRequest) (*HealthResponse, error) {
	return &HealthResponse{Status: "healthy"}, nil
}

// Decode parses a transaction and reports its id, canonical JSON and field offsets.
func (h *TxHandler) Decode(_ context.Context, req *DecodeRequest) (*DecodeResponse, error) {
	format, payload, err := req.Payload.decoded()
	if err != nil {
		return nil, err
	}
	tx, err := h.checker.Decode(format, payload)
	if err != nil {
		return nil, toStatus(err)
	}
	js, err := transaction.MarshalJSON(tx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &DecodeResponse{
		ID:           transaction.ID(tx).String(),
		Kind:         tx.Kind().String(),
		Size:         tx.SerializedSize(),
		MeteredBytes: tx.MeteredBytesSize(),
		Transaction:  js,
		Offsets:      offsetsOf(tx),
	}, nil
}

// Check checks a batch of transactions at the given block height.
func (h *TxHandler) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	if len(req.Transactions) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no transactions to check")
	}

	reqs := make([]checker.Request, 0, len(req.Transactions))
	for _, p := range req.Transactions {
		format, payload, err := p.decoded()
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, checker.Request{
			Format:         format,
			Payload:        payload,
			BlockHeight:    req.BlockHeight,
			SkipSignatures: req.SkipSignatures,
		})
	}

	results, err := h.checker.CheckBatch(ctx, reqs)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &CheckResponse{Results: make([]CheckResult, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, checkResult(res))
	}
	return resp, nil
}

// Lookup returns an archived transaction.
func (h *TxHandler) Lookup(ctx context.Context, req *LookupRequest) (*LookupResponse, error) {
	txid, err := types.ParseBytes32(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "transaction id: %v", err)
	}

	tx, balances, err := h.checker.Lookup(ctx, txid)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &LookupResponse{
		ID:           tx.TxID,
		Network:      string(tx.Network),
		Kind:         tx.Kind,
		BlockHeight:  tx.BlockHeight,
		GasPrice:     tx.GasPrice,
		GasLimit:     tx.GasLimit,
		Maturity:     tx.Maturity,
		MinFee:       tx.MinFee,
		MaxFee:       tx.MaxFee,
		CheckedAt:    tx.CheckedAt.UTC().Format(time.RFC3339Nano),
		Raw:          tx.Raw,
		FreeBalances: make([]Balance, 0, len(balances)),
	}
	for _, b := range balances {
		resp.FreeBalances = append(resp.FreeBalances, Balance{AssetID: b.AssetID, Amount: b.Amount})
	}
	return resp, nil
}

func (p Payload) decoded() (checker.Format, []byte, error) {
	switch {
	case p.Hex != "" && len(p.Transaction) > 0:
		return "", nil, status.Error(codes.InvalidArgument, "payload has both hex and transaction")
	case p.Hex != "":
		return checker.FormatHex, []byte(p.Hex), nil
	case len(p.Transaction) > 0:
		return checker.FormatJSON, p.Transaction, nil
	default:
		return "", nil, status.Error(codes.InvalidArgument, "empty payload")
	}
}

func offsetsOf(tx transaction.Transaction) Offsets {
	o := Offsets{
		Inputs:    tx.InputsOffset(),
		Input:     make([]int, 0, len(tx.Inputs())),
		Outputs:   tx.OutputsOffset(),
		Output:    make([]int, 0, len(tx.Outputs())),
		Witnesses: tx.WitnessesOffset(),
		Witness:   make([]int, 0, len(tx.Witnesses())),
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
	return o
}

func checkResult(res checker.Result) CheckResult {
	out := CheckResult{Kind: res.Kind.String()}
	if res.TxID != (types.Bytes32{}) {
		out.ID = res.TxID.String()
	}
	var derr *checker.DecodeError
	if errors.As(res.Err, &derr) {
		out.Kind = ""
	}
	if res.Err != nil {
		out.Rule = validation.Rule(res.Err)
		out.Error = res.Err.Error()
		return out
	}

	out.Accepted = true
	out.MinFee = res.Checked.MinFee()
	out.MaxFee = res.Checked.MaxFee()
	out.FreeBalances = balancesOf(res.Checked)
	if res.ArchiveErr != nil {
		out.ArchiveError = res.ArchiveErr.Error()
	}
	return out
}

func balancesOf(c *checked.Checked) []Balance {
	free := c.FreeBalances()
	out := make([]Balance, 0, len(free))
	for _, b := range free {
		out = append(out, Balance{AssetID: b.AssetID.String(), Amount: b.Amount})
	}
	return out
}

func toStatus(err error) error {
	var derr *checker.DecodeError
	switch {
	case errors.As(err, &derr),
		errors.Is(err, checker.ErrUnknownFormat),
		errors.Is(err, checker.ErrBatchTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrTransactionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, checker.ErrArchiveDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
