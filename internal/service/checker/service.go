// Package checker decodes and checks transactions concurrently and archives the accepted ones.
package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/checked"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/validation"
	"github.com/goodnatureofminers/blockinsight7000-txcore/pkg/workerpool"
)

var (
	ErrBatchTooLarge   = errors.New("check batch is too large")
	ErrArchiveDisabled = errors.New("transaction archive is disabled")
)

type Config struct {
	Workers  int `long:"workers" env:"WORKERS" default:"8" description:"concurrent checks per batch"`
	MaxBatch int `long:"max-batch" env:"MAX_BATCH" default:"1000" description:"maximum transactions per check batch"`
}

// Request is one transaction to check.
type Request struct {
	Format         Format
	Payload        []byte
	BlockHeight    types.Word
	SkipSignatures bool
}

// Result is the outcome of checking one Request. Err is a *DecodeError when the payload could not
// be decoded and a validation error when the transaction was rejected. ArchiveErr is set when an
// accepted transaction could not be queued for archiving.
type Result struct {
	TxID       types.Bytes32
	Kind       transaction.Kind
	Checked    *checked.Checked
	Err        error
	ArchiveErr error
}

type Service struct {
	network      model.Network
	params       consensus.Parameters
	cfg          Config
	owners       validation.PredicateOwners
	repo         ClickhouseRepository
	writer       Writer
	metrics      Metrics
	codecMetrics CodecMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// New returns a checker. owners, repo and writer may be nil: predicate owners are then derived on
// every check and nothing is archived.
func New(
	network model.Network,
	params consensus.Parameters,
	cfg Config,
	owners validation.PredicateOwners,
	repo ClickhouseRepository,
	writer Writer,
	metrics Metrics,
	codecMetrics CodecMetrics,
	logger *zap.Logger,
) (*Service, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("checker parameters: %w", err)
	}
	cfg.Workers = max(cfg.Workers, 1)
	return &Service{
		network:      network,
		params:       params,
		cfg:          cfg,
		owners:       owners,
		repo:         repo,
		writer:       writer,
		metrics:      metrics,
		codecMetrics: codecMetrics,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Params returns the consensus parameters transactions are checked against.
func (s *Service) Params() consensus.Parameters {
	return s.params
}

// Decode parses a payload without checking it.
func (s *Service) Decode(format Format, payload []byte) (transaction.Transaction, error) {
	return Decode(s.codecMetrics, format, payload)
}

// Check decodes and checks one transaction and queues it for archiving when it is accepted.
func (s *Service) Check(ctx context.Context, req Request) Result {
	tx, err := s.Decode(req.Format, req.Payload)
	if err != nil {
		s.logger.Debug("undecodable transaction", zap.String("format", string(req.Format)), zap.Error(err))
		return Result{Err: err}
	}

	res := Result{TxID: transaction.ID(tx), Kind: tx.Kind()}

	opts := make([]checked.Option, 0, 2)
	if req.SkipSignatures {
		opts = append(opts, checked.WithoutSignatures())
	}
	if s.owners != nil {
		opts = append(opts, checked.WithPredicateOwners(s.owners))
	}

	started := time.Now()
	res.Checked, res.Err = checked.Check(tx, req.BlockHeight, s.params, opts...)
	s.metrics.ObserveCheck(res.Kind.String(), validation.Rule(res.Err), res.Err, started)
	if res.Err != nil {
		s.logger.Debug("transaction rejected",
			zap.Stringer("txid", res.TxID),
			zap.String("rule", validation.Rule(res.Err)),
			zap.Error(res.Err),
		)
		return res
	}

	if s.writer != nil {
		res.ArchiveErr = s.archive(ctx, res.Checked)
		if res.ArchiveErr != nil {
			s.logger.Warn("archive checked transaction", zap.Stringer("txid", res.TxID), zap.Error(res.ArchiveErr))
		}
	}
	return res
}

func (s *Service) archive(ctx context.Context, c *checked.Checked) error {
	row, balances, err := model.FromChecked(s.network, c, s.now().UTC())
	if err != nil {
		return fmt.Errorf("archive row: %w", err)
	}
	return s.writer.Write(ctx, Record{Transaction: row, Balances: balances})
}

// CheckBatch checks reqs concurrently. Results are in request order. The error is only set when
// the whole batch failed: a too large batch or a done ctx.
func (s *Service) CheckBatch(ctx context.Context, reqs []Request) (results []Result, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveBatch(err, len(reqs), started)
	}()

	if s.cfg.MaxBatch > 0 && len(reqs) > s.cfg.MaxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), s.cfg.MaxBatch)
	}

	results, err = workerpool.Map(ctx, s.cfg.Workers, reqs, s.Check)
	if err != nil {
		return nil, fmt.Errorf("check batch: %w", err)
	}
	return results, nil
}

// Lookup returns an archived transaction with its free balances.
func (s *Service) Lookup(ctx context.Context, txid types.Bytes32) (model.Transaction, []model.FreeBalance, error) {
	if s.repo == nil {
		return model.Transaction{}, nil, ErrArchiveDisabled
	}
	tx, err := s.repo.TransactionByID(ctx, s.network, txid.String())
	if err != nil {
		return model.Transaction{}, nil, err
	}
	balances, err := s.repo.FreeBalances(ctx, s.network, tx.TxID)
	if err != nil {
		return model.Transaction{}, nil, err
	}
	return tx, balances, nil
}
