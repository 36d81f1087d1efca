package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	tcClickhouse "github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
)

const (
	clickhouseImage = "clickhouse/clickhouse-server:25.11"
)

type RepositorySuite struct {
	suite.Suite
	ctx        context.Context
	cancel     context.CancelFunc
	container  *tcClickhouse.ClickHouseContainer
	dsn        string
	repo       *Repository
	metrics    *MockMetrics
	metricsCtl *gomock.Controller
	testCtx    context.Context
	testCancel context.CancelFunc
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("clickhouse container tests are skipped in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)

	container, err := tcClickhouse.Run(s.ctx,
		clickhouseImage,
		tcClickhouse.WithUsername("default"),
		tcClickhouse.WithDatabase("default"),
	)
	s.Require().NoError(err)

	s.container = container

	dsn, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)
	s.dsn = dsn
}

func (s *RepositorySuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *RepositorySuite) SetupTest() {
	s.testCtx, s.testCancel = context.WithTimeout(context.Background(), time.Minute)
	s.metricsCtl = gomock.NewController(s.T())
	s.metrics = NewMockMetrics(s.metricsCtl)

	s.Require().NoError(applyMigrationsUp(s.dsn))

	repo, err := NewRepository(s.dsn, s.metrics)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepositorySuite) TearDownTest() {
	if s.testCancel != nil {
		s.testCancel()
	}
	s.Require().NoError(s.repo.Close())
	s.Require().NoError(applyMigrationsDown(s.dsn))
	if s.metricsCtl != nil {
		s.metricsCtl.Finish()
	}
}

func (s *RepositorySuite) TestInsertTransactions() {
	now := time.Now().UTC().Truncate(time.Second)
	tx := testTransaction()
	tx.TxID = strings.Repeat("b", 64)
	tx.CheckedAt = now

	s.metrics.EXPECT().Observe("insert_transactions", "mainnet", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("transaction_by_id", "mainnet", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, []model.Transaction{tx}))
	s.Equal(uint64(1), s.countRows("txcore_transactions"))

	got, err := s.repo.TransactionByID(s.testCtx, model.Mainnet, tx.TxID)
	s.Require().NoError(err)
	s.Equal(tx.Kind, got.Kind)
	s.Equal(tx.MaxFee, got.MaxFee)
	s.Equal(tx.Raw, got.Raw)
	s.True(tx.CheckedAt.Equal(got.CheckedAt))
}

func (s *RepositorySuite) TestTransactionByIDNotFound() {
	s.metrics.EXPECT().Observe("transaction_by_id", "testnet", gomock.Any(), gomock.Any()).Times(1)

	_, err := s.repo.TransactionByID(s.testCtx, model.Testnet, strings.Repeat("e", 64))
	s.Require().ErrorIs(err, ErrTransactionNotFound)
}

func (s *RepositorySuite) TestInsertFreeBalances() {
	txid := strings.Repeat("f", 64)
	balances := []model.FreeBalance{
		{Network: model.Mainnet, TxID: txid, BlockHeight: 3, AssetID: strings.Repeat("1", 64), Amount: 7},
		{Network: model.Mainnet, TxID: txid, BlockHeight: 3, AssetID: strings.Repeat("0", 64), Amount: 998},
	}

	s.metrics.EXPECT().Observe("insert_free_balances", "mainnet", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("free_balances", "mainnet", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertFreeBalances(s.testCtx, balances))
	s.Equal(uint64(len(balances)), s.countRows("txcore_free_balances"))

	got, err := s.repo.FreeBalances(s.testCtx, model.Mainnet, txid)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(balances[1], got[0])
	s.Equal(balances[0], got[1])
}

func (s *RepositorySuite) countRows(table string) uint64 {
	rows, err := s.repo.conn.Query(s.testCtx, fmt.Sprintf("SELECT count() FROM %s", table))
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var count uint64
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&count))
	return count
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}

	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("go.mod not found from %s", dir)
		}
		dir = next
	}
}

func applyMigrationsUp(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeMigrator(m)
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func applyMigrationsDown(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeMigrator(m)
	}()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	root, err := moduleRoot()
	if err != nil {
		return nil, err
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.Join(root, "migrations", "clickhouse"))
	m, err := migrate.New(sourceURL, withMultiStatement(dsn))
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

func withMultiStatement(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}

func closeMigrator(m *migrate.Migrate) error {
	if m == nil {
		return nil
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil && dbErr != nil {
		return fmt.Errorf("close migrator: source: %v; database: %v", sourceErr, dbErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("close migrator: source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migrator: database: %w", dbErr)
	}
	return nil
}
