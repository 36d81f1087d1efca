package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/service/checker"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/validation"
)

var config struct {
	Addr               string               `long:"addr" env:"API_GATEWAY_ADDR" description:"grpc addr" default:":8000"`
	RestAddr           string               `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	Network            string               `long:"network" env:"TXCORE_NETWORK" description:"network label of checked transactions" default:"mainnet"`
	ClickhouseDSN      string               `long:"clickhouse-dsn" env:"TXCORE_CLICKHOUSE_DSN" description:"archive checked transactions to this ClickHouse, disabled when empty"`
	ParamsFile         string               `long:"params-file" env:"TXCORE_PARAMS_FILE" description:"ini file with consensus parameters, overrides the consensus flags"`
	PredicateCacheSize int                  `long:"predicate-cache-size" env:"TXCORE_PREDICATE_CACHE_SIZE" description:"predicate owners kept in memory" default:"4096"`
	Consensus          consensus.Parameters `group:"consensus" namespace:"consensus" env-namespace:"CONSENSUS"`
	Checker            checker.Config       `group:"checker" namespace:"checker" env-namespace:"CHECKER"`
	Archive            checker.WriterConfig `group:"archive" namespace:"archive" env-namespace:"ARCHIVE"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	params := config.Consensus
	if config.ParamsFile != "" {
		if params, err = consensus.LoadFile(config.ParamsFile); err != nil {
			logger.Fatal("Load consensus parameters", zap.Error(err))
		}
	}

	owners, err := validation.NewCachedPredicateOwners(config.PredicateCacheSize)
	if err != nil {
		logger.Fatal("Predicate owner cache", zap.Error(err))
	}

	network := model.Network(config.Network)
	var (
		repo   checker.ClickhouseRepository
		writer checker.Writer
	)
	if config.ClickhouseDSN != "" {
		chRepo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			logger.Fatal("Init clickhouse repository", zap.Error(err))
		}
		defer func() {
			if err := chRepo.Close(); err != nil {
				logger.Error("Close clickhouse repository", zap.Error(err))
			}
		}()
		repo = chRepo
		writer = checker.NewArchiveWriter(chRepo, metrics.NewArchiveWriter(config.Network), config.Archive, logger.Named("archive"))
		writer.Start(ctx)
		defer writer.Stop()
	} else {
		logger.Info("ClickHouse DSN not set, archiving disabled")
	}

	svc, err := checker.New(network, params, config.Checker, owners, repo, writer,
		metrics.NewChecker(config.Network), metrics.NewCodec(config.Network), logger.Named("checker"))
	if err != nil {
		logger.Fatal("Init checker", zap.Error(err))
	}
	handler := transport.NewTxHandler(svc, logger.Named("transport"))

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	transport.RegisterTxServiceServer(grpcServer, handler)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", config.Addr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Fatal("Start GRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	mux := http.NewServeMux()

	gw := gwruntime.NewServeMux()
	if err := transport.RegisterGateway(gw, handler); err != nil {
		logger.Fatal("Register transaction handlers", zap.Error(err))
	}

	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr), zap.String("network", config.Network))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
