// The evolution-runner is a one-shot batch CLI. With a target address it
// evolves that single spirit; without one it evolves every spirit owner.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/config"
	"github.com/soulscape/evolution-engine/internal/evolution"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
	"github.com/soulscape/evolution-engine/internal/providers/explorer"
	"github.com/soulscape/evolution-engine/internal/providers/jetstream"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
	"github.com/soulscape/evolution-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEvolutionRunnerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "evolution-runner",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Soulscape Evolution Runner")

	// A positional argument overrides the configured target address
	target := cfg.TargetAddress
	if args := flag.Args(); len(args) > 0 && strings.HasPrefix(args[0], "0x") {
		target = args[0]
	}

	// Connect to database for run auditing
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Connect to the spirit chain with the evolution signer
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to chain RPC", zap.Error(err), zap.String("url", cfg.Chain.RPCURL))
	}
	defer ethClient.Close()

	signingKey, err := cfg.Chain.SigningKey()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to parse signing key", zap.Error(err))
	}
	chainClient := spiritchain.NewClient(spiritchain.Config{
		ChainID:          cfg.Chain.ChainIDBig(),
		SoulContract:     cfg.Chain.SoulContract,
		GraffitiContract: cfg.Chain.GraffitiContract,
	}, ethClient, clock, signingKey)

	// External providers
	txLister := explorer.NewClient(cfg.Explorer.BaseURL, adapter.NewHTTPClient(cfg.Explorer.Timeout))
	entityClient := arkiv.NewEntityClient(cfg.Arkiv.RPCURL, adapter.NewHTTPClient(cfg.Arkiv.Timeout), jsonAdapter)
	snapshotStore := arkiv.NewStore(entityClient, jsonAdapter)

	// Connect to NATS for evolution events
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	orchestrator := evolution.NewOrchestrator(chainClient, txLister, snapshotStore, publisher, clock)

	if target != "" {
		result, err := orchestrator.Evolve(ctx, target)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "evolution failed"), zap.String("address", target))
			os.Exit(1)
		}

		logger.InfoCtx(ctx, "Evolution complete",
			zap.String("address", target),
			zap.String("tokenId", result.TokenID),
			zap.String("stage", string(result.Stage)),
			zap.String("txHash", result.TxHash))
		return
	}

	runner := evolution.NewBatchRunner(chainClient, orchestrator, dataStore, clock)
	report, err := runner.EvolveAll(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "batch evolution failed"))
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Batch evolution complete",
		zap.String("runId", report.RunID),
		zap.Int("attempted", report.Attempted),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))

	if report.Failed > 0 {
		os.Exit(1)
	}
}
