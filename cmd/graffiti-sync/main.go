package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/config"
	"github.com/soulscape/evolution-engine/internal/graffiti"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
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
	cfg, err := config.LoadGraffitiSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "graffiti-sync",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Soulscape Graffiti Sync")

	// Connect to database for the block cursor
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

	// Connect to the spirit chain (read only)
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to chain RPC", zap.Error(err), zap.String("url", cfg.Chain.RPCURL))
	}
	defer ethClient.Close()

	chainClient := spiritchain.NewClient(spiritchain.Config{
		ChainID:          cfg.Chain.ChainIDBig(),
		SoulContract:     cfg.Chain.SoulContract,
		GraffitiContract: cfg.Chain.GraffitiContract,
	}, ethClient, clock, nil)

	// Entity store for stroke mirroring
	entityClient := arkiv.NewEntityClient(cfg.Arkiv.RPCURL, adapter.NewHTTPClient(cfg.Arkiv.Timeout), jsonAdapter)
	strokeStore := arkiv.NewStore(entityClient, jsonAdapter)

	// Connect to NATS for stroke events
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

	syncer := graffiti.NewSyncer(chainClient, strokeStore, dataStore, publisher)

	// Run one pass immediately, then keep syncing on the configured interval
	if _, err := syncer.SyncFromCursor(ctx); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "initial sync pass failed"))
	}

	if cfg.SyncInterval <= 0 {
		logger.InfoCtx(ctx, "Single sync pass complete")
		return
	}

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case sig := <-sigCh:
			logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
			logger.Info("Graffiti sync stopped")
			return
		case <-ticker.C:
			if _, err := syncer.SyncFromCursor(ctx); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "sync pass failed"))
			}
		}
	}
}
