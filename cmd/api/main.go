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
	"github.com/soulscape/evolution-engine/internal/api/rest"
	"github.com/soulscape/evolution-engine/internal/api/server"
	"github.com/soulscape/evolution-engine/internal/config"
	"github.com/soulscape/evolution-engine/internal/evolution"
	"github.com/soulscape/evolution-engine/internal/graffiti"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "api-server",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Soulscape Evolution API")

	// Connect to database
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

	// Connect to the spirit chain
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

	// Assemble the evolution and graffiti components
	orchestrator := evolution.NewOrchestrator(chainClient, txLister, snapshotStore, publisher, clock)
	batchRunner := evolution.NewBatchRunner(chainClient, orchestrator, dataStore, clock)
	reconciler := graffiti.NewReconciler(chainClient, snapshotStore)

	handler := rest.NewHandler(chainClient, orchestrator, batchRunner, snapshotStore, reconciler, dataStore, clock, cfg.WallLimit)

	// Create and start server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
