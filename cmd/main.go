package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arzex-lab/exchange/internal/api"
	"github.com/arzex-lab/exchange/internal/config"
	"github.com/arzex-lab/exchange/internal/database"
	"github.com/arzex-lab/exchange/internal/services"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	var showVersion = flag.Bool("version", false, "Show version information")
	flag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	if *showVersion {
		logrus.WithFields(logrus.Fields{
			"version": Version,
			"commit":  CommitHash,
			"built":   BuildTime,
		}).Info("Arzex Exchange Server")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		logrus.WithError(err).Fatal("Failed to seed database")
	}

	coinService := services.NewCoinService(db.DB)
	walletService := services.NewWalletService(db.DB, database.PlatformCoinSymbols)
	tradingService := services.NewTradingService(db.DB, cfg.FeePercentage, database.PlatformCoinSymbols)
	historyService := services.NewTradeHistoryService(db.DB)
	faucetService := services.NewFaucetService(db.DB, cfg.FaucetClaimAmount, cfg.FaucetCoinSymbol, database.PlatformCoinSymbols)

	server := api.NewAPIServer(coinService, walletService, tradingService, historyService, faucetService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logrus.WithField("port", cfg.Port).Info("Starting exchange server")
		return server.Listen(":" + cfg.Port)
	})
	group.Go(func() error {
		<-ctx.Done()
		logrus.Info("Shutting down")
		return server.Shutdown()
	})

	if err := group.Wait(); err != nil {
		logrus.WithError(err).Error("Server exited with error")
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config) (*database.Database, error) {
	if cfg.DatabaseURL != "" {
		return database.NewPostgresDatabase(cfg.DatabaseURL)
	}
	return database.NewSqliteDatabase(cfg.DatabasePath)
}
