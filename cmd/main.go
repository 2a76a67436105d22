package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cartflow/internal/bootstrap"
	"cartflow/internal/config"
	cronpkg "cartflow/internal/cron"
	"cartflow/internal/middleware"
	"cartflow/internal/notify"
	"cartflow/internal/router"
	"cartflow/internal/store"
	"cartflow/internal/yagoutpay"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Gateway credentials (fail fast on bad key material) ---
	key, err := yagoutpay.DecodeKey(cfg.YagoutPay.EncryptionKey)
	if err != nil {
		logger.Fatal("Invalid gateway encryption key", zap.Error(err))
	}
	creds := &yagoutpay.Credentials{
		MerchantID:   cfg.YagoutPay.MerchantID,
		AggregatorID: cfg.YagoutPay.AggregatorID,
		Key:          key,
		PostURL:      cfg.YagoutPay.PostURL,
		APIURL:       cfg.YagoutPay.APIURL,
	}
	defaults := yagoutpay.PGDefaults{
		PGID:       cfg.YagoutPay.PGID,
		Paymode:    cfg.YagoutPay.Paymode,
		SchemeID:   cfg.YagoutPay.SchemeID,
		WalletType: cfg.YagoutPay.WalletType,
	}

	// --- Transaction store (Redis when available, else in-memory) ---
	var txns store.TransactionStore
	if redisStore, redisErr := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB); redisErr == nil {
		txns = redisStore
		logger.Info("Using Redis transaction store", zap.String("addr", cfg.Redis.Addr))
	} else {
		txns = store.NewMemoryStore()
		logger.Warn("Redis unavailable, using in-memory transaction store", zap.Error(redisErr))
	}

	// --- Gateway adapter ---
	client := yagoutpay.NewClient(cfg.YagoutPay.RequestTimeout)
	gateway, err := yagoutpay.NewGateway(creds, defaults, client, txns, logger)
	if err != nil {
		logger.Fatal("Failed to create gateway adapter", zap.Error(err))
	}

	// --- Database (catalog + audit trail; optional) ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Warn("Database unavailable, catalog and audit routes disabled", zap.Error(err))
		db = nil
	} else if err := bootstrap.MigrateAndSeed(db); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Callback deduper (Redis with in-memory fallback) ---
	deduper, dedupeErr := middleware.NewCallbackDeduper(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		10*time.Minute,
	)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for callback dedup, using in-memory fallback", zap.Error(dedupeErr))
	}

	// --- Notifier ---
	notifier := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, logger)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true
	router.Setup(e, db, gateway, deduper, notifier, &cfg.Checkout, logger)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(txns, cfg.Checkout.PendingTTL, logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting cartflow server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop cron
	ctx := scheduler.Stop()
	<-ctx.Done()

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
