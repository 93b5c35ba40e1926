// Command cryptora runs the Cryptora portfolio client. It keeps wallet,
// Hedera and AI+ balances fresh against the backend service, persists the
// transfer history locally, and serves a small live dashboard.
//
// Usage:
//
//	cryptora --config config.yaml
//	cryptora setup   (interactive configuration wizard)
//
// Environment variables:
//
//	CRYPTORA_WALLET_KEY    multi-chain wallet private key
//	CRYPTORA_OPERATOR_KEY  Hedera operator private key (transfer source)
//	CRYPTORA_PASSWORD      backend login password
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/cryptora/config"
	"github.com/vadiminshakov/cryptora/internal/app"
	"github.com/vadiminshakov/cryptora/internal/clients"
	"github.com/vadiminshakov/cryptora/internal/events"
	"github.com/vadiminshakov/cryptora/internal/setup"
	"github.com/vadiminshakov/cryptora/internal/storage/balancecache"
	"github.com/vadiminshakov/cryptora/internal/storage/history"
	"github.com/vadiminshakov/cryptora/internal/store"
	"github.com/vadiminshakov/cryptora/internal/web"
	"github.com/vadiminshakov/cryptora/pkg/retrier"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := clients.NewBackendClient(cfg.BackendURL)

	// The client itself never retries; waiting out backend startup is the
	// caller's business, so the probe goes through the retrier.
	probe := retrier.New(retrier.WithMaxRetries(5))
	if err := probe.Do(ctx, func(ctx context.Context) error {
		_, err := client.HederaBalance(ctx)
		return err
	}); err != nil {
		logger.Fatal("backend unreachable", zap.String("backend", cfg.BackendURL), zap.Error(err))
	}

	if cfg.LoginEmail != "" {
		if err := app.Login(ctx, client, cfg.LoginEmail, cfg.LoginPassword); err != nil {
			logger.Fatal("login failed", zap.Error(err))
		}
		logger.Info("logged in", zap.String("email", cfg.LoginEmail))
	}

	historyWAL, err := history.NewStore(filepath.Join(cfg.DataDir, "history"))
	if err != nil {
		logger.Fatal("failed to open transfer history", zap.Error(err))
	}
	defer historyWAL.Close()

	cacheWAL, err := balancecache.NewStore(filepath.Join(cfg.DataDir, "balances"))
	if err != nil {
		logger.Fatal("failed to open balance cache", zap.Error(err))
	}
	defer cacheWAL.Close()

	broadcaster := events.NewBalanceBroadcaster(256)
	balances := store.NewBalanceStore(broadcaster)
	historyStore := store.NewHistoryStore(historyWAL, logger)
	chatStore := store.NewChatStore()
	expenseStore := store.NewExpenseStore()
	reminderStore := store.NewReminderStore()

	sessions := []app.Session{
		app.NewWalletSession(client, cacheWAL, balances, cfg.WalletKey, cfg.PollInterval, logger),
		app.NewHederaSession(client, historyWAL, historyStore, balances, cfg.OperatorKey, cfg.PollInterval, logger),
		app.NewAssistantSession(client, chatStore, logger),
		app.NewAIPlusSession(client, balances, expenseStore, reminderStore, cfg.PollInterval, logger),
		app.NewTokenSecuritySession(client, logger),
	}

	for _, session := range sessions {
		if err := session.Mount(ctx); err != nil {
			logger.Fatal("failed to mount session", zap.String("session", session.Name()), zap.Error(err))
		}
		logger.Info("session mounted", zap.String("session", session.Name()))
	}

	g, gctx := errgroup.WithContext(ctx)
	dashboard := web.NewServer(cfg.DashboardAddr, broadcaster, historyStore, balances)
	g.Go(func() error {
		return dashboard.Start(gctx)
	})
	logger.Info("dashboard started", zap.String("addr", cfg.DashboardAddr))

	<-gctx.Done()
	for _, session := range sessions {
		session.Unmount()
	}
	if err := g.Wait(); err != nil {
		logger.Error("dashboard stopped with error", zap.Error(err))
	}
}
