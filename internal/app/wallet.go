package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/services/poller"
	"github.com/vadiminshakov/cryptora/internal/storage/balancecache"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type walletBackend interface {
	WalletBalance(ctx context.Context, privateKey string) (domain.WalletBalance, error)
	HederaBalance(ctx context.Context) (domain.HederaAccountState, error)
}

// WalletSession drives the wallet screen: multi-chain and Hedera balances,
// cache-first on mount, then fixed-interval polling.
type WalletSession struct {
	client     walletBackend
	cache      *balancecache.Store
	balances   *store.BalanceStore
	privateKey string
	interval   time.Duration
	logger     *zap.Logger

	cancel       context.CancelFunc
	wg           sync.WaitGroup
	walletPoller *poller.Poller[domain.WalletBalance]
	hederaPoller *poller.Poller[domain.HederaAccountState]
}

// NewWalletSession creates the wallet screen session.
func NewWalletSession(client walletBackend, cache *balancecache.Store, balances *store.BalanceStore,
	privateKey string, interval time.Duration, logger *zap.Logger) *WalletSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletSession{
		client:     client,
		cache:      cache,
		balances:   balances,
		privateKey: privateKey,
		interval:   interval,
		logger:     logger.With(zap.String("session", "wallet")),
	}
}

func (s *WalletSession) Name() string { return "wallet" }

// Mount serves cached snapshots first without touching the network
// (stale-but-available, no expiry check), fetches only on a cache miss, then
// starts both pollers.
func (s *WalletSession) Mount(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.walletPoller = poller.New("wallet-balance", s.interval,
		s.fetchWallet, s.applyWallet, s.balances.RecordError, s.logger)
	s.hederaPoller = poller.New("hedera-balance", s.interval,
		s.fetchHedera, s.applyHedera, s.balances.RecordError, s.logger)

	if cached, ok := s.cache.LoadWallet(); ok {
		s.balances.SetWallet(cached)
	} else {
		s.walletPoller.Poll(ctx)
	}
	if cached, ok := s.cache.LoadHedera(); ok {
		s.balances.SetHedera(cached)
	} else {
		s.hederaPoller.Poll(ctx)
	}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.walletPoller.Run(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.hederaPoller.Run(ctx)
	}()
	return nil
}

// Unmount cancels the pollers and waits for them to stop.
func (s *WalletSession) Unmount() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.walletPoller.Invalidate()
	s.hederaPoller.Invalidate()
	s.wg.Wait()
}

func (s *WalletSession) fetchWallet(ctx context.Context) (domain.WalletBalance, error) {
	return s.client.WalletBalance(ctx, s.privateKey)
}

func (s *WalletSession) applyWallet(b domain.WalletBalance) {
	s.balances.SetWallet(b)
	if err := s.cache.SaveWallet(b); err != nil {
		s.logger.Warn("failed to cache wallet balance", zap.Error(err))
	}
}

func (s *WalletSession) fetchHedera(ctx context.Context) (domain.HederaAccountState, error) {
	return s.client.HederaBalance(ctx)
}

func (s *WalletSession) applyHedera(b domain.HederaAccountState) {
	s.balances.SetHedera(b)
	if err := s.cache.SaveHedera(b); err != nil {
		s.logger.Warn("failed to cache hedera balance", zap.Error(err))
	}
}
