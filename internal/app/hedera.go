package app

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/services/poller"
	"github.com/vadiminshakov/cryptora/internal/services/transfer"
	historywal "github.com/vadiminshakov/cryptora/internal/storage/history"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type hederaBackend interface {
	HederaBalance(ctx context.Context) (domain.HederaAccountState, error)
	TransferHbar(ctx context.Context, fromPrivateKey, toAccountID string, amount decimal.Decimal) (domain.TransferResult, error)
	HederaTips(ctx context.Context) ([]string, error)
	HederaNews(ctx context.Context) ([]string, error)
}

// HederaSession drives the Hedera network screen: balance polling, transfer
// submission with optimistic history, and the tips/news side panels.
type HederaSession struct {
	client   hederaBackend
	wal      *historywal.Store
	history  *store.HistoryStore
	balances *store.BalanceStore
	interval time.Duration
	logger   *zap.Logger

	transfers *transfer.Service

	cancel context.CancelFunc
	wg     sync.WaitGroup
	poller *poller.Poller[domain.HederaAccountState]

	mu   sync.RWMutex
	tips []string
	news []string
}

// NewHederaSession creates the Hedera screen session. operatorKey is the
// Hedera private key used as the transfer source.
func NewHederaSession(client hederaBackend, wal *historywal.Store, history *store.HistoryStore,
	balances *store.BalanceStore, operatorKey string, interval time.Duration, logger *zap.Logger) *HederaSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HederaSession{
		client:   client,
		wal:      wal,
		history:  history,
		balances: balances,
		interval: interval,
		logger:   logger.With(zap.String("session", "hedera")),
	}
	s.transfers = transfer.NewService(client, history, operatorKey, s.refreshBalance, s.logger)
	return s
}

func (s *HederaSession) Name() string { return "hedera" }

// Mount reads the persisted history back before any state is shown, issues
// the first balance fetch, loads tips and news once, then starts the poller.
func (s *HederaSession) Mount(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.wal != nil {
		s.history.Replace(s.wal.Load())
	}

	s.poller = poller.New("hedera-balance", s.interval,
		s.fetchBalance, s.balances.SetHedera, s.balances.RecordError, s.logger)
	s.poller.Poll(ctx)

	s.loadFeeds(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.poller.Run(ctx)
	}()
	return nil
}

// Unmount cancels the poller and waits for it to stop.
func (s *HederaSession) Unmount() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.poller.Invalidate()
	s.wg.Wait()
}

// Submit runs one transfer through the submission state machine.
func (s *HederaSession) Submit(ctx context.Context, recipient, amount string) (domain.TransferRecord, error) {
	return s.transfers.Submit(ctx, recipient, amount)
}

// TransferState returns the current submission state.
func (s *HederaSession) TransferState() transfer.State {
	return s.transfers.State()
}

// Tips returns the Hedera usage tips loaded on mount.
func (s *HederaSession) Tips() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.tips...)
}

// News returns the Hedera news loaded on mount.
func (s *HederaSession) News() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.news...)
}

func (s *HederaSession) fetchBalance(ctx context.Context) (domain.HederaAccountState, error) {
	return s.client.HederaBalance(ctx)
}

// refreshBalance is the forced re-poll after a successful transfer, so the
// new balance shows without waiting out the timer.
func (s *HederaSession) refreshBalance(ctx context.Context) {
	if s.poller != nil {
		s.poller.Poll(ctx)
	}
}

func (s *HederaSession) loadFeeds(ctx context.Context) {
	tips, err := s.client.HederaTips(ctx)
	if err != nil {
		s.balances.RecordError(err)
	}
	news, err := s.client.HederaNews(ctx)
	if err != nil {
		s.balances.RecordError(err)
	}

	s.mu.Lock()
	s.tips = tips
	s.news = news
	s.mu.Unlock()
}
