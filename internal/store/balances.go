// Package store holds the per-screen view state. Every store is single-writer:
// only the owning session's handlers and poller mutate it, the mutex exists for
// readers on other goroutines (dashboard, tests).
package store

import (
	"sync"
	"time"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/events"
)

// BalanceStore holds the last observed balance snapshots for one session.
// Snapshots are replaced wholesale; a failed poll leaves the prior snapshot
// intact and only appends to the error ring.
type BalanceStore struct {
	mu     sync.RWMutex
	wallet *domain.WalletBalance
	hedera *domain.HederaAccountState
	ai     *domain.AIBalances
	errs   errRing

	broadcaster *events.BalanceBroadcaster
}

// NewBalanceStore creates an empty store. The broadcaster may be nil.
func NewBalanceStore(broadcaster *events.BalanceBroadcaster) *BalanceStore {
	return &BalanceStore{broadcaster: broadcaster}
}

// SetWallet installs a fresh multi-chain snapshot.
func (s *BalanceStore) SetWallet(b domain.WalletBalance) {
	s.mu.Lock()
	s.wallet = &b
	s.mu.Unlock()
	s.publish(events.SourceWallet, b.TotalUSDValue.StringFixed(2), b.Address)
}

// Wallet returns the current multi-chain snapshot, if any was ever received.
func (s *BalanceStore) Wallet() (domain.WalletBalance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return domain.WalletBalance{}, false
	}
	return *s.wallet, true
}

// SetHedera installs a fresh Hedera account snapshot.
func (s *BalanceStore) SetHedera(b domain.HederaAccountState) {
	s.mu.Lock()
	s.hedera = &b
	s.mu.Unlock()
	s.publish(events.SourceHedera, b.Hbar().StringFixed(8), b.AccountID)
}

// Hedera returns the current Hedera snapshot, if any was ever received.
func (s *BalanceStore) Hedera() (domain.HederaAccountState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hedera == nil {
		return domain.HederaAccountState{}, false
	}
	return *s.hedera, true
}

// SetAI installs a fresh AI+ aggregated snapshot.
func (s *BalanceStore) SetAI(b domain.AIBalances) {
	s.mu.Lock()
	s.ai = &b
	s.mu.Unlock()
	s.publish(events.SourceAI, b.TotalUSD.StringFixed(2), "")
}

// AI returns the current AI+ snapshot, if any was ever received.
func (s *BalanceStore) AI() (domain.AIBalances, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ai == nil {
		return domain.AIBalances{}, false
	}
	return *s.ai, true
}

// RecordError appends a failure message to the bounded error ring.
func (s *BalanceStore) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs.push(err.Error())
	s.mu.Unlock()
}

// Errors returns the most recent failure messages, oldest first.
func (s *BalanceStore) Errors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs.snapshot()
}

func (s *BalanceStore) publish(source, amount, detail string) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Publish(events.BalanceEvent{
		Timestamp: time.Now(),
		Source:    source,
		Amount:    amount,
		Detail:    detail,
	})
}
