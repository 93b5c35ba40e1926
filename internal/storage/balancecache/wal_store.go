// Package balancecache is the local write-through cache of balance snapshots.
// A cached snapshot is served on mount before any network call, with no
// expiry check (stale-but-available policy).
package balancecache

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

const (
	defaultDir   = "./wal/balances"
	segmentLimit = 1000
	maxSegments  = 100

	// Keys match the web client's local storage names.
	walletKey = "multiChainWalletBalance"
	hederaKey = "hederaBalance"
)

// Store is a WAL-backed snapshot cache keyed by fixed names, newest entry wins.
type Store struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewStore opens the cache WAL under the provided directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = defaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "balance_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init balance cache WAL")
	}

	return &Store{wal: wal}, nil
}

// SaveWallet caches a multi-chain wallet snapshot.
func (s *Store) SaveWallet(b domain.WalletBalance) error {
	return s.save(walletKey, b)
}

// LoadWallet returns the most recently cached wallet snapshot.
func (s *Store) LoadWallet() (domain.WalletBalance, bool) {
	var b domain.WalletBalance
	ok := s.load(walletKey, &b)
	return b, ok
}

// SaveHedera caches a Hedera account snapshot.
func (s *Store) SaveHedera(b domain.HederaAccountState) error {
	return s.save(hederaKey, b)
}

// LoadHedera returns the most recently cached Hedera snapshot.
func (s *Store) LoadHedera() (domain.HederaAccountState, bool) {
	var b domain.HederaAccountState
	ok := s.load(hederaKey, &b)
	return b, ok
}

func (s *Store) save(key string, value any) error {
	if s == nil || s.wal == nil {
		return errors.New("balance cache is not initialized")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal balance snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// load scans from the newest entry down for the key. Missing or corrupt
// payloads read as a cache miss (fail open).
func (s *Store) load(key string, out any) bool {
	if s == nil || s.wal == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for idx := s.wal.CurrentIndex(); idx >= 1; idx-- {
		entryKey, payload, err := s.wal.Get(idx)
		if err != nil || entryKey != key {
			continue
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return false
		}
		return true
	}
	return false
}

// Close closes the underlying WAL.
func (s *Store) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("balance cache is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
