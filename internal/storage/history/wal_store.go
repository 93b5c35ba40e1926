// Package history persists the transfer history write-through: the whole list
// is appended to a WAL on every mutation and the newest entry wins on load.
package history

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

const (
	defaultDir   = "./wal/history"
	segmentLimit = 1000
	maxSegments  = 100

	// historyKey matches the storage key the web client used, so dumps stay
	// recognizable across both implementations.
	historyKey = "hederaTransactionHistory"
)

// Store is a WAL-backed transfer history. No migration or versioning; the
// segment caps bound on-disk growth.
type Store struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewStore opens the history WAL under the provided directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = defaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "history_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init transfer history WAL")
	}

	return &Store{wal: wal}, nil
}

// Save writes the full record list as one WAL entry.
func (s *Store) Save(records []domain.TransferRecord) error {
	if s == nil || s.wal == nil {
		return errors.New("transfer history store is not initialized")
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "marshal transfer history")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, historyKey, payload)
}

// Load returns the most recently written history. A missing or corrupt entry
// is treated as no history at all (fail open), never as an error the caller
// must handle.
func (s *Store) Load() []domain.TransferRecord {
	if s == nil || s.wal == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for idx := s.wal.CurrentIndex(); idx >= 1; idx-- {
		key, payload, err := s.wal.Get(idx)
		if err != nil || key != historyKey {
			continue
		}
		var records []domain.TransferRecord
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil
		}
		return records
	}
	return nil
}

// Close closes the underlying WAL.
func (s *Store) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("transfer history store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
