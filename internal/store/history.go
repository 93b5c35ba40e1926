package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// historyPersister is satisfied by the WAL-backed history store. The full
// list is written through on every mutation.
type historyPersister interface {
	Save(records []domain.TransferRecord) error
}

// HistoryStore holds the transfer history, newest first. Records accumulate
// for the life of the device; there is no retry-from-history affordance and
// no deletion.
type HistoryStore struct {
	mu      sync.Mutex
	records []domain.TransferRecord
	persist historyPersister
	logger  *zap.Logger
}

// NewHistoryStore creates a store backed by the given persister, which may be
// nil for in-memory use.
func NewHistoryStore(persist historyPersister, logger *zap.Logger) *HistoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryStore{persist: persist, logger: logger}
}

// Replace installs a previously persisted history, as read back on mount.
func (s *HistoryStore) Replace(records []domain.TransferRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.TransferRecord(nil), records...)
}

// Append prepends a new record and writes the whole list through.
func (s *HistoryStore) Append(rec domain.TransferRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.TransferRecord{rec}, s.records...)
	s.writeThrough()
}

// Settle transitions the record with the given id out of PENDING, mutating it
// in place. Settling an already settled record is a no-op; Settle reports
// whether the transition was applied.
func (s *HistoryStore) Settle(id string, status domain.TransferStatus, transactionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		if !s.records[i].Settle(status, transactionID) {
			return false
		}
		s.writeThrough()
		return true
	}
	return false
}

// Records returns a copy of the history, newest first.
func (s *HistoryStore) Records() []domain.TransferRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TransferRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the history.
func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// writeThrough persists the current list. A persistence failure is logged and
// does not fail the mutation: the in-memory state stays authoritative.
func (s *HistoryStore) writeThrough() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(s.records); err != nil {
		s.logger.Warn("failed to persist transfer history", zap.Error(err))
	}
}
