// Package transfer drives HBAR transfer submissions.
package transfer

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/store"
)

// State of the submission flow as surfaced to the owning screen.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

// Validation failures. These are rejected before any HTTP request is issued.
var (
	ErrEmptyRecipient = errors.New("recipient is required")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
)

type backend interface {
	TransferHbar(ctx context.Context, fromPrivateKey, toAccountID string, amount decimal.Decimal) (domain.TransferResult, error)
}

// Service runs the IDLE -> SUBMITTING -> {SUCCESS, FAILED} submission flow.
// An optimistic PENDING record lands in history before the backend call
// resolves, so an interruption mid-flight still leaves a visible entry.
// Concurrent submissions are independent promises racing each other; they are
// deliberately not serialized.
type Service struct {
	backend     backend
	history     *store.HistoryStore
	operatorKey string
	refresh     func(ctx context.Context)
	logger      *zap.Logger

	mu    sync.Mutex
	state State
}

// NewService creates the submission service. refresh is invoked after a
// successful transfer to re-fetch the balance without waiting for the timer;
// it may be nil.
func NewService(b backend, history *store.HistoryStore, operatorKey string, refresh func(ctx context.Context), logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend:     b,
		history:     history,
		operatorKey: operatorKey,
		refresh:     refresh,
		logger:      logger,
		state:       StateIdle,
	}
}

// State returns the most recent submission state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit validates the inputs, appends an optimistic PENDING record, then
// settles it from the backend reply. The returned record reflects the settled
// state; it stays in history permanently either way.
func (s *Service) Submit(ctx context.Context, recipient, amount string) (domain.TransferRecord, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return domain.TransferRecord{}, ErrEmptyRecipient
	}
	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || !amt.IsPositive() {
		return domain.TransferRecord{}, ErrInvalidAmount
	}

	s.setState(StateSubmitting)
	rec := domain.NewTransferRecord(recipient, amount)
	s.history.Append(rec)
	s.logger.Info("transfer submitted",
		zap.String("id", rec.ID), zap.String("recipient", recipient), zap.String("amount", amount))

	result, err := s.backend.TransferHbar(ctx, s.operatorKey, recipient, amt)
	if err != nil {
		return s.fail(rec, err)
	}
	if result.Error != "" {
		return s.fail(rec, errors.Errorf("transfer rejected: %s", result.Error))
	}
	if result.Status != string(domain.TransferSuccess) {
		return s.fail(rec, errors.Errorf("transfer finished with status %s", result.Status))
	}

	s.history.Settle(rec.ID, domain.TransferSuccess, result.TransactionID)
	s.setState(StateSuccess)
	rec.Status = domain.TransferSuccess
	rec.TransactionID = result.TransactionID
	s.logger.Info("transfer succeeded", zap.String("id", rec.ID), zap.String("transaction_id", result.TransactionID))

	if s.refresh != nil {
		s.refresh(ctx)
	}
	return rec, nil
}

func (s *Service) fail(rec domain.TransferRecord, err error) (domain.TransferRecord, error) {
	s.history.Settle(rec.ID, domain.TransferFailed, "")
	s.setState(StateFailed)
	rec.Status = domain.TransferFailed
	s.logger.Warn("transfer failed", zap.String("id", rec.ID), zap.Error(err))
	return rec, err
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
