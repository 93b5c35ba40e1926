package assistant

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/clients"
	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/store"
)

// Reminder validation failures, rejected before any HTTP request.
var (
	ErrEmailRequired     = errors.New("email address is required")
	ErrConditionRequired = errors.New("a valid reminder condition is required")
	ErrThresholdRequired = errors.New("a custom condition requires a threshold")
)

type reminderBackend interface {
	SetReminder(ctx context.Context, req clients.ReminderRequest) error
}

// ReminderService registers balance alerts. A Reminder is recorded locally
// only after the backend acknowledges it.
type ReminderService struct {
	backend   reminderBackend
	balances  *store.BalanceStore
	reminders *store.ReminderStore
	logger    *zap.Logger
}

// NewReminderService creates the reminder service.
func NewReminderService(backend reminderBackend, balances *store.BalanceStore, reminders *store.ReminderStore, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{backend: backend, balances: balances, reminders: reminders, logger: logger}
}

// Set validates, registers the reminder with the backend, then records it
// with the next sequential id.
func (s *ReminderService) Set(ctx context.Context, email string, condition domain.ReminderCondition, threshold *decimal.Decimal) (domain.Reminder, error) {
	if email == "" {
		return domain.Reminder{}, ErrEmailRequired
	}
	if !condition.Valid() {
		return domain.Reminder{}, ErrConditionRequired
	}
	if condition == domain.ConditionCustom && threshold == nil {
		return domain.Reminder{}, ErrThresholdRequired
	}
	if condition != domain.ConditionCustom {
		threshold = nil
	}

	// The backend wants the balances the alert baseline is computed from;
	// zero values are acceptable when no snapshot arrived yet.
	balances, _ := s.balances.AI()

	req := clients.ReminderRequest{
		Email:           email,
		Condition:       string(condition),
		Threshold:       threshold,
		CurrentBalances: balances,
	}
	if err := s.backend.SetReminder(ctx, req); err != nil {
		s.balances.RecordError(err)
		s.logger.Warn("failed to set reminder", zap.String("email", email), zap.Error(err))
		return domain.Reminder{}, err
	}

	reminder := s.reminders.Add(email, condition, threshold)
	s.logger.Info("reminder set", zap.Int("id", reminder.ID), zap.String("condition", string(condition)))
	return reminder, nil
}
