package app

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/clients"
	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/services/assistant"
	"github.com/vadiminshakov/cryptora/internal/services/poller"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type aiPlusBackend interface {
	AIBalances(ctx context.Context) (domain.AIBalances, error)
	ProcessAIInput(ctx context.Context, input string) (domain.CommandResult, error)
	SetReminder(ctx context.Context, req clients.ReminderRequest) error
	Expenses(ctx context.Context) ([]domain.Expense, error)
	Insights(ctx context.Context) (string, error)
}

// AIPlusSession drives the AI+ screen: aggregated balances polling, free-text
// commands with offline fallback, expense tracking and email reminders.
type AIPlusSession struct {
	client   aiPlusBackend
	balances *store.BalanceStore
	expenses *store.ExpenseStore
	interval time.Duration
	logger   *zap.Logger

	commands  *assistant.CommandService
	reminders *assistant.ReminderService

	cancel context.CancelFunc
	wg     sync.WaitGroup
	poller *poller.Poller[domain.AIBalances]
}

// NewAIPlusSession creates the AI+ screen session.
func NewAIPlusSession(client aiPlusBackend, balances *store.BalanceStore, expenses *store.ExpenseStore,
	reminders *store.ReminderStore, interval time.Duration, logger *zap.Logger) *AIPlusSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", "aiplus"))
	return &AIPlusSession{
		client:    client,
		balances:  balances,
		expenses:  expenses,
		interval:  interval,
		logger:    logger,
		commands:  assistant.NewCommandService(client, balances, expenses, logger),
		reminders: assistant.NewReminderService(client, balances, reminders, logger),
	}
}

func (s *AIPlusSession) Name() string { return "aiplus" }

// Mount issues the first balance fetch, loads the backend's expense list, and
// starts the poller.
func (s *AIPlusSession) Mount(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.poller = poller.New("ai-balances", s.interval,
		s.client.AIBalances, s.balances.SetAI, s.balances.RecordError, s.logger)
	s.poller.Poll(ctx)

	if expenses, err := s.client.Expenses(ctx); err != nil {
		s.balances.RecordError(err)
	} else {
		s.expenses.Replace(expenses)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.poller.Run(ctx)
	}()
	return nil
}

// Unmount cancels the poller and waits for it to stop.
func (s *AIPlusSession) Unmount() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.poller.Invalidate()
	s.wg.Wait()
}

// Process interprets one free-text command.
func (s *AIPlusSession) Process(ctx context.Context, input string) (domain.CommandResult, error) {
	return s.commands.Process(ctx, input)
}

// SetReminder registers a balance alert.
func (s *AIPlusSession) SetReminder(ctx context.Context, email string, condition domain.ReminderCondition, threshold *decimal.Decimal) (domain.Reminder, error) {
	return s.reminders.Set(ctx, email, condition, threshold)
}

// Insights asks the backend for a spending analysis.
func (s *AIPlusSession) Insights(ctx context.Context) (string, error) {
	return s.client.Insights(ctx)
}
