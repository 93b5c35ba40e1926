package assistant

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/clients"
	"github.com/vadiminshakov/cryptora/internal/command"
	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type commandBackend interface {
	ProcessAIInput(ctx context.Context, input string) (domain.CommandResult, error)
}

// CommandService routes free-text commands. The backend interpreter is the
// primary path; when it is unreachable the shared grammar is evaluated locally
// against in-memory state, and both paths apply results identically.
type CommandService struct {
	backend  commandBackend
	balances *store.BalanceStore
	expenses *store.ExpenseStore
	logger   *zap.Logger
}

// NewCommandService creates the command router.
func NewCommandService(backend commandBackend, balances *store.BalanceStore, expenses *store.ExpenseStore, logger *zap.Logger) *CommandService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandService{backend: backend, balances: balances, expenses: expenses, logger: logger}
}

// Process interprets one free-text command and applies its effects to the
// stores. Backend-reported failures are returned as-is; only transport
// failures activate the local fallback.
func (s *CommandService) Process(ctx context.Context, input string) (domain.CommandResult, error) {
	result, err := s.backend.ProcessAIInput(ctx, input)
	if err != nil {
		if !clients.IsUnreachable(err) {
			s.balances.RecordError(err)
			return domain.CommandResult{}, err
		}
		balances, _ := s.balances.AI()
		result = command.Execute(input, balances, s.expenses.Expenses(), time.Now())
		s.logger.Info("command endpoint unreachable, used local fallback",
			zap.String("input", input), zap.String("action", string(result.Action)))
	}

	s.apply(result)
	return result, nil
}

func (s *CommandService) apply(result domain.CommandResult) {
	switch result.Action {
	case domain.ActionTransfer:
		if result.UpdatedBalances != nil {
			s.balances.SetAI(*result.UpdatedBalances)
		}
	case domain.ActionExpense:
		if result.Expense != nil {
			s.expenses.Append(*result.Expense)
		}
	}
}
