package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// Conversion rates the backend uses for the simulated hydra->metamask move.
var (
	hbarUSDRate = decimal.RequireFromString("0.05")
	ethUSDRate  = decimal.NewFromInt(2500)
)

// NotRecognizedMessage mirrors the backend's soft fallback reply for input
// matching no known command.
const NotRecognizedMessage = "Command not recognized. Try 'transfer $1 from Hydra to MetaMask', 'log $10 food expense for lunch', or 'generate insights'."

// Execute evaluates a free-text command against in-memory state. It is the
// offline fallback path, invoked only when the backend command endpoint is
// unreachable, and produces the same result shape the backend would.
func Execute(input string, balances domain.AIBalances, expenses []domain.Expense, now time.Time) domain.CommandResult {
	cmd, ok := Parse(input)
	if !ok {
		return domain.CommandResult{Message: NotRecognizedMessage}
	}

	switch cmd.Kind {
	case KindTransfer:
		return executeTransfer(cmd, balances)
	case KindExpense:
		return executeExpense(cmd, expenses, now)
	case KindInsights:
		return domain.CommandResult{Action: domain.ActionInsights, Insights: BuildInsights(balances, expenses)}
	}
	return domain.CommandResult{Message: NotRecognizedMessage}
}

func executeTransfer(cmd Command, balances domain.AIBalances) domain.CommandResult {
	if !cmd.Amount.IsPositive() {
		return domain.CommandResult{Message: "Transfer amount must be positive"}
	}
	if cmd.From != "hydra" || cmd.To != "metamask" {
		return domain.CommandResult{
			Message: fmt.Sprintf("Transfers from %s to %s are not supported", cmd.From, cmd.To),
		}
	}
	if cmd.Amount.GreaterThan(balances.Hydra.USDValue) {
		return domain.CommandResult{Message: "Insufficient Hydra balance for transfer"}
	}

	updated := balances
	updated.Hydra.USDValue = updated.Hydra.USDValue.Sub(cmd.Amount)
	updated.Hydra.Balance = updated.Hydra.Balance.Sub(cmd.Amount.Div(hbarUSDRate))
	updated.Metamask.USDValue = updated.Metamask.USDValue.Add(cmd.Amount)
	updated.Metamask.Balance = updated.Metamask.Balance.Add(cmd.Amount.Div(ethUSDRate))
	updated = updated.RecomputeTotal()

	return domain.CommandResult{
		Action:          domain.ActionTransfer,
		Details:         fmt.Sprintf("$%s transferred from Hydra to MetaMask", cmd.Amount.String()),
		UpdatedBalances: &updated,
	}
}

func executeExpense(cmd Command, expenses []domain.Expense, now time.Time) domain.CommandResult {
	expense := domain.Expense{
		ID:          len(expenses) + 1,
		Amount:      cmd.Amount,
		Category:    capitalize(cmd.Category),
		Description: cmd.Description,
		Date:        now.Format("2006-01-02"),
	}
	return domain.CommandResult{Action: domain.ActionExpense, Expense: &expense}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
