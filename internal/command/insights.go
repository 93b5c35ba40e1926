package command

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// BuildInsights synthesizes a plain-text summary of current balances and
// logged spending. Pure string templating, no analysis: the backend's LLM
// variant is unavailable when this runs.
func BuildInsights(balances domain.AIBalances, expenses []domain.Expense) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Portfolio total: $%s\n", balances.TotalUSD.StringFixed(2))
	fmt.Fprintf(&b, "Hydra: %s HBAR ($%s)\n",
		balances.Hydra.Balance.StringFixed(2), balances.Hydra.USDValue.StringFixed(2))
	fmt.Fprintf(&b, "Coinbase: $%s\n", balances.Coinbase.USDValue.StringFixed(2))
	fmt.Fprintf(&b, "MetaMask: %s ETH ($%s)\n",
		balances.Metamask.Balance.StringFixed(4), balances.Metamask.USDValue.StringFixed(2))

	if len(expenses) == 0 {
		b.WriteString("No expenses logged yet.")
		return b.String()
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	fmt.Fprintf(&b, "Logged %d expenses totaling $%s.", len(expenses), total.StringFixed(2))
	for category, sum := range byCategory {
		fmt.Fprintf(&b, " %s: $%s.", category, sum.StringFixed(2))
	}
	return b.String()
}
