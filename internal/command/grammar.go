// Package command defines the free-text command grammar. The same grammar
// backs the backend interpreter and the offline fallback, so the two cannot
// silently diverge.
package command

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags a parsed command.
type Kind int

const (
	KindTransfer Kind = iota + 1
	KindExpense
	KindInsights
)

// Command is one parsed instruction.
type Command struct {
	Kind   Kind
	Amount decimal.Decimal

	// transfer
	From string
	To   string

	// expense
	Category    string
	Description string
}

var (
	transferRe = regexp.MustCompile(`transfer\s+\$([\d.]+)\s+from\s+(\w+)\s+to\s+(\w+)`)
	expenseRe  = regexp.MustCompile(`log\s+\$([\d.]+)\s+(\w+)\s+expense\s+for\s+(.+)`)
)

// Parse interprets input against the grammar. Matching is case-insensitive.
// ok is false when the input matches no known command, which is a soft
// fallback for the caller, not an error.
func Parse(input string) (Command, bool) {
	text := strings.ToLower(strings.TrimSpace(input))

	if m := transferRe.FindStringSubmatch(text); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return Command{}, false
		}
		return Command{Kind: KindTransfer, Amount: amount, From: m[2], To: m[3]}, true
	}

	if m := expenseRe.FindStringSubmatch(text); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return Command{}, false
		}
		return Command{
			Kind:        KindExpense,
			Amount:      amount,
			Category:    m[2],
			Description: strings.TrimSpace(m[3]),
		}, true
	}

	if strings.Contains(text, "generate insights") {
		return Command{Kind: KindInsights}, true
	}

	return Command{}, false
}
