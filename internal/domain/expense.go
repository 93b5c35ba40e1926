package domain

import (
	"github.com/shopspring/decimal"
)

// Expense is one logged spending entry, sourced either from the backend or
// from the local command fallback. Creation-only lifecycle: entries are never
// updated or deleted.
type Expense struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}
