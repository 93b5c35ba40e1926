package domain

import (
	"github.com/shopspring/decimal"
)

// ReminderCondition enumerates the fixed set of balance alert triggers the
// backend knows how to evaluate.
type ReminderCondition string

const (
	ConditionTotalAbove51     ReminderCondition = "total_above_51"
	ConditionHydraIncrease    ReminderCondition = "hydra_increase"
	ConditionCoinbaseIncrease ReminderCondition = "coinbase_increase"
	ConditionTotalBelow51     ReminderCondition = "total_below_51"
	ConditionCustom           ReminderCondition = "custom"
)

// Valid reports whether the condition belongs to the supported set.
func (c ReminderCondition) Valid() bool {
	switch c {
	case ConditionTotalAbove51, ConditionHydraIncrease, ConditionCoinbaseIncrease,
		ConditionTotalBelow51, ConditionCustom:
		return true
	}
	return false
}

// Reminder is an email alert registered with the backend. Reminders are
// created only after the backend acknowledges them and are never updated or
// deleted client-side.
type Reminder struct {
	ID        int               `json:"id"`
	Email     string            `json:"email"`
	Condition ReminderCondition `json:"condition"`
	Threshold *decimal.Decimal  `json:"threshold,omitempty"`
}
