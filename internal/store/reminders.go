package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// ReminderStore holds reminders acknowledged by the backend. IDs are
// sequential and client-assigned; reminders are never updated or deleted.
type ReminderStore struct {
	mu        sync.RWMutex
	reminders []domain.Reminder
}

// NewReminderStore creates an empty reminder list.
func NewReminderStore() *ReminderStore {
	return &ReminderStore{}
}

// Add creates a reminder with the next sequential id and returns it.
func (s *ReminderStore) Add(email string, condition domain.ReminderCondition, threshold *decimal.Decimal) domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	reminder := domain.Reminder{
		ID:        len(s.reminders) + 1,
		Email:     email,
		Condition: condition,
		Threshold: threshold,
	}
	s.reminders = append(s.reminders, reminder)
	return reminder
}

// Reminders returns a copy of the list in creation order.
func (s *ReminderStore) Reminders() []domain.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}
