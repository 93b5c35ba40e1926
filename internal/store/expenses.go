package store

import (
	"sync"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// ExpenseStore holds logged expenses. Creation-only lifecycle: entries are
// appended by explicit user or backend actions and never modified.
type ExpenseStore struct {
	mu       sync.RWMutex
	expenses []domain.Expense
}

// NewExpenseStore creates an empty expense list.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{}
}

// Replace installs the backend's expense list wholesale.
func (s *ExpenseStore) Replace(expenses []domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]domain.Expense(nil), expenses...)
}

// Append adds one expense to the list.
func (s *ExpenseStore) Append(e domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

// Expenses returns a copy of the list in insertion order.
func (s *ExpenseStore) Expenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}
