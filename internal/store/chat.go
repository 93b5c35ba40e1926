package store

import (
	"sync"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// ChatStore holds the assistant transcript. Append-only: only explicit user
// and assistant actions add messages, polls never touch it. The transcript is
// not persisted across restarts.
type ChatStore struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
	errs     errRing
}

// NewChatStore creates an empty transcript.
func NewChatStore() *ChatStore {
	return &ChatStore{}
}

// Append adds a message to the end of the transcript.
func (s *ChatStore) Append(msg domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of the transcript in order.
func (s *ChatStore) Messages() []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// RecordError appends a failure message to the bounded error ring.
func (s *ChatStore) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs.push(err.Error())
	s.mu.Unlock()
}

// Errors returns the most recent failure messages, oldest first.
func (s *ChatStore) Errors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs.snapshot()
}
