// Package assistant wires the AI screens: chat, free-text commands and
// email reminders.
package assistant

import (
	"context"

	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type chatBackend interface {
	QueryAI(ctx context.Context, q string) (string, error)
}

// ChatService maintains the assistant transcript.
type ChatService struct {
	backend chatBackend
	store   *store.ChatStore
	logger  *zap.Logger
}

// NewChatService creates the chat service.
func NewChatService(backend chatBackend, chatStore *store.ChatStore, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{backend: backend, store: chatStore, logger: logger}
}

// Ask appends the user message, queries the backend, and appends the reply.
// On failure the user message stays in the transcript and the error lands in
// the store's error ring.
func (s *ChatService) Ask(ctx context.Context, question string) (domain.ChatMessage, error) {
	s.store.Append(domain.NewChatMessage(domain.RoleUser, question))

	answer, err := s.backend.QueryAI(ctx, question)
	if err != nil {
		s.store.RecordError(err)
		s.logger.Warn("assistant query failed", zap.Error(err))
		return domain.ChatMessage{}, err
	}

	reply := domain.NewChatMessage(domain.RoleAssistant, answer)
	s.store.Append(reply)
	return reply, nil
}
