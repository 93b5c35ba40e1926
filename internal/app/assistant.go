package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/services/assistant"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type assistantBackend interface {
	QueryAI(ctx context.Context, q string) (string, error)
	CryptoNews(ctx context.Context) ([]string, error)
}

// AssistantSession drives the AI chat screen.
type AssistantSession struct {
	client assistantBackend
	chat   *store.ChatStore
	svc    *assistant.ChatService
	logger *zap.Logger

	mu   sync.RWMutex
	news []string
}

// NewAssistantSession creates the chat screen session.
func NewAssistantSession(client assistantBackend, chat *store.ChatStore, logger *zap.Logger) *AssistantSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", "assistant"))
	return &AssistantSession{
		client: client,
		chat:   chat,
		svc:    assistant.NewChatService(client, chat, logger),
		logger: logger,
	}
}

func (s *AssistantSession) Name() string { return "assistant" }

// Mount loads the news feed once. The transcript has no poller: it only grows
// through explicit Ask calls.
func (s *AssistantSession) Mount(ctx context.Context) error {
	news, err := s.client.CryptoNews(ctx)
	if err != nil {
		s.chat.RecordError(err)
	}
	s.mu.Lock()
	s.news = news
	s.mu.Unlock()
	return nil
}

func (s *AssistantSession) Unmount() {}

// Ask sends one question through the chat service.
func (s *AssistantSession) Ask(ctx context.Context, question string) (domain.ChatMessage, error) {
	return s.svc.Ask(ctx, question)
}

// Transcript returns the chat messages in order.
func (s *AssistantSession) Transcript() []domain.ChatMessage {
	return s.chat.Messages()
}

// News returns the crypto news loaded on mount.
func (s *AssistantSession) News() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.news...)
}
