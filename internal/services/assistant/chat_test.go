package assistant

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type fakeChatBackend struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeChatBackend) QueryAI(_ context.Context, q string) (string, error) {
	f.asked = append(f.asked, q)
	return f.answer, f.err
}

func TestAskAppendsBothMessages(t *testing.T) {
	chatStore := store.NewChatStore()
	backend := &fakeChatBackend{answer: "HBAR is the native token of Hedera."}
	svc := NewChatService(backend, chatStore, nil)

	reply, err := svc.Ask(context.Background(), "what is HBAR?")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "HBAR is the native token of Hedera.", reply.Content)

	messages := chatStore.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "what is HBAR?", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.Equal(t, []string{"what is HBAR?"}, backend.asked)
}

func TestAskFailureKeepsUserMessage(t *testing.T) {
	chatStore := store.NewChatStore()
	backend := &fakeChatBackend{err: errors.New("backend unreachable")}
	svc := NewChatService(backend, chatStore, nil)

	_, err := svc.Ask(context.Background(), "hello?")
	require.Error(t, err)

	messages := chatStore.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleUser, messages[0].Role)

	errs := chatStore.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "backend unreachable")
}
