package app

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrEmptyTokenAddress is returned before any HTTP request is issued.
var ErrEmptyTokenAddress = errors.New("token address is required")

type tokenSecurityBackend interface {
	CheckTokenSecurity(ctx context.Context, tokenAddress string) (string, error)
}

// TokenSecuritySession drives the token checker screen. It has no poller:
// checks run only on explicit user action.
type TokenSecuritySession struct {
	client tokenSecurityBackend
	logger *zap.Logger
}

// NewTokenSecuritySession creates the token checker session.
func NewTokenSecuritySession(client tokenSecurityBackend, logger *zap.Logger) *TokenSecuritySession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSecuritySession{client: client, logger: logger.With(zap.String("session", "tokensecurity"))}
}

func (s *TokenSecuritySession) Name() string { return "tokensecurity" }

func (s *TokenSecuritySession) Mount(ctx context.Context) error { return nil }

func (s *TokenSecuritySession) Unmount() {}

// Check runs the backend's risk analysis for a token address.
func (s *TokenSecuritySession) Check(ctx context.Context, tokenAddress string) (string, error) {
	tokenAddress = strings.TrimSpace(tokenAddress)
	if tokenAddress == "" {
		return "", ErrEmptyTokenAddress
	}
	return s.client.CheckTokenSecurity(ctx, tokenAddress)
}
