package app

import (
	"context"

	"github.com/pkg/errors"
)

// Login validation failures, rejected before any HTTP request.
var (
	ErrEmailMissing    = errors.New("email is required")
	ErrPasswordMissing = errors.New("password is required")
)

type loginBackend interface {
	Login(ctx context.Context, email, password string) error
}

// Login authenticates against the backend before any session mounts. A 4xx
// from the backend surfaces as the client's status error.
func Login(ctx context.Context, client loginBackend, email, password string) error {
	if email == "" {
		return ErrEmailMissing
	}
	if password == "" {
		return ErrPasswordMissing
	}
	return client.Login(ctx, email, password)
}
