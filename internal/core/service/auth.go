package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
)

var _ port.Authenticator = (*Auth)(nil)

// Auth performs login and registration against the backend and owns
// the login/register mode toggle.
type Auth struct {
	gateway port.AuthGateway
	session port.SessionStorage

	mu   sync.Mutex
	mode domain.AuthMode
}

func NewAuth(gateway port.AuthGateway, session port.SessionStorage) *Auth {
	return &Auth{gateway: gateway, session: session, mode: domain.LoginMode}
}

// Register does not auto-login. On success the mode flips back to
// login so the user can proceed with the fresh account.
func (a *Auth) Register(ctx context.Context, username, email, password string) error {
	const op = "Auth.Register"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := a.gateway.RegisterUser(ctx, username, email, password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.SwitchMode(domain.LoginMode)
	return nil
}

// Login stores the returned token verbatim on success. On failure the
// session slot is left untouched.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	const op = "Auth.Login"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := a.gateway.LoginUser(ctx, username, password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.session.Set(token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a *Auth) Mode() domain.AuthMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *Auth) SwitchMode(m domain.AuthMode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = m
}
