// Package auth implements the identity gate in front of the candidate
// roster: email-based login/signup, logout, and current-session lookup.
package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iajcodes/HireC/internal/types"
)

// SessionStore is the slice of the local store the gate depends on.
type SessionStore interface {
	SetSessionMarker(ctx context.Context, user types.User) error
	GetSessionMarker(ctx context.Context) (*types.User, error)
	ClearSessionMarker(ctx context.Context) error
	EnsureRoster(ctx context.Context, email string) error
}

// ErrEmptyEmail indicates a login/signup attempt without an email.
type ErrEmptyEmail struct{}

func (e *ErrEmptyEmail) Error() string {
	return "email is required"
}

// ErrInvalidCredentials indicates the configured verifier rejected the
// credentials. Never produced by the default AcceptAll verifier.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// Gate maps an email to a session. Sessions are passed explicitly to
// callers; the gate holds no ambient current-user state beyond the
// persisted marker.
type Gate struct {
	store    SessionStore
	verifier Verifier
	logger   *zap.Logger
}

// NewGate creates a gate over the given store. A nil verifier defaults to
// AcceptAll; a nil logger defaults to a no-op.
func NewGate(store SessionStore, verifier Verifier, logger *zap.Logger) *Gate {
	if verifier == nil {
		verifier = AcceptAll{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{store: store, verifier: verifier, logger: logger}
}

// Login establishes email as the current session. The email is validated
// before any store mutation; the verifier decides whether the credentials
// pass (the default accepts anything). First login for an email initializes
// an empty roster.
func (g *Gate) Login(ctx context.Context, email, password string) (types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return types.User{}, &ErrEmptyEmail{}
	}

	if err := g.verifier.Verify(ctx, email, password); err != nil {
		return types.User{}, err
	}

	user := types.User{Email: email}
	if err := g.store.SetSessionMarker(ctx, user); err != nil {
		return types.User{}, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := g.store.EnsureRoster(ctx, email); err != nil {
		return types.User{}, fmt.Errorf("failed to initialize roster: %w", err)
	}

	g.logger.Info("session established", zap.String("email", email))
	return user, nil
}

// Signup has identical effect to Login: no uniqueness check, no collision
// handling.
func (g *Gate) Signup(ctx context.Context, email, password string) (types.User, error) {
	return g.Login(ctx, email, password)
}

// Logout clears the current-session marker. Roster data for the email is
// retained.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.store.ClearSessionMarker(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	g.logger.Info("session cleared")
	return nil
}

// CurrentSession returns the persisted session, or nil when absent or
// malformed.
func (g *Gate) CurrentSession(ctx context.Context) (*types.User, error) {
	return g.store.GetSessionMarker(ctx)
}
