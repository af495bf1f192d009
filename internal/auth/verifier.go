package auth

import (
	"context"

	"github.com/iajcodes/HireC/internal/config"
)

// Verifier checks credentials for an email. The gate treats it as a
// pluggable capability so a real implementation can replace the default
// without touching roster or ingestion logic.
type Verifier interface {
	Verify(ctx context.Context, email, password string) error
}

// AcceptAll accepts any credentials. This is the default and deliberately
// ignores the password: signup and login have identical effect and no
// uniqueness check is performed.
type AcceptAll struct{}

// Verify always succeeds.
func (AcceptAll) Verify(_ context.Context, _, _ string) error {
	return nil
}

// PasswordVerifier checks a password against a static set of bcrypt hashes
// keyed by email. It is the substitutable real implementation of Verifier.
type PasswordVerifier struct {
	cfg    *config.PasswordConfig
	hashes map[string]string
}

// NewPasswordVerifier creates a verifier over the given email-to-hash set.
func NewPasswordVerifier(cfg *config.PasswordConfig, hashes map[string]string) *PasswordVerifier {
	return &PasswordVerifier{cfg: cfg, hashes: hashes}
}

// Verify returns ErrInvalidCredentials unless a hash is registered for the
// email and the password matches it. Unknown email and wrong password are
// indistinguishable to the caller.
func (v *PasswordVerifier) Verify(_ context.Context, email, password string) error {
	hash, ok := v.hashes[email]
	if !ok || !v.cfg.VerifyPassword(password, hash) {
		return &ErrInvalidCredentials{}
	}
	return nil
}
