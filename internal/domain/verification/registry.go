package verification

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrResendCooldown is returned when a code is requested again before
	// the cooldown window since the last dispatch has passed.
	ErrResendCooldown = errors.New("a code was sent recently, wait before requesting another")

	// ErrCodeInvalid is returned when the presented code does not match,
	// has expired, or was never issued. Callers must not distinguish
	// between those cases.
	ErrCodeInvalid = errors.New("verification code is invalid or expired")
)

// Registry coordinates the lifecycle of verification codes on top of the
// repository: one live code per (account, kind), cooldown between sends,
// deletion on consumption.
type Registry struct {
	repo     Repository
	ttl      time.Duration
	cooldown time.Duration
}

// NewRegistry creates a registry issuing codes with the given TTL and
// enforcing the given resend cooldown.
func NewRegistry(repo Repository, ttl, cooldown time.Duration) *Registry {
	return &Registry{
		repo:     repo,
		ttl:      ttl,
		cooldown: cooldown,
	}
}

// Issue mints a new code for the account and kind, superseding any
// outstanding one. If the previous code was dispatched within the cooldown
// window, ErrResendCooldown is returned and the existing code stays live.
func (r *Registry) Issue(ctx context.Context, accountID uint, kind Kind, metadata string) (*Code, error) {
	existing, err := r.repo.GetByAccountAndKind(ctx, accountID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing code: %w", err)
	}

	if existing != nil && existing.InCooldown(r.cooldown) {
		return nil, ErrResendCooldown
	}

	if existing != nil {
		if err := r.repo.DeleteByAccountAndKind(ctx, accountID, kind); err != nil {
			return nil, fmt.Errorf("failed to supersede existing code: %w", err)
		}
	}

	code, err := NewCode(accountID, kind, metadata, r.ttl)
	if err != nil {
		return nil, err
	}

	if err := r.repo.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	return code, nil
}

// Consume validates the presented digits for the account and kind. On
// success the code is deleted before its metadata is returned, so it can
// never be accepted twice. Missing, expired and mismatched codes all
// produce the same ErrCodeInvalid.
func (r *Registry) Consume(ctx context.Context, accountID uint, kind Kind, presented string) (string, error) {
	code, err := r.repo.GetByAccountAndKind(ctx, accountID, kind)
	if err != nil {
		return "", fmt.Errorf("failed to look up code: %w", err)
	}

	if code == nil || code.IsExpired() || !code.Matches(presented) {
		return "", ErrCodeInvalid
	}

	if err := r.repo.DeleteByAccountAndKind(ctx, accountID, kind); err != nil {
		return "", fmt.Errorf("failed to consume code: %w", err)
	}

	return code.Metadata(), nil
}

// Revoke discards any outstanding code for the account and kind.
func (r *Registry) Revoke(ctx context.Context, accountID uint, kind Kind) error {
	return r.repo.DeleteByAccountAndKind(ctx, accountID, kind)
}
