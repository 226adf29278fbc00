package verification

import "context"

// Repository defines the persistence contract for verification codes.
type Repository interface {
	// Create persists a new code
	Create(ctx context.Context, code *Code) error

	// GetByAccountAndKind retrieves the live code for an account and kind
	GetByAccountAndKind(ctx context.Context, accountID uint, kind Kind) (*Code, error)

	// DeleteByAccountAndKind removes any code for an account and kind
	DeleteByAccountAndKind(ctx context.Context, accountID uint, kind Kind) error

	// DeleteByAccountID removes every code belonging to an account
	DeleteByAccountID(ctx context.Context, accountID uint) error
}
