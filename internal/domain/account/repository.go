package account

import (
	"context"

	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
)

// Repository defines the persistence contract for account aggregates.
type Repository interface {
	// Create persists a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by internal ID
	GetByID(ctx context.Context, id uint) (*Account, error)

	// GetBySID retrieves an account by external identifier
	GetBySID(ctx context.Context, sid string) (*Account, error)

	// GetByEmail retrieves an account by email address
	GetByEmail(ctx context.Context, email *vo.Email) (*Account, error)

	// GetByPasswordResetToken retrieves an account by the hash of an
	// outstanding password reset token
	GetByPasswordResetToken(ctx context.Context, tokenHash string) (*Account, error)

	// ExistsByEmail checks whether an account exists with the given email
	ExistsByEmail(ctx context.Context, email *vo.Email) (bool, error)

	// Update persists changes to an existing account
	Update(ctx context.Context, account *Account) error
}
