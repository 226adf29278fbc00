package session

import "context"

// Repository defines the persistence contract for sessions.
type Repository interface {
	// Create persists a new session
	Create(ctx context.Context, session *Session) error

	// GetByID retrieves a session by its identifier
	GetByID(ctx context.Context, id string) (*Session, error)

	// GetByAccountID lists an account's sessions, most recently used first
	GetByAccountID(ctx context.Context, accountID uint) ([]*Session, error)

	// FindByFingerprint locates an account's session matching the given
	// IP address and raw user agent string
	FindByFingerprint(ctx context.Context, accountID uint, ipAddress, userAgent string) (*Session, error)

	// Update persists changes to an existing session
	Update(ctx context.Context, session *Session) error

	// Delete removes a session, scoped to the owning account
	Delete(ctx context.Context, id string, accountID uint) error

	// DeleteByAccountID removes every session belonging to an account
	DeleteByAccountID(ctx context.Context, accountID uint) error
}
