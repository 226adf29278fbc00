package verification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCodeRepository struct {
	CreateFunc                 func(ctx context.Context, code *Code) error
	GetByAccountAndKindFunc    func(ctx context.Context, accountID uint, kind Kind) (*Code, error)
	DeleteByAccountAndKindFunc func(ctx context.Context, accountID uint, kind Kind) error
	DeleteByAccountIDFunc      func(ctx context.Context, accountID uint) error
}

func (m *mockCodeRepository) Create(ctx context.Context, code *Code) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

func (m *mockCodeRepository) GetByAccountAndKind(ctx context.Context, accountID uint, kind Kind) (*Code, error) {
	if m.GetByAccountAndKindFunc != nil {
		return m.GetByAccountAndKindFunc(ctx, accountID, kind)
	}
	return nil, nil
}

func (m *mockCodeRepository) DeleteByAccountAndKind(ctx context.Context, accountID uint, kind Kind) error {
	if m.DeleteByAccountAndKindFunc != nil {
		return m.DeleteByAccountAndKindFunc(ctx, accountID, kind)
	}
	return nil
}

func (m *mockCodeRepository) DeleteByAccountID(ctx context.Context, accountID uint) error {
	if m.DeleteByAccountIDFunc != nil {
		return m.DeleteByAccountIDFunc(ctx, accountID)
	}
	return nil
}

func TestRegistry_Issue_FirstCode(t *testing.T) {
	var created *Code
	repo := &mockCodeRepository{
		CreateFunc: func(ctx context.Context, code *Code) error {
			created = code
			return nil
		},
	}
	registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

	code, err := registry.Issue(context.Background(), 1, KindEmailVerification, "")
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Same(t, code, created)
	assert.Len(t, code.Value(), 6)
}

func TestRegistry_Issue_Cooldown(t *testing.T) {
	existing, err := NewCode(1, KindEmailVerification, "", 15*time.Minute)
	require.NoError(t, err)

	deleted := false
	repo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) (*Code, error) {
			return existing, nil
		},
		DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) error {
			deleted = true
			return nil
		},
	}
	registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

	code, err := registry.Issue(context.Background(), 1, KindEmailVerification, "")
	assert.ErrorIs(t, err, ErrResendCooldown)
	assert.Nil(t, code)
	assert.False(t, deleted, "the existing code must stay live")
}

func TestRegistry_Issue_SupersedesAfterCooldown(t *testing.T) {
	old := ReconstructCode(1, 1, KindEmailVerification, "111111", "",
		time.Now().UTC().Add(5*time.Minute),
		time.Now().UTC().Add(-10*time.Minute),
		time.Now().UTC().Add(-10*time.Minute))

	deleted := false
	var created *Code
	repo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) (*Code, error) {
			return old, nil
		},
		DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) error {
			deleted = true
			return nil
		},
		CreateFunc: func(ctx context.Context, code *Code) error {
			created = code
			return nil
		},
	}
	registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

	code, err := registry.Issue(context.Background(), 1, KindEmailVerification, "")
	require.NoError(t, err)
	assert.True(t, deleted, "the old code is superseded")
	assert.Same(t, code, created)
}

func TestRegistry_Issue_RepoError(t *testing.T) {
	repo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) (*Code, error) {
			return nil, fmt.Errorf("db down")
		},
	}
	registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

	_, err := registry.Issue(context.Background(), 1, KindEmailVerification, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrResendCooldown)
}

func TestRegistry_Consume_Success(t *testing.T) {
	code, err := NewCode(1, KindEmailChange, "new@example.edu", 15*time.Minute)
	require.NoError(t, err)

	deleted := false
	repo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) (*Code, error) {
			return code, nil
		},
		DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) error {
			deleted = true
			return nil
		},
	}
	registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

	metadata, err := registry.Consume(context.Background(), 1, KindEmailChange, code.Value())
	require.NoError(t, err)
	assert.Equal(t, "new@example.edu", metadata)
	assert.True(t, deleted, "consumption deletes the code")
}

func TestRegistry_Consume_UniformFailure(t *testing.T) {
	live, err := NewCode(1, KindEmailVerification, "", 15*time.Minute)
	require.NoError(t, err)
	expired, err := NewCode(1, KindEmailVerification, "", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name      string
		stored    *Code
		presented string
	}{
		{"no code on record", nil, "123456"},
		{"expired code", expired, expired.Value()},
		{"wrong digits", live, "000000"},
		{"empty submission", live, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			repo := &mockCodeRepository{
				GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) (*Code, error) {
					return tt.stored, nil
				},
				DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) error {
					deleted = true
					return nil
				},
			}
			registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

			_, err := registry.Consume(context.Background(), 1, KindEmailVerification, tt.presented)
			assert.ErrorIs(t, err, ErrCodeInvalid, "every failure mode reads the same")
			assert.False(t, deleted, "a failed attempt must not burn the code")
		})
	}
}

func TestRegistry_Revoke(t *testing.T) {
	var revokedKind Kind
	repo := &mockCodeRepository{
		DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind Kind) error {
			revokedKind = kind
			return nil
		},
	}
	registry := NewRegistry(repo, 15*time.Minute, 5*time.Minute)

	require.NoError(t, registry.Revoke(context.Background(), 1, KindPasswordReset))
	assert.Equal(t, KindPasswordReset, revokedKind)
}
