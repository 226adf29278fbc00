package account

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/shared/authorization"
)

// =============================================================================
// Test helpers
// =============================================================================

// mockShortIDGenerator generates a predictable short ID for testing.
func mockShortIDGenerator() ShortIDGenerator {
	counter := 0
	return func() (string, error) {
		counter++
		return fmt.Sprintf("acct_test_%d", counter), nil
	}
}

// failingShortIDGenerator returns a generator that always fails.
func failingShortIDGenerator() ShortIDGenerator {
	return func() (string, error) {
		return "", fmt.Errorf("short ID generation failed")
	}
}

// validEmail creates a valid Email value object for testing.
func validEmail(t *testing.T) *vo.Email {
	t.Helper()
	email, err := vo.NewEmail("student@example.edu")
	require.NoError(t, err)
	return email
}

// validEmailWithAddr creates a valid Email value object with a specific address.
func validEmailWithAddr(t *testing.T, addr string) *vo.Email {
	t.Helper()
	email, err := vo.NewEmail(addr)
	require.NoError(t, err)
	return email
}

// validPassword creates a valid Password value object for testing.
func validPassword(t *testing.T, pw string) *vo.Password {
	t.Helper()
	password, err := vo.NewPassword(pw)
	require.NoError(t, err)
	return password
}

// newTestAccount creates a new account with valid defaults for testing.
func newTestAccount(t *testing.T) *Account {
	t.Helper()
	a, err := NewAccount(validEmail(t), mockShortIDGenerator())
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

// reconstructTestAccount rebuilds a persisted account with the given auth data.
func reconstructTestAccount(t *testing.T, authData *AuthData) *Account {
	t.Helper()
	now := time.Now().UTC()
	a, err := ReconstructAccount(
		1, "acct_abc123",
		validEmail(t),
		authorization.RoleStudent,
		now, now, 1,
		authData,
	)
	require.NoError(t, err)
	return a
}

// mockPasswordHasher is a simple password hasher for testing.
type mockPasswordHasher struct {
	hashPrefix string
}

func (h *mockPasswordHasher) Hash(password string) (string, error) {
	return h.hashPrefix + ":" + password, nil
}

func (h *mockPasswordHasher) Verify(password, hash string) bool {
	return h.hashPrefix+":"+password == hash
}

// failingPasswordHasher always fails hashing.
type failingPasswordHasher struct{}

func (h *failingPasswordHasher) Hash(_ string) (string, error) {
	return "", fmt.Errorf("hash failure")
}

func (h *failingPasswordHasher) Verify(_, _ string) bool {
	return false
}

// =============================================================================
// NewAccount
// =============================================================================

func TestNewAccount_Success(t *testing.T) {
	email := validEmail(t)
	a, err := NewAccount(email, mockShortIDGenerator())

	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, uint(0), a.ID())
	assert.Equal(t, "acct_test_1", a.SID())
	assert.True(t, a.Email().Equals(email))
	assert.Nil(t, a.PendingEmail())
	assert.Equal(t, authorization.RoleGuest, a.Role())
	assert.Equal(t, 0, a.TokenVersion())
	assert.False(t, a.IsEmailVerified())
	assert.False(t, a.TwoFactorEnabled())
	assert.False(t, a.HasPassword())
	assert.Equal(t, 1, a.Version())
	assert.False(t, a.CreatedAt().IsZero())
}

func TestNewAccount_NilEmail(t *testing.T) {
	a, err := NewAccount(nil, mockShortIDGenerator())
	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestNewAccount_NilGenerator(t *testing.T) {
	a, err := NewAccount(validEmail(t), nil)
	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestNewAccount_GeneratorFailure(t *testing.T) {
	a, err := NewAccount(validEmail(t), failingShortIDGenerator())
	assert.Error(t, err)
	assert.Nil(t, a)
}

// =============================================================================
// ReconstructAccount
// =============================================================================

func TestReconstructAccount_Success(t *testing.T) {
	hash := "hashed"
	secret := "JBSWY3DPEHPK3PXP"
	a := reconstructTestAccount(t, &AuthData{
		PasswordHash:     &hash,
		EmailVerified:    true,
		TokenVersion:     3,
		TwoFactorSecret:  &secret,
		TwoFactorEnabled: true,
	})

	assert.Equal(t, uint(1), a.ID())
	assert.Equal(t, "acct_abc123", a.SID())
	assert.True(t, a.HasPassword())
	assert.True(t, a.IsEmailVerified())
	assert.Equal(t, 3, a.TokenVersion())
	assert.True(t, a.TwoFactorEnabled())
	require.NotNil(t, a.TwoFactorSecret())
	assert.Equal(t, secret, *a.TwoFactorSecret())
}

func TestReconstructAccount_NilAuthData(t *testing.T) {
	a := reconstructTestAccount(t, nil)

	assert.False(t, a.HasPassword())
	assert.False(t, a.IsEmailVerified())
	assert.Equal(t, 0, a.TokenVersion())
	assert.False(t, a.TwoFactorEnabled())
}

func TestReconstructAccount_InvalidInputs(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructAccount(0, "acct_x", validEmail(t), authorization.RoleStudent, now, now, 1, nil)
	assert.Error(t, err)

	_, err = ReconstructAccount(1, "", validEmail(t), authorization.RoleStudent, now, now, 1, nil)
	assert.Error(t, err)

	_, err = ReconstructAccount(1, "acct_x", nil, authorization.RoleStudent, now, now, 1, nil)
	assert.Error(t, err)
}

func TestGetAuthData_RoundTrip(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.SetPassword(validPassword(t, "password1"), &mockPasswordHasher{hashPrefix: "h"}))
	a.MarkEmailVerified()
	a.BumpTokenVersion()

	data := a.GetAuthData()
	require.NotNil(t, data)
	assert.NotNil(t, data.PasswordHash)
	assert.True(t, data.EmailVerified)
	assert.Equal(t, 1, data.TokenVersion)
}

// =============================================================================
// SetID / AssignRole
// =============================================================================

func TestSetID(t *testing.T) {
	a := newTestAccount(t)

	require.NoError(t, a.SetID(42))
	assert.Equal(t, uint(42), a.ID())

	assert.Error(t, a.SetID(43), "ID can only be set once")

	b := newTestAccount(t)
	assert.Error(t, b.SetID(0))
}

func TestAssignRole(t *testing.T) {
	a := newTestAccount(t)
	v := a.Version()

	require.NoError(t, a.AssignRole(authorization.RoleStudent))
	assert.Equal(t, authorization.RoleStudent, a.Role())
	assert.Equal(t, v+1, a.Version())

	// Assigning the same role again is a no-op.
	require.NoError(t, a.AssignRole(authorization.RoleStudent))
	assert.Equal(t, v+1, a.Version())

	assert.Error(t, a.AssignRole(authorization.Role("superuser")))
	assert.Equal(t, authorization.RoleStudent, a.Role())
}

// =============================================================================
// Token version
// =============================================================================

func TestBumpTokenVersion_Monotonic(t *testing.T) {
	a := newTestAccount(t)
	assert.Equal(t, 0, a.TokenVersion())

	a.BumpTokenVersion()
	assert.Equal(t, 1, a.TokenVersion())

	a.BumpTokenVersion()
	a.BumpTokenVersion()
	assert.Equal(t, 3, a.TokenVersion())
}

// =============================================================================
// Email verification and email change
// =============================================================================

func TestMarkEmailVerified_Idempotent(t *testing.T) {
	a := newTestAccount(t)
	require.False(t, a.IsEmailVerified())

	a.MarkEmailVerified()
	assert.True(t, a.IsEmailVerified())
	v := a.Version()

	a.MarkEmailVerified()
	assert.True(t, a.IsEmailVerified())
	assert.Equal(t, v, a.Version(), "re-verifying must not touch the aggregate")
}

func TestRequestEmailChange(t *testing.T) {
	a := newTestAccount(t)
	newEmail := validEmailWithAddr(t, "new@example.edu")

	require.NoError(t, a.RequestEmailChange(newEmail))
	assert.True(t, a.PendingEmail().Equals(newEmail))
	assert.True(t, a.Email().Equals(validEmail(t)), "current address must not change yet")
}

func TestRequestEmailChange_SameAddress(t *testing.T) {
	a := newTestAccount(t)
	assert.Error(t, a.RequestEmailChange(validEmail(t)))
	assert.Nil(t, a.PendingEmail())
}

func TestRequestEmailChange_NilEmail(t *testing.T) {
	a := newTestAccount(t)
	assert.Error(t, a.RequestEmailChange(nil))
}

func TestConfirmEmailChange(t *testing.T) {
	a := newTestAccount(t)
	newEmail := validEmailWithAddr(t, "new@example.edu")
	require.NoError(t, a.RequestEmailChange(newEmail))

	versionBefore := a.TokenVersion()
	require.NoError(t, a.ConfirmEmailChange())

	assert.True(t, a.Email().Equals(newEmail))
	assert.Nil(t, a.PendingEmail())
	assert.True(t, a.IsEmailVerified(), "code consumption proves control of the new mailbox")
	assert.Equal(t, versionBefore+1, a.TokenVersion(), "the swap must revoke outstanding tokens")
}

func TestConfirmEmailChange_NoPending(t *testing.T) {
	a := newTestAccount(t)
	err := a.ConfirmEmailChange()
	assert.ErrorIs(t, err, ErrNoPendingEmail)
}

// =============================================================================
// DisplayInfo
// =============================================================================

func TestGetDisplayInfo(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.AssignRole(authorization.RoleStudent))
	a.MarkEmailVerified()

	info := a.GetDisplayInfo()
	assert.Equal(t, a.SID(), info.SID)
	assert.Equal(t, "student@example.edu", info.Email)
	assert.Equal(t, "student", info.Role)
	assert.True(t, info.EmailVerified)
	assert.False(t, info.TwoFactorEnabled)
	assert.Equal(t, a.CreatedAt(), info.CreatedAt)
}
