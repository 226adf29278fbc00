package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/shared/authorization"
)

// =============================================================================
// Repository mocks
// =============================================================================

type mockAccountRepository struct {
	CreateFunc                  func(ctx context.Context, a *account.Account) error
	GetByIDFunc                 func(ctx context.Context, id uint) (*account.Account, error)
	GetBySIDFunc                func(ctx context.Context, sid string) (*account.Account, error)
	GetByEmailFunc              func(ctx context.Context, email *vo.Email) (*account.Account, error)
	GetByPasswordResetTokenFunc func(ctx context.Context, tokenHash string) (*account.Account, error)
	ExistsByEmailFunc           func(ctx context.Context, email *vo.Email) (bool, error)
	UpdateFunc                  func(ctx context.Context, a *account.Account) error
}

func (m *mockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id uint) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) GetBySID(ctx context.Context, sid string) (*account.Account, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email *vo.Email) (*account.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepository) GetByPasswordResetToken(ctx context.Context, tokenHash string) (*account.Account, error) {
	if m.GetByPasswordResetTokenFunc != nil {
		return m.GetByPasswordResetTokenFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockAccountRepository) ExistsByEmail(ctx context.Context, email *vo.Email) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

type mockSessionRepository struct {
	CreateFunc            func(ctx context.Context, s *session.Session) error
	GetByIDFunc           func(ctx context.Context, id string) (*session.Session, error)
	GetByAccountIDFunc    func(ctx context.Context, accountID uint) ([]*session.Session, error)
	FindByFingerprintFunc func(ctx context.Context, accountID uint, ipAddress, userAgent string) (*session.Session, error)
	UpdateFunc            func(ctx context.Context, s *session.Session) error
	DeleteFunc            func(ctx context.Context, id string, accountID uint) error
	DeleteByAccountIDFunc func(ctx context.Context, accountID uint) error
}

func (m *mockSessionRepository) Create(ctx context.Context, s *session.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByAccountID(ctx context.Context, accountID uint) ([]*session.Session, error) {
	if m.GetByAccountIDFunc != nil {
		return m.GetByAccountIDFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *mockSessionRepository) FindByFingerprint(ctx context.Context, accountID uint, ipAddress, userAgent string) (*session.Session, error) {
	if m.FindByFingerprintFunc != nil {
		return m.FindByFingerprintFunc(ctx, accountID, ipAddress, userAgent)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string, accountID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, accountID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByAccountID(ctx context.Context, accountID uint) error {
	if m.DeleteByAccountIDFunc != nil {
		return m.DeleteByAccountIDFunc(ctx, accountID)
	}
	return nil
}

type mockCodeRepository struct {
	CreateFunc                 func(ctx context.Context, code *verification.Code) error
	GetByAccountAndKindFunc    func(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error)
	DeleteByAccountAndKindFunc func(ctx context.Context, accountID uint, kind verification.Kind) error
	DeleteByAccountIDFunc      func(ctx context.Context, accountID uint) error
}

func (m *mockCodeRepository) Create(ctx context.Context, code *verification.Code) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

func (m *mockCodeRepository) GetByAccountAndKind(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error) {
	if m.GetByAccountAndKindFunc != nil {
		return m.GetByAccountAndKindFunc(ctx, accountID, kind)
	}
	return nil, nil
}

func (m *mockCodeRepository) DeleteByAccountAndKind(ctx context.Context, accountID uint, kind verification.Kind) error {
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

// =============================================================================
// Service mocks
// =============================================================================

type mockTokenService struct {
	GenerateFunc      func(accountSID, sessionID string, role authorization.Role, tokenVersion int) (*TokenPair, error)
	VerifyRefreshFunc func(token string) (*TokenClaims, error)
}

func (m *mockTokenService) Generate(accountSID, sessionID string, role authorization.Role, tokenVersion int) (*TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(accountSID, sessionID, role, tokenVersion)
	}
	return &TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}, nil
}

func (m *mockTokenService) VerifyRefresh(token string) (*TokenClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return nil, fmt.Errorf("no verify func configured")
}

type mockEmailService struct {
	SendVerificationCodeFunc   func(to, code string) error
	SendPasswordResetEmailFunc func(to, token string) error
	SendPasswordChangedFunc    func(to string) error
	SendEmailChangeCodeFunc    func(to, code string) error
	SendEmailChangedNoticeFunc func(to, newEmail string) error
}

func (m *mockEmailService) SendVerificationCode(to, code string) error {
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(to, code)
	}
	return nil
}

func (m *mockEmailService) SendPasswordResetEmail(to, token string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(to, token)
	}
	return nil
}

func (m *mockEmailService) SendPasswordChangedEmail(to string) error {
	if m.SendPasswordChangedFunc != nil {
		return m.SendPasswordChangedFunc(to)
	}
	return nil
}

func (m *mockEmailService) SendEmailChangeCode(to, code string) error {
	if m.SendEmailChangeCodeFunc != nil {
		return m.SendEmailChangeCodeFunc(to, code)
	}
	return nil
}

func (m *mockEmailService) SendEmailChangedNotice(to, newEmail string) error {
	if m.SendEmailChangedNoticeFunc != nil {
		return m.SendEmailChangedNoticeFunc(to, newEmail)
	}
	return nil
}

type mockTOTPProvider struct {
	GenerateSecretFunc func(accountEmail string) (string, string, error)
	ValidateFunc       func(code, secret string) bool
}

func (m *mockTOTPProvider) GenerateSecret(accountEmail string) (secret, otpauthURL string, err error) {
	if m.GenerateSecretFunc != nil {
		return m.GenerateSecretFunc(accountEmail)
	}
	return "MOCKSECRET", "otpauth://totp/mock", nil
}

func (m *mockTOTPProvider) Validate(code, secret string) bool {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(code, secret)
	}
	return false
}

// mockPasswordHasher hashes by prefixing, so tests can assert on stored values.
type mockPasswordHasher struct{}

func (h *mockPasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *mockPasswordHasher) Verify(password, hash string) bool {
	return "hashed:"+password == hash
}

// =============================================================================
// Fixture helpers
// =============================================================================

type accountFixture struct {
	password         string
	emailVerified    bool
	tokenVersion     int
	twoFactorSecret  string
	twoFactorEnabled bool
	pendingEmail     string
	resetTokenHash   string
	resetExpiresAt   *time.Time
}

// buildAccount reconstructs a persisted student account for use-case tests.
func buildAccount(t *testing.T, email string, fx accountFixture) *account.Account {
	t.Helper()

	addr, err := vo.NewEmail(email)
	require.NoError(t, err)

	authData := &account.AuthData{
		EmailVerified: fx.emailVerified,
		TokenVersion:  fx.tokenVersion,
	}
	if fx.password != "" {
		hash := "hashed:" + fx.password
		authData.PasswordHash = &hash
	}
	if fx.twoFactorSecret != "" {
		authData.TwoFactorSecret = &fx.twoFactorSecret
		authData.TwoFactorEnabled = fx.twoFactorEnabled
	}
	if fx.pendingEmail != "" {
		pending, err := vo.NewEmail(fx.pendingEmail)
		require.NoError(t, err)
		authData.PendingEmail = pending
	}
	if fx.resetTokenHash != "" {
		authData.PasswordResetToken = &fx.resetTokenHash
		authData.PasswordResetExpiresAt = fx.resetExpiresAt
	}

	now := time.Now().UTC()
	acct, err := account.ReconstructAccount(1, "acct_test1234", addr, authorization.RoleStudent, now, now, 1, authData)
	require.NoError(t, err)
	return acct
}

// buildSession creates a live session owned by the given account ID.
func buildSession(t *testing.T, accountID uint) *session.Session {
	t.Helper()
	sess, err := session.NewSession(accountID, "203.0.113.7", "Mozilla/5.0 (X11; Linux x86_64) Firefox/121.0")
	require.NoError(t, err)
	return sess
}

// buildRegistry wires a verification registry over the given code repository
// with test-friendly windows.
func buildRegistry(repo verification.Repository) *verification.Registry {
	return verification.NewRegistry(repo, 15*time.Minute, 5*time.Minute)
}
