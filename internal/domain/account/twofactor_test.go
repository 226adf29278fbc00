package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionTwoFactorSecret(t *testing.T) {
	a := newTestAccount(t)

	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	require.NotNil(t, a.TwoFactorSecret())
	assert.Equal(t, "SECRET1", *a.TwoFactorSecret())
	assert.False(t, a.TwoFactorEnabled(), "a provisioned secret carries no weight until confirmed")
}

func TestProvisionTwoFactorSecret_ReplacesPending(t *testing.T) {
	a := newTestAccount(t)

	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET2"))
	assert.Equal(t, "SECRET2", *a.TwoFactorSecret())
	assert.False(t, a.TwoFactorEnabled())
}

func TestProvisionTwoFactorSecret_AlreadyEnabled(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	require.NoError(t, a.ConfirmTwoFactor())

	err := a.ProvisionTwoFactorSecret("SECRET2")
	assert.ErrorIs(t, err, ErrTwoFactorAlreadyEnabled)
	assert.Equal(t, "SECRET1", *a.TwoFactorSecret())
}

func TestConfirmTwoFactor(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))

	require.NoError(t, a.ConfirmTwoFactor())
	assert.True(t, a.TwoFactorEnabled())
	assert.Equal(t, "SECRET1", *a.TwoFactorSecret(), "the confirmed secret stays in place")
}

func TestConfirmTwoFactor_NotProvisioned(t *testing.T) {
	a := newTestAccount(t)
	err := a.ConfirmTwoFactor()
	assert.ErrorIs(t, err, ErrTwoFactorNotProvisioned)
	assert.False(t, a.TwoFactorEnabled())
}

func TestConfirmTwoFactor_AlreadyEnabled(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	require.NoError(t, a.ConfirmTwoFactor())

	err := a.ConfirmTwoFactor()
	assert.ErrorIs(t, err, ErrTwoFactorAlreadyEnabled)
}

func TestDisableTwoFactor(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	require.NoError(t, a.ConfirmTwoFactor())

	require.NoError(t, a.DisableTwoFactor())
	assert.False(t, a.TwoFactorEnabled())
	assert.Nil(t, a.TwoFactorSecret(), "the secret is discarded on disable")
}

func TestDisableTwoFactor_NotEnabled(t *testing.T) {
	a := newTestAccount(t)
	err := a.DisableTwoFactor()
	assert.ErrorIs(t, err, ErrTwoFactorNotEnabled)

	// Provisioned but never confirmed still counts as not enabled.
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	err = a.DisableTwoFactor()
	assert.ErrorIs(t, err, ErrTwoFactorNotEnabled)
	assert.NotNil(t, a.TwoFactorSecret())
}

func TestTwoFactor_FullLifecycle(t *testing.T) {
	a := newTestAccount(t)

	// provision -> confirm -> disable -> provision again
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET1"))
	require.NoError(t, a.ConfirmTwoFactor())
	require.NoError(t, a.DisableTwoFactor())
	require.NoError(t, a.ProvisionTwoFactorSecret("SECRET2"))
	require.NoError(t, a.ConfirmTwoFactor())
	assert.True(t, a.TwoFactorEnabled())
	assert.Equal(t, "SECRET2", *a.TwoFactorSecret())
}
