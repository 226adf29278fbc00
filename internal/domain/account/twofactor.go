package account

// Two-factor state machine: no secret -> secret provisioned -> enabled.
// A provisioned secret carries no weight at login until the holder proves
// possession of it once via ConfirmTwoFactor.

// TwoFactorEnabled reports whether the second factor is active for login.
func (a *Account) TwoFactorEnabled() bool {
	return a.twoFactorEnabled
}

// TwoFactorSecret returns the provisioned shared secret, if any.
func (a *Account) TwoFactorSecret() *string {
	return a.twoFactorSecret
}

// ProvisionTwoFactorSecret stores a freshly generated shared secret in the
// provisioned-but-inactive state. Re-provisioning before confirmation simply
// replaces the pending secret; provisioning while enabled is rejected.
func (a *Account) ProvisionTwoFactorSecret(secret string) error {
	if a.twoFactorEnabled {
		return ErrTwoFactorAlreadyEnabled
	}
	a.twoFactorSecret = &secret
	a.touch()
	return nil
}

// ConfirmTwoFactor activates the provisioned secret. The caller is
// responsible for having verified a valid code against it first.
func (a *Account) ConfirmTwoFactor() error {
	if a.twoFactorEnabled {
		return ErrTwoFactorAlreadyEnabled
	}
	if a.twoFactorSecret == nil {
		return ErrTwoFactorNotProvisioned
	}
	a.twoFactorEnabled = true
	a.touch()
	return nil
}

// DisableTwoFactor deactivates the second factor and discards the secret.
// The caller must have verified both the password and a current code.
func (a *Account) DisableTwoFactor() error {
	if !a.twoFactorEnabled {
		return ErrTwoFactorNotEnabled
	}
	a.twoFactorEnabled = false
	a.twoFactorSecret = nil
	a.touch()
	return nil
}
