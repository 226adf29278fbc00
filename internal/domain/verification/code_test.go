package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	code, err := NewCode(1, KindEmailVerification, "", 15*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, code)

	assert.Equal(t, uint(1), code.AccountID())
	assert.Equal(t, KindEmailVerification, code.Kind())
	assert.Len(t, code.Value(), 6)
	assert.Regexp(t, `^\d{6}$`, code.Value())
	assert.Empty(t, code.Metadata())
	assert.False(t, code.IsExpired())
}

func TestNewCode_WithMetadata(t *testing.T) {
	code, err := NewCode(1, KindEmailChange, "new@example.edu", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "new@example.edu", code.Metadata())
}

func TestNewCode_Invalid(t *testing.T) {
	_, err := NewCode(0, KindEmailVerification, "", time.Minute)
	assert.Error(t, err)

	_, err = NewCode(1, Kind("made_up"), "", time.Minute)
	assert.Error(t, err)
}

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindEmailVerification.IsValid())
	assert.True(t, KindPasswordReset.IsValid())
	assert.True(t, KindEmailChange.IsValid())
	assert.False(t, Kind("").IsValid())
	assert.False(t, Kind("other").IsValid())
}

func TestCode_IsExpired(t *testing.T) {
	live, err := NewCode(1, KindEmailVerification, "", time.Hour)
	require.NoError(t, err)
	assert.False(t, live.IsExpired())

	expired, err := NewCode(1, KindEmailVerification, "", -time.Minute)
	require.NoError(t, err)
	assert.True(t, expired.IsExpired())
}

func TestCode_Matches(t *testing.T) {
	code, err := NewCode(1, KindEmailVerification, "", time.Hour)
	require.NoError(t, err)

	assert.True(t, code.Matches(code.Value()))

	wrong := "000000"
	if code.Value() == wrong {
		wrong = "000001"
	}
	assert.False(t, code.Matches(wrong))
	assert.False(t, code.Matches(""), "an empty submission never matches")
}

func TestCode_InCooldown(t *testing.T) {
	code, err := NewCode(1, KindEmailVerification, "", time.Hour)
	require.NoError(t, err)

	assert.True(t, code.InCooldown(5*time.Minute), "just issued")
	assert.False(t, code.InCooldown(0))
}

func TestReconstructCode(t *testing.T) {
	now := time.Now().UTC()
	code := ReconstructCode(7, 3, KindPasswordReset, "123456", "meta", now.Add(time.Hour), now, now)

	assert.Equal(t, uint(7), code.ID())
	assert.Equal(t, uint(3), code.AccountID())
	assert.Equal(t, KindPasswordReset, code.Kind())
	assert.Equal(t, "123456", code.Value())
	assert.Equal(t, "meta", code.Metadata())
	assert.False(t, code.IsExpired())
}
