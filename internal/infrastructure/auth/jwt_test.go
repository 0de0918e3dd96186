package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/shared/authorization"
	apperrors "github.com/civictrack/civictrack/internal/shared/errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", "civictrack", func() time.Time { return now })

	token, err := svc.Generate("acc_operator", authorization.RoleOperator, time.Hour)
	require.NoError(t, err)

	p, err := svc.Principal(token)
	require.NoError(t, err)
	assert.Equal(t, "acc_operator", p.AccountID)
	assert.Equal(t, authorization.RoleOperator, p.Role)
}

func TestJWTService_Rejects(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", "civictrack", func() time.Time { return now })

	t.Run("expired", func(t *testing.T) {
		token, err := svc.Generate("acc_1", authorization.RoleCitizen, time.Minute)
		require.NoError(t, err)
		later := NewJWTService("secret", "civictrack", func() time.Time { return now.Add(time.Hour) })
		_, err = later.Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other", "civictrack", func() time.Time { return now })
		token, err := other.Generate("acc_1", authorization.RoleCitizen, time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService("secret", "someone-else", func() time.Time { return now })
		token, err := other.Generate("acc_1", authorization.RoleCitizen, time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.Error(t, err)
	})
}

func TestJWTService_PrincipalErrorTypes(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", "civictrack", func() time.Time { return now })

	token, err := svc.Generate("acc_1", authorization.RoleCitizen, time.Minute)
	require.NoError(t, err)
	later := NewJWTService("secret", "civictrack", func() time.Time { return now.Add(time.Hour) })

	_, err = later.Principal(token)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeTokenExpired, apperrors.GetAppError(err).Type)
	assert.False(t, apperrors.ShouldLogAuthError(err))

	_, err = svc.Principal("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeTokenInvalid, apperrors.GetAppError(err).Type)
	assert.True(t, apperrors.IsSecurityEvent(err))
}

func TestJWTService_UnknownRoleDegradesToCitizen(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", "civictrack", func() time.Time { return now })

	token, err := svc.Generate("acc_1", authorization.UserRole("root"), time.Hour)
	require.NoError(t, err)
	p, err := svc.Principal(token)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleCitizen, p.Role)
}
