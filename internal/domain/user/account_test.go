package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

func TestNewGuestAccount(t *testing.T) {
	email, err := vo.NewEmail("guest@example.com")
	require.NoError(t, err)

	a, err := NewGuestAccount(email, "Guest", time.Now())
	require.NoError(t, err)

	assert.True(t, a.IsGuest())
	assert.False(t, a.IsStaff())
	assert.True(t, a.CanPerformActions())
	assert.False(t, a.CanBeAssigned())
}

func TestAccount_CanBeAssigned(t *testing.T) {
	email, _ := vo.NewEmail("crew@city.gov")
	a, err := NewAccount(email, "Crew", authorization.RoleOperator, time.Now())
	require.NoError(t, err)
	assert.True(t, a.CanBeAssigned())

	a.Deactivate(time.Now())
	assert.False(t, a.CanBeAssigned())

	a.Activate(time.Now())
	assert.True(t, a.CanBeAssigned())
}

func TestNewAccount_RejectsInvalidRole(t *testing.T) {
	email, _ := vo.NewEmail("x@city.gov")
	_, err := NewAccount(email, "", authorization.UserRole("root"), time.Now())
	assert.Error(t, err)

	_, err = NewAccount(vo.Email{}, "", authorization.RoleCitizen, time.Now())
	assert.Error(t, err)
}
