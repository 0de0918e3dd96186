package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/id"
)

const MaxDisplayNameLength = 100

// Account is an identity that can report incidents or act as staff.
// Guest accounts exist only to attribute anonymous reports to an email.
type Account struct {
	id          string
	email       vo.Email
	displayName string
	role        authorization.UserRole
	status      vo.Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewAccount(email vo.Email, displayName string, role authorization.UserRole, now time.Time) (*Account, error) {
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > MaxDisplayNameLength {
		return nil, fmt.Errorf("display name exceeds maximum length of %d characters", MaxDisplayNameLength)
	}

	accountID, err := id.NewAccountID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account ID: %w", err)
	}

	return &Account{
		id:          accountID,
		email:       email,
		displayName: displayName,
		role:        role,
		status:      vo.StatusActive,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewGuestAccount creates the identity behind an unauthenticated report.
func NewGuestAccount(email vo.Email, displayName string, now time.Time) (*Account, error) {
	return NewAccount(email, displayName, authorization.RoleGuest, now)
}

func ReconstructAccount(accountID string, email vo.Email, displayName string, role authorization.UserRole, status vo.Status, createdAt, updatedAt time.Time) *Account {
	return &Account{
		id:          accountID,
		email:       email,
		displayName: displayName,
		role:        role,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Account) ID() string {
	return a.id
}

func (a *Account) Email() vo.Email {
	return a.email
}

func (a *Account) DisplayName() string {
	return a.displayName
}

func (a *Account) Role() authorization.UserRole {
	return a.role
}

func (a *Account) Status() vo.Status {
	return a.status
}

func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Account) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Account) IsGuest() bool {
	return a.role == authorization.RoleGuest
}

func (a *Account) IsStaff() bool {
	return a.role.IsStaff()
}

// CanPerformActions is true for active accounts.
func (a *Account) CanPerformActions() bool {
	return a.status.CanPerformActions()
}

// CanBeAssigned is true for active staff.
func (a *Account) CanBeAssigned() bool {
	return a.IsStaff() && a.CanPerformActions()
}

func (a *Account) Deactivate(at time.Time) {
	a.status = vo.StatusInactive
	a.updatedAt = at
}

func (a *Account) Activate(at time.Time) {
	a.status = vo.StatusActive
	a.updatedAt = at
}

// ChangeRole is used by seeding to promote an existing account.
func (a *Account) ChangeRole(role authorization.UserRole, at time.Time) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	a.role = role
	a.updatedAt = at
	return nil
}

func (a *Account) Rename(displayName string, at time.Time) {
	a.displayName = strings.TrimSpace(displayName)
	a.updatedAt = at
}
