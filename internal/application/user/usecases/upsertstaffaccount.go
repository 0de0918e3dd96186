package usecases

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

type UpsertStaffAccountCommand struct {
	Email       string
	DisplayName string
	Role        authorization.UserRole
	Active      bool
}

type UpsertStaffAccountResult struct {
	Account *user.Account
	Created bool
}

// UpsertStaffAccountUseCase provisions staff accounts from a seed file. An
// existing account with the same email is promoted in place.
type UpsertStaffAccountUseCase struct {
	accounts user.Repository
	now      func() time.Time
	logger   logger.Interface
}

func NewUpsertStaffAccountUseCase(accounts user.Repository, now func() time.Time, logger logger.Interface) *UpsertStaffAccountUseCase {
	return &UpsertStaffAccountUseCase{
		accounts: accounts,
		now:      now,
		logger:   logger,
	}
}

func (uc *UpsertStaffAccountUseCase) Execute(ctx context.Context, cmd UpsertStaffAccountCommand) (*UpsertStaffAccountResult, error) {
	if !cmd.Role.IsStaff() {
		return nil, errors.NewValidationError("seeded accounts must have a staff role")
	}
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	now := uc.now()
	existing, err := uc.accounts.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to look up account by email", "error", err)
		return nil, errors.NewInternalError("failed to load account")
	}

	if existing == nil {
		account, err := user.NewAccount(email, cmd.DisplayName, cmd.Role, now)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if !cmd.Active {
			account.Deactivate(now)
		}
		if err := uc.accounts.Create(ctx, account); err != nil {
			uc.logger.Errorw("failed to create staff account", "email", utils.MaskEmail(email.String()), "error", err)
			return nil, errors.NewInternalError("failed to create account")
		}
		uc.logger.Infow("staff account created", "account_id", account.ID(), "role", cmd.Role)
		return &UpsertStaffAccountResult{Account: account, Created: true}, nil
	}

	if err := existing.ChangeRole(cmd.Role, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.DisplayName != "" {
		existing.Rename(cmd.DisplayName, now)
	}
	if cmd.Active {
		existing.Activate(now)
	} else {
		existing.Deactivate(now)
	}
	if err := uc.accounts.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update staff account", "account_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update account")
	}

	uc.logger.Infow("staff account updated", "account_id", existing.ID(), "role", cmd.Role)
	return &UpsertStaffAccountResult{Account: existing}, nil
}
