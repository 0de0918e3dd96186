package usecases

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// ResolveReporterCommand identifies who is filing a report. Authenticated
// callers pass Principal; anonymous callers pass Email and optionally a name.
type ResolveReporterCommand struct {
	Principal   *authorization.Principal
	Email       string
	DisplayName string
}

// ResolveReporterUseCase maps a caller onto the account a report is filed
// under, creating a guest account for first-time anonymous reporters.
type ResolveReporterUseCase struct {
	accounts user.Repository
	now      func() time.Time
	logger   logger.Interface
}

func NewResolveReporterUseCase(accounts user.Repository, now func() time.Time, logger logger.Interface) *ResolveReporterUseCase {
	return &ResolveReporterUseCase{
		accounts: accounts,
		now:      now,
		logger:   logger,
	}
}

func (uc *ResolveReporterUseCase) Execute(ctx context.Context, cmd ResolveReporterCommand) (*user.Account, error) {
	if cmd.Principal != nil {
		return uc.resolvePrincipal(ctx, cmd.Principal)
	}
	return uc.resolveGuest(ctx, cmd.Email, cmd.DisplayName)
}

func (uc *ResolveReporterUseCase) resolvePrincipal(ctx context.Context, p *authorization.Principal) (*user.Account, error) {
	account, err := uc.accounts.GetByID(ctx, p.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to load reporter account", "account_id", p.AccountID, "error", err)
		return nil, errors.NewInternalError("failed to load account")
	}
	if account == nil {
		return nil, errors.NewUnauthorizedError("account no longer exists")
	}
	if !account.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is inactive")
	}
	return account, nil
}

func (uc *ResolveReporterUseCase) resolveGuest(ctx context.Context, rawEmail, displayName string) (*user.Account, error) {
	if strings.TrimSpace(rawEmail) == "" {
		return nil, errors.NewValidationError("email is required when reporting without signing in")
	}
	email, err := vo.NewEmail(rawEmail)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	existing, err := uc.accounts.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to look up account by email", "error", err)
		return nil, errors.NewInternalError("failed to load account")
	}
	if existing != nil {
		return uc.reuseGuest(existing)
	}

	if strings.TrimSpace(displayName) == "" {
		displayName = guestDisplayName(email)
	}
	guest, err := user.NewGuestAccount(email, displayName, uc.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.accounts.Create(ctx, guest); err != nil {
		if !errors.IsDuplicateError(err) {
			uc.logger.Errorw("failed to create guest account", "error", err)
			return nil, errors.NewInternalError("failed to create guest account")
		}
		// created concurrently by another anonymous report
		existing, getErr := uc.accounts.GetByEmail(ctx, email.String())
		if getErr != nil || existing == nil {
			return nil, errors.NewInternalError("failed to create guest account")
		}
		return uc.reuseGuest(existing)
	}

	uc.logger.Infow("guest account created", "account_id", guest.ID())
	return guest, nil
}

func (uc *ResolveReporterUseCase) reuseGuest(existing *user.Account) (*user.Account, error) {
	if !existing.IsGuest() {
		return nil, errors.NewConflictError("email belongs to a registered account, please sign in")
	}
	if !existing.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is inactive")
	}
	return existing, nil
}

// guestDisplayName turns "maria.lopez@..." into "Maria Lopez".
func guestDisplayName(email vo.Email) string {
	local := strings.NewReplacer(".", " ", "_", " ", "-", " ", "+", " ").Replace(email.LocalPart())
	return cases.Title(language.English).String(strings.Join(strings.Fields(local), " "))
}
