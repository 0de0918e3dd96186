package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/mappers"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/db"
	"github.com/civictrack/civictrack/internal/shared/errors"
)

// AccountRepository implements user.Repository
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(gdb *gorm.DB) *AccountRepository {
	return &AccountRepository{db: gdb}
}

// Create returns user.ErrEmailTaken, wrapped around the driver error, when
// the email is already registered.
func (r *AccountRepository) Create(ctx context.Context, a *user.Account) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.AccountToModel(a)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return fmt.Errorf("%w: %v", user.ErrEmailTaken, err)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a *user.Account) error {
	model := mappers.AccountToModel(a)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"display_name": model.DisplayName,
			"role":         model.Role,
			"status":       model.Status,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *AccountRepository) findOne(ctx context.Context, cond string, arg any) (*user.Account, error) {
	var model models.AccountModel
	err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return mappers.AccountToDomain(&model)
}
