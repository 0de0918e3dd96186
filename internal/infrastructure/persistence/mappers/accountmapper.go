package mappers

import (
	"fmt"

	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

func AccountToModel(a *user.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:          a.ID(),
		Email:       a.Email().String(),
		DisplayName: a.DisplayName(),
		Role:        a.Role().String(),
		Status:      a.Status().String(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func AccountToDomain(model *models.AccountModel) (*user.Account, error) {
	if model == nil {
		return nil, nil
	}
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", model.ID, err)
	}
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", model.ID, err)
	}
	return user.ReconstructAccount(
		model.ID,
		email,
		model.DisplayName,
		authorization.ParseUserRole(model.Role),
		status,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
