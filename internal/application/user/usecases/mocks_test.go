package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/domain/user"
)

type mockAccountRepository struct {
	CreateFunc     func(ctx context.Context, a *user.Account) error
	UpdateFunc     func(ctx context.Context, a *user.Account) error
	GetByIDFunc    func(ctx context.Context, id string) (*user.Account, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.Account, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, a *user.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockAccountRepository) Update(ctx context.Context, a *user.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}
