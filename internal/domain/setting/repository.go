package setting

import "context"

type Repository interface {
	// GetByKey returns nil, nil when the setting is absent.
	GetByKey(ctx context.Context, category, key string) (*SystemSetting, error)
	GetByCategory(ctx context.Context, category string) ([]*SystemSetting, error)
	Upsert(ctx context.Context, setting *SystemSetting) error
}
