package mappers

import (
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
)

// SystemSettingMapper provides methods for converting between domain and model
type SystemSettingMapper interface {
	ToDomain(model *models.SystemSettingModel) *setting.SystemSetting
	ToModel(domain *setting.SystemSetting) *models.SystemSettingModel
	ToDomainList(modelList []*models.SystemSettingModel) []*setting.SystemSetting
}

// SystemSettingMapperImpl implements SystemSettingMapper
type SystemSettingMapperImpl struct{}

// NewSystemSettingMapper creates a new SystemSettingMapper
func NewSystemSettingMapper() SystemSettingMapper {
	return &SystemSettingMapperImpl{}
}

func (m *SystemSettingMapperImpl) ToDomain(model *models.SystemSettingModel) *setting.SystemSetting {
	if model == nil {
		return nil
	}

	return setting.ReconstructSystemSetting(
		model.Category,
		model.SettingKey,
		model.Value,
		setting.ValueType(model.ValueType),
		model.Version,
		model.UpdatedAt,
	)
}

func (m *SystemSettingMapperImpl) ToModel(domain *setting.SystemSetting) *models.SystemSettingModel {
	if domain == nil {
		return nil
	}

	return &models.SystemSettingModel{
		Category:   domain.Category(),
		SettingKey: domain.Key(),
		Value:      domain.Value(),
		ValueType:  string(domain.ValueType()),
		Version:    domain.Version(),
		UpdatedAt:  domain.UpdatedAt(),
	}
}

func (m *SystemSettingMapperImpl) ToDomainList(modelList []*models.SystemSettingModel) []*setting.SystemSetting {
	result := make([]*setting.SystemSetting, 0, len(modelList))
	for _, model := range modelList {
		if s := m.ToDomain(model); s != nil {
			result = append(result, s)
		}
	}
	return result
}
