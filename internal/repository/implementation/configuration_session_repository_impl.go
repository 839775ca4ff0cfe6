package implementation

import (
	"context"
	"errors"
	"time"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/mapper"
	"agency-configurator-be/internal/model"
	"agency-configurator-be/internal/repository/contract"
	"agency-configurator-be/internal/repository/specification"

	"gorm.io/gorm"
)

// mutableSessionColumns are rewritten by every progress save.
var mutableSessionColumns = []string{"answers", "recommended_options", "status", "version", "user_id", "updated_at"}

type ConfigurationSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConfigurationSessionMapper
}

func NewConfigurationSessionRepository(db *gorm.DB) contract.ConfigurationSessionRepository {
	return &ConfigurationSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewConfigurationSessionMapper(),
	}
}

func (r *ConfigurationSessionRepositoryImpl) Create(ctx context.Context, session *entity.ConfigurationSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *created
	return nil
}

func (r *ConfigurationSessionRepositoryImpl) Update(ctx context.Context, session *entity.ConfigurationSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.ConfigurationSession{}).
		Where("id = ?", m.Id).
		Select(mutableSessionColumns).
		Updates(m).Error
}

func (r *ConfigurationSessionRepositoryImpl) UpdateIfVersion(ctx context.Context, session *entity.ConfigurationSession, expectedVersion int) (bool, error) {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).
		Model(&model.ConfigurationSession{}).
		Where("id = ? AND version = ?", m.Id, expectedVersion).
		Select(mutableSessionColumns).
		Updates(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ConfigurationSessionRepositoryImpl) DeleteByToken(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.ConfigurationSession{})
	return res.RowsAffected, res.Error
}

func (r *ConfigurationSessionRepositoryImpl) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ConfigurationSession{})
	return res.RowsAffected, res.Error
}

func (r *ConfigurationSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConfigurationSession, error) {
	var m model.ConfigurationSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ConfigurationSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ConfigurationSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
