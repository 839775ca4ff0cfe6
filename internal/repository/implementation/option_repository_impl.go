package implementation

import (
	"context"
	"errors"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/mapper"
	"agency-configurator-be/internal/model"
	"agency-configurator-be/internal/repository/contract"
	"agency-configurator-be/internal/repository/specification"

	"gorm.io/gorm"
)

type OptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OptionMapper
}

func NewOptionRepository(db *gorm.DB) contract.OptionRepository {
	return &OptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewOptionMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OptionRepositoryImpl) Create(ctx context.Context, option *entity.Option) error {
	m := r.mapper.ToModel(option)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*option = *r.mapper.ToEntity(m)
	return nil
}

// Update uses Save so zero values (inactive, price 0) are written too.
func (r *OptionRepositoryImpl) Update(ctx context.Context, option *entity.Option) error {
	m := r.mapper.ToModel(option)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*option = *r.mapper.ToEntity(m)
	return nil
}

func (r *OptionRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Option{}).Error
}

func (r *OptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Option, error) {
	var m model.Option
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Option, error) {
	var models []*model.Option
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *OptionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Option{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
