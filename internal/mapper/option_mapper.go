package mapper

import (
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/model"
)

type OptionMapper struct{}

func NewOptionMapper() *OptionMapper {
	return &OptionMapper{}
}

func (m *OptionMapper) ToEntity(o *model.Option) *entity.Option {
	if o == nil {
		return nil
	}
	return &entity.Option{
		Id:          o.Id,
		Name:        o.Name,
		Description: o.Description,
		Category:    o.Category,
		Type:        o.Type,
		Price:       o.Price,
		PriceMin:    o.PriceMin,
		PriceMax:    o.PriceMax,
		IsMandatory: o.IsMandatory,
		IsActive:    o.IsActive,
		SortOrder:   o.SortOrder,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (m *OptionMapper) ToModel(o *entity.Option) *model.Option {
	if o == nil {
		return nil
	}
	return &model.Option{
		Id:          o.Id,
		Name:        o.Name,
		Description: o.Description,
		Category:    o.Category,
		Type:        o.Type,
		Price:       o.Price,
		PriceMin:    o.PriceMin,
		PriceMax:    o.PriceMax,
		IsMandatory: o.IsMandatory,
		IsActive:    o.IsActive,
		SortOrder:   o.SortOrder,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (m *OptionMapper) ToEntities(options []*model.Option) []*entity.Option {
	entities := make([]*entity.Option, len(options))
	for i, o := range options {
		entities[i] = m.ToEntity(o)
	}
	return entities
}
