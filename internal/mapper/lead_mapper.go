package mapper

import (
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/model"

	"gorm.io/datatypes"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (m *LeadMapper) ToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}
	return &entity.Lead{
		Id:                l.Id,
		Reference:         l.Reference,
		Kind:              entity.LeadKind(l.Kind),
		Status:            entity.LeadStatus(l.Status),
		FullName:          l.FullName,
		Email:             l.Email,
		Phone:             l.Phone,
		Company:           l.Company,
		Message:           l.Message,
		WebsiteUrl:        l.WebsiteUrl,
		Goals:             nonNil(l.Goals),
		SessionToken:      l.SessionToken,
		UserId:            l.UserId,
		SelectedOptions:   nonNil(l.SelectedOptions),
		AutomationOptions: nonNil(l.AutomationOptions),
		TotalMin:          l.TotalMin,
		TotalMax:          l.TotalMax,
		TotalMinTtc:       l.TotalMinTtc,
		TotalMaxTtc:       l.TotalMaxTtc,
		AdminNote:         l.AdminNote,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func (m *LeadMapper) ToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}
	return &model.Lead{
		Id:                l.Id,
		Reference:         l.Reference,
		Kind:              string(l.Kind),
		Status:            string(l.Status),
		FullName:          l.FullName,
		Email:             l.Email,
		Phone:             l.Phone,
		Company:           l.Company,
		Message:           l.Message,
		WebsiteUrl:        l.WebsiteUrl,
		Goals:             datatypes.JSONSlice[string](nonNil(l.Goals)),
		SessionToken:      l.SessionToken,
		UserId:            l.UserId,
		SelectedOptions:   datatypes.JSONSlice[string](nonNil(l.SelectedOptions)),
		AutomationOptions: datatypes.JSONSlice[string](nonNil(l.AutomationOptions)),
		TotalMin:          l.TotalMin,
		TotalMax:          l.TotalMax,
		TotalMinTtc:       l.TotalMinTtc,
		TotalMaxTtc:       l.TotalMaxTtc,
		AdminNote:         l.AdminNote,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func (m *LeadMapper) ToEntities(leads []*model.Lead) []*entity.Lead {
	entities := make([]*entity.Lead, len(leads))
	for i, l := range leads {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
