package mapper

import (
	"encoding/json"
	"fmt"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/model"
	"agency-configurator-be/pkg/recommendation"

	"gorm.io/datatypes"
)

type ConfigurationSessionMapper struct{}

func NewConfigurationSessionMapper() *ConfigurationSessionMapper {
	return &ConfigurationSessionMapper{}
}

func (m *ConfigurationSessionMapper) ToEntity(s *model.ConfigurationSession) (*entity.ConfigurationSession, error) {
	if s == nil {
		return nil, nil
	}

	answers := recommendation.Answers{}
	if len(s.Answers) > 0 && string(s.Answers) != "null" {
		if err := json.Unmarshal(s.Answers, &answers); err != nil {
			return nil, fmt.Errorf("decode answers of session %s: %w", s.Token, err)
		}
	}

	recommended := []string(s.RecommendedOptions)
	if recommended == nil {
		recommended = []string{}
	}

	return &entity.ConfigurationSession{
		Id:                 s.Id,
		Token:              s.Token,
		Answers:            answers,
		RecommendedOptions: recommended,
		Status:             entity.SessionStatus(s.Status),
		Version:            s.Version,
		UserId:             s.UserId,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}, nil
}

func (m *ConfigurationSessionMapper) ToModel(s *entity.ConfigurationSession) (*model.ConfigurationSession, error) {
	if s == nil {
		return nil, nil
	}

	answers := s.Answers
	if answers == nil {
		answers = recommendation.Answers{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers of session %s: %w", s.Token, err)
	}

	recommended := s.RecommendedOptions
	if recommended == nil {
		recommended = []string{}
	}

	return &model.ConfigurationSession{
		Id:                 s.Id,
		Token:              s.Token,
		Answers:            datatypes.JSON(raw),
		RecommendedOptions: datatypes.JSONSlice[string](recommended),
		Status:             string(s.Status),
		Version:            s.Version,
		UserId:             s.UserId,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}, nil
}
