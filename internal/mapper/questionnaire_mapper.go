package mapper

import (
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/model"
)

type QuestionnaireMapper struct{}

func NewQuestionnaireMapper() *QuestionnaireMapper {
	return &QuestionnaireMapper{}
}

func (m *QuestionnaireMapper) QuestionToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}
	return &entity.Question{
		Id:          q.Id,
		Label:       q.Label,
		Category:    q.Category,
		Cardinality: q.Cardinality,
		SortOrder:   q.SortOrder,
		IsActive:    q.IsActive,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func (m *QuestionnaireMapper) QuestionToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}
	return &model.Question{
		Id:          q.Id,
		Label:       q.Label,
		Category:    q.Category,
		Cardinality: q.Cardinality,
		SortOrder:   q.SortOrder,
		IsActive:    q.IsActive,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func (m *QuestionnaireMapper) QuestionsToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.QuestionToEntity(q)
	}
	return entities
}

func (m *QuestionnaireMapper) AnswerToEntity(a *model.Answer) *entity.Answer {
	if a == nil {
		return nil
	}
	return &entity.Answer{
		Id:             a.Id,
		QuestionId:     a.QuestionId,
		Value:          a.Value,
		SortOrder:      a.SortOrder,
		RecommendedRaw: a.RecommendedOptions,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *QuestionnaireMapper) AnswerToModel(a *entity.Answer) *model.Answer {
	if a == nil {
		return nil
	}
	return &model.Answer{
		Id:                 a.Id,
		QuestionId:         a.QuestionId,
		Value:              a.Value,
		SortOrder:          a.SortOrder,
		RecommendedOptions: a.RecommendedRaw,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (m *QuestionnaireMapper) AnswersToEntities(answers []*model.Answer) []*entity.Answer {
	entities := make([]*entity.Answer, len(answers))
	for i, a := range answers {
		entities[i] = m.AnswerToEntity(a)
	}
	return entities
}
