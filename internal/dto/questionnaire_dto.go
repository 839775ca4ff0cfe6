package dto

import (
	"strings"

	"agency-configurator-be/pkg/recommendation"

	"github.com/google/uuid"
)

type QuestionResponse struct {
	Id          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	Category    string    `json:"category"`
	Cardinality string    `json:"cardinality"`
	SortOrder   int       `json:"sortOrder"`
	Active      bool      `json:"active"`
}

type AnswerResponse struct {
	Id                 uuid.UUID `json:"id"`
	QuestionId         uuid.UUID `json:"questionId"`
	Value              string    `json:"value"`
	SortOrder          int       `json:"sortOrder"`
	RecommendedOptions []string  `json:"recommendedOptions"`
}

type QuestionsWithAnswersResponse struct {
	Questions []*QuestionResponse      `json:"questions"`
	Answers   []*AnswerResponse        `json:"answers"`
	Warnings  []recommendation.Warning `json:"warnings,omitempty"`
}

type CreateQuestionRequest struct {
	Label       string `json:"label" validate:"required,max=1000"`
	Category    string `json:"category" validate:"max=50"`
	Cardinality string `json:"cardinality" validate:"required,oneof=single multiple"`
	SortOrder   int    `json:"sortOrder"`
	Active      *bool  `json:"active"`
}

func (r *CreateQuestionRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Category = strings.TrimSpace(r.Category)
}

type UpdateQuestionRequest struct {
	Id          uuid.UUID `json:"-"`
	Label       string    `json:"label" validate:"required,max=1000"`
	Category    string    `json:"category" validate:"max=50"`
	Cardinality string    `json:"cardinality" validate:"required,oneof=single multiple"`
	SortOrder   int       `json:"sortOrder"`
	Active      *bool     `json:"active"`
}

func (r *UpdateQuestionRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Category = strings.TrimSpace(r.Category)
}

type CreateAnswerRequest struct {
	QuestionId         uuid.UUID `json:"questionId" validate:"required"`
	Value              string    `json:"value" validate:"required,max=255"`
	SortOrder          int       `json:"sortOrder"`
	RecommendedOptions []string  `json:"recommendedOptions" validate:"unique,max=100,dive,required,max=100"`
}

func (r *CreateAnswerRequest) Normalize() {
	r.Value = strings.TrimSpace(r.Value)
}

type UpdateAnswerRequest struct {
	Id                 uuid.UUID `json:"-"`
	Value              string    `json:"value" validate:"required,max=255"`
	SortOrder          int       `json:"sortOrder"`
	RecommendedOptions []string  `json:"recommendedOptions" validate:"unique,max=100,dive,required,max=100"`
}

func (r *UpdateAnswerRequest) Normalize() {
	r.Value = strings.TrimSpace(r.Value)
}
