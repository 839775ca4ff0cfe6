package contract

import (
	"context"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *entity.Answer) error
	Update(ctx context.Context, answer *entity.Answer) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByQuestionId(ctx context.Context, questionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Answer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Answer, error)
}
