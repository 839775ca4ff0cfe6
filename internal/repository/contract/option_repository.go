package contract

import (
	"context"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/repository/specification"
)

type OptionRepository interface {
	Create(ctx context.Context, option *entity.Option) error
	Update(ctx context.Context, option *entity.Option) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Option, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Option, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
