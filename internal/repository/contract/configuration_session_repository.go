package contract

import (
	"context"
	"time"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/repository/specification"
)

type ConfigurationSessionRepository interface {
	Create(ctx context.Context, session *entity.ConfigurationSession) error
	// Update overwrites the row (last write wins).
	Update(ctx context.Context, session *entity.ConfigurationSession) error
	// UpdateIfVersion writes only when the stored version still equals
	// expectedVersion and reports whether a row was written.
	UpdateIfVersion(ctx context.Context, session *entity.ConfigurationSession, expectedVersion int) (bool, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConfigurationSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
