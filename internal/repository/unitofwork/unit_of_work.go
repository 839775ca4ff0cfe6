package unitofwork

import (
	"context"

	"agency-configurator-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OptionRepository() contract.OptionRepository
	QuestionRepository() contract.QuestionRepository
	AnswerRepository() contract.AnswerRepository
	ConfigurationSessionRepository() contract.ConfigurationSessionRepository
	LeadRepository() contract.LeadRepository
}
