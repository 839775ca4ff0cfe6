package service

import (
	"context"
	"strings"
	"time"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/events"
	"agency-configurator-be/pkg/recommendation"

	"github.com/google/uuid"
)

const sessionModule = "SESSION"

type IConfigurationSessionService interface {
	Create(ctx context.Context, answers recommendation.Answers) (*dto.SessionResponse, error)
	// SaveProgress overwrites the answers. A non-nil version turns on the
	// stale write check; otherwise the last write wins.
	SaveProgress(ctx context.Context, req *dto.SaveSessionRequest) (*dto.SessionResponse, error)
	UpdateRecommendations(ctx context.Context, token string, optionIds []string) (*dto.SessionResponse, error)
	Complete(ctx context.Context, token string) (*dto.SessionResponse, error)
	Get(ctx context.Context, token string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, token string) error
	LinkUser(ctx context.Context, token string, userId uuid.UUID) error
	CleanupExpired(ctx context.Context) (*dto.CleanupSessionsResponse, error)
	RunCleanupLoop(ctx context.Context, interval time.Duration)
}

type configurationSessionService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      clock.Clock
	ttl        time.Duration
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewConfigurationSessionService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	ttl time.Duration,
	publisher events.Publisher,
	logger logger.ILogger,
) IConfigurationSessionService {
	return &configurationSessionService{
		uowFactory: uowFactory,
		clock:      clk,
		ttl:        ttl,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *configurationSessionService) Create(ctx context.Context, answers recommendation.Answers) (*dto.SessionResponse, error) {
	status := entity.SessionStatusNew
	if len(answers) > 0 {
		status = entity.SessionStatusInProgress
	}

	now := s.clock.Now()
	session := &entity.ConfigurationSession{
		Id:                 uuid.New(),
		Token:              uuid.NewString(),
		Answers:            answers.Clone(),
		RecommendedOptions: []string{},
		Status:             status,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConfigurationSessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.Upstream("Failed to create session", err)
	}

	s.logger.Debug(sessionModule, "Session created", map[string]interface{}{"token": session.Token, "status": string(status)})
	return s.toResponse(session), nil
}

func (s *configurationSessionService) SaveProgress(ctx context.Context, req *dto.SaveSessionRequest) (*dto.SessionResponse, error) {
	status := entity.SessionStatusInProgress
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status = entity.SessionStatus(raw)
		if !status.Valid() {
			return nil, apperror.ValidationFields("Validation failed", map[string]string{
				"status": "unknown session status " + raw,
			})
		}
	}

	return s.mutate(ctx, req.Token, req.Version, func(session *entity.ConfigurationSession) {
		session.Answers = req.Answers.Clone()
		session.Status = status
	})
}

func (s *configurationSessionService) UpdateRecommendations(ctx context.Context, token string, optionIds []string) (*dto.SessionResponse, error) {
	ids := make([]string, len(optionIds))
	copy(ids, optionIds)
	return s.mutate(ctx, token, nil, func(session *entity.ConfigurationSession) {
		session.RecommendedOptions = ids
		session.Status = entity.SessionStatusRecommendations
	})
}

func (s *configurationSessionService) Complete(ctx context.Context, token string) (*dto.SessionResponse, error) {
	res, err := s.mutate(ctx, token, nil, func(session *entity.ConfigurationSession) {
		session.Status = entity.SessionStatusQuoteRequested
	})
	if err != nil {
		return nil, err
	}

	event := events.BaseEvent{
		Type: events.TypeConfigurationComplete,
		Data: map[string]interface{}{
			"session_id":          res.Id.String(),
			"recommended_options": res.RecommendedOptions,
		},
		OccurredAt: s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(sessionModule, "Failed to publish completion event", map[string]interface{}{"error": err.Error()})
	}
	return res, nil
}

func (s *configurationSessionService) LinkUser(ctx context.Context, token string, userId uuid.UUID) error {
	_, err := s.mutate(ctx, token, nil, func(session *entity.ConfigurationSession) {
		session.UserId = &userId
	})
	return err
}

func (s *configurationSessionService) Get(ctx context.Context, token string) (*dto.SessionResponse, error) {
	session, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.toResponse(session), nil
}

func (s *configurationSessionService) Delete(ctx context.Context, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ConfigurationSessionRepository().DeleteByToken(ctx, token)
	if err != nil {
		return apperror.Upstream("Failed to delete session", err)
	}
	if deleted == 0 {
		return apperror.NotFound("Session not found")
	}
	return nil
}

func (s *configurationSessionService) CleanupExpired(ctx context.Context) (*dto.CleanupSessionsResponse, error) {
	cutoff := s.clock.Now().Add(-s.ttl)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ConfigurationSessionRepository().DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error(sessionModule, "Cleanup failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Upstream("Failed to clean up sessions", err)
	}

	s.logger.Info(sessionModule, "Expired sessions removed", map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	return &dto.CleanupSessionsResponse{Deleted: deleted, Cutoff: cutoff}, nil
}

// RunCleanupLoop calls CleanupExpired every interval until ctx is done.
func (s *configurationSessionService) RunCleanupLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := s.CleanupExpired(ctx); err != nil {
				s.logger.Warn(sessionModule, "Scheduled cleanup failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func (s *configurationSessionService) find(ctx context.Context, token string) (*entity.ConfigurationSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.Validation("Session token is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ConfigurationSessionRepository().FindOne(ctx, specification.ByToken{Token: token})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve session", err)
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found")
	}
	return session, nil
}

// mutate loads the session, applies change and writes it back with a bumped
// version. With expectedVersion set, a concurrent write yields a conflict.
func (s *configurationSessionService) mutate(
	ctx context.Context,
	token string,
	expectedVersion *int,
	change func(session *entity.ConfigurationSession),
) (*dto.SessionResponse, error) {
	session, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}

	if expectedVersion != nil && *expectedVersion != session.Version {
		return nil, apperror.Conflict("Session was modified elsewhere (version %d, expected %d)", session.Version, *expectedVersion)
	}

	current := session.Version
	change(session)
	session.Version = current + 1
	session.UpdatedAt = s.clock.Now()

	repo := s.uowFactory.NewUnitOfWork(ctx).ConfigurationSessionRepository()
	if expectedVersion != nil {
		written, err := repo.UpdateIfVersion(ctx, session, current)
		if err != nil {
			return nil, apperror.Upstream("Failed to save session", err)
		}
		if !written {
			return nil, apperror.Conflict("Session was modified elsewhere")
		}
	} else if err := repo.Update(ctx, session); err != nil {
		return nil, apperror.Upstream("Failed to save session", err)
	}

	return s.toResponse(session), nil
}

func (s *configurationSessionService) toResponse(session *entity.ConfigurationSession) *dto.SessionResponse {
	answers := session.Answers
	if answers == nil {
		answers = recommendation.Answers{}
	}
	recommended := session.RecommendedOptions
	if recommended == nil {
		recommended = []string{}
	}
	return &dto.SessionResponse{
		Id:                 session.Id,
		Token:              session.Token,
		Answers:            answers,
		RecommendedOptions: recommended,
		Status:             string(session.Status),
		Version:            session.Version,
		CreatedAt:          session.CreatedAt,
		UpdatedAt:          session.UpdatedAt,
		ExpiresAt:          session.ExpiresAt(s.ttl),
	}
}
