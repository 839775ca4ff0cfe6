package service

import (
	"context"
	"strings"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/logger"
)

const recommendationModule = "RECOMMENDATION"

type IRecommendationService interface {
	// Recommend computes the recommended options and stores answers and
	// result in the caller's session, creating one when needed.
	Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error)
}

type recommendationService struct {
	questionnaireService IQuestionnaireService
	sessionService       IConfigurationSessionService
	logger               logger.ILogger
}

func NewRecommendationService(
	questionnaireService IQuestionnaireService,
	sessionService IConfigurationSessionService,
	logger logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		questionnaireService: questionnaireService,
		sessionService:       sessionService,
		logger:               logger,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	engine, err := s.questionnaireService.Engine(ctx)
	if err != nil {
		return nil, err
	}

	result := engine.Recommend(req.Answers)
	if len(result.Warnings) > 0 {
		s.logger.Warn(recommendationModule, "Recommendation computed with warnings", map[string]interface{}{
			"warnings": result.Warnings,
		})
	}

	token, err := s.persist(ctx, strings.TrimSpace(req.SessionToken), req)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessionService.UpdateRecommendations(ctx, token, result.RecommendedOptionIds); err != nil {
		return nil, err
	}

	return &dto.RecommendationResponse{
		RecommendedOptionIds: result.RecommendedOptionIds,
		SessionId:            token,
		AnsweredPairs:        result.AnsweredPairs,
		Warnings:             result.Warnings,
	}, nil
}

// persist saves the answers into the given session, or into a new one when
// the token is empty or no longer exists.
func (s *recommendationService) persist(ctx context.Context, token string, req *dto.RecommendationRequest) (string, error) {
	if token != "" {
		_, err := s.sessionService.SaveProgress(ctx, &dto.SaveSessionRequest{Token: token, Answers: req.Answers})
		if err == nil {
			return token, nil
		}
		if !apperror.IsKind(err, apperror.KindNotFound) {
			return "", err
		}
		s.logger.Warn(recommendationModule, "Unknown session token, starting a new session", map[string]interface{}{"token": token})
	}

	session, err := s.sessionService.Create(ctx, req.Answers)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}
