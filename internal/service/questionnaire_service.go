package service

import (
	"context"
	"encoding/json"
	"strings"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/recommendation"

	"github.com/google/uuid"
)

const questionnaireModule = "QUESTIONNAIRE"

type IQuestionnaireService interface {
	GetQuestionsWithAnswers(ctx context.Context) (*dto.QuestionsWithAnswersResponse, error)
	// Engine builds a recommendation engine over the active questionnaire.
	Engine(ctx context.Context) (*recommendation.Engine, error)

	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	CreateAnswer(ctx context.Context, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error)
	UpdateAnswer(ctx context.Context, req *dto.UpdateAnswerRequest) (*dto.AnswerResponse, error)
	DeleteAnswer(ctx context.Context, id uuid.UUID) error
}

type questionnaireService struct {
	uowFactory     unitofwork.RepositoryFactory
	catalogService ICatalogService
	clock          clock.Clock
	logger         logger.ILogger
}

func NewQuestionnaireService(
	uowFactory unitofwork.RepositoryFactory,
	catalogService ICatalogService,
	clk clock.Clock,
	logger logger.ILogger,
) IQuestionnaireService {
	return &questionnaireService{
		uowFactory:     uowFactory,
		catalogService: catalogService,
		clock:          clk,
		logger:         logger,
	}
}

func (s *questionnaireService) load(ctx context.Context) ([]*entity.Question, []*entity.Answer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	questions, err := uow.QuestionRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, nil, apperror.Upstream("Failed to retrieve questions", err)
	}
	if len(questions) == 0 {
		return questions, []*entity.Answer{}, nil
	}

	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.Id)
	}
	answers, err := uow.AnswerRepository().FindAll(ctx,
		specification.ByQuestionIDs{QuestionIDs: ids},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, nil, apperror.Upstream("Failed to retrieve answers", err)
	}
	return questions, answers, nil
}

func (s *questionnaireService) GetQuestionsWithAnswers(ctx context.Context) (*dto.QuestionsWithAnswersResponse, error) {
	questions, answers, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.QuestionsWithAnswersResponse{
		Questions: make([]*dto.QuestionResponse, 0, len(questions)),
		Answers:   make([]*dto.AnswerResponse, 0, len(answers)),
	}
	for _, q := range questions {
		res.Questions = append(res.Questions, toQuestionResponse(q))
	}
	for _, a := range answers {
		ids, err := recommendation.ParseRecommended(a.RecommendedRaw)
		if err != nil {
			s.logger.Warn(questionnaireModule, "Malformed recommendation list", map[string]interface{}{
				"answer_id": a.Id.String(),
				"error":     err.Error(),
			})
			res.Warnings = append(res.Warnings, recommendation.Warning{
				QuestionId: a.QuestionId.String(),
				Value:      a.Value,
				Reason:     err.Error(),
			})
		}
		res.Answers = append(res.Answers, toAnswerResponse(a, ids))
	}
	return res, nil
}

func (s *questionnaireService) Engine(ctx context.Context) (*recommendation.Engine, error) {
	questions, answers, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	qs := make([]recommendation.Question, 0, len(questions))
	for _, q := range questions {
		qs = append(qs, recommendation.Question{
			Id:        q.Id.String(),
			Label:     q.Label,
			SortOrder: q.SortOrder,
			Multiple:  q.IsMultiple(),
		})
	}
	as := make([]recommendation.PossibleAnswer, 0, len(answers))
	for _, a := range answers {
		as = append(as, recommendation.PossibleAnswer{
			QuestionId:  a.QuestionId.String(),
			Value:       a.Value,
			Recommended: a.RecommendedRaw,
		})
	}
	return recommendation.NewEngine(qs, as), nil
}

func (s *questionnaireService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	now := s.clock.Now()
	question := &entity.Question{
		Id:          uuid.New(),
		Label:       req.Label,
		Category:    req.Category,
		Cardinality: req.Cardinality,
		SortOrder:   req.SortOrder,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.QuestionRepository().Create(ctx, question); err != nil {
		return nil, apperror.Upstream("Failed to create question", err)
	}
	return toQuestionResponse(question), nil
}

func (s *questionnaireService) UpdateQuestion(ctx context.Context, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve question", err)
	}
	if question == nil {
		return nil, apperror.NotFound("Question %s not found", req.Id)
	}

	question.Label = req.Label
	question.Category = req.Category
	question.Cardinality = req.Cardinality
	question.SortOrder = req.SortOrder
	if req.Active != nil {
		question.IsActive = *req.Active
	}
	question.UpdatedAt = s.clock.Now()

	if err := uow.QuestionRepository().Update(ctx, question); err != nil {
		return nil, apperror.Upstream("Failed to update question", err)
	}
	return toQuestionResponse(question), nil
}

// DeleteQuestion removes the question and its answers atomically.
func (s *questionnaireService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Upstream("Failed to retrieve question", err)
	}
	if question == nil {
		return apperror.NotFound("Question %s not found", id)
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Upstream("Failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.AnswerRepository().DeleteByQuestionId(ctx, id); err != nil {
		return apperror.Upstream("Failed to delete answers", err)
	}
	if err := uow.QuestionRepository().Delete(ctx, id); err != nil {
		return apperror.Upstream("Failed to delete question", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Upstream("Failed to commit", err)
	}

	s.logger.Info(questionnaireModule, "Question deleted", map[string]interface{}{"question_id": id.String()})
	return nil
}

func (s *questionnaireService) CreateAnswer(ctx context.Context, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: req.QuestionId})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve question", err)
	}
	if question == nil {
		return nil, apperror.NotFound("Question %s not found", req.QuestionId)
	}

	raw, err := s.encodeRecommended(ctx, req.RecommendedOptions)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	answer := &entity.Answer{
		Id:             uuid.New(),
		QuestionId:     question.Id,
		Value:          req.Value,
		SortOrder:      req.SortOrder,
		RecommendedRaw: raw,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uow.AnswerRepository().Create(ctx, answer); err != nil {
		return nil, apperror.Upstream("Failed to create answer", err)
	}
	return toAnswerResponse(answer, cleanRecommended(req.RecommendedOptions)), nil
}

func (s *questionnaireService) UpdateAnswer(ctx context.Context, req *dto.UpdateAnswerRequest) (*dto.AnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	answer, err := uow.AnswerRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve answer", err)
	}
	if answer == nil {
		return nil, apperror.NotFound("Answer %s not found", req.Id)
	}

	raw, err := s.encodeRecommended(ctx, req.RecommendedOptions)
	if err != nil {
		return nil, err
	}

	answer.Value = req.Value
	answer.SortOrder = req.SortOrder
	answer.RecommendedRaw = raw
	answer.UpdatedAt = s.clock.Now()

	if err := uow.AnswerRepository().Update(ctx, answer); err != nil {
		return nil, apperror.Upstream("Failed to update answer", err)
	}
	return toAnswerResponse(answer, cleanRecommended(req.RecommendedOptions)), nil
}

func (s *questionnaireService) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	answer, err := uow.AnswerRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Upstream("Failed to retrieve answer", err)
	}
	if answer == nil {
		return apperror.NotFound("Answer %s not found", id)
	}
	if err := uow.AnswerRepository().Delete(ctx, id); err != nil {
		return apperror.Upstream("Failed to delete answer", err)
	}
	return nil
}

// encodeRecommended rejects ids that are not in the catalog (active or not)
// and stores the list as a native JSON array.
func (s *questionnaireService) encodeRecommended(ctx context.Context, ids []string) (string, error) {
	ids = cleanRecommended(ids)
	if len(ids) > 0 {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		known, err := uow.OptionRepository().FindAll(ctx, specification.ByKeys{Keys: ids})
		if err != nil {
			return "", apperror.Upstream("Failed to check recommended options", err)
		}
		found := make(map[string]struct{}, len(known))
		for _, o := range known {
			found[o.Id] = struct{}{}
		}
		var missing []string
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return "", apperror.ValidationFields("Validation failed", map[string]string{
				"recommendedOptions": "unknown option ids: " + strings.Join(missing, ", "),
			})
		}
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func cleanRecommended(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func toQuestionResponse(q *entity.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		Id:          q.Id,
		Label:       q.Label,
		Category:    q.Category,
		Cardinality: q.Cardinality,
		SortOrder:   q.SortOrder,
		Active:      q.IsActive,
	}
}

func toAnswerResponse(a *entity.Answer, ids []string) *dto.AnswerResponse {
	if ids == nil {
		ids = []string{}
	}
	return &dto.AnswerResponse{
		Id:                 a.Id,
		QuestionId:         a.QuestionId,
		Value:              a.Value,
		SortOrder:          a.SortOrder,
		RecommendedOptions: ids,
	}
}
