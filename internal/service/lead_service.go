package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/events"

	"github.com/google/uuid"
)

const (
	leadModule       = "LEAD"
	defaultLeadLimit = 20
	maxLeadLimit     = 100
)

type ILeadService interface {
	SubmitQuote(ctx context.Context, req *dto.SubmitQuoteRequest) (*dto.SubmitLeadResponse, error)
	SubmitAudit(ctx context.Context, req *dto.SubmitAuditRequest) (*dto.SubmitLeadResponse, error)

	ListLeads(ctx context.Context, req *dto.ListLeadsRequest) (*dto.ListLeadsResponse, error)
	GetLead(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error)
	UpdateLeadStatus(ctx context.Context, req *dto.UpdateLeadStatusRequest) (*dto.LeadResponse, error)
}

type leadService struct {
	uowFactory       unitofwork.RepositoryFactory
	pricingService   IPricingService
	sessionService   IConfigurationSessionService
	eventPublisher   events.Publisher
	publisherService IPublisherService
	clock            clock.Clock
	logger           logger.ILogger
}

func NewLeadService(
	uowFactory unitofwork.RepositoryFactory,
	pricingService IPricingService,
	sessionService IConfigurationSessionService,
	eventPublisher events.Publisher,
	publisherService IPublisherService,
	clk clock.Clock,
	logger logger.ILogger,
) ILeadService {
	return &leadService{
		uowFactory:       uowFactory,
		pricingService:   pricingService,
		sessionService:   sessionService,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		clock:            clk,
		logger:           logger,
	}
}

func (s *leadService) SubmitQuote(ctx context.Context, req *dto.SubmitQuoteRequest) (*dto.SubmitLeadResponse, error) {
	selected := req.SelectedOptionIds

	var sessionToken *string
	if req.SessionToken != "" {
		session, err := s.sessionService.Get(ctx, req.SessionToken)
		switch {
		case err == nil:
			sessionToken = &session.Token
			if len(selected) == 0 {
				selected = session.RecommendedOptions
			}
		case apperror.IsKind(err, apperror.KindNotFound):
			s.logger.Warn(leadModule, "Quote references an unknown session", map[string]interface{}{"token": req.SessionToken})
		default:
			return nil, err
		}
	}

	if len(selected) == 0 {
		return nil, apperror.ValidationFields("Validation failed", map[string]string{
			"selectedOptionIds": "at least one option is required",
		})
	}

	// Totals are always recomputed from the catalog.
	quote, err := s.pricingService.Quote(ctx, selected)
	if err != nil {
		return nil, err
	}

	known := make([]string, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		known = append(known, line.OptionId)
	}

	lead := s.newLead(entity.LeadKindQuote, &req.ContactRequest, req.UserId)
	lead.SessionToken = sessionToken
	lead.SelectedOptions = known
	lead.AutomationOptions = quote.AutomationIds
	lead.TotalMin = quote.TotalMin
	lead.TotalMax = quote.TotalMax
	lead.TotalMinTtc = s.pricingService.WithTax(quote.TotalMin)
	lead.TotalMaxTtc = s.pricingService.WithTax(quote.TotalMax)

	if err := s.store(ctx, lead); err != nil {
		return nil, err
	}

	if sessionToken != nil {
		if _, err := s.sessionService.Complete(ctx, *sessionToken); err != nil {
			s.logger.Warn(leadModule, "Failed to complete session", map[string]interface{}{"token": *sessionToken, "error": err.Error()})
		}
		if req.UserId != nil {
			if err := s.sessionService.LinkUser(ctx, *sessionToken, *req.UserId); err != nil {
				s.logger.Warn(leadModule, "Failed to link session to user", map[string]interface{}{"token": *sessionToken, "error": err.Error()})
			}
		}
	}

	s.announce(ctx, lead)

	return &dto.SubmitLeadResponse{
		Id:            lead.Id,
		Reference:     lead.Reference,
		TotalMin:      lead.TotalMin,
		TotalMax:      lead.TotalMax,
		AutomationIds: quote.AutomationIds,
		UnknownIds:    quote.UnknownIds,
	}, nil
}

func (s *leadService) SubmitAudit(ctx context.Context, req *dto.SubmitAuditRequest) (*dto.SubmitLeadResponse, error) {
	lead := s.newLead(entity.LeadKindAudit, &req.ContactRequest, req.UserId)
	lead.WebsiteUrl = req.WebsiteUrl
	lead.Goals = req.Goals

	if err := s.store(ctx, lead); err != nil {
		return nil, err
	}
	s.announce(ctx, lead)

	return &dto.SubmitLeadResponse{
		Id:            lead.Id,
		Reference:     lead.Reference,
		AutomationIds: []string{},
		UnknownIds:    []string{},
	}, nil
}

func (s *leadService) ListLeads(ctx context.Context, req *dto.ListLeadsRequest) (*dto.ListLeadsResponse, error) {
	var filters []specification.Specification
	if req.Status != "" {
		if !entity.LeadStatus(req.Status).Valid() {
			return nil, apperror.ValidationFields("Validation failed", map[string]string{"status": "unknown lead status"})
		}
		filters = append(filters, specification.LeadStatus{Status: req.Status})
	}
	if req.Kind != "" {
		kind := entity.LeadKind(req.Kind)
		if kind != entity.LeadKindQuote && kind != entity.LeadKindAudit {
			return nil, apperror.ValidationFields("Validation failed", map[string]string{"kind": "must be one of: devis audit"})
		}
		filters = append(filters, specification.LeadKind{Kind: req.Kind})
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLeadLimit
	}
	if limit > maxLeadLimit {
		limit = maxLeadLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.LeadRepository().Count(ctx, filters...)
	if err != nil {
		return nil, apperror.Upstream("Failed to count leads", err)
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	leads, err := uow.LeadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve leads", err)
	}

	res := &dto.ListLeadsResponse{
		Leads: make([]*dto.LeadResponse, 0, len(leads)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, l := range leads {
		res.Leads = append(res.Leads, toLeadResponse(l))
	}
	return res, nil
}

func (s *leadService) GetLead(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error) {
	lead, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

func (s *leadService) UpdateLeadStatus(ctx context.Context, req *dto.UpdateLeadStatusRequest) (*dto.LeadResponse, error) {
	next := entity.LeadStatus(req.Status)
	if !next.Valid() {
		return nil, apperror.ValidationFields("Validation failed", map[string]string{"status": "unknown lead status"})
	}

	lead, err := s.find(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	previous := lead.Status
	if next != previous && !previous.CanTransitionTo(next) {
		return nil, apperror.Validation("Cannot move lead from %s to %s", previous, next)
	}

	lead.Status = next
	if req.AdminNote != nil {
		lead.AdminNote = strings.TrimSpace(*req.AdminNote)
	}
	lead.UpdatedAt = s.clock.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LeadRepository().Update(ctx, lead); err != nil {
		return nil, apperror.Upstream("Failed to update lead", err)
	}

	if next != previous {
		event := events.BaseEvent{
			Type: events.TypeLeadStatusChanged,
			Data: map[string]interface{}{
				"lead_id":   lead.Id.String(),
				"reference": lead.Reference,
				"from":      string(previous),
				"to":        string(next),
			},
			OccurredAt: lead.UpdatedAt,
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn(leadModule, "Failed to publish status event", map[string]interface{}{"error": err.Error()})
		}
	}

	return toLeadResponse(lead), nil
}

func (s *leadService) newLead(kind entity.LeadKind, contact *dto.ContactRequest, userId *uuid.UUID) *entity.Lead {
	now := s.clock.Now()
	id := uuid.New()
	return &entity.Lead{
		Id:                id,
		Reference:         leadReference(kind, now.Format("20060102"), id),
		Kind:              kind,
		Status:            entity.LeadStatusNew,
		FullName:          contact.FullName,
		Email:             contact.Email,
		Phone:             contact.Phone,
		Company:           contact.Company,
		Message:           contact.Message,
		Goals:             []string{},
		UserId:            userId,
		SelectedOptions:   []string{},
		AutomationOptions: []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// leadReference is DEV-20240101-1A2B3C for quotes, AUD-... for audits.
func leadReference(kind entity.LeadKind, day string, id uuid.UUID) string {
	prefix := "DEV"
	if kind == entity.LeadKindAudit {
		prefix = "AUD"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, day, strings.ToUpper(id.String()[:6]))
}

func (s *leadService) store(ctx context.Context, lead *entity.Lead) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LeadRepository().Create(ctx, lead); err != nil {
		s.logger.Error(leadModule, "Failed to store lead", map[string]interface{}{"kind": string(lead.Kind), "error": err.Error()})
		return apperror.Upstream("Failed to save your request", err)
	}
	s.logger.Info(leadModule, "Lead created", map[string]interface{}{
		"lead_id":   lead.Id.String(),
		"reference": lead.Reference,
		"kind":      string(lead.Kind),
	})
	return nil
}

// announce publishes the domain event and queues the notification emails.
// Both are best effort once the lead is stored.
func (s *leadService) announce(ctx context.Context, lead *entity.Lead) {
	event := events.BaseEvent{
		Type: events.TypeLeadCreated,
		Data: map[string]interface{}{
			"lead_id":   lead.Id.String(),
			"reference": lead.Reference,
			"kind":      string(lead.Kind),
			"total_min": lead.TotalMin,
			"total_max": lead.TotalMax,
		},
		OccurredAt: lead.CreatedAt,
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn(leadModule, "Failed to publish lead event", map[string]interface{}{"lead_id": lead.Id.String(), "error": err.Error()})
	}

	payload, err := json.Marshal(dto.LeadNotificationMessage{LeadId: lead.Id})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn(leadModule, "Failed to queue lead notification", map[string]interface{}{"lead_id": lead.Id.String(), "error": err.Error()})
	}
}

func (s *leadService) find(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve lead", err)
	}
	if lead == nil {
		return nil, apperror.NotFound("Lead %s not found", id)
	}
	return lead, nil
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		Id:                l.Id,
		Reference:         l.Reference,
		Kind:              string(l.Kind),
		Status:            string(l.Status),
		FullName:          l.FullName,
		Email:             l.Email,
		Phone:             l.Phone,
		Company:           l.Company,
		Message:           l.Message,
		WebsiteUrl:        l.WebsiteUrl,
		Goals:             l.Goals,
		SessionToken:      l.SessionToken,
		SelectedOptions:   l.SelectedOptions,
		AutomationOptions: l.AutomationOptions,
		TotalMin:          l.TotalMin,
		TotalMax:          l.TotalMax,
		TotalMinTtc:       l.TotalMinTtc,
		TotalMaxTtc:       l.TotalMaxTtc,
		AdminNote:         l.AdminNote,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
