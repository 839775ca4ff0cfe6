package service

import (
	"context"
	"time"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/internal/repository/unitofwork"
)

// logScanLimit bounds the lookup of a single log line by id.
const logScanLimit = 5000

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats := &dto.AdminDashboardStats{}

	var err error
	if stats.ActiveOptions, err = uow.OptionRepository().Count(ctx, specification.ActiveOnly{}); err != nil {
		return nil, apperror.Upstream("Failed to load dashboard", err)
	}
	if stats.TotalLeads, err = uow.LeadRepository().Count(ctx); err != nil {
		return nil, apperror.Upstream("Failed to load dashboard", err)
	}
	if stats.NewLeads, err = uow.LeadRepository().Count(ctx, specification.LeadStatus{Status: string(entity.LeadStatusNew)}); err != nil {
		return nil, apperror.Upstream("Failed to load dashboard", err)
	}
	if stats.OpenSessions, err = uow.ConfigurationSessionRepository().Count(ctx); err != nil {
		return nil, apperror.Upstream("Failed to load dashboard", err)
	}
	if stats.QuoteSessions, err = uow.ConfigurationSessionRepository().Count(ctx,
		specification.Filter("status", string(entity.SessionStatusQuoteRequested)),
	); err != nil {
		return nil, apperror.Upstream("Failed to load dashboard", err)
	}
	return stats, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	logs, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, toLogListResponse(l))
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	logs, err := s.logger.GetLogs("", logScanLimit, 0)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		if l.Id == logId {
			return &dto.LogDetailResponse{
				LogListResponse: *toLogListResponse(l),
				Details:         l.Details,
			}, nil
		}
	}
	return nil, apperror.NotFound("Log not found")
}

// zap's ISO8601 encoder writes the offset without a colon.
var logTimeLayouts = []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339Nano}

func parseLogTime(value string) time.Time {
	for _, layout := range logTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func toLogListResponse(l logger.LogEntry) *dto.LogListResponse {
	ts := parseLogTime(l.Timestamp)
	return &dto.LogListResponse{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		CreatedAt: ts,
	}
}
