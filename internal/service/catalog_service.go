package service

import (
	"context"
	"strings"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/repository/memory"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/pricing"
)

const catalogModule = "CATALOG"

type ICatalogService interface {
	ListOptions(ctx context.Context, req *dto.ListOptionsRequest) (*dto.ListOptionsResponse, error)
	GetOption(ctx context.Context, id string) (*dto.OptionResponse, error)
	// ActiveCatalog returns every active option, served from the cache when fresh.
	ActiveCatalog(ctx context.Context) ([]*entity.Option, error)

	ListAllOptions(ctx context.Context) (*dto.ListOptionsResponse, error)
	CreateOption(ctx context.Context, req *dto.CreateOptionRequest) (*dto.OptionResponse, error)
	UpdateOption(ctx context.Context, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error)
	DeleteOption(ctx context.Context, id string) error
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.OptionCache
	clock      clock.Clock
	logger     logger.ILogger
}

func NewCatalogService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.OptionCache,
	clk clock.Clock,
	logger logger.ILogger,
) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
		clock:      clk,
		logger:     logger,
	}
}

func (s *catalogService) ActiveCatalog(ctx context.Context) ([]*entity.Option, error) {
	if options, ok := s.cache.Get(); ok {
		return options, nil
	}

	generation := s.cache.Generation()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	options, err := uow.OptionRepository().FindAll(ctx, specification.ActiveOnly{}, specification.CatalogOrder{})
	if err != nil {
		s.logger.Error(catalogModule, "Failed to load active catalog", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Upstream("Failed to retrieve options", err)
	}

	if !s.cache.Set(generation, options) {
		s.logger.Debug(catalogModule, "Catalog changed during load, not cached", nil)
	}
	return options, nil
}

func (s *catalogService) ListOptions(ctx context.Context, req *dto.ListOptionsRequest) (*dto.ListOptionsResponse, error) {
	optionType := strings.TrimSpace(req.Type)
	secteur := strings.TrimSpace(req.Secteur)

	var options []*entity.Option
	var err error
	if optionType == "" && secteur == "" {
		options, err = s.ActiveCatalog(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		specs := []specification.Specification{specification.ActiveOnly{}}
		if optionType != "" {
			specs = append(specs, specification.OptionType{Type: optionType})
		}
		if secteur != "" {
			specs = append(specs, specification.OptionCategory{Category: secteur})
		}
		specs = append(specs, specification.CatalogOrder{})

		uow := s.uowFactory.NewUnitOfWork(ctx)
		options, err = uow.OptionRepository().FindAll(ctx, specs...)
		if err != nil {
			s.logger.Error(catalogModule, "Failed to load filtered catalog", map[string]interface{}{
				"type":    optionType,
				"secteur": secteur,
				"error":   err.Error(),
			})
			return nil, apperror.Upstream("Failed to retrieve options", err)
		}
	}

	return &dto.ListOptionsResponse{Options: toOptionResponses(options)}, nil
}

func (s *catalogService) GetOption(ctx context.Context, id string) (*dto.OptionResponse, error) {
	option, err := s.findOption(ctx, id)
	if err != nil {
		return nil, err
	}
	if !option.IsActive {
		return nil, apperror.NotFound("Option %s not found", id)
	}
	return toOptionResponse(option), nil
}

func (s *catalogService) ListAllOptions(ctx context.Context) (*dto.ListOptionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	options, err := uow.OptionRepository().FindAll(ctx, specification.CatalogOrder{})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve options", err)
	}
	return &dto.ListOptionsResponse{Options: toOptionResponses(options)}, nil
}

func (s *catalogService) CreateOption(ctx context.Context, req *dto.CreateOptionRequest) (*dto.OptionResponse, error) {
	if err := pricing.ValidateBounds(req.Price, req.PriceMin, req.PriceMax); err != nil {
		return nil, apperror.Validation("%v", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.OptionRepository().FindOne(ctx, specification.ByKey{Key: req.Id})
	if err != nil {
		return nil, apperror.Upstream("Failed to check option", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Option %s already exists", req.Id)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	now := s.clock.Now()
	option := &entity.Option{
		Id:          req.Id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Price:       req.Price,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		IsMandatory: req.Mandatory,
		IsActive:    active,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.OptionRepository().Create(ctx, option); err != nil {
		return nil, apperror.Upstream("Failed to create option", err)
	}

	s.cache.Invalidate()
	s.logger.Info(catalogModule, "Option created", map[string]interface{}{"option_id": option.Id})
	return toOptionResponse(option), nil
}

func (s *catalogService) UpdateOption(ctx context.Context, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error) {
	if err := pricing.ValidateBounds(req.Price, req.PriceMin, req.PriceMax); err != nil {
		return nil, apperror.Validation("%v", err)
	}

	option, err := s.findOption(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	option.Name = req.Name
	option.Description = req.Description
	option.Category = req.Category
	option.Type = req.Type
	option.Price = req.Price
	option.PriceMin = req.PriceMin
	option.PriceMax = req.PriceMax
	option.IsMandatory = req.Mandatory
	option.SortOrder = req.SortOrder
	if req.Active != nil {
		option.IsActive = *req.Active
	}
	option.UpdatedAt = s.clock.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.OptionRepository().Update(ctx, option); err != nil {
		return nil, apperror.Upstream("Failed to update option", err)
	}

	s.cache.Invalidate()
	s.logger.Info(catalogModule, "Option updated", map[string]interface{}{"option_id": option.Id})
	return toOptionResponse(option), nil
}

func (s *catalogService) DeleteOption(ctx context.Context, id string) error {
	if _, err := s.findOption(ctx, id); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.OptionRepository().Delete(ctx, id); err != nil {
		return apperror.Upstream("Failed to delete option", err)
	}

	s.cache.Invalidate()
	s.logger.Info(catalogModule, "Option deleted", map[string]interface{}{"option_id": id})
	return nil
}

func (s *catalogService) findOption(ctx context.Context, id string) (*entity.Option, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	option, err := uow.OptionRepository().FindOne(ctx, specification.ByKey{Key: id})
	if err != nil {
		return nil, apperror.Upstream("Failed to retrieve option", err)
	}
	if option == nil {
		return nil, apperror.NotFound("Option %s not found", id)
	}
	return option, nil
}

func toOptionResponse(o *entity.Option) *dto.OptionResponse {
	return &dto.OptionResponse{
		Id:          o.Id,
		Name:        o.Name,
		Description: o.Description,
		Category:    o.Category,
		Type:        o.Type,
		Price:       o.Price,
		PriceMin:    o.PriceMin,
		PriceMax:    o.PriceMax,
		Mandatory:   o.IsMandatory,
		Active:      o.IsActive,
		SortOrder:   o.SortOrder,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOptionResponses(options []*entity.Option) []*dto.OptionResponse {
	res := make([]*dto.OptionResponse, 0, len(options))
	for _, o := range options {
		res = append(res, toOptionResponse(o))
	}
	return res
}
