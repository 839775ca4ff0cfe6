package service

import (
	"context"
	"errors"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/pkg/pricing"
)

type IPricingService interface {
	CalculatePrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.CalculatePriceResponse, error)
	// Quote prices a selection against the live active catalog.
	Quote(ctx context.Context, selectedIds []string) (pricing.Quote, error)
	WithTax(amount float64) float64
}

type pricingService struct {
	catalogService ICatalogService
	taxRate        float64
}

func NewPricingService(catalogService ICatalogService, taxRate float64) IPricingService {
	return &pricingService{
		catalogService: catalogService,
		taxRate:        taxRate,
	}
}

func (s *pricingService) Quote(ctx context.Context, selectedIds []string) (pricing.Quote, error) {
	options, err := s.catalogService.ActiveCatalog(ctx)
	if err != nil {
		return pricing.Quote{}, err
	}

	quote, err := pricing.Calculate(entity.PricingCatalog(options), selectedIds)
	if err != nil {
		if errors.Is(err, pricing.ErrDuplicateSelection) {
			return pricing.Quote{}, apperror.ValidationFields("Validation failed", map[string]string{
				"selectedOptionIds": "must not contain duplicates",
			})
		}
		return pricing.Quote{}, err
	}
	return quote, nil
}

func (s *pricingService) CalculatePrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.CalculatePriceResponse, error) {
	quote, err := s.Quote(ctx, req.SelectedOptionIds)
	if err != nil {
		return nil, err
	}

	lines := make([]*dto.PriceLineResponse, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, &dto.PriceLineResponse{
			OptionId:  l.OptionId,
			Name:      l.Name,
			Min:       l.Min,
			Max:       l.Max,
			OnRequest: l.OnRequest,
		})
	}

	return &dto.CalculatePriceResponse{
		TotalMin:        quote.TotalMin,
		TotalMax:        quote.TotalMax,
		TotalMinTtc:     s.WithTax(quote.TotalMin),
		TotalMaxTtc:     s.WithTax(quote.TotalMax),
		AutomationCount: quote.AutomationCount,
		AutomationIds:   quote.AutomationIds,
		UnknownIds:      quote.UnknownIds,
		Lines:           lines,
	}, nil
}

func (s *pricingService) WithTax(amount float64) float64 {
	return pricing.WithTax(amount, s.taxRate)
}
