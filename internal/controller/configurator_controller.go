package controller

import (
	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConfiguratorController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
	CalculatePrice(ctx *fiber.Ctx) error
}

type configuratorController struct {
	recommendationService service.IRecommendationService
	pricingService        service.IPricingService
}

func NewConfiguratorController(
	recommendationService service.IRecommendationService,
	pricingService service.IPricingService,
) IConfiguratorController {
	return &configuratorController{
		recommendationService: recommendationService,
		pricingService:        pricingService,
	}
}

func (c *configuratorController) RegisterRoutes(r fiber.Router) {
	r.Post("/recommendations", c.Recommend)
	r.Post("/calculate-price", c.CalculatePrice)
}

func (c *configuratorController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.recommendationService.Recommend(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute recommendations", res))
}

func (c *configuratorController) CalculatePrice(ctx *fiber.Ctx) error {
	var req dto.CalculatePriceRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.pricingService.CalculatePrice(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success calculate price", res))
}
