package controller

import (
	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOptionController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type optionController struct {
	service service.ICatalogService
}

func NewOptionController(service service.ICatalogService) IOptionController {
	return &optionController{service: service}
}

func (c *optionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/options")
	h.Get("", c.GetAll)
	h.Get("/:id", c.Show)
}

func (c *optionController) GetAll(ctx *fiber.Ctx) error {
	var req dto.ListOptionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("invalid query: %v", err)
	}

	res, err := c.service.ListOptions(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get options", res))
}

func (c *optionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetOption(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show option", res))
}
