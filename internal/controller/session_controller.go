package controller

import (
	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Action(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.IConfigurationSessionService
}

func NewSessionController(service service.IConfigurationSessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("", c.Action)
	h.Get("/:token", c.Show)
	h.Put("/:token", c.Update)
	h.Delete("/:token", c.Delete)
	h.Post("/:token/complete", c.Complete)
}

// Action serves the combined create/save endpoint used by the autosave.
func (c *sessionController) Action(ctx *fiber.Ctx) error {
	var req dto.SessionActionRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	if req.Action == dto.SessionActionCreate {
		res, err := c.service.Create(ctx.Context(), req.Answers)
		if err != nil {
			return err
		}
		return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create session", res))
	}

	res, err := c.service.SaveProgress(ctx.Context(), &dto.SaveSessionRequest{
		Token:   req.Token,
		Answers: req.Answers,
		Status:  req.Status,
		Version: req.Version,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("token"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	var req dto.SaveSessionRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	req.Token = ctx.Params("token")

	res, err := c.service.SaveProgress(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("token")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *sessionController) Complete(ctx *fiber.Ctx) error {
	res, err := c.service.Complete(ctx.Context(), ctx.Params("token"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete session", res))
}
