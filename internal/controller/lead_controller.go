package controller

import (
	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	SubmitQuote(ctx *fiber.Ctx) error
	SubmitAudit(ctx *fiber.Ctx) error
}

type leadController struct {
	service   service.ILeadService
	jwtSecret string
	limiter   fiber.Handler
}

// NewLeadController takes the rate limiter guarding submissions.
func NewLeadController(service service.ILeadService, jwtSecret string, limiter fiber.Handler) ILeadController {
	return &leadController{
		service:   service,
		jwtSecret: jwtSecret,
		limiter:   limiter,
	}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/leads")
	h.Use(c.limiter)
	h.Use(serverutils.OptionalJwtMiddleware(c.jwtSecret))
	h.Post("/quote", c.SubmitQuote)
	h.Post("/audit", c.SubmitAudit)
}

func (c *leadController) SubmitQuote(ctx *fiber.Ctx) error {
	var req dto.SubmitQuoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.UserId = callerId(ctx)

	res, err := c.service.SubmitQuote(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Quote request received", res))
}

func (c *leadController) SubmitAudit(ctx *fiber.Ctx) error {
	var req dto.SubmitAuditRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.UserId = callerId(ctx)

	res, err := c.service.SubmitAudit(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Audit request received", res))
}

// callerId is nil for anonymous visitors.
func callerId(ctx *fiber.Ctx) *uuid.UUID {
	id, err := uuid.Parse(serverutils.UserIDFromCtx(ctx))
	if err != nil {
		return nil
	}
	return &id
}
