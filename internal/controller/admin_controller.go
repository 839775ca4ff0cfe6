// FILE: internal/controller/admin_controller.go
package controller

import (
	"strconv"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/pkg/apperror"
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const adminRole = "admin"

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboardStats(ctx *fiber.Ctx) error

	// Catalog
	GetAllOptions(ctx *fiber.Ctx) error
	CreateOption(ctx *fiber.Ctx) error
	UpdateOption(ctx *fiber.Ctx) error
	DeleteOption(ctx *fiber.Ctx) error

	// Questionnaire
	CreateQuestion(ctx *fiber.Ctx) error
	UpdateQuestion(ctx *fiber.Ctx) error
	DeleteQuestion(ctx *fiber.Ctx) error
	CreateAnswer(ctx *fiber.Ctx) error
	UpdateAnswer(ctx *fiber.Ctx) error
	DeleteAnswer(ctx *fiber.Ctx) error

	// Leads pipeline
	GetLeads(ctx *fiber.Ctx) error
	GetLead(ctx *fiber.Ctx) error
	UpdateLeadStatus(ctx *fiber.Ctx) error

	CleanupSessions(ctx *fiber.Ctx) error

	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service              service.IAdminService
	catalogService       service.ICatalogService
	questionnaireService service.IQuestionnaireService
	leadService          service.ILeadService
	sessionService       service.IConfigurationSessionService
	jwtSecret            string
}

func NewAdminController(
	service service.IAdminService,
	catalogService service.ICatalogService,
	questionnaireService service.IQuestionnaireService,
	leadService service.ILeadService,
	sessionService service.IConfigurationSessionService,
	jwtSecret string,
) IAdminController {
	return &adminController{
		service:              service,
		catalogService:       catalogService,
		questionnaireService: questionnaireService,
		leadService:          leadService,
		sessionService:       sessionService,
		jwtSecret:            jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Use(serverutils.RequireRole(adminRole))

	h.Get("/dashboard", c.GetDashboardStats)

	h.Get("/options", c.GetAllOptions)
	h.Post("/options", c.CreateOption)
	h.Put("/options/:id", c.UpdateOption)
	h.Delete("/options/:id", c.DeleteOption)

	h.Post("/questions", c.CreateQuestion)
	h.Put("/questions/:id", c.UpdateQuestion)
	h.Delete("/questions/:id", c.DeleteQuestion)
	h.Post("/answers", c.CreateAnswer)
	h.Put("/answers/:id", c.UpdateAnswer)
	h.Delete("/answers/:id", c.DeleteAnswer)

	h.Get("/leads", c.GetLeads)
	h.Get("/leads/:id", c.GetLead)
	h.Put("/leads/:id/status", c.UpdateLeadStatus)

	h.Post("/sessions/cleanup", c.CleanupSessions)

	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid %s", name)
	}
	return id, nil
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	stats, err := c.service.GetDashboardStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", stats))
}

func (c *adminController) GetAllOptions(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListAllOptions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("All options", res))
}

func (c *adminController) CreateOption(ctx *fiber.Ctx) error {
	var req dto.CreateOptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.CreateOption(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Option created", res))
}

func (c *adminController) UpdateOption(ctx *fiber.Ctx) error {
	var req dto.UpdateOptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	res, err := c.catalogService.UpdateOption(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Option updated", res))
}

func (c *adminController) DeleteOption(ctx *fiber.Ctx) error {
	if err := c.catalogService.DeleteOption(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Option deleted", nil))
}

func (c *adminController) CreateQuestion(ctx *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionnaireService.CreateQuestion(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Question created", res))
}

func (c *adminController) UpdateQuestion(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.questionnaireService.UpdateQuestion(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Question updated", res))
}

func (c *adminController) DeleteQuestion(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.questionnaireService.DeleteQuestion(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Question deleted", nil))
}

func (c *adminController) CreateAnswer(ctx *fiber.Ctx) error {
	var req dto.CreateAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionnaireService.CreateAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Answer created", res))
}

func (c *adminController) UpdateAnswer(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.questionnaireService.UpdateAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer updated", res))
}

func (c *adminController) DeleteAnswer(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.questionnaireService.DeleteAnswer(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Answer deleted", nil))
}

func (c *adminController) GetLeads(ctx *fiber.Ctx) error {
	var req dto.ListLeadsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("invalid query: %v", err)
	}

	res, err := c.leadService.ListLeads(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Leads", res))
}

func (c *adminController) GetLead(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.leadService.GetLead(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lead detail", res))
}

func (c *adminController) UpdateLeadStatus(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateLeadStatusRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.leadService.UpdateLeadStatus(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lead status updated", res))
}

func (c *adminController) CleanupSessions(ctx *fiber.Ctx) error {
	res, err := c.sessionService.CleanupExpired(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Expired sessions removed", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	logs, err := c.service.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	l, err := c.service.GetLogDetail(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
