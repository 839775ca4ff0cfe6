package controller

import (
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionnaireController interface {
	RegisterRoutes(r fiber.Router)
	GetQuestionsWithAnswers(ctx *fiber.Ctx) error
}

type questionnaireController struct {
	service service.IQuestionnaireService
}

func NewQuestionnaireController(service service.IQuestionnaireService) IQuestionnaireController {
	return &questionnaireController{service: service}
}

func (c *questionnaireController) RegisterRoutes(r fiber.Router) {
	r.Get("/questions-with-answers", c.GetQuestionsWithAnswers)
}

func (c *questionnaireController) GetQuestionsWithAnswers(ctx *fiber.Ctx) error {
	res, err := c.service.GetQuestionsWithAnswers(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get questionnaire", res))
}
