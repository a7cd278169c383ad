package controller

import (
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/serverutils"
	"promo-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Interpret(ctx *fiber.Ctx) error
}

type queryController struct {
	navigationService service.INavigationService
}

func NewQueryController(navigationService service.INavigationService) IQueryController {
	return &queryController{
		navigationService: navigationService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Post("query", c.Interpret)
}

// Interpret runs the free-text query through the interpreter. On a match the
// navigation is already applied by the time the response is written; a
// non-match returns matched=false and leaves the dashboard untouched.
func (c *queryController) Interpret(ctx *fiber.Ctx) error {
	var req dto.InterpretRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid query payload: %s", err.Error())
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	result := c.navigationService.Interpret(req.Text)
	return ctx.JSON(serverutils.SuccessResponse("Success interpret query", result))
}
