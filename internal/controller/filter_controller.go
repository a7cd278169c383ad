package controller

import (
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/serverutils"
	"promo-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFilterController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
	Merge(ctx *fiber.Ctx) error
	Replace(ctx *fiber.Ctx) error
	ResetAll(ctx *fiber.Ctx) error
	ResetField(ctx *fiber.Ctx) error
}

type filterController struct {
	filterService service.IFilterService
}

func NewFilterController(filterService service.IFilterService) IFilterController {
	return &filterController{
		filterService: filterService,
	}
}

func (c *filterController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Get("filters", c.Current)
	h.Patch("filters", c.Merge)
	h.Put("filters", c.Replace)
	h.Delete("filters/:field", c.ResetField)
	h.Delete("filters", c.ResetAll)
}

func (c *filterController) Current(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get filters", c.filterService.Current()))
}

// Merge is the UI-control path: one changed field at a time, untouched
// fields preserved.
func (c *filterController) Merge(ctx *fiber.Ctx) error {
	var partial dto.FilterSpec
	if err := ctx.BodyParser(&partial); err != nil {
		return serverutils.NewBadRequest("Invalid filter payload: %s", err.Error())
	}

	next := c.filterService.Merge(partial)
	return ctx.JSON(serverutils.SuccessResponse("Success merge filters", next))
}

func (c *filterController) Replace(ctx *fiber.Ctx) error {
	var spec dto.FilterSpec
	if err := ctx.BodyParser(&spec); err != nil {
		return serverutils.NewBadRequest("Invalid filter payload: %s", err.Error())
	}

	next := c.filterService.Replace(spec)
	return ctx.JSON(serverutils.SuccessResponse("Success replace filters", next))
}

func (c *filterController) ResetAll(ctx *fiber.Ctx) error {
	next := c.filterService.ResetAll()
	return ctx.JSON(serverutils.SuccessResponse("Success reset filters", next))
}

func (c *filterController) ResetField(ctx *fiber.Ctx) error {
	field := ctx.Params("field")

	next, err := c.filterService.ResetField(field)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reset filter field", next))
}
