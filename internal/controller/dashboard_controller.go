package controller

import (
	"context"

	"promo-insights-be/internal/pkg/serverutils"
	"promo-insights-be/internal/repository/memory"
	"promo-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	View(ctx *fiber.Ctx) error
	FilterOptions(ctx *fiber.Ctx) error
	Schema(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type dashboardController struct {
	dashboardService service.IDashboardService
	exportService    service.IExportService
	datasetRepo      memory.IDatasetRepository
}

func NewDashboardController(
	dashboardService service.IDashboardService,
	exportService service.IExportService,
	datasetRepo memory.IDatasetRepository,
) IDashboardController {
	return &dashboardController{
		dashboardService: dashboardService,
		exportService:    exportService,
		datasetRepo:      datasetRepo,
	}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Get("views/:view", c.View)
	h.Get("filter-options", c.FilterOptions)
	h.Get("schema", c.Schema)
	h.Post("reload", c.Reload)
	h.Get("export", c.Export)
}

func (c *dashboardController) View(ctx *fiber.Ctx) error {
	view := ctx.Params("view")
	sortOrder := ctx.Query("sort")
	limit := ctx.QueryInt("limit", 0)

	payload, err := c.dashboardService.View(view, sortOrder, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get view", payload))
}

func (c *dashboardController) FilterOptions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get filter options", c.dashboardService.FilterOptions()))
}

func (c *dashboardController) Schema(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get schema", c.dashboardService.Schema()))
}

func (c *dashboardController) Reload(ctx *fiber.Ctx) error {
	n, err := c.datasetRepo.Load(context.Background())
	if err != nil {
		return serverutils.NewBadRequest("Dataset reload failed: %s", err.Error())
	}
	c.dashboardService.InvalidateCache()

	return ctx.JSON(serverutils.SuccessResponse("Success reload dataset", fiber.Map{"records": n}))
}

func (c *dashboardController) Export(ctx *fiber.Ctx) error {
	csv := c.exportService.ExportFiltered()
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="promotions_filtered.csv"`)
	return ctx.SendString(csv)
}
