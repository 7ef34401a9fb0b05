package controller

import (
	"errors"
	"fmt"
	"time"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/pkg/serverutils"
	"space-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	GetSummary(ctx *fiber.Ctx) error
	GetReport(ctx *fiber.Ctx) error
	ExportCSV(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/reports")
	h.Use(serverutils.JwtMiddleware, adminOnly)

	h.Get("/", c.GetReport)
	h.Get("/summary", c.GetSummary)
	h.Get("/export", c.ExportCSV)
}

func (c *reportController) GetSummary(ctx *fiber.Ctx) error {
	var req dto.ReportRangeRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	summary, err := c.service.GetSummary(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Commission summary", summary))
}

func (c *reportController) GetReport(ctx *fiber.Ctx) error {
	var req dto.ReportRangeRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	report, err := c.service.GetReport(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Commission report", report))
}

func (c *reportController) ExportCSV(ctx *fiber.Ctx) error {
	var req dto.ReportRangeRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	filename := fmt.Sprintf("commission-report-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := c.service.ExportCSV(ctx.Context(), &req, ctx.Response().BodyWriter()); err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return nil
}
