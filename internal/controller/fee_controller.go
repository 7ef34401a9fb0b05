package controller

import (
	"space-admin-be/internal/dto"
	"space-admin-be/internal/pkg/serverutils"
	"space-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeeController interface {
	RegisterRoutes(r fiber.Router)
	GetSettings(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
}

type feeController struct {
	service service.IFeeService
}

func NewFeeController(service service.IFeeService) IFeeController {
	return &feeController{service: service}
}

func (c *feeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/settings/fees")
	h.Use(serverutils.JwtMiddleware, adminOnly)

	h.Get("/", c.GetSettings)
	h.Put("/", c.UpdateSettings)
	h.Get("/preview", c.Preview)
}

func (c *feeController) GetSettings(ctx *fiber.Ctx) error {
	settings, err := c.service.GetSettings(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Fee settings", settings))
}

func (c *feeController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateFeeSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	settings, err := c.service.UpdateSettings(ctx.Context(), &req, actorEmail(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Fee settings updated", settings))
}

func (c *feeController) Preview(ctx *fiber.Ctx) error {
	baseAmount := ctx.QueryFloat("base_amount", 0)
	if baseAmount <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "base_amount must be greater than zero"))
	}

	preview, err := c.service.Preview(ctx.Context(), baseAmount)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Fee preview", preview))
}
