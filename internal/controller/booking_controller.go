package controller

import (
	"errors"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/pkg/serverutils"
	"space-admin-be/internal/service"
	"space-admin-be/pkg/admin/refund"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	GetBookings(ctx *fiber.Ctx) error
	GetBookingDetail(ctx *fiber.Ctx) error
	GetBookingHistory(ctx *fiber.Ctx) error
	UpdateBookingStatus(ctx *fiber.Ctx) error
	ExecuteRefund(ctx *fiber.Ctx) error
}

type bookingController struct {
	service service.IBookingService
}

func NewBookingController(service service.IBookingService) IBookingController {
	return &bookingController{service: service}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/bookings")
	h.Use(serverutils.JwtMiddleware, adminOnly)

	h.Get("/", c.GetBookings)
	h.Get("/:id", c.GetBookingDetail)
	h.Get("/:id/history", c.GetBookingHistory)
	h.Put("/:id/status", c.UpdateBookingStatus)
	h.Post("/:id/refund", c.ExecuteRefund)
}

func (c *bookingController) GetBookings(ctx *fiber.Ctx) error {
	var req dto.BookingListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	bookings, total, err := c.service.GetBookings(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking list", fiber.Map{
		"items": bookings,
		"total": total,
	}))
}

func (c *bookingController) GetBookingDetail(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	detail, err := c.service.GetBookingDetail(ctx.Context(), bookingId)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Booking not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking detail", detail))
}

func (c *bookingController) GetBookingHistory(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	mods, err := c.service.GetModifications(ctx.Context(), bookingId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking history", mods))
}

func (c *bookingController) UpdateBookingStatus(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	var req dto.UpdateBookingStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.service.UpdateStatus(ctx.Context(), bookingId, &req, actorEmail(ctx)); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Booking not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking status updated", fiber.Map{"status": req.Status}))
}

func (c *bookingController) ExecuteRefund(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid booking id"))
	}

	var req dto.ExecuteRefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.ExecuteRefund(ctx.Context(), bookingId, &req, actorEmail(ctx))
	if err != nil {
		switch {
		case errors.Is(err, refund.ErrRefundInFlight):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		case errors.Is(err, refund.ErrBookingNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, refund.ErrNoPaymentReference), errors.Is(err, refund.ErrInvalidRequest):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund executed", res))
}
