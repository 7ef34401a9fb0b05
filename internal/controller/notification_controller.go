package controller

import (
	"space-admin-be/internal/pkg/serverutils"
	"space-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	GetNotifications(ctx *fiber.Ctx) error
	MarkAsRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	service *service.NotificationService
}

func NewNotificationController(service *service.NotificationService) INotificationController {
	return &notificationController{service: service}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/notifications")
	h.Use(serverutils.JwtMiddleware, adminOnly)

	h.Get("/", c.GetNotifications)
	h.Put("/:id/read", c.MarkAsRead)
}

func (c *notificationController) GetNotifications(ctx *fiber.Ctx) error {
	rawId, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(rawId)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	list, err := c.service.List(ctx.Context(), userId, page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Notifications", list))
}

func (c *notificationController) MarkAsRead(ctx *fiber.Ctx) error {
	notificationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification id"))
	}

	if err := c.service.MarkAsRead(ctx.Context(), notificationId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification marked as read", fiber.Map{"id": notificationId}))
}
