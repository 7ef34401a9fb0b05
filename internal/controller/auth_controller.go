package controller

import (
	"space-admin-be/internal/dto"
	"space-admin-be/internal/pkg/serverutils"
	"space-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{authService: authService}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.Login)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.authService.LoginAdmin(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}
