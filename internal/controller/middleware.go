package controller

import (
	"space-admin-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// adminOnly restricts a route group to tokens carrying the admin role. It
// runs after serverutils.JwtMiddleware, which authenticates the token and
// fills the request locals.
func adminOnly(ctx *fiber.Ctx) error {
	role, ok := ctx.Locals("role").(string)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Role missing"))
	}
	if role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}
	return ctx.Next()
}

// actorEmail identifies the operator for audit records, falling back to the
// user id when the token carries no email claim.
func actorEmail(ctx *fiber.Ctx) string {
	if email, ok := ctx.Locals("email").(string); ok && email != "" {
		return email
	}
	if userId, ok := ctx.Locals("user_id").(string); ok {
		return userId
	}
	return "unknown"
}
