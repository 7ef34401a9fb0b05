package serverutils

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a bound request body.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
		return err
	}
	return nil
}

// JwtMiddleware authenticates a Bearer token and stores user_id, email, and
// role in the request locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing or invalid authorization header"))
	}
	tokenStr := authHeader[7:]

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token claims"))
	}

	if userId, exists := claims["user_id"]; exists {
		ctx.Locals("user_id", userId)
	}
	if email, exists := claims["email"]; exists {
		ctx.Locals("email", email)
	}
	if role, exists := claims["role"]; exists {
		ctx.Locals("role", role)
	}

	return ctx.Next()
}

// ErrorHandlerMiddleware converts panics and unhandled fiber errors into the
// standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
