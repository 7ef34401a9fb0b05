package controller

import (
	"net/http/httptest"
	"testing"

	"space-admin-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func adminGuardedApp() *fiber.App {
	app := fiber.New()
	h := app.Group("/admin")
	h.Use(serverutils.JwtMiddleware, adminOnly)
	h.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"actor": actorEmail(ctx)})
	})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test_secret"))
	assert.NoError(t, err)
	return signed
}

func TestAdminOnly_RejectsWithoutToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := adminGuardedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOnly_RejectsNonAdminRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := adminGuardedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"user_id": "u-1",
		"email":   "guest@example.com",
		"role":    "user",
	}))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminOnly_RejectsTokenWithoutRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := adminGuardedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"user_id": "u-1",
	}))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminOnly_AdmitsAdminAndExposesActor(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := adminGuardedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"user_id": "u-admin",
		"email":   "ops@example.com",
		"role":    "admin",
	}))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestActorEmail_FallsBackToUserId(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		ctx.Locals("user_id", "u-42")
		return ctx.SendString(actorEmail(ctx))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
