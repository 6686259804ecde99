// FILE: internal/pkg/serverutils/auth_middleware.go
package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"legal-agent-be/internal/repository/memory"
)

// AuthMiddleware gates a route on a valid session token: the JWT must parse
// and the referenced server-side session must still exist and be logged in.
// The session id and mode land in ctx.Locals for the handlers downstream.
func AuthMiddleware(sessions *memory.SessionRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid claims"})
		}

		sessionID, _ := claims["session_id"].(string)
		session, found := sessions.Get(sessionID)
		if !found || !session.LoggedIn {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Session expired"})
		}

		ctx.Locals("session_id", session.ID)
		ctx.Locals("mode", string(session.Mode))
		return ctx.Next()
	}
}
