// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware keeps a panicking handler from taking the process
// down; every path must return a structured response.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": fmt.Sprintf("Internal error: %v", r),
				})
			}
		}()
		return ctx.Next()
	}
}
