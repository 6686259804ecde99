// FILE: internal/controller/auth_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"legal-agent-be/internal/dto"
	"legal-agent-be/internal/entity"
	"legal-agent-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	SetMode(ctx *fiber.Ctx) error
	GetMode(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	validate *validator.Validate
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/login", c.LoginPage)
	r.Post("/login", c.Login)
	r.Get("/logout", auth, c.Logout)
	r.Post("/set_mode/:mode", auth, c.SetMode)
	r.Get("/get_mode", auth, c.GetMode)
}

func (c *authController) LoginPage(ctx *fiber.Ctx) error {
	return ctx.SendFile("./web/login.html")
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Password is required",
		})
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Invalid password",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    res,
	})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	sessionID, _ := ctx.Locals("session_id").(string)
	c.service.Logout(ctx.Context(), sessionID)
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (c *authController) SetMode(ctx *fiber.Ctx) error {
	sessionID, _ := ctx.Locals("session_id").(string)
	mode := entity.Mode(ctx.Params("mode"))

	if err := c.service.SetMode(ctx.Context(), sessionID, mode); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrNoSession) {
			status = fiber.StatusUnauthorized
		}
		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Mode updated",
		"data":    fiber.Map{"mode": string(mode)},
	})
}

func (c *authController) GetMode(ctx *fiber.Ctx) error {
	sessionID, _ := ctx.Locals("session_id").(string)
	mode, err := c.service.GetMode(ctx.Context(), sessionID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"mode": string(mode)},
	})
}
