// FILE: internal/controller/review_controller.go
package controller

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"legal-agent-be/internal/dto"
	"legal-agent-be/internal/service"
	"legal-agent-be/pkg/pipeline"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Upload(ctx *fiber.Ctx) error
}

type reviewController struct {
	service   service.IReviewService
	validate  *validator.Validate
	uploadDir string
}

func NewReviewController(service service.IReviewService, uploadDir string) IReviewController {
	return &reviewController{
		service:   service,
		validate:  validator.New(),
		uploadDir: uploadDir,
	}
}

func (c *reviewController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/", auth, c.Index)
	r.Post("/upload", auth, c.Upload)
}

func (c *reviewController) Index(ctx *fiber.Ctx) error {
	return ctx.SendFile("./web/index.html")
}

func (c *reviewController) Upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("contract")
	userEmail := ctx.FormValue("user_email")

	// Missing inputs never reach the pipeline.
	if err != nil || file == nil || userEmail == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing file or email",
		})
	}

	req := &dto.UploadRequest{
		FileName:  file.Filename,
		UserEmail: userEmail,
		Mode:      modeFromLocals(ctx),
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email address",
		})
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not store upload",
		})
	}
	// Namespace the stored file so simultaneous uploads never collide.
	req.FilePath = filepath.Join(c.uploadDir, uuid.NewString()+"_"+filepath.Base(file.Filename))
	if err := ctx.SaveFile(file, req.FilePath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not store upload",
		})
	}

	result, err := c.service.ProcessUpload(ctx.Context(), req)
	if err != nil {
		var timeoutErr *pipeline.TimeoutError
		if errors.As(err, &timeoutErr) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Error: " + timeoutErr.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error: " + err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": result.Message,
	})
}

func modeFromLocals(ctx *fiber.Ctx) string {
	if mode, ok := ctx.Locals("mode").(string); ok && mode != "" {
		return mode
	}
	return "legal"
}
