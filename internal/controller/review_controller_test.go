package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"legal-agent-be/internal/dto"
	"legal-agent-be/pkg/pipeline"
)

type mockReviewService struct {
	lastReq *dto.UploadRequest
	result  *dto.UploadResult
	err     error
}

func (m *mockReviewService) ProcessUpload(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// passthroughAuth stands in for the session middleware.
func passthroughAuth(mode string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals("session_id", "sess-test")
		ctx.Locals("mode", mode)
		return ctx.Next()
	}
}

func newUploadApp(t *testing.T, svc *mockReviewService, mode string) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewReviewController(svc, t.TempDir()).RegisterRoutes(app, passthroughAuth(mode))
	return app
}

func multipartUpload(t *testing.T, filename, fileContent, userEmail string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("contract", filename)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(part, fileContent)
	}
	if userEmail != "" {
		writer.WriteField("user_email", userEmail)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestUploadMissingFile(t *testing.T) {
	svc := &mockReviewService{}
	app := newUploadApp(t, svc, "legal")

	body, contentType := multipartUpload(t, "", "", "user@example.com")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Missing file or email", out["message"])
	assert.Nil(t, svc.lastReq, "pipeline must not run without a file")
}

func TestUploadMissingEmail(t *testing.T) {
	svc := &mockReviewService{}
	app := newUploadApp(t, svc, "legal")

	body, contentType := multipartUpload(t, "contract.txt", "between A and B", "")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, svc.lastReq, "pipeline must not run without an email")
}

func TestUploadInvalidEmail(t *testing.T) {
	svc := &mockReviewService{}
	app := newUploadApp(t, svc, "legal")

	body, contentType := multipartUpload(t, "contract.txt", "between A and B", "not-an-email")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, svc.lastReq)
}

func TestUploadSuccess(t *testing.T) {
	svc := &mockReviewService{result: &dto.UploadResult{
		Message: "Contract processed! Check your email (user@example.com).",
	}}
	app := newUploadApp(t, svc, "creator")

	body, contentType := multipartUpload(t, "contract.txt", "between Acme Co and B", "user@example.com")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Contract processed! Check your email (user@example.com).", out["message"])

	// The service saw the stored file and the session's mode.
	assert.NotNil(t, svc.lastReq)
	assert.Equal(t, "creator", svc.lastReq.Mode)
	assert.Equal(t, "user@example.com", svc.lastReq.UserEmail)
	data, err := os.ReadFile(svc.lastReq.FilePath)
	assert.NoError(t, err)
	assert.Equal(t, "between Acme Co and B", string(data))
}

func TestUploadPipelineTimeout(t *testing.T) {
	svc := &mockReviewService{err: &pipeline.TimeoutError{Ceiling: 15 * time.Minute}}
	app := newUploadApp(t, svc, "legal")

	body, contentType := multipartUpload(t, "contract.txt", "between A and B", "user@example.com")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "Error: pipeline run exceeded")
}
