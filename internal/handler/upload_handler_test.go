package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/handler"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
	"github.com/saqerservice/saqer-admin-api/internal/service"
)

type stubStorage struct {
	url string
}

func (s stubStorage) Upload(_ context.Context, _ string, reader io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, reader)
	return s.url, nil
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newUploadApp(t *testing.T, maxSizeMB int) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:uploadhandler?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Upload{}))

	uploadService := service.NewUploadService(
		stubStorage{url: "https://cdn.example.com/asset.png"},
		repository.NewUploadRepository(db),
		maxSizeMB,
		zerolog.Nop(),
	)

	app := fiber.New()
	group := app.Group("/api/v1/admin/uploads", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(3))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	handler.NewUploadHandler(uploadService, zerolog.Nop()).Register(group)
	return app
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadHandlerStoresPNG(t *testing.T) {
	app := newUploadApp(t, 10)

	body, contentType := multipartBody(t, "license.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestUploadHandlerRejectsDisallowedType(t *testing.T) {
	app := newUploadApp(t, 10)

	body, contentType := multipartBody(t, "notes.txt", []byte("plain text content"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()
}

func TestUploadHandlerRequiresFile(t *testing.T) {
	app := newUploadApp(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
