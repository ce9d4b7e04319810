package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/service"
	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

// UploadHandler exposes the generic document upload endpoint.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(uploadService service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: uploadService,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register wires upload routes.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("", h.upload)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	var staffID *uint
	if id := userIDFromContext(c); id != 0 {
		staffID = &id
	}

	result, err := h.service.Upload(c.Context(), file, staffID)
	if err != nil {
		if errors.Is(err, service.ErrUploadTooLarge) {
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		}
		if errors.Is(err, service.ErrUploadTypeNotAllowed) {
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file type not allowed")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to store upload")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store upload")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "file uploaded", result)
}
