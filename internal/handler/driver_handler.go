package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/service"
	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

// DriverHandler exposes driver management endpoints.
type DriverHandler struct {
	service service.DriverService
	logger  zerolog.Logger
}

// NewDriverHandler constructs a driver handler.
func NewDriverHandler(driverService service.DriverService, logger zerolog.Logger) *DriverHandler {
	return &DriverHandler{
		service: driverService,
		logger:  logger.With().Str("component", "driver_handler").Logger(),
	}
}

// Register wires driver routes.
func (h *DriverHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/status", h.setStatus)
	router.Post("/:id/license", h.uploadLicense)
	router.Delete("/:id", h.remove)
}

func (h *DriverHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), dto.DriverListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list drivers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list drivers")
	}

	return utils.SendSuccess(c, "drivers retrieved", result)
}

func (h *DriverHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid driver id")
	}

	driver, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "driver not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load driver")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load driver")
	}

	return utils.SendSuccess(c, "driver retrieved", driver)
}

func (h *DriverHandler) create(c *fiber.Ctx) error {
	var payload dto.DriverCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	driver, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid driver payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create driver")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create driver")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "driver created", driver)
}

func (h *DriverHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid driver id")
	}

	var payload dto.DriverUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	driver, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid driver payload")
		}
		if errors.Is(err, service.ErrDriverNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "driver not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update driver")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update driver")
	}

	return utils.SendSuccess(c, "driver updated", driver)
}

func (h *DriverHandler) setStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid driver id")
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	driver, err := h.service.SetStatus(c.Context(), id, payload.Status, activityActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "driver not found")
		}
		if strings.Contains(err.Error(), "unknown driver status") {
			return utils.SendError(c, fiber.StatusBadRequest, "unknown driver status")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update driver status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update driver status")
	}

	return utils.SendSuccess(c, "driver status updated", driver)
}

func (h *DriverHandler) uploadLicense(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid driver id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	driver, err := h.service.AttachLicense(c.Context(), id, file, activityActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "driver not found")
		}
		if errors.Is(err, service.ErrUploadTooLarge) {
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		}
		if errors.Is(err, service.ErrUploadTypeNotAllowed) {
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file type not allowed")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to upload driver license")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload driver license")
	}

	return utils.SendSuccess(c, "driver license uploaded", driver)
}

func (h *DriverHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid driver id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "driver not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete driver")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete driver")
	}

	return utils.SendSuccess(c, "driver deleted", nil)
}
