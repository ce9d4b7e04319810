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

// VehicleHandler exposes vehicle management endpoints.
type VehicleHandler struct {
	service service.VehicleService
	logger  zerolog.Logger
}

// NewVehicleHandler constructs a vehicle handler.
func NewVehicleHandler(vehicleService service.VehicleService, logger zerolog.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: vehicleService,
		logger:  logger.With().Str("component", "vehicle_handler").Logger(),
	}
}

// Register wires vehicle routes.
func (h *VehicleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Post("/:id/photo", h.uploadPhoto)
	router.Delete("/:id", h.remove)
}

func (h *VehicleHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), dto.VehicleListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		DriverID: parseOptionalID(c.Query("driver_id")),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list vehicles")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list vehicles")
	}

	return utils.SendSuccess(c, "vehicles retrieved", result)
}

func (h *VehicleHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid vehicle id")
	}

	vehicle, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "vehicle not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load vehicle")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load vehicle")
	}

	return utils.SendSuccess(c, "vehicle retrieved", vehicle)
}

func (h *VehicleHandler) create(c *fiber.Ctx) error {
	var payload dto.VehicleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	vehicle, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid vehicle payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create vehicle")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create vehicle")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "vehicle created", vehicle)
}

func (h *VehicleHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid vehicle id")
	}

	var payload dto.VehicleUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	vehicle, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid vehicle payload")
		}
		if errors.Is(err, service.ErrVehicleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "vehicle not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update vehicle")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update vehicle")
	}

	return utils.SendSuccess(c, "vehicle updated", vehicle)
}

func (h *VehicleHandler) uploadPhoto(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid vehicle id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	vehicle, err := h.service.AttachPhoto(c.Context(), id, file, activityActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "vehicle not found")
		}
		if errors.Is(err, service.ErrUploadTooLarge) {
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		}
		if errors.Is(err, service.ErrUploadTypeNotAllowed) {
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file type not allowed")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to upload vehicle photo")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload vehicle photo")
	}

	return utils.SendSuccess(c, "vehicle photo uploaded", vehicle)
}

func (h *VehicleHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid vehicle id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "vehicle not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete vehicle")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete vehicle")
	}

	return utils.SendSuccess(c, "vehicle deleted", nil)
}
