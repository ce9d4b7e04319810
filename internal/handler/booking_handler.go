package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/service"
	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

// BookingHandler exposes booking management endpoints.
type BookingHandler struct {
	service service.BookingService
	logger  zerolog.Logger
}

// NewBookingHandler constructs a booking handler.
func NewBookingHandler(bookingService service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		service: bookingService,
		logger:  logger.With().Str("component", "booking_handler").Logger(),
	}
}

// Register wires booking routes.
func (h *BookingHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/status", h.updateStatus)
	router.Delete("/:id", h.remove)
}

func (h *BookingHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.BookingListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid from timestamp")
		}
		req.From = &parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid to timestamp")
		}
		req.To = &parsed
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list bookings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list bookings")
	}

	return utils.SendSuccess(c, "bookings retrieved", result)
}

func (h *BookingHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "booking not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load booking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load booking")
	}

	return utils.SendSuccess(c, "booking retrieved", booking)
}

func (h *BookingHandler) create(c *fiber.Ctx) error {
	var payload dto.BookingCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid booking payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create booking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create booking")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "booking created", booking)
}

func (h *BookingHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	var payload dto.BookingUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid booking payload")
		}
		if errors.Is(err, service.ErrBookingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "booking not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update booking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update booking")
	}

	return utils.SendSuccess(c, "booking updated", booking)
}

func (h *BookingHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	var payload dto.BookingStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.UpdateStatus(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid status payload")
		}
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			return utils.SendError(c, fiber.StatusConflict, "invalid booking status transition")
		}
		if errors.Is(err, service.ErrBookingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "booking not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update booking status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update booking status")
	}

	return utils.SendSuccess(c, "booking status updated", booking)
}

func (h *BookingHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "booking not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete booking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete booking")
	}

	return utils.SendSuccess(c, "booking deleted", nil)
}
