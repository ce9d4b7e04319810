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

// CustomerHandler exposes customer management endpoints.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler constructs a customer handler.
func NewCustomerHandler(customerService service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: customerService,
		logger:  logger.With().Str("component", "customer_handler").Logger(),
	}
}

// Register wires customer routes.
func (h *CustomerHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *CustomerHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), dto.CustomerListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list customers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list customers")
	}

	return utils.SendSuccess(c, "customers retrieved", result)
}

func (h *CustomerHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	customer, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "customer not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load customer")
	}

	return utils.SendSuccess(c, "customer retrieved", customer)
}

func (h *CustomerHandler) create(c *fiber.Ctx) error {
	var payload dto.CustomerCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	customer, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid customer payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create customer")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "customer created", customer)
}

func (h *CustomerHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	var payload dto.CustomerUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	customer, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid customer payload")
		}
		if errors.Is(err, service.ErrCustomerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "customer not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update customer")
	}

	return utils.SendSuccess(c, "customer updated", customer)
}

func (h *CustomerHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "customer not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete customer")
	}

	return utils.SendSuccess(c, "customer deleted", nil)
}
