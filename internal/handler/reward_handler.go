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

// RewardHandler exposes reward catalogue management endpoints.
type RewardHandler struct {
	service service.RewardService
	logger  zerolog.Logger
}

// NewRewardHandler constructs a reward handler.
func NewRewardHandler(rewardService service.RewardService, logger zerolog.Logger) *RewardHandler {
	return &RewardHandler{
		service: rewardService,
		logger:  logger.With().Str("component", "reward_handler").Logger(),
	}
}

// Register wires reward routes.
func (h *RewardHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Post("/:id/image", h.uploadImage)
	router.Delete("/:id", h.remove)
}

func (h *RewardHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), dto.RewardListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list rewards")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list rewards")
	}

	return utils.SendSuccess(c, "rewards retrieved", result)
}

func (h *RewardHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid reward id")
	}

	reward, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "reward not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load reward")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load reward")
	}

	return utils.SendSuccess(c, "reward retrieved", reward)
}

func (h *RewardHandler) create(c *fiber.Ctx) error {
	var payload dto.RewardCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	reward, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid reward payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create reward")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create reward")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reward created", reward)
}

func (h *RewardHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid reward id")
	}

	var payload dto.RewardUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	reward, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid reward payload")
		}
		if errors.Is(err, service.ErrRewardNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "reward not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update reward")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update reward")
	}

	return utils.SendSuccess(c, "reward updated", reward)
}

func (h *RewardHandler) uploadImage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid reward id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	reward, err := h.service.AttachImage(c.Context(), id, file, activityActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "reward not found")
		}
		if errors.Is(err, service.ErrUploadTooLarge) {
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		}
		if errors.Is(err, service.ErrUploadTypeNotAllowed) {
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file type not allowed")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to upload reward image")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload reward image")
	}

	return utils.SendSuccess(c, "reward image uploaded", reward)
}

func (h *RewardHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid reward id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "reward not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete reward")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete reward")
	}

	return utils.SendSuccess(c, "reward deleted", nil)
}
