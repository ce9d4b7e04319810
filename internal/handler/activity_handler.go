package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/repository"
	"github.com/saqerservice/saqer-admin-api/internal/service"
	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

// ActivityHandler exposes the admin audit trail.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(activityService service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: activityService,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires activity log routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.ActivityLogFilter{
		Page:       page,
		PageSize:   pageSize,
		ActorID:    parseOptionalID(c.Query("actor_id")),
		Action:     strings.TrimSpace(c.Query("action")),
		EntityType: strings.TrimSpace(c.Query("entity_type")),
	}

	entries, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity log")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity log")
	}

	return utils.SendSuccess(c, "activity log retrieved", fiber.Map{
		"items": entries,
		"total": total,
	})
}
