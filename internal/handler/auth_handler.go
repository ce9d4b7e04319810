package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/middleware"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/service"
	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

// AuthHandler exposes staff authentication endpoints.
type AuthHandler struct {
	service    service.AuthService
	logger     zerolog.Logger
	rateWindow fiber.Handler
}

// NewAuthHandler constructs an auth handler. The rate limiter guards the
// login endpoint only.
func NewAuthHandler(authService service.AuthService, loginLimiter fiber.Handler, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:    authService,
		logger:     logger.With().Str("component", "auth_handler").Logger(),
		rateWindow: loginLimiter,
	}
}

// Register wires public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	if h.rateWindow != nil {
		router.Post("/login", h.rateWindow, h.login)
	} else {
		router.Post("/login", h.login)
	}
	router.Post("/refresh", h.refresh)
}

// RegisterProtected wires routes that require an authenticated staff session.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
	router.Post("/staff", middleware.RequireRole(models.StaffRoleAdmin), h.createStaff)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Login(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid credentials payload")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			return utils.SendError(c, fiber.StatusForbidden, "account disabled")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to authenticate")
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	var payload dto.RefreshRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	tokens, err := h.service.Refresh(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "refresh token required")
		}
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid refresh token")
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			return utils.SendError(c, fiber.StatusForbidden, "account disabled")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("token refresh failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to refresh token")
	}

	return utils.SendSuccess(c, "token refreshed", tokens)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	staffID := userIDFromContext(c)
	if staffID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing authenticated user")
	}

	profile, err := h.service.Profile(c.Context(), staffID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusNotFound, "staff account not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load staff profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *AuthHandler) createStaff(c *fiber.Ctx) error {
	var payload dto.StaffCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	staff, err := h.service.CreateStaff(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid staff payload")
		}
		if errors.Is(err, service.ErrStaffExists) {
			return utils.SendError(c, fiber.StatusConflict, "staff account already exists")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create staff account")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create staff account")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff account created", staff)
}
