package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled indicates the staff account has been disabled.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrInvalidRefreshToken indicates the refresh token failed verification.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrStaffExists indicates an account with the email already exists.
	ErrStaffExists = errors.New("staff account already exists")
)

// AuthConfig carries the token signing material and lifetimes.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AuthService authenticates staff members and issues JWT token pairs.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenPairResponse, error)
	CreateStaff(ctx context.Context, payload dto.StaffCreateRequest, actor ActivityActor) (dto.StaffResponse, error)
	Profile(ctx context.Context, id uint) (dto.StaffResponse, error)
	EnsureDefaultAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo      repository.StaffRepository
	cfg       AuthConfig
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo repository.StaffRepository, cfg AuthConfig, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AuthService {
	return &authService{
		repo:      repo,
		cfg:       cfg,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	staff, err := s.repo.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if staff.Disabled {
		return dto.LoginResponse{}, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(staff)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, staff.ID, now); err != nil {
		s.logger.Warn().Err(err).Uint("staff_id", staff.ID).Msg("failed to update last login")
	}
	staff.LastLoginAt = &now

	s.logger.Info().Uint("staff_id", staff.ID).Str("role", staff.Role).Msg("staff logged in")

	return dto.LoginResponse{
		Tokens: tokens,
		Staff:  dto.NewStaffResponse(staff),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenPairResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenPairResponse{}, err
	}

	token, err := jwt.Parse(payload.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return []byte(s.cfg.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	subject, ok := claims["sub"].(float64)
	if !ok || subject <= 0 {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	staff, err := s.repo.GetByID(ctx, uint(subject))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenPairResponse{}, ErrInvalidRefreshToken
		}
		return dto.TokenPairResponse{}, err
	}

	if staff.Disabled {
		return dto.TokenPairResponse{}, ErrAccountDisabled
	}

	return s.issueTokens(staff)
}

func (s *authService) CreateStaff(ctx context.Context, payload dto.StaffCreateRequest, actor ActivityActor) (dto.StaffResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StaffResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.StaffResponse{}, ErrStaffExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.StaffResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.StaffResponse{}, err
	}

	role := strings.ToLower(strings.TrimSpace(payload.Role))
	if role == "" {
		role = models.StaffRoleOperator
	}

	staff := models.StaffUser{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.Create(ctx, &staff); err != nil {
		return dto.StaffResponse{}, err
	}

	if s.activity != nil {
		entityID := staff.ID
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "create",
			EntityType: "staff",
			EntityID:   &entityID,
			Metadata:   map[string]interface{}{"role": role},
		}); err != nil {
			s.logger.Warn().Err(err).Uint("staff_id", staff.ID).Msg("failed to record staff activity")
		}
	}

	return dto.NewStaffResponse(staff), nil
}

func (s *authService) Profile(ctx context.Context, id uint) (dto.StaffResponse, error) {
	staff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffResponse{}, ErrInvalidCredentials
		}
		return dto.StaffResponse{}, err
	}

	return dto.NewStaffResponse(staff), nil
}

// EnsureDefaultAdmin seeds an admin account on an empty staff table so the
// dashboard is reachable after a fresh deploy.
func (s *authService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := models.StaffUser{
		Name:         "Administrator",
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         models.StaffRoleAdmin,
	}

	if err := s.repo.Create(ctx, &staff); err != nil {
		return err
	}

	s.logger.Info().Str("email", staff.Email).Msg("seeded default admin account")
	return nil
}

func (s *authService) issueTokens(staff models.StaffUser) (dto.TokenPairResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.AccessTTL)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  staff.ID,
		"role": staff.Role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})

	accessToken, err := access.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return dto.TokenPairResponse{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": staff.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.RefreshTTL).Unix(),
	})

	refreshToken, err := refresh.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return dto.TokenPairResponse{}, err
	}

	return dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
