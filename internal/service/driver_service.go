package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

// ErrDriverNotFound indicates the driver does not exist.
var ErrDriverNotFound = errors.New("driver not found")

// DriverService orchestrates admin driver management use cases.
type DriverService interface {
	List(ctx context.Context, req dto.DriverListRequest) (dto.DriverListResponse, error)
	Get(ctx context.Context, id uint) (dto.DriverResponse, error)
	Create(ctx context.Context, payload dto.DriverCreateRequest, actor ActivityActor) (dto.DriverResponse, error)
	Update(ctx context.Context, id uint, payload dto.DriverUpdateRequest, actor ActivityActor) (dto.DriverResponse, error)
	SetStatus(ctx context.Context, id uint, status string, actor ActivityActor) (dto.DriverResponse, error)
	AttachLicense(ctx context.Context, id uint, file *multipart.FileHeader, actor ActivityActor) (dto.DriverResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type driverService struct {
	repo      repository.DriverRepository
	uploads   UploadService
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewDriverService constructs the driver service.
func NewDriverService(repo repository.DriverRepository, uploads UploadService, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) DriverService {
	return &driverService{
		repo:      repo,
		uploads:   uploads,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "driver_service").Logger(),
	}
}

func (s *driverService) List(ctx context.Context, req dto.DriverListRequest) (dto.DriverListResponse, error) {
	drivers, total, err := s.repo.List(ctx, repository.DriverFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   strings.TrimSpace(req.Search),
		Status:   strings.TrimSpace(req.Status),
	})
	if err != nil {
		return dto.DriverListResponse{}, err
	}

	items := make([]dto.DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		items = append(items, dto.NewDriverResponse(driver))
	}

	return dto.DriverListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *driverService) Get(ctx context.Context, id uint) (dto.DriverResponse, error) {
	driver, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DriverResponse{}, ErrDriverNotFound
		}
		return dto.DriverResponse{}, err
	}

	return dto.NewDriverResponse(driver), nil
}

func (s *driverService) Create(ctx context.Context, payload dto.DriverCreateRequest, actor ActivityActor) (dto.DriverResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DriverResponse{}, err
	}

	driver := models.Driver{
		Name:          strings.TrimSpace(payload.Name),
		Email:         strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:         strings.TrimSpace(payload.Phone),
		LicenseNumber: strings.TrimSpace(payload.LicenseNumber),
		Status:        models.DriverStatusPending,
	}

	if err := s.repo.Create(ctx, &driver); err != nil {
		return dto.DriverResponse{}, err
	}

	s.record(ctx, actor, "create", driver.ID, nil)

	return dto.NewDriverResponse(driver), nil
}

func (s *driverService) Update(ctx context.Context, id uint, payload dto.DriverUpdateRequest, actor ActivityActor) (dto.DriverResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DriverResponse{}, err
	}

	updates := make(map[string]interface{})
	changed := make([]string, 0)

	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
		changed = append(changed, "name")
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
		changed = append(changed, "email")
	}
	if payload.Phone != nil {
		updates["phone"] = strings.TrimSpace(*payload.Phone)
		changed = append(changed, "phone")
	}
	if payload.LicenseNumber != nil {
		updates["license_number"] = strings.TrimSpace(*payload.LicenseNumber)
		changed = append(changed, "license_number")
	}
	if payload.Rating != nil {
		updates["rating"] = *payload.Rating
		changed = append(changed, "rating")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	driver, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DriverResponse{}, ErrDriverNotFound
		}
		return dto.DriverResponse{}, err
	}

	s.record(ctx, actor, "update", driver.ID, map[string]interface{}{"fields": changed})

	return dto.NewDriverResponse(driver), nil
}

func (s *driverService) SetStatus(ctx context.Context, id uint, status string, actor ActivityActor) (dto.DriverResponse, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	switch normalized {
	case models.DriverStatusPending, models.DriverStatusApproved, models.DriverStatusSuspended:
	default:
		return dto.DriverResponse{}, fmt.Errorf("unknown driver status %q", status)
	}

	driver, err := s.repo.Update(ctx, id, map[string]interface{}{"status": normalized})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DriverResponse{}, ErrDriverNotFound
		}
		return dto.DriverResponse{}, err
	}

	s.record(ctx, actor, "status", driver.ID, map[string]interface{}{"status": normalized})

	return dto.NewDriverResponse(driver), nil
}

func (s *driverService) AttachLicense(ctx context.Context, id uint, file *multipart.FileHeader, actor ActivityActor) (dto.DriverResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DriverResponse{}, ErrDriverNotFound
		}
		return dto.DriverResponse{}, err
	}

	staffID := actor.ID
	upload, err := s.uploads.Upload(ctx, file, &staffID)
	if err != nil {
		return dto.DriverResponse{}, err
	}

	driver, err := s.repo.Update(ctx, id, map[string]interface{}{"license_url": upload.URL})
	if err != nil {
		return dto.DriverResponse{}, err
	}

	s.record(ctx, actor, "license_upload", driver.ID, map[string]interface{}{"url": upload.URL})

	return dto.NewDriverResponse(driver), nil
}

func (s *driverService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDriverNotFound
		}
		return err
	}

	s.record(ctx, actor, "delete", id, nil)

	return nil
}

func (s *driverService) record(ctx context.Context, actor ActivityActor, action string, id uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	entityID := id
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "driver",
		EntityID:   &entityID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("driver_id", id).Msg("failed to record driver activity")
	}
}
