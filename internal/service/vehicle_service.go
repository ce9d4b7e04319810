package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

// ErrVehicleNotFound indicates the vehicle does not exist.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleService orchestrates admin vehicle management use cases.
type VehicleService interface {
	List(ctx context.Context, req dto.VehicleListRequest) (dto.VehicleListResponse, error)
	Get(ctx context.Context, id uint) (dto.VehicleResponse, error)
	Create(ctx context.Context, payload dto.VehicleCreateRequest, actor ActivityActor) (dto.VehicleResponse, error)
	Update(ctx context.Context, id uint, payload dto.VehicleUpdateRequest, actor ActivityActor) (dto.VehicleResponse, error)
	AttachPhoto(ctx context.Context, id uint, file *multipart.FileHeader, actor ActivityActor) (dto.VehicleResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type vehicleService struct {
	repo      repository.VehicleRepository
	uploads   UploadService
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewVehicleService constructs the vehicle service.
func NewVehicleService(repo repository.VehicleRepository, uploads UploadService, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) VehicleService {
	return &vehicleService{
		repo:      repo,
		uploads:   uploads,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "vehicle_service").Logger(),
	}
}

func (s *vehicleService) List(ctx context.Context, req dto.VehicleListRequest) (dto.VehicleListResponse, error) {
	vehicles, total, err := s.repo.List(ctx, repository.VehicleFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   strings.TrimSpace(req.Search),
		DriverID: req.DriverID,
		Active:   req.Active,
	})
	if err != nil {
		return dto.VehicleListResponse{}, err
	}

	items := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		items = append(items, dto.NewVehicleResponse(vehicle))
	}

	return dto.VehicleListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *vehicleService) Get(ctx context.Context, id uint) (dto.VehicleResponse, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VehicleResponse{}, ErrVehicleNotFound
		}
		return dto.VehicleResponse{}, err
	}

	return dto.NewVehicleResponse(vehicle), nil
}

func (s *vehicleService) Create(ctx context.Context, payload dto.VehicleCreateRequest, actor ActivityActor) (dto.VehicleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VehicleResponse{}, err
	}

	capacity := payload.Capacity
	if capacity <= 0 {
		capacity = 4
	}

	vehicle := models.Vehicle{
		PlateNumber: strings.ToUpper(strings.TrimSpace(payload.PlateNumber)),
		Model:       strings.TrimSpace(payload.Model),
		Color:       strings.TrimSpace(payload.Color),
		Year:        payload.Year,
		Capacity:    capacity,
		DriverID:    payload.DriverID,
		Active:      true,
	}

	if err := s.repo.Create(ctx, &vehicle); err != nil {
		return dto.VehicleResponse{}, err
	}

	s.record(ctx, actor, "create", vehicle.ID, map[string]interface{}{"plate": vehicle.PlateNumber})

	return dto.NewVehicleResponse(vehicle), nil
}

func (s *vehicleService) Update(ctx context.Context, id uint, payload dto.VehicleUpdateRequest, actor ActivityActor) (dto.VehicleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VehicleResponse{}, err
	}

	updates := make(map[string]interface{})
	changed := make([]string, 0)

	if payload.PlateNumber != nil {
		updates["plate_number"] = strings.ToUpper(strings.TrimSpace(*payload.PlateNumber))
		changed = append(changed, "plate_number")
	}
	if payload.Model != nil {
		updates["model"] = strings.TrimSpace(*payload.Model)
		changed = append(changed, "model")
	}
	if payload.Color != nil {
		updates["color"] = strings.TrimSpace(*payload.Color)
		changed = append(changed, "color")
	}
	if payload.Year != nil {
		updates["year"] = *payload.Year
		changed = append(changed, "year")
	}
	if payload.Capacity != nil {
		updates["capacity"] = *payload.Capacity
		changed = append(changed, "capacity")
	}
	if payload.DriverID != nil {
		updates["driver_id"] = *payload.DriverID
		changed = append(changed, "driver_id")
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
		changed = append(changed, "active")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	vehicle, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VehicleResponse{}, ErrVehicleNotFound
		}
		return dto.VehicleResponse{}, err
	}

	s.record(ctx, actor, "update", vehicle.ID, map[string]interface{}{"fields": changed})

	return dto.NewVehicleResponse(vehicle), nil
}

func (s *vehicleService) AttachPhoto(ctx context.Context, id uint, file *multipart.FileHeader, actor ActivityActor) (dto.VehicleResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VehicleResponse{}, ErrVehicleNotFound
		}
		return dto.VehicleResponse{}, err
	}

	staffID := actor.ID
	upload, err := s.uploads.Upload(ctx, file, &staffID)
	if err != nil {
		return dto.VehicleResponse{}, err
	}

	vehicle, err := s.repo.Update(ctx, id, map[string]interface{}{"photo_url": upload.URL})
	if err != nil {
		return dto.VehicleResponse{}, err
	}

	s.record(ctx, actor, "photo_upload", vehicle.ID, map[string]interface{}{"url": upload.URL})

	return dto.NewVehicleResponse(vehicle), nil
}

func (s *vehicleService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}

	s.record(ctx, actor, "delete", id, nil)

	return nil
}

func (s *vehicleService) record(ctx context.Context, actor ActivityActor, action string, id uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	entityID := id
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "vehicle",
		EntityID:   &entityID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("vehicle_id", id).Msg("failed to record vehicle activity")
	}
}
