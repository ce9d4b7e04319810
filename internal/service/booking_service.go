package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

// ErrBookingNotFound indicates the booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrInvalidStatusTransition indicates a disallowed booking status change.
var ErrInvalidStatusTransition = errors.New("invalid booking status transition")

// Completed and cancelled are terminal; everything else may move forward or be
// cancelled.
var allowedTransitions = map[string][]string{
	models.BookingStatusPending:    {models.BookingStatusActive, models.BookingStatusDispatched, models.BookingStatusCancelled},
	models.BookingStatusActive:     {models.BookingStatusDispatched, models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusDispatched: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

// BookingService orchestrates admin booking management use cases.
type BookingService interface {
	List(ctx context.Context, req dto.BookingListRequest) (dto.BookingListResponse, error)
	Get(ctx context.Context, id uint) (dto.BookingResponse, error)
	Create(ctx context.Context, payload dto.BookingCreateRequest, actor ActivityActor) (dto.BookingResponse, error)
	Update(ctx context.Context, id uint, payload dto.BookingUpdateRequest, actor ActivityActor) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.BookingStatusRequest, actor ActivityActor) (dto.BookingResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.Validate
	events    BookingEventPublisher
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewBookingService constructs the booking service.
func NewBookingService(repo repository.BookingRepository, validate *validator.Validate, events BookingEventPublisher, activity ActivityRecorder, logger zerolog.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validate,
		events:    events,
		activity:  activity,
		logger:    logger.With().Str("component", "booking_service").Logger(),
	}
}

func (s *bookingService) List(ctx context.Context, req dto.BookingListRequest) (dto.BookingListResponse, error) {
	filter := repository.BookingFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Status:   strings.TrimSpace(req.Status),
		From:     req.From,
		To:       req.To,
		Search:   strings.TrimSpace(req.Search),
	}

	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.BookingListResponse{}, err
	}

	items := make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, dto.NewBookingResponse(booking))
	}

	return dto.BookingListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *bookingService) Get(ctx context.Context, id uint) (dto.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BookingResponse{}, ErrBookingNotFound
		}
		return dto.BookingResponse{}, err
	}

	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) Create(ctx context.Context, payload dto.BookingCreateRequest, actor ActivityActor) (dto.BookingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BookingResponse{}, err
	}

	status := strings.ToLower(strings.TrimSpace(payload.Status))
	if status == "" {
		status = models.BookingStatusPending
	}

	booking := models.Booking{
		Code:          bookingCode(),
		CustomerID:    payload.CustomerID,
		DriverID:      payload.DriverID,
		VehicleID:     payload.VehicleID,
		PickupAddress: strings.TrimSpace(payload.PickupAddress),
		DropAddress:   strings.TrimSpace(payload.DropAddress),
		Amount:        payload.Amount,
		Status:        status,
		BookedAt:      payload.BookedAt,
		Payload:       datatypes.JSONMap(payload.Payload),
	}

	if err := s.repo.Create(ctx, &booking); err != nil {
		return dto.BookingResponse{}, err
	}

	s.recordActivity(ctx, actor, "create", booking.ID, map[string]interface{}{"code": booking.Code})
	s.events.BookingsChanged(ctx, "create", booking.ID)

	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) Update(ctx context.Context, id uint, payload dto.BookingUpdateRequest, actor ActivityActor) (dto.BookingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BookingResponse{}, err
	}

	updates := make(map[string]interface{})
	changed := make([]string, 0)

	if payload.DriverID != nil {
		updates["driver_id"] = *payload.DriverID
		changed = append(changed, "driver_id")
	}
	if payload.VehicleID != nil {
		updates["vehicle_id"] = *payload.VehicleID
		changed = append(changed, "vehicle_id")
	}
	if payload.PickupAddress != nil {
		updates["pickup_address"] = strings.TrimSpace(*payload.PickupAddress)
		changed = append(changed, "pickup_address")
	}
	if payload.DropAddress != nil {
		updates["drop_address"] = strings.TrimSpace(*payload.DropAddress)
		changed = append(changed, "drop_address")
	}
	if payload.Amount != nil {
		updates["amount"] = *payload.Amount
		changed = append(changed, "amount")
	}
	if payload.BookedAt != nil {
		updates["booked_at"] = *payload.BookedAt
		changed = append(changed, "booked_at")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	booking, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BookingResponse{}, ErrBookingNotFound
		}
		return dto.BookingResponse{}, err
	}

	s.recordActivity(ctx, actor, "update", booking.ID, map[string]interface{}{"fields": changed})
	s.events.BookingsChanged(ctx, "update", booking.ID)

	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id uint, payload dto.BookingStatusRequest, actor ActivityActor) (dto.BookingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BookingResponse{}, err
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BookingResponse{}, ErrBookingNotFound
		}
		return dto.BookingResponse{}, err
	}

	from := strings.ToLower(strings.TrimSpace(booking.Status))
	to := strings.ToLower(strings.TrimSpace(payload.Status))

	if from != to && !transitionAllowed(from, to) {
		return dto.BookingResponse{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{"status": to})
	if err != nil {
		return dto.BookingResponse{}, err
	}

	s.recordActivity(ctx, actor, "status", updated.ID, map[string]interface{}{"from": from, "to": to})
	s.events.BookingsChanged(ctx, "status", updated.ID)

	return dto.NewBookingResponse(updated), nil
}

func (s *bookingService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	s.recordActivity(ctx, actor, "delete", id, nil)
	s.events.BookingsChanged(ctx, "delete", id)

	return nil
}

func (s *bookingService) recordActivity(ctx context.Context, actor ActivityActor, action string, bookingID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	id := bookingID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "booking",
		EntityID:   &id,
		Metadata:   metadata,
	}

	if _, err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Uint("booking_id", bookingID).Msg("failed to record booking activity")
	}
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func bookingCode() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func paginationMeta(page, pageSize int, total int64) dto.PaginationMeta {
	meta := dto.PaginationMeta{
		Page:       maxInt(page, 1),
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	} else {
		meta.TotalPages = 1
	}
	return meta
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
