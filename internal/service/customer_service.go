package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

// ErrCustomerNotFound indicates the customer does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerService orchestrates admin customer management use cases.
type CustomerService interface {
	List(ctx context.Context, req dto.CustomerListRequest) (dto.CustomerListResponse, error)
	Get(ctx context.Context, id uint) (dto.CustomerResponse, error)
	Create(ctx context.Context, payload dto.CustomerCreateRequest, actor ActivityActor) (dto.CustomerResponse, error)
	Update(ctx context.Context, id uint, payload dto.CustomerUpdateRequest, actor ActivityActor) (dto.CustomerResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type customerService struct {
	repo      repository.CustomerRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewCustomerService constructs the customer service.
func NewCustomerService(repo repository.CustomerRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) CustomerService {
	return &customerService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "customer_service").Logger(),
	}
}

func (s *customerService) List(ctx context.Context, req dto.CustomerListRequest) (dto.CustomerListResponse, error) {
	customers, total, err := s.repo.List(ctx, repository.CustomerFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   strings.TrimSpace(req.Search),
		City:     strings.TrimSpace(req.City),
	})
	if err != nil {
		return dto.CustomerListResponse{}, err
	}

	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		items = append(items, dto.NewCustomerResponse(customer))
	}

	return dto.CustomerListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (dto.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CustomerResponse{}, ErrCustomerNotFound
		}
		return dto.CustomerResponse{}, err
	}

	return dto.NewCustomerResponse(customer), nil
}

func (s *customerService) Create(ctx context.Context, payload dto.CustomerCreateRequest, actor ActivityActor) (dto.CustomerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CustomerResponse{}, err
	}

	customer := models.Customer{
		Name:  strings.TrimSpace(payload.Name),
		Email: strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone: strings.TrimSpace(payload.Phone),
		City:  strings.TrimSpace(payload.City),
	}

	if err := s.repo.Create(ctx, &customer); err != nil {
		return dto.CustomerResponse{}, err
	}

	s.record(ctx, actor, "create", customer.ID, nil)

	return dto.NewCustomerResponse(customer), nil
}

func (s *customerService) Update(ctx context.Context, id uint, payload dto.CustomerUpdateRequest, actor ActivityActor) (dto.CustomerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CustomerResponse{}, err
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
	if payload.City != nil {
		updates["city"] = strings.TrimSpace(*payload.City)
		changed = append(changed, "city")
	}
	if payload.Blocked != nil {
		updates["blocked"] = *payload.Blocked
		changed = append(changed, "blocked")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	customer, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CustomerResponse{}, ErrCustomerNotFound
		}
		return dto.CustomerResponse{}, err
	}

	s.record(ctx, actor, "update", customer.ID, map[string]interface{}{"fields": changed})

	return dto.NewCustomerResponse(customer), nil
}

func (s *customerService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	s.record(ctx, actor, "delete", id, nil)

	return nil
}

func (s *customerService) record(ctx context.Context, actor ActivityActor, action string, id uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	entityID := id
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "customer",
		EntityID:   &entityID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("customer_id", id).Msg("failed to record customer activity")
	}
}
