package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

// ErrRewardNotFound indicates the reward does not exist.
var ErrRewardNotFound = errors.New("reward not found")

// RewardService orchestrates promotional reward management.
type RewardService interface {
	List(ctx context.Context, req dto.RewardListRequest) (dto.RewardListResponse, error)
	Get(ctx context.Context, id uint) (dto.RewardResponse, error)
	Create(ctx context.Context, payload dto.RewardCreateRequest, actor ActivityActor) (dto.RewardResponse, error)
	Update(ctx context.Context, id uint, payload dto.RewardUpdateRequest, actor ActivityActor) (dto.RewardResponse, error)
	AttachImage(ctx context.Context, id uint, file *multipart.FileHeader, actor ActivityActor) (dto.RewardResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type rewardService struct {
	repo      repository.RewardRepository
	uploads   UploadService
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewRewardService constructs the reward service. Reward descriptions are
// staff-entered rich text and are sanitized before persistence.
func NewRewardService(repo repository.RewardRepository, uploads UploadService, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) RewardService {
	return &rewardService{
		repo:      repo,
		uploads:   uploads,
		validator: validate,
		activity:  activity,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "reward_service").Logger(),
	}
}

func (s *rewardService) List(ctx context.Context, req dto.RewardListRequest) (dto.RewardListResponse, error) {
	rewards, total, err := s.repo.List(ctx, repository.RewardFilter{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Search:     strings.TrimSpace(req.Search),
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		return dto.RewardListResponse{}, err
	}

	items := make([]dto.RewardResponse, 0, len(rewards))
	for _, reward := range rewards {
		items = append(items, dto.NewRewardResponse(reward))
	}

	return dto.RewardListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *rewardService) Get(ctx context.Context, id uint) (dto.RewardResponse, error) {
	reward, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RewardResponse{}, ErrRewardNotFound
		}
		return dto.RewardResponse{}, err
	}

	return dto.NewRewardResponse(reward), nil
}

func (s *rewardService) Create(ctx context.Context, payload dto.RewardCreateRequest, actor ActivityActor) (dto.RewardResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RewardResponse{}, err
	}

	reward := models.Reward{
		Title:       strings.TrimSpace(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		Points:      payload.Points,
		Active:      true,
		ExpiresAt:   payload.ExpiresAt,
	}

	if err := s.repo.Create(ctx, &reward); err != nil {
		return dto.RewardResponse{}, err
	}

	s.record(ctx, actor, "create", reward.ID, map[string]interface{}{"title": reward.Title})

	return dto.NewRewardResponse(reward), nil
}

func (s *rewardService) Update(ctx context.Context, id uint, payload dto.RewardUpdateRequest, actor ActivityActor) (dto.RewardResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RewardResponse{}, err
	}

	updates := make(map[string]interface{})
	changed := make([]string, 0)

	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
		changed = append(changed, "title")
	}
	if payload.Description != nil {
		updates["description"] = s.sanitizer.Sanitize(*payload.Description)
		changed = append(changed, "description")
	}
	if payload.Points != nil {
		updates["points"] = *payload.Points
		changed = append(changed, "points")
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
		changed = append(changed, "active")
	}
	if payload.ExpiresAt != nil {
		updates["expires_at"] = *payload.ExpiresAt
		changed = append(changed, "expires_at")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	reward, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RewardResponse{}, ErrRewardNotFound
		}
		return dto.RewardResponse{}, err
	}

	s.record(ctx, actor, "update", reward.ID, map[string]interface{}{"fields": changed})

	return dto.NewRewardResponse(reward), nil
}

func (s *rewardService) AttachImage(ctx context.Context, id uint, file *multipart.FileHeader, actor ActivityActor) (dto.RewardResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RewardResponse{}, ErrRewardNotFound
		}
		return dto.RewardResponse{}, err
	}

	staffID := actor.ID
	upload, err := s.uploads.Upload(ctx, file, &staffID)
	if err != nil {
		return dto.RewardResponse{}, err
	}

	reward, err := s.repo.Update(ctx, id, map[string]interface{}{"image_url": upload.URL})
	if err != nil {
		return dto.RewardResponse{}, err
	}

	s.record(ctx, actor, "image_upload", reward.ID, map[string]interface{}{"url": upload.URL})

	return dto.NewRewardResponse(reward), nil
}

func (s *rewardService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRewardNotFound
		}
		return err
	}

	s.record(ctx, actor, "delete", id, nil)

	return nil
}

func (s *rewardService) record(ctx context.Context, actor ActivityActor, action string, id uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	entityID := id
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "reward",
		EntityID:   &entityID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("reward_id", id).Msg("failed to record reward activity")
	}
}
