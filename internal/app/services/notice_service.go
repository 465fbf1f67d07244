package services

import (
	"context"
	"time"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/validation"
)

// NoticeService publishes and lists notices
type NoticeService interface {
	CreateNotice(ctx context.Context, creatorID int64, creatorHallID *int64, req *dto.CreateNoticeRequest) (*models.Notice, error)
	ListForHall(ctx context.Context, hallID int64) ([]*models.Notice, error)
	Deactivate(ctx context.Context, noticeID, actorID int64, actorRole models.RoleType) error
}

type noticeService struct {
	noticeRepo *repositories.NoticeRepository
	nowFn      func() time.Time
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(noticeRepo *repositories.NoticeRepository) NoticeService {
	return &noticeService{
		noticeRepo: noticeRepo,
		nowFn:      time.Now,
	}
}

func (s *noticeService) CreateNotice(ctx context.Context, creatorID int64, creatorHallID *int64, req *dto.CreateNoticeRequest) (*models.Notice, error) {
	titleOK := validation.NewStringValidation(req.Title).
		WithMinLength(validation.NoticeTitleMinLength).
		WithMaxLength(validation.NoticeTitleMaxLength).
		Validate()
	if !titleOK {
		return nil, apperrors.NewValidationError("title must be 3 to 150 characters")
	}

	visibility := models.NoticeVisibility(req.Visibility)
	if visibility == "" {
		visibility = models.NoticePublic
	}
	if visibility != models.NoticePublic && visibility != models.NoticePrivate {
		return nil, apperrors.NewValidationError("visibility must be public or private")
	}

	var hallID *int64
	if visibility == models.NoticePrivate {
		if creatorHallID == nil {
			return nil, apperrors.ErrHallScopeMissing
		}
		hallID = creatorHallID
	}

	var expiryDate *time.Time
	if req.ExpiryDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ExpiryDate)
		if err != nil {
			return nil, apperrors.NewValidationError("expiryDate must be RFC3339")
		}
		if !parsed.After(s.nowFn()) {
			return nil, apperrors.NewValidationError("expiryDate must be in the future")
		}
		expiryDate = &parsed
	}

	notice := &models.Notice{
		Title:      req.Title,
		Content:    req.Content,
		Visibility: visibility,
		HallID:     hallID,
		CreatedBy:  creatorID,
		ExpiryDate: expiryDate,
		IsActive:   true,
	}

	id, err := s.noticeRepo.Create(ctx, notice)
	if err != nil {
		return nil, err
	}
	notice.ID = id
	return notice, nil
}

func (s *noticeService) ListForHall(ctx context.Context, hallID int64) ([]*models.Notice, error) {
	return s.noticeRepo.ListVisibleToHall(ctx, hallID, s.nowFn())
}

func (s *noticeService) Deactivate(ctx context.Context, noticeID, actorID int64, actorRole models.RoleType) error {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		return err
	}
	// Authors may pull their own notices; the VC may pull any.
	if notice.CreatedBy != actorID && actorRole != models.RoleVC {
		return apperrors.ErrPermissionDenied
	}
	return s.noticeRepo.Deactivate(ctx, noticeID)
}
