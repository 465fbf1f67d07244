package services

import (
	"context"
	"time"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

// ComplaintService handles hall complaints
type ComplaintService interface {
	CreateComplaint(ctx context.Context, studentID, hallID int64, req *dto.CreateComplaintRequest) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, complaintID, actorID, actorHallID int64, req *dto.UpdateComplaintStatusRequest) (*models.Complaint, error)
	ListByHall(ctx context.Context, hallID int64, status *models.ComplaintStatus) ([]*models.Complaint, error)
	ListOwn(ctx context.Context, studentID int64) ([]*models.Complaint, error)
}

type complaintService struct {
	complaintRepo *repositories.ComplaintRepository
	nowFn         func() time.Time
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(complaintRepo *repositories.ComplaintRepository) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		nowFn:         time.Now,
	}
}

func (s *complaintService) CreateComplaint(ctx context.Context, studentID, hallID int64, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	if !models.IsValidComplaintCategory(req.Category) {
		return nil, apperrors.NewValidationError("unknown complaint category: " + req.Category)
	}
	priority := req.Priority
	if priority == 0 {
		priority = 3
	}
	if priority < 1 || priority > 5 {
		return nil, apperrors.NewValidationError("priority must be between 1 and 5")
	}

	complaint := &models.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Category:    models.ComplaintCategory(req.Category),
		Status:      models.ComplaintPending,
		Priority:    priority,
		HallID:      hallID,
		CreatedBy:   studentID,
	}

	id, err := s.complaintRepo.Create(ctx, complaint)
	if err != nil {
		return nil, err
	}
	complaint.ID = id
	return complaint, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, complaintID, actorID, actorHallID int64, req *dto.UpdateComplaintStatusRequest) (*models.Complaint, error) {
	status := models.ComplaintStatus(req.Status)
	switch status {
	case models.ComplaintInProgress, models.ComplaintResolved, models.ComplaintRejected:
	default:
		return nil, apperrors.NewValidationError("invalid complaint status: " + req.Status)
	}

	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.HallID != actorHallID {
		return nil, apperrors.ErrPermissionDenied
	}

	var resolvedAt *time.Time
	if status == models.ComplaintResolved {
		now := s.nowFn()
		resolvedAt = &now
	}

	if err := s.complaintRepo.UpdateStatus(ctx, complaintID, status, &actorID, resolvedAt); err != nil {
		return nil, err
	}

	complaint.Status = status
	complaint.AssignedTo = &actorID
	complaint.ResolvedAt = resolvedAt
	return complaint, nil
}

func (s *complaintService) ListByHall(ctx context.Context, hallID int64, status *models.ComplaintStatus) ([]*models.Complaint, error) {
	return s.complaintRepo.ListByHall(ctx, hallID, status)
}

func (s *complaintService) ListOwn(ctx context.Context, studentID int64) ([]*models.Complaint, error) {
	return s.complaintRepo.ListByCreator(ctx, studentID)
}
