package services

import (
	"context"
	"time"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/logger"
	"github.com/yigit/hallsphere/internal/pkg/validation"
)

// ClearanceService handles hall clearance requests. An approved clearance
// releases the student's seat: the account moves to former and the hall
// occupancy drops.
type ClearanceService interface {
	RequestClearance(ctx context.Context, studentID int64, req *dto.CreateClearanceRequest) (*models.HallClearance, error)
	ApproveClearance(ctx context.Context, clearanceID, actorID, actorHallID int64) error
	RejectClearance(ctx context.Context, clearanceID, actorID, actorHallID int64, reason string) error
	ListOwn(ctx context.Context, studentID int64) ([]*models.HallClearance, error)
	ListPendingByHall(ctx context.Context, hallID int64) ([]*models.HallClearance, error)
}

type clearanceService struct {
	clearanceRepo *repositories.ClearanceRepository
	studentRepo   *repositories.StudentRepository
	userRepo      *repositories.UserRepository
	hallRepo      *repositories.HallRepository
	roomRepo      *repositories.RoomRepository
	nowFn         func() time.Time
}

// NewClearanceService creates a new ClearanceService
func NewClearanceService(clearanceRepo *repositories.ClearanceRepository, studentRepo *repositories.StudentRepository, userRepo *repositories.UserRepository, hallRepo *repositories.HallRepository, roomRepo *repositories.RoomRepository) ClearanceService {
	return &clearanceService{
		clearanceRepo: clearanceRepo,
		studentRepo:   studentRepo,
		userRepo:      userRepo,
		hallRepo:      hallRepo,
		roomRepo:      roomRepo,
		nowFn:         time.Now,
	}
}

func (s *clearanceService) RequestClearance(ctx context.Context, studentID int64, req *dto.CreateClearanceRequest) (*models.HallClearance, error) {
	reason := models.ClearanceReason(req.ClearanceReason)
	switch reason {
	case models.ClearanceSemesterFinal:
		if req.Semester == nil || *req.Semester < 1 || *req.Semester > 12 {
			return nil, apperrors.NewValidationError("semester is required for semester final clearance")
		}
	case models.ClearanceDeallocation:
	case models.ClearanceOther:
		if req.ReasonDetails == nil || !validation.MeetsMinLength(*req.ReasonDetails, validation.ExtensionReasonMinLength) {
			return nil, apperrors.NewValidationError("reasonDetails is required for other clearance")
		}
	default:
		return nil, apperrors.NewValidationError("unknown clearance reason: " + req.ClearanceReason)
	}

	residency, err := s.studentRepo.GetResidency(ctx, studentID)
	if err != nil {
		return nil, err
	}

	profile, err := s.studentRepo.GetProfileByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if profile.Balance < 0 {
		return nil, apperrors.ErrInsufficientBalance
	}

	hasPending, err := s.clearanceRepo.HasPending(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, apperrors.ErrDuplicatePendingClearance
	}

	clearance := &models.HallClearance{
		ClearanceCode:   models.NewClearanceCode(residency.Department, reason, req.Semester, req.Year),
		StudentID:       studentID,
		HallID:          residency.HallID,
		Department:      residency.Department,
		ClearanceReason: reason,
		Semester:        req.Semester,
		Year:            req.Year,
		ReasonDetails:   req.ReasonDetails,
		Status:          models.ClearancePending,
	}

	id, err := s.clearanceRepo.Create(ctx, clearance)
	if err != nil {
		return nil, err
	}
	clearance.ID = id
	return clearance, nil
}

func (s *clearanceService) loadScopedPending(ctx context.Context, clearanceID, actorHallID int64) (*models.HallClearance, error) {
	clearance, err := s.clearanceRepo.GetByID(ctx, clearanceID)
	if err != nil {
		return nil, err
	}
	if clearance.HallID != actorHallID {
		return nil, apperrors.ErrPermissionDenied
	}
	if clearance.Status != models.ClearancePending {
		return nil, apperrors.ErrClearanceProcessed
	}
	return clearance, nil
}

func (s *clearanceService) ApproveClearance(ctx context.Context, clearanceID, actorID, actorHallID int64) error {
	clearance, err := s.loadScopedPending(ctx, clearanceID, actorHallID)
	if err != nil {
		return err
	}

	now := s.nowFn()
	if err := s.clearanceRepo.MarkProcessed(ctx, clearanceID, models.ClearanceApproved, nil, actorID, now); err != nil {
		return err
	}

	// Release the seat. Deallocation and semester-final both end the
	// residency; the account flips to former so it no longer counts
	// toward occupancy anywhere.
	if err := s.userRepo.UpdateApprovalStatus(ctx, clearance.StudentID, models.ApprovalFormer, nil); err != nil {
		logger.Error().Err(err).Int64("studentID", clearance.StudentID).Msg("Could not mark cleared student as former")
		return err
	}
	if err := s.hallRepo.AdjustOccupancy(ctx, clearance.HallID, -1); err != nil {
		logger.Error().Err(err).Int64("hallID", clearance.HallID).Msg("Hall occupancy update failed after clearance")
	}

	profile, err := s.studentRepo.GetProfileByUserID(ctx, clearance.StudentID)
	if err == nil && profile.RoomID != nil {
		if occupants, cErr := s.studentRepo.CountRoomOccupants(ctx, *profile.RoomID); cErr == nil {
			room, rErr := s.roomRepo.GetRoomByID(ctx, *profile.RoomID)
			if rErr == nil {
				if uErr := s.roomRepo.UpdateOccupancy(ctx, room.ID, occupants, models.StatusForOccupancy(occupants, room.Capacity)); uErr != nil {
					logger.Error().Err(uErr).Int64("roomID", room.ID).Msg("Room occupancy update failed after clearance")
				}
			}
		}
	}

	logger.Info().Int64("clearanceID", clearanceID).Int64("studentID", clearance.StudentID).Msg("Clearance approved, residency ended")
	return nil
}

func (s *clearanceService) RejectClearance(ctx context.Context, clearanceID, actorID, actorHallID int64, reason string) error {
	if !validation.MeetsMinLength(reason, validation.RejectionReasonMinLength) {
		return apperrors.NewValidationError("rejection reason is too short")
	}

	if _, err := s.loadScopedPending(ctx, clearanceID, actorHallID); err != nil {
		return err
	}

	return s.clearanceRepo.MarkProcessed(ctx, clearanceID, models.ClearanceRejected, &reason, actorID, s.nowFn())
}

func (s *clearanceService) ListOwn(ctx context.Context, studentID int64) ([]*models.HallClearance, error) {
	return s.clearanceRepo.ListByStudent(ctx, studentID)
}

func (s *clearanceService) ListPendingByHall(ctx context.Context, hallID int64) ([]*models.HallClearance, error) {
	return s.clearanceRepo.ListPendingByHall(ctx, hallID)
}
