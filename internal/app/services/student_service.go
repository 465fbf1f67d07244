package services

import (
	"context"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/helpers"
	"github.com/yigit/hallsphere/internal/pkg/logger"
	"github.com/yigit/hallsphere/internal/pkg/validation"
)

// StudentService handles the provost's student approval queue and student
// profile reads. Approval is where occupancy is actually claimed: the
// requested bed is validated against current occupants and the hall and
// room counters move only on approve.
type StudentService interface {
	ApproveStudent(ctx context.Context, studentID, actorHallID int64) error
	RejectStudent(ctx context.Context, studentID, actorHallID int64, reason string) error
	ListPendingByHall(ctx context.Context, hallID int64) ([]*models.User, error)
	ListApprovedByHall(ctx context.Context, hallID int64, page, size int) ([]*models.User, int64, error)
	GetProfile(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

type studentService struct {
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	hallRepo    *repositories.HallRepository
	roomRepo    *repositories.RoomRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(userRepo *repositories.UserRepository, studentRepo *repositories.StudentRepository, hallRepo *repositories.HallRepository, roomRepo *repositories.RoomRepository) StudentService {
	return &studentService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		hallRepo:    hallRepo,
		roomRepo:    roomRepo,
	}
}

// loadScopedPendingStudent enforces the shared approve/reject guards:
// the student must exist, belong to the acting provost's hall, and still
// be pending.
func (s *studentService) loadScopedPendingStudent(ctx context.Context, studentID, actorHallID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByIDAndRole(ctx, studentID, models.RoleStudent)
	if err != nil {
		return nil, apperrors.ErrStudentNotFound
	}
	if user.HallID == nil || *user.HallID != actorHallID {
		return nil, apperrors.ErrPermissionDenied
	}
	if user.ApprovalStatus != models.ApprovalPending {
		return nil, apperrors.ErrApprovalProcessed
	}
	return user, nil
}

func (s *studentService) ApproveStudent(ctx context.Context, studentID, actorHallID int64) error {
	user, err := s.loadScopedPendingStudent(ctx, studentID, actorHallID)
	if err != nil {
		return err
	}

	profile, err := s.studentRepo.GetProfileByUserID(ctx, studentID)
	if err != nil {
		return err
	}
	if profile.RoomID == nil {
		return apperrors.NewValidationError("student has no room request on file")
	}

	room, err := s.roomRepo.GetRoomByID(ctx, *profile.RoomID)
	if err != nil {
		return err
	}

	occupied, err := s.studentRepo.IsPositionOccupied(ctx, room.ID, string(profile.Position))
	if err != nil {
		return err
	}
	if occupied {
		return apperrors.ErrPositionOccupied
	}

	occupants, err := s.studentRepo.CountRoomOccupants(ctx, room.ID)
	if err != nil {
		return err
	}
	if occupants >= room.Capacity {
		return apperrors.ErrRoomFull
	}

	if err := s.userRepo.UpdateApprovalStatus(ctx, studentID, models.ApprovalApproved, nil); err != nil {
		return err
	}

	// Counter updates after the status flip; both are recomputable from
	// profiles if a crash leaves them behind.
	if err := s.hallRepo.AdjustOccupancy(ctx, *user.HallID, 1); err != nil {
		logger.Error().Err(err).Int64("hallID", *user.HallID).Msg("Hall occupancy update failed after approval")
	}
	newOccupancy := occupants + 1
	if err := s.roomRepo.UpdateOccupancy(ctx, room.ID, newOccupancy, models.StatusForOccupancy(newOccupancy, room.Capacity)); err != nil {
		logger.Error().Err(err).Int64("roomID", room.ID).Msg("Room occupancy update failed after approval")
	}

	logger.Info().Int64("studentID", studentID).Int64("roomID", room.ID).Str("position", string(profile.Position)).Msg("Student approved")
	return nil
}

func (s *studentService) RejectStudent(ctx context.Context, studentID, actorHallID int64, reason string) error {
	if !validation.MeetsMinLength(reason, validation.RejectionReasonMinLength) {
		return apperrors.NewValidationError("rejection reason is too short")
	}

	if _, err := s.loadScopedPendingStudent(ctx, studentID, actorHallID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateApprovalStatus(ctx, studentID, models.ApprovalRejected, &reason); err != nil {
		return err
	}

	logger.Info().Int64("studentID", studentID).Msg("Student registration rejected")
	return nil
}

func (s *studentService) ListPendingByHall(ctx context.Context, hallID int64) ([]*models.User, error) {
	pending := models.ApprovalPending
	return s.userRepo.ListByRoleAndStatus(ctx, models.RoleStudent, &pending, &hallID)
}

func (s *studentService) ListApprovedByHall(ctx context.Context, hallID int64, page, size int) ([]*models.User, int64, error) {
	total, err := s.studentRepo.CountProfilesByHall(ctx, hallID)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	students, err := s.studentRepo.ListProfilesByHall(ctx, hallID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (s *studentService) GetProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.studentRepo.GetProfileByUserID(ctx, userID)
}
