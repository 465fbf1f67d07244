package services

import (
	"context"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/logger"
	"github.com/yigit/hallsphere/internal/pkg/validation"
)

// ProvostService is the VC's side of the approval workflow: clearing
// provost and vice provost registrations and seating provosts on halls.
type ProvostService interface {
	ApproveProvost(ctx context.Context, provostID int64) error
	RejectProvost(ctx context.Context, provostID int64, reason string) error
	AssignToHall(ctx context.Context, provostID, hallID int64) error
	RemoveFromHall(ctx context.Context, provostID, hallID int64) error
	ListPending(ctx context.Context) ([]*models.User, error)
}

type provostService struct {
	userRepo *repositories.UserRepository
	hallRepo *repositories.HallRepository
}

// NewProvostService creates a new ProvostService
func NewProvostService(userRepo *repositories.UserRepository, hallRepo *repositories.HallRepository) ProvostService {
	return &provostService{
		userRepo: userRepo,
		hallRepo: hallRepo,
	}
}

func (s *provostService) loadPendingStaff(ctx context.Context, provostID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, provostID)
	if err != nil {
		return nil, apperrors.ErrProvostNotFound
	}
	if user.Role != models.RoleProvost && user.Role != models.RoleViceProvost {
		return nil, apperrors.ErrProvostNotFound
	}
	if user.ApprovalStatus != models.ApprovalPending {
		return nil, apperrors.ErrApprovalProcessed
	}
	return user, nil
}

func (s *provostService) ApproveProvost(ctx context.Context, provostID int64) error {
	user, err := s.loadPendingStaff(ctx, provostID)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateApprovalStatus(ctx, provostID, models.ApprovalApproved, nil); err != nil {
		return err
	}

	// A full provost takes the hall seat on approval. Vice provosts keep
	// their hall assignment without the seat.
	if user.Role == models.RoleProvost && user.HallID != nil {
		hall, err := s.hallRepo.GetHallByID(ctx, *user.HallID)
		if err != nil {
			return err
		}
		if hall.ProvostID != nil {
			return apperrors.ErrHallHasProvost
		}
		if err := s.hallRepo.SetProvost(ctx, hall.ID, &provostID); err != nil {
			return err
		}
	}

	logger.Info().Int64("provostID", provostID).Str("role", string(user.Role)).Msg("Staff member approved")
	return nil
}

func (s *provostService) RejectProvost(ctx context.Context, provostID int64, reason string) error {
	if !validation.MeetsMinLength(reason, validation.RejectionReasonMinLength) {
		return apperrors.NewValidationError("rejection reason is too short")
	}

	if _, err := s.loadPendingStaff(ctx, provostID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateApprovalStatus(ctx, provostID, models.ApprovalRejected, &reason); err != nil {
		return err
	}

	logger.Info().Int64("provostID", provostID).Msg("Staff registration rejected")
	return nil
}

func (s *provostService) AssignToHall(ctx context.Context, provostID, hallID int64) error {
	user, err := s.userRepo.GetUserByIDAndRole(ctx, provostID, models.RoleProvost)
	if err != nil {
		return apperrors.ErrProvostNotFound
	}
	if user.ApprovalStatus != models.ApprovalApproved {
		return apperrors.ErrApprovalProcessed
	}

	hall, err := s.hallRepo.GetHallByID(ctx, hallID)
	if err != nil {
		return err
	}
	if hall.ProvostID != nil {
		return apperrors.ErrHallHasProvost
	}

	if err := s.hallRepo.SetProvost(ctx, hallID, &provostID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateHall(ctx, provostID, &hallID); err != nil {
		return err
	}

	logger.Info().Int64("provostID", provostID).Int64("hallID", hallID).Msg("Provost assigned to hall")
	return nil
}

func (s *provostService) RemoveFromHall(ctx context.Context, provostID, hallID int64) error {
	hall, err := s.hallRepo.GetHallByID(ctx, hallID)
	if err != nil {
		return err
	}
	if hall.ProvostID == nil || *hall.ProvostID != provostID {
		return apperrors.ErrProvostNotCurrent
	}

	if err := s.hallRepo.SetProvost(ctx, hallID, nil); err != nil {
		return err
	}
	if err := s.userRepo.UpdateHall(ctx, provostID, nil); err != nil {
		return err
	}

	logger.Info().Int64("provostID", provostID).Int64("hallID", hallID).Msg("Provost removed from hall")
	return nil
}

func (s *provostService) ListPending(ctx context.Context) ([]*models.User, error) {
	pending := models.ApprovalPending
	provosts, err := s.userRepo.ListByRoleAndStatus(ctx, models.RoleProvost, &pending, nil)
	if err != nil {
		return nil, err
	}
	viceProvosts, err := s.userRepo.ListByRoleAndStatus(ctx, models.RoleViceProvost, &pending, nil)
	if err != nil {
		return nil, err
	}
	return append(provosts, viceProvosts...), nil
}
