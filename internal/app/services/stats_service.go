package services

import (
	"context"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
)

// UserCounter counts users per role and approval status
type UserCounter interface {
	CountByRoleAndStatus(ctx context.Context, role models.RoleType, status models.ApprovalStatus) (int64, error)
}

// HallCounter counts active halls
type HallCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// ComplaintCounter counts complaints per status
type ComplaintCounter interface {
	CountByStatus(ctx context.Context, status models.ComplaintStatus) (int64, error)
}

// NoticeCounter counts notices
type NoticeCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsService assembles the VC's platform overview
type StatsService interface {
	PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
}

type statsService struct {
	users      UserCounter
	halls      HallCounter
	complaints ComplaintCounter
	notices    NoticeCounter
}

// NewStatsService creates a new StatsService
func NewStatsService(users UserCounter, halls HallCounter, complaints ComplaintCounter, notices NoticeCounter) StatsService {
	return &statsService{
		users:      users,
		halls:      halls,
		complaints: complaints,
		notices:    notices,
	}
}

func (s *statsService) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	stats := &dto.PlatformStatsResponse{}

	userCounts := []struct {
		role   models.RoleType
		status models.ApprovalStatus
		dest   *int64
	}{
		{models.RoleStudent, models.ApprovalApproved, &stats.ApprovedStudentCount},
		{models.RoleStudent, models.ApprovalPending, &stats.PendingStudentCount},
		{models.RoleStudent, models.ApprovalRejected, &stats.RejectedStudentCount},
		{models.RoleProvost, models.ApprovalApproved, &stats.ActiveProvostCount},
		{models.RoleProvost, models.ApprovalPending, &stats.PendingProvostCount},
		{models.RoleProvost, models.ApprovalRejected, &stats.RejectedProvostCount},
	}
	for _, c := range userCounts {
		count, err := s.users.CountByRoleAndStatus(ctx, c.role, c.status)
		if err != nil {
			return nil, err
		}
		*c.dest = count
	}

	hallCount, err := s.halls.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.HallCount = hallCount

	complaintCount, err := s.complaints.CountByStatus(ctx, models.ComplaintPending)
	if err != nil {
		return nil, err
	}
	stats.PendingComplaintCount = complaintCount

	noticeCount, err := s.notices.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.NoticeCount = noticeCount

	return stats, nil
}
