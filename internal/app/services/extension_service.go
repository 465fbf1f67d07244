package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/logger"
	"github.com/yigit/hallsphere/internal/pkg/validation"
)

// ExtensionStore is the persistence surface the extension workflow uses
type ExtensionStore interface {
	Create(ctx context.Context, ext *models.ResidencyExtension) (int64, error)
	BulkInsert(ctx context.Context, exts []*models.ResidencyExtension) error
	GetByID(ctx context.Context, id int64) (*models.ResidencyExtension, error)
	HasPendingIndividual(ctx context.Context, studentID int64) (bool, error)
	MarkProcessed(ctx context.Context, id int64, status models.ExtensionStatus, rejectionReason *string, processedBy int64, processedAt time.Time) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.ResidencyExtension, error)
	ListPendingByHall(ctx context.Context, hallID int64) ([]*models.ResidencyExtension, error)
	GroupPolicyHistory(ctx context.Context, hallID int64) ([]*models.GroupPolicyBatch, error)
}

// CohortStore resolves the students a group policy targets
type CohortStore interface {
	FindCohortStudentIDs(ctx context.Context, hallID int64, academicSession string, departments []string) ([]int64, error)
}

// ExtensionService drives the residency extension workflow: individual
// requests move pending -> approved/rejected under provost review, group
// policies insert pre-approved batches. Every path that commits an approved
// record calls the expiry engine exactly once per affected student.
type ExtensionService interface {
	RequestExtension(ctx context.Context, studentID int64, req *dto.RequestExtensionRequest) (*models.ResidencyExtension, error)
	ApproveExtension(ctx context.Context, extensionID, actorID, actorHallID int64) (*models.ResidencyExtension, error)
	RejectExtension(ctx context.Context, extensionID, actorID, actorHallID int64, reason string) (*models.ResidencyExtension, error)
	ApplyGroupPolicy(ctx context.Context, actorID, hallID int64, req *dto.ApplyGroupPolicyRequest) (*dto.GroupPolicyResult, error)
	GroupPolicyHistory(ctx context.Context, hallID int64) ([]*models.GroupPolicyBatch, error)
	Reconcile(ctx context.Context, studentID int64) (*dto.ReconcileResult, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.ResidencyExtension, error)
	ListPendingByHall(ctx context.Context, hallID int64) ([]*models.ResidencyExtension, error)
}

type extensionService struct {
	extensionStore ExtensionStore
	residencyStore ResidencyStore
	cohortStore    CohortStore
	expiryService  ExpiryService
	nowFn          func() time.Time
}

// NewExtensionService creates a new ExtensionService
func NewExtensionService(extensionStore ExtensionStore, residencyStore ResidencyStore, cohortStore CohortStore, expiryService ExpiryService) ExtensionService {
	return &extensionService{
		extensionStore: extensionStore,
		residencyStore: residencyStore,
		cohortStore:    cohortStore,
		expiryService:  expiryService,
		nowFn:          time.Now,
	}
}

func (s *extensionService) RequestExtension(ctx context.Context, studentID int64, req *dto.RequestExtensionRequest) (*models.ResidencyExtension, error) {
	if !validation.MeetsMinLength(req.Reason, validation.ExtensionReasonMinLength) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("reason must be at least %d characters", validation.ExtensionReasonMinLength))
	}
	if req.NewExpiryDate.IsZero() {
		return nil, apperrors.NewValidationError("newExpiryDate is required")
	}
	if !req.NewExpiryDate.After(s.nowFn()) {
		return nil, apperrors.NewValidationError("newExpiryDate must be in the future")
	}

	residency, err := s.residencyStore.GetResidency(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check; the partial unique index closes the race.
	hasPending, err := s.extensionStore.HasPendingIndividual(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, apperrors.ErrDuplicatePendingRequest
	}

	ext := &models.ResidencyExtension{
		StudentID:     studentID,
		HallID:        residency.HallID,
		NewExpiryDate: req.NewExpiryDate,
		Type:          models.ExtensionIndividual,
		Status:        models.ExtensionPending,
		Reason:        req.Reason,
	}

	id, err := s.extensionStore.Create(ctx, ext)
	if err != nil {
		return nil, err
	}
	ext.ID = id
	ext.CreatedAt = s.nowFn()

	logger.Info().Int64("extensionID", id).Int64("studentID", studentID).Msg("Extension request submitted")
	return ext, nil
}

// loadScopedPending fetches a record and enforces both guards shared by
// approve and reject: the acting provost's hall must own the record, and
// the record must still be pending. Scope is checked first so a foreign
// provost learns nothing about the record's state.
func (s *extensionService) loadScopedPending(ctx context.Context, extensionID, actorHallID int64) (*models.ResidencyExtension, error) {
	ext, err := s.extensionStore.GetByID(ctx, extensionID)
	if err != nil {
		return nil, err
	}
	if ext.HallID != actorHallID {
		logger.Warn().
			Int64("extensionID", extensionID).
			Int64("recordHallID", ext.HallID).
			Int64("actorHallID", actorHallID).
			Msg("Cross-hall extension access denied")
		return nil, apperrors.ErrPermissionDenied
	}
	if ext.Status != models.ExtensionPending {
		return nil, apperrors.ErrExtensionProcessed
	}
	return ext, nil
}

func (s *extensionService) ApproveExtension(ctx context.Context, extensionID, actorID, actorHallID int64) (*models.ResidencyExtension, error) {
	ext, err := s.loadScopedPending(ctx, extensionID, actorHallID)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	if err := s.extensionStore.MarkProcessed(ctx, extensionID, models.ExtensionApproved, nil, actorID, now); err != nil {
		return nil, err
	}

	ext.Status = models.ExtensionApproved
	ext.ProcessedBy = &actorID
	ext.ProcessedAt = &now

	// The approval is committed at this point. A recalculation failure
	// leaves a stale effective date and must surface, not roll back.
	if err := s.expiryService.OnExtensionApproved(ctx, ext.StudentID); err != nil {
		return ext, err
	}

	return ext, nil
}

func (s *extensionService) RejectExtension(ctx context.Context, extensionID, actorID, actorHallID int64, reason string) (*models.ResidencyExtension, error) {
	if !validation.MeetsMinLength(reason, validation.RejectionReasonMinLength) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("rejection reason must be at least %d characters", validation.RejectionReasonMinLength))
	}

	ext, err := s.loadScopedPending(ctx, extensionID, actorHallID)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	if err := s.extensionStore.MarkProcessed(ctx, extensionID, models.ExtensionRejected, &reason, actorID, now); err != nil {
		return nil, err
	}

	ext.Status = models.ExtensionRejected
	ext.RejectionReason = &reason
	ext.ProcessedBy = &actorID
	ext.ProcessedAt = &now

	// Rejected records never feed the expiry calculation, so no
	// recalculation here.
	return ext, nil
}

func (s *extensionService) ApplyGroupPolicy(ctx context.Context, actorID, hallID int64, req *dto.ApplyGroupPolicyRequest) (*dto.GroupPolicyResult, error) {
	if !validation.IsValidSession(req.AcademicSession) {
		return nil, apperrors.NewValidationError("academicSession must be in YYYY-YYYY format")
	}
	if len(req.Departments) == 0 {
		return nil, apperrors.NewValidationError("at least one department is required")
	}
	for _, d := range req.Departments {
		if !models.IsValidDepartment(d) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown department: %s", d))
		}
	}
	if !validation.MeetsMinLength(req.Reason, validation.ExtensionReasonMinLength) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("reason must be at least %d characters", validation.ExtensionReasonMinLength))
	}
	if req.NewExpiryDate.IsZero() || !req.NewExpiryDate.After(s.nowFn()) {
		return nil, apperrors.NewValidationError("newExpiryDate must be in the future")
	}

	studentIDs, err := s.cohortStore.FindCohortStudentIDs(ctx, hallID, req.AcademicSession, req.Departments)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return nil, apperrors.ErrNoMatchingStudents
	}

	batchID := uuid.New()
	now := s.nowFn()
	session := req.AcademicSession

	// Group policy records are born approved: the provost applying the
	// policy is the approval. One batch id ties the whole application
	// together for the history aggregation.
	exts := make([]*models.ResidencyExtension, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		exts = append(exts, &models.ResidencyExtension{
			StudentID:       studentID,
			HallID:          hallID,
			NewExpiryDate:   req.NewExpiryDate,
			Type:            models.ExtensionGroupPolicy,
			Status:          models.ExtensionApproved,
			BatchID:         &batchID,
			AcademicSession: &session,
			Departments:     req.Departments,
			Reason:          req.Reason,
			ProcessedBy:     &actorID,
			ProcessedAt:     &now,
		})
	}

	if err := s.extensionStore.BulkInsert(ctx, exts); err != nil {
		return nil, err
	}

	// Records are committed; now recalculate each student explicitly.
	// A failed student leaves committed records with a stale effective
	// date, so failures are collected for reconciliation rather than
	// aborting the rest of the batch.
	result := &dto.GroupPolicyResult{
		BatchID:      batchID,
		StudentCount: len(studentIDs),
	}
	for _, studentID := range studentIDs {
		if err := s.expiryService.OnExtensionApproved(ctx, studentID); err != nil {
			result.FailedStudentIDs = append(result.FailedStudentIDs, studentID)
		}
	}

	logger.Info().
		Str("batchID", batchID.String()).
		Int64("hallID", hallID).
		Int("studentCount", result.StudentCount).
		Int("recalcFailures", len(result.FailedStudentIDs)).
		Msg("Group policy applied")

	return result, nil
}

func (s *extensionService) GroupPolicyHistory(ctx context.Context, hallID int64) ([]*models.GroupPolicyBatch, error) {
	return s.extensionStore.GroupPolicyHistory(ctx, hallID)
}

// Reconcile re-runs the recalculation for a student whose effective date
// may be stale after a recalc-after-commit failure. It is safe to call at
// any time: the computation is idempotent.
func (s *extensionService) Reconcile(ctx context.Context, studentID int64) (*dto.ReconcileResult, error) {
	effective, err := s.expiryService.RecalculateAndSaveExpiry(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileResult{
		StudentID:           studentID,
		EffectiveExpiryDate: effective,
	}, nil
}

func (s *extensionService) ListByStudent(ctx context.Context, studentID int64) ([]*models.ResidencyExtension, error) {
	if _, err := s.residencyStore.GetResidency(ctx, studentID); err != nil {
		return nil, err
	}
	return s.extensionStore.ListByStudent(ctx, studentID)
}

func (s *extensionService) ListPendingByHall(ctx context.Context, hallID int64) ([]*models.ResidencyExtension, error) {
	return s.extensionStore.ListPendingByHall(ctx, hallID)
}
