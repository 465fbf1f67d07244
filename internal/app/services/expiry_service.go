package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/logger"
)

// ResidencyStore is the student data the expiry engine reads and writes
type ResidencyStore interface {
	GetResidency(ctx context.Context, studentID int64) (*models.StudentResidency, error)
	UpdateEffectiveExpiry(ctx context.Context, studentID int64, effectiveExpiry time.Time) error
}

// ApprovedExtensionStore supplies the approved extension dates the engine
// folds into the effective expiry.
type ApprovedExtensionStore interface {
	ApprovedDatesByStudent(ctx context.Context, studentID int64) ([]time.Time, error)
}

// ExpiryService recomputes effective expiry dates. The effective date is a
// pure function of current state: the max of the base expiry date and every
// approved extension date. It is recomputed from scratch on every call and
// never adjusted incrementally, so repeated runs converge on the same value
// no matter how approvals interleave.
type ExpiryService interface {
	// RecalculateAndSaveExpiry recomputes and persists a student's
	// effective expiry date, returning the stored value.
	RecalculateAndSaveExpiry(ctx context.Context, studentID int64) (time.Time, error)

	// OnExtensionApproved is the single entry point every approval path
	// calls after committing an approved record. A failure here means the
	// stored effective date is stale relative to committed records; the
	// returned error wraps ErrExpiryRecalculation so handlers escalate it.
	OnExtensionApproved(ctx context.Context, studentID int64) error
}

type expiryService struct {
	residencyStore ResidencyStore
	extensionStore ApprovedExtensionStore
}

// NewExpiryService creates a new ExpiryService
func NewExpiryService(residencyStore ResidencyStore, extensionStore ApprovedExtensionStore) ExpiryService {
	return &expiryService{
		residencyStore: residencyStore,
		extensionStore: extensionStore,
	}
}

// EffectiveExpiry folds the base date and approved extension dates into the
// effective expiry. A NULL base date contributes the Unix epoch, so a
// student with no base date and no extensions resolves to the epoch rather
// than an error, and any approved extension dominates it.
func EffectiveExpiry(baseExpiry *time.Time, approvedDates []time.Time) time.Time {
	effective := time.Unix(0, 0).UTC()
	if baseExpiry != nil {
		effective = *baseExpiry
	}
	for _, d := range approvedDates {
		if d.After(effective) {
			effective = d
		}
	}
	return effective
}

func (s *expiryService) RecalculateAndSaveExpiry(ctx context.Context, studentID int64) (time.Time, error) {
	residency, err := s.residencyStore.GetResidency(ctx, studentID)
	if err != nil {
		return time.Time{}, err
	}

	approvedDates, err := s.extensionStore.ApprovedDatesByStudent(ctx, studentID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load approved extensions for student ID=%d: %w", studentID, err)
	}

	effective := EffectiveExpiry(residency.BaseExpiryDate, approvedDates)

	if err := s.residencyStore.UpdateEffectiveExpiry(ctx, studentID, effective); err != nil {
		return time.Time{}, err
	}

	logger.Info().
		Int64("studentID", studentID).
		Time("effectiveExpiry", effective).
		Int("approvedExtensions", len(approvedDates)).
		Msg("Effective expiry date recalculated")

	return effective, nil
}

func (s *expiryService) OnExtensionApproved(ctx context.Context, studentID int64) error {
	if _, err := s.RecalculateAndSaveExpiry(ctx, studentID); err != nil {
		logger.Error().Err(err).
			Bool("critical", true).
			Int64("studentID", studentID).
			Msg("Expiry recalculation failed after approval commit; stored effective date is stale")
		return fmt.Errorf("%w: student ID=%d: %v", apperrors.ErrExpiryRecalculation, studentID, err)
	}
	return nil
}
