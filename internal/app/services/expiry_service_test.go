package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveExpiry(t *testing.T) {
	base := date(2025, time.June, 30)

	tests := []struct {
		name          string
		baseExpiry    *time.Time
		approvedDates []time.Time
		want          time.Time
	}{
		{
			name: "no base date and no extensions resolves to epoch",
			want: time.Unix(0, 0).UTC(),
		},
		{
			name:       "base date only",
			baseExpiry: &base,
			want:       base,
		},
		{
			name:          "extension beyond base wins",
			baseExpiry:    &base,
			approvedDates: []time.Time{date(2025, time.December, 31)},
			want:          date(2025, time.December, 31),
		},
		{
			name:          "extension before base is ignored",
			baseExpiry:    &base,
			approvedDates: []time.Time{date(2025, time.January, 15)},
			want:          base,
		},
		{
			name:       "maximum wins regardless of approval order",
			baseExpiry: &base,
			approvedDates: []time.Time{
				date(2026, time.June, 30),
				date(2025, time.December, 31),
			},
			want: date(2026, time.June, 30),
		},
		{
			name:          "extension dominates missing base date",
			approvedDates: []time.Time{date(2025, time.September, 1)},
			want:          date(2025, time.September, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveExpiry(tt.baseExpiry, tt.approvedDates)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestRecalculateAndSaveExpiry(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)

	t.Run("persists and returns the recomputed date", func(t *testing.T) {
		resStore := newFakeResidencyStore()
		resStore.add(&models.StudentResidency{UserID: 1, HallID: 10, BaseExpiryDate: &base})
		extStore := newFakeExtensionStore()
		extStore.records = append(extStore.records, &models.ResidencyExtension{
			ID: 1, StudentID: 1, HallID: 10,
			NewExpiryDate: date(2025, time.December, 31),
			Type:          models.ExtensionIndividual,
			Status:        models.ExtensionApproved,
		})
		svc := NewExpiryService(resStore, extStore)

		got, err := svc.RecalculateAndSaveExpiry(ctx, 1)
		require.NoError(t, err)
		assert.True(t, got.Equal(date(2025, time.December, 31)))

		stored := resStore.effective(1)
		require.NotNil(t, stored)
		assert.True(t, stored.Equal(got))
	})

	t.Run("repeated runs converge on the same value", func(t *testing.T) {
		resStore := newFakeResidencyStore()
		resStore.add(&models.StudentResidency{UserID: 1, HallID: 10, BaseExpiryDate: &base})
		extStore := newFakeExtensionStore()
		svc := NewExpiryService(resStore, extStore)

		first, err := svc.RecalculateAndSaveExpiry(ctx, 1)
		require.NoError(t, err)
		second, err := svc.RecalculateAndSaveExpiry(ctx, 1)
		require.NoError(t, err)
		assert.True(t, first.Equal(second))
	})

	t.Run("unknown student", func(t *testing.T) {
		svc := NewExpiryService(newFakeResidencyStore(), newFakeExtensionStore())
		_, err := svc.RecalculateAndSaveExpiry(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		resStore := newFakeResidencyStore()
		resStore.add(&models.StudentResidency{UserID: 1, HallID: 10, BaseExpiryDate: &base})
		resStore.updateErr = errors.New("connection reset")
		svc := NewExpiryService(resStore, newFakeExtensionStore())

		_, err := svc.RecalculateAndSaveExpiry(ctx, 1)
		assert.Error(t, err)
	})
}

func TestOnExtensionApproved(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)

	t.Run("success", func(t *testing.T) {
		resStore := newFakeResidencyStore()
		resStore.add(&models.StudentResidency{UserID: 1, HallID: 10, BaseExpiryDate: &base})
		svc := NewExpiryService(resStore, newFakeExtensionStore())

		require.NoError(t, svc.OnExtensionApproved(ctx, 1))
	})

	t.Run("failure wraps the recalculation sentinel", func(t *testing.T) {
		resStore := newFakeResidencyStore()
		resStore.add(&models.StudentResidency{UserID: 1, HallID: 10, BaseExpiryDate: &base})
		resStore.updateErr = errors.New("connection reset")
		svc := NewExpiryService(resStore, newFakeExtensionStore())

		err := svc.OnExtensionApproved(ctx, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrExpiryRecalculation)
	})
}
