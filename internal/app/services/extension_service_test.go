package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

type extensionFixture struct {
	svc      ExtensionService
	extStore *fakeExtensionStore
	resStore *fakeResidencyStore
	cohort   *fakeCohortStore
	now      time.Time
}

func newExtensionFixture() *extensionFixture {
	resStore := newFakeResidencyStore()
	extStore := newFakeExtensionStore()
	cohort := &fakeCohortStore{}
	expiry := NewExpiryService(resStore, extStore)
	svc := NewExtensionService(extStore, resStore, cohort, expiry)

	now := date(2025, time.March, 1)
	svc.(*extensionService).nowFn = func() time.Time { return now }

	return &extensionFixture{
		svc:      svc,
		extStore: extStore,
		resStore: resStore,
		cohort:   cohort,
		now:      now,
	}
}

func (f *extensionFixture) addStudent(id, hallID int64, base *time.Time) {
	f.resStore.add(&models.StudentResidency{
		UserID:          id,
		HallID:          hallID,
		AcademicSession: "2020-2021",
		Department:      "CSE",
		BaseExpiryDate:  base,
	})
}

func TestRequestExtension(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)
	validReq := func() *dto.RequestExtensionRequest {
		return &dto.RequestExtensionRequest{
			NewExpiryDate: date(2025, time.December, 31),
			Reason:        "Final year thesis work requires continued residency",
		}
	}

	t.Run("creates a pending individual record", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)

		ext, err := f.svc.RequestExtension(ctx, 1, validReq())
		require.NoError(t, err)
		assert.Equal(t, models.ExtensionPending, ext.Status)
		assert.Equal(t, models.ExtensionIndividual, ext.Type)
		assert.Equal(t, int64(10), ext.HallID)
		assert.NotZero(t, ext.ID)
	})

	t.Run("short reason rejected", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)

		req := validReq()
		req.Reason = "short"
		_, err := f.svc.RequestExtension(ctx, 1, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("past date rejected", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)

		req := validReq()
		req.NewExpiryDate = date(2024, time.January, 1)
		_, err := f.svc.RequestExtension(ctx, 1, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("second pending request conflicts", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)

		_, err := f.svc.RequestExtension(ctx, 1, validReq())
		require.NoError(t, err)
		_, err = f.svc.RequestExtension(ctx, 1, validReq())
		assert.ErrorIs(t, err, apperrors.ErrDuplicatePendingRequest)
	})

	t.Run("rejected request does not block a new one", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)

		ext, err := f.svc.RequestExtension(ctx, 1, validReq())
		require.NoError(t, err)
		_, err = f.svc.RejectExtension(ctx, ext.ID, 5, 10, "Not eligible this semester")
		require.NoError(t, err)

		_, err = f.svc.RequestExtension(ctx, 1, validReq())
		assert.NoError(t, err)
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newExtensionFixture()
		_, err := f.svc.RequestExtension(ctx, 99, validReq())
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestApproveExtension(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)
	extDate := date(2025, time.December, 31)

	submit := func(f *extensionFixture, studentID int64) *models.ResidencyExtension {
		ext, err := f.svc.RequestExtension(ctx, studentID, &dto.RequestExtensionRequest{
			NewExpiryDate: extDate,
			Reason:        "Final year thesis work requires continued residency",
		})
		require.NoError(t, err)
		return ext
	}

	t.Run("approval recalculates the effective date", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)
		ext := submit(f, 1)

		approved, err := f.svc.ApproveExtension(ctx, ext.ID, 5, 10)
		require.NoError(t, err)
		assert.Equal(t, models.ExtensionApproved, approved.Status)
		require.NotNil(t, approved.ProcessedBy)
		assert.Equal(t, int64(5), *approved.ProcessedBy)

		stored := f.resStore.effective(1)
		require.NotNil(t, stored)
		assert.True(t, stored.Equal(extDate))
	})

	t.Run("foreign hall is denied before learning record state", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)
		ext := submit(f, 1)

		_, err := f.svc.ApproveExtension(ctx, ext.ID, 5, 20)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Equal(t, models.ExtensionPending, f.extStore.record(ext.ID).Status)
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)
		ext := submit(f, 1)

		_, err := f.svc.ApproveExtension(ctx, ext.ID, 5, 10)
		require.NoError(t, err)
		_, err = f.svc.ApproveExtension(ctx, ext.ID, 5, 10)
		assert.ErrorIs(t, err, apperrors.ErrExtensionProcessed)
	})

	t.Run("recalc failure surfaces but the approval stands", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)
		ext := submit(f, 1)
		f.resStore.updateErr = assert.AnError

		approved, err := f.svc.ApproveExtension(ctx, ext.ID, 5, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrExpiryRecalculation)
		require.NotNil(t, approved)
		assert.Equal(t, models.ExtensionApproved, approved.Status)
		assert.Equal(t, models.ExtensionApproved, f.extStore.record(ext.ID).Status)
	})

	t.Run("unknown extension", func(t *testing.T) {
		f := newExtensionFixture()
		_, err := f.svc.ApproveExtension(ctx, 42, 5, 10)
		assert.ErrorIs(t, err, apperrors.ErrExtensionNotFound)
	})
}

func TestRejectExtension(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)

	t.Run("rejection records the reason and skips recalculation", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)
		ext, err := f.svc.RequestExtension(ctx, 1, &dto.RequestExtensionRequest{
			NewExpiryDate: date(2025, time.December, 31),
			Reason:        "Final year thesis work requires continued residency",
		})
		require.NoError(t, err)

		rejected, err := f.svc.RejectExtension(ctx, ext.ID, 5, 10, "Not eligible this semester")
		require.NoError(t, err)
		assert.Equal(t, models.ExtensionRejected, rejected.Status)
		require.NotNil(t, rejected.RejectionReason)
		assert.Equal(t, "Not eligible this semester", *rejected.RejectionReason)

		assert.Zero(t, f.resStore.updateCount)
	})

	t.Run("rejection reason is mandatory", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)

		_, err := f.svc.RejectExtension(ctx, 1, 5, 10, "no")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestApplyGroupPolicy(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)
	policyDate := date(2025, time.December, 31)

	validReq := func() *dto.ApplyGroupPolicyRequest {
		return &dto.ApplyGroupPolicyRequest{
			AcademicSession: "2020-2021",
			Departments:     []string{"CSE", "EEE"},
			NewExpiryDate:   policyDate,
			Reason:          "Session extension due to academic calendar shift",
		}
	}

	t.Run("inserts one pre-approved record per cohort student", func(t *testing.T) {
		f := newExtensionFixture()
		for id := int64(1); id <= 3; id++ {
			f.addStudent(id, 10, &base)
		}
		f.cohort.studentIDs = []int64{1, 2, 3}

		result, err := f.svc.ApplyGroupPolicy(ctx, 5, 10, validReq())
		require.NoError(t, err)
		assert.Equal(t, 3, result.StudentCount)
		assert.Empty(t, result.FailedStudentIDs)

		for id := int64(1); id <= 3; id++ {
			exts, err := f.svc.ListByStudent(ctx, id)
			require.NoError(t, err)
			require.Len(t, exts, 1)
			ext := exts[0]
			assert.Equal(t, models.ExtensionGroupPolicy, ext.Type)
			assert.Equal(t, models.ExtensionApproved, ext.Status)
			require.NotNil(t, ext.BatchID)
			assert.Equal(t, result.BatchID, *ext.BatchID)
			require.NotNil(t, ext.ProcessedBy)
			assert.Equal(t, int64(5), *ext.ProcessedBy)

			stored := f.resStore.effective(id)
			require.NotNil(t, stored)
			assert.True(t, stored.Equal(policyDate))
		}
	})

	t.Run("recalc failures are collected without aborting the batch", func(t *testing.T) {
		f := newExtensionFixture()
		f.addStudent(1, 10, &base)
		f.addStudent(2, 10, &base)
		// Student 3 has extension records but no residency row, so its
		// recalculation fails while the others succeed.
		f.cohort.studentIDs = []int64{1, 2, 3}

		result, err := f.svc.ApplyGroupPolicy(ctx, 5, 10, validReq())
		require.NoError(t, err)
		assert.Equal(t, 3, result.StudentCount)
		assert.Equal(t, []int64{3}, result.FailedStudentIDs)

		// The failed student's records are still committed.
		exts, err := f.extStore.ListByStudent(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, exts, 1)
	})

	t.Run("empty cohort", func(t *testing.T) {
		f := newExtensionFixture()
		_, err := f.svc.ApplyGroupPolicy(ctx, 5, 10, validReq())
		assert.ErrorIs(t, err, apperrors.ErrNoMatchingStudents)
	})

	t.Run("validation", func(t *testing.T) {
		mutations := map[string]func(*dto.ApplyGroupPolicyRequest){
			"bad session format":   func(r *dto.ApplyGroupPolicyRequest) { r.AcademicSession = "2020/21" },
			"no departments":       func(r *dto.ApplyGroupPolicyRequest) { r.Departments = nil },
			"unknown department":   func(r *dto.ApplyGroupPolicyRequest) { r.Departments = []string{"NOPE"} },
			"short reason":         func(r *dto.ApplyGroupPolicyRequest) { r.Reason = "short" },
			"expiry not in future": func(r *dto.ApplyGroupPolicyRequest) { r.NewExpiryDate = date(2024, time.January, 1) },
		}
		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				f := newExtensionFixture()
				f.cohort.studentIDs = []int64{1}
				req := validReq()
				mutate(req)
				_, err := f.svc.ApplyGroupPolicy(ctx, 5, 10, req)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			})
		}
	})
}

func TestGroupPolicyHistory(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)

	f := newExtensionFixture()
	for id := int64(1); id <= 2; id++ {
		f.addStudent(id, 10, &base)
	}
	f.cohort.studentIDs = []int64{1, 2}

	result, err := f.svc.ApplyGroupPolicy(ctx, 5, 10, &dto.ApplyGroupPolicyRequest{
		AcademicSession: "2020-2021",
		Departments:     []string{"CSE"},
		NewExpiryDate:   date(2025, time.December, 31),
		Reason:          "Session extension due to academic calendar shift",
	})
	require.NoError(t, err)

	batches, err := f.svc.GroupPolicyHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, result.BatchID, batches[0].BatchID)
	assert.Equal(t, 2, batches[0].StudentCount)
	assert.Equal(t, "2020-2021", batches[0].AcademicSession)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	base := date(2025, time.June, 30)
	extDate := date(2025, time.December, 31)

	f := newExtensionFixture()
	f.addStudent(1, 10, &base)
	ext, err := f.svc.RequestExtension(ctx, 1, &dto.RequestExtensionRequest{
		NewExpiryDate: extDate,
		Reason:        "Final year thesis work requires continued residency",
	})
	require.NoError(t, err)

	// Approve with a broken residency writer to simulate a stale
	// effective date, then reconcile once the store recovers.
	f.resStore.updateErr = assert.AnError
	_, err = f.svc.ApproveExtension(ctx, ext.ID, 5, 10)
	require.ErrorIs(t, err, apperrors.ErrExpiryRecalculation)
	assert.Nil(t, f.resStore.effective(1))

	f.resStore.updateErr = nil
	result, err := f.svc.Reconcile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.StudentID)
	assert.True(t, result.EffectiveExpiryDate.Equal(extDate))

	stored := f.resStore.effective(1)
	require.NotNil(t, stored)
	assert.True(t, stored.Equal(extDate))
}

func TestListByStudent(t *testing.T) {
	ctx := context.Background()

	f := newExtensionFixture()
	_, err := f.svc.ListByStudent(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
