package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformStats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates counts per role and status", func(t *testing.T) {
		counters := &fakeCounters{
			userCounts: map[string]int64{
				"student/approved": 1204,
				"student/pending":  37,
				"student/rejected": 12,
				"provost/approved": 8,
				"provost/pending":  2,
				"provost/rejected": 1,
			},
			hallCount:      10,
			complaintCount: 5,
			noticeCount:    42,
		}
		svc := NewStatsService(counters, counters, counters, counters)

		stats, err := svc.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1204), stats.ApprovedStudentCount)
		assert.Equal(t, int64(37), stats.PendingStudentCount)
		assert.Equal(t, int64(12), stats.RejectedStudentCount)
		assert.Equal(t, int64(8), stats.ActiveProvostCount)
		assert.Equal(t, int64(2), stats.PendingProvostCount)
		assert.Equal(t, int64(1), stats.RejectedProvostCount)
		assert.Equal(t, int64(10), stats.HallCount)
		assert.Equal(t, int64(5), stats.PendingComplaintCount)
		assert.Equal(t, int64(42), stats.NoticeCount)
	})

	t.Run("empty platform reports zeroes", func(t *testing.T) {
		counters := &fakeCounters{userCounts: map[string]int64{}}
		svc := NewStatsService(counters, counters, counters, counters)

		stats, err := svc.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.ApprovedStudentCount)
		assert.Equal(t, int64(0), stats.HallCount)
		assert.Equal(t, int64(0), stats.NoticeCount)
	})

	t.Run("count failure surfaces", func(t *testing.T) {
		counters := &fakeCounters{err: assert.AnError}
		svc := NewStatsService(counters, counters, counters, counters)

		_, err := svc.PlatformStats(ctx)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
