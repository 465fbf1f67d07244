package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDepartment(t *testing.T) {
	assert.True(t, IsValidDepartment("CSE"))
	assert.True(t, IsValidDepartment("SOCIAL WORK"))
	assert.False(t, IsValidDepartment("cse"))
	assert.False(t, IsValidDepartment(""))
	assert.False(t, IsValidDepartment("NOPE"))
}

func TestStatusForOccupancy(t *testing.T) {
	assert.Equal(t, RoomVacant, StatusForOccupancy(0, 4))
	assert.Equal(t, RoomPartiallyOccupied, StatusForOccupancy(1, 4))
	assert.Equal(t, RoomPartiallyOccupied, StatusForOccupancy(3, 4))
	assert.Equal(t, RoomOccupied, StatusForOccupancy(4, 4))
	assert.Equal(t, RoomOccupied, StatusForOccupancy(5, 4))
}

func TestHallAvailableCapacity(t *testing.T) {
	h := &Hall{TotalCapacity: 400, CurrentOccupants: 123}
	assert.Equal(t, 277, h.AvailableCapacity())
}

func TestNewClearanceCode(t *testing.T) {
	semester := 4
	pattern := regexp.MustCompile(`^CL-CSE-4-2025-[0-9A-F]{6}$`)
	code := NewClearanceCode("cse", ClearanceSemesterFinal, &semester, 2025)
	assert.Regexp(t, pattern, code)

	assert.Regexp(t, `^CL-EEE-DE-2025-`, NewClearanceCode("EEE", ClearanceDeallocation, nil, 2025))
	assert.Regexp(t, `^CL-EEE-OT-2025-`, NewClearanceCode("EEE", ClearanceOther, nil, 2025))

	// Suffixes are random, codes should differ across calls.
	assert.NotEqual(t,
		NewClearanceCode("CSE", ClearanceOther, nil, 2025),
		NewClearanceCode("CSE", ClearanceOther, nil, 2025))
}

func TestNoticeExpired(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&Notice{}).Expired(now))
	assert.False(t, (&Notice{ExpiryDate: &future}).Expired(now))
	assert.True(t, (&Notice{ExpiryDate: &past}).Expired(now))
}
