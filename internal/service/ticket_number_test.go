package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketNumber(t *testing.T) {
	day := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "HR_20240301_", numberPrefix("HR", day))
	assert.Equal(t, "HR_20240301_001", formatTicketNumber("HR", day, 1))
	assert.Equal(t, "HR_20240301_042", formatTicketNumber("HR", day, 42))
	assert.Equal(t, "HR_20240301_1000", formatTicketNumber("HR", day, 1000))
}

func TestAllocatorLockIsStablePerPrefixAndDay(t *testing.T) {
	allocator := newTicketNumberAllocator()
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	later := day.Add(5 * time.Hour)
	nextDay := day.AddDate(0, 0, 1)

	assert.Same(t, allocator.lockFor("HR", day), allocator.lockFor("HR", later))
	assert.NotSame(t, allocator.lockFor("HR", day), allocator.lockFor("IT", day))
	assert.NotSame(t, allocator.lockFor("HR", day), allocator.lockFor("HR", nextDay))
}
