package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/schedule"
	dummydb "github.com/etasha-dev/scheduler/storage/database/dummy"
)

func newTestService(t *testing.T, startDate time.Time) (*schedule.Service, batch.Batch) {
	t.Helper()
	db := dummydb.Open()
	batchRepo := dummydb.NewBatchRepository(db)
	b, err := batchRepo.CreateBatch(context.Background(), batch.Batch{
		BatchName: "B-2025-09",
		StartDate: startDate,
		Status:    batch.StatusOngoing,
	})
	require.NoError(t, err)
	return schedule.NewService(db, dummydb.NewScheduleRepository(db), batchRepo, nil), b
}

func TestBulkUploadProjectsDates(t *testing.T) {
	ctx := context.Background()
	// Monday; the 2nd Saturday of Sept 2025 falls on the 13th
	start := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	svc, b := newTestService(t, start)

	entries, err := svc.BulkUpload(ctx, schedule.BulkUpload{
		BatchID: b.ID,
		ScheduleData: []schedule.WeekSchedule{
			{Week: 1, Days: []schedule.DaySchedule{
				{Day: 1, Content: "Intro"},
				{Day: 5, Content: "Review"},
				{Day: 6, Content: "Assessment"},
			}},
			{Week: 2, Days: []schedule.DaySchedule{
				{Day: 1, Content: "Comms"},
				{Day: 2, Content: ""}, // blank slots are dropped
			}},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, start, entries[0].SessionDate.Time)
	// day 5 lands on Friday the 12th; the 13th is a non-working Saturday
	assert.Equal(t, start.AddDate(0, 0, 4), entries[1].SessionDate.Time)
	assert.Equal(t, start.AddDate(0, 0, 7), entries[2].SessionDate.Time)
	// week 2 day 1 shares the date with week 1 day 6 on a 5-working-day week
	assert.Equal(t, start.AddDate(0, 0, 7), entries[3].SessionDate.Time)

	for _, e := range entries {
		assert.Equal(t, schedule.StatusScheduled, e.Status)
		assert.Equal(t, b.ID, e.BatchID)
	}
}

func TestBulkUploadReplacesPreviousGrid(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	svc, b := newTestService(t, start)

	_, err := svc.BulkUpload(ctx, schedule.BulkUpload{
		BatchID: b.ID,
		ScheduleData: []schedule.WeekSchedule{
			{Week: 1, Days: []schedule.DaySchedule{{Day: 1, Content: "Old"}, {Day: 2, Content: "Older"}}},
		},
	})
	require.NoError(t, err)

	entries, err := svc.BulkUpload(ctx, schedule.BulkUpload{
		BatchID: b.ID,
		ScheduleData: []schedule.WeekSchedule{
			{Week: 1, Days: []schedule.DaySchedule{{Day: 1, Content: "New"}}},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "New", entries[0].Content)
}

func TestBulkUploadEmptyPayloadClearsGrid(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	svc, b := newTestService(t, start)

	_, err := svc.BulkUpload(ctx, schedule.BulkUpload{
		BatchID:      b.ID,
		ScheduleData: []schedule.WeekSchedule{{Week: 1, Days: []schedule.DaySchedule{{Day: 1, Content: "X"}}}},
	})
	require.NoError(t, err)

	entries, err := svc.BulkUpload(ctx, schedule.BulkUpload{BatchID: b.ID})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBulkUploadUnknownBatch(t *testing.T) {
	start := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, start)

	_, err := svc.BulkUpload(context.Background(), schedule.BulkUpload{BatchID: 999})
	assert.ErrorIs(t, err, batch.ErrNotFound)
}

func TestMonthlyView(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, time.September, 29, 0, 0, 0, 0, time.UTC) // Monday
	svc, b := newTestService(t, start)

	_, err := svc.BulkUpload(ctx, schedule.BulkUpload{
		BatchID: b.ID,
		ScheduleData: []schedule.WeekSchedule{
			{Week: 1, Days: []schedule.DaySchedule{
				{Day: 1, Content: "Sept slot"}, // Sept 29
				{Day: 3, Content: "Oct slot"},  // Oct 1
			}},
		},
	})
	require.NoError(t, err)

	sept, err := svc.MonthlyView(ctx, b.ID, 2025, time.September)
	require.NoError(t, err)
	require.Len(t, sept, 1)
	assert.Equal(t, "Sept slot", sept[0].Content)

	oct, err := svc.MonthlyView(ctx, b.ID, 2025, time.October)
	require.NoError(t, err)
	require.Len(t, oct, 1)
	assert.Equal(t, "Oct slot", oct[0].Content)
}
