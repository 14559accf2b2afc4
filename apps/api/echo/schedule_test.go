package echoapi_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/schedule"
	"github.com/etasha-dev/scheduler/core/trainer"
)

func TestParseCSVAPI(t *testing.T) {
	env := newTestEnv(t)
	boss := env.createTrainer(t, "Sam Boss", "sam@etasha.org", trainer.RoleScheduler, trainer.StatusActive)
	bossToken := env.token(t, boss)

	t.Run("valid grid", func(t *testing.T) {
		csv := "week,Session 1,Session 2\n" +
			"Day 1,Intro,Ice breaker\n" +
			"Day 2,Typing basics,\n"
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/parse-csv", bossToken, map[string]string{"csvData": csv})
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var resp struct {
			Success bool                    `json:"success"`
			Data    []schedule.WeekSchedule `json:"data"`
		}
		decodeJSON(t, rec, &resp)
		assert.True(t, resp.Success)
		require.NotEmpty(t, resp.Data)
		assert.NotEmpty(t, resp.Data[0].Days)
	})

	t.Run("csv without day rows", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/parse-csv", bossToken, map[string]string{"csvData": "just,some,cells"})
		checkHTTPErr(t, rec, http.StatusBadRequest, "no schedule rows found in the CSV data")
	})

	t.Run("missing csvData", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/parse-csv", bossToken, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBatchScheduleAPI(t *testing.T) {
	env := newTestEnv(t)
	boss := env.createTrainer(t, "Sam Boss", "sam@etasha.org", trainer.RoleScheduler, trainer.StatusActive)
	bossToken := env.token(t, boss)

	// Monday
	start := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	b, err := env.batchSvc.Create(context.Background(), batch.NewBatch{
		BatchName: "DTP-2025-09",
		StartDate: start,
	})
	require.NoError(t, err)

	t.Run("batch picker", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/batch-schedules/batches", bossToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var batches []batch.Batch
		decodeJSON(t, rec, &batches)
		require.Len(t, batches, 1)
		assert.Equal(t, "DTP-2025-09", batches[0].BatchName)
	})

	t.Run("bulk-upload requires a batch id", func(t *testing.T) {
		body := schedule.BulkUpload{ScheduleData: []schedule.WeekSchedule{}}
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/bulk-upload", bossToken, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bulk-upload rejects an unknown batch", func(t *testing.T) {
		body := schedule.BulkUpload{BatchID: 999}
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/bulk-upload", bossToken, body)
		checkHTTPErr(t, rec, http.StatusNotFound, "batch not found")
	})

	var uploaded []schedule.Entry

	t.Run("bulk-upload projects working days", func(t *testing.T) {
		body := schedule.BulkUpload{
			BatchID: b.ID,
			ScheduleData: []schedule.WeekSchedule{
				{Week: 1, Days: []schedule.DaySchedule{
					{Day: 1, Content: "Intro"},
					{Day: 5, Content: "Typing basics"},
				}},
			},
		}
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/bulk-upload", bossToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

		var resp struct {
			Success bool             `json:"success"`
			Message string           `json:"message"`
			Data    []schedule.Entry `json:"data"`
		}
		decodeJSON(t, rec, &resp)
		assert.True(t, resp.Success)
		require.Len(t, resp.Data, 2)
		uploaded = resp.Data

		assert.Equal(t, "Intro", resp.Data[0].Content)
		require.True(t, resp.Data[0].SessionDate.Valid)
		assert.True(t, resp.Data[0].SessionDate.Time.Equal(start)) // day 1 lands on the start date
		// day 5 is that same week's Friday
		friday := time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)
		require.True(t, resp.Data[1].SessionDate.Valid)
		assert.True(t, resp.Data[1].SessionDate.Time.Equal(friday))
	})

	t.Run("grid fetch", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, fmt.Sprintf("/v1/batch-schedules/%d", b.ID), bossToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var entries []schedule.Entry
		decodeJSON(t, rec, &entries)
		assert.Len(t, entries, 2)
	})

	t.Run("monthly view", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, fmt.Sprintf("/v1/batch-schedules/%d/monthly/2025/9", b.ID), bossToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var entries []schedule.Entry
		decodeJSON(t, rec, &entries)
		assert.Len(t, entries, 2)

		rec = env.do(t, http.MethodGet, fmt.Sprintf("/v1/batch-schedules/%d/monthly/2025/10", b.ID), bossToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeJSON(t, rec, &entries)
		assert.Empty(t, entries)
	})

	t.Run("entry update", func(t *testing.T) {
		require.NotEmpty(t, uploaded)
		body := map[string]string{"status": schedule.StatusCompleted}
		rec := env.do(t, http.MethodPut, fmt.Sprintf("/v1/batch-schedules/entry/%d", uploaded[0].ID), bossToken, body)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var e schedule.Entry
		decodeJSON(t, rec, &e)
		assert.Equal(t, schedule.StatusCompleted, e.Status)
		assert.Equal(t, "Intro", e.Content)
	})

	t.Run("unknown entry", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, fmt.Sprintf("/v1/batch-schedules/entry/%d", 9999), bossToken, map[string]string{})
		checkHTTPErr(t, rec, http.StatusNotFound, "schedule entry not found")
	})

	t.Run("re-upload replaces the grid", func(t *testing.T) {
		body := schedule.BulkUpload{
			BatchID: b.ID,
			ScheduleData: []schedule.WeekSchedule{
				{Week: 1, Days: []schedule.DaySchedule{{Day: 1, Content: "Fresh start"}}},
			},
		}
		rec := env.do(t, http.MethodPost, "/v1/batch-schedules/bulk-upload", bossToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

		var resp struct {
			Data []schedule.Entry `json:"data"`
		}
		decodeJSON(t, rec, &resp)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Fresh start", resp.Data[0].Content)
	})
}
