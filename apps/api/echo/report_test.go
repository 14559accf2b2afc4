package echoapi_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/report"
	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/core/trainer"
)

func TestReportAPI(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.do(t, http.MethodGet, "/v1/reports/dashboard-summary?year=2025&month=9", "", nil)
	checkHTTPErr(t, rec, http.StatusUnauthorized, errMissingToken.Error)

	// reports are open to any authenticated trainer
	grunt := env.createTrainer(t, "Grunt", "grunt@example.com", trainer.RoleTrainer, trainer.StatusActive)
	token := env.token(t, grunt)

	dtp, err := env.batchSvc.Create(ctx, batch.NewBatch{
		BatchName: "DTP-2025-09",
		StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	seed := func(day int, status string, batchID int) {
		s := session.Session{
			SessionDate: time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC),
			Status:      status,
			BatchID:     null.IntFrom(batchID),
			TrainerID:   null.IntFrom(grunt.ID),
			CourseID:    null.IntFrom(1),
		}
		_, err := env.sessionRepo.CreateSession(ctx, s)
		require.NoError(t, err)
	}
	seed(1, session.StatusCompleted, dtp.ID)
	seed(2, session.StatusCompleted, dtp.ID)
	seed(3, session.StatusMissed, dtp.ID)
	seed(4, session.StatusDraft, dtp.ID+1) // batch without a record

	t.Run("dashboard summary", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/reports/dashboard-summary?year=2025&month=9", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		var sum report.DashboardSummary
		decodeJSON(t, rec, &sum)
		assert.Equal(t, 4, sum.TotalSessions)
		assert.Equal(t, 2, sum.CompletedSessions)
		assert.Equal(t, 1, sum.MissedSessions)
		assert.Equal(t, 1, sum.DraftSessions)
		assert.Equal(t, 50.0, sum.CompletionRate)
	})

	t.Run("dashboard summary filtered by batch", func(t *testing.T) {
		path := fmt.Sprintf("/v1/reports/dashboard-summary?year=2025&month=9&batch_id=%d", dtp.ID)
		rec := env.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var sum report.DashboardSummary
		decodeJSON(t, rec, &sum)
		assert.Equal(t, 3, sum.TotalSessions)
		assert.Equal(t, 0, sum.DraftSessions)
	})

	t.Run("period is validated", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/reports/dashboard-summary?year=2025&month=13", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodGet, "/v1/reports/dashboard-summary?month=9", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sessions by trainer and course", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/reports/sessions-by-trainer-course?year=2025&month=9", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var loads []report.TrainerLoad
		decodeJSON(t, rec, &loads)
		require.Len(t, loads, 1)
		assert.Equal(t, "Grunt", loads[0].TrainerName)
		require.Len(t, loads[0].Courses, 1)
		assert.Equal(t, "Unknown Course", loads[0].Courses[0].CourseName)
		// the missed session is not counted as load
		assert.Equal(t, 3, loads[0].Courses[0].SessionCount)
	})

	t.Run("missed lessons", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/reports/missed-lessons?year=2025&month=9", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var rep report.MissedLessons
		decodeJSON(t, rec, &rep)
		assert.Equal(t, 1, rep.TotalMissed)
		require.Len(t, rep.Sessions, 1)
		assert.Equal(t, "Grunt", rep.Sessions[0].Trainer)
		assert.Equal(t, "DTP-2025-09", rep.Sessions[0].Batch)
	})

	t.Run("batch duration", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/reports/batch-duration", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var durations []report.BatchDuration
		decodeJSON(t, rec, &durations)
		require.Len(t, durations, 1)
		got := durations[0]
		assert.Equal(t, "DTP-2025-09", got.BatchName)
		assert.Equal(t, 3, got.TotalSessions)
		assert.Equal(t, 2, got.CompletedSessions)
		assert.Equal(t, 2, got.DurationDays)
	})
}
