package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/workcal"
)

var ErrNotFound = errors.New("schedule entry not found")

type (
	Repository interface {
		BulkCreateEntries(ctx context.Context, entries []Entry, exec ...core.DBExecutor) (int, error)
		// DeleteEntriesByBatch clears a batch's entire schedule grid.
		DeleteEntriesByBatch(ctx context.Context, batchID int, exec ...core.DBExecutor) error
		QueryEntriesByBatch(ctx context.Context, batchID int, exec ...core.DBExecutor) ([]Entry, error)
		// QueryEntriesByBatchInRange returns a batch's entries whose
		// session date falls within [from, to] inclusive, ordered by date.
		QueryEntriesByBatchInRange(ctx context.Context, batchID int, from, to time.Time, exec ...core.DBExecutor) ([]Entry, error)
		GetEntryByID(ctx context.Context, id int, exec ...core.DBExecutor) (Entry, error)
		UpdateEntry(ctx context.Context, e Entry, exec ...core.DBExecutor) (Entry, error)
	}

	Service struct {
		db        core.DB
		repo      Repository
		batchRepo batch.Repository
		policy    workcal.Policy
	}
)

func NewService(db core.DB, repo Repository, batchRepo batch.Repository, policy workcal.Policy) *Service {
	if policy == nil {
		policy = workcal.DefaultPolicy
	}
	return &Service{
		db:        db,
		repo:      repo,
		batchRepo: batchRepo,
		policy:    policy,
	}
}

// BulkUpload destructively replaces a batch's schedule grid: all prior
// entries are deleted and the new set inserted within one transaction, so a
// failed insert never leaves the batch half-cleared. An empty payload
// legitimately leaves the batch with zero entries. Slots uploaded without a
// date get one projected from the batch start date on the working-day
// calendar. Returns the created entries.
func (svc *Service) BulkUpload(ctx context.Context, bu BulkUpload) ([]Entry, error) {
	b, err := svc.batchRepo.GetBatchByID(ctx, bu.BatchID)
	if err != nil {
		return nil, err // batch.ErrNotFound passes through for the 404
	}

	now := time.Now().UTC()
	entries := make([]Entry, 0, len(bu.ScheduleData)*6)
	for _, week := range bu.ScheduleData {
		for _, day := range week.Days {
			content := strings.TrimSpace(day.Content)
			if content == "" {
				continue
			}
			e := Entry{
				BatchID:    bu.BatchID,
				WeekNumber: week.Week,
				DayNumber:  day.Day,
				Content:    content,
				Status:     StatusScheduled,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if day.Date != nil {
				e.SessionDate = null.TimeFrom(day.Date.UTC())
			} else {
				e.SessionDate = null.TimeFrom(workcal.ProjectSlot(b.StartDate, week.Week, day.Day, svc.policy))
			}
			if day.TrainerID != nil {
				e.TrainerID.SetValid(*day.TrainerID)
			}
			entries = append(entries, e)
		}
	}

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "beginning transaction")
	}
	if err = svc.repo.DeleteEntriesByBatch(ctx, bu.BatchID, tx); err != nil {
		_ = tx.Rollback()
		return nil, pkgerrors.Wrap(err, "clearing previous schedule")
	}
	if _, err = svc.repo.BulkCreateEntries(ctx, entries, tx); err != nil {
		_ = tx.Rollback()
		return nil, pkgerrors.Wrap(err, "bulk creating schedule entries")
	}
	if err = tx.Commit(); err != nil {
		return nil, pkgerrors.Wrap(err, "committing transaction")
	}

	return svc.repo.QueryEntriesByBatch(ctx, bu.BatchID)
}

func (svc *Service) QueryByBatch(ctx context.Context, batchID int) ([]Entry, error) {
	return svc.repo.QueryEntriesByBatch(ctx, batchID)
}

// MonthlyView returns a batch's dated entries within the given calendar month.
func (svc *Service) MonthlyView(ctx context.Context, batchID, year int, month time.Month) ([]Entry, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return svc.repo.QueryEntriesByBatchInRange(ctx, batchID, from, to)
}

func (svc *Service) GetEntry(ctx context.Context, id int) (Entry, error) {
	return svc.repo.GetEntryByID(ctx, id)
}

func (svc *Service) UpdateEntry(ctx context.Context, id int, ue UpdateEntry) (Entry, error) {
	e, err := svc.repo.GetEntryByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	if ue.Content != nil {
		e.Content = strings.TrimSpace(*ue.Content)
	}
	if ue.SessionDate != nil {
		e.SessionDate = null.TimeFrom(ue.SessionDate.UTC())
	}
	if ue.Status != "" {
		e.Status = ue.Status
	}
	if ue.TrainerID != nil {
		e.TrainerID.SetValid(*ue.TrainerID)
	}
	if ue.Notes != nil {
		e.Notes = *ue.Notes
	}
	e.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEntry(ctx, e)
}
