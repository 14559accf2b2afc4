package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/schedule"
)

type entryRow struct {
	ID          int       `db:"id"`
	BatchID     int       `db:"batch_id"`
	WeekNumber  int       `db:"week_number"`
	DayNumber   int       `db:"day_number"`
	Content     string    `db:"session_content"`
	SessionDate null.Time `db:"session_date"`
	Status      string    `db:"status"`
	TrainerID   null.Int  `db:"trainer_id"`
	Notes       string    `db:"notes"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r entryRow) unpack() schedule.Entry {
	return schedule.Entry{
		ID:          r.ID,
		BatchID:     r.BatchID,
		WeekNumber:  r.WeekNumber,
		DayNumber:   r.DayNumber,
		Content:     r.Content,
		SessionDate: r.SessionDate,
		Status:      r.Status,
		TrainerID:   r.TrainerID,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type scheduleRepository struct {
	exec core.DBExecutor
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(exec core.DBExecutor) *scheduleRepository {
	return &scheduleRepository{exec: exec}
}

func (repo scheduleRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return schedule.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo scheduleRepository) unpackSlice(rows []entryRow) []schedule.Entry {
	entries := make([]schedule.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.unpack())
	}
	return entries
}

func (repo scheduleRepository) BulkCreateEntries(ctx context.Context, entries []schedule.Entry, exec ...core.DBExecutor) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	query := `
INSERT INTO batch_schedule (batch_id, week_number, day_number, session_content, session_date, status, trainer_id, notes, created_at, updated_at)
VALUES (:batch_id, :week_number, :day_number, :session_content, :session_date, :status, :trainer_id, :notes, :created_at, :updated_at)`
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entryRow{
			BatchID:     e.BatchID,
			WeekNumber:  e.WeekNumber,
			DayNumber:   e.DayNumber,
			Content:     e.Content,
			SessionDate: e.SessionDate,
			Status:      e.Status,
			TrainerID:   e.TrainerID,
			Notes:       e.Notes,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	res, err := getExec(repo.exec, exec).NamedExecContext(ctx, query, rows)
	if err != nil {
		return 0, errors.Wrap(err, "bulk inserting schedule entries")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(n), nil
}

func (repo scheduleRepository) DeleteEntriesByBatch(ctx context.Context, batchID int, exec ...core.DBExecutor) error {
	query := `DELETE FROM batch_schedule WHERE batch_id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, batchID); err != nil {
		return errors.Wrap(err, "deleting schedule entries")
	}
	return nil
}

func (repo scheduleRepository) QueryEntriesByBatch(ctx context.Context, batchID int, exec ...core.DBExecutor) ([]schedule.Entry, error) {
	var rows []entryRow
	query := `
SELECT * FROM batch_schedule
WHERE batch_id = $1
ORDER BY week_number, day_number, id`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query, batchID); err != nil {
		return nil, errors.Wrap(err, "querying schedule entries")
	}
	return repo.unpackSlice(rows), nil
}

func (repo scheduleRepository) QueryEntriesByBatchInRange(ctx context.Context, batchID int, from, to time.Time, exec ...core.DBExecutor) ([]schedule.Entry, error) {
	var rows []entryRow
	query := `
SELECT * FROM batch_schedule
WHERE batch_id = $1 AND session_date BETWEEN $2 AND $3
ORDER BY session_date, day_number`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query, batchID, from, to); err != nil {
		return nil, errors.Wrap(err, "querying schedule entries by date")
	}
	return repo.unpackSlice(rows), nil
}

func (repo scheduleRepository) GetEntryByID(ctx context.Context, id int, exec ...core.DBExecutor) (schedule.Entry, error) {
	var row entryRow
	query := `SELECT * FROM batch_schedule WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return schedule.Entry{}, repo.trapNoRowsErr(err, "finding schedule entry by ID")
	}
	return row.unpack(), nil
}

func (repo scheduleRepository) UpdateEntry(ctx context.Context, e schedule.Entry, exec ...core.DBExecutor) (schedule.Entry, error) {
	query := `
UPDATE batch_schedule
SET session_content = $1, session_date = $2, status = $3, trainer_id = $4, notes = $5, updated_at = $6
WHERE id = $7`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		e.Content, e.SessionDate, e.Status, e.TrainerID, e.Notes, e.UpdatedAt, e.ID)
	if err != nil {
		return schedule.Entry{}, errors.Wrap(err, "updating schedule entry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	return e, nil
}
