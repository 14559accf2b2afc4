package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/session"
)

type sessionRow struct {
	ID          int       `db:"id"`
	SessionDate time.Time `db:"session_date"`
	Status      string    `db:"status"`
	Notes       string    `db:"notes"`
	BatchID     null.Int  `db:"batch_id"`
	TrainerID   null.Int  `db:"trainer_id"`
	CourseID    null.Int  `db:"course_id"`
	ProgramID   null.Int  `db:"program_id"`
	CenterID    null.Int  `db:"center_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r sessionRow) unpack() session.Session {
	return session.Session{
		ID:          r.ID,
		SessionDate: r.SessionDate,
		Status:      r.Status,
		Notes:       r.Notes,
		BatchID:     r.BatchID,
		TrainerID:   r.TrainerID,
		CourseID:    r.CourseID,
		ProgramID:   r.ProgramID,
		CenterID:    r.CenterID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type sessionRepository struct {
	exec core.DBExecutor
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(exec core.DBExecutor) *sessionRepository {
	return &sessionRepository{exec: exec}
}

func (repo sessionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return session.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo sessionRepository) unpackSlice(rows []sessionRow) []session.Session {
	sessions := make([]session.Session, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, r.unpack())
	}
	return sessions
}

func (repo sessionRepository) CreateSession(ctx context.Context, s session.Session, exec ...core.DBExecutor) (session.Session, error) {
	query := `
INSERT INTO session (session_date, status, notes, batch_id, trainer_id, course_id, program_id, center_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	err := getExec(repo.exec, exec).GetContext(ctx, &s.ID, query,
		s.SessionDate, s.Status, s.Notes, s.BatchID, s.TrainerID, s.CourseID, s.ProgramID, s.CenterID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "inserting session")
	}
	return s, nil
}

func (repo sessionRepository) BulkCreateSessions(ctx context.Context, ss []session.Session, exec ...core.DBExecutor) (int, error) {
	if len(ss) == 0 {
		return 0, nil
	}
	query := `
INSERT INTO session (session_date, status, notes, batch_id, trainer_id, course_id, program_id, center_id, created_at, updated_at)
VALUES (:session_date, :status, :notes, :batch_id, :trainer_id, :course_id, :program_id, :center_id, :created_at, :updated_at)`
	rows := make([]sessionRow, 0, len(ss))
	for _, s := range ss {
		rows = append(rows, sessionRow{
			SessionDate: s.SessionDate,
			Status:      s.Status,
			Notes:       s.Notes,
			BatchID:     s.BatchID,
			TrainerID:   s.TrainerID,
			CourseID:    s.CourseID,
			ProgramID:   s.ProgramID,
			CenterID:    s.CenterID,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	res, err := getExec(repo.exec, exec).NamedExecContext(ctx, query, rows)
	if err != nil {
		return 0, errors.Wrap(err, "bulk inserting sessions")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(n), nil
}

// sessionOrderCols whitelists the columns client-supplied orderings may touch.
var sessionOrderCols = map[string]bool{
	"id":           true,
	"session_date": true,
	"status":       true,
	"batch_id":     true,
	"trainer_id":   true,
	"course_id":    true,
	"created_at":   true,
	"updated_at":   true,
}

func (repo sessionRepository) QueryAllSessions(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]session.Session, error) {
	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if sessionOrderCols[ord.Field] {
			clauses = append(clauses, ord.String())
		}
	}
	orderBy := "session_date"
	if len(clauses) > 0 {
		orderBy = strings.Join(clauses, ", ")
	}

	var rows []sessionRow
	query := `SELECT * FROM session ORDER BY ` + orderBy
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	return repo.unpackSlice(rows), nil
}

func (repo sessionRepository) QuerySessionsInRange(ctx context.Context, from, to time.Time, exec ...core.DBExecutor) ([]session.Session, error) {
	var rows []sessionRow
	query := `
SELECT * FROM session
WHERE session_date BETWEEN $1 AND $2
ORDER BY session_date`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, errors.Wrap(err, "querying sessions in range")
	}
	return repo.unpackSlice(rows), nil
}

func (repo sessionRepository) GetSessionByID(ctx context.Context, id int, exec ...core.DBExecutor) (session.Session, error) {
	var row sessionRow
	query := `SELECT * FROM session WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return session.Session{}, repo.trapNoRowsErr(err, "finding session by ID")
	}
	return row.unpack(), nil
}

func (repo sessionRepository) QuerySessionsByStatusInRange(ctx context.Context, status string, from, to time.Time, exec ...core.DBExecutor) ([]session.Session, error) {
	var rows []sessionRow
	query := `
SELECT * FROM session
WHERE status = $1 AND session_date BETWEEN $2 AND $3
ORDER BY session_date`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query, status, from, to); err != nil {
		return nil, errors.Wrap(err, "querying sessions by status")
	}
	return repo.unpackSlice(rows), nil
}

func (repo sessionRepository) BulkUpdateStatusInRange(ctx context.Context, fromStatus, toStatus string, from, to time.Time, exec ...core.DBExecutor) (int, error) {
	query := `
UPDATE session
SET status = $1, updated_at = now()
WHERE status = $2 AND session_date BETWEEN $3 AND $4`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query, toStatus, fromStatus, from, to)
	if err != nil {
		return 0, errors.Wrap(err, "bulk updating session status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting updated sessions")
	}
	return int(n), nil
}

func (repo sessionRepository) UpdateSession(ctx context.Context, s session.Session, exec ...core.DBExecutor) (session.Session, error) {
	query := `
UPDATE session
SET session_date = $1, status = $2, notes = $3, batch_id = $4, trainer_id = $5, course_id = $6, program_id = $7, center_id = $8, updated_at = $9
WHERE id = $10`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		s.SessionDate, s.Status, s.Notes, s.BatchID, s.TrainerID, s.CourseID, s.ProgramID, s.CenterID, s.UpdatedAt, s.ID)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "updating session")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (repo sessionRepository) DeleteSession(ctx context.Context, id int, exec ...core.DBExecutor) error {
	query := `DELETE FROM session WHERE id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}
