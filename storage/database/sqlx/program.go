package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/program"
)

type programRow struct {
	ID             int       `db:"id"`
	ProgramName    string    `db:"program_name"`
	DurationMonths int       `db:"duration_months"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r programRow) unpack() program.Program {
	return program.Program{
		ID:             r.ID,
		ProgramName:    r.ProgramName,
		DurationMonths: r.DurationMonths,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type programRepository struct {
	exec core.DBExecutor
}

var _ program.Repository = (*programRepository)(nil) // interface compliance check

func NewProgramRepository(exec core.DBExecutor) *programRepository {
	return &programRepository{exec: exec}
}

func (repo programRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return program.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo programRepository) CreateProgram(ctx context.Context, p program.Program, exec ...core.DBExecutor) (program.Program, error) {
	query := `
INSERT INTO program (program_name, duration_months, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := getExec(repo.exec, exec).GetContext(ctx, &p.ID, query,
		p.ProgramName, p.DurationMonths, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return program.Program{}, errors.Wrap(err, "inserting program")
	}
	return p, nil
}

func (repo programRepository) QueryAllPrograms(ctx context.Context, exec ...core.DBExecutor) ([]program.Program, error) {
	var rows []programRow
	query := `SELECT * FROM program ORDER BY program_name`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying programs")
	}
	programs := make([]program.Program, 0, len(rows))
	for _, r := range rows {
		programs = append(programs, r.unpack())
	}
	return programs, nil
}

func (repo programRepository) GetProgramByID(ctx context.Context, id int, exec ...core.DBExecutor) (program.Program, error) {
	var row programRow
	query := `SELECT * FROM program WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return program.Program{}, repo.trapNoRowsErr(err, "finding program by ID")
	}
	return row.unpack(), nil
}

func (repo programRepository) UpdateProgram(ctx context.Context, p program.Program, exec ...core.DBExecutor) (program.Program, error) {
	query := `
UPDATE program
SET program_name = $1, duration_months = $2, updated_at = $3
WHERE id = $4`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		p.ProgramName, p.DurationMonths, p.UpdatedAt, p.ID)
	if err != nil {
		return program.Program{}, errors.Wrap(err, "updating program")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return program.Program{}, program.ErrNotFound
	}
	return p, nil
}

func (repo programRepository) DeleteProgram(ctx context.Context, id int, exec ...core.DBExecutor) error {
	query := `DELETE FROM program WHERE id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting program")
	}
	return nil
}
