package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/batch"
)

type batchRow struct {
	ID        int       `db:"id"`
	BatchName string    `db:"batch_name"`
	StartDate time.Time `db:"start_date"`
	EndDate   null.Time `db:"end_date"`
	Status    string    `db:"status"`
	ProgramID null.Int  `db:"program_id"`
	CenterID  null.Int  `db:"center_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r batchRow) unpack() batch.Batch {
	return batch.Batch{
		ID:        r.ID,
		BatchName: r.BatchName,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Status:    r.Status,
		ProgramID: r.ProgramID,
		CenterID:  r.CenterID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type batchRepository struct {
	exec core.DBExecutor
}

var _ batch.Repository = (*batchRepository)(nil) // interface compliance check

func NewBatchRepository(exec core.DBExecutor) *batchRepository {
	return &batchRepository{exec: exec}
}

func (repo batchRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return batch.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo batchRepository) CreateBatch(ctx context.Context, b batch.Batch, exec ...core.DBExecutor) (batch.Batch, error) {
	query := `
INSERT INTO batch (batch_name, start_date, end_date, status, program_id, center_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := getExec(repo.exec, exec).GetContext(ctx, &b.ID, query,
		b.BatchName, b.StartDate, b.EndDate, b.Status, b.ProgramID, b.CenterID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return batch.Batch{}, errors.Wrap(err, "inserting batch")
	}
	return b, nil
}

func (repo batchRepository) QueryAllBatches(ctx context.Context, exec ...core.DBExecutor) ([]batch.Batch, error) {
	var rows []batchRow
	query := `SELECT * FROM batch ORDER BY start_date DESC`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	batches := make([]batch.Batch, 0, len(rows))
	for _, r := range rows {
		batches = append(batches, r.unpack())
	}
	return batches, nil
}

func (repo batchRepository) GetBatchByID(ctx context.Context, id int, exec ...core.DBExecutor) (batch.Batch, error) {
	var row batchRow
	query := `SELECT * FROM batch WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return batch.Batch{}, repo.trapNoRowsErr(err, "finding batch by ID")
	}
	return row.unpack(), nil
}

func (repo batchRepository) UpdateBatch(ctx context.Context, b batch.Batch, exec ...core.DBExecutor) (batch.Batch, error) {
	query := `
UPDATE batch
SET batch_name = $1, start_date = $2, end_date = $3, status = $4, program_id = $5, center_id = $6, updated_at = $7
WHERE id = $8`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		b.BatchName, b.StartDate, b.EndDate, b.Status, b.ProgramID, b.CenterID, b.UpdatedAt, b.ID)
	if err != nil {
		return batch.Batch{}, errors.Wrap(err, "updating batch")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return batch.Batch{}, batch.ErrNotFound
	}
	return b, nil
}

func (repo batchRepository) DeleteBatch(ctx context.Context, id int, exec ...core.DBExecutor) error {
	query := `DELETE FROM batch WHERE id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting batch")
	}
	return nil
}
