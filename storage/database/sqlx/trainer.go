package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/trainer"
)

type trainerRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	CenterID     null.Int  `db:"center_id"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r trainerRow) unpack() trainer.Trainer {
	return trainer.Trainer{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		Status:       r.Status,
		CenterID:     r.CenterID,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type trainerRepository struct {
	exec core.DBExecutor
}

var _ trainer.Repository = (*trainerRepository)(nil) // interface compliance check

func NewTrainerRepository(exec core.DBExecutor) *trainerRepository {
	return &trainerRepository{exec: exec}
}

// trapNoRowsErr maps psql "no rows" err to trainer.ErrNotFound
func (repo trainerRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return trainer.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo trainerRepository) unpackSlice(rows []trainerRow) []trainer.Trainer {
	trainers := make([]trainer.Trainer, 0, len(rows))
	for _, r := range rows {
		trainers = append(trainers, r.unpack())
	}
	return trainers
}

func (repo trainerRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedTrainers []trainer.Trainer, exec ...core.DBExecutor) error {
	query := `SELECT EXISTS (SELECT 1 FROM trainer WHERE email = ? AND id NOT IN (?))`
	excluded := make([]int, 0, len(excludedTrainers))
	for _, tr := range excludedTrainers {
		excluded = append(excluded, tr.ID)
	}
	if len(excluded) == 0 {
		excluded = append(excluded, 0) // no valid PK is 0
	}

	query, args, err := sqlx.In(query, email, excluded)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var exists bool
	if err = getExec(repo.exec, exec).GetContext(ctx, &exists, query, args...); err != nil {
		return errors.Wrap(err, "checking trainer uniqueness")
	}
	if exists {
		return trainer.ErrEmailExists
	}
	return nil
}

func (repo trainerRepository) CreateTrainer(ctx context.Context, tr trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	query := `
INSERT INTO trainer (name, email, role, status, center_id, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := getExec(repo.exec, exec).GetContext(ctx, &tr.ID, query,
		tr.Name, tr.Email, tr.Role, tr.Status, tr.CenterID, tr.PasswordHash, tr.CreatedAt, tr.UpdatedAt)
	if err != nil {
		return trainer.Trainer{}, errors.Wrap(err, "inserting trainer")
	}
	return tr, nil
}

func (repo trainerRepository) QueryAllTrainers(ctx context.Context, exec ...core.DBExecutor) ([]trainer.Trainer, error) {
	var rows []trainerRow
	query := `SELECT * FROM trainer ORDER BY name`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying trainers")
	}
	return repo.unpackSlice(rows), nil
}

func (repo trainerRepository) GetTrainerByID(ctx context.Context, id int, exec ...core.DBExecutor) (trainer.Trainer, error) {
	var row trainerRow
	query := `SELECT * FROM trainer WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return trainer.Trainer{}, repo.trapNoRowsErr(err, "finding trainer by ID")
	}
	return row.unpack(), nil
}

func (repo trainerRepository) GetTrainerByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (trainer.Trainer, error) {
	var row trainerRow
	query := `SELECT * FROM trainer WHERE lower(email) = lower($1)`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, email); err != nil {
		return trainer.Trainer{}, repo.trapNoRowsErr(err, "finding trainer by email")
	}
	return row.unpack(), nil
}

func (repo trainerRepository) GetTrainersByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]trainer.Trainer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM trainer WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building trainers query")
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var rows []trainerRow
	if err = getExec(repo.exec, exec).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying trainers by ID")
	}
	return repo.unpackSlice(rows), nil
}

func (repo trainerRepository) UpdateTrainer(ctx context.Context, tr trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	query := `
UPDATE trainer
SET name = $1, email = $2, role = $3, status = $4, center_id = $5, password_hash = $6, updated_at = $7
WHERE id = $8`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		tr.Name, tr.Email, tr.Role, tr.Status, tr.CenterID, tr.PasswordHash, tr.UpdatedAt, tr.ID)
	if err != nil {
		return trainer.Trainer{}, errors.Wrap(err, "updating trainer")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return trainer.Trainer{}, trainer.ErrNotFound
	}
	return tr, nil
}

func (repo trainerRepository) UpdateOrCreateTrainer(ctx context.Context, tr trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	if tr.ID == 0 {
		return repo.CreateTrainer(ctx, tr, exec...)
	}
	return repo.UpdateTrainer(ctx, tr, exec...)
}

func (repo trainerRepository) DeleteTrainer(ctx context.Context, id int, exec ...core.DBExecutor) error {
	query := `DELETE FROM trainer WHERE id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting trainer")
	}
	return nil
}
