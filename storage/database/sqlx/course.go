package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/course"
)

type courseRow struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r courseRow) unpack() course.Course {
	return course.Course{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	query := `
INSERT INTO course (name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := getExec(repo.exec, exec).GetContext(ctx, &c.ID, query,
		c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo courseRepository) QueryAllCourses(ctx context.Context, exec ...core.DBExecutor) ([]course.Course, error) {
	var rows []courseRow
	query := `SELECT * FROM course ORDER BY name`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.unpack())
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Course, error) {
	var row courseRow
	query := `SELECT * FROM course WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "finding course by ID")
	}
	return row.unpack(), nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	query := `
UPDATE course
SET name = $1, description = $2, updated_at = $3
WHERE id = $4`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		c.Name, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id int, exec ...core.DBExecutor) error {
	query := `DELETE FROM course WHERE id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return nil
}
