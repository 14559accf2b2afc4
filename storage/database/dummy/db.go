// Package dummydb provides in-memory repositories for tests.
package dummydb

import (
	"context"
	"database/sql"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/center"
	"github.com/etasha-dev/scheduler/core/course"
	"github.com/etasha-dev/scheduler/core/program"
	"github.com/etasha-dev/scheduler/core/schedule"
	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/core/trainer"
)

var errNotSupported = errors.New("dummydb: raw SQL not supported")

type (
	DB struct {
		noopExecutor

		trainer  *trainerTable
		center   *centerTable
		program  *programTable
		course   *courseTable
		batch    *batchTable
		session  *sessionTable
		schedule *scheduleTable
	}

	trainerTable struct {
		sync.RWMutex
		table  map[int]*trainer.Trainer
		lastID int
	}
	centerTable struct {
		sync.RWMutex
		table  map[int]*center.Center
		lastID int
	}
	programTable struct {
		sync.RWMutex
		table  map[int]*program.Program
		lastID int
	}
	courseTable struct {
		sync.RWMutex
		table  map[int]*course.Course
		lastID int
	}
	batchTable struct {
		sync.RWMutex
		table  map[int]*batch.Batch
		lastID int
	}
	sessionTable struct {
		sync.RWMutex
		table  map[int]*session.Session
		lastID int
	}
	scheduleTable struct {
		sync.RWMutex
		table  map[int]*schedule.Entry
		lastID int
	}
)

var _ core.DB = (*DB)(nil) // interface compliance check

func Open() *DB {
	return &DB{
		trainer:  &trainerTable{table: make(map[int]*trainer.Trainer)},
		center:   &centerTable{table: make(map[int]*center.Center)},
		program:  &programTable{table: make(map[int]*program.Program)},
		course:   &courseTable{table: make(map[int]*course.Course)},
		batch:    &batchTable{table: make(map[int]*batch.Batch)},
		session:  &sessionTable{table: make(map[int]*session.Session)},
		schedule: &scheduleTable{table: make(map[int]*schedule.Entry)},
	}
}

// BeginTx returns a no-op transaction: the dummy repositories mutate their
// tables directly and ignore the executor argument.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (core.DBTx, error) {
	return noopTx{}, nil
}

type noopExecutor struct{}

func (noopExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errNotSupported
}
func (noopExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNotSupported
}
func (noopExecutor) QueryRowxContext(context.Context, string, ...interface{}) *sqlx.Row {
	return nil
}
func (noopExecutor) QueryxContext(context.Context, string, ...interface{}) (*sqlx.Rows, error) {
	return nil, errNotSupported
}
func (noopExecutor) GetContext(context.Context, interface{}, string, ...interface{}) error {
	return errNotSupported
}
func (noopExecutor) SelectContext(context.Context, interface{}, string, ...interface{}) error {
	return errNotSupported
}
func (noopExecutor) NamedExecContext(context.Context, string, interface{}) (sql.Result, error) {
	return nil, errNotSupported
}

type noopTx struct {
	noopExecutor
}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
