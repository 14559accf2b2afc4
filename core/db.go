package core

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type (
	// DBExecutor is the query surface shared by *sqlx.DB and *sqlx.Tx.
	// Repositories take an optional trailing DBExecutor so services can run
	// several repo calls within one transaction.
	DBExecutor interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	}

	// DBTx is a started transaction.
	DBTx interface {
		DBExecutor

		Commit() error
		Rollback() error
	}

	// DB opens transactions on top of the plain query surface.
	DB interface {
		DBExecutor

		BeginTx(ctx context.Context, opts *sql.TxOptions) (DBTx, error)
	}
)

var (
	_ DBExecutor = (*sqlx.DB)(nil)
	_ DBTx       = (*sqlx.Tx)(nil)
)

type sqlxDB struct {
	*sqlx.DB
}

func (db sqlxDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (DBTx, error) {
	return db.DB.BeginTxx(ctx, opts)
}

// WrapDB adapts a *sqlx.DB to the DB interface.
func WrapDB(db *sqlx.DB) DB { return sqlxDB{db} }

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
