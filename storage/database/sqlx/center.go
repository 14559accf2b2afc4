package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/center"
)

type centerRow struct {
	ID                 int       `db:"id"`
	Name               string    `db:"name"`
	Address            string    `db:"address"`
	LocationID         string    `db:"location_id"`
	OwnerName          string    `db:"owner_name"`
	OwnerContact       string    `db:"owner_contact"`
	MaintenanceContact string    `db:"maintenance_contact"`
	GPSCoordinates     string    `db:"gps_coordinates"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r centerRow) unpack() center.Center {
	return center.Center{
		ID:                 r.ID,
		Name:               r.Name,
		Address:            r.Address,
		LocationID:         r.LocationID,
		OwnerName:          r.OwnerName,
		OwnerContact:       r.OwnerContact,
		MaintenanceContact: r.MaintenanceContact,
		GPSCoordinates:     r.GPSCoordinates,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type centerRepository struct {
	exec core.DBExecutor
}

var _ center.Repository = (*centerRepository)(nil) // interface compliance check

func NewCenterRepository(exec core.DBExecutor) *centerRepository {
	return &centerRepository{exec: exec}
}

func (repo centerRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return center.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo centerRepository) CreateCenter(ctx context.Context, c center.Center, exec ...core.DBExecutor) (center.Center, error) {
	query := `
INSERT INTO center (name, address, location_id, owner_name, owner_contact, maintenance_contact, gps_coordinates, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	err := getExec(repo.exec, exec).GetContext(ctx, &c.ID, query,
		c.Name, c.Address, c.LocationID, c.OwnerName, c.OwnerContact, c.MaintenanceContact, c.GPSCoordinates, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return center.Center{}, errors.Wrap(err, "inserting center")
	}
	return c, nil
}

func (repo centerRepository) QueryAllCenters(ctx context.Context, exec ...core.DBExecutor) ([]center.Center, error) {
	var rows []centerRow
	query := `SELECT * FROM center ORDER BY name`
	if err := getExec(repo.exec, exec).SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying centers")
	}
	centers := make([]center.Center, 0, len(rows))
	for _, r := range rows {
		centers = append(centers, r.unpack())
	}
	return centers, nil
}

func (repo centerRepository) GetCenterByID(ctx context.Context, id int, exec ...core.DBExecutor) (center.Center, error) {
	var row centerRow
	query := `SELECT * FROM center WHERE id = $1`
	if err := getExec(repo.exec, exec).GetContext(ctx, &row, query, id); err != nil {
		return center.Center{}, repo.trapNoRowsErr(err, "finding center by ID")
	}
	return row.unpack(), nil
}

func (repo centerRepository) UpdateCenter(ctx context.Context, c center.Center, exec ...core.DBExecutor) (center.Center, error) {
	query := `
UPDATE center
SET name = $1, address = $2, location_id = $3, owner_name = $4, owner_contact = $5, maintenance_contact = $6, gps_coordinates = $7, updated_at = $8
WHERE id = $9`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, query,
		c.Name, c.Address, c.LocationID, c.OwnerName, c.OwnerContact, c.MaintenanceContact, c.GPSCoordinates, c.UpdatedAt, c.ID)
	if err != nil {
		return center.Center{}, errors.Wrap(err, "updating center")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return center.Center{}, center.ErrNotFound
	}
	return c, nil
}

func (repo centerRepository) DeleteCenter(ctx context.Context, id int, exec ...core.DBExecutor) error {
	query := `DELETE FROM center WHERE id = $1`
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting center")
	}
	return nil
}
