package center

import (
	"context"
	"errors"
	"time"

	"github.com/etasha-dev/scheduler/core"
)

var ErrNotFound = errors.New("center not found")

type (
	Repository interface {
		CreateCenter(ctx context.Context, c Center, exec ...core.DBExecutor) (Center, error)
		QueryAllCenters(ctx context.Context, exec ...core.DBExecutor) ([]Center, error)
		GetCenterByID(ctx context.Context, id int, exec ...core.DBExecutor) (Center, error)
		UpdateCenter(ctx context.Context, c Center, exec ...core.DBExecutor) (Center, error)
		DeleteCenter(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCenter) (Center, error) {
	now := time.Now().UTC()
	return svc.repo.CreateCenter(ctx, Center{
		Name:               nc.Name,
		Address:            nc.Address,
		LocationID:         nc.LocationID,
		OwnerName:          nc.OwnerName,
		OwnerContact:       nc.OwnerContact,
		MaintenanceContact: nc.MaintenanceContact,
		GPSCoordinates:     nc.GPSCoordinates,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Center, error) {
	return svc.repo.QueryAllCenters(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Center, error) {
	return svc.repo.GetCenterByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCenter) (Center, error) {
	c, err := svc.repo.GetCenterByID(ctx, id)
	if err != nil {
		return Center{}, err
	}

	c.Name = uc.Name
	c.Address = uc.Address
	c.LocationID = uc.LocationID
	c.OwnerName = uc.OwnerName
	c.OwnerContact = uc.OwnerContact
	c.MaintenanceContact = uc.MaintenanceContact
	c.GPSCoordinates = uc.GPSCoordinates
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCenter(ctx, c)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteCenter(ctx, id)
}
