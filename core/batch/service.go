package batch

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
)

var ErrNotFound = errors.New("batch not found")

type (
	Repository interface {
		CreateBatch(ctx context.Context, b Batch, exec ...core.DBExecutor) (Batch, error)
		QueryAllBatches(ctx context.Context, exec ...core.DBExecutor) ([]Batch, error)
		GetBatchByID(ctx context.Context, id int, exec ...core.DBExecutor) (Batch, error)
		UpdateBatch(ctx context.Context, b Batch, exec ...core.DBExecutor) (Batch, error)
		DeleteBatch(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nb NewBatch) (Batch, error) {
	now := time.Now().UTC()
	b := Batch{
		BatchName: nb.BatchName,
		StartDate: nb.StartDate.UTC(),
		Status:    nb.Status,
		EndDate:   null.TimeFromPtr(nb.EndDate),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if b.Status == "" {
		b.Status = StatusUpcoming
	}
	if nb.ProgramID != nil {
		b.ProgramID.SetValid(*nb.ProgramID)
	}
	if nb.CenterID != nil {
		b.CenterID.SetValid(*nb.CenterID)
	}
	return svc.repo.CreateBatch(ctx, b)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Batch, error) {
	return svc.repo.QueryAllBatches(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Batch, error) {
	return svc.repo.GetBatchByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ub UpdateBatch) (Batch, error) {
	orig, err := svc.repo.GetBatchByID(ctx, id)
	if err != nil {
		return Batch{}, err
	}

	b := orig
	b.BatchName = ub.BatchName
	b.Status = ub.Status
	b.UpdatedAt = time.Now().UTC()
	if ub.StartDate != nil {
		b.StartDate = ub.StartDate.UTC()
	}
	if ub.EndDate != nil {
		b.EndDate = null.TimeFrom(ub.EndDate.UTC())
	}
	if ub.ProgramID != nil {
		b.ProgramID.SetValid(*ub.ProgramID)
	}
	if ub.CenterID != nil {
		b.CenterID.SetValid(*ub.CenterID)
	}
	return svc.repo.UpdateBatch(ctx, b)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteBatch(ctx, id)
}
