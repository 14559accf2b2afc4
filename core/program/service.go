package program

import (
	"context"
	"errors"
	"time"

	"github.com/etasha-dev/scheduler/core"
)

var ErrNotFound = errors.New("program not found")

type (
	Repository interface {
		CreateProgram(ctx context.Context, p Program, exec ...core.DBExecutor) (Program, error)
		QueryAllPrograms(ctx context.Context, exec ...core.DBExecutor) ([]Program, error)
		GetProgramByID(ctx context.Context, id int, exec ...core.DBExecutor) (Program, error)
		UpdateProgram(ctx context.Context, p Program, exec ...core.DBExecutor) (Program, error)
		DeleteProgram(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, np NewProgram) (Program, error) {
	now := time.Now().UTC()
	return svc.repo.CreateProgram(ctx, Program{
		ProgramName:    np.ProgramName,
		DurationMonths: np.DurationMonths,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Program, error) {
	return svc.repo.QueryAllPrograms(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Program, error) {
	return svc.repo.GetProgramByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, up UpdateProgram) (Program, error) {
	p, err := svc.repo.GetProgramByID(ctx, id)
	if err != nil {
		return Program{}, err
	}

	p.ProgramName = up.ProgramName
	p.DurationMonths = up.DurationMonths
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProgram(ctx, p)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteProgram(ctx, id)
}
