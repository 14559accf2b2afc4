package trainer

import (
	"context"
	"errors"
	"time"

	"github.com/etasha-dev/scheduler/core"
)

var (
	ErrNotFound    = errors.New("trainer not found")
	ErrEmailExists = errors.New("a trainer with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedTrainers []Trainer, exec ...core.DBExecutor) error
		CreateTrainer(ctx context.Context, tr Trainer, exec ...core.DBExecutor) (Trainer, error)
		QueryAllTrainers(ctx context.Context, exec ...core.DBExecutor) ([]Trainer, error)
		GetTrainerByID(ctx context.Context, id int, exec ...core.DBExecutor) (Trainer, error)
		GetTrainerByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (Trainer, error)
		GetTrainersByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]Trainer, error)
		UpdateTrainer(ctx context.Context, tr Trainer, exec ...core.DBExecutor) (Trainer, error)
		UpdateOrCreateTrainer(ctx context.Context, tr Trainer, exec ...core.DBExecutor) (Trainer, error)
		DeleteTrainer(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, exclTrainers ...Trainer) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclTrainers); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nt NewTrainer) (Trainer, error) {
	now := time.Now().UTC()
	tr := Trainer{
		Name:      nt.Name,
		Email:     nt.Email,
		Role:      nt.Role,
		Status:    nt.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tr.Role == "" {
		tr.Role = RoleTrainer
	}
	if tr.Status == "" {
		tr.Status = StatusActive
	}
	if nt.CenterID != nil {
		tr.CenterID.SetValid(*nt.CenterID)
	}
	if err := tr.SetPassword(nt.Password); err != nil {
		return Trainer{}, err
	}
	return svc.repo.CreateTrainer(ctx, tr)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Trainer, error) {
	return svc.repo.QueryAllTrainers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Trainer, error) {
	return svc.repo.GetTrainerByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Trainer, error) {
	return svc.repo.GetTrainerByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) GetByIDs(ctx context.Context, ids []int) ([]Trainer, error) {
	return svc.repo.GetTrainersByID(ctx, ids)
}

func (svc *Service) Update(ctx context.Context, id int, ut UpdateTrainer) (Trainer, error) {
	tr, err := svc.repo.GetTrainerByID(ctx, id)
	if err != nil {
		return Trainer{}, err
	}

	if ut.Name != "" {
		tr.Name = ut.Name
	}
	if ut.Email != "" {
		tr.Email = ut.Email
	}
	if ut.Role != "" {
		tr.Role = ut.Role
	}
	if ut.Status != "" {
		tr.Status = ut.Status
	}
	if ut.CenterID != nil {
		tr.CenterID.SetValid(*ut.CenterID)
	}
	if ut.Password != "" {
		if err = tr.SetPassword(ut.Password); err != nil {
			return Trainer{}, err
		}
	}
	tr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTrainer(ctx, tr)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteTrainer(ctx, id)
}
