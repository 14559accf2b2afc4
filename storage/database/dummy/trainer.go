package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/trainer"
)

type trainerRepository struct {
	db *trainerTable
}

var _ trainer.Repository = (*trainerRepository)(nil) // interface compliance check

func NewTrainerRepository(db *DB) *trainerRepository {
	return &trainerRepository{db: db.trainer}
}

func (repo *trainerRepository) query() []trainer.Trainer {
	trainers := make([]trainer.Trainer, 0, len(repo.db.table))
	for _, tr := range repo.db.table {
		trainers = append(trainers, *tr)
	}
	sort.Slice(trainers, func(i, j int) bool { return trainers[i].ID < trainers[j].ID })
	return trainers
}

func (repo *trainerRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedTrainers []trainer.Trainer, exec ...core.DBExecutor) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[int]bool, len(excludedTrainers))
	for _, tr := range excludedTrainers {
		excluded[tr.ID] = true
	}
	for _, tr := range repo.query() {
		if strings.EqualFold(tr.Email, email) && !excluded[tr.ID] {
			return trainer.ErrEmailExists
		}
	}
	return nil
}

func (repo *trainerRepository) CreateTrainer(ctx context.Context, tr trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.lastID++
	tr.ID = repo.db.lastID
	repo.db.table[tr.ID] = &tr
	return tr, nil
}

func (repo *trainerRepository) QueryAllTrainers(ctx context.Context, exec ...core.DBExecutor) ([]trainer.Trainer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *trainerRepository) GetTrainerByID(ctx context.Context, id int, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tr, ok := repo.db.table[id]; ok {
		return *tr, nil
	}
	return trainer.Trainer{}, trainer.ErrNotFound
}

func (repo *trainerRepository) GetTrainerByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tr := range repo.query() {
		if strings.EqualFold(tr.Email, email) {
			return tr, nil
		}
	}
	return trainer.Trainer{}, trainer.ErrNotFound
}

func (repo *trainerRepository) GetTrainersByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]trainer.Trainer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	trainers := make([]trainer.Trainer, 0, len(ids))
	for _, id := range ids {
		if tr, ok := repo.db.table[id]; ok {
			trainers = append(trainers, *tr)
		}
	}
	return trainers, nil
}

func (repo *trainerRepository) UpdateTrainer(ctx context.Context, tr trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tr.ID]; !ok {
		return trainer.Trainer{}, trainer.ErrNotFound
	}
	repo.db.table[tr.ID] = &tr
	return tr, nil
}

func (repo *trainerRepository) UpdateOrCreateTrainer(ctx context.Context, tr trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	if tr.ID == 0 {
		return repo.CreateTrainer(ctx, tr, exec...)
	}
	return repo.UpdateTrainer(ctx, tr, exec...)
}

func (repo *trainerRepository) DeleteTrainer(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
