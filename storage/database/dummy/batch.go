package dummydb

import (
	"context"
	"sort"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/batch"
)

type batchRepository struct {
	db *batchTable
}

var _ batch.Repository = (*batchRepository)(nil) // interface compliance check

func NewBatchRepository(db *DB) *batchRepository {
	return &batchRepository{db: db.batch}
}

func (repo *batchRepository) CreateBatch(ctx context.Context, b batch.Batch, exec ...core.DBExecutor) (batch.Batch, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.lastID++
	b.ID = repo.db.lastID
	repo.db.table[b.ID] = &b
	return b, nil
}

func (repo *batchRepository) QueryAllBatches(ctx context.Context, exec ...core.DBExecutor) ([]batch.Batch, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	batches := make([]batch.Batch, 0, len(repo.db.table))
	for _, b := range repo.db.table {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].ID < batches[j].ID })
	return batches, nil
}

func (repo *batchRepository) GetBatchByID(ctx context.Context, id int, exec ...core.DBExecutor) (batch.Batch, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if b, ok := repo.db.table[id]; ok {
		return *b, nil
	}
	return batch.Batch{}, batch.ErrNotFound
}

func (repo *batchRepository) UpdateBatch(ctx context.Context, b batch.Batch, exec ...core.DBExecutor) (batch.Batch, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[b.ID]; !ok {
		return batch.Batch{}, batch.ErrNotFound
	}
	repo.db.table[b.ID] = &b
	return b, nil
}

func (repo *batchRepository) DeleteBatch(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
