package dummydb

import (
	"context"
	"sort"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/center"
)

type centerRepository struct {
	db *centerTable
}

var _ center.Repository = (*centerRepository)(nil) // interface compliance check

func NewCenterRepository(db *DB) *centerRepository {
	return &centerRepository{db: db.center}
}

func (repo *centerRepository) CreateCenter(ctx context.Context, c center.Center, exec ...core.DBExecutor) (center.Center, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.lastID++
	c.ID = repo.db.lastID
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *centerRepository) QueryAllCenters(ctx context.Context, exec ...core.DBExecutor) ([]center.Center, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	centers := make([]center.Center, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		centers = append(centers, *c)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i].ID < centers[j].ID })
	return centers, nil
}

func (repo *centerRepository) GetCenterByID(ctx context.Context, id int, exec ...core.DBExecutor) (center.Center, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return center.Center{}, center.ErrNotFound
}

func (repo *centerRepository) UpdateCenter(ctx context.Context, c center.Center, exec ...core.DBExecutor) (center.Center, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[c.ID]; !ok {
		return center.Center{}, center.ErrNotFound
	}
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *centerRepository) DeleteCenter(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
