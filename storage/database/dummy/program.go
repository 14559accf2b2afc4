package dummydb

import (
	"context"
	"sort"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/program"
)

type programRepository struct {
	db *programTable
}

var _ program.Repository = (*programRepository)(nil) // interface compliance check

func NewProgramRepository(db *DB) *programRepository {
	return &programRepository{db: db.program}
}

func (repo *programRepository) CreateProgram(ctx context.Context, p program.Program, exec ...core.DBExecutor) (program.Program, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.lastID++
	p.ID = repo.db.lastID
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *programRepository) QueryAllPrograms(ctx context.Context, exec ...core.DBExecutor) ([]program.Program, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	programs := make([]program.Program, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		programs = append(programs, *p)
	}
	sort.Slice(programs, func(i, j int) bool { return programs[i].ID < programs[j].ID })
	return programs, nil
}

func (repo *programRepository) GetProgramByID(ctx context.Context, id int, exec ...core.DBExecutor) (program.Program, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return program.Program{}, program.ErrNotFound
}

func (repo *programRepository) UpdateProgram(ctx context.Context, p program.Program, exec ...core.DBExecutor) (program.Program, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[p.ID]; !ok {
		return program.Program{}, program.ErrNotFound
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *programRepository) DeleteProgram(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
