package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) queryByBatch(batchID int) []schedule.Entry {
	var entries []schedule.Entry
	for _, e := range repo.db.table {
		if e.BatchID == batchID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].WeekNumber != entries[j].WeekNumber {
			return entries[i].WeekNumber < entries[j].WeekNumber
		}
		if entries[i].DayNumber != entries[j].DayNumber {
			return entries[i].DayNumber < entries[j].DayNumber
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (repo *scheduleRepository) BulkCreateEntries(ctx context.Context, entries []schedule.Entry, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, e := range entries {
		e := e
		repo.db.lastID++
		e.ID = repo.db.lastID
		repo.db.table[e.ID] = &e
	}
	return len(entries), nil
}

func (repo *scheduleRepository) DeleteEntriesByBatch(ctx context.Context, batchID int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, e := range repo.db.table {
		if e.BatchID == batchID {
			delete(repo.db.table, id)
		}
	}
	return nil
}

func (repo *scheduleRepository) QueryEntriesByBatch(ctx context.Context, batchID int, exec ...core.DBExecutor) ([]schedule.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryByBatch(batchID), nil
}

func (repo *scheduleRepository) QueryEntriesByBatchInRange(ctx context.Context, batchID int, from, to time.Time, exec ...core.DBExecutor) ([]schedule.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var entries []schedule.Entry
	for _, e := range repo.queryByBatch(batchID) {
		if e.SessionDate.Valid && inRange(e.SessionDate.Time, from, to) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SessionDate.Time.Equal(entries[j].SessionDate.Time) {
			return entries[i].DayNumber < entries[j].DayNumber
		}
		return entries[i].SessionDate.Time.Before(entries[j].SessionDate.Time)
	})
	return entries, nil
}

func (repo *scheduleRepository) GetEntryByID(ctx context.Context, id int, exec ...core.DBExecutor) (schedule.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if e, ok := repo.db.table[id]; ok {
		return *e, nil
	}
	return schedule.Entry{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) UpdateEntry(ctx context.Context, e schedule.Entry, exec ...core.DBExecutor) (schedule.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[e.ID]; !ok {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	repo.db.table[e.ID] = &e
	return e, nil
}
