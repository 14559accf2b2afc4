package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/session"
)

type sessionRepository struct {
	db *sessionTable
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) *sessionRepository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) query() []session.Session {
	sessions := make([]session.Session, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].SessionDate.Equal(sessions[j].SessionDate) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].SessionDate.Before(sessions[j].SessionDate)
	})
	return sessions
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (repo *sessionRepository) CreateSession(ctx context.Context, s session.Session, exec ...core.DBExecutor) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.lastID++
	s.ID = repo.db.lastID
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) BulkCreateSessions(ctx context.Context, ss []session.Session, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, s := range ss {
		s := s
		repo.db.lastID++
		s.ID = repo.db.lastID
		repo.db.table[s.ID] = &s
	}
	return len(ss), nil
}

func (repo *sessionRepository) QueryAllSessions(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]session.Session, error) {
	repo.db.RLock()
	sessions := repo.query()
	repo.db.RUnlock()

	if len(ordering) > 0 {
		sortSessions(sessions, ordering)
	}
	return sessions, nil
}

func sortSessions(sessions []session.Session, ordering []core.DBOrdering) {
	sort.SliceStable(sessions, func(i, j int) bool {
		for _, ord := range ordering {
			var less, greater bool
			switch ord.Field {
			case "id":
				less, greater = sessions[i].ID < sessions[j].ID, sessions[i].ID > sessions[j].ID
			case "session_date":
				less = sessions[i].SessionDate.Before(sessions[j].SessionDate)
				greater = sessions[i].SessionDate.After(sessions[j].SessionDate)
			case "status":
				less, greater = sessions[i].Status < sessions[j].Status, sessions[i].Status > sessions[j].Status
			default:
				continue
			}
			if !less && !greater { // equal on this field, move to the next
				continue
			}
			if ord.Ascending {
				return less
			}
			return greater
		}
		return false
	})
}

func (repo *sessionRepository) QuerySessionsInRange(ctx context.Context, from, to time.Time, exec ...core.DBExecutor) ([]session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var sessions []session.Session
	for _, s := range repo.query() {
		if inRange(s.SessionDate, from, to) {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (repo *sessionRepository) GetSessionByID(ctx context.Context, id int, exec ...core.DBExecutor) (session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return *s, nil
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) QuerySessionsByStatusInRange(ctx context.Context, status string, from, to time.Time, exec ...core.DBExecutor) ([]session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var sessions []session.Session
	for _, s := range repo.query() {
		if s.Status == status && inRange(s.SessionDate, from, to) {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (repo *sessionRepository) BulkUpdateStatusInRange(ctx context.Context, fromStatus, toStatus string, from, to time.Time, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var count int
	for _, s := range repo.db.table {
		if s.Status == fromStatus && inRange(s.SessionDate, from, to) {
			s.Status = toStatus
			s.UpdatedAt = time.Now().UTC()
			count++
		}
	}
	return count, nil
}

func (repo *sessionRepository) UpdateSession(ctx context.Context, s session.Session, exec ...core.DBExecutor) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[s.ID]; !ok {
		return session.Session{}, session.ErrNotFound
	}
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
