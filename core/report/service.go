// Package report builds read-only aggregations over the session store for
// the reporting dashboard.
package report

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/course"
	"github.com/etasha-dev/scheduler/core/program"
	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/core/trainer"
	"github.com/etasha-dev/scheduler/core/workcal"
)

type Service struct {
	sessionRepo session.Repository
	trainerRepo trainer.Repository
	batchRepo   batch.Repository
	courseRepo  course.Repository
	programRepo program.Repository
}

func NewService(sessionRepo session.Repository, trainerRepo trainer.Repository, batchRepo batch.Repository,
	courseRepo course.Repository, programRepo program.Repository) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		trainerRepo: trainerRepo,
		batchRepo:   batchRepo,
		courseRepo:  courseRepo,
		programRepo: programRepo,
	}
}

// isScheduled reports whether a status counts as scheduled work in the load
// reports. Missed and cancelled sessions are excluded.
func isScheduled(status string) bool {
	switch status {
	case session.StatusDraft, session.StatusPublished, session.StatusCompleted:
		return true
	}
	return false
}

// lookupID resolves a foreign key to its display name; zero or unknown IDs
// fall back to the given label.
func lookupID(names map[int]string, id int, fallback string) string {
	if name, ok := names[id]; ok && id != 0 {
		return name
	}
	return fallback
}

// monthSessions loads sessions dated in the given month, optionally narrowed
// down to one batch (batchID 0 means all batches).
func (svc *Service) monthSessions(ctx context.Context, year int, month time.Month, batchID int) ([]session.Session, error) {
	from, to := workcal.MonthBounds(year, month)
	sessions, err := svc.sessionRepo.QuerySessionsInRange(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions in range")
	}
	if batchID == 0 {
		return sessions, nil
	}

	filtered := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.BatchID.Valid && s.BatchID.Int == batchID {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (svc *Service) trainerNames(ctx context.Context) (map[int]string, error) {
	trainers, err := svc.trainerRepo.QueryAllTrainers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying trainers")
	}
	names := make(map[int]string, len(trainers))
	for _, tr := range trainers {
		names[tr.ID] = tr.Name
	}
	return names, nil
}

func (svc *Service) courseNames(ctx context.Context) (map[int]string, error) {
	courses, err := svc.courseRepo.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	names := make(map[int]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (svc *Service) batchNames(ctx context.Context) (map[int]string, error) {
	batches, err := svc.batchRepo.QueryAllBatches(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	names := make(map[int]string, len(batches))
	for _, b := range batches {
		names[b.ID] = b.BatchName
	}
	return names, nil
}

func (svc *Service) programNames(ctx context.Context) (map[int]string, error) {
	programs, err := svc.programRepo.QueryAllPrograms(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying programs")
	}
	names := make(map[int]string, len(programs))
	for _, p := range programs {
		names[p.ID] = p.ProgramName
	}
	return names, nil
}

// DashboardSummary tallies one month's sessions per status. The completion
// rate is the completed share of all sessions, as a percentage rounded to
// one decimal.
func (svc *Service) DashboardSummary(ctx context.Context, year int, month time.Month, batchID int) (DashboardSummary, error) {
	var sum DashboardSummary
	sessions, err := svc.monthSessions(ctx, year, month, batchID)
	if err != nil {
		return sum, err
	}

	for _, s := range sessions {
		sum.TotalSessions++
		switch s.Status {
		case session.StatusDraft:
			sum.DraftSessions++
		case session.StatusCompleted:
			sum.CompletedSessions++
		case session.StatusMissed:
			sum.MissedSessions++
		case session.StatusCancelled:
			sum.CancelledSessions++
		}
	}
	if sum.TotalSessions > 0 {
		rate := float64(sum.CompletedSessions) / float64(sum.TotalSessions) * 100
		sum.CompletionRate = math.Round(rate*10) / 10
	}
	return sum, nil
}

// SessionsByTrainerCourse groups one month's scheduled sessions by trainer,
// then by course, with a session count per pair.
func (svc *Service) SessionsByTrainerCourse(ctx context.Context, year int, month time.Month, batchID int) ([]TrainerLoad, error) {
	sessions, err := svc.monthSessions(ctx, year, month, batchID)
	if err != nil {
		return nil, err
	}
	trainerNames, err := svc.trainerNames(ctx)
	if err != nil {
		return nil, err
	}
	courseNames, err := svc.courseNames(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]map[int]int) // trainer ID -> course ID -> count
	for _, s := range sessions {
		if !isScheduled(s.Status) {
			continue
		}
		trID, courseID := s.TrainerID.Int, s.CourseID.Int // zero when unassigned
		if counts[trID] == nil {
			counts[trID] = make(map[int]int)
		}
		counts[trID][courseID]++
	}

	loads := make([]TrainerLoad, 0, len(counts))
	for trID, byCourse := range counts {
		load := TrainerLoad{
			TrainerID:   trID,
			TrainerName: lookupID(trainerNames, trID, "Unknown Trainer"),
			Courses:     make([]CourseLoad, 0, len(byCourse)),
		}
		for courseID, n := range byCourse {
			load.Courses = append(load.Courses, CourseLoad{
				CourseID:     courseID,
				CourseName:   lookupID(courseNames, courseID, "Unknown Course"),
				SessionCount: n,
			})
		}
		sort.Slice(load.Courses, func(i, j int) bool { return load.Courses[i].CourseID < load.Courses[j].CourseID })
		loads = append(loads, load)
	}
	sort.Slice(loads, func(i, j int) bool { return loads[i].TrainerID < loads[j].TrainerID })
	return loads, nil
}

// MissedLessons lists one month's missed sessions with their trainer, batch
// and course names resolved.
func (svc *Service) MissedLessons(ctx context.Context, year int, month time.Month) (MissedLessons, error) {
	from, to := workcal.MonthBounds(year, month)
	missed, err := svc.sessionRepo.QuerySessionsByStatusInRange(ctx, session.StatusMissed, from, to)
	if err != nil {
		return MissedLessons{}, errors.Wrap(err, "querying missed sessions")
	}
	trainerNames, err := svc.trainerNames(ctx)
	if err != nil {
		return MissedLessons{}, err
	}
	batchNames, err := svc.batchNames(ctx)
	if err != nil {
		return MissedLessons{}, err
	}
	courseNames, err := svc.courseNames(ctx)
	if err != nil {
		return MissedLessons{}, err
	}

	rep := MissedLessons{
		TotalMissed: len(missed),
		Sessions:    make([]MissedSession, 0, len(missed)),
	}
	for _, s := range missed {
		rep.Sessions = append(rep.Sessions, MissedSession{
			ID:      s.ID,
			Date:    s.SessionDate,
			Trainer: lookupID(trainerNames, s.TrainerID.Int, "Unknown Trainer"),
			Batch:   lookupID(batchNames, s.BatchID.Int, "Unknown Batch"),
			Course:  lookupID(courseNames, s.CourseID.Int, "Unknown Course"),
			Notes:   s.Notes,
		})
	}
	return rep, nil
}

// CancelledSessions lists one month's cancelled sessions with their trainer
// and batch names resolved.
func (svc *Service) CancelledSessions(ctx context.Context, year int, month time.Month) (CancelledSessions, error) {
	from, to := workcal.MonthBounds(year, month)
	cancelled, err := svc.sessionRepo.QuerySessionsByStatusInRange(ctx, session.StatusCancelled, from, to)
	if err != nil {
		return CancelledSessions{}, errors.Wrap(err, "querying cancelled sessions")
	}
	trainerNames, err := svc.trainerNames(ctx)
	if err != nil {
		return CancelledSessions{}, err
	}
	batchNames, err := svc.batchNames(ctx)
	if err != nil {
		return CancelledSessions{}, err
	}

	rep := CancelledSessions{
		TotalCancelled: len(cancelled),
		Sessions:       make([]CancelledSession, 0, len(cancelled)),
	}
	for _, s := range cancelled {
		rep.Sessions = append(rep.Sessions, CancelledSession{
			ID:      s.ID,
			Date:    s.SessionDate,
			Trainer: lookupID(trainerNames, s.TrainerID.Int, "Unknown Trainer"),
			Batch:   lookupID(batchNames, s.BatchID.Int, "Unknown Batch"),
			Notes:   s.Notes,
		})
	}
	return rep, nil
}

// BatchDurations reports each batch's session span: first and last session
// date, day count between them and the completed tally.
func (svc *Service) BatchDurations(ctx context.Context) ([]BatchDuration, error) {
	batches, err := svc.batchRepo.QueryAllBatches(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	sessions, err := svc.sessionRepo.QueryAllSessions(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	programNames, err := svc.programNames(ctx)
	if err != nil {
		return nil, err
	}

	byBatch := make(map[int][]session.Session)
	for _, s := range sessions {
		if s.BatchID.Valid {
			byBatch[s.BatchID.Int] = append(byBatch[s.BatchID.Int], s)
		}
	}

	durations := make([]BatchDuration, 0, len(batches))
	for _, b := range batches {
		dur := BatchDuration{
			BatchID:   b.ID,
			BatchName: b.BatchName,
			Program:   lookupID(programNames, b.ProgramID.Int, "Unknown"),
		}
		for _, s := range byBatch[b.ID] {
			dur.TotalSessions++
			if s.Status == session.StatusCompleted {
				dur.CompletedSessions++
			}
			if !dur.StartDate.Valid || s.SessionDate.Before(dur.StartDate.Time) {
				dur.StartDate = null.TimeFrom(s.SessionDate)
			}
			if !dur.EndDate.Valid || s.SessionDate.After(dur.EndDate.Time) {
				dur.EndDate = null.TimeFrom(s.SessionDate)
			}
		}
		if dur.StartDate.Valid {
			dur.DurationDays = int(math.Ceil(dur.EndDate.Time.Sub(dur.StartDate.Time).Hours() / 24))
		}
		durations = append(durations, dur)
	}
	return durations, nil
}
