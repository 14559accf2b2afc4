package session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/trainer"
	"github.com/etasha-dev/scheduler/core/workcal"
)

var ErrNotFound = errors.New("session not found")

type (
	Repository interface {
		CreateSession(ctx context.Context, s Session, exec ...core.DBExecutor) (Session, error)
		BulkCreateSessions(ctx context.Context, ss []Session, exec ...core.DBExecutor) (int, error)
		QueryAllSessions(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Session, error)
		GetSessionByID(ctx context.Context, id int, exec ...core.DBExecutor) (Session, error)
		// QuerySessionsInRange returns sessions of any status whose date falls
		// within [from, to] inclusive.
		QuerySessionsInRange(ctx context.Context, from, to time.Time, exec ...core.DBExecutor) ([]Session, error)
		// QuerySessionsByStatusInRange returns sessions with the given status
		// whose date falls within [from, to] inclusive.
		QuerySessionsByStatusInRange(ctx context.Context, status string, from, to time.Time, exec ...core.DBExecutor) ([]Session, error)
		// BulkUpdateStatusInRange transitions every session matching
		// (fromStatus, [from, to]) to toStatus and returns the affected count.
		BulkUpdateStatusInRange(ctx context.Context, fromStatus, toStatus string, from, to time.Time, exec ...core.DBExecutor) (int, error)
		UpdateSession(ctx context.Context, s Session, exec ...core.DBExecutor) (Session, error)
		DeleteSession(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	// Result reports the outcome of a scheduler run.
	Result struct {
		Ref     string `json:"ref"`
		Count   int    `json:"count"`
		Message string `json:"message"`
	}

	Service struct {
		db          core.DB
		repo        Repository
		trainerRepo trainer.Repository
		mailSvc     core.EmailService
		log         core.Logger
	}
)

func NewService(db core.DB, repo Repository, trainerRepo trainer.Repository, mailSvc core.EmailService, log core.Logger) *Service {
	return &Service{
		db:          db,
		repo:        repo,
		trainerRepo: trainerRepo,
		mailSvc:     mailSvc,
		log:         log,
	}
}

func (svc *Service) Create(ctx context.Context, ns NewSession) (Session, error) {
	now := time.Now().UTC()
	s := Session{
		SessionDate: ns.SessionDate.UTC(),
		Status:      ns.Status,
		Notes:       ns.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.Status == "" {
		s.Status = StatusDraft
	}
	s.TrainerID.SetValid(ns.TrainerID)
	s.BatchID.SetValid(ns.BatchID)
	s.CourseID.SetValid(ns.CourseID)
	if ns.ProgramID != nil {
		s.ProgramID.SetValid(*ns.ProgramID)
	}
	if ns.CenterID != nil {
		s.CenterID.SetValid(*ns.CenterID)
	}
	return svc.repo.CreateSession(ctx, s)
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]Session, error) {
	return svc.repo.QueryAllSessions(ctx, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Session, error) {
	return svc.repo.GetSessionByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateSession) (Session, error) {
	s, err := svc.repo.GetSessionByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if us.SessionDate != nil {
		s.SessionDate = us.SessionDate.UTC()
	}
	if us.Status != "" {
		s.Status = us.Status
	}
	if us.Notes != nil {
		s.Notes = *us.Notes
	}
	if us.TrainerID != nil {
		s.TrainerID.SetValid(*us.TrainerID)
	}
	if us.BatchID != nil {
		s.BatchID.SetValid(*us.BatchID)
	}
	if us.CourseID != nil {
		s.CourseID.SetValid(*us.CourseID)
	}
	if us.ProgramID != nil {
		s.ProgramID.SetValid(*us.ProgramID)
	}
	if us.CenterID != nil {
		s.CenterID.SetValid(*us.CenterID)
	}
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSession(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteSession(ctx, id)
}

// GenerateDraft copies the current ISO week's published sessions into next
// week's drafts: date +7 days, status forced to Draft, other fields carried.
// The target week is the idempotency key: if next week already holds any
// draft, the call is a no-op instead of piling up duplicates.
func (svc *Service) GenerateDraft(ctx context.Context) (Result, error) {
	res := Result{Ref: uuid.New().String()}
	now := time.Now().UTC()
	curStart, curEnd := workcal.WeekBounds(now)
	nextStart, nextEnd := workcal.NextWeekBounds(now)

	existing, err := svc.repo.QuerySessionsByStatusInRange(ctx, StatusDraft, nextStart, nextEnd)
	if err != nil {
		return res, pkgerrors.Wrap(err, "checking existing drafts")
	}
	if len(existing) > 0 {
		res.Message = fmt.Sprintf("%d draft sessions already exist for the next week; nothing to generate.", len(existing))
		return res, nil
	}

	templates, err := svc.repo.QuerySessionsByStatusInRange(ctx, StatusPublished, curStart, curEnd)
	if err != nil {
		return res, pkgerrors.Wrap(err, "querying template sessions")
	}
	if len(templates) == 0 {
		res.Message = "No published sessions found in the current week to use as a template."
		return res, nil
	}

	drafts := make([]Session, 0, len(templates))
	for _, tpl := range templates {
		drafts = append(drafts, Session{
			SessionDate: tpl.SessionDate.AddDate(0, 0, 7),
			Status:      StatusDraft,
			Notes:       tpl.Notes,
			BatchID:     tpl.BatchID,
			TrainerID:   tpl.TrainerID,
			CourseID:    tpl.CourseID,
			ProgramID:   tpl.ProgramID,
			CenterID:    tpl.CenterID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return res, pkgerrors.Wrap(err, "beginning transaction")
	}
	count, err := svc.repo.BulkCreateSessions(ctx, drafts, tx)
	if err != nil {
		_ = tx.Rollback()
		return res, pkgerrors.Wrap(err, "bulk creating draft sessions")
	}
	if err = tx.Commit(); err != nil {
		return res, pkgerrors.Wrap(err, "committing transaction")
	}

	res.Count = count
	res.Message = fmt.Sprintf("%d draft sessions created for the next week.", count)
	svc.log.Info(res.Message, map[string]interface{}{"ref": res.Ref})
	return res, nil
}

// PublishWeek promotes next ISO week's drafts to the live schedule in one
// bulk update, then notifies the affected active trainers.
func (svc *Service) PublishWeek(ctx context.Context) (Result, error) {
	res := Result{Ref: uuid.New().String()}
	nextStart, nextEnd := workcal.NextWeekBounds(time.Now().UTC())

	count, err := svc.repo.BulkUpdateStatusInRange(ctx, StatusDraft, StatusPublished, nextStart, nextEnd)
	if err != nil {
		return res, pkgerrors.Wrap(err, "publishing draft sessions")
	}
	if count == 0 {
		res.Message = "No draft sessions found for the upcoming week to publish."
		return res, nil
	}

	res.Count = count
	res.Message = fmt.Sprintf("%d sessions have been published successfully.", count)
	svc.log.Info(res.Message, map[string]interface{}{"ref": res.Ref})
	svc.sendPublishNotice(ctx, nextStart, nextEnd)
	return res, nil
}

// sendPublishNotice mails the distinct active trainers assigned to the
// freshly published week. Failures are logged, never surfaced: the publish
// itself already succeeded.
func (svc *Service) sendPublishNotice(ctx context.Context, from, to time.Time) {
	published, err := svc.repo.QuerySessionsByStatusInRange(ctx, StatusPublished, from, to)
	if err != nil {
		svc.log.Warn("querying published sessions for notice", err)
		return
	}

	seen := make(map[int]bool)
	ids := make([]int, 0, len(published))
	for _, s := range published {
		if s.TrainerID.Valid && !seen[s.TrainerID.Int] {
			seen[s.TrainerID.Int] = true
			ids = append(ids, s.TrainerID.Int)
		}
	}
	if len(ids) == 0 {
		return
	}

	trainers, err := svc.trainerRepo.GetTrainersByID(ctx, ids)
	if err != nil {
		svc.log.Warn("querying trainers for notice", err)
		return
	}

	msgs := make([]*core.EmailMessage, 0, len(trainers))
	for _, tr := range trainers {
		if !tr.IsActive() {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:      []mail.Address{{Name: tr.Name, Address: tr.Email}},
			Subject: "Your training schedule for next week has been published",
			Body: fmt.Sprintf(
				"Hi %s,\n\nthe schedule for the week of %s has been published. Please review your sessions in the scheduler.\n",
				tr.Name, from.Format("Jan 2, 2006"),
			),
		})
	}
	if len(msgs) > 0 {
		svc.mailSvc.SendMessages(msgs...)
	}
}
