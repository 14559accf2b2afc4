package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/core/trainer"
	"github.com/etasha-dev/scheduler/core/workcal"
	dummydb "github.com/etasha-dev/scheduler/storage/database/dummy"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type fakeMailer struct {
	sent []*core.EmailMessage
}

func (m *fakeMailer) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

type testEnv struct {
	svc         *session.Service
	repo        session.Repository
	trainerRepo trainer.Repository
	mailer      *fakeMailer
}

func newTestEnv() *testEnv {
	db := dummydb.Open()
	repo := dummydb.NewSessionRepository(db)
	trainerRepo := dummydb.NewTrainerRepository(db)
	mailer := &fakeMailer{}
	return &testEnv{
		svc:         session.NewService(db, repo, trainerRepo, mailer, nopLogger{}),
		repo:        repo,
		trainerRepo: trainerRepo,
		mailer:      mailer,
	}
}

func (env *testEnv) seed(t *testing.T, date time.Time, status string, trainerID int) session.Session {
	t.Helper()
	s := session.Session{
		SessionDate: date,
		Status:      status,
		BatchID:     null.IntFrom(1),
		CourseID:    null.IntFrom(1),
	}
	if trainerID > 0 {
		s.TrainerID = null.IntFrom(trainerID)
	}
	s, err := env.repo.CreateSession(context.Background(), s)
	require.NoError(t, err)
	return s
}

func TestGenerateDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	now := time.Now().UTC()
	curStart, _ := workcal.WeekBounds(now)
	nextStart, nextEnd := workcal.NextWeekBounds(now)

	// two published templates in the current week
	tpl1 := env.seed(t, curStart.Add(26*time.Hour), session.StatusPublished, 1)
	tpl2 := env.seed(t, curStart.Add(50*time.Hour), session.StatusPublished, 2)
	// noise that must not be copied
	env.seed(t, curStart.Add(30*time.Hour), session.StatusCancelled, 1)
	env.seed(t, curStart.Add(-48*time.Hour), session.StatusPublished, 1) // last week

	res, err := env.svc.GenerateDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.NotEmpty(t, res.Ref)

	drafts, err := env.repo.QuerySessionsByStatusInRange(ctx, session.StatusDraft, nextStart, nextEnd)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, tpl1.SessionDate.AddDate(0, 0, 7), drafts[0].SessionDate)
	assert.Equal(t, tpl2.SessionDate.AddDate(0, 0, 7), drafts[1].SessionDate)
	assert.Equal(t, tpl1.TrainerID, drafts[0].TrainerID)

	// a second run is a no-op: next week already holds drafts
	res, err = env.svc.GenerateDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Contains(t, res.Message, "already exist")

	drafts, err = env.repo.QuerySessionsByStatusInRange(ctx, session.StatusDraft, nextStart, nextEnd)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}

func TestGenerateDraftNoTemplates(t *testing.T) {
	env := newTestEnv()

	res, err := env.svc.GenerateDraft(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Contains(t, res.Message, "No published sessions")
}

func TestPublishWeek(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	now := time.Now().UTC()
	curStart, _ := workcal.WeekBounds(now)
	nextStart, nextEnd := workcal.NextWeekBounds(now)

	active, err := env.trainerRepo.CreateTrainer(ctx, trainer.Trainer{
		Name: "Asha", Email: "asha@example.com", Role: trainer.RoleTrainer, Status: trainer.StatusActive,
	})
	require.NoError(t, err)
	inactive, err := env.trainerRepo.CreateTrainer(ctx, trainer.Trainer{
		Name: "Vikram", Email: "vikram@example.com", Role: trainer.RoleTrainer, Status: trainer.StatusInactive,
	})
	require.NoError(t, err)

	env.seed(t, nextStart.Add(26*time.Hour), session.StatusDraft, active.ID)
	env.seed(t, nextStart.Add(50*time.Hour), session.StatusDraft, active.ID)
	env.seed(t, nextStart.Add(74*time.Hour), session.StatusDraft, inactive.ID)
	// noise: current week draft and an already published session stay put
	thisWeek := env.seed(t, curStart.Add(26*time.Hour), session.StatusDraft, active.ID)
	env.seed(t, nextStart.Add(26*time.Hour), session.StatusPublished, active.ID)

	res, err := env.svc.PublishWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Contains(t, res.Message, "published successfully")

	published, err := env.repo.QuerySessionsByStatusInRange(ctx, session.StatusPublished, nextStart, nextEnd)
	require.NoError(t, err)
	assert.Len(t, published, 4)

	got, err := env.repo.GetSessionByID(ctx, thisWeek.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StatusDraft, got.Status)

	// only the active trainer is notified
	require.Len(t, env.mailer.sent, 1)
	require.Len(t, env.mailer.sent[0].To, 1)
	assert.Equal(t, active.Email, env.mailer.sent[0].To[0].Address)
}

func TestPublishWeekNothingToPublish(t *testing.T) {
	env := newTestEnv()

	res, err := env.svc.PublishWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Contains(t, res.Message, "No draft sessions")
	assert.Empty(t, env.mailer.sent)
}
