package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	echoapi "github.com/etasha-dev/scheduler/apps/api/echo"
	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/center"
	"github.com/etasha-dev/scheduler/core/course"
	"github.com/etasha-dev/scheduler/core/program"
	"github.com/etasha-dev/scheduler/core/report"
	"github.com/etasha-dev/scheduler/core/schedule"
	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/core/trainer"
	emailsvc "github.com/etasha-dev/scheduler/services/email"
	logsvc "github.com/etasha-dev/scheduler/services/logger"
	dummydb "github.com/etasha-dev/scheduler/storage/database/dummy"
)

type httpErr struct {
	Error string `json:"error"`
}

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

// testEnv wires a full server against the in-memory database. Each test gets
// its own env so tests cannot see each other's data.
type testEnv struct {
	conf *core.Config
	app  echoapi.Server

	trainerSvc  *trainer.Service
	centerSvc   *center.Service
	programSvc  *program.Service
	courseSvc   *course.Service
	batchSvc    *batch.Service
	sessionSvc  *session.Service
	scheduleSvc *schedule.Service
	reportSvc   *report.Service

	sessionRepo session.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		Debug:     false,
		TestMode:  true,
		AppName:   "ETASHA Scheduler",
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}

	db := dummydb.Open()
	trainerRepo := dummydb.NewTrainerRepository(db)
	sessionRepo := dummydb.NewSessionRepository(db)
	batchRepo := dummydb.NewBatchRepository(db)
	courseRepo := dummydb.NewCourseRepository(db)
	programRepo := dummydb.NewProgramRepository(db)

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	validate, translator := core.NewValidator()
	trainer.RegisterValidators(validate, translator)

	env := &testEnv{
		conf:        conf,
		trainerSvc:  trainer.NewService(trainerRepo),
		centerSvc:   center.NewService(dummydb.NewCenterRepository(db)),
		programSvc:  program.NewService(programRepo),
		courseSvc:   course.NewService(courseRepo),
		batchSvc:    batch.NewService(batchRepo),
		sessionSvc:  session.NewService(db, sessionRepo, trainerRepo, mailSvc, logger),
		scheduleSvc: schedule.NewService(db, dummydb.NewScheduleRepository(db), batchRepo, nil),
		reportSvc:   report.NewService(sessionRepo, trainerRepo, batchRepo, courseRepo, programRepo),
		sessionRepo: sessionRepo,
	}
	env.app = echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		SignalShutdown: func() {},
		TrainerSvc:     env.trainerSvc,
		CenterSvc:      env.centerSvc,
		ProgramSvc:     env.programSvc,
		CourseSvc:      env.courseSvc,
		BatchSvc:       env.batchSvc,
		SessionSvc:     env.sessionSvc,
		ScheduleSvc:    env.scheduleSvc,
		ReportSvc:      env.reportSvc,
		Validate:       validate,
		Translator:     translator,
	})
	return env
}

func (env *testEnv) createTrainer(t *testing.T, name, email, role, status string) trainer.Trainer {
	t.Helper()
	tr, err := env.trainerSvc.Create(context.Background(), trainer.NewTrainer{
		Name:            name,
		Email:           email,
		Password:        "Secret123!",
		PasswordConfirm: "Secret123!",
		Role:            role,
		Status:          status,
	})
	require.NoError(t, err)
	return tr
}

func (env *testEnv) token(t *testing.T, tr trainer.Trainer) string {
	t.Helper()
	token, err := echoapi.GenerateToken(echoapi.GetTrainerClaims(tr, env.conf), env.conf)
	require.NoError(t, err)
	return token
}

// do performs a request against the test server. A non-nil body is JSON-encoded.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.app.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}

func checkHTTPErr(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantMsg string) {
	t.Helper()
	require.Equal(t, wantCode, rec.Code, "body: %s", rec.Body.String())
	var herr httpErr
	decodeJSON(t, rec, &herr)
	require.Equal(t, wantMsg, herr.Error)
}
