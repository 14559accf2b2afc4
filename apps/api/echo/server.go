// Package echoapi exposes the scheduling services over a REST API.
package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/center"
	"github.com/etasha-dev/scheduler/core/course"
	"github.com/etasha-dev/scheduler/core/program"
	"github.com/etasha-dev/scheduler/core/report"
	"github.com/etasha-dev/scheduler/core/schedule"
	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/core/trainer"
	"github.com/etasha-dev/scheduler/services/metrics"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool
		SignalShutdown func()

		TrainerSvc  *trainer.Service
		CenterSvc   *center.Service
		ProgramSvc  *program.Service
		CourseSvc   *course.Service
		BatchSvc    *batch.Service
		SessionSvc  *session.Service
		ScheduleSvc *schedule.Service
		ReportSvc   *report.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(metricsMiddleware())
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown, s.opts.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	s.app.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	v1 := s.app.Group("/v1")
	jwt := newJWTMiddleware(conf)
	scheduler := schedulerMiddleware()

	registerTrainerAPI(v1, jwt, scheduler, s.opts)
	registerCenterAPI(v1, jwt, scheduler, s.opts)
	registerProgramAPI(v1, jwt, scheduler, s.opts)
	registerCourseAPI(v1, jwt, scheduler, s.opts)
	registerBatchAPI(v1, jwt, scheduler, s.opts)
	registerSessionAPI(v1, jwt, scheduler, s.opts)
	registerScheduleAPI(v1, jwt, scheduler, s.opts)
	registerReportAPI(v1, jwt, s.opts)
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the ETASHA scheduling API!")
}
