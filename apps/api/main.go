package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

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
	"github.com/etasha-dev/scheduler/storage/database"
	sqlxrepos "github.com/etasha-dev/scheduler/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if err := run(std); err != nil {
		std.Fatal(err)
	}
}

func run(std *log.Logger) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getting working directory")
	}
	conf, err := core.NewConfig(workDir)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer db.Close()
	appDB := core.WrapDB(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	trainerRepo := sqlxrepos.NewTrainerRepository(db)
	batchRepo := sqlxrepos.NewBatchRepository(db)
	courseRepo := sqlxrepos.NewCourseRepository(db)
	programRepo := sqlxrepos.NewProgramRepository(db)
	sessionRepo := sqlxrepos.NewSessionRepository(db)
	validate, translator := core.NewValidator()
	trainer.RegisterValidators(validate, translator)

	// buffered: signal.Notify must not block
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         logger,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		TrainerSvc:     trainer.NewService(trainerRepo),
		CenterSvc:      center.NewService(sqlxrepos.NewCenterRepository(db)),
		ProgramSvc:     program.NewService(programRepo),
		CourseSvc:      course.NewService(courseRepo),
		BatchSvc:       batch.NewService(batchRepo),
		SessionSvc:     session.NewService(appDB, sessionRepo, trainerRepo, mailSvc, logger),
		ScheduleSvc:    schedule.NewService(appDB, sqlxrepos.NewScheduleRepository(db), batchRepo, nil),
		ReportSvc:      report.NewService(sessionRepo, trainerRepo, batchRepo, courseRepo, programRepo),
		Validate:       validate,
		Translator:     translator,
	})

	go app.Start()
	logger.Info("API server started on " + conf.Server.Address())

	sig := <-shutdown
	logger.Info("shutdown started: " + sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = app.Stop(ctx); err != nil {
		return errors.Wrap(err, "stopping server")
	}
	logger.Info("shutdown complete")
	return nil
}
