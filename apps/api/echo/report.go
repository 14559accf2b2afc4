package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core/report"
)

type reportApi struct {
	svc      *report.Service
	validate *validator.Validate
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := reportApi{svc: opts.ReportSvc, validate: opts.Validate}

	rg := g.Group("/reports", jwt)
	rg.GET("/dashboard-summary", api.dashboardSummary)
	rg.GET("/sessions-by-trainer-course", api.sessionsByTrainerCourse)
	rg.GET("/missed-lessons", api.missedLessons)
	rg.GET("/cancelled-sessions", api.cancelledSessions)
	rg.GET("/batch-duration", api.batchDuration)
}

// reportPeriod carries the month under report; batch_id narrows month-based
// reports down to one batch.
type reportPeriod struct {
	Year    int `query:"year" validate:"required"`
	Month   int `query:"month" validate:"required,min=1,max=12"`
	BatchID int `query:"batch_id"`
}

func (rp *reportPeriod) Bind(ctx echo.Context, validate *validator.Validate) error {
	if err := ctx.Bind(rp); err != nil {
		return errors.Wrap(err, "binding report period")
	}
	return validate.Struct(rp)
}

func (api *reportApi) dashboardSummary(ctx echo.Context) error {
	var period reportPeriod
	if err := period.Bind(ctx, api.validate); err != nil {
		return err
	}

	sum, err := api.svc.DashboardSummary(ctx.Request().Context(), period.Year, time.Month(period.Month), period.BatchID)
	if err != nil {
		return errors.Wrap(err, "building dashboard summary")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *reportApi) sessionsByTrainerCourse(ctx echo.Context) error {
	var period reportPeriod
	if err := period.Bind(ctx, api.validate); err != nil {
		return err
	}

	loads, err := api.svc.SessionsByTrainerCourse(ctx.Request().Context(), period.Year, time.Month(period.Month), period.BatchID)
	if err != nil {
		return errors.Wrap(err, "building trainer course report")
	}
	return ctx.JSON(http.StatusOK, loads)
}

func (api *reportApi) missedLessons(ctx echo.Context) error {
	var period reportPeriod
	if err := period.Bind(ctx, api.validate); err != nil {
		return err
	}

	rep, err := api.svc.MissedLessons(ctx.Request().Context(), period.Year, time.Month(period.Month))
	if err != nil {
		return errors.Wrap(err, "building missed lessons report")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportApi) cancelledSessions(ctx echo.Context) error {
	var period reportPeriod
	if err := period.Bind(ctx, api.validate); err != nil {
		return err
	}

	rep, err := api.svc.CancelledSessions(ctx.Request().Context(), period.Year, time.Month(period.Month))
	if err != nil {
		return errors.Wrap(err, "building cancelled sessions report")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportApi) batchDuration(ctx echo.Context) error {
	durations, err := api.svc.BatchDurations(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building batch duration report")
	}
	return ctx.JSON(http.StatusOK, durations)
}
