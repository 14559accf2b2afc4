package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core/batch"
	"github.com/etasha-dev/scheduler/core/schedule"
	"github.com/etasha-dev/scheduler/services/metrics"
)

type scheduleApi struct {
	svc      *schedule.Service
	batchSvc *batch.Service
	validate *validator.Validate
}

func registerScheduleAPI(g *echo.Group, jwt, scheduler echo.MiddlewareFunc, opts *Options) {
	api := scheduleApi{svc: opts.ScheduleSvc, batchSvc: opts.BatchSvc, validate: opts.Validate}

	bsg := g.Group("/batch-schedules", jwt)
	bsg.GET("/batches", api.queryBatches)
	bsg.GET("/:batchId", api.queryByBatch)
	bsg.GET("/:batchId/monthly/:year/:month", api.monthlyView)
	bsg.POST("/parse-csv", api.parseCSV, scheduler)
	bsg.POST("/bulk-upload", api.bulkUpload, scheduler)
	bsg.PUT("/entry/:id", api.updateEntry, scheduler)
}

// queryBatches feeds the batch picker on the schedule upload screen.
func (api *scheduleApi) queryBatches(ctx echo.Context) error {
	batches, err := api.batchSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}
	if batches == nil {
		batches = []batch.Batch{}
	}
	return ctx.JSON(http.StatusOK, batches)
}

func (api *scheduleApi) queryByBatch(ctx echo.Context) error {
	batchID, err := strconv.Atoi(ctx.Param("batchId"))
	if err != nil {
		return errHttpNotFound
	}
	entries, err := api.svc.QueryByBatch(ctx.Request().Context(), batchID)
	if err != nil {
		return errors.Wrap(err, "querying schedule entries")
	}
	if entries == nil {
		entries = []schedule.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *scheduleApi) monthlyView(ctx echo.Context) error {
	batchID, err := strconv.Atoi(ctx.Param("batchId"))
	if err != nil {
		return errHttpNotFound
	}
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return errHttpNotFound
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return errHttpNotFound
	}

	entries, err := api.svc.MonthlyView(ctx.Request().Context(), batchID, year, time.Month(month))
	if err != nil {
		return errors.Wrap(err, "querying monthly schedule")
	}
	if entries == nil {
		entries = []schedule.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

// ParseCSVRequest carries raw CSV text pasted or uploaded by a scheduler.
type ParseCSVRequest struct {
	CSVData string `json:"csvData" validate:"required"`
}

func (api *scheduleApi) parseCSV(ctx echo.Context) error {
	var data ParseCSVRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ParseCSVRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	grid, err := schedule.ParseCSV(data.CSVData)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse the CSV data")
	}
	if grid.IsEmpty() {
		return echo.NewHTTPError(http.StatusBadRequest, "no schedule rows found in the CSV data")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    grid.ScheduleData(),
	})
}

func (api *scheduleApi) bulkUpload(ctx echo.Context) error {
	var data schedule.BulkUpload
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkUpload")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entries, err := api.svc.BulkUpload(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	metrics.ScheduleEntriesUploaded.Add(float64(len(entries)))
	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Schedule uploaded successfully.",
		"data":    entries,
	})
}

func (api *scheduleApi) updateEntry(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data schedule.UpdateEntry
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEntry")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	entry, err := api.svc.UpdateEntry(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entry)
}
