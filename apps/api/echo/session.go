package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core/session"
	"github.com/etasha-dev/scheduler/services/metrics"
)

type sessionApi struct {
	svc      *session.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, jwt, scheduler echo.MiddlewareFunc, opts *Options) {
	api := sessionApi{svc: opts.SessionSvc, validate: opts.Validate}

	sg := g.Group("/sessions", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create, scheduler)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update, scheduler)
	sg.DELETE("/:id", api.destroy, scheduler)

	// Weekly automation hooks, normally hit by a cron job.
	cg := g.Group("/scheduler", jwt, scheduler)
	cg.POST("/generate-draft", api.generateDraft)
	cg.POST("/publish-week", api.publishWeek)
}

func (api *sessionApi) create(ctx echo.Context) error {
	var data session.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusCreated, sess)
}

func (api *sessionApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	sessions, err := api.svc.QueryAll(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []session.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	sess, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess)
}

func (api *sessionApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return err
	}

	var data session.UpdateSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSession")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess)
}

func (api *sessionApi) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) generateDraft(ctx echo.Context) error {
	res, err := api.svc.GenerateDraft(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "generating draft sessions")
	}
	metrics.DraftSessionsGenerated.Add(float64(res.Count))
	return ctx.JSON(http.StatusOK, res)
}

func (api *sessionApi) publishWeek(ctx echo.Context) error {
	res, err := api.svc.PublishWeek(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "publishing weekly sessions")
	}
	metrics.SessionsPublished.Add(float64(res.Count))
	return ctx.JSON(http.StatusOK, res)
}
