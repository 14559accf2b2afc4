package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core/program"
)

type programApi struct {
	svc      *program.Service
	validate *validator.Validate
}

func registerProgramAPI(g *echo.Group, jwt, scheduler echo.MiddlewareFunc, opts *Options) {
	api := programApi{svc: opts.ProgramSvc, validate: opts.Validate}

	pg := g.Group("/programs", jwt)
	pg.GET("", api.query)
	pg.POST("", api.create, scheduler)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update, scheduler)
	pg.DELETE("/:id", api.destroy, scheduler)
}

func (api *programApi) create(ctx echo.Context) error {
	var data program.NewProgram
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgram")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating program")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *programApi) query(ctx echo.Context) error {
	programs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying programs")
	}
	if programs == nil {
		programs = []program.Program{}
	}
	return ctx.JSON(http.StatusOK, programs)
}

func (api *programApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	p, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *programApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data program.UpdateProgram
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProgram")
	}
	if err = data.Validate(api.validate, orig); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *programApi) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting program")
	}
	return ctx.NoContent(http.StatusNoContent)
}
