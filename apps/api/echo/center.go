package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core/center"
)

type centerApi struct {
	svc      *center.Service
	validate *validator.Validate
}

func registerCenterAPI(g *echo.Group, jwt, scheduler echo.MiddlewareFunc, opts *Options) {
	api := centerApi{svc: opts.CenterSvc, validate: opts.Validate}

	cg := g.Group("/centers", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, scheduler)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update, scheduler)
	cg.DELETE("/:id", api.destroy, scheduler)
}

func (api *centerApi) create(ctx echo.Context) error {
	var data center.NewCenter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCenter")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating center")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *centerApi) query(ctx echo.Context) error {
	centers, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying centers")
	}
	if centers == nil {
		centers = []center.Center{}
	}
	return ctx.JSON(http.StatusOK, centers)
}

func (api *centerApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	c, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *centerApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data center.UpdateCenter
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCenter")
	}
	if err = data.Validate(api.validate, orig); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *centerApi) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting center")
	}
	return ctx.NoContent(http.StatusNoContent)
}
