package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/trainer"
)

type trainerApi struct {
	svc        *trainer.Service
	conf       *core.Config
	validate   *validator.Validate
	translator ut.Translator
}

func registerTrainerAPI(g *echo.Group, jwt, scheduler echo.MiddlewareFunc, opts *Options) {
	api := trainerApi{
		svc:        opts.TrainerSvc,
		conf:       opts.Conf,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	tg := g.Group("/trainers")

	// un-authed endpoints
	tg.POST("/login", api.login)

	// authed endpoints
	ag := tg.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("", api.query)
	ag.POST("", api.create, scheduler)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update, scheduler)
	ag.DELETE("/:id", api.destroy, scheduler)
}

func (api *trainerApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(data.Email, data.Password, api.svc, api.conf, ctx)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims, api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *trainerApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc, api.conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *trainerApi) create(ctx echo.Context) error {
	var data trainer.NewTrainer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTrainer")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	tr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating trainer")
	}
	return ctx.JSON(http.StatusCreated, tr)
}

func (api *trainerApi) query(ctx echo.Context) error {
	trainers, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying trainers")
	}
	if trainers == nil {
		trainers = []trainer.Trainer{}
	}
	return ctx.JSON(http.StatusOK, trainers)
}

func (api *trainerApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	tr, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tr)
}

func (api *trainerApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data trainer.UpdateTrainer
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTrainer")
	}
	if err = data.Validate(ctx.Request().Context(), api.validate, orig, api.svc); err != nil {
		return err
	}

	tr, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tr)
}

func (api *trainerApi) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	// ctxTrainer cannot delete themselves
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.TrainerID == id {
		return errHttpForbidden
	}

	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting trainer")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
