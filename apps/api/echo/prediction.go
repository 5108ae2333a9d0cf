package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/advisory"
	"github.com/trezcool/alama/core/performance"
	"github.com/trezcool/alama/core/prediction"
)

type predictionApi struct {
	svc      *advisory.Service
	validate *validator.Validate
}

func registerPredictionAPI(g *echo.Group, svc *advisory.Service, validate *validator.Validate) {
	api := predictionApi{
		svc:      svc,
		validate: validate,
	}

	pg := g.Group("/predictions")
	pg.POST("", api.create)
	pg.POST("/preview", api.preview)
	pg.POST("/forecast", api.forecast)
	pg.GET("", api.query)
	pg.DELETE("", api.destroyMultiple)

	// detail endpoints
	pg.GET("/:id", api.retrieve)
	pg.DELETE("/:id", api.destroy)

	g.POST("/performance", api.outlook)
}

// Handlers

func (api *predictionApi) create(ctx echo.Context) error {
	var data advisory.NewPrediction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPrediction")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Predict(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving prediction")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *predictionApi) preview(ctx echo.Context) error {
	in, err := api.bindInput(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Preview(in))
}

func (api *predictionApi) forecast(ctx echo.Context) error {
	in, err := api.bindInput(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Forecast(in))
}

func (api *predictionApi) query(ctx echo.Context) error {
	filter, err := bindQueryFilter(ctx)
	if err != nil {
		return err
	}
	var ord Ordering
	ord.Bind(ctx)

	recs, err := api.svc.Query(ctx.Request().Context(), filter, ord.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying predictions")
	}
	if recs == nil {
		recs = []advisory.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *predictionApi) retrieve(ctx echo.Context) error {
	rec, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param(idParam))
	if err != nil {
		return errors.Wrap(err, "getting prediction")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *predictionApi) destroy(ctx echo.Context) error {
	n, err := api.svc.Delete(ctx.Request().Context(), ctx.Param(idParam))
	if err != nil {
		return errors.Wrap(err, "deleting prediction")
	}
	if n == 0 {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *predictionApi) destroyMultiple(ctx echo.Context) error {
	ids := ctx.QueryParams()[idParam]
	if _, err := api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting predictions")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *predictionApi) outlook(ctx echo.Context) error {
	var data performance.Snapshot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Snapshot")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Outlook(data))
}

func (api *predictionApi) bindInput(ctx echo.Context) (prediction.Input, error) {
	var in prediction.Input
	if err := ctx.Bind(&in); err != nil {
		return in, errors.Wrap(err, "binding to Input")
	}
	if err := in.Validate(api.validate); err != nil {
		return in, err
	}
	return in, nil
}
