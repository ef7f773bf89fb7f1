package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type performanceApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerPerformanceAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := performanceApi{svc: svc, validate: validate}

	pg := g.Group("/performances")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
}

func (api *performanceApi) query(ctx echo.Context) error {
	filter := new(PerformanceFilter)
	if err := ctx.Bind(filter); err != nil {
		return performanceEntity.invalidFilter(err)
	}
	if err := filter.Validate(api.validate); err != nil {
		return performanceEntity.invalidFilter(err)
	}

	var (
		perfs []school.Performance
		err   error
	)
	if sid, ok := filter.Student(); ok {
		perfs, err = api.svc.StudentPerformances(ctx.Request().Context(), sid)
	} else {
		perfs, err = api.svc.ListPerformances(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying performances")
	}
	return ctx.JSON(http.StatusOK, perfs)
}

func (api *performanceApi) create(ctx echo.Context) error {
	var data school.NewPerformance
	if err := ctx.Bind(&data); err != nil {
		return performanceEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return performanceEntity.invalidData(err)
	}

	p, err := api.svc.CreatePerformance(ctx.Request().Context(), data)
	if err != nil {
		if core.IsValidationError(err) {
			return performanceEntity.invalidData(err)
		}
		return errors.Wrap(err, "creating performance")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *performanceApi) retrieve(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return performanceEntity.notFound()
	}
	p, ok, err := api.svc.GetPerformance(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting performance")
	}
	if !ok {
		return performanceEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *performanceApi) update(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return performanceEntity.notFound()
	}

	var data school.UpdatePerformance
	if err := ctx.Bind(&data); err != nil {
		return performanceEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return performanceEntity.invalidData(err)
	}

	p, ok, err := api.svc.UpdatePerformance(ctx.Request().Context(), id, data)
	if err != nil {
		if core.IsValidationError(err) {
			return performanceEntity.invalidData(err)
		}
		return errors.Wrap(err, "updating performance")
	}
	if !ok {
		return performanceEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *performanceApi) destroy(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return performanceEntity.notFound()
	}
	deleted, err := api.svc.DeletePerformance(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting performance")
	}
	if !deleted {
		return performanceEntity.notFound()
	}
	return performanceEntity.deleted(ctx)
}
