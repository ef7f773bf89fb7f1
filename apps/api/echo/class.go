package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type classApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerClassAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := classApi{svc: svc, validate: validate}

	cg := g.Group("/classes")
	cg.GET("", api.list)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *classApi) list(ctx echo.Context) error {
	classes, err := api.svc.ListClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) create(ctx echo.Context) error {
	var data school.NewClass
	if err := ctx.Bind(&data); err != nil {
		return classEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return classEntity.invalidData(err)
	}

	c, err := api.svc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		if core.IsValidationError(err) {
			return classEntity.invalidData(err)
		}
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return classEntity.notFound()
	}
	c, ok, err := api.svc.GetClass(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting class")
	}
	if !ok {
		return classEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classApi) update(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return classEntity.notFound()
	}

	var data school.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return classEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return classEntity.invalidData(err)
	}

	c, ok, err := api.svc.UpdateClass(ctx.Request().Context(), id, data)
	if err != nil {
		if core.IsValidationError(err) {
			return classEntity.invalidData(err)
		}
		return errors.Wrap(err, "updating class")
	}
	if !ok {
		return classEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classApi) destroy(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return classEntity.notFound()
	}
	deleted, err := api.svc.DeleteClass(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if !deleted {
		return classEntity.notFound()
	}
	return classEntity.deleted(ctx)
}
