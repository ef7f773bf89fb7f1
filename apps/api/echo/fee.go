package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type feeApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerFeeAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := feeApi{svc: svc, validate: validate}

	fg := g.Group("/fees")
	fg.GET("", api.query)
	fg.POST("", api.create)
	fg.GET("/:id", api.retrieve)
	fg.PUT("/:id", api.update)
	fg.DELETE("/:id", api.destroy)
}

func (api *feeApi) query(ctx echo.Context) error {
	filter := new(FeeFilter)
	if err := ctx.Bind(filter); err != nil {
		return feeEntity.invalidFilter(err)
	}
	if err := filter.Validate(api.validate); err != nil {
		return feeEntity.invalidFilter(err)
	}

	var (
		fees []school.Fee
		err  error
	)
	reqCtx := ctx.Request().Context()
	sid, byStudent := filter.Student()
	switch {
	case byStudent:
		fees, err = api.svc.StudentFees(reqCtx, sid)
	case filter.Status == school.FeeOverdue:
		fees, err = api.svc.OverdueFees(reqCtx)
	case filter.Status == school.FeePending:
		fees, err = api.svc.PendingFees(reqCtx)
	default:
		fees, err = api.svc.ListFees(reqCtx)
	}
	if err != nil {
		return errors.Wrap(err, "querying fees")
	}
	return ctx.JSON(http.StatusOK, fees)
}

func (api *feeApi) create(ctx echo.Context) error {
	var data school.NewFee
	if err := ctx.Bind(&data); err != nil {
		return feeEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return feeEntity.invalidData(err)
	}

	f, err := api.svc.CreateFee(ctx.Request().Context(), data)
	if err != nil {
		if core.IsValidationError(err) {
			return feeEntity.invalidData(err)
		}
		return errors.Wrap(err, "creating fee")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *feeApi) retrieve(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return feeEntity.notFound()
	}
	f, ok, err := api.svc.GetFee(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting fee")
	}
	if !ok {
		return feeEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *feeApi) update(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return feeEntity.notFound()
	}

	var data school.UpdateFee
	if err := ctx.Bind(&data); err != nil {
		return feeEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return feeEntity.invalidData(err)
	}

	f, ok, err := api.svc.UpdateFee(ctx.Request().Context(), id, data)
	if err != nil {
		if core.IsValidationError(err) {
			return feeEntity.invalidData(err)
		}
		return errors.Wrap(err, "updating fee")
	}
	if !ok {
		return feeEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *feeApi) destroy(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return feeEntity.notFound()
	}
	deleted, err := api.svc.DeleteFee(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting fee")
	}
	if !deleted {
		return feeEntity.notFound()
	}
	return feeEntity.deleted(ctx)
}
