package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type expenseApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerExpenseAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := expenseApi{svc: svc, validate: validate}

	eg := g.Group("/expenses")
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *expenseApi) query(ctx echo.Context) error {
	filter := new(ExpenseFilter)
	if err := ctx.Bind(filter); err != nil {
		return expenseEntity.invalidFilter(err)
	}
	if err := filter.Validate(api.validate); err != nil {
		return expenseEntity.invalidFilter(err)
	}

	var (
		expenses []school.Expense
		err      error
	)
	reqCtx := ctx.Request().Context()
	switch {
	case filter.Category != "":
		expenses, err = api.svc.ExpensesByCategory(reqCtx, filter.Category)
	case filter.HasRange():
		from, to := filter.Range()
		expenses, err = api.svc.ExpensesByDateRange(reqCtx, from, to)
	default:
		expenses, err = api.svc.ListExpenses(reqCtx)
	}
	if err != nil {
		return errors.Wrap(err, "querying expenses")
	}
	return ctx.JSON(http.StatusOK, expenses)
}

func (api *expenseApi) create(ctx echo.Context) error {
	var data school.NewExpense
	if err := ctx.Bind(&data); err != nil {
		return expenseEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return expenseEntity.invalidData(err)
	}

	e, err := api.svc.CreateExpense(ctx.Request().Context(), data)
	if err != nil {
		if core.IsValidationError(err) {
			return expenseEntity.invalidData(err)
		}
		return errors.Wrap(err, "creating expense")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *expenseApi) retrieve(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return expenseEntity.notFound()
	}
	e, ok, err := api.svc.GetExpense(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting expense")
	}
	if !ok {
		return expenseEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *expenseApi) update(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return expenseEntity.notFound()
	}

	var data school.UpdateExpense
	if err := ctx.Bind(&data); err != nil {
		return expenseEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return expenseEntity.invalidData(err)
	}

	e, ok, err := api.svc.UpdateExpense(ctx.Request().Context(), id, data)
	if err != nil {
		if core.IsValidationError(err) {
			return expenseEntity.invalidData(err)
		}
		return errors.Wrap(err, "updating expense")
	}
	if !ok {
		return expenseEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *expenseApi) destroy(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return expenseEntity.notFound()
	}
	deleted, err := api.svc.DeleteExpense(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting expense")
	}
	if !deleted {
		return expenseEntity.notFound()
	}
	return expenseEntity.deleted(ctx)
}
