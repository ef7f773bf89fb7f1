package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/school"
)

type studentApi struct {
	svc      *school.Service
	reports  *report.Engine
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *school.Service, reports *report.Engine, validate *validator.Validate) {
	api := studentApi{svc: svc, reports: reports, validate: validate}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/fees", api.fees)
	sg.GET("/:id/performances", api.performances)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(StudentFilter)
	if err := ctx.Bind(filter); err != nil {
		return studentEntity.invalidFilter(err)
	}
	filter.Clean()

	var (
		students []report.StudentWithFees
		err      error
	)
	switch {
	case filter.Search != "":
		students, err = api.reports.SearchStudents(ctx.Request().Context(), filter.Search)
	case filter.Class != "":
		students, err = api.reports.StudentsByClass(ctx.Request().Context(), filter.Class)
	default:
		students, err = api.reports.StudentsWithFees(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return studentEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return studentEntity.invalidData(err)
	}

	s, err := api.svc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		if core.IsValidationError(err) {
			return studentEntity.invalidData(err)
		}
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return studentEntity.notFound()
	}
	s, ok, err := api.svc.GetStudent(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	if !ok {
		return studentEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return studentEntity.notFound()
	}

	var data school.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return studentEntity.invalidData(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return studentEntity.invalidData(err)
	}

	s, ok, err := api.svc.UpdateStudent(ctx.Request().Context(), id, data)
	if err != nil {
		if core.IsValidationError(err) {
			return studentEntity.invalidData(err)
		}
		return errors.Wrap(err, "updating student")
	}
	if !ok {
		return studentEntity.notFound()
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, ok := parseID(ctx)
	if !ok {
		return studentEntity.notFound()
	}
	deleted, err := api.svc.DeleteStudent(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if !deleted {
		return studentEntity.notFound()
	}
	return studentEntity.deleted(ctx)
}

// student returns the :id student, or a 404 error if it does not exist.
func (api *studentApi) student(ctx echo.Context) (school.Student, error) {
	id, ok := parseID(ctx)
	if !ok {
		return school.Student{}, studentEntity.notFound()
	}
	s, ok, err := api.svc.GetStudent(ctx.Request().Context(), id)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "getting student")
	}
	if !ok {
		return school.Student{}, studentEntity.notFound()
	}
	return s, nil
}

func (api *studentApi) fees(ctx echo.Context) error {
	s, err := api.student(ctx)
	if err != nil {
		return err
	}
	fees, err := api.svc.StudentFees(ctx.Request().Context(), s.ID)
	if err != nil {
		return errors.Wrap(err, "querying student fees")
	}
	return ctx.JSON(http.StatusOK, fees)
}

func (api *studentApi) performances(ctx echo.Context) error {
	s, err := api.student(ctx)
	if err != nil {
		return err
	}
	perfs, err := api.svc.StudentPerformances(ctx.Request().Context(), s.ID)
	if err != nil {
		return errors.Wrap(err, "querying student performances")
	}
	return ctx.JSON(http.StatusOK, perfs)
}
