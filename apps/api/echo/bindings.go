package echoapi

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// parseID returns the :id path param; ok is false for non-numeric ids
// and for ids outside the INTEGER column range, which cannot exist.
func parseID(ctx echo.Context) (id int, ok bool) {
	id64, err := strconv.ParseInt(ctx.Param("id"), 10, 32)
	return int(id64), err == nil
}

// StudentFilter: search takes precedence over class.
type StudentFilter struct {
	Search string `query:"search"`
	Class  string `query:"class"`
}

func (f *StudentFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Class = core.CleanString(f.Class)
}

// studentID parses a validated student_id query value; ok is false when it was not given.
func studentID(raw string) (id int, ok bool) {
	if raw == "" {
		return 0, false
	}
	id64, err := strconv.ParseInt(raw, 10, 32)
	return int(id64), err == nil
}

var errIDOutOfRange = errors.New("student_id is out of range")

// checkStudentID rejects numeric student ids too large for the INTEGER column.
func checkStudentID(raw string) error {
	if _, ok := studentID(raw); raw != "" && !ok {
		return core.NewFieldValidationError("student_id", errIDOutOfRange)
	}
	return nil
}

// FeeFilter: student_id takes precedence over status.
type FeeFilter struct {
	StudentID string `query:"student_id" json:"student_id" validate:"omitempty,number"`
	Status    string `query:"status" json:"status" validate:"omitempty,oneof=overdue pending"`
}

func (f *FeeFilter) Validate(validate *validator.Validate) error {
	f.StudentID = core.CleanString(f.StudentID)
	f.Status = core.CleanString(f.Status, true /* lower */)
	if err := validate.Struct(f); err != nil {
		return err
	}
	return checkStudentID(f.StudentID)
}

func (f FeeFilter) Student() (id int, ok bool) {
	return studentID(f.StudentID)
}

// ExpenseFilter: category takes precedence over the date range; the range needs both bounds.
type ExpenseFilter struct {
	Category  string `query:"category" json:"category"`
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,isodate"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,isodate"`
}

var errBoundRequired = errors.New("start_date and end_date go together")

func (f *ExpenseFilter) Validate(validate *validator.Validate) error {
	f.Category = core.CleanString(f.Category)
	f.StartDate = core.CleanString(f.StartDate)
	f.EndDate = core.CleanString(f.EndDate)
	if err := validate.Struct(f); err != nil {
		return err
	}
	switch {
	case f.StartDate != "" && f.EndDate == "":
		return core.NewFieldValidationError("end_date", errBoundRequired)
	case f.StartDate == "" && f.EndDate != "":
		return core.NewFieldValidationError("start_date", errBoundRequired)
	}
	return nil
}

func (f ExpenseFilter) HasRange() bool {
	return f.StartDate != "" && f.EndDate != ""
}

// Range returns the inclusive date range; a date-only end bound covers its whole day.
// f must have been validated.
func (f ExpenseFilter) Range() (from, to time.Time) {
	from, _ = core.ParseDate(f.StartDate)
	to, _ = core.ParseDate(f.EndDate)
	if core.IsDateOnly(f.EndDate) {
		to = core.EndOfDay(to)
	}
	return from, to
}

type PerformanceFilter struct {
	StudentID string `query:"student_id" json:"student_id" validate:"omitempty,number"`
}

func (f *PerformanceFilter) Validate(validate *validator.Validate) error {
	f.StudentID = core.CleanString(f.StudentID)
	if err := validate.Struct(f); err != nil {
		return err
	}
	return checkStudentID(f.StudentID)
}

func (f PerformanceFilter) Student() (id int, ok bool) {
	return studentID(f.StudentID)
}
