package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Response messages use the entity names clients already know, e.g. "Fee record not found".
type entity struct {
	name    string // as in "Invalid <name> data"
	display string // as in "<display> not found"
}

var (
	studentEntity     = entity{"student", "Student"}
	feeEntity         = entity{"fee", "Fee record"}
	expenseEntity     = entity{"expense", "Expense"}
	performanceEntity = entity{"performance", "Performance record"}
	classEntity       = entity{"class", "Class"}
)

func (e entity) notFound() error {
	return echo.NewHTTPError(http.StatusNotFound, e.display+" not found")
}

func (e entity) invalidData(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid "+e.name+" data").SetInternal(err)
}

func (e entity) invalidFilter(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid "+e.name+" filter").SetInternal(err)
}

func (e entity) deleted(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, messageResponse{Message: e.display + " deleted successfully"})
}

type messageResponse struct {
	Message string `json:"message"`
}

// fieldErrors returns the field => error text map of a validation error, nil for other errors.
func fieldErrors(err error, translator ut.Translator) map[string]string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(translator)
		}
		return fldErrs
	case *core.ValidationError:
		fldErrs := make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fldErrs[fErr.Field] = fErr.Error
		}
		return fldErrs
	}
	return nil
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		body := echo.Map{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			code = origErr.Code
			body["message"] = origErr.Message
			if fldErrs := fieldErrors(origErr.Internal, translator); fldErrs != nil {
				body["errors"] = fldErrs
			}
		case validator.ValidationErrors, *core.ValidationError:
			code = http.StatusBadRequest
			body["message"] = "Invalid data"
			body["errors"] = fieldErrors(origErr, translator)
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			body["message"] = msg
			logger.Error(msg, errors.Wrap(err, msg), ctx.Request())

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
