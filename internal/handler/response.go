package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"coursehub/internal/errors"
	"coursehub/internal/validation"
)

// bind decodes the request into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request",
			Code:  errors.CodeInvalidRequest,
		}).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return validationFailed(err)
	}
	return nil
}

func validationFailed(err error) error {
	var fields validation.Errors
	if !stderrors.As(err, &fields) {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "internal server error",
			Code:  errors.CodeInternal,
		}).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error:  "validation failed",
		Code:   errors.CodeValidation,
		Fields: fields,
	})
}

// respond validates body against its own rules before writing it. A body
// that breaks them is a server bug and is never sent.
func respond(c echo.Context, status int, body interface{}) error {
	if err := c.Validate(body); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "internal server error",
			Code:  errors.CodeInternal,
		}).SetInternal(err)
	}
	return c.JSON(status, body)
}

// fail converts a service error into the HTTP error rendered to the client.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
