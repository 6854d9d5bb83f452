package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every raised error shares one envelope: the detail payload plus the
// request path it was raised for.
type errorEnvelope struct {
	Detail any    `json:"detail"`
	Path   string `json:"path"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// BadRequest surfaces a store-level failure with the underlying message.
func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorEnvelope{
		Detail: err.Error(),
		Path:   c.Request().URL.Path,
	})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorEnvelope{
		Detail: msg,
		Path:   c.Request().URL.Path,
	})
}

// Unprocessable carries a structured list of field violations.
func Unprocessable(c echo.Context, detail any) error {
	return c.JSON(http.StatusUnprocessableEntity, errorEnvelope{
		Detail: detail,
		Path:   c.Request().URL.Path,
	})
}

func InternalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, errorEnvelope{
		Detail: err.Error(),
		Path:   c.Request().URL.Path,
	})
}
