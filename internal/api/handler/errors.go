package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

// errorResponse is the error envelope returned for every 4xx and 5xx.
type errorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a known domain error to its HTTP status and client message.
// ok is false for errors that must be treated as internal failures.
func StatusFor(err error) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, domain.ErrDuplicateEmail.Error(), true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), true
	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, err.Error(), true
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, err.Error(), true
	}
	return 0, "", false
}

// respondError writes known errors as JSON and hands anything else to the
// central error handler.
func respondError(c echo.Context, err error) error {
	status, msg, ok := StatusFor(err)
	if !ok {
		return err
	}
	return c.JSON(status, errorResponse{Error: msg})
}

// bindJSON decodes and validates the request body into dst.
func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if err := c.Validate(dst); err != nil {
		return domain.InvalidInput(err.Error())
	}
	return nil
}

// queryError turns an echo binding error into a client-facing input error.
func queryError(err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) {
		return domain.InvalidInput(fmt.Sprintf("%s must be a number", be.Field))
	}
	return domain.InvalidInput("invalid query")
}
