package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weatherplaces/places-api/internal/api/middleware"
	"github.com/weatherplaces/places-api/internal/core/domain"
)

// currentUser returns the user resolved by the Auth middleware. A missing user
// means the route was mounted without the middleware, so it fails closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
