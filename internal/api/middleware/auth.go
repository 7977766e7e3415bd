package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weatherplaces/places-api/internal/api/metrics"
	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

const userKey = "user"

// Auth verifies the bearer token and stores the resolved user in the context.
// Any token problem ends the request with 401 before the handler runs.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)

			user, err := verifier.VerifyToken(c.Request().Context(), authHeader)
			metrics.TokenVerificationsTotal.WithLabelValues(verificationResult(err)).Inc()
			if err != nil {
				if domain.IsUnauthorized(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
				return err
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// UserFrom returns the user stored by Auth.
func UserFrom(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userKey).(*domain.User)
	return user, ok && user != nil
}

func verificationResult(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, domain.ErrMissingToken):
		return "missing"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired"
	case errors.Is(err, domain.ErrUnknownUser):
		return "unknown_user"
	default:
		return "error"
	}
}
