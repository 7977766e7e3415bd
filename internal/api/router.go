package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/weatherplaces/places-api/docs"
	"github.com/weatherplaces/places-api/internal/api/handler"
	"github.com/weatherplaces/places-api/internal/api/metrics"
	"github.com/weatherplaces/places-api/internal/api/middleware"
	"github.com/weatherplaces/places-api/internal/core/ports"
	"github.com/weatherplaces/places-api/internal/core/service"
	"github.com/weatherplaces/places-api/internal/infrastructure/config"
	"github.com/weatherplaces/places-api/internal/infrastructure/upstream"
	"github.com/weatherplaces/places-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every metric is registered on reg, which is also the registry served on /metrics.
func NewRouter(cfg *config.Config, store ports.CredentialStore, log zerolog.Logger, reg *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component(log, "http"))

	metrics.MustRegister(reg)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(logger.Component(log, "access")))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(middleware.SecureHeaders(cfg.IsProduction()))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "places",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}))

	// --- Dependencies ---
	upstreamLog := logger.Component(log, "upstream")
	authService := service.NewAuthService(store, cfg.JWTSecret, service.DefaultTokenTTL, logger.Component(log, "auth"))
	savedPlacesService := service.NewSavedPlacesService(store, logger.Component(log, "saved_places"))
	geoService := service.NewGeoService(
		upstream.NewOpenMeteoClient(upstream.Config{
			BaseURL: cfg.Upstream.WeatherBaseURL,
			Timeout: cfg.Upstream.Timeout,
		}, upstreamLog),
		upstream.NewGeoapifyClient(upstream.Config{
			BaseURL: cfg.Upstream.PlacesBaseURL,
			APIKey:  cfg.Upstream.GeoapifyKey,
			Timeout: cfg.Upstream.Timeout,
		}, upstreamLog),
		logger.Component(log, "geo"),
	)

	authHandler := handler.NewAuthHandler(authService)
	savedPlacesHandler := handler.NewSavedPlacesHandler(savedPlacesService)
	geoHandler := handler.NewGeoHandler(geoService)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Saved places (bearer token required) ---
	requireToken := middleware.Auth(authService)
	e.POST("/save_place", savedPlacesHandler.SavePlace, requireToken)
	e.GET("/saved_places", savedPlacesHandler.ListSavedPlaces, requireToken)

	// --- Upstream proxies ---
	e.GET("/weather", geoHandler.Weather)
	e.GET("/places", geoHandler.Places)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(store).Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
