package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rousage/coffeeshop/internal/appvalidator"
	"github.com/rousage/coffeeshop/internal/auth"
	"github.com/rousage/coffeeshop/internal/generator"
	cotel "github.com/rousage/coffeeshop/internal/otel"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/time/rate"
)

//	@title			Coffee Shop API
//	@version		1.0
//	@description	Drinks menu for the coffee shop front end

//	@host		127.0.0.1:5000
//	@BasePath	/

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the Auth0 access token
func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Validator = appvalidator.New()
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(otelecho.Middleware(cotel.ServiceName.Value.AsString()))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: generator.RequestID,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:       true,
		LogProtocol:      true,
		LogRemoteIP:      true,
		LogMethod:        true,
		LogURI:           true,
		LogRoutePath:     true,
		LogRequestID:     true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,
		HandleError:      true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logEvent := s.logger.Info()
			if v.Error != nil {
				logEvent = s.logger.Error().Err(v.Error)
			}

			logEvent.
				Int64("latency", v.Latency.Milliseconds()).
				Str("protocol", v.Protocol).
				Str("remote_ip", v.RemoteIP).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Str("request_id", v.RequestID).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Str("content_length", v.ContentLength).
				Int64("response_size", v.ResponseSize).
				Msg("request")

			return nil
		},
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))

	if s.cfg.Server.LimiterRPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.cfg.Server.LimiterRPS),
			Burst:     s.cfg.Server.LimiterBurst,
			ExpiresIn: 3 * time.Minute,
		})))
	}

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.Server.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", s.healthHandler)
	e.GET("/environment", s.environmentHandler)
	e.GET("/login", s.loginHandler)

	e.GET("/drinks", s.getDrinksHandler)
	e.GET("/drinks-detail", s.getDrinksDetailHandler, s.authMw.RequireToken, s.authMw.RequirePermission(auth.GetDrinksDetail))
	e.POST("/drinks", s.createDrinkHandler, s.authMw.RequireToken, s.authMw.RequirePermission(auth.PostDrinks))
	e.PATCH("/drinks/:id", s.updateDrinkHandler, s.authMw.RequireToken, s.authMw.RequirePermission(auth.PatchDrinks))
	e.DELETE("/drinks/:id", s.deleteDrinkHandler, s.authMw.RequireToken, s.authMw.RequirePermission(auth.DeleteDrinks))

	return e
}
