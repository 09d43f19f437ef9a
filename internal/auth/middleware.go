package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rousage/coffeeshop/internal/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TokenValidator is satisfied by *validator.Validator.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (any, error)
}

type AuthMiddleware struct {
	validator TokenValidator
	logger    zerolog.Logger
}

// NewAuthMiddleware validates RS256 tokens issued by the configured tenant
// for the configured audience. Signing keys are fetched lazily and cached.
func NewAuthMiddleware(cfg config.Auth0, logger zerolog.Logger) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse(cfg.Issuer())
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	return NewAuthMiddlewareWithValidator(jwtValidator, logger), nil
}

func NewAuthMiddlewareWithValidator(v TokenValidator, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{validator: v, logger: logger}
}

// RequireToken rejects requests without a valid bearer token and stores the
// validated claims on the context.
func (m *AuthMiddleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "auth.RequireToken")
		defer span.End()

		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			span.SetStatus(codes.Error, ErrHeaderMissing.Code)
			return ErrHeaderMissing
		}

		token, err := jwtmiddleware.AuthHeaderTokenExtractor(c.Request())
		if err != nil || token == "" {
			span.SetStatus(codes.Error, ErrInvalidHeader.Code)
			return ErrInvalidHeader
		}

		tokenInfo, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Info().Err(err).Msg("encountered error while validating JWT")
			span.SetStatus(codes.Error, ErrInvalidToken.Code)
			span.RecordError(err)
			return ErrInvalidToken
		}

		c.Set(string(ClaimsContextKey), tokenInfo)

		return next(c)
	}
}

// RequirePermission must run after RequireToken.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, span := tracer.Start(c.Request().Context(), "auth.RequirePermission")
			defer span.End()
			span.SetAttributes(attribute.String("permission", permission))

			if getClaimsFromContext(c) == nil {
				span.SetStatus(codes.Error, ErrHeaderMissing.Code)
				return ErrHeaderMissing
			}

			claims := getCustomClaims(c)
			if claims == nil || claims.Permissions == nil {
				span.SetStatus(codes.Error, ErrInvalidClaims.Code)
				return ErrInvalidClaims
			}

			if !claims.HasPermission(permission) {
				subject, _ := GetSubject(c)
				m.logger.Info().Str("subject", subject).Str("permission", permission).Msg("permission denied")
				span.SetStatus(codes.Error, ErrForbidden.Code)
				return ErrForbidden
			}

			return next(c)
		}
	}
}
