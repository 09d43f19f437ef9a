package auth

import (
	"context"
	"slices"
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("github.com/rousage/coffeeshop/internal/auth")

type contextKey string

const (
	ClaimsContextKey contextKey = "claims"

	// Permissions granted through Auth0 roles (barista, manager)
	GetDrinksDetail = "get:drinks-detail"
	PostDrinks      = "post:drinks"
	PatchDrinks     = "patch:drinks"
	DeleteDrinks    = "delete:drinks"
)

// CustomClaims contains custom data we want from the token
type CustomClaims struct {
	Scope       string   `json:"scope"`
	Permissions []string `json:"permissions"`
}

// Validate does nothing, but we need it to satisfy validator.CustomClaims interface
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// HasScope checks whether claims have a specific scope
func (c CustomClaims) HasScope(expectedScope string) bool {
	result := strings.Split(c.Scope, " ")
	return slices.Contains(result, expectedScope)
}

// HasPermission checks whether claims have a specific permission
func (c CustomClaims) HasPermission(expectedPermission string) bool {
	return slices.Contains(c.Permissions, expectedPermission)
}

// GetSubject returns the "sub" claim of the validated token, if any.
func GetSubject(c echo.Context) (string, bool) {
	_, span := tracer.Start(c.Request().Context(), "auth.GetSubject")
	defer span.End()

	claims := getClaimsFromContext(c)
	if claims == nil || claims.RegisteredClaims.Subject == "" {
		span.SetAttributes(attribute.String("subject", ""))
		return "", false
	}
	span.SetAttributes(attribute.String("subject", claims.RegisteredClaims.Subject))

	return claims.RegisteredClaims.Subject, true
}

func getCustomClaims(c echo.Context) *CustomClaims {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return nil
	}

	custom, ok := claims.CustomClaims.(*CustomClaims)
	if !ok {
		return nil
	}

	return custom
}

func getClaimsFromContext(c echo.Context) *validator.ValidatedClaims {
	claims, ok := c.Get(string(ClaimsContextKey)).(*validator.ValidatedClaims)
	if !ok || claims == nil {
		return nil
	}

	return claims
}
