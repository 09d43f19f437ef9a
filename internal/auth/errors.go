package auth

import (
	"fmt"
	"net/http"
)

// Error is an authentication or authorization failure. Code is a stable
// machine-readable reason the front end can switch on.
type Error struct {
	Status      int    `json:"-"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

var (
	ErrHeaderMissing = &Error{
		Status:      http.StatusUnauthorized,
		Code:        "authorization_header_missing",
		Description: "Authorization header is expected.",
	}
	ErrInvalidHeader = &Error{
		Status:      http.StatusUnauthorized,
		Code:        "invalid_header",
		Description: "Authorization header must be in the format Bearer {token}.",
	}
	ErrInvalidToken = &Error{
		Status:      http.StatusUnauthorized,
		Code:        "invalid_token",
		Description: "Unable to verify the token.",
	}
	ErrInvalidClaims = &Error{
		Status:      http.StatusBadRequest,
		Code:        "invalid_claims",
		Description: "Permissions not included in JWT.",
	}
	ErrForbidden = &Error{
		Status:      http.StatusForbidden,
		Code:        "unauthorized",
		Description: "Permission not found.",
	}
)
