package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rousage/coffeeshop/internal/appvalidator"
	"github.com/rousage/coffeeshop/internal/auth"
)

// HTTPError is the error envelope every failed request receives
type HTTPError struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"404"`
	Message string `json:"message" example:"resource not found"`
	// Code is set for authentication and authorization failures only
	Code string `json:"code,omitempty" example:"unauthorized"`
}

// HTTPValidationError represents a validation error response for swagger documentation
type HTTPValidationError struct {
	HTTPError
	Errors []appvalidator.FieldError `json:"errors"`
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
}

func statusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}

	return http.StatusText(status)
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	body := HTTPError{Error: http.StatusInternalServerError}

	var authErr *auth.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &authErr):
		body.Error = authErr.Status
		body.Message = authErr.Description
		body.Code = authErr.Code
	case errors.As(err, &httpErr):
		body.Error = httpErr.Code
		body.Message = statusMessage(httpErr.Code)
	default:
		body.Message = statusMessage(http.StatusInternalServerError)
	}

	if body.Error >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(body.Error)
	} else {
		writeErr = c.JSON(body.Error, body)
	}
	if writeErr != nil {
		s.logger.Error().Err(writeErr).Msg("failed to write error response")
	}
}

func (s *Server) failedValidationError(c echo.Context, err error) error {
	if appValidator, ok := c.Echo().Validator.(*appvalidator.AppValidator); ok {
		return s.validationError(c, appValidator.FormatErrors(err))
	}

	return echo.ErrUnprocessableEntity
}

func (s *Server) validationError(c echo.Context, fieldErrors []appvalidator.FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, HTTPValidationError{
		HTTPError: HTTPError{
			Error:   http.StatusUnprocessableEntity,
			Message: statusMessage(http.StatusUnprocessableEntity),
		},
		Errors: fieldErrors,
	})
}
