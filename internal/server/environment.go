package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type LoginParams struct {
	CallbackPath string `query:"callbackPath" validate:"omitempty,startswith=/,max=200"`
}

// environmentHandler godoc
//
//	@Summary		Get front end settings
//	@Description	Returns the API address and Auth0 settings the front end boots with
//	@Tags			Environment
//	@Produce		json
//	@Success		200	{object}	config.Environment	"Environment settings"
//	@Router			/environment [get]
func (s *Server) environmentHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.cfg.Environment)
}

// loginHandler godoc
//
//	@Summary		Start an Auth0 login
//	@Description	Redirects to the Auth0 authorize endpoint; Auth0 sends the browser back to callbackURL+callbackPath
//	@Tags			Environment
//	@Param			callbackPath	query	string	false	"Path appended to the callback URL"	maxlength(200)
//	@Success		302
//	@Failure		422	{object}	HTTPValidationError	"Validation failed"
//	@Router			/login [get]
func (s *Server) loginHandler(c echo.Context) error {
	params := new(LoginParams)
	if err := c.Bind(params); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(params); err != nil {
		return s.failedValidationError(c, err)
	}

	return c.Redirect(http.StatusFound, s.cfg.Environment.Auth0.AuthorizeURL(params.CallbackPath))
}
