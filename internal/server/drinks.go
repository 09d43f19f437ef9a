package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rousage/coffeeshop/internal/appvalidator"
	"github.com/rousage/coffeeshop/internal/drink"
	"github.com/rousage/coffeeshop/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type MenuResponse struct {
	Success bool          `json:"success" example:"true"`
	Drinks  []drink.Short `json:"drinks"`
}

type DrinksResponse struct {
	Success bool          `json:"success" example:"true"`
	Drinks  []drink.Drink `json:"drinks"`
}

type DeleteResponse struct {
	Success bool  `json:"success" example:"true"`
	Delete  int32 `json:"delete" example:"1"`
}

type CreateDrinkDTO struct {
	Title  string       `json:"title" validate:"required,max=80"`
	Recipe drink.Recipe `json:"recipe" validate:"required,min=1,dive"`
}

type UpdateDrinkDTO struct {
	ID     int32         `param:"id" json:"-"`
	Title  *string       `json:"title" validate:"omitnil,min=1,max=80"`
	Recipe *drink.Recipe `json:"recipe" validate:"omitnil,min=1,dive"`
}

type DrinkIDParams struct {
	ID int32 `param:"id" validate:"gt=0"`
}

var titleTaken = []appvalidator.FieldError{{Field: "title", Message: "Title is already on the menu"}}

// getDrinksHandler godoc
//
//	@Summary		Get the menu
//	@Description	Lists every drink with ingredient names withheld
//	@Tags			Drinks
//	@Produce		json
//	@Success		200	{object}	MenuResponse	"Menu"
//	@Failure		500	{object}	HTTPError		"Internal server error"
//	@Router			/drinks [get]
func (s *Server) getDrinksHandler(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "drinks.GetMenu")
	defer span.End()

	menu, gen, ok, err := s.cache.GetMenu(ctx)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get menu from cache")
	}
	span.SetAttributes(attribute.Bool("cache_hit", ok))
	if ok {
		return c.JSON(http.StatusOK, MenuResponse{Success: true, Drinks: menu})
	}

	drinks, err := s.drinks.ListDrinks(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to list drinks")
		span.RecordError(err)
		s.logger.Error().Err(err).Msg("failed to list drinks")
		return echo.ErrInternalServerError
	}

	menu = drink.ShortAll(drinks)
	if cacheable {
		if err := s.cache.SetMenu(ctx, gen, menu); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache menu")
		}
	}

	return c.JSON(http.StatusOK, MenuResponse{Success: true, Drinks: menu})
}

// getDrinksDetailHandler godoc
//
//	@Summary		Get drink details
//	@Description	Lists every drink with full recipes
//	@Tags			Drinks
//	@Produce		json
//	@Success		200	{object}	DrinksResponse	"Drinks with recipes"
//	@Failure		401	{object}	HTTPError		"Unauthorized"
//	@Failure		403	{object}	HTTPError		"Forbidden"
//	@Failure		500	{object}	HTTPError		"Internal server error"
//	@Security		BearerAuth
//	@Router			/drinks-detail [get]
func (s *Server) getDrinksDetailHandler(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "drinks.GetDetail")
	defer span.End()

	drinks, err := s.drinks.ListDrinks(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to list drinks")
		span.RecordError(err)
		s.logger.Error().Err(err).Msg("failed to list drinks")
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, DrinksResponse{Success: true, Drinks: drink.LongAll(drinks)})
}

// createDrinkHandler godoc
//
//	@Summary		Add a drink
//	@Tags			Drinks
//	@Accept			json
//	@Produce		json
//	@Param			drink	body		CreateDrinkDTO		true	"Drink"
//	@Success		200		{object}	DrinksResponse		"Created drink"
//	@Failure		400		{object}	HTTPError			"Malformed body"
//	@Failure		401		{object}	HTTPError			"Unauthorized"
//	@Failure		403		{object}	HTTPError			"Forbidden"
//	@Failure		422		{object}	HTTPValidationError	"Validation failed"
//	@Failure		500		{object}	HTTPError			"Internal server error"
//	@Security		BearerAuth
//	@Router			/drinks [post]
func (s *Server) createDrinkHandler(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "drinks.Create")
	defer span.End()

	dto := new(CreateDrinkDTO)
	if err := c.Bind(dto); err != nil {
		span.SetStatus(codes.Error, "failed to bind request")
		span.RecordError(err)
		return echo.ErrBadRequest
	}
	dto.Title = strings.TrimSpace(dto.Title)
	if err := c.Validate(dto); err != nil {
		return s.failedValidationError(c, err)
	}

	created, err := s.drinks.CreateDrink(ctx, repository.CreateDrinkParams{
		Title:  dto.Title,
		Recipe: dto.Recipe,
	})
	if err != nil {
		if s.drinks.IsDuplicateKeyError(err) {
			return s.validationError(c, titleTaken)
		}

		span.SetStatus(codes.Error, "failed to create drink")
		span.RecordError(err)
		s.logger.Error().Err(err).Str("title", dto.Title).Msg("failed to create drink")
		return echo.ErrInternalServerError
	}
	span.SetAttributes(attribute.Int("id", int(created.ID)))

	s.invalidateMenu(ctx)

	return c.JSON(http.StatusOK, DrinksResponse{Success: true, Drinks: []drink.Drink{created.Long()}})
}

// updateDrinkHandler godoc
//
//	@Summary		Update a drink
//	@Description	Changes the title, the recipe, or both
//	@Tags			Drinks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Drink ID"	minimum(1)
//	@Param			drink	body		UpdateDrinkDTO		true	"Fields to change"
//	@Success		200		{object}	DrinksResponse		"Updated drink"
//	@Failure		400		{object}	HTTPError			"Malformed body"
//	@Failure		401		{object}	HTTPError			"Unauthorized"
//	@Failure		403		{object}	HTTPError			"Forbidden"
//	@Failure		404		{object}	HTTPError			"Drink not found"
//	@Failure		422		{object}	HTTPValidationError	"Validation failed"
//	@Failure		500		{object}	HTTPError			"Internal server error"
//	@Security		BearerAuth
//	@Router			/drinks/{id} [patch]
func (s *Server) updateDrinkHandler(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "drinks.Update")
	defer span.End()

	// a malformed or non-positive id cannot name a drink
	dto := new(UpdateDrinkDTO)
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, dto); err != nil || dto.ID <= 0 {
		return echo.ErrNotFound
	}
	if err := binder.BindBody(c, dto); err != nil {
		span.SetStatus(codes.Error, "failed to bind request")
		span.RecordError(err)
		return echo.ErrBadRequest
	}
	if dto.Title != nil {
		title := strings.TrimSpace(*dto.Title)
		dto.Title = &title
	}
	if err := c.Validate(dto); err != nil {
		return s.failedValidationError(c, err)
	}
	if dto.Title == nil && dto.Recipe == nil {
		return s.validationError(c, []appvalidator.FieldError{{Field: "title", Message: "Title or recipe is required"}})
	}
	span.SetAttributes(attribute.Int("id", int(dto.ID)))

	updated, err := s.drinks.UpdateDrink(ctx, repository.UpdateDrinkParams{
		ID:     dto.ID,
		Title:  dto.Title,
		Recipe: dto.Recipe,
	})
	if err != nil {
		switch {
		case s.drinks.IsNotFoundError(err):
			return echo.ErrNotFound
		case s.drinks.IsDuplicateKeyError(err):
			return s.validationError(c, titleTaken)
		}

		span.SetStatus(codes.Error, "failed to update drink")
		span.RecordError(err)
		s.logger.Error().Err(err).Int32("id", dto.ID).Msg("failed to update drink")
		return echo.ErrInternalServerError
	}

	s.invalidateMenu(ctx)

	return c.JSON(http.StatusOK, DrinksResponse{Success: true, Drinks: []drink.Drink{updated.Long()}})
}

// deleteDrinkHandler godoc
//
//	@Summary	Remove a drink
//	@Tags		Drinks
//	@Produce	json
//	@Param		id	path		int				true	"Drink ID"	minimum(1)
//	@Success	200	{object}	DeleteResponse	"Deleted drink ID"
//	@Failure	401	{object}	HTTPError		"Unauthorized"
//	@Failure	403	{object}	HTTPError		"Forbidden"
//	@Failure	404	{object}	HTTPError		"Drink not found"
//	@Failure	500	{object}	HTTPError		"Internal server error"
//	@Security	BearerAuth
//	@Router		/drinks/{id} [delete]
func (s *Server) deleteDrinkHandler(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "drinks.Delete")
	defer span.End()

	params := new(DrinkIDParams)
	if err := c.Bind(params); err != nil {
		return echo.ErrNotFound
	}
	if err := c.Validate(params); err != nil {
		return echo.ErrNotFound
	}
	span.SetAttributes(attribute.Int("id", int(params.ID)))

	if err := s.drinks.DeleteDrink(ctx, params.ID); err != nil {
		if s.drinks.IsNotFoundError(err) {
			return echo.ErrNotFound
		}

		span.SetStatus(codes.Error, "failed to delete drink")
		span.RecordError(err)
		s.logger.Error().Err(err).Int32("id", params.ID).Msg("failed to delete drink")
		return echo.ErrInternalServerError
	}

	s.invalidateMenu(ctx)

	return c.JSON(http.StatusOK, DeleteResponse{Success: true, Delete: params.ID})
}

func (s *Server) invalidateMenu(ctx context.Context) {
	if err := s.cache.InvalidateMenu(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate menu cache")
	}
}
