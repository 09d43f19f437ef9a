// Package drink holds the menu model: a drink is a title plus a recipe of
// coloured ingredient parts, which the front end renders as a layered cup.
package drink

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrEmptyRecipe = errors.New("recipe must contain at least one ingredient")

type Ingredient struct {
	Name  string `json:"name" validate:"required,max=80"`
	Color string `json:"color" validate:"required,color"`
	Parts int    `json:"parts" validate:"gt=0,lte=100"`
}

// Recipe decodes from either an array of ingredients or a single ingredient
// object, which older clients send for one-part drinks.
type Recipe []Ingredient

func (r *Recipe) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var single Ingredient
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*r = Recipe{single}
		return nil
	}

	var many []Ingredient
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = many

	return nil
}

type Drink struct {
	ID     int32  `json:"id"`
	Title  string `json:"title"`
	Recipe Recipe `json:"recipe"`
}

// ShortIngredient is an ingredient with its name withheld.
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Short is the public menu view of a drink.
type Short struct {
	ID     int32             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// Short hides ingredient names so the public menu does not give the
// recipe away.
func (d Drink) Short() Short {
	recipe := make([]ShortIngredient, 0, len(d.Recipe))
	for _, i := range d.Recipe {
		recipe = append(recipe, ShortIngredient{Color: i.Color, Parts: i.Parts})
	}

	return Short{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long is the full view, shown to baristas and managers.
func (d Drink) Long() Drink {
	recipe := make(Recipe, len(d.Recipe))
	copy(recipe, d.Recipe)

	return Drink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

func ShortAll(drinks []Drink) []Short {
	out := make([]Short, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, d.Short())
	}

	return out
}

func LongAll(drinks []Drink) []Drink {
	out := make([]Drink, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, d.Long())
	}

	return out
}

// Encode serializes a recipe for storage.
func (r Recipe) Encode() ([]byte, error) {
	if len(r) == 0 {
		return nil, ErrEmptyRecipe
	}

	return json.Marshal([]Ingredient(r))
}

// DecodeRecipe is the inverse of Encode.
func DecodeRecipe(data []byte) (Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	return r, nil
}
