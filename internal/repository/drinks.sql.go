package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rousage/coffeeshop/internal/drink"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const listDrinks = `-- name: ListDrinks :many
SELECT id, title, recipe FROM drinks
ORDER BY id
`

func (q *Queries) ListDrinks(ctx context.Context) ([]drink.Drink, error) {
	ctx, span := tracer.Start(ctx, "repository.ListDrinks")
	defer span.End()

	rows, err := q.db.Query(ctx, listDrinks)
	if err != nil {
		span.SetStatus(codes.Error, "failed to query drinks")
		span.RecordError(err)
		return nil, err
	}
	defer rows.Close()

	items := []drink.Drink{}
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			span.SetStatus(codes.Error, "failed to scan drink")
			span.RecordError(err)
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		span.SetStatus(codes.Error, "failed to iterate drinks")
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(items)))

	return items, nil
}

const getDrink = `-- name: GetDrink :one
SELECT id, title, recipe FROM drinks
WHERE id = $1
`

func (q *Queries) GetDrink(ctx context.Context, id int32) (drink.Drink, error) {
	ctx, span := tracer.Start(ctx, "repository.GetDrink")
	defer span.End()
	span.SetAttributes(attribute.Int("id", int(id)))

	return scanDrink(q.db.QueryRow(ctx, getDrink, id))
}

type CreateDrinkParams struct {
	Title  string
	Recipe drink.Recipe
}

const createDrink = `-- name: CreateDrink :one
INSERT INTO drinks (title, recipe)
VALUES ($1, $2)
RETURNING id, title, recipe
`

func (q *Queries) CreateDrink(ctx context.Context, arg CreateDrinkParams) (drink.Drink, error) {
	ctx, span := tracer.Start(ctx, "repository.CreateDrink")
	defer span.End()

	recipe, err := arg.Recipe.Encode()
	if err != nil {
		return drink.Drink{}, err
	}

	d, err := scanDrink(q.db.QueryRow(ctx, createDrink, arg.Title, recipe))
	if err != nil {
		span.SetStatus(codes.Error, "failed to create drink")
		span.RecordError(err)
		return drink.Drink{}, err
	}

	return d, nil
}

// UpdateDrinkParams leaves a column untouched when its field is nil.
type UpdateDrinkParams struct {
	ID     int32
	Title  *string
	Recipe *drink.Recipe
}

const updateDrink = `-- name: UpdateDrink :one
UPDATE drinks
SET title = COALESCE($2, title),
    recipe = COALESCE($3, recipe)
WHERE id = $1
RETURNING id, title, recipe
`

func (q *Queries) UpdateDrink(ctx context.Context, arg UpdateDrinkParams) (drink.Drink, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdateDrink")
	defer span.End()
	span.SetAttributes(attribute.Int("id", int(arg.ID)))

	var recipe []byte
	if arg.Recipe != nil {
		var err error
		if recipe, err = arg.Recipe.Encode(); err != nil {
			return drink.Drink{}, err
		}
	}

	d, err := scanDrink(q.db.QueryRow(ctx, updateDrink, arg.ID, arg.Title, recipe))
	if err != nil {
		span.SetStatus(codes.Error, "failed to update drink")
		span.RecordError(err)
		return drink.Drink{}, err
	}

	return d, nil
}

const deleteDrink = `-- name: DeleteDrink :execrows
DELETE FROM drinks
WHERE id = $1
`

// DeleteDrink returns pgx.ErrNoRows when no drink has the given id.
func (q *Queries) DeleteDrink(ctx context.Context, id int32) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteDrink")
	defer span.End()
	span.SetAttributes(attribute.Int("id", int(id)))

	tag, err := q.db.Exec(ctx, deleteDrink, id)
	if err != nil {
		span.SetStatus(codes.Error, "failed to delete drink")
		span.RecordError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func scanDrink(row pgx.Row) (drink.Drink, error) {
	var (
		d      drink.Drink
		recipe []byte
	)
	if err := row.Scan(&d.ID, &d.Title, &recipe); err != nil {
		return drink.Drink{}, err
	}

	r, err := drink.DecodeRecipe(recipe)
	if err != nil {
		return drink.Drink{}, fmt.Errorf("drink %d has a malformed recipe: %w", d.ID, err)
	}
	d.Recipe = r

	return d, nil
}
