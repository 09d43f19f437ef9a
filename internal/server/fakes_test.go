package server

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rousage/coffeeshop/internal/appvalidator"
	"github.com/rousage/coffeeshop/internal/auth"
	"github.com/rousage/coffeeshop/internal/config"
	"github.com/rousage/coffeeshop/internal/drink"
	"github.com/rousage/coffeeshop/internal/repository"
	"github.com/rs/zerolog"
)

var errBroken = errors.New("connection refused")

type fakeStore struct {
	mu     sync.Mutex
	drinks []drink.Drink
	nextID int32
	err    error
}

func newFakeStore(drinks ...drink.Drink) *fakeStore {
	s := &fakeStore{nextID: 1}
	for _, d := range drinks {
		d.ID = s.nextID
		s.nextID++
		s.drinks = append(s.drinks, d)
	}

	return s
}

func (f *fakeStore) ListDrinks(context.Context) ([]drink.Drink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	return slices.Clone(f.drinks), nil
}

func (f *fakeStore) CreateDrink(_ context.Context, arg repository.CreateDrinkParams) (drink.Drink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return drink.Drink{}, f.err
	}
	if f.titleTaken(arg.Title, 0) {
		return drink.Drink{}, &pgconn.PgError{Code: "23505"}
	}

	d := drink.Drink{ID: f.nextID, Title: arg.Title, Recipe: arg.Recipe}
	f.nextID++
	f.drinks = append(f.drinks, d)

	return d, nil
}

func (f *fakeStore) UpdateDrink(_ context.Context, arg repository.UpdateDrinkParams) (drink.Drink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return drink.Drink{}, f.err
	}

	i := f.index(arg.ID)
	if i < 0 {
		return drink.Drink{}, pgx.ErrNoRows
	}
	if arg.Title != nil {
		if f.titleTaken(*arg.Title, arg.ID) {
			return drink.Drink{}, &pgconn.PgError{Code: "23505"}
		}
		f.drinks[i].Title = *arg.Title
	}
	if arg.Recipe != nil {
		f.drinks[i].Recipe = *arg.Recipe
	}

	return f.drinks[i], nil
}

func (f *fakeStore) DeleteDrink(_ context.Context, id int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}

	i := f.index(id)
	if i < 0 {
		return pgx.ErrNoRows
	}
	f.drinks = slices.Delete(f.drinks, i, i+1)

	return nil
}

func (f *fakeStore) IsDuplicateKeyError(err error) bool {
	return (&repository.Queries{}).IsDuplicateKeyError(err)
}

func (f *fakeStore) IsNotFoundError(err error) bool {
	return (&repository.Queries{}).IsNotFoundError(err)
}

func (f *fakeStore) index(id int32) int {
	return slices.IndexFunc(f.drinks, func(d drink.Drink) bool { return d.ID == id })
}

func (f *fakeStore) titleTaken(title string, except int32) bool {
	return slices.ContainsFunc(f.drinks, func(d drink.Drink) bool { return d.Title == title && d.ID != except })
}

type fakeCache struct {
	mu          sync.Mutex
	menu        []drink.Short
	cached      bool
	menuGen     int64
	gen         int64
	invalidated int
	err         error
}

func (f *fakeCache) GetMenu(context.Context) ([]drink.Short, int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, false, f.err
	}
	if !f.cached || f.menuGen != f.gen {
		return nil, f.gen, false, nil
	}

	return f.menu, f.gen, true, nil
}

func (f *fakeCache) SetMenu(_ context.Context, gen int64, menu []drink.Short) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.menu, f.cached, f.menuGen = menu, true, gen

	return nil
}

func (f *fakeCache) InvalidateMenu(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	if f.err != nil {
		return f.err
	}
	f.gen++

	return nil
}

func (f *fakeCache) Ping(context.Context) error {
	return f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeValidator map[string][]string

func (f fakeValidator) ValidateToken(_ context.Context, token string) (any, error) {
	permissions, ok := f[token]
	if !ok {
		return nil, errors.New("token is not valid")
	}

	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|" + token},
		CustomClaims:     &auth.CustomClaims{Permissions: permissions},
	}, nil
}

func water() drink.Drink {
	return drink.Drink{Title: "water", Recipe: drink.Recipe{{Name: "water", Color: "blue", Parts: 1}}}
}

func latte() drink.Drink {
	return drink.Drink{Title: "latte", Recipe: drink.Recipe{
		{Name: "espresso", Color: "#3b1f0e", Parts: 1},
		{Name: "milk", Color: "white", Parts: 3},
	}}
}

func newTestServer(t *testing.T) (*Server, *fakeStore, *fakeCache) {
	t.Helper()

	store := newFakeStore(water(), latte())
	menu := &fakeCache{}

	s := &Server{
		cfg: &config.Config{
			App:         config.App{Env: config.EnvTest},
			Environment: config.DevelopmentEnvironment(),
			Server: config.Server{
				Port:         5000,
				AllowOrigins: []string{"http://localhost:8100"},
			},
		},
		logger: zerolog.New(io.Discard),
		db:     fakePinger{},
		drinks: store,
		cache:  menu,
		authMw: auth.NewAuthMiddlewareWithValidator(fakeValidator{
			"barista": {auth.GetDrinksDetail},
			"manager": {auth.GetDrinksDetail, auth.PostDrinks, auth.PatchDrinks, auth.DeleteDrinks},
		}, zerolog.New(io.Discard)),
	}

	return s, store, menu
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = appvalidator.New()

	return e
}
