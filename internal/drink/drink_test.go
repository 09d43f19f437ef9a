package drink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latte() Drink {
	return Drink{
		ID:    1,
		Title: "Latte",
		Recipe: Recipe{
			{Name: "espresso", Color: "#3b1f0e", Parts: 1},
			{Name: "milk", Color: "white", Parts: 3},
		},
	}
}

func TestDrink_Short(t *testing.T) {
	actual := latte().Short()

	assert.Equal(t, Short{
		ID:    1,
		Title: "Latte",
		Recipe: []ShortIngredient{
			{Color: "#3b1f0e", Parts: 1},
			{Color: "white", Parts: 3},
		},
	}, actual)

	body, err := json.Marshal(actual)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "espresso", "short view must not leak ingredient names")
	assert.JSONEq(t, `{"id":1,"title":"Latte","recipe":[{"color":"#3b1f0e","parts":1},{"color":"white","parts":3}]}`, string(body))
}

func TestDrink_Long(t *testing.T) {
	d := latte()
	long := d.Long()
	assert.Equal(t, d, long)

	long.Recipe[0].Name = "ristretto"
	assert.Equal(t, "espresso", d.Recipe[0].Name, "long view must not share the recipe slice")
}

func TestDrink_ShortEmptyRecipe(t *testing.T) {
	body, err := json.Marshal(Drink{ID: 2, Title: "Water"}.Short())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"title":"Water","recipe":[]}`, string(body))
}

func TestRecipe_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected Recipe
		wantErr  bool
	}{
		{name: "array", payload: `[{"name":"milk","color":"white","parts":2}]`, expected: Recipe{{Name: "milk", Color: "white", Parts: 2}}},
		{name: "single object", payload: ` {"name":"water","color":"blue","parts":1}`, expected: Recipe{{Name: "water", Color: "blue", Parts: 1}}},
		{name: "empty array", payload: `[]`, expected: Recipe{}},
		{name: "string", payload: `"milk"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actual Recipe
			err := json.Unmarshal([]byte(tt.payload), &actual)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestRecipe_EncodeDecode(t *testing.T) {
	data, err := latte().Recipe.Encode()
	require.NoError(t, err)

	decoded, err := DecodeRecipe(data)
	require.NoError(t, err)
	assert.Equal(t, latte().Recipe, decoded)

	_, err = Recipe{}.Encode()
	assert.ErrorIs(t, err, ErrEmptyRecipe)
}

func TestShortAllLongAll(t *testing.T) {
	drinks := []Drink{latte(), {ID: 2, Title: "Water", Recipe: Recipe{{Name: "water", Color: "blue", Parts: 1}}}}

	shorts := ShortAll(drinks)
	require.Len(t, shorts, 2)
	assert.Equal(t, "Water", shorts[1].Title)

	longs := LongAll(drinks)
	assert.Equal(t, drinks, longs)

	assert.Empty(t, ShortAll(nil))
	assert.NotNil(t, LongAll(nil))
}
