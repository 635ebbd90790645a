package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestRecipePutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	recipe := types.NewRecipe("composed")
	recipe.Desc = "a layered view"
	recipe.Items = []types.RecipeItem{
		{Bag: "bagA", Filter: "select * from tiddlers"},
		{Bag: "bagB", Filter: ""},
	}
	recipe.Policy.Owner = "carol"
	require.NoError(t, s.RecipePut(recipe))

	got, err := s.RecipeGet("composed")
	require.NoError(t, err)
	assert.Equal(t, "a layered view", got.Desc)
	assert.Equal(t, recipe.Items, got.Items)
	assert.Equal(t, "carol", got.Policy.Owner)

	// The stored string is the exact serialization.
	var stored string
	require.NoError(t, s.db.QueryRow(
		"SELECT recipe_string FROM recipe WHERE name = ?", "composed",
	).Scan(&stored))
	assert.Equal(t, "bagA?select * from tiddlers\nbagB?", stored)
}

func TestRecipeGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.RecipeGet("absent")
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
}

func TestRecipePutUpsertPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	recipe := types.NewRecipe("ordered")
	recipe.Items = []types.RecipeItem{
		{Bag: "z"}, {Bag: "a"}, {Bag: "m"},
	}
	require.NoError(t, s.RecipePut(recipe))

	recipe.Items = []types.RecipeItem{
		{Bag: "m"}, {Bag: "z"}, {Bag: "a"},
	}
	require.NoError(t, s.RecipePut(recipe))

	got, err := s.RecipeGet("ordered")
	require.NoError(t, err)
	assert.Equal(t, recipe.Items, got.Items)
}

func TestRecipeDelete(t *testing.T) {
	s := newTestStore(t)

	recipe := types.NewRecipe("doomed")
	recipe.Policy.Read = []string{"alice"}
	require.NoError(t, s.RecipePut(recipe))
	require.NoError(t, s.RecipeDelete("doomed"))

	_, err := s.RecipeGet("doomed")
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)

	var policies int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM policy WHERE container_name = ?", "doomed",
	).Scan(&policies))
	assert.Zero(t, policies)
}

func TestRecipeDeleteNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.RecipeDelete("absent")
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
}

func TestListRecipes(t *testing.T) {
	s := newTestStore(t)

	recipes, err := s.ListRecipes()
	require.NoError(t, err)
	assert.Empty(t, recipes)

	require.NoError(t, s.RecipePut(types.NewRecipe("one")))
	require.NoError(t, s.RecipePut(types.NewRecipe("two")))

	recipes, err = s.ListRecipes()
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}
