package seed

import (
	"context"
	"testing"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/internal/testutil"
	"mymixes/pkg/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := recipe.NewRecipeService(recipe.NewRecipeRepository(db), nil)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, svc))
	require.NoError(t, Seed(ctx, db, svc))

	var userCount int64
	require.NoError(t, db.Model(&entities.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)

	res, err := svc.ListRecipes(ctx, domain.ListRecipesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(recipes)), res.Total)

	sour, err := svc.GetRecipeBySlug(ctx, "whiskey-sour")
	require.NoError(t, err)
	assert.Len(t, sour.Ingredients, 3)

	types, err := svc.ListIngredientTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 8)
}
