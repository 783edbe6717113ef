package recipe

import (
	"context"
	"fmt"
	"testing"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (RecipeService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewRecipeService(NewRecipeRepository(db), nil), db
}

func whiskeySour() domain.RecipeRequest {
	return domain.RecipeRequest{
		Title:  "Whiskey Sour",
		Slug:   "whiskey-sour",
		Method: "Shake with ice, strain.",
		Ingredients: []domain.IngredientInput{
			{Name: "Bourbon", Amount: "2 oz"},
			{Name: " Lemon Juice ", Amount: "0.75 oz"},
			{Name: "simple syrup", Amount: "0.5 oz"},
		},
	}
}

func ingredientNames(detail domain.RecipeDetail) []string {
	names := make([]string, 0, len(detail.Ingredients))
	for _, ing := range detail.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

func TestCreateRecipeNormalizesIngredientNames(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	detail, err := svc.CreateRecipe(ctx, whiskeySour())
	require.NoError(t, err)

	assert.NotZero(t, detail.ID)
	assert.Equal(t, "whiskey-sour", detail.Slug)
	assert.Equal(t, float64(0), detail.AvgRating)
	assert.Empty(t, detail.Reviews)
	require.Len(t, detail.Ingredients, 3)
	assert.Equal(t, []string{"bourbon", "lemon juice", "simple syrup"}, ingredientNames(detail))
	assert.Equal(t, "2 oz", detail.Ingredients[0].Amount)
}

func TestCreateRecipeReusesIngredientTypes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, whiskeySour())
	require.NoError(t, err)

	req := whiskeySour()
	req.Title, req.Slug = "Bourbon Smash", "bourbon-smash"
	req.Ingredients = []domain.IngredientInput{{Name: "BOURBON", Amount: "2 oz"}}
	_, err = svc.CreateRecipe(ctx, req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.IngredientType{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	types, err := svc.ListIngredientTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, "bourbon", types[0].Name)
}

func TestCreateRecipeByTypeID(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	gin := entities.IngredientType{Name: "gin"}
	require.NoError(t, db.Create(&gin).Error)

	req := whiskeySour()
	req.Ingredients = []domain.IngredientInput{{TypeID: &gin.ID, Amount: "2 oz"}}
	detail, err := svc.CreateRecipe(ctx, req)
	require.NoError(t, err)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, gin.ID, detail.Ingredients[0].TypeID)
	assert.Equal(t, "gin", detail.Ingredients[0].Name)

	missing := uint(9999)
	req.Slug = "other"
	req.Ingredients = []domain.IngredientInput{{TypeID: &missing, Amount: "1 oz"}}
	_, err = svc.CreateRecipe(ctx, req)
	assert.ErrorIs(t, err, domain.ErrIngredientTypeNotFound)

	_, err = svc.GetRecipeBySlug(ctx, "other")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestCreateRecipeRejectsBlankIngredientName(t *testing.T) {
	svc, _ := newTestService(t)

	req := whiskeySour()
	req.Ingredients[1].Name = "   "
	_, err := svc.CreateRecipe(context.Background(), req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "ingredients[1].name", verr.Issues[0].Field)
}

func TestCreateRecipeDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, whiskeySour())
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, whiskeySour())
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, whiskeySour())
	require.NoError(t, err)

	a := whiskeySour()
	a.Ingredients = []domain.IngredientInput{{Name: "rye", Amount: "2 oz"}}
	_, err = svc.UpdateRecipe(ctx, created.ID, a)
	require.NoError(t, err)

	b := whiskeySour()
	b.Title = "New York Sour"
	b.Ingredients = []domain.IngredientInput{
		{Name: "Rye", Amount: "2 oz"},
		{Name: "red wine", Amount: "0.5 oz"},
	}
	updated, err := svc.UpdateRecipe(ctx, created.ID, b)
	require.NoError(t, err)

	direct, err := svc.UpdateRecipe(ctx, created.ID, b)
	require.NoError(t, err)

	assert.Equal(t, "New York Sour", updated.Title)
	assert.Equal(t, []string{"rye", "red wine"}, ingredientNames(updated))
	assert.Equal(t, ingredientNames(direct), ingredientNames(updated))
}

func TestUpdateRecipeNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateRecipe(context.Background(), 42, whiskeySour())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipeCascades(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, whiskeySour())
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Review{RecipeID: created.ID, Rating: 5, Comment: "great"}).Error)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))

	var ingredients, reviews int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, db.Model(&entities.Review{}).Count(&reviews).Error)
	assert.Zero(t, ingredients)
	assert.Zero(t, reviews)

	_, err = svc.GetRecipeByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, created.ID), domain.ErrRecipeNotFound)
}

func TestListRecipesSearchAndPaging(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	titles := []string{"Whiskey Sour", "Amaretto Sour", "Negroni", "Daiquiri", "100% Agave Margarita"}
	for _, title := range titles {
		req := whiskeySour()
		req.Title, req.Slug = title, Slugify(title)
		_, err := svc.CreateRecipe(ctx, req)
		require.NoError(t, err)
	}

	res, err := svc.ListRecipes(ctx, domain.ListRecipesRequest{Query: "SOUR"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, domain.DefaultPageSize, res.Size)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(3), res.Items[0].IngredientCount)
	assert.Zero(t, res.Items[0].ReviewCount)

	res, err = svc.ListRecipes(ctx, domain.ListRecipesRequest{Query: "%"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "100% Agave Margarita", res.Items[0].Title)

	var seen []string
	for page := 1; page <= 3; page++ {
		res, err = svc.ListRecipes(ctx, domain.ListRecipesRequest{Page: page, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(len(titles)), res.Total)
		for _, item := range res.Items {
			seen = append(seen, item.Title)
		}
	}
	assert.ElementsMatch(t, titles, seen)

	res, err = svc.ListRecipes(ctx, domain.ListRecipesRequest{Size: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, res.Size)
}

func TestGetRecipeBySlugLimitsReviews(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, whiskeySour())
	require.NoError(t, err)
	for i := 0; i < domain.MaxReviewsShown+5; i++ {
		require.NoError(t, db.Create(&entities.Review{
			RecipeID: created.ID,
			Rating:   4,
			Comment:  fmt.Sprintf("review %d", i),
		}).Error)
	}

	detail, err := svc.GetRecipeBySlug(ctx, "whiskey-sour")
	require.NoError(t, err)
	assert.Len(t, detail.Reviews, domain.MaxReviewsShown)

	_, err = svc.GetRecipeBySlug(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
