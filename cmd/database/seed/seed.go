package seed

import (
	"context"
	"errors"
	"fmt"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/pkg/recipe"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

var users = []entities.User{
	{Email: "test@test.com", Name: "Test User", ImageURL: strPtr("https://via.placeholder.com/150")},
}

var recipes = []domain.RecipeRequest{
	{
		Title:       "Whiskey Sour",
		Description: strPtr("Bourbon, lemon and sugar, shaken until silky."),
		Method:      "Shake all ingredients hard with ice. Strain over fresh ice and garnish with a cherry.",
		Ingredients: []domain.IngredientInput{
			{Name: "bourbon", Amount: "2 oz"},
			{Name: "lemon juice", Amount: "0.75 oz"},
			{Name: "simple syrup", Amount: "0.5 oz"},
		},
	},
	{
		Title:       "Negroni",
		Description: strPtr("Equal parts, bitter and bright."),
		Method:      "Stir with ice until well chilled. Strain over a large cube and express an orange peel.",
		Ingredients: []domain.IngredientInput{
			{Name: "gin", Amount: "1 oz"},
			{Name: "campari", Amount: "1 oz"},
			{Name: "sweet vermouth", Amount: "1 oz"},
		},
	},
	{
		Title:  "Daiquiri",
		Method: "Shake hard with ice and fine strain into a chilled coupe.",
		Ingredients: []domain.IngredientInput{
			{Name: "white rum", Amount: "2 oz"},
			{Name: "lime juice", Amount: "1 oz"},
			{Name: "simple syrup", Amount: "0.75 oz"},
		},
	},
}

// Seed inserts the sample user and recipes. Rows that already exist are left alone.
func Seed(ctx context.Context, db *gorm.DB, recipeService recipe.RecipeService) error {
	for _, user := range users {
		if err := db.WithContext(ctx).
			Where(entities.User{Email: user.Email}).
			FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}

	created := 0
	for _, req := range recipes {
		req.Slug = recipe.Slugify(req.Title)

		_, err := recipeService.GetRecipeBySlug(ctx, req.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRecipeNotFound) {
			return err
		}

		if _, err := recipeService.CreateRecipe(ctx, req); err != nil {
			return fmt.Errorf("seed recipe %s: %w", req.Slug, err)
		}
		created++
	}

	log.Infof("seed complete: %d users, %d new recipes", len(users), created)
	return nil
}
