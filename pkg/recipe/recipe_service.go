package recipe

import (
	"context"
	"fmt"
	"strings"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
)

type (
	RecipeService interface {
		ListRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.RecipeListResponse, error)
		GetRecipeBySlug(ctx context.Context, slug string) (domain.RecipeDetail, error)
		GetRecipeByID(ctx context.Context, id uint) (domain.RecipeDetail, error)
		CreateRecipe(ctx context.Context, req domain.RecipeRequest) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, id uint) error
		ListIngredientTypes(ctx context.Context) ([]domain.IngredientType, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

// NewRecipeService accepts a nil s3 when image storage is not configured.
func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) ListRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.RecipeListResponse, error) {
	page, size := normalizePaging(req.Page, req.Size)

	rows, total, err := s.recipeRepository.ListRecipes(ctx, strings.TrimSpace(req.Query), page, size)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	items := make([]domain.RecipeSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.RecipeSummary{
			ID:              row.ID,
			Title:           row.Title,
			Slug:            row.Slug,
			ImageURL:        row.ImageURL,
			Description:     row.Description,
			Method:          row.Method,
			AvgRating:       row.AvgRating,
			IngredientCount: row.IngredientCount,
			ReviewCount:     row.ReviewCount,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
	}

	return domain.RecipeListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}, nil
}

func normalizePaging(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = domain.DefaultPageSize
	}
	if size > domain.MaxPageSize {
		size = domain.MaxPageSize
	}
	return page, size
}

func (s *recipeService) GetRecipeBySlug(ctx context.Context, slug string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeBySlug(ctx, slug)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id uint) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest) (domain.RecipeDetail, error) {
	items, err := ingredientRefs(req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := &entities.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Slug:        strings.TrimSpace(req.Slug),
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Method:      req.Method,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, items); err != nil {
		return domain.RecipeDetail{}, fmt.Errorf("create recipe %q: %w", recipe.Slug, err)
	}

	log.Infof("recipe created: id=%d slug=%s ingredients=%d", recipe.ID, recipe.Slug, len(items))
	return s.GetRecipeByID(ctx, recipe.ID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest) (domain.RecipeDetail, error) {
	items, err := ingredientRefs(req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := &entities.Recipe{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Slug:        strings.TrimSpace(req.Slug),
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Method:      req.Method,
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, items); err != nil {
		return domain.RecipeDetail{}, fmt.Errorf("update recipe %d: %w", id, err)
	}

	return s.GetRecipeByID(ctx, id)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint) error {
	recipe, err := s.recipeRepository.DeleteRecipe(ctx, id)
	if err != nil {
		return err
	}

	if s.s3 != nil && recipe.ImageURL != nil {
		objectKey := s.s3.GetObjectKeyFromLink(*recipe.ImageURL)
		if objectKey != "" {
			if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
				log.Warnf("recipe %d deleted but image %s was not: %v", id, objectKey, err)
			}
		}
	}

	log.Infof("recipe deleted: id=%d slug=%s", recipe.ID, recipe.Slug)
	return nil
}

func (s *recipeService) ListIngredientTypes(ctx context.Context) ([]domain.IngredientType, error) {
	types, err := s.recipeRepository.ListIngredientTypes(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientType, 0, len(types))
	for _, t := range types {
		res = append(res, domain.IngredientType{ID: t.ID, Name: t.Name})
	}
	return res, nil
}

// NormalizeIngredientName is the canonical IngredientType name for user input.
func NormalizeIngredientName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func ingredientRefs(inputs []domain.IngredientInput) ([]IngredientRef, error) {
	resolved := make([]IngredientRef, 0, len(inputs))
	var issues []domain.Issue

	for i, in := range inputs {
		item := IngredientRef{TypeID: in.TypeID, Amount: strings.TrimSpace(in.Amount)}
		if item.TypeID == nil {
			item.Name = NormalizeIngredientName(in.Name)
			if item.Name == "" {
				issues = append(issues, domain.Issue{
					Field:   fmt.Sprintf("ingredients[%d].name", i),
					Tag:     "required",
					Message: "is required",
				})
			}
		}
		if item.Amount == "" {
			issues = append(issues, domain.Issue{
				Field:   fmt.Sprintf("ingredients[%d].amount", i),
				Tag:     "required",
				Message: "is required",
			})
		}
		resolved = append(resolved, item)
	}

	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}
	return resolved, nil
}

func toRecipeDetail(recipe *entities.Recipe) domain.RecipeDetail {
	ingredients := make([]domain.Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		item := domain.Ingredient{
			ID:       ing.ID,
			Amount:   ing.Amount,
			RecipeID: ing.RecipeID,
			TypeID:   ing.TypeID,
		}
		if ing.Type != nil {
			item.Name = ing.Type.Name
			item.Type = domain.IngredientType{ID: ing.Type.ID, Name: ing.Type.Name}
		}
		ingredients = append(ingredients, item)
	}

	reviews := make([]domain.Review, 0, len(recipe.Reviews))
	for _, review := range recipe.Reviews {
		reviews = append(reviews, toReview(review))
	}

	return domain.RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Slug:        recipe.Slug,
		ImageURL:    recipe.ImageURL,
		Description: recipe.Description,
		Method:      recipe.Method,
		AvgRating:   recipe.AvgRating,
		Ingredients: ingredients,
		Reviews:     reviews,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}

func toReview(review *entities.Review) domain.Review {
	return domain.Review{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Name:      review.Name,
		RecipeID:  review.RecipeID,
		UserID:    review.UserID,
		CreatedAt: review.CreatedAt,
	}
}
