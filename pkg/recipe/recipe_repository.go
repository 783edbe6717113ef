package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"mymixes/domain"
	"mymixes/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		ListRecipes(ctx context.Context, query string, page, size int) ([]*RecipeSummaryRow, int64, error)
		GetRecipeBySlug(ctx context.Context, slug string) (*entities.Recipe, error)
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []IngredientRef) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []IngredientRef) error
		DeleteRecipe(ctx context.Context, id uint) (*entities.Recipe, error)
		ListIngredientTypes(ctx context.Context) ([]*entities.IngredientType, error)
	}

	// IngredientRef is an ingredient to attach: by TypeID when set, else by normalized Name.
	IngredientRef struct {
		TypeID *uint
		Name   string
		Amount string
	}

	RecipeSummaryRow struct {
		ID              uint
		Title           string
		Slug            string
		ImageURL        *string
		Description     *string
		Method          string
		AvgRating       float64
		IngredientCount int64
		ReviewCount     int64
		CreatedAt       time.Time
		UpdatedAt       time.Time
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

const summaryColumns = `recipes.id, recipes.title, recipes.slug, recipes.image_url, recipes.description,
	recipes.method, recipes.avg_rating, recipes.created_at, recipes.updated_at,
	(SELECT COUNT(*) FROM ingredients WHERE ingredients.recipe_id = recipes.id) AS ingredient_count,
	(SELECT COUNT(*) FROM reviews WHERE reviews.recipe_id = recipes.id) AS review_count`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) ListRecipes(ctx context.Context, query string, page, size int) ([]*RecipeSummaryRow, int64, error) {
	var rows []*RecipeSummaryRow
	var count int64
	offset := (page - 1) * size

	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.Recipe{})
		if query != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
			q = q.Where(`LOWER(recipes.title) LIKE ? ESCAPE '\'`, pattern)
		}
		return q
	}

	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := filtered().
		Select(summaryColumns).
		Order("recipes.created_at desc, recipes.id desc").
		Offset(offset).
		Limit(size).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, count, nil
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.id asc")
		}).
		Preload("Ingredients.Type").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at desc, reviews.id desc").Limit(domain.MaxReviewsShown)
		})
}

func (r *recipeRepository) GetRecipeBySlug(ctx context.Context, slug string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withDetail(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withDetail(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []IngredientRef) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		rows, err := insertIngredients(tx, recipe.ID, ingredients)
		if err != nil {
			return err
		}
		recipe.Ingredients = rows
		return nil
	})
}

// UpdateRecipe overwrites the scalar fields and replaces the ingredient set wholesale.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []IngredientRef) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Recipe
		if err := tx.Where("id = ?", recipe.ID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		if err := tx.Model(&existing).Updates(map[string]any{
			"title":       recipe.Title,
			"slug":        recipe.Slug,
			"image_url":   recipe.ImageURL,
			"description": recipe.Description,
			"method":      recipe.Method,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}

		rows, err := insertIngredients(tx, recipe.ID, ingredients)
		if err != nil {
			return err
		}

		existing.Ingredients = rows
		*recipe = existing
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		children := []any{&entities.Ingredient{}, &entities.Review{}, &entities.QrToken{}}
		for _, child := range children {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListIngredientTypes(ctx context.Context) ([]*entities.IngredientType, error) {
	var types []*entities.IngredientType
	if err := r.db.WithContext(ctx).Order("name asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func insertIngredients(tx *gorm.DB, recipeID uint, items []IngredientRef) ([]*entities.Ingredient, error) {
	rows := make([]*entities.Ingredient, 0, len(items))
	for _, in := range items {
		ingredientType, err := resolveType(tx, in)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &entities.Ingredient{
			Amount:   in.Amount,
			RecipeID: recipeID,
			TypeID:   ingredientType.ID,
			Type:     ingredientType,
		})
	}

	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func resolveType(tx *gorm.DB, in IngredientRef) (*entities.IngredientType, error) {
	var ingredientType entities.IngredientType

	if in.TypeID != nil {
		if err := tx.Where("id = ?", *in.TypeID).First(&ingredientType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrIngredientTypeNotFound
			}
			return nil, err
		}
		return &ingredientType, nil
	}

	if err := tx.Where(entities.IngredientType{Name: in.Name}).
		FirstOrCreate(&ingredientType).Error; err != nil {
		return nil, err
	}
	return &ingredientType, nil
}
