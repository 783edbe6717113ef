package review

import (
	"context"
	"errors"

	"mymixes/domain"
	"mymixes/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ReviewRepository interface {
		ListReviews(ctx context.Context, recipeID uint) ([]*entities.Review, error)
		CreateReview(ctx context.Context, review *entities.Review) (float64, error)
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) ListReviews(ctx context.Context, recipeID uint) ([]*entities.Review, error) {
	if err := recipeExists(r.db.WithContext(ctx), recipeID); err != nil {
		return nil, err
	}

	var reviews []*entities.Review
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at desc, id desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview stores the review and recomputes the recipe's average in the same
// transaction. It returns the new average.
func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, review.RecipeID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.Review{}).
			Where("recipe_id = ?", review.RecipeID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Recipe{}).
			Where("id = ?", review.RecipeID).
			UpdateColumn("avg_rating", avg).Error
	})
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func recipeExists(db *gorm.DB, recipeID uint) error {
	var recipe entities.Recipe
	if err := db.Select("id").Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}
