package qr

import (
	"context"
	"errors"
	"time"

	"mymixes/domain"
	"mymixes/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	QrRepository interface {
		GetRecipe(ctx context.Context, recipeID uint) (*entities.Recipe, error)
		CreateToken(ctx context.Context, token *entities.QrToken) error
		GetTokenByValue(ctx context.Context, token string) (*entities.QrToken, error)
		GetTokenByID(ctx context.Context, id uuid.UUID) (*entities.QrToken, error)
		ListActiveTokens(ctx context.Context, now time.Time, recipeID *uint) ([]*entities.QrToken, error)
		CountActiveByRecipe(ctx context.Context, now time.Time) ([]RecipeCount, error)
		DeleteToken(ctx context.Context, id uuid.UUID) error
		MarkUsed(ctx context.Context, token string, at time.Time) error
	}

	RecipeCount struct {
		RecipeID uint
		Count    int64
	}

	qrRepository struct {
		db *gorm.DB
	}
)

func NewQrRepository(db *gorm.DB) QrRepository {
	return &qrRepository{db: db}
}

func (r *qrRepository) GetRecipe(ctx context.Context, recipeID uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *qrRepository) CreateToken(ctx context.Context, token *entities.QrToken) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(token).Error
}

// GetTokenByValue loads the token with its recipe. Recipe is nil when the recipe row is gone.
func (r *qrRepository) GetTokenByValue(ctx context.Context, token string) (*entities.QrToken, error) {
	var row entities.QrToken
	if err := r.db.WithContext(ctx).Preload("Recipe").Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQrTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *qrRepository) GetTokenByID(ctx context.Context, id uuid.UUID) (*entities.QrToken, error) {
	var row entities.QrToken
	if err := r.db.WithContext(ctx).Preload("Recipe").Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQrTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *qrRepository) ListActiveTokens(ctx context.Context, now time.Time, recipeID *uint) ([]*entities.QrToken, error) {
	var rows []*entities.QrToken
	q := r.db.WithContext(ctx).Preload("Recipe").Where("expires_at > ?", now)
	if recipeID != nil {
		q = q.Where("recipe_id = ?", *recipeID)
	}
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *qrRepository) CountActiveByRecipe(ctx context.Context, now time.Time) ([]RecipeCount, error) {
	var rows []RecipeCount
	if err := r.db.WithContext(ctx).
		Model(&entities.QrToken{}).
		Select("recipe_id, COUNT(*) AS count").
		Where("expires_at > ?", now).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *qrRepository) DeleteToken(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.QrToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrQrTokenNotFound
	}
	return nil
}

func (r *qrRepository) MarkUsed(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.QrToken{}).
		Where("token = ?", token).
		UpdateColumns(map[string]any{"used": true, "used_at": at}).Error
}
