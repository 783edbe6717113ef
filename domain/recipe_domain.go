package domain

import (
	"errors"
	"time"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	MaxReviewsShown = 25
)

var (
	MessageRecipeNotFound = "Recipe not found"

	ErrRecipeNotFound         = errors.New("recipe not found")
	ErrIngredientTypeNotFound = errors.New("ingredient type not found")
)

type (
	IngredientInput struct {
		TypeID *uint  `json:"typeId,omitempty" validate:"omitempty,gt=0"`
		Name   string `json:"name,omitempty" validate:"required_without=TypeID"`
		Amount string `json:"amount" validate:"required,min=1"`
	}

	// RecipeRequest is the body of both create and full replace.
	RecipeRequest struct {
		Title       string            `json:"title" validate:"required,min=2"`
		Slug        string            `json:"slug" validate:"required,min=2"`
		ImageURL    *string           `json:"imageUrl,omitempty" validate:"omitempty,url"`
		Description *string           `json:"description,omitempty"`
		Method      string            `json:"method" validate:"required,min=5"`
		Ingredients []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
	}

	ListRecipesRequest struct {
		Query string
		Page  int
		Size  int
	}

	IngredientType struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	Ingredient struct {
		ID       uint           `json:"id"`
		Name     string         `json:"name"`
		Amount   string         `json:"amount"`
		RecipeID uint           `json:"recipeId"`
		TypeID   uint           `json:"typeId"`
		Type     IngredientType `json:"type"`
	}

	RecipeSummary struct {
		ID              uint      `json:"id"`
		Title           string    `json:"title"`
		Slug            string    `json:"slug"`
		ImageURL        *string   `json:"imageUrl,omitempty"`
		Description     *string   `json:"description,omitempty"`
		Method          string    `json:"method"`
		AvgRating       float64   `json:"avgRating"`
		IngredientCount int64     `json:"ingredientCount"`
		ReviewCount     int64     `json:"reviewCount"`
		CreatedAt       time.Time `json:"createdAt"`
		UpdatedAt       time.Time `json:"updatedAt"`
	}

	RecipeDetail struct {
		ID          uint         `json:"id"`
		Title       string       `json:"title"`
		Slug        string       `json:"slug"`
		ImageURL    *string      `json:"imageUrl,omitempty"`
		Description *string      `json:"description,omitempty"`
		Method      string       `json:"method"`
		AvgRating   float64      `json:"avgRating"`
		Ingredients []Ingredient `json:"ingredients"`
		Reviews     []Review     `json:"reviews"`
		CreatedAt   time.Time    `json:"createdAt"`
		UpdatedAt   time.Time    `json:"updatedAt"`
	}

	RecipeListResponse struct {
		Items []RecipeSummary `json:"items"`
		Total int64           `json:"total"`
		Page  int             `json:"page"`
		Size  int             `json:"size"`
	}

	RecipeRef struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
		Slug  string `json:"slug"`
	}
)
