package domain

import "time"

type (
	ReviewRequest struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment" validate:"required,min=1"`
	}

	AnonymousReviewRequest struct {
		Name    string `json:"name" validate:"required,min=1,max=50"`
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment" validate:"required,min=1,max=500"`
	}

	Review struct {
		ID        uint      `json:"id"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"comment"`
		Name      *string   `json:"name,omitempty"`
		RecipeID  uint      `json:"recipeId"`
		UserID    *uint     `json:"userId,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}
)
