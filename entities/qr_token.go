package entities

import (
	"time"

	"github.com/google/uuid"
)

type QrToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Token     string     `gorm:"not null;uniqueIndex" json:"token"`
	RecipeID  uint       `gorm:"not null;index" json:"recipeId"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expiresAt"`
	Used      bool       `gorm:"not null;default:false" json:"used"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}
