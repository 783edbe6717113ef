package entities

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Name      *string   `json:"name,omitempty"`
	RecipeID  uint      `gorm:"not null;index" json:"recipeId"`
	UserID    *uint     `gorm:"index" json:"userId,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}
