// File: entities/recipe.go
package entities

type Recipe struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Slug        string  `gorm:"not null;uniqueIndex" json:"slug"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Method      string  `gorm:"type:text;not null" json:"method"`
	AvgRating   float64 `gorm:"not null;default:0" json:"avgRating"`

	Ingredients []*Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Reviews     []*Review     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	QrTokens    []*QrToken    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// IngredientType is the shared ingredient vocabulary. Names are stored trimmed and lower-cased.
type IngredientType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

type Ingredient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Amount   string `gorm:"not null" json:"amount"`
	RecipeID uint   `gorm:"not null;index" json:"recipeId"`
	TypeID   uint   `gorm:"not null;index" json:"typeId"`

	Type *IngredientType `gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT" json:"type,omitempty"`
}
