package entities

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Email    string  `gorm:"not null;uniqueIndex" json:"email"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`

	Reviews []*Review `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
