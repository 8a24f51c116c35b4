package models

import "time"

// Product represents a catalog item. Image holds the resized product
// picture as a base64-encoded string, both at rest and in JSON responses.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Price       float64   `json:"price" validate:"gte=0"`
	Rating      float64   `json:"rating" validate:"gte=0"`
	Image       string    `json:"image" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
