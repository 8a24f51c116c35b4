package models

import "time"

// CartItem links a user to a product with a quantity. The composite unique
// index backs the at-most-one-row-per-(product, user) invariant; the
// repository's upsert relies on it.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_carts_product_user"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);uniqueIndex:idx_carts_product_user" validate:"required,uuid"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the collection name the original API used.
func (CartItem) TableName() string {
	return "carts"
}
