package repositories

import "furnistore/internal/models"

// CartRepository defines the interface for cart-item data access.
type CartRepository interface {
	GetAll() ([]models.CartItem, error)
	GetByUserID(userID string) ([]models.CartItem, error)
	// AddOrIncrement inserts the item with quantity 1, or atomically bumps
	// the quantity of the existing row for the same (product_id, user_id).
	AddOrIncrement(item *models.CartItem) error
	Delete(id string) error
}
