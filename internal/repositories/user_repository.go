package repositories

import "furnistore/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(id string, fields map[string]interface{}) (*models.User, error)
	Delete(id string) error
}
