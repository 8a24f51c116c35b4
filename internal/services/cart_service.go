package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"furnistore/internal/models"
	"furnistore/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes domain events to a message broker. Satisfied by
// *rabbitmq.Client; a nil publisher disables event publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CartService handles business logic related to shopping carts.
type CartService struct {
	repo      repositories.CartRepository
	publisher EventPublisher
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository, publisher EventPublisher) *CartService {
	return &CartService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllItems retrieves all cart items across all users.
func (s *CartService) GetAllItems() ([]models.CartItem, error) {
	return s.repo.GetAll()
}

// GetItemsForUser retrieves all cart items for one user. The userID must be
// present and a syntactically valid identifier.
func (s *CartService) GetItemsForUser(userID string) ([]models.CartItem, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(userID)
}

// AddItem adds a product to a user's cart. A first add creates the item
// with quantity 1; adding the same (product, user) pair again increments
// the quantity instead of creating a second row. The write is a single
// atomic upsert, so concurrent adds cannot race.
func (s *CartService) AddItem(productID, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	item := &models.CartItem{
		ProductID: productID,
		UserID:    userID,
		Quantity:  1,
	}
	if err := s.repo.AddOrIncrement(item); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	// Publish a cart event; the HTTP path never depends on the broker.
	if s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"product_id": productID,
			"userId":     userID,
		})
		if err != nil {
			log.Printf("Failed to marshal cart event: %v", err)
		} else if err := s.publisher.Publish("cart.item_added", body); err != nil {
			log.Printf("Warning: failed to publish cart event for user %s: %v", userID, err)
		}
	}

	return nil
}

// DeleteItem deletes a cart item by its ID.
func (s *CartService) DeleteItem(id string) error {
	return s.repo.Delete(id)
}

// validateUserID rejects blank or malformed user identifiers.
func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("invalid userId")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid userId")
	}
	return nil
}
