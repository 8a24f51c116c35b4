package handlers

import (
	"log"
	"strings"

	"furnistore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/get", h.HandleGetCartByUser)
	cartRoutes.Post("/post", h.HandleAddToCart)
	cartRoutes.Delete("/delete/:id", h.HandleDeleteCartItem)
}

// HandleGetCart retrieves all cart items across all users.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.cartService.GetAllItems()
	if err != nil {
		log.Printf("Error getting all cart items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
	return c.JSON(items)
}

// HandleGetCartByUser retrieves the cart items of the user named by the
// userId query parameter.
func (h *CartHandler) HandleGetCartByUser(c *fiber.Ctx) error {
	userID := c.Query("userId")
	items, err := h.cartService.GetItemsForUser(userID)
	if err != nil {
		log.Printf("Error fetching cart for user %q: %v", userID, err)
		if strings.Contains(err.Error(), "invalid userId") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid userId",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching cart",
		})
	}
	return c.JSON(items)
}

// AddToCartRequest represents the request body for adding a cart item.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"userId"`
}

// HandleAddToCart adds a product to a user's cart, incrementing the
// quantity when the (product, user) pair already exists.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.cartService.AddItem(req.ProductID, req.UserID); err != nil {
		log.Printf("Error adding item to the cart: %v", err)
		if strings.Contains(err.Error(), "invalid userId") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid userId",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding item to the cart",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleDeleteCartItem deletes a cart item by its ID.
func (h *CartHandler) HandleDeleteCartItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.cartService.DeleteItem(itemID); err != nil {
		log.Printf("Error deleting cart item %s: %v", itemID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart item deleted successfully",
	})
}
