package services

import (
	"fmt"

	"furnistore/internal/models"
	"furnistore/internal/repositories"
	"furnistore/pkg/images"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo        repositories.ProductRepository
	targetWidth int
}

// NewProductService creates a new ProductService. targetWidth is the fixed
// width product images are resized to before being stored.
func NewProductService(repo repositories.ProductRepository, targetWidth int) *ProductService {
	return &ProductService{
		repo:        repo,
		targetWidth: targetWidth,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct resizes and encodes the uploaded image, attaches it to the
// product and persists the record. The image is required on create.
func (s *ProductService) CreateProduct(product *models.Product, imageData []byte) error {
	if len(imageData) == 0 {
		return fmt.Errorf("image attachment is required")
	}

	encoded, err := images.Resize(imageData, s.targetWidth)
	if err != nil {
		return fmt.Errorf("failed to process product image: %w", err)
	}
	product.Image = encoded

	return s.repo.Create(product)
}

// UpdateProduct applies a partial field merge to the product. When imageData
// is present it is resized and encoded exactly as in CreateProduct; when
// absent the stored image stays unchanged.
func (s *ProductService) UpdateProduct(id string, fields map[string]interface{}, imageData []byte) (*models.Product, error) {
	if len(imageData) > 0 {
		encoded, err := images.Resize(imageData, s.targetWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to process product image: %w", err)
		}
		fields["image"] = encoded
	}

	if len(fields) == 0 {
		return s.repo.GetByID(id)
	}

	return s.repo.Update(id, fields)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
