package services_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"furnistore/internal/models"
	"furnistore/internal/services"
	"furnistore/pkg/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(id string, fields map[string]interface{}) (*models.Product, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// testImage renders a PNG fixture of the given dimensions.
func testImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(y % 256), B: uint8(x % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}
	return buf.Bytes()
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, 300)

	newProduct := &models.Product{Name: "Oak Table", Category: "tables", Price: 450.0, Rating: 4.5}

	// The create path must resize the upload and store it base64-encoded.
	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		if p.Image == "" {
			return false
		}
		decoded, err := images.Decode(p.Image)
		return err == nil && decoded.Bounds().Dx() == 300
	})).Return(nil).Once()

	err := service.CreateProduct(newProduct, testImage(t, 1200, 800))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductRequiresImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, 300)

	err := service.CreateProduct(&models.Product{Name: "Oak Table"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "image attachment is required")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProductRejectsBadImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, 300)

	err := service.CreateProduct(&models.Product{Name: "Oak Table"}, []byte("not an image"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process product image")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_UpdateProductWithoutImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, 300)

	updated := &models.Product{ID: "1", Name: "Walnut Table"}
	// Without an attachment the merge must not touch the image column.
	mockRepo.On("Update", "1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasImage := fields["image"]
		return !hasImage && fields["name"] == "Walnut Table"
	})).Return(updated, nil).Once()

	product, err := service.UpdateProduct("1", map[string]interface{}{"name": "Walnut Table"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, updated, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductWithImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, 300)

	updated := &models.Product{ID: "1", Name: "Walnut Table"}
	mockRepo.On("Update", "1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		encoded, ok := fields["image"].(string)
		if !ok || encoded == "" {
			return false
		}
		decoded, err := images.Decode(encoded)
		return err == nil && decoded.Bounds().Dx() == 300
	})).Return(updated, nil).Once()

	_, err := service.UpdateProduct("1", map[string]interface{}{}, testImage(t, 600, 600))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, 300)

	mockRepo.On("Delete", "1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("1"))

	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 not found for deletion")).Once()
	err := service.DeleteProduct("99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
	mockRepo.AssertExpectations(t)
}
