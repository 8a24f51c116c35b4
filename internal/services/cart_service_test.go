package services_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"furnistore/internal/models"
	"furnistore/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetAll() ([]models.CartItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetByUserID(userID string) ([]models.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) AddOrIncrement(item *models.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestCartService_AddItem(t *testing.T) {
	mockRepo := new(MockCartRepository)
	mockPub := new(MockEventPublisher)
	service := services.NewCartService(mockRepo, mockPub)

	userID := uuid.New().String()

	mockRepo.On("AddOrIncrement", mock.MatchedBy(func(item *models.CartItem) bool {
		return item.ProductID == "P1" && item.UserID == userID && item.Quantity == 1
	})).Return(nil).Once()
	mockPub.On("Publish", "cart.item_added", mock.MatchedBy(func(body []byte) bool {
		var event map[string]string
		if err := json.Unmarshal(body, &event); err != nil {
			return false
		}
		return event["product_id"] == "P1" && event["userId"] == userID
	})).Return(nil).Once()

	err := service.AddItem("P1", userID)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestCartService_AddItemRejectsInvalidUserID(t *testing.T) {
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo, nil)

	for _, userID := range []string{"", "   ", "not-an-id"} {
		err := service.AddItem("P1", userID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid userId")
	}
	mockRepo.AssertNotCalled(t, "AddOrIncrement", mock.Anything)
}

func TestCartService_AddItemWithoutPublisher(t *testing.T) {
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo, nil)

	userID := uuid.New().String()
	mockRepo.On("AddOrIncrement", mock.Anything).Return(nil).Once()

	// A nil publisher only disables events, never the add itself.
	err := service.AddItem("P1", userID)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCartService_AddItemSurvivesPublishFailure(t *testing.T) {
	mockRepo := new(MockCartRepository)
	mockPub := new(MockEventPublisher)
	service := services.NewCartService(mockRepo, mockPub)

	userID := uuid.New().String()
	mockRepo.On("AddOrIncrement", mock.Anything).Return(nil).Once()
	mockPub.On("Publish", "cart.item_added", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	err := service.AddItem("P1", userID)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestCartService_GetItemsForUser(t *testing.T) {
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo, nil)

	userID := uuid.New().String()
	expected := []models.CartItem{
		{ID: "c1", ProductID: "P1", UserID: userID, Quantity: 2},
	}
	mockRepo.On("GetByUserID", userID).Return(expected, nil).Once()

	items, err := service.GetItemsForUser(userID)
	assert.NoError(t, err)
	assert.Equal(t, expected, items)
	mockRepo.AssertExpectations(t)

	// Malformed identifiers are rejected before the repository is touched.
	_, err = service.GetItemsForUser("not-an-id")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid userId")
	mockRepo.AssertNotCalled(t, "GetByUserID", "not-an-id")
}

func TestCartService_DeleteItem(t *testing.T) {
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo, nil)

	mockRepo.On("Delete", "c1").Return(nil).Once()
	assert.NoError(t, service.DeleteItem("c1"))

	mockRepo.On("Delete", "c99").Return(fmt.Errorf("cart item with ID c99 not found for deletion")).Once()
	err := service.DeleteItem("c99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}
