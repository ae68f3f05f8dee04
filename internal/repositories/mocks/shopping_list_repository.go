package mocks

import (
	"context"

	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type ShoppingListRepository struct {
	mock.Mock
}

func (m *ShoppingListRepository) CreateWithItems(ctx context.Context, list *models.ShoppingList, items []*models.ShoppingListItem) error {
	args := m.Called(ctx, list, items)

	return args.Error(0)
}

func (m *ShoppingListRepository) ListByUser(ctx context.Context, userID string, filters models.ShoppingListFilters) ([]*models.ShoppingList, error) {
	args := m.Called(ctx, userID, filters)

	if lists, ok := args.Get(0).([]*models.ShoppingList); ok {
		return lists, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) GetByID(ctx context.Context, id, userID string) (*models.ShoppingList, error) {
	args := m.Called(ctx, id, userID)

	if list, ok := args.Get(0).(*models.ShoppingList); ok {
		return list, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) GetByShareCode(ctx context.Context, code string) (*models.ShoppingList, error) {
	args := m.Called(ctx, code)

	if list, ok := args.Get(0).(*models.ShoppingList); ok {
		return list, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) Update(ctx context.Context, id, userID string, req *models.UpdateShoppingListRequest) (*models.ShoppingList, error) {
	args := m.Called(ctx, id, userID, req)

	if list, ok := args.Get(0).(*models.ShoppingList); ok {
		return list, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) SoftDelete(ctx context.Context, id, userID string) (*models.ShoppingList, error) {
	args := m.Called(ctx, id, userID)

	if list, ok := args.Get(0).(*models.ShoppingList); ok {
		return list, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) CountItems(ctx context.Context, listID string) (int, error) {
	args := m.Called(ctx, listID)

	return args.Int(0), args.Error(1)
}

func (m *ShoppingListRepository) CountCheckedItems(ctx context.Context, listID string) (int, error) {
	args := m.Called(ctx, listID)

	return args.Int(0), args.Error(1)
}

func (m *ShoppingListRepository) SumItemsTotal(ctx context.Context, listID string) (float64, error) {
	args := m.Called(ctx, listID)

	return args.Get(0).(float64), args.Error(1)
}

func (m *ShoppingListRepository) ListItems(ctx context.Context, listID string) ([]*models.ShoppingListItem, error) {
	args := m.Called(ctx, listID)

	if items, ok := args.Get(0).([]*models.ShoppingListItem); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) InsertItem(ctx context.Context, item *models.ShoppingListItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *ShoppingListRepository) GetItemByID(ctx context.Context, itemID string) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, itemID)

	if item, ok := args.Get(0).(*models.ShoppingListItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) UpdateItem(ctx context.Context, itemID string, req *models.UpdateItemRequest) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, itemID, req)

	if item, ok := args.Get(0).(*models.ShoppingListItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListRepository) DeleteItem(ctx context.Context, itemID string) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, itemID)

	if item, ok := args.Get(0).(*models.ShoppingListItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

// ShareRateLimiter mock
type ShareRateLimiter struct {
	mock.Mock
}

func (m *ShareRateLimiter) CheckShareRateLimit(ctx context.Context, clientIP string) (bool, int, error) {
	args := m.Called(ctx, clientIP)

	return args.Bool(0), args.Int(1), args.Error(2)
}
