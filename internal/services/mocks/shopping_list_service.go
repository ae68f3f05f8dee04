package mocks

import (
	"context"

	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type ShoppingListService struct {
	mock.Mock
}

func (m *ShoppingListService) CreateList(ctx context.Context, req *models.CreateShoppingListRequest) (*models.ShoppingListDetail, error) {
	args := m.Called(ctx, req)

	if detail, ok := args.Get(0).(*models.ShoppingListDetail); ok {
		return detail, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) ListLists(ctx context.Context, userID string, filters models.ShoppingListFilters) ([]*models.ShoppingList, error) {
	args := m.Called(ctx, userID, filters)

	if lists, ok := args.Get(0).([]*models.ShoppingList); ok {
		return lists, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) GetList(ctx context.Context, id, userID string) (*models.ShoppingListDetail, error) {
	args := m.Called(ctx, id, userID)

	if detail, ok := args.Get(0).(*models.ShoppingListDetail); ok {
		return detail, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) GetListByShareCode(ctx context.Context, code, clientIP string) (*models.ShoppingListDetail, error) {
	args := m.Called(ctx, code, clientIP)

	if detail, ok := args.Get(0).(*models.ShoppingListDetail); ok {
		return detail, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) UpdateList(ctx context.Context, id, userID string, req *models.UpdateShoppingListRequest) (*models.ShoppingList, error) {
	args := m.Called(ctx, id, userID, req)

	if list, ok := args.Get(0).(*models.ShoppingList); ok {
		return list, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) DeleteList(ctx context.Context, id, userID string) (*models.ShoppingList, error) {
	args := m.Called(ctx, id, userID)

	if list, ok := args.Get(0).(*models.ShoppingList); ok {
		return list, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) AddItem(ctx context.Context, listID string, req *models.AddItemRequest) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, listID, req)

	if item, ok := args.Get(0).(*models.ShoppingListItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) UpdateItem(ctx context.Context, itemID string, req *models.UpdateItemRequest) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, itemID, req)

	if item, ok := args.Get(0).(*models.ShoppingListItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ShoppingListService) RemoveItem(ctx context.Context, itemID string) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, itemID)

	if item, ok := args.Get(0).(*models.ShoppingListItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}
