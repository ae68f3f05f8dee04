package mocks

import (
	"context"

	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type MarketRepository struct {
	mock.Mock
}

func (m *MarketRepository) ListByUser(ctx context.Context, userID string) ([]*models.Market, error) {
	args := m.Called(ctx, userID)

	if markets, ok := args.Get(0).([]*models.Market); ok {
		return markets, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MarketRepository) GetByID(ctx context.Context, id, userID string) (*models.Market, error) {
	args := m.Called(ctx, id, userID)

	if market, ok := args.Get(0).(*models.Market); ok {
		return market, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MarketRepository) Create(ctx context.Context, market *models.Market) error {
	args := m.Called(ctx, market)

	return args.Error(0)
}

func (m *MarketRepository) Update(ctx context.Context, id, userID string, req *models.UpdateMarketRequest) (*models.Market, error) {
	args := m.Called(ctx, id, userID, req)

	if market, ok := args.Get(0).(*models.Market); ok {
		return market, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MarketRepository) SoftDelete(ctx context.Context, id, userID string) (*models.Market, error) {
	args := m.Called(ctx, id, userID)

	if market, ok := args.Get(0).(*models.Market); ok {
		return market, args.Error(1)
	}

	return nil, args.Error(1)
}
