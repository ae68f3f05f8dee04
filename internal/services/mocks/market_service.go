package mocks

import (
	"context"

	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type MarketService struct {
	mock.Mock
}

func (m *MarketService) ListMarkets(ctx context.Context, userID string) ([]*models.Market, error) {
	args := m.Called(ctx, userID)

	if markets, ok := args.Get(0).([]*models.Market); ok {
		return markets, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MarketService) CreateMarket(ctx context.Context, req *models.CreateMarketRequest) (*models.Market, error) {
	args := m.Called(ctx, req)

	if market, ok := args.Get(0).(*models.Market); ok {
		return market, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MarketService) UpdateMarket(ctx context.Context, id, userID string, req *models.UpdateMarketRequest) (*models.Market, error) {
	args := m.Called(ctx, id, userID, req)

	if market, ok := args.Get(0).(*models.Market); ok {
		return market, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MarketService) DeleteMarket(ctx context.Context, id, userID string) (*models.Market, error) {
	args := m.Called(ctx, id, userID)

	if market, ok := args.Get(0).(*models.Market); ok {
		return market, args.Error(1)
	}

	return nil, args.Error(1)
}
