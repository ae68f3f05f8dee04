package mocks

import (
	"context"

	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx, userID)

	if methods, ok := args.Get(0).([]*models.PaymentMethod); ok {
		return methods, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *PaymentRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)

	return args.Error(0)
}

func (m *PaymentRepository) Update(ctx context.Context, id, userID string, req *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, userID, req)

	if method, ok := args.Get(0).(*models.PaymentMethod); ok {
		return method, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *PaymentRepository) SoftDelete(ctx context.Context, id, userID string) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, userID)

	if method, ok := args.Get(0).(*models.PaymentMethod); ok {
		return method, args.Error(1)
	}

	return nil, args.Error(1)
}
