package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
	"github.com/compralista/shopping-list-platform/internal/models"
	repository "github.com/compralista/shopping-list-platform/internal/repositories"
	"github.com/compralista/shopping-list-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type PaymentService interface {
	ListPaymentMethods(ctx context.Context, userID string) ([]*models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id, userID string, req *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id, userID string) (*models.PaymentMethod, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	sanitizer *bluemonday.Policy
}

func NewPaymentService(repo repository.PaymentRepository) PaymentService {
	return &paymentService{repo: repo, sanitizer: bluemonday.StrictPolicy()}
}

func isValidPaymentType(value string) bool {
	switch models.PaymentType(value) {
	case models.PaymentTypeDebit, models.PaymentTypeCredit, models.PaymentTypePix:
		return true
	default:
		return false
	}
}

func (s *paymentService) ListPaymentMethods(ctx context.Context, userID string) ([]*models.PaymentMethod, error) {
	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	methods, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "Payment methods not found", "Failed to fetch payment methods")
	}

	return methods, nil
}

func (s *paymentService) CreatePaymentMethod(ctx context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if !utils.IsValidUUID(req.UserID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	if !isValidPaymentType(req.Type) {
		return nil, appErrors.AddValidationError("type", "must be one of: debit, credit, pix")
	}

	if utf8.RuneCountInString(req.Description) > models.MaxNotesLength {
		return nil, appErrors.AddValidationError("description", fmt.Sprintf("must be at most %d characters", models.MaxNotesLength))
	}

	method := &models.PaymentMethod{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Type:        models.PaymentType(req.Type),
		Description: strings.TrimSpace(s.sanitizer.Sanitize(req.Description)),
		IsDefault:   req.IsDefault,
		Enabled:     true,
	}

	if err := s.repo.Create(ctx, method); err != nil {
		return nil, mapRepoError(err, "Payment method not found", "Failed to create payment method")
	}

	return method, nil
}

func (s *paymentService) UpdatePaymentMethod(ctx context.Context, id, userID string, req *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if req.Type != nil && !isValidPaymentType(*req.Type) {
		return nil, appErrors.AddValidationError("type", "must be one of: debit, credit, pix")
	}

	if req.Description != nil {
		description := strings.TrimSpace(s.sanitizer.Sanitize(*req.Description))
		req.Description = &description
	}

	method, err := s.repo.Update(ctx, id, userID, req)
	if err != nil {
		return nil, mapRepoError(err, "Payment method not found", "Failed to update payment method")
	}

	return method, nil
}

func (s *paymentService) DeletePaymentMethod(ctx context.Context, id, userID string) (*models.PaymentMethod, error) {
	method, err := s.repo.SoftDelete(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err, "Payment method not found", "Failed to delete payment method")
	}

	return method, nil
}
