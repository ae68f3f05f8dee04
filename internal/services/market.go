package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
	"github.com/compralista/shopping-list-platform/internal/models"
	repository "github.com/compralista/shopping-list-platform/internal/repositories"
	"github.com/compralista/shopping-list-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type MarketService interface {
	ListMarkets(ctx context.Context, userID string) ([]*models.Market, error)
	CreateMarket(ctx context.Context, req *models.CreateMarketRequest) (*models.Market, error)
	UpdateMarket(ctx context.Context, id, userID string, req *models.UpdateMarketRequest) (*models.Market, error)
	DeleteMarket(ctx context.Context, id, userID string) (*models.Market, error)
}

type marketService struct {
	repo      repository.MarketRepository
	sanitizer *bluemonday.Policy
}

func NewMarketService(repo repository.MarketRepository) MarketService {
	return &marketService{repo: repo, sanitizer: bluemonday.StrictPolicy()}
}

var cnpjDigits = regexp.MustCompile(`^\d{14}$`)

// normalizeCNPJ strips standard punctuation ("12.345.678/0001-95") and
// requires 14 digits.
func normalizeCNPJ(value string) (string, error) {
	cleaned := strings.NewReplacer(".", "", "/", "", "-", "", " ", "").Replace(value)

	if !cnpjDigits.MatchString(cleaned) {
		return "", appErrors.AddValidationError("cnpj", "must be a CNPJ with 14 digits")
	}

	return cleaned, nil
}

func (s *marketService) ListMarkets(ctx context.Context, userID string) ([]*models.Market, error) {
	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	markets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "Markets not found", "Failed to fetch markets")
	}

	return markets, nil
}

func (s *marketService) CreateMarket(ctx context.Context, req *models.CreateMarketRequest) (*models.Market, error) {
	if !utils.IsValidUUID(req.UserID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	name := strings.TrimSpace(s.sanitizer.Sanitize(req.Name))

	if name == "" {
		return nil, appErrors.AddValidationError("name", "is required")
	}

	if utf8.RuneCountInString(name) > models.MaxTitleLength {
		return nil, appErrors.AddValidationError("name", fmt.Sprintf("must be at most %d characters", models.MaxTitleLength))
	}

	market := &models.Market{
		ID:      uuid.NewString(),
		UserID:  req.UserID,
		Name:    name,
		Address: strings.TrimSpace(s.sanitizer.Sanitize(req.Address)),
		Email:   strings.TrimSpace(req.Email),
		Website: strings.TrimSpace(req.Website),
		Phone:   strings.TrimSpace(req.Phone),
	}

	if req.CNPJ != "" {
		cnpj, err := normalizeCNPJ(req.CNPJ)
		if err != nil {
			return nil, err
		}

		market.CNPJ = cnpj
	}

	if err := s.repo.Create(ctx, market); err != nil {
		return nil, mapRepoError(err, "Market not found", "Failed to create market")
	}

	return market, nil
}

func (s *marketService) UpdateMarket(ctx context.Context, id, userID string, req *models.UpdateMarketRequest) (*models.Market, error) {
	if req.Name != nil {
		name := strings.TrimSpace(s.sanitizer.Sanitize(*req.Name))

		if name == "" {
			return nil, appErrors.AddValidationError("name", "is required")
		}

		req.Name = &name
	}

	if req.CNPJ != nil && *req.CNPJ != "" {
		cnpj, err := normalizeCNPJ(*req.CNPJ)
		if err != nil {
			return nil, err
		}

		req.CNPJ = &cnpj
	}

	market, err := s.repo.Update(ctx, id, userID, req)
	if err != nil {
		return nil, mapRepoError(err, "Market not found", "Failed to update market")
	}

	return market, nil
}

func (s *marketService) DeleteMarket(ctx context.Context, id, userID string) (*models.Market, error) {
	market, err := s.repo.SoftDelete(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err, "Market not found", "Failed to delete market")
	}

	return market, nil
}
