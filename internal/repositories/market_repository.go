package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/compralista/shopping-list-platform/internal/utils"
)

type MarketRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Market, error)
	GetByID(ctx context.Context, id, userID string) (*models.Market, error)
	Create(ctx context.Context, market *models.Market) error
	Update(ctx context.Context, id, userID string, req *models.UpdateMarketRequest) (*models.Market, error)
	SoftDelete(ctx context.Context, id, userID string) (*models.Market, error)
}

type marketRepository struct {
	DB *sql.DB
}

func NewMarketRepo(db *sql.DB) MarketRepository {
	return &marketRepository{DB: db}
}

const marketColumns = `id, user_id, name, address, cnpj, email, website, phone, created_at, updated_at`

func scanMarket(scanner interface{ Scan(dest ...any) error }) (*models.Market, error) {
	market := &models.Market{}

	var address, cnpj, email, website, phone sql.NullString

	err := scanner.Scan(&market.ID, &market.UserID, &market.Name, &address, &cnpj,
		&email, &website, &phone, &market.CreatedAt, &market.UpdatedAt)
	if err != nil {
		return nil, err
	}

	market.Address = address.String
	market.CNPJ = cnpj.String
	market.Email = email.String
	market.Website = website.String
	market.Phone = phone.String

	return market, nil
}

func (r *marketRepository) ListByUser(ctx context.Context, userID string) ([]*models.Market, error) {
	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + marketColumns + `
		FROM markets
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}

	defer rows.Close()

	var markets []*models.Market

	for rows.Next() {
		market, err := scanMarket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market: %w", err)
		}

		markets = append(markets, market)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return markets, nil
}

func (r *marketRepository) GetByID(ctx context.Context, id, userID string) (*models.Market, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + marketColumns + `
		FROM markets
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	market, err := scanMarket(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get market: %w", err)
	}

	return market, nil
}

func (r *marketRepository) Create(ctx context.Context, market *models.Market) error {
	if !utils.IsValidUUID(market.UserID) {
		return appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO markets (id, user_id, name, address, cnpj, email, website, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		market.ID, market.UserID, market.Name, nullableString(market.Address), nullableString(market.CNPJ),
		nullableString(market.Email), nullableString(market.Website), nullableString(market.Phone),
	).Scan(&market.CreatedAt, &market.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert market: %w", err)
	}

	return nil
}

func (r *marketRepository) Update(ctx context.Context, id, userID string, req *models.UpdateMarketRequest) (*models.Market, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sets := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		addSet("name", strings.TrimSpace(*req.Name))
	}

	if req.Address != nil {
		addSet("address", nullableString(strings.TrimSpace(*req.Address)))
	}

	if req.CNPJ != nil {
		addSet("cnpj", nullableString(*req.CNPJ))
	}

	if req.Email != nil {
		addSet("email", nullableString(strings.TrimSpace(*req.Email)))
	}

	if req.Website != nil {
		addSet("website", nullableString(strings.TrimSpace(*req.Website)))
	}

	if req.Phone != nil {
		addSet("phone", nullableString(strings.TrimSpace(*req.Phone)))
	}

	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE markets SET %s
		WHERE id = $%d AND user_id = $%d AND deleted_at IS NULL
		RETURNING `+marketColumns+`
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	market, err := scanMarket(r.DB.QueryRowContext(dbCtx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update market: %w", err)
	}

	return market, nil
}

func (r *marketRepository) SoftDelete(ctx context.Context, id, userID string) (*models.Market, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE markets SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + marketColumns

	market, err := scanMarket(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to delete market: %w", err)
	}

	return market, nil
}
