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

type PaymentRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.PaymentMethod, error)
	Create(ctx context.Context, method *models.PaymentMethod) error
	Update(ctx context.Context, id, userID string, req *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error)
	SoftDelete(ctx context.Context, id, userID string) (*models.PaymentMethod, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentColumns = `id, user_id, type, description, is_default, enabled, created_at, updated_at`

func scanPaymentMethod(scanner interface{ Scan(dest ...any) error }) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{}

	var description sql.NullString

	err := scanner.Scan(&method.ID, &method.UserID, &method.Type, &description,
		&method.IsDefault, &method.Enabled, &method.CreatedAt, &method.UpdatedAt)
	if err != nil {
		return nil, err
	}

	method.Description = description.String

	return method, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID string) ([]*models.PaymentMethod, error) {
	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + paymentColumns + `
		FROM payment_methods
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY is_default DESC, created_at ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	defer rows.Close()

	var methods []*models.PaymentMethod

	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}

		methods = append(methods, method)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return methods, nil
}

// Create inserts the method; a default method unsets the user's previous
// default inside the same transaction.
func (r *paymentRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	if !utils.IsValidUUID(method.UserID) {
		return appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if method.IsDefault {
		unset := `UPDATE payment_methods SET is_default = FALSE, updated_at = NOW()
			WHERE user_id = $1 AND is_default = TRUE AND deleted_at IS NULL`

		if _, err := tx.ExecContext(dbCtx, unset, method.UserID); err != nil {
			return fmt.Errorf("failed to unset default payment method: %w", err)
		}
	}

	query := `
		INSERT INTO payment_methods (id, user_id, type, description, is_default, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query,
		method.ID, method.UserID, method.Type, nullableString(method.Description),
		method.IsDefault, method.Enabled,
	).Scan(&method.CreatedAt, &method.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment method: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment method creation: %w", err)
	}

	return nil
}

func (r *paymentRepository) Update(ctx context.Context, id, userID string, req *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if req.IsDefault != nil && *req.IsDefault {
		unset := `UPDATE payment_methods SET is_default = FALSE, updated_at = NOW()
			WHERE user_id = $1 AND id <> $2 AND is_default = TRUE AND deleted_at IS NULL`

		if _, err := tx.ExecContext(dbCtx, unset, userID, id); err != nil {
			return nil, fmt.Errorf("failed to unset default payment method: %w", err)
		}
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Type != nil {
		addSet("type", *req.Type)
	}

	if req.Description != nil {
		addSet("description", nullableString(strings.TrimSpace(*req.Description)))
	}

	if req.IsDefault != nil {
		addSet("is_default", *req.IsDefault)
	}

	if req.Enabled != nil {
		addSet("enabled", *req.Enabled)
	}

	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE payment_methods SET %s
		WHERE id = $%d AND user_id = $%d AND deleted_at IS NULL
		RETURNING `+paymentColumns+`
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	method, err := scanPaymentMethod(tx.QueryRowContext(dbCtx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment method update: %w", err)
	}

	return method, nil
}

// SoftDelete also forces enabled=false so a deleted method can never stay
// selectable.
func (r *paymentRepository) SoftDelete(ctx context.Context, id, userID string) (*models.PaymentMethod, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payment_methods SET deleted_at = NOW(), enabled = FALSE, is_default = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + paymentColumns

	method, err := scanPaymentMethod(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to delete payment method: %w", err)
	}

	return method, nil
}
