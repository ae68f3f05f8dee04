package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/compralista/shopping-list-platform/internal/utils"
	"github.com/shopspring/decimal"
)

type ShoppingListRepository interface {
	CreateWithItems(ctx context.Context, list *models.ShoppingList, items []*models.ShoppingListItem) error
	ListByUser(ctx context.Context, userID string, filters models.ShoppingListFilters) ([]*models.ShoppingList, error)
	GetByID(ctx context.Context, id, userID string) (*models.ShoppingList, error)
	GetByShareCode(ctx context.Context, code string) (*models.ShoppingList, error)
	Update(ctx context.Context, id, userID string, req *models.UpdateShoppingListRequest) (*models.ShoppingList, error)
	SoftDelete(ctx context.Context, id, userID string) (*models.ShoppingList, error)

	CountItems(ctx context.Context, listID string) (int, error)
	CountCheckedItems(ctx context.Context, listID string) (int, error)
	SumItemsTotal(ctx context.Context, listID string) (float64, error)
	ListItems(ctx context.Context, listID string) ([]*models.ShoppingListItem, error)
	InsertItem(ctx context.Context, item *models.ShoppingListItem) error
	GetItemByID(ctx context.Context, itemID string) (*models.ShoppingListItem, error)
	UpdateItem(ctx context.Context, itemID string, req *models.UpdateItemRequest) (*models.ShoppingListItem, error)
	DeleteItem(ctx context.Context, itemID string) (*models.ShoppingListItem, error)
}

type shoppingListRepository struct {
	DB *sql.DB
}

func NewShoppingListRepo(db *sql.DB) ShoppingListRepository {
	return &shoppingListRepository{DB: db}
}

// every column read of a list row, market name/address joined in
const listColumns = `l.id, l.user_id, l.title, l.description, l.shopping_date, l.market_id, l.payment_id,
		l.is_completed, l.share_code, l.created_at, l.updated_at, m.name, m.address`

func scanList(scanner interface{ Scan(dest ...any) error }) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}

	var (
		description   sql.NullString
		shoppingDate  time.Time
		marketID      sql.NullString
		paymentID     sql.NullString
		shareCode     sql.NullString
		marketName    sql.NullString
		marketAddress sql.NullString
	)

	err := scanner.Scan(&list.ID, &list.UserID, &list.Title, &description, &shoppingDate,
		&marketID, &paymentID, &list.IsCompleted, &shareCode,
		&list.CreatedAt, &list.UpdatedAt, &marketName, &marketAddress)
	if err != nil {
		return nil, err
	}

	list.Description = description.String
	list.ShoppingDate = shoppingDate.Format(models.ShoppingDateLayout)

	if marketID.Valid {
		list.MarketID = &marketID.String
	}

	if paymentID.Valid {
		list.PaymentID = &paymentID.String
	}

	list.ShareCode = shareCode.String
	list.MarketName = marketName.String
	list.MarketAddress = marketAddress.String

	return list, nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{}

	var notes sql.NullString

	err := scanner.Scan(&item.ID, &item.ListID, &item.ProductName, &item.Category,
		&item.Quantity, &item.Unit, &item.UnitPrice, &item.TotalPrice,
		&item.IsChecked, &notes, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Notes = notes.String

	return item, nil
}

func nullableUUID(value *string) any {
	if value == nil {
		return nil
	}

	if sanitized := utils.SanitizeUUID(*value); sanitized != "" {
		return sanitized
	}

	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}

	return value
}

// CreateWithItems inserts the list row and every item in one transaction, so
// an item failure never leaves an orphaned empty list behind.
func (r *shoppingListRepository) CreateWithItems(ctx context.Context, list *models.ShoppingList, items []*models.ShoppingListItem) error {
	if !utils.IsValidUUID(list.UserID) {
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

	listQuery := `
		INSERT INTO shopping_lists (id, user_id, title, description, shopping_date, market_id, payment_id, is_completed, share_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, listQuery,
		list.ID, list.UserID, list.Title, nullableString(list.Description), list.ShoppingDate,
		nullableUUID(list.MarketID), nullableUUID(list.PaymentID), list.IsCompleted, list.ShareCode,
	).Scan(&list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert shopping list: %w", err)
	}

	itemQuery := `
		INSERT INTO shopping_list_items (id, list_id, product_name, category, quantity, unit, unit_price, total_price, is_checked, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	for _, item := range items {
		err = tx.QueryRowContext(dbCtx, itemQuery,
			item.ID, list.ID, item.ProductName, item.Category, item.Quantity, item.Unit,
			item.UnitPrice, item.TotalPrice, item.IsChecked, nullableString(item.Notes),
		).Scan(&item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert shopping list item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shopping list creation: %w", err)
	}

	return nil
}

var orderColumns = map[string]string{
	"shopping_date": "l.shopping_date DESC",
	"created_at":    "l.created_at DESC",
	"updated_at":    "l.updated_at DESC",
	"title":         "l.title ASC",
}

func (r *shoppingListRepository) ListByUser(ctx context.Context, userID string, filters models.ShoppingListFilters) ([]*models.ShoppingList, error) {
	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var query strings.Builder

	query.WriteString(`SELECT ` + listColumns + `
		FROM shopping_lists l
		LEFT JOIN markets m ON m.id = l.market_id AND m.deleted_at IS NULL
		WHERE l.user_id = $1 AND l.deleted_at IS NULL`)

	args := []any{userID}

	if filters.IsCompleted != nil {
		args = append(args, *filters.IsCompleted)
		fmt.Fprintf(&query, " AND l.is_completed = $%d", len(args))
	}

	if filters.MarketID != "" {
		if !utils.IsValidUUID(filters.MarketID) {
			return nil, appErrors.AddValidationError("market_id", "must be a valid UUID")
		}

		args = append(args, filters.MarketID)
		fmt.Fprintf(&query, " AND l.market_id = $%d", len(args))
	}

	orderBy, ok := orderColumns[filters.OrderBy]
	if !ok {
		orderBy = orderColumns["created_at"]
	}

	query.WriteString(" ORDER BY " + orderBy)

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}

	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	rows, err := r.DB.QueryContext(dbCtx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	defer rows.Close()

	var lists []*models.ShoppingList

	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}

		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lists, nil
}

func (r *shoppingListRepository) GetByID(ctx context.Context, id, userID string) (*models.ShoppingList, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + listColumns + `
		FROM shopping_lists l
		LEFT JOIN markets m ON m.id = l.market_id AND m.deleted_at IS NULL
		WHERE l.id = $1 AND l.user_id = $2 AND l.deleted_at IS NULL`

	list, err := scanList(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	return list, nil
}

func (r *shoppingListRepository) GetByShareCode(ctx context.Context, code string) (*models.ShoppingList, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// codes are not unique by construction; the newest list wins
	query := `SELECT ` + listColumns + `
		FROM shopping_lists l
		LEFT JOIN markets m ON m.id = l.market_id AND m.deleted_at IS NULL
		WHERE l.share_code = $1 AND l.deleted_at IS NULL
		ORDER BY l.created_at DESC
		LIMIT 1`

	list, err := scanList(r.DB.QueryRowContext(dbCtx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get shopping list by share code: %w", err)
	}

	return list, nil
}

func (r *shoppingListRepository) Update(ctx context.Context, id, userID string, req *models.UpdateShoppingListRequest) (*models.ShoppingList, error) {
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

	if req.Title != nil {
		addSet("title", strings.TrimSpace(*req.Title))
	}

	if req.Description != nil {
		addSet("description", nullableString(strings.TrimSpace(*req.Description)))
	}

	if req.ShoppingDate != nil {
		addSet("shopping_date", *req.ShoppingDate)
	}

	if req.MarketID != nil {
		addSet("market_id", nullableUUID(req.MarketID))
	}

	if req.PaymentID != nil {
		addSet("payment_id", nullableUUID(req.PaymentID))
	}

	if req.IsCompleted != nil {
		addSet("is_completed", *req.IsCompleted)
	}

	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE shopping_lists l SET %s
		WHERE l.id = $%d AND l.user_id = $%d AND l.deleted_at IS NULL
		RETURNING l.id, l.user_id, l.title, l.description, l.shopping_date, l.market_id, l.payment_id,
			l.is_completed, l.share_code, l.created_at, l.updated_at, NULL, NULL
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	list, err := scanList(r.DB.QueryRowContext(dbCtx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}

	return list, nil
}

// SoftDelete scopes by both id and user_id; a row owned by someone else
// surfaces as not found, never as forbidden.
func (r *shoppingListRepository) SoftDelete(ctx context.Context, id, userID string) (*models.ShoppingList, error) {
	if !utils.IsValidUUID(id) {
		return nil, appErrors.AddValidationError("id", "must be a valid UUID")
	}

	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE shopping_lists l SET deleted_at = NOW(), updated_at = NOW()
		WHERE l.id = $1 AND l.user_id = $2 AND l.deleted_at IS NULL
		RETURNING l.id, l.user_id, l.title, l.description, l.shopping_date, l.market_id, l.payment_id,
			l.is_completed, l.share_code, l.created_at, l.updated_at, NULL, NULL
	`

	list, err := scanList(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to delete shopping list: %w", err)
	}

	return list, nil
}

func (r *shoppingListRepository) CountItems(ctx context.Context, listID string) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	query := `SELECT COUNT(*) FROM shopping_list_items WHERE list_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, query, listID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

func (r *shoppingListRepository) CountCheckedItems(ctx context.Context, listID string) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	query := `SELECT COUNT(*) FROM shopping_list_items WHERE list_id = $1 AND is_checked = TRUE`

	if err := r.DB.QueryRowContext(dbCtx, query, listID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count checked items: %w", err)
	}

	return count, nil
}

func (r *shoppingListRepository) SumItemsTotal(ctx context.Context, listID string) (float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total float64

	query := `SELECT COALESCE(SUM(total_price), 0) FROM shopping_list_items WHERE list_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, query, listID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum item totals: %w", err)
	}

	return total, nil
}

const itemColumns = `id, list_id, product_name, category, quantity, unit, unit_price, total_price, is_checked, notes, created_at, updated_at`

func (r *shoppingListRepository) ListItems(ctx context.Context, listID string) ([]*models.ShoppingListItem, error) {
	if !utils.IsValidUUID(listID) {
		return nil, appErrors.AddValidationError("list_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM shopping_list_items WHERE list_id = $1 ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	defer rows.Close()

	var items []*models.ShoppingListItem

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *shoppingListRepository) InsertItem(ctx context.Context, item *models.ShoppingListItem) error {
	if !utils.IsValidUUID(item.ListID) {
		return appErrors.AddValidationError("list_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO shopping_list_items (id, list_id, product_name, category, quantity, unit, unit_price, total_price, is_checked, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		item.ID, item.ListID, item.ProductName, item.Category, item.Quantity, item.Unit,
		item.UnitPrice, item.TotalPrice, item.IsChecked, nullableString(item.Notes),
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

func (r *shoppingListRepository) GetItemByID(ctx context.Context, itemID string) (*models.ShoppingListItem, error) {
	if !utils.IsValidUUID(itemID) {
		return nil, appErrors.AddValidationError("item_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM shopping_list_items WHERE id = $1`

	item, err := scanItem(r.DB.QueryRowContext(dbCtx, query, itemID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// UpdateItem recomputes total_price whenever quantity or unit_price changes.
// When only one of the two is supplied the current row is fetched first, so a
// partial update never drops the other factor.
func (r *shoppingListRepository) UpdateItem(ctx context.Context, itemID string, req *models.UpdateItemRequest) (*models.ShoppingListItem, error) {
	if !utils.IsValidUUID(itemID) {
		return nil, appErrors.AddValidationError("item_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	priceChanged := req.Quantity != nil || req.UnitPrice != nil

	var quantity, unitPrice float64

	if priceChanged && (req.Quantity == nil || req.UnitPrice == nil) {
		current, err := r.GetItemByID(ctx, itemID)
		if err != nil {
			return nil, err
		}

		quantity = current.Quantity
		unitPrice = current.UnitPrice
	}

	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.IsChecked != nil {
		addSet("is_checked", *req.IsChecked)
	}

	if req.Notes != nil {
		addSet("notes", nullableString(strings.TrimSpace(*req.Notes)))
	}

	if priceChanged {
		total, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).Float64()

		addSet("quantity", quantity)
		addSet("unit_price", unitPrice)
		addSet("total_price", total)
	}

	args = append(args, itemID)

	query := fmt.Sprintf(`
		UPDATE shopping_list_items SET %s
		WHERE id = $%d
		RETURNING `+itemColumns+`
	`, strings.Join(sets, ", "), len(args))

	item, err := scanItem(r.DB.QueryRowContext(dbCtx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

func (r *shoppingListRepository) DeleteItem(ctx context.Context, itemID string) (*models.ShoppingListItem, error) {
	if !utils.IsValidUUID(itemID) {
		return nil, appErrors.AddValidationError("item_id", "must be a valid UUID")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM shopping_list_items WHERE id = $1 RETURNING ` + itemColumns

	item, err := scanItem(r.DB.QueryRowContext(dbCtx, query, itemID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	return item, nil
}
