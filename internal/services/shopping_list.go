package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
	"github.com/compralista/shopping-list-platform/internal/models"
	repository "github.com/compralista/shopping-list-platform/internal/repositories"
	"github.com/compralista/shopping-list-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ShoppingListService interface {
	CreateList(ctx context.Context, req *models.CreateShoppingListRequest) (*models.ShoppingListDetail, error)
	ListLists(ctx context.Context, userID string, filters models.ShoppingListFilters) ([]*models.ShoppingList, error)
	GetList(ctx context.Context, id, userID string) (*models.ShoppingListDetail, error)
	GetListByShareCode(ctx context.Context, code, clientIP string) (*models.ShoppingListDetail, error)
	UpdateList(ctx context.Context, id, userID string, req *models.UpdateShoppingListRequest) (*models.ShoppingList, error)
	DeleteList(ctx context.Context, id, userID string) (*models.ShoppingList, error)

	AddItem(ctx context.Context, listID string, req *models.AddItemRequest) (*models.ShoppingListItem, error)
	UpdateItem(ctx context.Context, itemID string, req *models.UpdateItemRequest) (*models.ShoppingListItem, error)
	RemoveItem(ctx context.Context, itemID string) (*models.ShoppingListItem, error)
}

type shoppingListService struct {
	repo      repository.ShoppingListRepository
	limiter   repository.ShareRateLimiter
	sanitizer *bluemonday.Policy
}

func NewShoppingListService(repo repository.ShoppingListRepository, limiter repository.ShareRateLimiter) ShoppingListService {
	return &shoppingListService{
		repo:      repo,
		limiter:   limiter,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// free text is trimmed and stripped of markup before it reaches storage
func (s *shoppingListService) normalize(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func itemTotal(quantity, unitPrice float64) float64 {
	total, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).Float64()

	return total
}

// validateItem re-runs the field rules independent of the request-layer
// validator; every layer the data passes through checks it again.
func validateItem(req *models.AddItemRequest) error {
	name := strings.TrimSpace(req.ProductName)

	if name == "" {
		return appErrors.AddValidationError("product_name", "is required")
	}

	if utf8.RuneCountInString(name) > models.MaxProductNameLength {
		return appErrors.AddValidationError("product_name", fmt.Sprintf("must be at most %d characters", models.MaxProductNameLength))
	}

	if strings.TrimSpace(req.Category) == "" {
		return appErrors.AddValidationError("category", "is required")
	}

	if req.Quantity <= 0 {
		return appErrors.AddValidationError("quantity", "must be greater than zero")
	}

	if !models.IsValidUnit(req.Unit) {
		return appErrors.AddValidationError("unit", fmt.Sprintf("must be one of: %s", strings.Join(models.Units, ", ")))
	}

	if req.UnitPrice < 0 {
		return appErrors.AddValidationError("unit_price", "must not be negative")
	}

	if utf8.RuneCountInString(req.Notes) > models.MaxNotesLength {
		return appErrors.AddValidationError("notes", fmt.Sprintf("must be at most %d characters", models.MaxNotesLength))
	}

	return nil
}

func (s *shoppingListService) buildItem(listID string, req *models.AddItemRequest) *models.ShoppingListItem {
	return &models.ShoppingListItem{
		ID:          uuid.NewString(),
		ListID:      listID,
		ProductName: s.normalize(req.ProductName),
		Category:    s.normalize(req.Category),
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  itemTotal(req.Quantity, req.UnitPrice),
		Notes:       s.normalize(req.Notes),
	}
}

// CreateList enforces the list-level business rules: a list carries at least
// one item and at most MaxItemsPerList.
func (s *shoppingListService) CreateList(ctx context.Context, req *models.CreateShoppingListRequest) (*models.ShoppingListDetail, error) {
	if !utils.IsValidUUID(req.UserID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	title := s.normalize(req.Title)

	if title == "" {
		return nil, appErrors.AddValidationError("title", "is required")
	}

	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return nil, appErrors.AddValidationError("title", fmt.Sprintf("must be at most %d characters", models.MaxTitleLength))
	}

	if utf8.RuneCountInString(req.Description) > models.MaxDescriptionLength {
		return nil, appErrors.AddValidationError("description", fmt.Sprintf("must be at most %d characters", models.MaxDescriptionLength))
	}

	if _, err := time.Parse(models.ShoppingDateLayout, req.ShoppingDate); err != nil {
		return nil, appErrors.AddValidationError("shopping_date", "must match the format YYYY-MM-DD")
	}

	if len(req.Items) == 0 {
		return nil, appErrors.ValidationError("Shopping list must contain at least one item")
	}

	if len(req.Items) > models.MaxItemsPerList {
		return nil, appErrors.ValidationError(fmt.Sprintf("Shopping list cannot exceed %d items", models.MaxItemsPerList))
	}

	list := &models.ShoppingList{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		Title:        title,
		Description:  s.normalize(req.Description),
		ShoppingDate: req.ShoppingDate,
		ShareCode:    fmt.Sprintf("%04d", rand.IntN(10000)),
	}

	// non-UUID selector sentinels ("credit", "pix") become NULL associations
	if sanitized := utils.SanitizeUUID(req.MarketID); sanitized != "" {
		list.MarketID = &sanitized
	}

	if sanitized := utils.SanitizeUUID(req.PaymentID); sanitized != "" {
		list.PaymentID = &sanitized
	}

	items := make([]*models.ShoppingListItem, 0, len(req.Items))

	for i := range req.Items {
		if err := validateItem(&req.Items[i]); err != nil {
			return nil, err
		}

		items = append(items, s.buildItem(list.ID, &req.Items[i]))
	}

	if err := s.repo.CreateWithItems(ctx, list, items); err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to create shopping list")
	}

	return s.buildDetail(list, items), nil
}

// buildDetail computes the response-only aggregates from loaded items.
func (s *shoppingListService) buildDetail(list *models.ShoppingList, items []*models.ShoppingListItem) *models.ShoppingListDetail {
	total := decimal.Zero
	checkedValue := decimal.Zero
	checked := 0

	grouped := make(map[string][]*models.ShoppingListItem)
	order := []string{}

	for _, item := range items {
		price := decimal.NewFromFloat(item.TotalPrice)
		total = total.Add(price)

		if item.IsChecked {
			checked++

			checkedValue = checkedValue.Add(price)
		}

		if _, seen := grouped[item.Category]; !seen {
			order = append(order, item.Category)
		}

		grouped[item.Category] = append(grouped[item.Category], item)
	}

	list.ItemsCount = len(items)
	list.CheckedItemsCount = checked
	list.CompletionPercentage = list.CalculateCompletion()
	list.TotalAmount, _ = total.Round(2).Float64()
	list.Status = list.GetStatus()

	detail := &models.ShoppingListDetail{
		ShoppingList: *list,
		Items:        items,
	}

	for _, category := range order {
		detail.Categories = append(detail.Categories, models.CategoryGroup{
			Category: category,
			Items:    grouped[category],
		})
	}

	if len(items) > 0 {
		remaining := total.Sub(checkedValue)
		average := total.Div(decimal.NewFromInt(int64(len(items))))

		financial := &models.FinancialSummary{}
		financial.TotalValue, _ = total.Round(2).Float64()
		financial.CheckedValue, _ = checkedValue.Round(2).Float64()
		financial.RemainingValue, _ = remaining.Round(2).Float64()
		financial.AverageItemPrice, _ = average.Round(2).Float64()
		detail.Financial = financial
	}

	return detail
}

// ListLists loads the rows and then fans out the per-list aggregate queries
// concurrently; any failure fails the whole read.
func (s *shoppingListService) ListLists(ctx context.Context, userID string, filters models.ShoppingListFilters) ([]*models.ShoppingList, error) {
	if !utils.IsValidUUID(userID) {
		return nil, appErrors.AddValidationError("user_id", "must be a valid UUID")
	}

	lists, err := s.repo.ListByUser(ctx, userID, filters)
	if err != nil {
		return nil, mapRepoError(err, "Shopping lists not found", "Failed to fetch shopping lists")
	}

	g, gCtx := errgroup.WithContext(ctx)

	for _, list := range lists {
		g.Go(func() error {
			count, err := s.repo.CountItems(gCtx, list.ID)
			if err != nil {
				return err
			}

			list.ItemsCount = count

			return nil
		})

		g.Go(func() error {
			count, err := s.repo.CountCheckedItems(gCtx, list.ID)
			if err != nil {
				return err
			}

			list.CheckedItemsCount = count

			return nil
		})

		g.Go(func() error {
			total, err := s.repo.SumItemsTotal(gCtx, list.ID)
			if err != nil {
				return err
			}

			list.TotalAmount = total

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, mapRepoError(err, "Shopping lists not found", "Failed to fetch shopping list aggregates")
	}

	for _, list := range lists {
		list.CompletionPercentage = list.CalculateCompletion()
		list.Status = list.GetStatus()
	}

	return lists, nil
}

func (s *shoppingListService) GetList(ctx context.Context, id, userID string) (*models.ShoppingListDetail, error) {
	list, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to fetch shopping list")
	}

	items, err := s.repo.ListItems(ctx, list.ID)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to fetch shopping list items")
	}

	return s.buildDetail(list, items), nil
}

// GetListByShareCode serves the anonymous read-only view. Lookups are rate
// limited per client because a 4-digit code is trivially enumerable.
func (s *shoppingListService) GetListByShareCode(ctx context.Context, code, clientIP string) (*models.ShoppingListDetail, error) {
	if !utils.IsValidShareCode(code) {
		return nil, appErrors.ValidationError("Share code must be exactly 4 digits")
	}

	if s.limiter != nil {
		allowed, retryAfter, err := s.limiter.CheckShareRateLimit(ctx, clientIP)
		if err == nil && !allowed {
			return nil, appErrors.TooManyRequestsError(
				fmt.Sprintf("Too many share code attempts, retry in %d seconds", retryAfter))
		}
	}

	list, err := s.repo.GetByShareCode(ctx, code)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to fetch shared shopping list")
	}

	items, err := s.repo.ListItems(ctx, list.ID)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to fetch shopping list items")
	}

	detail := s.buildDetail(list, items)
	detail.IsSharedView = true

	return detail, nil
}

func (s *shoppingListService) UpdateList(ctx context.Context, id, userID string, req *models.UpdateShoppingListRequest) (*models.ShoppingList, error) {
	if req.Title != nil {
		title := s.normalize(*req.Title)

		if title == "" {
			return nil, appErrors.AddValidationError("title", "is required")
		}

		if utf8.RuneCountInString(title) > models.MaxTitleLength {
			return nil, appErrors.AddValidationError("title", fmt.Sprintf("must be at most %d characters", models.MaxTitleLength))
		}

		req.Title = &title
	}

	if req.ShoppingDate != nil {
		if _, err := time.Parse(models.ShoppingDateLayout, *req.ShoppingDate); err != nil {
			return nil, appErrors.AddValidationError("shopping_date", "must match the format YYYY-MM-DD")
		}
	}

	list, err := s.repo.Update(ctx, id, userID, req)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to update shopping list")
	}

	list.Status = list.GetStatus()

	return list, nil
}

func (s *shoppingListService) DeleteList(ctx context.Context, id, userID string) (*models.ShoppingList, error) {
	list, err := s.repo.SoftDelete(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to delete shopping list")
	}

	return list, nil
}

func (s *shoppingListService) AddItem(ctx context.Context, listID string, req *models.AddItemRequest) (*models.ShoppingListItem, error) {
	if !utils.IsValidUUID(listID) {
		return nil, appErrors.AddValidationError("list_id", "must be a valid UUID")
	}

	if err := validateItem(req); err != nil {
		return nil, err
	}

	count, err := s.repo.CountItems(ctx, listID)
	if err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to count shopping list items")
	}

	if count >= models.MaxItemsPerList {
		return nil, appErrors.ValidationError(fmt.Sprintf("Shopping list cannot exceed %d items", models.MaxItemsPerList))
	}

	item := s.buildItem(listID, req)

	if err := s.repo.InsertItem(ctx, item); err != nil {
		return nil, mapRepoError(err, "Shopping list not found", "Failed to add item")
	}

	return item, nil
}

func (s *shoppingListService) UpdateItem(ctx context.Context, itemID string, req *models.UpdateItemRequest) (*models.ShoppingListItem, error) {
	if req.Quantity != nil && *req.Quantity <= 0 {
		return nil, appErrors.AddValidationError("quantity", "must be greater than zero")
	}

	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		return nil, appErrors.AddValidationError("unit_price", "must not be negative")
	}

	if req.Notes != nil {
		if utf8.RuneCountInString(*req.Notes) > models.MaxNotesLength {
			return nil, appErrors.AddValidationError("notes", fmt.Sprintf("must be at most %d characters", models.MaxNotesLength))
		}

		notes := s.normalize(*req.Notes)
		req.Notes = &notes
	}

	item, err := s.repo.UpdateItem(ctx, itemID, req)
	if err != nil {
		return nil, mapRepoError(err, "Item not found", "Failed to update item")
	}

	return item, nil
}

func (s *shoppingListService) RemoveItem(ctx context.Context, itemID string) (*models.ShoppingListItem, error) {
	item, err := s.repo.DeleteItem(ctx, itemID)
	if err != nil {
		return nil, mapRepoError(err, "Item not found", "Failed to remove item")
	}

	return item, nil
}
