package models

import (
	"math"
	"time"
)

// Status values derived from is_completed and shopping_date.
const (
	StatusCompleted = "completed"
	StatusToday     = "today"
	StatusOverdue   = "overdue"
	StatusUpcoming  = "upcoming"
)

type ShoppingList struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	ShoppingDate string  `json:"shopping_date"`
	MarketID     *string `json:"market_id,omitempty"`
	PaymentID    *string `json:"payment_id,omitempty"`
	IsCompleted  bool    `json:"is_completed"`
	ShareCode    string  `json:"share_code,omitempty"`

	// aggregates computed per response, never persisted
	TotalAmount          float64 `json:"total_amount"`
	ItemsCount           int     `json:"items_count"`
	CheckedItemsCount    int     `json:"checked_items_count"`
	CompletionPercentage int     `json:"completion_percentage"`
	Status               string  `json:"status,omitempty"`

	// joined from markets
	MarketName    string `json:"market_name,omitempty"`
	MarketAddress string `json:"market_address,omitempty"`

	IsSharedView bool `json:"is_shared_view,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetStatus compares shopping_date against today, date-only, local time.
// Completion wins over any date.
func (l *ShoppingList) GetStatus() string {
	if l.IsCompleted {
		return StatusCompleted
	}

	date, err := time.ParseInLocation(ShoppingDateLayout, l.ShoppingDate, time.Local)
	if err != nil {
		return StatusUpcoming
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	switch {
	case date.Equal(today):
		return StatusToday
	case date.Before(today):
		return StatusOverdue
	default:
		return StatusUpcoming
	}
}

// CalculateCompletion returns round(checked/total*100); 0 for an empty list.
func (l *ShoppingList) CalculateCompletion() int {
	if l.ItemsCount == 0 {
		return 0
	}

	return int(math.Round(float64(l.CheckedItemsCount) / float64(l.ItemsCount) * 100))
}

type CreateShoppingListRequest struct {
	UserID       string              `json:"user_id"       validate:"required,uuid"`
	Title        string              `json:"title"         validate:"required,max=100"`
	Description  string              `json:"description"   validate:"omitempty,max=500"`
	ShoppingDate string              `json:"shopping_date" validate:"required,datetime=2006-01-02"`
	MarketID     string              `json:"market_id"     validate:"omitempty"`
	PaymentID    string              `json:"payment_id"    validate:"omitempty"`
	Items        []AddItemRequest    `json:"items"         validate:"omitempty,dive"`
}

type UpdateShoppingListRequest struct {
	Title        *string `json:"title,omitempty"         validate:"omitempty,max=100"`
	Description  *string `json:"description,omitempty"   validate:"omitempty,max=500"`
	ShoppingDate *string `json:"shopping_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MarketID     *string `json:"market_id,omitempty"`
	PaymentID    *string `json:"payment_id,omitempty"`
	IsCompleted  *bool   `json:"is_completed,omitempty"`
}

type DeleteShoppingListRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// ShoppingListFilters narrows ListByUser reads.
type ShoppingListFilters struct {
	IsCompleted *bool
	MarketID    string
	OrderBy     string
	Limit       int
	Offset      int
}

type CategoryGroup struct {
	Category string              `json:"category"`
	Items    []*ShoppingListItem `json:"items"`
}

type FinancialSummary struct {
	TotalValue       float64 `json:"total_value"`
	CheckedValue     float64 `json:"checked_value"`
	RemainingValue   float64 `json:"remaining_value"`
	AverageItemPrice float64 `json:"average_item_price"`
}

type ShoppingListDetail struct {
	ShoppingList

	Items      []*ShoppingListItem `json:"items"`
	Categories []CategoryGroup     `json:"categories,omitempty"`
	Financial  *FinancialSummary   `json:"financial_summary,omitempty"`
}

// ShoppingListStats is assembled handler-side from the full list result set.
type ShoppingListStats struct {
	TotalLists     int     `json:"total_lists"`
	CompletedLists int     `json:"completed_lists"`
	ActiveLists    int     `json:"active_lists"`
	TotalItems     int     `json:"total_items"`
	CheckedItems   int     `json:"checked_items"`
	TotalAmount    float64 `json:"total_amount"`
	CompletionRate int     `json:"completion_rate"`
}
