package models

import "time"

type ShoppingListItem struct {
	ID          string    `json:"id"`
	ListID      string    `json:"list_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	IsChecked   bool      `json:"is_checked"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AddItemRequest struct {
	ProductName string  `json:"product_name" validate:"required,max=100"`
	Category    string  `json:"category"     validate:"required"`
	Quantity    float64 `json:"quantity"     validate:"required,gt=0"`
	Unit        string  `json:"unit"         validate:"required,oneof=un kg g l ml cx pct"`
	UnitPrice   float64 `json:"unit_price"   validate:"omitempty,gte=0"`
	Notes       string  `json:"notes"        validate:"omitempty,max=200"`
}

// UpdateItemRequest carries a partial update; nil fields keep the stored value.
type UpdateItemRequest struct {
	IsChecked *bool    `json:"is_checked,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"   validate:"omitempty,gt=0"`
	UnitPrice *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	Notes     *string  `json:"notes,omitempty"      validate:"omitempty,max=200"`
}

type RemoveItemResponse struct {
	Message string            `json:"message"`
	Item    *ShoppingListItem `json:"item"`
}

type DeleteShoppingListResponse struct {
	Message string        `json:"message"`
	List    *ShoppingList `json:"list"`
}
