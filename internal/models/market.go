package models

import "time"

type Market struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CNPJ      string    `json:"cnpj,omitempty"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateMarketRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	Name    string `json:"name"    validate:"required,max=100"`
	Address string `json:"address" validate:"omitempty,max=200"`
	CNPJ    string `json:"cnpj"    validate:"omitempty,cnpj"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Website string `json:"website" validate:"omitempty,url"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
}

type UpdateMarketRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitempty,max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=200"`
	CNPJ    *string `json:"cnpj,omitempty"    validate:"omitempty,cnpj"`
	Email   *string `json:"email,omitempty"   validate:"omitempty,email"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`
	Phone   *string `json:"phone,omitempty"   validate:"omitempty,max=20"`
}
