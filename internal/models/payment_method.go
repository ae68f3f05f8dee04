package models

import "time"

type PaymentType string

const (
	PaymentTypeDebit  PaymentType = "debit"
	PaymentTypeCredit PaymentType = "credit"
	PaymentTypePix    PaymentType = "pix"
)

type PaymentMethod struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Type        PaymentType `json:"type"`
	Description string      `json:"description,omitempty"`
	IsDefault   bool        `json:"is_default"`
	Enabled     bool        `json:"enabled"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type CreatePaymentMethodRequest struct {
	UserID      string `json:"user_id"     validate:"required,uuid"`
	Type        string `json:"type"        validate:"required,oneof=debit credit pix"`
	Description string `json:"description" validate:"omitempty,max=200"`
	IsDefault   bool   `json:"is_default"`
}

type UpdatePaymentMethodRequest struct {
	Type        *string `json:"type,omitempty"        validate:"omitempty,oneof=debit credit pix"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	IsDefault   *bool   `json:"is_default,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}
