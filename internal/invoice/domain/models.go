// Package domain contains persistence models for invoices.
package domain

import (
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LineItem is one billable row on an invoice. Items are stored inline as
// JSON; they are a snapshot at issue time, never re-derived from the
// source order or subscription.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice is a bill issued to a client, either minted by the billing
// ledger for a subscription month or created by hand for an order.
type Invoice struct {
	ID            string                        `gorm:"primaryKey" json:"id"`
	InvoiceNumber string                        `gorm:"not null;uniqueIndex" json:"invoice_number"`
	ClientID      string                        `gorm:"not null;index" json:"client_id"`
	OrderID       string                        `gorm:"index" json:"order_id,omitempty"`
	Items         datatypes.JSONSlice[LineItem] `json:"items"`
	Amount        decimal.Decimal               `gorm:"type:numeric;not null" json:"amount"`
	Currency      currency.Code                 `gorm:"type:text;not null" json:"currency"`
	IsPaid        bool                          `gorm:"not null;default:false;index" json:"is_paid"`
	IssueDate     time.Time                     `gorm:"not null" json:"issue_date"`
	DueDate       time.Time                     `gorm:"not null" json:"due_date"`
	PaidDate      *time.Time                    `json:"paid_date,omitempty"`
	Notes         string                        `json:"notes,omitempty"`
	CreatedAt     time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
