// Package domain contains persistence models for agency clients.
package domain

import (
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/shopspring/decimal"
)

// Client is an agency customer. Monthly clients carry a retainer
// configuration (fee and due-day); their per-month payment records live in
// the billing ledger, not here.
type Client struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	CompanyName string        `gorm:"not null" json:"company_name"`
	Slug        string        `gorm:"not null;index" json:"slug"`
	ContactName string        `gorm:"not null" json:"contact_name"`
	Phone       string        `gorm:"not null" json:"phone"`
	Email       string        `gorm:"not null" json:"email"`
	Address     string        `json:"address,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Currency    currency.Code `gorm:"type:text;not null" json:"currency"`
	IsMonthly   bool          `gorm:"not null;default:false" json:"is_monthly"`

	// Monthly retainer configuration; meaningful only when IsMonthly is set.
	// A zero fee is allowed and still produces zero-amount invoices.
	MonthlyFee decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"monthly_fee"`
	PaymentDay int             `gorm:"not null;default:0" json:"payment_day"` // 1-31, 0 = unset

	JoinedAt  time.Time `gorm:"not null" json:"joined_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
