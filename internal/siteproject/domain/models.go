// Package domain contains persistence models for hosted site projects.
package domain

import (
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/shopspring/decimal"
)

// Status tracks a site project. Only active sites are billed monthly.
type Status string

const (
	StatusActive      Status = "active"
	StatusDevelopment Status = "development"
	StatusInactive    Status = "inactive"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusDevelopment, StatusInactive:
		return true
	}
	return false
}

// SiteProject is a hosted website the agency runs for a client. The
// monthly charge is the agency fee plus any third-party cost passed
// through (domain, hosting, licenses). Per-month payment records live in
// the billing ledger.
type SiteProject struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	ClientID    string        `gorm:"not null;index" json:"client_id"`
	Domain      string        `gorm:"not null" json:"domain"`
	ServiceName string        `gorm:"not null" json:"service_name"`
	Currency    currency.Code `gorm:"type:text;not null" json:"currency"`
	Status      Status        `gorm:"type:text;not null;index" json:"status"`

	MonthlyFee     decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"monthly_fee"`
	ThirdPartyCost decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"third_party_cost"`
	PaymentDay     int             `gorm:"not null;default:0" json:"payment_day"` // 1-31, 0 = unset

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (SiteProject) TableName() string { return "site_projects" }
